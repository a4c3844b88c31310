package uninit

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/pavanmanishd/fixedmem/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// lifecycle counts hook calls made on resource values. failAt makes the
// failAt-th Init or Clone (0-based) fail; a negative value never fails.
var lifecycle struct {
	inits    int
	clones   int
	destroys int
	failAt   int
}

func resetLifecycle(failAt int) {
	lifecycle.inits = 0
	lifecycle.clones = 0
	lifecycle.destroys = 0
	lifecycle.failAt = failAt
}

type resource struct {
	value  string
	copied bool
}

func (r *resource) Init() error {
	if lifecycle.failAt >= 0 && lifecycle.inits == lifecycle.failAt {
		return errBoom
	}
	lifecycle.inits++
	r.value = "default"
	return nil
}

func (r *resource) Destroy() { lifecycle.destroys++ }

func (r resource) Clone() (resource, error) {
	if lifecycle.failAt >= 0 && lifecycle.clones == lifecycle.failAt {
		return resource{}, errBoom
	}
	lifecycle.clones++
	return resource{value: r.value, copied: true}, nil
}

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Logger().SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { logging.SetLogger(nil) })
}

func TestStorage(t *testing.T) {
	quietLogs(t)

	s := NewStorage[int](4)
	assert.Equal(t, 4, s.Cap())

	*s.At(2) = 7
	assert.Equal(t, 7, *s.At(2))

	slots := s.Slots(1, 3)
	assert.Len(t, slots, 2)
	assert.Equal(t, 2, cap(slots))
	assert.Equal(t, 7, slots[1])

	assert.Panics(t, func() { s.At(4) })
	assert.Panics(t, func() { s.At(-1) })
	assert.Panics(t, func() { s.Slots(3, 2) })
	assert.Panics(t, func() { s.Slots(0, 5) })
	assert.Panics(t, func() { NewStorage[int](-1) })
}

func TestTrivial(t *testing.T) {
	assert.True(t, Trivial[int]())
	assert.True(t, Trivial[string]())
	assert.False(t, Trivial[resource]())

	assert.False(t, Trivial[*resource]())
	assert.False(t, Trivial[Destroyer]())
	assert.False(t, Trivial[any]())
	assert.True(t, Trivial[*int]())

	s := NewStorage[resource](1)
	assert.False(t, s.Trivial())
}

func TestDefaultConstruct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resetLifecycle(-1)
		dst := make([]resource, 3)

		require.NoError(t, DefaultConstruct(dst))
		for _, r := range dst {
			assert.Equal(t, "default", r.value)
		}
		assert.Equal(t, 3, lifecycle.inits)
		assert.Equal(t, 0, lifecycle.destroys)
	})

	t.Run("rollback", func(t *testing.T) {
		resetLifecycle(2)
		dst := make([]resource, 4)

		err := DefaultConstruct(dst)
		require.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "slot 2")
		assert.Equal(t, 2, lifecycle.destroys)
		assert.Equal(t, make([]resource, 4), dst)
	})

	t.Run("trivial", func(t *testing.T) {
		dst := []int{5, 6, 7}
		require.NoError(t, DefaultConstruct(dst))
		assert.Equal(t, []int{0, 0, 0}, dst)
	})
}

func TestFill(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resetLifecycle(-1)
		dst := make([]resource, 3)

		require.NoError(t, Fill(dst, resource{value: "not-default"}))
		for _, r := range dst {
			assert.Equal(t, "not-default", r.value)
			assert.True(t, r.copied)
		}
		assert.Equal(t, 3, lifecycle.clones)
	})

	t.Run("rollback", func(t *testing.T) {
		resetLifecycle(1)
		dst := make([]resource, 3)

		require.ErrorIs(t, Fill(dst, resource{value: "x"}), errBoom)
		assert.Equal(t, 1, lifecycle.destroys)
		assert.Equal(t, make([]resource, 3), dst)
	})
}

func TestCopy(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resetLifecycle(-1)
		src := []resource{{value: "a"}, {value: "b"}}
		dst := make([]resource, 3)

		n, err := Copy(dst, src)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, resource{value: "a", copied: true}, dst[0])
		assert.Equal(t, resource{value: "b", copied: true}, dst[1])
		assert.Equal(t, resource{}, dst[2])
		assert.False(t, src[0].copied, "source must not change")
	})

	t.Run("rollback", func(t *testing.T) {
		resetLifecycle(2)
		src := []resource{{value: "a"}, {value: "b"}, {value: "c"}}
		dst := make([]resource, 3)

		n, err := Copy(dst, src)
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, n)
		assert.Equal(t, 2, lifecycle.destroys)
		assert.Equal(t, make([]resource, 3), dst)
	})

	t.Run("too small", func(t *testing.T) {
		quietLogs(t)
		assert.Panics(t, func() { _, _ = Copy(make([]int, 1), []int{1, 2}) })
	})
}

func TestCopySeq(t *testing.T) {
	quietLogs(t)

	dst := make([]int, 4)
	n, err := CopySeq(dst, slices.Values([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3, 0}, dst)

	assert.Panics(t, func() {
		_, _ = CopySeq(make([]int, 2), slices.Values([]int{1, 2, 3}))
	})

	resetLifecycle(1)
	rdst := make([]resource, 3)
	_, err = CopySeq(rdst, slices.Values([]resource{{value: "a"}, {value: "b"}}))
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, lifecycle.destroys)
	assert.Equal(t, make([]resource, 3), rdst)
}

func TestMove(t *testing.T) {
	resetLifecycle(-1)
	src := []resource{{value: "a"}, {value: "b"}}
	dst := make([]resource, 2)

	assert.Equal(t, 2, Move(dst, src))
	assert.Equal(t, []resource{{value: "a"}, {value: "b"}}, dst)
	assert.Equal(t, make([]resource, 2), src)
	assert.Equal(t, 0, lifecycle.clones)
	assert.Equal(t, 0, lifecycle.destroys)
}

func TestConstructAt(t *testing.T) {
	t.Run("custom", func(t *testing.T) {
		var r resource
		err := ConstructAt(&r, func(p *resource) error {
			p.value = "emplaced"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "emplaced", r.value)
	})

	t.Run("failure resets slot", func(t *testing.T) {
		r := resource{value: "stale"}
		err := ConstructAt(&r, func(p *resource) error {
			p.value = "half"
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, resource{}, r)
	})

	t.Run("nil ctor default-constructs", func(t *testing.T) {
		resetLifecycle(-1)
		var r resource
		require.NoError(t, ConstructAt(&r, nil))
		assert.Equal(t, "default", r.value)
	})
}

func TestDestroy(t *testing.T) {
	resetLifecycle(-1)
	s := []resource{{value: "a"}, {value: "b"}, {value: "c"}}

	DestroyAt(&s[0])
	assert.Equal(t, 1, lifecycle.destroys)
	assert.Equal(t, resource{}, s[0])

	Destroy(s[1:])
	assert.Equal(t, 3, lifecycle.destroys)
	assert.Equal(t, make([]resource, 3), s)

	ints := []int{1, 2}
	Destroy(ints)
	assert.Equal(t, []int{0, 0}, ints)
}

func TestDestroyPointerElements(t *testing.T) {
	resetLifecycle(-1)
	s := []*resource{{value: "a"}, nil, {value: "c"}}

	DestroyAt(&s[0])
	assert.Equal(t, 1, lifecycle.destroys)
	assert.Nil(t, s[0])

	Destroy(s)
	assert.Equal(t, 2, lifecycle.destroys, "nil slots are skipped")
	assert.Equal(t, []*resource{nil, nil, nil}, s)
}

func TestDestroyInterfaceElements(t *testing.T) {
	resetLifecycle(-1)
	var none *resource
	s := []any{&resource{value: "a"}, 7, nil, none, &resource{value: "e"}}

	Destroy(s)
	assert.Equal(t, 2, lifecycle.destroys)
	assert.Equal(t, make([]any, 5), s)
}

func TestClone(t *testing.T) {
	resetLifecycle(-1)
	v, err := Clone(resource{value: "a"})
	require.NoError(t, err)
	assert.True(t, v.copied)

	n, err := Clone(42)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}
