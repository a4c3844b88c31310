package staticvec

import (
	"iter"
	"slices"
	"unsafe"

	"github.com/pavanmanishd/fixedmem/invariant"
	"github.com/pavanmanishd/fixedmem/uninit"
)

// Emplace constructs a new element at pos by running ctor on the zeroed slot,
// after shifting the elements at and after pos one slot toward the end. It
// returns pos. If ctor fails the shift is undone and v is unchanged.
//
// A nil ctor default-constructs the element.
func (v *Vector[T]) Emplace(pos int, ctor func(*T) error) (int, error) {
	v.checkLive()
	invariant.Assert(v.size < v.Cap(), "staticvec: emplace into full vector (capacity %d)", v.Cap())
	v.checkPosition(pos)

	slots := v.storage.Slots(0, v.size+1)
	shiftRight(slots, pos, v.size, 1)
	if err := uninit.ConstructAt(&slots[pos], ctor); err != nil {
		shiftLeft(slots, pos, v.size+1, 1)
		return 0, err
	}
	v.size++
	return pos, nil
}

// EmplaceBack constructs a new element at the end.
func (v *Vector[T]) EmplaceBack(ctor func(*T) error) (int, error) {
	return v.Emplace(v.size, ctor)
}

// PushBack appends x.
func (v *Vector[T]) PushBack(x T) {
	v.checkLive()
	invariant.Assert(v.size < v.Cap(), "staticvec: push onto full vector (capacity %d)", v.Cap())
	*v.storage.At(v.size) = x
	v.size++
}

// PopBack destroys the last element.
func (v *Vector[T]) PopBack() {
	invariant.Assert(v.size > 0, "staticvec: PopBack of empty vector")
	v.Erase(v.size - 1)
}

// Insert moves vs into v before pos, keeping their order, and returns the
// index of the first inserted element. vs must not share memory with v,
// since a moved element cannot stay where it was; use InsertRange to insert
// copies of v's own elements.
func (v *Vector[T]) Insert(pos int, vs ...T) int {
	v.checkLive()
	v.checkPosition(pos)
	v.checkRoom(len(vs))
	invariant.Assert(!v.overlaps(vs), "staticvec: inserting elements moved out of the same vector")

	n := len(vs)
	slots := v.storage.Slots(0, v.size+n)
	shiftRight(slots, pos, v.size, n)
	copy(slots[pos:pos+n], vs)
	v.size += n
	return pos
}

// InsertRange copies src into v before pos and returns the index of the first
// inserted element. If any copy fails nothing is inserted. src may be part
// of v itself.
func (v *Vector[T]) InsertRange(pos int, src []T) (int, error) {
	v.checkLive()
	v.checkPosition(pos)
	v.checkRoom(len(src))
	if v.overlaps(src) {
		src = slices.Clone(src)
	}

	n := len(src)
	slots := v.storage.Slots(0, v.size+n)
	shiftRight(slots, pos, v.size, n)
	if _, err := uninit.Copy(slots[pos:pos+n], src); err != nil {
		shiftLeft(slots, pos, v.size+n, n)
		return 0, err
	}
	v.size += n
	return pos, nil
}

// InsertSeq copies the values yielded by seq into v before pos and returns
// the index of the first inserted element. If any copy fails the values
// already inserted are erased again. seq must not read from v.
func (v *Vector[T]) InsertSeq(pos int, seq iter.Seq[T]) (int, error) {
	v.checkLive()
	v.checkPosition(pos)

	at := pos
	for x := range seq {
		c, err := uninit.Clone(x)
		if err != nil {
			v.EraseRange(pos, at)
			return 0, err
		}
		v.Insert(at, c)
		at++
	}
	return pos, nil
}

// Erase destroys the element at pos and shifts the following elements down.
// It returns pos, which now indexes the element after the erased one (or
// equals Len()).
func (v *Vector[T]) Erase(pos int) int {
	v.checkLive()
	invariant.Assert(pos >= 0 && pos < v.size, "staticvec: erase position %d out of range [0,%d)", pos, v.size)

	slots := v.storage.Slots(0, v.size)
	uninit.DestroyAt(&slots[pos])
	shiftLeft(slots, pos, v.size, 1)
	v.size--
	return pos
}

// EraseRange destroys the elements in [first, last) and shifts the remaining
// elements down. It returns first.
func (v *Vector[T]) EraseRange(first, last int) int {
	v.checkLive()
	invariant.Assert(0 <= first && first <= last && last <= v.size, "staticvec: erase range [%d,%d) out of range [0,%d]", first, last, v.size)

	slots := v.storage.Slots(0, v.size)
	uninit.Destroy(slots[first:last])
	shiftLeft(slots, first, v.size, last-first)
	v.size -= last - first
	return first
}

func (v *Vector[T]) checkPosition(pos int) {
	invariant.Assert(pos >= 0 && pos <= v.size, "staticvec: position %d out of range [0,%d]", pos, v.size)
}

// overlaps reports whether s points into v's storage.
func (v *Vector[T]) overlaps(s []T) bool {
	var zero T
	elemSize := unsafe.Sizeof(zero)
	if len(s) == 0 || v.Cap() == 0 || elemSize == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(v.storage.At(0)))
	hi := lo + uintptr(v.Cap())*elemSize
	p := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	return p >= lo && p < hi
}

func (v *Vector[T]) checkRoom(n int) {
	invariant.Assert(n <= v.Cap()-v.size, "staticvec: inserting %d elements with %d free slots", n, v.Cap()-v.size)
}

// shiftRight moves slots[pos:size] to slots[pos+n:size+n] and leaves
// slots[pos:pos+n] uninitialized. len(slots) must be at least size+n.
func shiftRight[T any](slots []T, pos, size, n int) {
	if n == 0 {
		return
	}
	copy(slots[pos+n:size+n], slots[pos:size])
	clear(slots[pos : pos+n])
}

// shiftLeft moves slots[pos+n:size] to slots[pos:size-n] and leaves
// slots[size-n:size] uninitialized. slots[pos:pos+n] must already be
// uninitialized.
func shiftLeft[T any](slots []T, pos, size, n int) {
	if n == 0 {
		return
	}
	copy(slots[pos:size-n], slots[pos+n:size])
	clear(slots[size-n : size])
}
