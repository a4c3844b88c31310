package invariant

import (
	"bytes"
	"testing"

	"github.com/pavanmanishd/fixedmem/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(f func()) (v *Violation) {
	defer func() {
		if r := recover(); r != nil {
			v = r.(*Violation)
		}
	}()
	f()
	return nil
}

func TestAssertHolds(t *testing.T) {
	assert.NotPanics(t, func() {
		Assert(true, "never shown")
		Assert(1 < 2, "index %d out of range", 3)
	})
}

func TestAssertFails(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	logging.SetLogger(l)
	defer logging.SetLogger(nil)

	v := capture(func() {
		Assert(false, "index %d out of range [0,%d)", 7, 3)
	})
	require.NotNil(t, v)

	assert.Equal(t, "index 7 out of range [0,3)", v.Message)
	assert.Equal(t, "invariant_test.go", v.File)
	assert.Greater(t, v.Line, 0)
	assert.Contains(t, v.Func, "TestAssertFails")
	assert.Contains(t, v.Error(), "assertion failed (invariant_test.go:")
	assert.Contains(t, v.Error(), "index 7 out of range [0,3)")

	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "component=invariant")
}

func TestAssertMessageWithoutArgs(t *testing.T) {
	logging.Logger().SetOutput(&bytes.Buffer{})
	defer logging.SetLogger(nil)

	// A literal % must survive when there are no arguments.
	v := capture(func() { Assert(false, "100% full") })
	require.NotNil(t, v)
	assert.Equal(t, "100% full", v.Message)
}

func TestFail(t *testing.T) {
	logging.Logger().SetOutput(&bytes.Buffer{})
	defer logging.SetLogger(nil)

	assert.Panics(t, func() { Fail("unreachable: %s", "state") })

	v := capture(func() { Fail("unreachable") })
	require.NotNil(t, v)
	assert.Equal(t, "unreachable", v.Message)
}
