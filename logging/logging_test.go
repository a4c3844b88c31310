package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := logrus.New()
	custom.SetOutput(&buf)
	custom.SetLevel(logrus.DebugLevel)

	SetLogger(custom)
	defer SetLogger(nil)

	assert.Same(t, custom, Logger())

	For("linear").Debug("hello")
	assert.Contains(t, buf.String(), "component=linear")
	assert.Contains(t, buf.String(), "hello")
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	custom := logrus.New()
	SetLogger(custom)
	SetLogger(nil)

	assert.NotSame(t, custom, Logger())
	assert.Equal(t, logrus.WarnLevel, Logger().GetLevel())
}
