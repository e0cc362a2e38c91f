package verbose

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetState restores the package to its default logging state.
func resetState(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Disable()
		SetWriter(os.Stderr)
	})
}

// TestEnableDisable tests the behavior of the logging state switches.
//
// It verifies:
//   - Enable turns on verbose but not trace
//   - EnableTrace turns on both
//   - Disable turns off both
func TestEnableDisable(t *testing.T) {
	resetState(t)

	assert.False(t, IsEnabled())
	assert.False(t, IsTrace())

	Enable()
	assert.True(t, IsEnabled())
	assert.False(t, IsTrace())

	EnableTrace()
	assert.True(t, IsEnabled())
	assert.True(t, IsTrace())

	Disable()
	assert.False(t, IsEnabled())
	assert.False(t, IsTrace())
}

// TestDebugf tests the behavior of Debugf.
//
// It verifies:
//   - Nothing is written while disabled
//   - Enabled messages carry the [DEBUG] prefix
func TestDebugf(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)

	Debugf("skipped %s", "quietly")
	assert.Empty(t, buf.String())

	Enable()
	Debugf("loaded %d sources", 2)
	assert.Equal(t, "[DEBUG] loaded 2 sources\n", buf.String())
}

// TestTracef tests the behavior of Tracef.
//
// It verifies:
//   - Verbose alone does not emit trace messages
//   - Trace messages carry the [TRACE] prefix
func TestTracef(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)

	Enable()
	Tracef("range %s", "0-1.5")
	assert.Empty(t, buf.String())

	EnableTrace()
	Tracef("range %s", "0-1.5")
	assert.Equal(t, "[TRACE] range 0-1.5\n", buf.String())
}

// TestInfo tests the behavior of Info and Infof.
//
// It verifies:
//   - Informational messages share the [DEBUG] prefix
func TestInfo(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	Info("plain message")
	Infof("formatted %s", "message")

	assert.Equal(t, "[DEBUG] plain message\n[DEBUG] formatted message\n", buf.String())
}

// TestSetWriterNil tests the behavior of SetWriter with nil.
//
// It verifies:
//   - A nil writer leaves the current writer in place
func TestSetWriterNil(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)
	SetWriter(nil)

	Enable()
	Debugf("still here")
	assert.Equal(t, "[DEBUG] still here\n", buf.String())
}
