package touchtone

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CaptureOutput runs command and returns whatever it wrote to stdout.
func CaptureOutput(t *testing.T, command func()) string {
	t.Helper()

	var oldStdout = os.Stdout
	defer func() {
		os.Stdout = oldStdout
	}()

	var r, w, err = os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	// Drain while the command runs so a big report can't fill the pipe.
	var done = make(chan []byte)
	go func() {
		var b, _ = io.ReadAll(r)
		done <- b
	}()

	command()

	w.Close() //nolint:gosec

	os.Stdout = oldStdout

	return string(<-done)
}

func AssertOutputContains(t *testing.T, command func(), expectedOutputContains string) {
	t.Helper()

	assert.Contains(t, CaptureOutput(t, command), expectedOutputContains)
}
