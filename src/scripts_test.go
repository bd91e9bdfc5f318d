package touchtone

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pflag (not unreasonably) assumes it only ever gets called once. But lots of
// test infrastructure was built around "call this command then this command".
// Running it in Go tests (for coverage analysis and convenience etc.) means
// doing some slight bodges.
func setupPflag(args []string) {
	os.Args = args
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
}

// isolate moves the working directory and the user config directory
// somewhere empty so no stray profile gets picked up.
func isolate(t *testing.T) string {
	t.Helper()

	var tmpdir = t.TempDir()
	t.Chdir(tmpdir)
	t.Setenv("HOME", tmpdir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpdir, ".config"))

	return tmpdir
}

// genAudio runs dtmfgen into a temporary file and returns its name.
func genAudio(t *testing.T, args ...string) string {
	t.Helper()

	var tmpdir = isolate(t)

	var file = filepath.Join(tmpdir, "tones.raw")

	setupPflag(append([]string{"dtmfgen", "-a", "100", "-o", file}, args...))
	DTMFGenMain()

	return file
}

func Test_GenThenDecode(t *testing.T) {
	var file = genAudio(t, "123A456B789C*0#D")

	setupPflag([]string{"dtmfdecode", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: 123A456B789C*0#D\n")
}

func Test_GenThenDecode_Workers(t *testing.T) {
	var file = genAudio(t, "-r", "16000", "555", "#")

	setupPflag([]string{"dtmfdecode", "-r", "16000", "-j", "4", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: 555#\n")
}

func Test_GenThenDecode_Profile(t *testing.T) {
	var file = genAudio(t, "9", "8", "7")

	var profile = filepath.Join(filepath.Dir(file), "strict.yaml")
	require.NoError(t, os.WriteFile(profile, []byte("min_windows: 2\nworkers: 2\n"), 0o600))

	setupPflag([]string{"dtmfdecode", "-c", profile, "-T", "%H:%M:%S", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: 987\n")

	// Found without -c when it has the usual name.
	require.NoError(t, os.Rename(profile, "touchtone.yaml"))

	setupPflag([]string{"dtmfdecode", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: 987\n")
}

func Test_GenThenDecode_MultiPress(t *testing.T) {
	var file = genAudio(t, "--multi-press", "hi")

	setupPflag([]string{"dtmfdecode", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: 44A444\n")
}

func Test_GenThenDecode_TwoKey(t *testing.T) {
	var file = genAudio(t, "--two-key", "hi")

	setupPflag([]string{"dtmfdecode", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: 4B4C\n")
}

func Test_GenThenDecode_UserConfigProfile(t *testing.T) {
	var file = genAudio(t, "159")

	// Only the isolated config directory is searched.
	var dir, err = os.UserConfigDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(filepath.Dir(file), ".config"), dir)

	setupPflag([]string{"dtmfdecode", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: 159\n")

	// A profile there is used.  This one hides every button.
	var profile = filepath.Join(dir, "touchtone", "touchtone.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(profile), 0o700))
	require.NoError(t, os.WriteFile(profile, []byte("threshold: 1e12\n"), 0o600))
	assert.Equal(t, profile, FindProfile())

	setupPflag([]string{"dtmfdecode", file})
	AssertOutputContains(t, DTMFDecodeMain, "Sequence: \n")
}

func Test_GenThenTT2Text_TwoKey(t *testing.T) {
	var file = genAudio(t, "--two-key", "hi")

	setupPflag([]string{"tt2text", "-r", "8000", file})
	var out = CaptureOutput(t, TT2TextMain)

	assert.Contains(t, out, "Buttons:     4B4C  (checksum 1)\n")
	assert.Contains(t, out, "Encoding:    two-key\n")
	assert.Contains(t, out, "Two-key:     \"HI\"\n")
}

func Test_GenThenTT2Text_MultiPress(t *testing.T) {
	var file = genAudio(t, "-r", "16000", "--multi-press", "wb4apr")

	setupPflag([]string{"tt2text", "-r", "16000", file})
	var out = CaptureOutput(t, TT2TextMain)

	assert.Contains(t, out, "Buttons:     922444427A777  ")
	assert.Contains(t, out, "Multi-press: \"WB4APR\"\n")
}

func Test_TT2Text_Buttons(t *testing.T) {
	isolate(t)

	setupPflag([]string{"tt2text", "9A2B", "42A7A7C"})
	AssertOutputContains(t, TT2TextMain, "Two-key:     \"WB4APR\"\n")
}

func Test_DTMFGen_DryRun(t *testing.T) {
	isolate(t)

	setupPflag([]string{"dtmfgen", "--multi-press", "-n", "hi"})
	AssertOutputContains(t, DTMFGenMain, "44A444  (checksum 0)\n")

	setupPflag([]string{"dtmfgen", "--dry-run", "123"})
	AssertOutputContains(t, DTMFGenMain, "123  (checksum 6)\n")
}

func Test_ReadRecording(t *testing.T) {
	var tmpdir = isolate(t)
	var file = filepath.Join(tmpdir, "a.raw")

	// One second at 8000 samples/sec.
	require.NoError(t, os.WriteFile(file, make([]byte, 16000), 0o600))

	var mtime = time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC)
	require.NoError(t, os.Chtimes(file, mtime, mtime))

	var samples, start, err = readRecording(file, 8000)
	require.NoError(t, err)
	assert.Len(t, samples, 8000)
	assert.True(t, start.Equal(mtime.Add(-time.Second)), "start %v", start)

	// The rate is checked before anything is read or divided by.
	for _, rate := range []int{0, -8000} {
		samples, start, err = readRecording(file, rate)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Nil(t, samples)
		assert.True(t, start.IsZero())
	}

	_, _, err = readRecording(filepath.Join(tmpdir, "missing.raw"), 8000)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
