package daemon

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPidfile(t *testing.T) *Pidfile {
	t.Helper()
	p := NewPidfile(fmt.Sprintf("wlpick-test-%d", os.Getpid()), slog.Default())
	t.Cleanup(p.Release)
	return p
}

func TestPidfilePath(t *testing.T) {
	p := NewPidfile("wlpick-clip", nil)
	assert.Equal(t, fmt.Sprintf("/tmp/wlpick-clip-%d.pid", os.Getuid()), p.Path())
}

func TestReadMissingFile(t *testing.T) {
	p := testPidfile(t)
	assert.Zero(t, p.Read())
	_, alive := p.Alive()
	assert.False(t, alive)
}

func TestReadGarbledFile(t *testing.T) {
	p := testPidfile(t)
	require.NoError(t, os.WriteFile(p.Path(), []byte("not-a-pid"), 0o644))
	assert.Zero(t, p.Read())
}

func TestAcquireWritesOwnPid(t *testing.T) {
	p := testPidfile(t)

	acquired, err := p.AcquireOrSignal()
	require.NoError(t, err)
	assert.True(t, acquired)

	data, err := os.ReadFile(p.Path())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data), "decimal pid, no trailing structure")
}

func TestAcquireHealsStalePidfile(t *testing.T) {
	p := testPidfile(t)
	// Pid values past the default kernel pid_max cannot name a live process.
	require.NoError(t, os.WriteFile(p.Path(), []byte("4194304"), 0o644))

	acquired, err := p.AcquireOrSignal()
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.Equal(t, os.Getpid(), p.Read())
}

func TestSignalWithoutDaemon(t *testing.T) {
	p := testPidfile(t)
	assert.Error(t, p.SignalToggle())
	assert.Error(t, p.SignalReload())
}

func TestAliveDetectsOwnProcess(t *testing.T) {
	p := testPidfile(t)
	require.NoError(t, os.WriteFile(p.Path(), []byte(strconv.Itoa(os.Getpid())), 0o644))

	pid, alive := p.Alive()
	assert.True(t, alive)
	assert.Equal(t, os.Getpid(), pid)
}

func TestReleaseIsIdempotent(t *testing.T) {
	p := testPidfile(t)
	_, err := p.AcquireOrSignal()
	require.NoError(t, err)

	p.Release()
	p.Release()
	assert.Zero(t, p.Read())
}
