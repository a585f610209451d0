// Package daemon owns the single-instance lifecycle: pidfile arbitration,
// signal delivery between invocations, and the daemon event loop.
package daemon

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const (
	relaunchRetries  = 20
	relaunchInterval = 50 * time.Millisecond
)

// Pidfile arbitrates the per-user, per-tool daemon singleton. The file holds
// the decimal process id as UTF-8 text, nothing else.
type Pidfile struct {
	path   string
	logger *slog.Logger
}

// NewPidfile returns the pidfile for a tool, at /tmp/<tool>-<uid>.pid.
func NewPidfile(tool string, logger *slog.Logger) *Pidfile {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pidfile{
		path:   fmt.Sprintf("/tmp/%s-%d.pid", tool, os.Getuid()),
		logger: logger,
	}
}

// Path returns the pidfile location.
func (p *Pidfile) Path() string { return p.path }

// Read returns the recorded pid, or 0 when the file is missing or garbled.
func (p *Pidfile) Read() int {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

// Alive reports whether the recorded pid names a live process, probed with
// a zero-effect signal. A recycled pid is an accepted false positive.
func (p *Pidfile) Alive() (int, bool) {
	pid := p.Read()
	if pid == 0 {
		return 0, false
	}
	if err := syscall.Kill(pid, 0); err != nil {
		return pid, false
	}
	return pid, true
}

// AcquireOrSignal decides whether this invocation becomes the daemon.
// A live daemon gets a toggle signal and acquired is false; a missing or
// stale pidfile is overwritten with our pid and acquired is true.
func (p *Pidfile) AcquireOrSignal() (bool, error) {
	if pid, alive := p.Alive(); alive {
		p.logger.Debug("daemon already running, sending toggle", "pid", pid)
		if err := syscall.Kill(pid, syscall.SIGUSR1); err != nil {
			return false, fmt.Errorf("signalling daemon pid %d: %w", pid, err)
		}
		return false, nil
	}

	if err := os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return false, fmt.Errorf("writing pidfile: %w", err)
	}
	return true, nil
}

// Release removes the pidfile. Best-effort: a forced kill leaves a stale
// file that the next AcquireOrSignal heals.
func (p *Pidfile) Release() {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("failed to remove pidfile", "path", p.path, "error", err)
	}
}

// SignalToggle sends SIGUSR1 to the running daemon.
func (p *Pidfile) SignalToggle() error {
	return p.signal(syscall.SIGUSR1)
}

// SignalReload sends SIGUSR2 to the running daemon.
func (p *Pidfile) SignalReload() error {
	return p.signal(syscall.SIGUSR2)
}

func (p *Pidfile) signal(sig syscall.Signal) error {
	pid, alive := p.Alive()
	if !alive {
		return fmt.Errorf("no running daemon")
	}
	if err := syscall.Kill(pid, sig); err != nil {
		return fmt.Errorf("signalling daemon pid %d: %w", pid, err)
	}
	return nil
}

// Relaunch terminates a running daemon and spawns a replacement of the
// current binary with extra environment entries (theme preview override).
// The existing daemon gets SIGTERM, then liveness is polled with bounded
// retries before the pidfile is cleared and the replacement started.
func (p *Pidfile) Relaunch(extraEnv []string) error {
	if pid, alive := p.Alive(); alive {
		p.logger.Info("terminating running daemon", "pid", pid)
		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			return fmt.Errorf("terminating daemon pid %d: %w", pid, err)
		}
		for i := 0; i < relaunchRetries; i++ {
			if _, alive := p.Alive(); !alive {
				break
			}
			time.Sleep(relaunchInterval)
		}
	}
	p.Release()

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving executable: %w", err)
	}
	attr := &os.ProcAttr{
		Env:   append(os.Environ(), extraEnv...),
		Files: []*os.File{nil, nil, nil},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	}
	proc, err := os.StartProcess(exe, []string{exe}, attr)
	if err != nil {
		return fmt.Errorf("spawning replacement daemon: %w", err)
	}
	p.logger.Info("spawned replacement daemon", "pid", proc.Pid)
	return proc.Release()
}
