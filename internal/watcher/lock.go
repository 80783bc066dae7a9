package watcher

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrAlreadyRunning is returned when another watcher holds the lockfile
var ErrAlreadyRunning = errors.New("dayly watch is already running")

// Lock is a PID lockfile guarding a single watcher instance
type Lock struct {
	path string
	pid  int
}

// AcquireLock writes the current PID to path. A lockfile left behind by a
// process that is no longer running is replaced.
func AcquireLock(path string) (*Lock, error) {
	if pid, err := readPID(path); err == nil {
		if isWatcher(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		logger.Warn("Replacing stale watcher lockfile", "path", path, "pid", pid)
	}

	pid := getpidFunc()
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	pid, err := readPID(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if pid != l.pid {
		return nil
	}
	return os.Remove(l.path)
}

func readPID(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, errors.New("invalid process ID in lockfile")
	}
	return pid, nil
}

func isWatcher(pid int) bool {
	if pid == getpidFunc() {
		return false
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
