// Package runner executes maintenance scripts through a shell and streams
// their merged output one line at a time.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const (
	defaultShell   = "sh"
	maxLineLength  = 1024 * 1024
	executableBits = 0o111
)

// Runner launches a script and returns its output stream.
type Runner interface {
	Run(ctx context.Context, path string) (*Stream, error)
}

// Shell runs scripts as `<shell> <path>`.
type Shell struct {
	Shell string
	Env   []string
}

// New returns a Shell runner using sh.
func New() *Shell {
	return &Shell{Shell: defaultShell}
}

// Stream delivers the lines a script writes to stdout and stderr, in the order
// they were written. Lines is closed once the output is exhausted or the
// run context is cancelled.
type Stream struct {
	Path string

	lines  chan string
	exited chan struct{}
	group  errgroup.Group

	mu     sync.Mutex
	code   int
	killed bool
	err    error
}

// Lines returns the channel of output lines.
func (s *Stream) Lines() <-chan string {
	return s.lines
}

// Wait blocks until the process has exited and all output was read. It returns
// the exit code; -1 means the process was killed or never reported one.
func (s *Stream) Wait() (int, error) {
	groupErr := s.group.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.code, s.err
	}
	return s.code, groupErr
}

// Killed reports whether the process group was terminated by cancellation.
func (s *Stream) Killed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.killed
}

// MarkExecutable adds the execute bits to path.
func MarkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	mode := info.Mode().Perm()
	if mode&executableBits == executableBits {
		return nil
	}
	return os.Chmod(path, mode|executableBits)
}

// Run marks path executable and starts it through the shell. The child gets
// its own process group so cancelling ctx terminates everything it spawned.
func (s *Shell) Run(ctx context.Context, path string) (*Stream, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("script path required")
	}
	if err := MarkExecutable(path); err != nil {
		return nil, fmt.Errorf("mark executable: %w", err)
	}
	shell := s.Shell
	if shell == "" {
		shell = defaultShell
	}

	// A single pipe for both descriptors keeps stdout and stderr interleaved in
	// the order the child wrote them.
	reader, writer, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create output pipe: %w", err)
	}
	cmd := exec.Command(shell, path)
	cmd.Stdout = writer
	cmd.Stderr = writer
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}
	if err := cmd.Start(); err != nil {
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	writer.Close()

	stream := &Stream{
		Path:   path,
		lines:  make(chan string),
		exited: make(chan struct{}),
		code:   -1,
	}
	pid := cmd.Process.Pid

	stream.group.Go(func() error {
		defer close(stream.lines)
		defer reader.Close()
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), " \t\r")
			select {
			case stream.lines <- line:
			case <-ctx.Done():
				return nil
			}
		}
		if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
			return fmt.Errorf("read output: %w", err)
		}
		return nil
	})

	stream.group.Go(func() error {
		defer close(stream.exited)
		err := cmd.Wait()
		stream.mu.Lock()
		defer stream.mu.Unlock()
		if cmd.ProcessState != nil {
			stream.code = cmd.ProcessState.ExitCode()
		}
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			stream.err = err
		}
		return nil
	})

	stream.group.Go(func() error {
		select {
		case <-stream.exited:
			return nil
		case <-ctx.Done():
		}
		stream.mu.Lock()
		stream.killed = true
		stream.mu.Unlock()
		if err := unix.Kill(-pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
			return fmt.Errorf("kill process group %d: %w", pid, err)
		}
		return nil
	})

	return stream, nil
}
