//go:build linux

// ABOUTME: E2E harness: builds the rawsh binary once and drives it through a pseudo-terminal
// ABOUTME: Sessions capture output, send keystrokes and check the tty settings after exit

package e2e

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

var binPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "rawsh-e2e")
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating temp dir: %v\n", err)
		os.Exit(1)
	}
	binPath = filepath.Join(dir, "rawsh")

	build := exec.Command("go", "build", "-o", binPath, "../cmd/rawsh")
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "building rawsh: %v\n%s", err, out)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type session struct {
	cmd  *exec.Cmd
	ptmx *os.File
	tty  *os.File
	orig *unix.Termios

	mu  sync.Mutex
	buf bytes.Buffer

	done    chan struct{}
	waitErr error
}

// startShell launches rawsh on a fresh pty with an empty config file.
func startShell(t *testing.T, extraArgs ...string) *session {
	t.Helper()
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 100}); err != nil {
		t.Fatalf("setting pty size: %v", err)
	}
	orig, err := unix.IoctlGetTermios(int(tty.Fd()), unix.TCGETS)
	if err != nil {
		t.Fatalf("reading pty termios: %v", err)
	}

	home := t.TempDir()
	cfg := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(cfg, []byte("show_cwd: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	args := append([]string{"--config", cfg, "--no-color"}, extraArgs...)
	cmd := exec.Command(binPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "TERM=xterm-256color")
	cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting rawsh: %v", err)
	}

	s := &session{cmd: cmd, ptmx: ptmx, tty: tty, orig: orig, done: make(chan struct{})}
	go s.readLoop()
	go func() {
		s.waitErr = cmd.Wait()
		close(s.done)
	}()
	return s
}

func (s *session) readLoop() {
	chunk := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(chunk)
		if n > 0 {
			s.mu.Lock()
			s.buf.Write(chunk[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.String()
}

func (s *session) close() {
	select {
	case <-s.done:
	default:
		_ = s.cmd.Process.Kill()
		<-s.done
	}
	s.ptmx.Close()
	s.tty.Close()
}

func (s *session) send(t *testing.T, keys string) {
	t.Helper()
	if _, err := io.WriteString(s.ptmx, keys); err != nil {
		t.Fatalf("writing %q: %v", keys, err)
	}
}

func (s *session) sendCtrl(t *testing.T, c byte) {
	t.Helper()
	s.send(t, string([]byte{c & 0x1f}))
}

// expect waits until the output contains want.
func (s *session) expect(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q\noutput so far: %q", want, s.output())
}

// waitExit waits for the process and returns its exit code.
func (s *session) waitExit(t *testing.T, timeout time.Duration) int {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(timeout):
		t.Fatalf("rawsh did not exit within %v\noutput: %q", timeout, s.output())
	}
	var ee *exec.ExitError
	if errors.As(s.waitErr, &ee) {
		return ee.ExitCode()
	}
	if s.waitErr != nil {
		t.Fatalf("waiting for rawsh: %v", s.waitErr)
	}
	return 0
}

// expectRestored checks the pty is back in the mode it started in.
func (s *session) expectRestored(t *testing.T) {
	t.Helper()
	got, err := unix.IoctlGetTermios(int(s.tty.Fd()), unix.TCGETS)
	if err != nil {
		t.Fatalf("reading pty termios: %v", err)
	}
	if got.Lflag != s.orig.Lflag || got.Iflag != s.orig.Iflag || got.Oflag != s.orig.Oflag || got.Cflag != s.orig.Cflag {
		t.Errorf("termios not restored: lflag %#x/%#x iflag %#x/%#x oflag %#x/%#x",
			got.Lflag, s.orig.Lflag, got.Iflag, s.orig.Iflag, got.Oflag, s.orig.Oflag)
	}
}
