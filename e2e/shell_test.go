//go:build linux

// ABOUTME: E2E tests for the shell through the real binary on a pty
// ABOUTME: Covers exit paths, the cancel hint, mid-line editing, builtins and terminal restore

package e2e

import (
	"testing"
	"time"
)

const wait = 5 * time.Second

func TestShell_CtrlD_ExitsZeroAndRestores(t *testing.T) {
	s := startShell(t)
	defer s.close()

	s.expect(t, "rawsh", wait)
	s.expect(t, "$ ", wait)
	s.sendCtrl(t, 'd')

	if code := s.waitExit(t, wait); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	s.expectRestored(t)
}

func TestShell_CtrlC_EmptyLineHint(t *testing.T) {
	s := startShell(t)
	defer s.close()

	s.expect(t, "$ ", wait)
	s.sendCtrl(t, 'c')
	s.expect(t, "^C\r\nUse Ctrl-D (i.e. EOF) to exit.", wait)

	// Ctrl+C is in-band: the shell is still running.
	s.send(t, "exit\r")
	if code := s.waitExit(t, wait); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	s.expectRestored(t)
}

func TestShell_MidLineInsert(t *testing.T) {
	s := startShell(t)
	defer s.close()

	s.expect(t, "$ ", wait)
	s.send(t, "ac\x1b[Db\r")
	s.expect(t, "rawsh: command not found: abc", wait)
	s.sendCtrl(t, 'd')
	s.waitExit(t, wait)
}

func TestShell_HistoryRecall(t *testing.T) {
	s := startShell(t)
	defer s.close()

	s.expect(t, "$ ", wait)
	s.send(t, "hello\r")
	s.expect(t, "command not found: hello", wait)
	s.send(t, "\x1b[A!\r")
	s.expect(t, "command not found: hello!", wait)
	s.send(t, "history\r")
	s.expect(t, "    2  hello!", wait)
	s.sendCtrl(t, 'd')
	s.waitExit(t, wait)
}

func TestShell_HelpAndCompletion(t *testing.T) {
	s := startShell(t)
	defer s.close()

	s.expect(t, "$ ", wait)
	s.send(t, "hel\t\r")
	s.expect(t, "Editing keys", wait)
	s.sendCtrl(t, 'd')
	s.waitExit(t, wait)
}

func TestShell_Version(t *testing.T) {
	s := startShell(t, "--version")
	defer s.close()

	s.expect(t, "rawsh dev", wait)
	if code := s.waitExit(t, wait); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}
