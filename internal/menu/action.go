package menu

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
)

// PrintAction finishes the menu and hands value back to the caller, which
// prints it on stdout. This makes the menu usable as a picker in scripts.
func PrintAction(value string) Action {
	return func(ctx Context) tea.Cmd {
		return func() tea.Msg {
			return ActionResult{Info: fmt.Sprintf("Selected %s", ctx.Label()), Output: value}
		}
	}
}

// RunAction executes a command line. The line is split with shell quoting
// rules but is not run through a shell.
func RunAction(line string) (Action, error) {
	argv, err := splitCommand(line)
	if err != nil {
		return nil, err
	}
	return func(ctx Context) tea.Cmd {
		return func() tea.Msg {
			cmd := exec.Command(argv[0], argv[1:]...)
			return commandResult(cmd, ctx)
		}
	}, nil
}

// TmuxAction runs a tmux command against the given socket.
func TmuxAction(socket, line string) (Action, error) {
	argv, err := splitCommand(line)
	if err != nil {
		return nil, err
	}
	return func(ctx Context) tea.Cmd {
		return func() tea.Msg {
			return commandResult(tmuxCmd(socket, argv...), ctx)
		}
	}, nil
}

func splitCommand(line string) ([]string, error) {
	argv, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	return argv, nil
}

func commandResult(cmd *exec.Cmd, ctx Context) ActionResult {
	output, err := cmd.CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		if trimmed != "" {
			return ActionResult{Err: fmt.Errorf("%s failed: %w (output: %s)", ctx.Label(), err, trimmed)}
		}
		return ActionResult{Err: fmt.Errorf("%s failed: %w", ctx.Label(), err)}
	}
	return ActionResult{Info: fmt.Sprintf("Ran %s", ctx.Label()), Output: trimmed}
}

func tmuxArgs(socket string, extra ...string) []string {
	args := make([]string, 0, len(extra)+2)
	if trimmed := strings.TrimSpace(socket); trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	return args
}

func tmuxCmd(socket string, extra ...string) *exec.Cmd {
	cmd := exec.Command("tmux", tmuxArgs(socket, extra...)...)
	if dir := socketDir(socket); dir != "" {
		cmd.Env = append(os.Environ(), "TMUX_TMPDIR="+dir)
	}
	return cmd
}

func socketDir(socket string) string {
	trimmed := strings.TrimSpace(socket)
	if trimmed == "" {
		return ""
	}
	return filepath.Dir(trimmed)
}
