package repl

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultEditor = "vi"

// editorCommand returns the command that opens path in the user's editor.
// $VISUAL is preferred over $EDITOR, and either may carry arguments.
func editorCommand(path string) *exec.Cmd {
	editor := defaultEditor

	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			editor = v

			break
		}
	}

	args := strings.Fields(editor)

	return exec.Command(args[0], append(args[1:], path)...) //nolint:gosec
}

// editCmd suspends the program while the editor runs. The model reloads the
// material when it receives the resulting [editDoneMsg].
func editCmd(path string) tea.Cmd {
	return tea.ExecProcess(editorCommand(path), func(err error) tea.Msg {
		return editDoneMsg{err: err}
	})
}
