// Package editor opens text in the user's editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const fallbackEditor = "vim"

// Editor handles editor resolution and invocation.
type Editor struct {
	configured string
}

// New creates an Editor. configured is the editor from settings, may be "".
func New(configured string) *Editor {
	return &Editor{configured: configured}
}

// Resolve returns the editor command to use.
// Order: settings > $EDITOR > vim
func (e *Editor) Resolve() string {
	if e.configured != "" {
		return e.configured
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return fallbackEditor
}

// Edit opens the editor with the given content and returns the edited content.
// The command may carry arguments, e.g. "code --wait".
func (e *Editor) Edit(content string) (string, error) {
	tmpFile, err := os.CreateTemp("", "kanboard-edit-*.md")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	argv := strings.Fields(e.Resolve())
	if len(argv) == 0 {
		return "", fmt.Errorf("no editor configured")
	}
	cmd := exec.Command(argv[0], append(argv[1:], tmpPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", argv[0], err)
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}
	return string(edited), nil
}
