package tui

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

const defaultEditor = "vi"

// Editor opens the user's editor on a temporary file
type Editor struct {
	// gitConfig reads a git config value, returning "" when unset
	gitConfig func(key string) string
}

// NewEditor creates an Editor. gitConfig is consulted for core.editor and may be nil.
func NewEditor(gitConfig func(key string) string) *Editor {
	return &Editor{gitConfig: gitConfig}
}

// Command returns the editor argv, resolved from GIT_EDITOR, EDITOR,
// core.editor and finally vi.
func (e *Editor) Command() ([]string, error) {
	editor := os.Getenv("GIT_EDITOR")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" && e.gitConfig != nil {
		editor = e.gitConfig("core.editor")
	}
	if editor == "" {
		editor = defaultEditor
	}

	argv, err := shellquote.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("failed to parse editor command %q: %w", editor, err)
	}
	if len(argv) == 0 {
		return []string{defaultEditor}, nil
	}
	return argv, nil
}

// Edit opens the editor with initialContent and returns what the user saved
func (e *Editor) Edit(initialContent, filenamePattern string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp("", filenamePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.WriteString(initialContent); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	argv, err := e.Command()
	if err != nil {
		return "", err
	}
	argv = append(argv, tmpFile.Name())

	// #nosec G204 -- the editor is chosen by the user
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}

	return string(content), nil
}
