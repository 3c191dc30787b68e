// Package editor opens snippet content in the user's text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Edit writes content to a temporary file with the given extension,
// opens it in the editor command, and returns the edited content once
// the editor exits. The command may carry arguments ("code --wait").
func Edit(command, content, extension string) (string, error) {
	if extension == "" {
		extension = ".txt"
	}

	tmp, err := os.CreateTemp("", "snip-*"+extension)
	if err != nil {
		return "", fmt.Errorf("editor: create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("editor: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("editor: close temp file: %w", err)
	}

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return "", fmt.Errorf("editor: empty editor command")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor: run %s: %w", parts[0], err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editor: read temp file: %w", err)
	}
	return string(edited), nil
}
