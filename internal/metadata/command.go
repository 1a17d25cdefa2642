package metadata

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// implements Assistant by running an external program: the prompt is written
// to its stdin and its stdout is the reply
type CommandAssistant struct {
	name string
	args []string
}

func NewCommandAssistant(opts Options) (*CommandAssistant, error) {
	fields := strings.Fields(opts.Command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("assistant command is required")
	}

	return &CommandAssistant{
		name: fields[0],
		args: fields[1:],
	}, nil
}

func (a *CommandAssistant) Complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	cmd := exec.CommandContext(ctx, a.name, a.args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s",
				a.name, err, truncateString(msg, 200))
		}
		return "", fmt.Errorf("%s failed: %w", a.name, err)
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", fmt.Errorf("no output from %s", a.name)
	}
	return text, nil
}
