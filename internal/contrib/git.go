package contrib

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runGit executes git -C repo with args and returns stdout.
type runGit func(ctx context.Context, repo string, args ...string) ([]byte, error)

func execGit(ctx context.Context, repo string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repo}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %s", args[0], msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}
