// Package git captures diff text from the git executable.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Client runs git commands in a repository directory.
type Client struct {
	dir string
}

// NewClient creates a client rooted at dir. An empty dir uses the process
// working directory.
func NewClient(dir string) *Client {
	return &Client{dir: dir}
}

// Diff returns the unstaged working tree diff.
func (c *Client) Diff(ctx context.Context) (string, error) {
	return c.run(ctx, "diff")
}

// StagedDiff returns the diff of the index against HEAD.
func (c *Client) StagedDiff(ctx context.Context) (string, error) {
	return c.run(ctx, "diff", "--staged")
}

// Root returns the top-level directory of the repository.
func (c *Client) Root(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Version returns the installed git version string, verifying the executable
// is available.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsRepository reports whether the client's directory is inside a work tree.
func (c *Client) IsRepository(ctx context.Context) bool {
	out, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}
