// Package viewer launches the configured external GUI image viewer on a
// directory of images. The viewer is detached so it outlives the CLI process.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Starter abstracts process launch for testability.
type Starter interface {
	Start(ctx context.Context, binary string, args []string) (pid int, err error)
}

// Option configures the client.
type Option func(*Client)

// WithStarter injects a custom process starter (primarily for tests).
func WithStarter(starter Starter) Option {
	return func(c *Client) {
		if starter != nil {
			c.starter = starter
		}
	}
}

// Client wraps the external viewer binary.
type Client struct {
	binary  string
	args    []string
	starter Starter
}

// New constructs a viewer client. Extra args are inserted before the
// directory path on launch.
func New(binary string, args []string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("viewer binary required")
	}
	client := &Client{
		binary:  binary,
		args:    append([]string(nil), args...),
		starter: processStarter{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Open launches the viewer on dir and returns the detached process id.
func (c *Client) Open(ctx context.Context, dir string) (int, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return 0, errors.New("viewer open: empty directory")
	}
	args := append(append([]string(nil), c.args...), dir)
	pid, err := c.starter.Start(ctx, c.binary, args)
	if err != nil {
		return 0, fmt.Errorf("viewer open: launch %s: %w", c.binary, err)
	}
	return pid, nil
}

type processStarter struct{}

func (processStarter) Start(ctx context.Context, binary string, args []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cmd := exec.Command(binary, args...)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Detach: the GUI keeps running after the CLI exits.
	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}
