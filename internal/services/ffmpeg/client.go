package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an ffmpeg client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Stitch runs the encode described by spec. The output path is guarded by a
// file lock for the duration of the run so concurrent invocations targeting
// the same output fail fast instead of interleaving writes.
func (c *Client) Stitch(ctx context.Context, spec StitchSpec, progress func(ProgressUpdate)) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("ffmpeg stitch: %w", err)
	}

	if !spec.Overwrite {
		if _, err := os.Stat(spec.Output); err == nil {
			return fmt.Errorf("ffmpeg stitch: output %s already exists (pass overwrite to replace it)", spec.Output)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("ffmpeg stitch: check output: %w", err)
		}
	}

	lock := flock.New(spec.Output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("ffmpeg stitch: acquire output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("ffmpeg stitch: output %s is locked by another render", spec.Output)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	parser := &progressParser{}
	err = c.exec.Run(runCtx, c.binary, spec.Args(), func(line string) {
		update, ok := parser.feed(line)
		if ok && progress != nil {
			progress(update)
		}
	})
	if err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("ffmpeg stitch: render exceeded %s timeout", c.timeout)
		}
		return fmt.Errorf("ffmpeg stitch: %w", err)
	}

	if _, err := os.Stat(spec.Output); err != nil {
		return fmt.Errorf("ffmpeg stitch: output missing after encode: %w", err)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var stderrTail tailBuffer

	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			if onStdout != nil {
				onStdout(scanner.Text())
			}
		}
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			stderrTail.append(scanner.Text())
		}
	}()

	wg.Wait()
	if err := cmd.Wait(); err != nil {
		if detail := stderrTail.String(); detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}

const tailBufferLines = 8

// tailBuffer keeps the last few stderr lines for error reporting.
type tailBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (t *tailBuffer) append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > tailBufferLines {
		t.lines = t.lines[len(t.lines)-tailBufferLines:]
	}
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "; ")
}
