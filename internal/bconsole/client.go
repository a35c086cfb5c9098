package bconsole

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/alucardeht/bareos-mcp/internal/logger"
)

const DefaultBinary = "bconsole"

var (
	ErrSpawn         = errors.New("failed to spawn bconsole")
	ErrCommandFailed = errors.New("bconsole command failed")
)

type Config struct {
	// Path is the binary to run. A bare name is looked up in PATH once,
	// by ResolvePath.
	Path string
	// ConfigFile is passed as "-c <file>" when set.
	ConfigFile string
	// Encoding names the charset of bconsole's stdout.
	Encoding string
}

// Client runs one bconsole process per command. There is no session
// reuse and no timeout besides whatever ctx carries.
type Client struct {
	path    string
	args    []string
	decoder *Decoder
	log     *slog.Logger
}

func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	decoder, err := NewDecoder(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	path := cfg.Path
	if path == "" {
		path = DefaultBinary
	}

	var args []string
	if cfg.ConfigFile != "" {
		args = append(args, "-c", cfg.ConfigFile)
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		path:    path,
		args:    args,
		decoder: decoder,
		log:     log,
	}, nil
}

// ResolvePath turns a bare command name into an absolute path via PATH.
// Names containing a separator are returned unchanged. When the lookup
// fails the name is kept so that every later call reports the spawn error.
func ResolvePath(name string) (string, error) {
	if name == "" {
		name = DefaultBinary
	}
	if strings.ContainsRune(name, '/') {
		return name, nil
	}

	resolved, err := exec.LookPath(name)
	if err != nil {
		return name, fmt.Errorf("executable %q not found: %w", name, err)
	}
	return resolved, nil
}

func (c *Client) Path() string {
	return c.path
}

// Run sends command followed by "quit" and returns stdout.
//
// Output on stdout counts as success whatever the exit status, because
// bconsole prints banners to stderr and can exit non-zero after a good
// answer. Only an empty stdout together with a failed exit is an error.
// This can hide a real failure that printed partial output.
func (c *Client) Run(ctx context.Context, command string) (string, error) {
	started := time.Now()

	cmd := exec.CommandContext(ctx, c.path, c.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return "", fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	_, writeErr := io.WriteString(stdin, command+"\n")
	if writeErr == nil {
		_, writeErr = io.WriteString(stdin, "quit\n")
	}
	if closeErr := stdin.Close(); writeErr == nil {
		writeErr = closeErr
	}

	waitErr := cmd.Wait()

	c.log.Debug("bconsole finished",
		"command", command,
		"exit_code", cmd.ProcessState.ExitCode(),
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len(),
		"duration", time.Since(started))

	if stdout.Len() > 0 {
		if waitErr != nil {
			c.log.Warn("bconsole exited with error but produced output",
				"command", command,
				"error", waitErr)
		}
		return c.decoder.Decode(stdout.Bytes()), nil
	}

	if waitErr != nil {
		return "", fmt.Errorf("%w: %s", ErrCommandFailed, strings.TrimSpace(stderr.String()))
	}
	if writeErr != nil {
		return "", fmt.Errorf("%w: writing command: %v", ErrCommandFailed, writeErr)
	}
	return "", nil
}

func (c *Client) ListJobs(ctx context.Context, filter JobFilter) (string, error) {
	return c.Run(ctx, ListJobsCommand(filter))
}

func (c *Client) GetJobStatus(ctx context.Context, jobID string) (string, error) {
	return c.Run(ctx, JobStatusCommand(jobID))
}

func (c *Client) GetJobLog(ctx context.Context, jobID string) (string, error) {
	return c.Run(ctx, JobLogCommand(jobID))
}

func (c *Client) ListClients(ctx context.Context) (string, error) {
	return c.Run(ctx, ListClientsCommand())
}

func (c *Client) ListFilesets(ctx context.Context) (string, error) {
	return c.Run(ctx, ListFilesetsCommand())
}

func (c *Client) ListPools(ctx context.Context) (string, error) {
	return c.Run(ctx, ListPoolsCommand())
}

func (c *Client) ListVolumes(ctx context.Context, pool string) (string, error) {
	return c.Run(ctx, ListVolumesCommand(pool))
}

func (c *Client) ListFiles(ctx context.Context, jobID string) (string, error) {
	return c.Run(ctx, ListFilesCommand(jobID))
}

func (c *Client) ShowJob(ctx context.Context, name string) (string, error) {
	return c.Run(ctx, ShowCommand("job", name))
}

func (c *Client) ShowJobDefs(ctx context.Context, name string) (string, error) {
	return c.Run(ctx, ShowCommand("jobdefs", name))
}

func (c *Client) ShowSchedule(ctx context.Context, name string) (string, error) {
	return c.Run(ctx, ShowCommand("schedule", name))
}
