// Package executor runs translated commands on the local host.
//
// Commands run through the configured shell with the full privileges of the
// server process. There is no allow-list: whatever the translator produces is
// executed.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/metrics"
)

const (
	DefaultShell    = "/bin/sh"
	DefaultTimeout  = 30 * time.Second
	DefaultMaxLines = 50
	DefaultMaxBytes = 1 << 20

	// killGrace bounds how long Wait keeps reading output after the shell
	// exits or is killed while a grandchild still holds the pipe.
	killGrace = 2 * time.Second
)

// SentinelPrefix marks a command the translator could not resolve.
const SentinelPrefix = "#"

// ErrTimeout is reported in Result.Err when a command exceeds its deadline.
var ErrTimeout = errors.New("command timed out")

// IsSentinel reports whether command is an untranslatable-input marker.
func IsSentinel(command string) bool {
	return strings.HasPrefix(command, SentinelPrefix)
}

// Spawner builds the subprocess for a shell script.
type Spawner interface {
	Command(ctx context.Context, shell, script string) *exec.Cmd
}

// ShellSpawner runs scripts as `<shell> -c <script>`.
type ShellSpawner struct{}

// Command implements Spawner.
func (ShellSpawner) Command(ctx context.Context, shell, script string) *exec.Cmd {
	return exec.CommandContext(ctx, shell, "-c", script)
}

// Config controls subprocess execution.
type Config struct {
	Shell    string
	Timeout  time.Duration
	MaxLines int
	MaxBytes int
}

// Result is the outcome of one Execute call.
type Result struct {
	Output   []string
	Type     domain.ResultType
	ExitCode int
	Duration time.Duration
	// Err is set when the command could not run to completion: a timeout,
	// a spawn failure or an I/O failure. A non-zero exit leaves it nil.
	Err error
}

// Executor runs one shell command per call. It holds no per-call state and
// is safe for concurrent use.
type Executor struct {
	shell    string
	timeout  time.Duration
	maxLines int
	maxBytes int
	spawner  Spawner
	logger   *slog.Logger
}

// New creates an Executor. Zero config fields take package defaults; a nil
// spawner uses ShellSpawner.
func New(cfg Config, spawner Spawner, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	if spawner == nil {
		spawner = ShellSpawner{}
	}
	if cfg.Shell == "" {
		cfg.Shell = DefaultShell
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = DefaultMaxLines
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	return &Executor{
		shell:    cfg.Shell,
		timeout:  cfg.Timeout,
		maxLines: cfg.MaxLines,
		maxBytes: cfg.MaxBytes,
		spawner:  spawner,
		logger:   logger,
	}
}

// Timeout returns the per-command deadline.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Execute runs command once and classifies the outcome. Sentinel commands are
// returned as errors without spawning anything. Cancellation of ctx does not
// reach the subprocess; only the executor timeout stops it.
func (e *Executor) Execute(ctx context.Context, command string) Result {
	if IsSentinel(command) {
		metrics.Executions.WithLabelValues(string(domain.ResultError)).Inc()
		return Result{Output: []string{command}, Type: domain.ResultError, ExitCode: -1}
	}

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	out := NewHeadBuffer(e.maxBytes)
	cmd := e.spawner.Command(runCtx, e.shell, command)
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = killGrace
	configureProcessGroup(cmd)

	e.logger.Debug("Executing command", "command", command, "timeout", e.timeout)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)
	metrics.ExecutionDuration.Observe(elapsed.Seconds())

	res := e.classify(runCtx, cmd, err, out)
	res.Duration = elapsed
	metrics.Executions.WithLabelValues(string(res.Type)).Inc()

	if res.Err != nil {
		e.logger.Warn("Command did not complete", "command", command, "error", res.Err, "duration_ms", elapsed.Milliseconds())
	} else {
		e.logger.Info("Command finished",
			"command", command,
			"type", res.Type,
			"exit_code", res.ExitCode,
			"lines", len(res.Output),
			"dropped_bytes", out.Dropped(),
			"duration_ms", elapsed.Milliseconds())
	}
	return res
}

func (e *Executor) classify(runCtx context.Context, cmd *exec.Cmd, err error, out *HeadBuffer) Result {
	if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{
			Output:   []string{fmt.Sprintf("Command timed out after %s seconds", formatSeconds(e.timeout))},
			Type:     domain.ResultError,
			ExitCode: -1,
			Err:      ErrTimeout,
		}
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Result{Output: splitLines(out.String(), e.maxLines), Type: domain.ResultSuccess}
	case errors.As(err, &exitErr):
		return Result{
			Output:   splitLines(out.String(), e.maxLines),
			Type:     domain.ResultError,
			ExitCode: exitErr.ExitCode(),
		}
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil:
		// The shell exited but a background child kept the output pipe open.
		res := Result{Output: splitLines(out.String(), e.maxLines), ExitCode: cmd.ProcessState.ExitCode()}
		res.Type = domain.ResultError
		if cmd.ProcessState.Success() {
			res.Type = domain.ResultSuccess
		}
		return res
	default:
		return Result{
			Output:   []string{"Execution error: " + err.Error()},
			Type:     domain.ResultError,
			ExitCode: -1,
			Err:      err,
		}
	}
}

// splitLines decodes raw output, drops blank lines and keeps the first limit.
func splitLines(raw string, limit int) []string {
	text := strings.ToValidUTF8(raw, "")
	lines := make([]string, 0, min(limit, 16))
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
