package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"go.uber.org/zap"
)

// runCommand runs an external program. exitCode is -1 when the program could
// not be started, in which case err is set.
var runCommand = func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return outBuf.Bytes(), errBuf.Bytes(), exitErr.ExitCode(), nil
	}
	if runErr != nil {
		return outBuf.Bytes(), errBuf.Bytes(), -1, runErr
	}
	return outBuf.Bytes(), errBuf.Bytes(), 0, nil
}

type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, strings.TrimSpace(e.Stderr))
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// SpacetimePublisher calls the replace-all reducer through the spacetime CLI.
type SpacetimePublisher struct {
	Binary   string
	Server   string
	Database string
	Reducer  string
	Logger   *zap.Logger
}

func (p *SpacetimePublisher) Name() string {
	return "spacetimedb"
}

// EncodeArgs renders the reducer argument list: a single argument holding
// the vector of templates.
func EncodeArgs(templates []tilemap.Template) ([]byte, error) {
	if templates == nil {
		templates = []tilemap.Template{}
	}
	return json.Marshal([]interface{}{templates})
}

func (p *SpacetimePublisher) Args(templates []tilemap.Template) ([]string, error) {
	payload, err := EncodeArgs(templates)
	if err != nil {
		return nil, fmt.Errorf("encode reducer args: %w", err)
	}
	return []string{"call", "-s", p.Server, p.Database, p.Reducer, string(payload)}, nil
}

func (p *SpacetimePublisher) Publish(ctx context.Context, batch Batch) error {
	args, err := p.Args(batch.Templates)
	if err != nil {
		return err
	}

	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("calling reducer",
		zap.String("binary", p.Binary),
		zap.String("server", p.Server),
		zap.String("database", p.Database),
		zap.String("reducer", p.Reducer))

	command := p.Binary + " call " + p.Reducer
	stdout, stderr, code, err := runCommand(ctx, p.Binary, args...)
	if err != nil {
		return &CommandError{Command: command, ExitCode: code, Stderr: string(stderr), Err: err}
	}
	if code != 0 {
		return &CommandError{Command: command, ExitCode: code, Stderr: string(stderr)}
	}

	if out := strings.TrimSpace(string(stdout)); out != "" {
		logger.Debug("reducer output", zap.String("stdout", out))
	}
	return nil
}
