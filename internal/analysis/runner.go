// Package analysis runs pyright against paths confined to a configured root.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a requested path resolves outside Root.
var ErrOutsideRoot = errors.New("path is outside the analysis root")

// Runner invokes the pyright binary. Root and Binary are absolute after New.
type Runner struct {
	Root   string
	Binary string
}

// New resolves root and binary against the working directory. A binary given
// as a bare name is looked up on PATH when Check runs.
func New(root, binary string) (*Runner, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving analysis root: %w", err)
	}
	if strings.ContainsRune(binary, filepath.Separator) && !filepath.IsAbs(binary) {
		if binary, err = filepath.Abs(binary); err != nil {
			return nil, fmt.Errorf("resolving pyright binary: %w", err)
		}
	}
	return &Runner{Root: absRoot, Binary: binary}, nil
}

// Resolve maps p (relative to Root, or absolute) to a cleaned absolute path
// that is Root itself or below it.
func (r *Runner) Resolve(p string) (string, error) {
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.Root, p)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(r.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}
	return abs, nil
}

// Report is the payload of one check.
type Report struct {
	PyrightRoot string `json:"pyrightRoot"`
	CheckedPath string `json:"checkedPath"`
	ExitCode    int    `json:"exitCode"`
	Stderr      string `json:"stderr,omitempty"`
	Result      any    `json:"result"`
}

// ParseFailure stands in for Result when stdout is not JSON.
type ParseFailure struct {
	ParseError bool   `json:"parseError"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}

// Check runs pyright with --outputjson in targetPath. configPath and
// pythonVersion are optional. A non-zero exit code is reported in the Report,
// not as an error; failing to start the binary is an error.
func (r *Runner) Check(ctx context.Context, targetPath, configPath, pythonVersion string) (*Report, error) {
	target, err := r.Resolve(targetPath)
	if err != nil {
		return nil, err
	}

	args := []string{"--outputjson"}
	if configPath != "" {
		cfg, err := r.Resolve(configPath)
		if err != nil {
			return nil, err
		}
		args = append(args, "--project", cfg)
	}
	if pythonVersion != "" {
		args = append(args, "--pythonversion", pythonVersion)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = target
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running pyright: %w", err)
		}
		exitCode = exitErr.ExitCode()
	}
	slog.Debug("pyright finished", "target", target, "exit_code", exitCode)

	return &Report{
		PyrightRoot: r.Root,
		CheckedPath: target,
		ExitCode:    exitCode,
		Stderr:      stderr.String(),
		Result:      parseOutput(stdout.String(), stderr.String()),
	}, nil
}

// parseOutput decodes pyright's JSON report. Empty output yields nil.
func parseOutput(stdout, stderr string) any {
	raw := strings.TrimSpace(stdout)
	if raw == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return ParseFailure{ParseError: true, Stdout: stdout, Stderr: stderr}
	}
	return v
}
