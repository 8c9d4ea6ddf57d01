// Package publish commits the regenerated dashboard and pushes it to the
// hosting remote by shelling out to the git binary.
package publish

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/mujaffa/commandcenter/pkg/constants"
	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/logging"
)

// Runner executes an external command in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Git stages, commits and pushes everything under Dir.
type Git struct {
	Dir    string
	Remote string
	Branch string
	Runner Runner
}

// NewGit creates a Git publisher for dir using the default remote and branch.
func NewGit(dir string) *Git {
	return &Git{
		Dir:    dir,
		Remote: constants.DefaultRemote,
		Branch: constants.DefaultBranch,
		Runner: ExecRunner{},
	}
}

// Publish runs add, commit and push in that order and stops at the first
// step that fails. An empty commit (nothing changed) counts as a failure.
func (g *Git) Publish(ctx context.Context, message string) error {
	steps := []struct {
		op   string
		args []string
	}{
		{"add", []string{"add", "."}},
		{"commit", []string{"commit", "-m", message}},
		{"push", []string{"push", g.remote(), g.branch()}},
	}

	logger := logging.FromContext(ctx)
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug().
			Str("step", step.op).
			Str("dir", g.Dir).
			Msg("Running git")

		output, err := g.runner().Run(ctx, g.Dir, "git", step.args...)
		if err != nil {
			pe := errors.NewProcessError(step.op, "git "+strings.Join(step.args, " "), string(bytes.TrimSpace(output)), err)
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				pe.ExitCode = exitErr.ExitCode()
			}
			return pe
		}
	}
	return nil
}

func (g *Git) runner() Runner {
	if g.Runner == nil {
		return ExecRunner{}
	}
	return g.Runner
}

func (g *Git) remote() string {
	if g.Remote == "" {
		return constants.DefaultRemote
	}
	return g.Remote
}

func (g *Git) branch() string {
	if g.Branch == "" {
		return constants.DefaultBranch
	}
	return g.Branch
}

// CommitMessage is the message used for an update made at t.
func CommitMessage(t time.Time) string {
	return constants.CommitMessagePrefix + t.Format(constants.TimeFormatCommit)
}
