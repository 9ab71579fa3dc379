package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/leocov-dev/packlaunch/core"
)

// ProcessLauncher starts the game process.
type ProcessLauncher interface {
	Execute(ctx context.Context, args []string, dir string) error
}

// ExecLauncher runs the command as a child process.
type ExecLauncher struct {
	Stdout io.Writer
	Stderr io.Writer
	// Wait blocks until the game exits
	Wait bool
}

func (l *ExecLauncher) Execute(ctx context.Context, args []string, dir string) error {
	if len(args) == 0 {
		return &core.ProcessLaunchError{Err: errors.New("empty command")}
	}
	command := exec.CommandContext(ctx, args[0], args[1:]...)
	command.Dir = dir
	command.Stdout = l.Stdout
	command.Stderr = l.Stderr
	if command.Stdout == nil {
		command.Stdout = os.Stdout
	}
	if command.Stderr == nil {
		command.Stderr = os.Stderr
	}

	if err := command.Start(); err != nil {
		return &core.ProcessLaunchError{Command: args[0], Err: err}
	}
	if !l.Wait {
		return command.Process.Release()
	}
	if err := command.Wait(); err != nil {
		return fmt.Errorf("game exited: %w", err)
	}
	return nil
}

// Command is a fully assembled launch command.
type Command struct {
	Args []string
	Dir  string
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Launch hands the command to the process launcher.
func Launch(ctx context.Context, l ProcessLauncher, c Command) error {
	return l.Execute(ctx, c.Args, c.Dir)
}
