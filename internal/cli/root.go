// Package cli implements heartctl, the operator command line for the
// command service.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashureev/heartx/internal/app"
)

// ErrCommandFailed is returned when an executed command reported an error.
var ErrCommandFailed = errors.New("command reported an error")

// Builder constructs the application for a command invocation.
type Builder func(ctx context.Context) (*app.App, error)

// Console owns the application a heartctl invocation builds. The application
// is built on first use so that help output never touches the database.
type Console struct {
	build Builder
	app   *app.App
}

// NewConsole creates a Console that builds its application with build.
func NewConsole(build Builder) *Console {
	return &Console{build: build}
}

// Close drains pending history writes and closes the database, if the
// application was ever built.
func (c *Console) Close(ctx context.Context) error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close(ctx)
	c.app = nil
	return err
}

func (c *Console) load(cmd *cobra.Command) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	a, err := c.build(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	c.app = a
	return a, nil
}

// NewRootCmd wires the cobra root command.
func (c *Console) NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "heartctl",
		Short:         "Mini Heart X operator console",
		Long:          "heartctl translates natural language to shell commands, runs them and inspects command history.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTranslateCommand(c.load))
	root.AddCommand(newHistoryCommand(c.load))
	root.AddCommand(newToolsCommand(c.load))
	root.AddCommand(newDiscoverCommand(c.load))
	return root
}
