package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

// newVersionCommand returns the command printing the wfaudit version and
// commit, matching the output of the global --version flag.
func (r *Runner) newVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show the wfaudit version",
		Action: func(_ context.Context, c *cli.Command) error {
			cli.ShowVersion(c)
			return nil
		},
	}
}
