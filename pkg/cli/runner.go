// Package cli wires the wfaudit commands together.
package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wfaudit/wfaudit/pkg/cli/flag"
	"github.com/wfaudit/wfaudit/pkg/cli/initcmd"
	"github.com/wfaudit/wfaudit/pkg/cli/list"
	"github.com/wfaudit/wfaudit/pkg/cli/run"
)

type Runner struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	LDFlags *LDFlags
	LogE    *logrus.Entry
}

type LDFlags struct {
	Version string
	Commit  string
	Date    string
}

func (r *Runner) Run(ctx context.Context, args ...string) error {
	globalFlags := &flag.GlobalFlags{}
	cmd := &cli.Command{
		Name:    "wfaudit",
		Usage:   "Audit GitHub Actions workflows for unpinned action references. https://github.com/wfaudit/wfaudit",
		Version: r.LDFlags.Version + " (" + r.LDFlags.Commit + ")",
		Flags:   globalFlags.Flags(),

		EnableShellCompletion: true,
		Commands: []*cli.Command{
			run.New(r.LogE, globalFlags, r.Stdout, r.Stderr),
			list.New(r.LogE, globalFlags, r.Stdout),
			initcmd.New(r.LogE, globalFlags),
			r.newVersionCommand(),
		},
	}

	return cmd.Run(ctx, args) //nolint:wrapcheck
}
