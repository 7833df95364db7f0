// Package run implements the 'wfaudit run' command.
package run

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/wfaudit/wfaudit/pkg/cli/flag"
	"github.com/wfaudit/wfaudit/pkg/config"
	"github.com/wfaudit/wfaudit/pkg/controller/run"
	"github.com/wfaudit/wfaudit/pkg/log"
)

type runner struct {
	logE   *logrus.Entry
	stdout io.Writer
	stderr io.Writer
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, stdout, stderr io.Writer) *cli.Command {
	r := &runner{
		logE:   logE,
		stdout: stdout,
		stderr: stderr,
	}
	return r.Command(globalFlags)
}

// Flags holds the command-line flags for the run command.
type Flags struct {
	Format string
	Check  bool
	Args   []string
}

func (r *runner) Command(globalFlags *flag.GlobalFlags) *cli.Command {
	flags := &Flags{}
	return &cli.Command{
		Name:  "run",
		Usage: "Audit action references in GitHub Actions workflows",
		Description: `If no argument is passed, wfaudit searches workflow files from .github/workflows.

$ wfaudit run

You can also pass workflow file paths as arguments.

e.g.

$ wfaudit run .github/actions/foo/action.yaml .github/actions/bar/action.yaml
`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return r.action(ctx, globalFlags, flags)
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "check",
				Usage:       "Exit with a non-zero status code if action references aren't pinned",
				Destination: &flags.Check,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format (sarif)",
				Destination: &flags.Format,
			},
		},
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:        "files",
				Max:         -1,
				Destination: &flags.Args,
			},
		},
	}
}

func (r *runner) action(ctx context.Context, globalFlags *flag.GlobalFlags, flags *Flags) error {
	log.SetLevel(globalFlags.LogLevel, r.logE)
	fs := afero.NewOsFs()
	param := &run.ParamRun{
		WorkflowFilePaths: flags.Args,
		ConfigFilePath:    globalFlags.Config,
		Format:            flags.Format,
		Check:             flags.Check,
		Stdout:            r.stdout,
		Stderr:            r.stderr,
	}
	ctrl := run.New(fs, config.NewFinder(fs), config.NewReader(fs), param)
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
