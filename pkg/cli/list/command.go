// Package list implements the 'wfaudit list' command.
package list

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/wfaudit/wfaudit/pkg/cli/flag"
	"github.com/wfaudit/wfaudit/pkg/config"
	"github.com/wfaudit/wfaudit/pkg/controller/list"
	"github.com/wfaudit/wfaudit/pkg/log"
)

// Flags holds the command-line flags for the list command.
type Flags struct {
	Owner string
	Args  []string
}

type runner struct {
	logE   *logrus.Entry
	stdout io.Writer
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, stdout io.Writer) *cli.Command {
	r := &runner{
		logE:   logE,
		stdout: stdout,
	}
	return r.Command(globalFlags)
}

func (r *runner) Command(globalFlags *flag.GlobalFlags) *cli.Command {
	flags := &Flags{}
	return &cli.Command{
		Name:  "list",
		Usage: "List action references and their pin classification",
		Description: `List action references from workflow files.

$ wfaudit list

Output format (CSV):
<FilePath>,<LineNumber>,<Name>,<Ref>,<Pin>

Filter by owner:
$ wfaudit list --owner actions
`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return r.action(ctx, globalFlags, flags)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "Filter actions by repository owner",
				Destination: &flags.Owner,
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

func (r *runner) action(_ context.Context, globalFlags *flag.GlobalFlags, flags *Flags) error {
	log.SetLevel(globalFlags.LogLevel, r.logE)

	fs := afero.NewOsFs()
	cfgFilePath, err := config.NewFinder(fs).Find(globalFlags.Config)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := config.NewReader(fs).Read(cfg, cfgFilePath); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}

	param := &list.Param{
		WorkflowFilePaths: flags.Args,
		ConfigFilePath:    cfgFilePath,
		Owner:             flags.Owner,
	}
	ctrl := list.New(fs, cfg, param, r.stdout)
	return ctrl.List(r.logE) //nolint:wrapcheck
}
