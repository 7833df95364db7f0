// Package initcmd implements the 'wfaudit init' command, which generates a
// configuration file with default settings.
package initcmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/wfaudit/wfaudit/pkg/cli/flag"
	"github.com/wfaudit/wfaudit/pkg/controller/initcmd"
	"github.com/wfaudit/wfaudit/pkg/log"
)

type runner struct {
	logE *logrus.Entry
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE: logE,
	}
	return r.Command(globalFlags)
}

func (r *runner) Command(globalFlags *flag.GlobalFlags) *cli.Command {
	flags := &Flags{}
	return &cli.Command{
		Name:  "init",
		Usage: "Create .wfaudit.yaml if it doesn't exist",
		Description: `Create .wfaudit.yaml if it doesn't exist

$ wfaudit init

You can also pass a configuration file path.

e.g.

$ wfaudit init .github/wfaudit.yaml
`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return r.action(ctx, globalFlags, flags)
		},
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:        "path",
				Max:         1,
				Destination: &flags.Path,
			},
		},
	}
}

// Flags holds the command-line arguments for the init command.
type Flags struct {
	Path []string
}

func (r *runner) action(_ context.Context, globalFlags *flag.GlobalFlags, flags *Flags) error {
	log.SetLevel(globalFlags.LogLevel, r.logE)
	configFilePath := ""
	if len(flags.Path) != 0 {
		configFilePath = flags.Path[0]
	}
	if configFilePath == "" {
		configFilePath = globalFlags.Config
	}
	if configFilePath == "" {
		configFilePath = ".wfaudit.yaml"
	}
	ctrl := initcmd.New(afero.NewOsFs())
	return ctrl.Init(configFilePath) //nolint:wrapcheck
}
