// Package run implements the core audit logic of wfaudit. The controller
// searches workflow files, loads each one into the workflow object model,
// resolves every step's and reusable workflow call's action reference, and
// reports findings for references that aren't pinned to an immutable
// commit or digest. Output is human-readable text or SARIF; in check mode
// findings make the command exit non-zero.
package run

import (
	"io"

	"github.com/spf13/afero"

	"github.com/wfaudit/wfaudit/pkg/config"
	"github.com/wfaudit/wfaudit/pkg/finding"
)

type Controller struct {
	fs        afero.Fs
	cfg       *config.Config
	param     *ParamRun
	cfgFinder ConfigFinder
	cfgReader ConfigReader
	logger    *Logger
	findings  []*finding.Finding
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

type ParamRun struct {
	WorkflowFilePaths []string
	ConfigFilePath    string
	Format            string
	Check             bool
	Stdout            io.Writer
	Stderr            io.Writer
}

func New(fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, param *ParamRun) *Controller {
	return &Controller{
		fs:        fs,
		cfg:       &config.Config{},
		param:     param,
		cfgFinder: cfgFinder,
		cfgReader: cfgReader,
		logger:    NewLogger(param.Stderr),
	}
}
