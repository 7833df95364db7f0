// Package list implements the 'wfaudit list' command: enumerate every
// action reference in the target workflow files together with its pin
// classification.
package list

import (
	"io"

	"github.com/spf13/afero"

	"github.com/wfaudit/wfaudit/pkg/config"
)

// Controller handles the list command operations.
type Controller struct {
	fs     afero.Fs
	cfg    *config.Config
	param  *Param
	stdout io.Writer
}

// Param contains parameters for the list command.
type Param struct {
	WorkflowFilePaths []string
	ConfigFilePath    string
	Owner             string
}

// New creates a new Controller for running list operations.
func New(fs afero.Fs, cfg *config.Config, param *Param, stdout io.Writer) *Controller {
	return &Controller{
		fs:     fs,
		cfg:    cfg,
		param:  param,
		stdout: stdout,
	}
}
