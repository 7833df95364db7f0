package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"

	"github.com/wfaudit/wfaudit/pkg/config"
	"github.com/wfaudit/wfaudit/pkg/finding"
)

// ErrActionsNotPinned is returned in check mode when the audit produced
// error-level findings. The command maps it to a non-zero exit code.
var ErrActionsNotPinned = errors.New("action references aren't pinned")

const formatSARIF = "sarif"

func (c *Controller) Run(_ context.Context, logE *logrus.Entry) error {
	if err := c.readConfig(); err != nil {
		return err
	}
	workflowFilePaths, err := c.searchFiles()
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}

	for _, workflowFilePath := range workflowFilePaths {
		logE := logE.WithField("workflow_file", workflowFilePath)
		findings, err := c.auditWorkflow(logE, workflowFilePath)
		if err != nil {
			logerr.WithError(logE, err).Error("audit a workflow")
			continue
		}
		c.findings = append(c.findings, findings...)
	}

	if c.param.Format == formatSARIF {
		if err := c.outputSARIF(); err != nil {
			return err
		}
	} else {
		for _, f := range c.findings {
			c.logger.Output(f)
		}
	}

	if c.param.Check && c.hasErrors() {
		return ErrActionsNotPinned
	}
	return nil
}

func (c *Controller) hasErrors() bool {
	for _, f := range c.findings {
		if f.Level == finding.LevelError {
			return true
		}
	}
	return false
}

func (c *Controller) readConfig() error {
	p, err := c.cfgFinder.Find(c.param.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	c.param.ConfigFilePath = p
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, c.param.ConfigFilePath); err != nil {
		return fmt.Errorf("read a config file: %w", err)
	}
	c.cfg = cfg
	return nil
}
