package run

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/wfaudit/wfaudit/pkg/config"
)

// defaultPatterns are the workflow and composite action files audited when
// neither arguments nor configuration narrow the target set.
var defaultPatterns = []string{
	".github/workflows/*.yml",
	".github/workflows/*.yaml",
	"action.yml",
	"action.yaml",
	"*/action.yml",
	"*/action.yaml",
	"*/*/action.yml",
	"*/*/action.yaml",
	"*/*/*/action.yml",
	"*/*/*/action.yaml",
}

func (c *Controller) searchFiles() ([]string, error) {
	return SearchFiles(c.fs, c.param.WorkflowFilePaths, c.cfg)
}

// SearchFiles returns the audit targets: explicit paths if any were
// passed, otherwise the configuration's file patterns, otherwise the
// default workflow locations.
func SearchFiles(fs afero.Fs, workflowFilePaths []string, cfg *config.Config) ([]string, error) {
	if len(workflowFilePaths) != 0 {
		return workflowFilePaths, nil
	}
	if len(cfg.Files) > 0 {
		patterns := make([]string, 0, len(cfg.Files))
		for _, file := range cfg.Files {
			if file.Pattern == "" {
				continue
			}
			patterns = append(patterns, file.Pattern)
		}
		return glob(fs, patterns)
	}
	return glob(fs, defaultPatterns)
}

func glob(fs afero.Fs, patterns []string) ([]string, error) {
	files := []string{}
	for _, pattern := range patterns {
		matches, err := afero.Glob(fs, pattern)
		if err != nil {
			return nil, fmt.Errorf("look for workflow files using the glob %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}
