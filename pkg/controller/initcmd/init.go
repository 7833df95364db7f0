package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	templateConfig = `# wfaudit - https://github.com/wfaudit/wfaudit
# files:
#   - pattern: .github/workflows/*.yaml
#   - pattern: "*/action.yaml"

ignore_actions:
# - name: actions/*
#   name_format: glob
# - name: my-org/.*
#   name_format: regexp
#   ref: release-.*
#   ref_format: regexp
`
	filePermission os.FileMode = 0o644
)

// Init creates a configuration file with a commented template if one
// doesn't exist yet. An existing file is left alone.
func (c *Controller) Init(configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	return nil
}
