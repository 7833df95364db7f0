package run

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/wfaudit/wfaudit/pkg/config"
	"github.com/wfaudit/wfaudit/pkg/sarif"
)

func TestController_Run(t *testing.T) {
	t.Parallel()
	data := []struct {
		name     string
		content  string
		check    bool
		expErr   error
		expRules []string
	}{
		{
			name: "pinned workflow passes",
			content: `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3
`,
			check: true,
		},
		{
			name: "unpinned workflow fails the check",
			content: `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout
`,
			check:    true,
			expErr:   ErrActionsNotPinned,
			expRules: []string{RuleUnpinnedUses},
		},
		{
			name: "warnings alone don't fail the check",
			content: `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
`,
			check:    true,
			expRules: []string{RuleMutableUses},
		},
		{
			name: "findings without check mode",
			content: `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout
`,
			expRules: []string{RuleUnpinnedUses},
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, ".github/workflows/ci.yml", []byte(d.content), 0o644); err != nil {
				t.Fatal(err)
			}
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			c := New(fs, config.NewFinder(fs), config.NewReader(fs), &ParamRun{
				Check:  d.check,
				Stdout: stdout,
				Stderr: stderr,
			})
			err := c.Run(context.Background(), logE)
			if !errors.Is(err, d.expErr) {
				t.Fatalf("wanted %v, got %v", d.expErr, err)
			}
			rules := make([]string, len(c.findings))
			for i, f := range c.findings {
				rules[i] = f.RuleID
			}
			if len(rules) != len(d.expRules) {
				t.Fatalf("wanted rules %v, got %v", d.expRules, rules)
			}
			for i := range rules {
				if rules[i] != d.expRules[i] {
					t.Fatalf("wanted rules %v, got %v", d.expRules, rules)
				}
			}
			for _, f := range c.findings {
				if !strings.Contains(stderr.String(), f.RuleID) {
					t.Fatalf("stderr must mention %s: %s", f.RuleID, stderr.String())
				}
			}
		})
	}
}

func TestController_Run_sarif(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	content := `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout
`
	if err := afero.WriteFile(fs, ".github/workflows/ci.yml", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	stdout := &bytes.Buffer{}
	c := New(fs, config.NewFinder(fs), config.NewReader(fs), &ParamRun{
		Format: "sarif",
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
	})
	logE := logrus.NewEntry(logrus.New())
	if err := c.Run(context.Background(), logE); err != nil {
		t.Fatal(err)
	}
	log := &sarif.Log{}
	if err := json.Unmarshal(stdout.Bytes(), log); err != nil {
		t.Fatal(err)
	}
	if log.Version != "2.1.0" {
		t.Fatalf("unexpected SARIF version: %s", log.Version)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("wanted 1 run, got %d", len(log.Runs))
	}
	results := log.Runs[0].Results
	if len(results) != 1 {
		t.Fatalf("wanted 1 result, got %d", len(results))
	}
	if results[0].RuleID != RuleUnpinnedUses {
		t.Fatalf("unexpected rule: %s", results[0].RuleID)
	}
	region := results[0].Locations[0].PhysicalLocation.Region
	if region.StartLine == 0 {
		t.Fatal("result must have a start line")
	}
}
