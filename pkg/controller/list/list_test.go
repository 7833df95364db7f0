package list_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/wfaudit/wfaudit/pkg/config"
	"github.com/wfaudit/wfaudit/pkg/controller/list"
)

const testWorkflow = `name: CI
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3
      - uses: actions/setup-go@v5
      - uses: octo-org/tools@main
      - uses: docker://alpine:3.8
      - uses: docker://ghcr.io/foo/alpine@sha256:abc
      - uses: docker://alpine
      - run: go test ./...
  release:
    uses: octo-org/this-repo/.github/workflows/release.yml@v1
`

func TestController_List(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		owner string
		exp   []string
	}{
		{
			name: "all references",
			exp: []string{
				"actions/checkout,8f4b7f84864484a7bf31766abe9204da3cbe65b3,commit",
				"actions/setup-go,v5,version-tag",
				"octo-org/tools,main,symbolic",
				"docker://alpine,3.8,tag",
				"docker://ghcr.io/foo/alpine,sha256:abc,digest",
				"docker://alpine,,unpinned",
				"octo-org/this-repo,v1,version-tag",
			},
		},
		{
			name:  "filtered by owner",
			owner: "actions",
			exp: []string{
				"actions/checkout,8f4b7f84864484a7bf31766abe9204da3cbe65b3,commit",
				"actions/setup-go,v5,version-tag",
			},
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, ".github/workflows/ci.yml", []byte(testWorkflow), 0o644); err != nil {
				t.Fatal(err)
			}
			stdout := &bytes.Buffer{}
			ctrl := list.New(fs, &config.Config{}, &list.Param{Owner: d.owner}, stdout)
			if err := ctrl.List(logE); err != nil {
				t.Fatal(err)
			}

			lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
			got := make([]string, 0, len(lines))
			for _, line := range lines {
				if line == "" {
					continue
				}
				// Strip the file and line columns; positions are covered by
				// the yamlpath tests.
				fields := strings.SplitN(line, ",", 3)
				if len(fields) != 3 {
					t.Fatalf("unexpected line: %s", line)
				}
				got = append(got, fields[2])
			}
			if diff := cmp.Diff(d.exp, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
