package uses_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/wfaudit/wfaudit/pkg/uses"
)

func TestParse(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name string
		s    string
		exp  uses.Uses
	}{
		{
			name: "fully pinned",
			s:    "actions/checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3",
			exp: &uses.Repository{
				Owner: "actions",
				Repo:  "checkout",
				Ref:   "8f4b7f84864484a7bf31766abe9204da3cbe65b3",
			},
		},
		{
			name: "fully pinned with subpath",
			s:    "actions/aws/ec2@8f4b7f84864484a7bf31766abe9204da3cbe65b3",
			exp: &uses.Repository{
				Owner:   "actions",
				Repo:    "aws",
				Subpath: "ec2",
				Ref:     "8f4b7f84864484a7bf31766abe9204da3cbe65b3",
			},
		},
		{
			name: "fully pinned with complex subpath",
			s:    "example/foo/bar/baz/quux@8f4b7f84864484a7bf31766abe9204da3cbe65b3",
			exp: &uses.Repository{
				Owner:   "example",
				Repo:    "foo",
				Subpath: "bar/baz/quux",
				Ref:     "8f4b7f84864484a7bf31766abe9204da3cbe65b3",
			},
		},
		{
			name: "pinned with branch or tag",
			s:    "actions/checkout@v4",
			exp: &uses.Repository{
				Owner: "actions",
				Repo:  "checkout",
				Ref:   "v4",
			},
		},
		{
			name: "pinned with short hex ref",
			s:    "actions/checkout@abcd",
			exp: &uses.Repository{
				Owner: "actions",
				Repo:  "checkout",
				Ref:   "abcd",
			},
		},
		{
			name: "unpinned",
			s:    "actions/checkout",
			exp: &uses.Repository{
				Owner: "actions",
				Repo:  "checkout",
			},
		},
		{
			name: "docker ref with implicit registry",
			s:    "docker://alpine:3.8",
			exp: &uses.Docker{
				Image: "alpine",
				Tag:   "3.8",
			},
		},
		{
			name: "docker ref with localhost registry",
			s:    "docker://localhost/alpine:3.8",
			exp: &uses.Docker{
				Registry: "localhost",
				Image:    "alpine",
				Tag:      "3.8",
			},
		},
		{
			name: "docker ref with localhost registry and port",
			s:    "docker://localhost:1337/alpine:3.8",
			exp: &uses.Docker{
				Registry: "localhost:1337",
				Image:    "alpine",
				Tag:      "3.8",
			},
		},
		{
			name: "docker ref with custom registry",
			s:    "docker://ghcr.io/foo/alpine:3.8",
			exp: &uses.Docker{
				Registry: "ghcr.io",
				Image:    "foo/alpine",
				Tag:      "3.8",
			},
		},
		{
			name: "docker ref without tag",
			s:    "docker://ghcr.io/foo/alpine",
			exp: &uses.Docker{
				Registry: "ghcr.io",
				Image:    "foo/alpine",
			},
		},
		{
			name: "docker ref with empty tag",
			s:    "docker://ghcr.io/foo/alpine:",
			exp: &uses.Docker{
				Registry: "ghcr.io",
				Image:    "foo/alpine",
			},
		},
		{
			name: "docker ref with empty hash",
			s:    "docker://alpine@",
			exp: &uses.Docker{
				Image: "alpine",
			},
		},
		{
			name: "bare docker ref",
			s:    "docker://alpine",
			exp: &uses.Docker{
				Image: "alpine",
			},
		},
		{
			name: "docker ref with hash",
			s:    "docker://alpine@hash",
			exp: &uses.Docker{
				Image: "alpine",
				Hash:  "hash",
			},
		},
		{
			name: "missing owner or repo",
			s:    "checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3",
		},
		{
			name: "local action refs aren't supported",
			s:    "./.github/actions/hello-world-action@172239021f7ba04fe7327647b213799853a9eb89",
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			u := uses.Parse(logE, d.s)
			if diff := cmp.Diff(d.exp, u); diff != "" {
				t.Fatal(diff)
			}
			// Parsing has no hidden state, so a second parse must agree.
			if diff := cmp.Diff(u, uses.Parse(logE, d.s)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestParseReusable(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name string
		s    string
		exp  *uses.Repository
	}{
		{
			name: "pinned to a commit",
			s:    "octo-org/this-repo/.github/workflows/workflow-1.yml@172239021f7ba04fe7327647b213799853a9eb89",
			exp: &uses.Repository{
				Owner:   "octo-org",
				Repo:    "this-repo",
				Subpath: ".github/workflows/workflow-1.yml",
				Ref:     "172239021f7ba04fe7327647b213799853a9eb89",
			},
		},
		{
			name: "pinned to a symbolic ref",
			s:    "octo-org/this-repo/.github/workflows/workflow-1.yml@notahash",
			exp: &uses.Repository{
				Owner:   "octo-org",
				Repo:    "this-repo",
				Subpath: ".github/workflows/workflow-1.yml",
				Ref:     "notahash",
			},
		},
		{
			name: "no ref at all",
			s:    "octo-org/this-repo/.github/workflows/workflow-1.yml",
		},
		{
			name: "missing owner or repo",
			s:    "workflow-1.yml@172239021f7ba04fe7327647b213799853a9eb89",
		},
		{
			name: "local reusable workflow refs aren't supported",
			s:    "./.github/workflows/workflow-1.yml@172239021f7ba04fe7327647b213799853a9eb89",
		},
		{
			name: "docker refs aren't supported",
			s:    "docker://alpine:3.8",
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			repo := uses.ParseReusable(logE, d.s)
			if diff := cmp.Diff(d.exp, repo); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestRepository_RefIsCommit(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		s    string
		exp  bool
	}{
		{
			name: "40 hex chars",
			s:    "actions/checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3",
			exp:  true,
		},
		{
			name: "version tag",
			s:    "actions/checkout@v4",
		},
		{
			name: "short hex ref",
			s:    "actions/checkout@abcd",
		},
		{
			name: "40 chars but not hex",
			s:    "actions/checkout@z" + "8f4b7f84864484a7bf31766abe9204da3cbe65b",
		},
		{
			name: "no ref",
			s:    "actions/checkout",
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			repo, ok := uses.Parse(logE, d.s).(*uses.Repository)
			if !ok {
				t.Fatalf("%s must parse as a repository reference", d.s)
			}
			if repo.RefIsCommit() != d.exp {
				t.Fatalf("RefIsCommit: wanted %v, got %v", d.exp, !d.exp)
			}
			if d.exp && repo.CommitRef() != repo.Ref {
				t.Fatalf("CommitRef: wanted %s, got %s", repo.Ref, repo.CommitRef())
			}
			if !d.exp && repo.CommitRef() != "" {
				t.Fatalf("CommitRef must be empty, got %s", repo.CommitRef())
			}
		})
	}
}

func TestUses_Unpinned(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		s    string
		exp  bool
	}{
		{
			name: "repository without ref",
			s:    "actions/checkout",
			exp:  true,
		},
		{
			name: "repository with tag",
			s:    "actions/checkout@v4",
		},
		{
			name: "repository with commit",
			s:    "actions/checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3",
		},
		{
			name: "docker without tag and hash",
			s:    "docker://alpine",
			exp:  true,
		},
		{
			name: "docker with tag",
			s:    "docker://alpine:3.8",
		},
		{
			name: "docker with hash",
			s:    "docker://alpine@hash",
		},
		{
			name: "docker with empty hash",
			s:    "docker://alpine@",
			exp:  true,
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			u := uses.Parse(logE, d.s)
			if u == nil {
				t.Fatalf("%s must parse", d.s)
			}
			if u.Unpinned() != d.exp {
				t.Fatalf("Unpinned: wanted %v, got %v", d.exp, !d.exp)
			}
		})
	}
}

func TestRepository_RefVersion(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		s    string
		exp  bool
	}{
		{
			name: "major version tag",
			s:    "actions/checkout@v4",
			exp:  true,
		},
		{
			name: "full version tag",
			s:    "actions/checkout@v4.2.1",
			exp:  true,
		},
		{
			name: "branch",
			s:    "actions/checkout@main",
		},
		{
			name: "commit",
			s:    "actions/checkout@8f4b7f84864484a7bf31766abe9204da3cbe65b3",
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			repo, ok := uses.Parse(logE, d.s).(*uses.Repository)
			if !ok {
				t.Fatalf("%s must parse as a repository reference", d.s)
			}
			if _, ok := repo.RefVersion(); ok != d.exp {
				t.Fatalf("RefVersion: wanted %v, got %v", d.exp, ok)
			}
		})
	}
}
