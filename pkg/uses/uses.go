// Package uses parses the value of a `uses:` clause in a workflow step or a
// reusable workflow call job into a structured, classified action reference.
// Docker (docker://) and repository (actions/checkout) style references are
// supported; local (./foo) references are not.
package uses

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Uses is the parsed form of a `uses:` value. It is a closed union of
// *Docker and *Repository.
type Uses interface {
	// Unpinned reports whether the reference floats: a Docker reference
	// without a tag or digest, or a repository reference without a git ref.
	Unpinned() bool

	uses()
}

// Docker is the content of a `uses: docker://...` clause. Optional fields
// are empty strings when absent.
type Docker struct {
	Registry string
	Image    string
	Tag      string
	Hash     string
}

func (*Docker) uses() {}

func (d *Docker) Unpinned() bool {
	return d.Hash == "" && d.Tag == ""
}

// Repository is the content of a `uses: owner/repo` style clause. Subpath
// and Ref are empty strings when absent; an absent ref means the default
// branch.
type Repository struct {
	Owner   string
	Repo    string
	Subpath string
	Ref     string
}

func (*Repository) uses() {}

func (r *Repository) Unpinned() bool {
	return r.Ref == ""
}

// Name returns the owner/repo pair, the form action names take in
// configuration files.
func (r *Repository) Name() string {
	return r.Owner + "/" + r.Repo
}

// RefIsCommit reports whether the git ref looks like a full commit SHA:
// exactly 40 ASCII hex digits. This is a syntactic check only; nothing
// verifies that the commit exists.
func (r *Repository) RefIsCommit() bool {
	if len(r.Ref) != 40 {
		return false
	}
	for _, c := range []byte(r.Ref) {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

// CommitRef returns the git ref if it is a full commit SHA, and an empty
// string otherwise.
func (r *Repository) CommitRef() string {
	if r.RefIsCommit() {
		return r.Ref
	}
	return ""
}

// SymbolicRef returns the git ref if it is a tag or branch name rather than
// a full commit SHA, and an empty string otherwise.
func (r *Repository) SymbolicRef() string {
	if r.Ref == "" || r.RefIsCommit() {
		return ""
	}
	return r.Ref
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// isRegistry reports whether the first path segment of an image reference is
// a registry host. This is the same heuristic Docker itself uses:
// https://stackoverflow.com/a/42116190
func isRegistry(registry string) bool {
	return registry == "localhost" || strings.Contains(registry, ".") || strings.Contains(registry, ":")
}

// parseImageRef parses a Docker image reference.
// See https://docs.docker.com/reference/cli/docker/image/tag/
func parseImageRef(image string) *Docker {
	registry := ""
	if before, after, ok := strings.Cut(image, "/"); ok && isRegistry(before) {
		registry = before
		image = after
	}

	// A digest takes priority over a tag: if `@` is present, nothing after
	// it is treated as a tag. Digests aren't in Docker's own docs but are
	// an OCI thing, and immutable references are expected to use them.
	if image, hash, ok := strings.Cut(image, "@"); ok {
		return &Docker{
			Registry: registry,
			Image:    image,
			Hash:     hash,
		}
	}

	image, tag, _ := strings.Cut(image, ":")
	return &Docker{
		Registry: registry,
		Image:    image,
		Tag:      tag,
	}
}

// Parse parses a step's `uses:` value. It returns nil for local references,
// for strings that don't match any recognized reference grammar, and never
// an error: a step without a recognized action reference is a normal
// outcome. Malformed input is logged at debug level.
func Parse(logE *logrus.Entry, s string) Uses {
	if strings.HasPrefix(s, "./") {
		// Local references are explicitly unsupported.
		return nil
	}
	if image, ok := strings.CutPrefix(s, "docker://"); ok {
		return parseImageRef(image)
	}

	// Both git refs and action paths can contain `@`, so splitting on the
	// last `@` is a documented best effort, not a guarantee.
	path := s
	ref := ""
	if i := strings.LastIndex(s, "@"); i >= 0 {
		path = s[:i]
		ref = s[i+1:]
	}

	components := strings.SplitN(path, "/", 3)
	if len(components) < 2 {
		logE.WithField("uses", s).Debug("malformed uses value")
		return nil
	}
	repo := &Repository{
		Owner: components[0],
		Repo:  components[1],
		Ref:   ref,
	}
	if len(components) == 3 {
		repo.Subpath = components[2]
	}
	return repo
}

// ParseReusable parses the `uses:` value of a reusable workflow call job.
// Reusable workflows can't reference Docker images, and their references
// must carry a git ref, so both shapes yield nil here even though Parse
// would accept the latter.
func ParseReusable(logE *logrus.Entry, s string) *Repository {
	repo, ok := Parse(logE, s).(*Repository)
	if !ok {
		return nil
	}
	if repo.Ref == "" {
		logE.WithField("uses", s).Debug("reusable workflow reference requires a ref")
		return nil
	}
	return repo
}
