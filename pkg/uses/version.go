package uses

import (
	"github.com/hashicorp/go-version"
)

// RefVersion parses a symbolic git ref as a semantic version. It returns
// false for commit SHAs, absent refs, and refs that aren't version shaped
// (e.g. branch names like `main`). This lets consumers report "pinned to a
// mutable version tag" separately from "pinned to a branch".
func (r *Repository) RefVersion() (*version.Version, bool) {
	ref := r.SymbolicRef()
	if ref == "" {
		return nil, false
	}
	v, err := version.NewVersion(ref)
	if err != nil {
		return nil, false
	}
	return v, true
}
