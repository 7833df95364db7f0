package workflow

import (
	"github.com/sirupsen/logrus"

	"github.com/wfaudit/wfaudit/pkg/finding"
	"github.com/wfaudit/wfaudit/pkg/uses"
)

// Step is a non-owning view over one entry of a normal job's step sequence.
// Its index within that sequence is its only identity.
type Step struct {
	// Index is the step's zero-based position within its parent job.
	Index  int
	inner  *StepModel
	parent *Job
}

// Parent returns the step's parent job view.
func (s *Step) Parent() *Job {
	return s.parent
}

// Job returns the underlying normal job. Steps are only ever parented by
// normal jobs, so this never fails.
func (s *Step) Job() *NormalJob {
	return s.parent.inner.Normal
}

// Workflow returns the step's (grand)parent workflow.
func (s *Step) Workflow() *Workflow {
	return s.parent.parent
}

// Name returns the step's `name:` field, which may be empty.
func (s *Step) Name() string {
	return s.inner.Name
}

// Body returns the raw step model.
func (s *Step) Body() *StepModel {
	return s.inner
}

// Uses resolves the step's action reference. It returns nil for steps
// without a `uses:` body (e.g. run steps) and for `uses:` values the
// reference grammar rejects; both are normal outcomes, not errors.
func (s *Step) Uses(logE *logrus.Entry) uses.Uses {
	if s.inner.Uses == "" {
		return nil
	}
	return uses.Parse(logE, s.inner.Uses)
}

// Location returns this step's symbolic location.
func (s *Step) Location() finding.SymbolicLocation {
	return s.parent.Location().
		WithKeys(finding.Key("steps"), finding.Index(s.Index)).
		Annotated("this step")
}

// LocationWithName is like Location, except the route ends at the step's
// `name:` key when one is present, so diagnostics can point at the
// human-authored label instead of a bare index.
func (s *Step) LocationWithName() finding.SymbolicLocation {
	location := s.Location()
	if s.inner.Name != "" {
		location = location.WithKeys(finding.Key("name"))
	}
	return location
}
