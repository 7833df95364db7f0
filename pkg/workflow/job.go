package workflow

import (
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/wfaudit/wfaudit/pkg/finding"
	"github.com/wfaudit/wfaudit/pkg/uses"
)

// Job is a non-owning view over one entry of its parent workflow's job
// mapping. Its ID is its key in that mapping and is unique within the
// workflow. A Job must not outlive its parent Workflow.
type Job struct {
	// ID is the job's key in the workflow's `jobs:` block.
	ID     string
	inner  *JobModel
	parent *Workflow
}

// Parent returns the job's parent workflow.
func (j *Job) Parent() *Workflow {
	return j.parent
}

// Name returns the job's `name:` field, which may be empty.
func (j *Job) Name() string {
	return j.inner.Name
}

// Normal returns the underlying normal job, or nil if this job is a
// reusable workflow call.
func (j *Job) Normal() *NormalJob {
	return j.inner.Normal
}

// ReusableCall returns the underlying reusable workflow call, or nil if
// this is a normal job.
func (j *Job) ReusableCall() *ReusableWorkflowCall {
	return j.inner.ReusableCall
}

// Location returns this job's symbolic location.
func (j *Job) Location() finding.SymbolicLocation {
	return j.parent.Location().
		WithKeys(finding.Key("jobs"), finding.Key(j.ID)).
		Annotated("this job")
}

// Uses resolves a reusable workflow call's `uses:` reference. It returns
// nil for normal jobs and for references the reusable-workflow grammar
// rejects.
func (j *Job) Uses(logE *logrus.Entry) *uses.Repository {
	call := j.inner.ReusableCall
	if call == nil {
		return nil
	}
	return uses.ParseReusable(logE, call.Uses)
}

// Steps enumerates a normal job's steps in declared order, each tagged with
// its zero-based index. The sequence is lazy and single-pass; ranging again
// starts fresh.
//
// Steps panics if the job is a reusable workflow call: such jobs have no
// steps, and callers are expected to check the job kind first.
func (j *Job) Steps() iter.Seq[*Step] {
	normal := j.inner.Normal
	if normal == nil {
		panic("Steps called on a reusable workflow call job")
	}
	return func(yield func(*Step) bool) {
		for i, model := range normal.Steps {
			step := &Step{
				Index:  i,
				inner:  model,
				parent: j,
			}
			if !yield(step) {
				return
			}
		}
	}
}
