package run

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"

	"github.com/wfaudit/wfaudit/pkg/finding"
	"github.com/wfaudit/wfaudit/pkg/uses"
	"github.com/wfaudit/wfaudit/pkg/workflow"
)

const (
	RuleInvalidWorkflow = "invalid-workflow"
	RuleUnpinnedUses    = "unpinned-uses"
	RuleMutableUses     = "mutable-uses"
)

// auditWorkflow loads one workflow file and evaluates every action
// reference in it. An undeserializable document is itself a finding, not a
// fatal error, so one broken file doesn't stop the audit.
func (c *Controller) auditWorkflow(logE *logrus.Entry, workflowFilePath string) ([]*finding.Finding, error) {
	wf, err := workflow.Load(c.fs, workflowFilePath)
	if err != nil {
		if errors.Is(err, workflow.ErrInvalidDocument) {
			logerr.WithError(logE, err).Debug("workflow document is invalid")
			return []*finding.Finding{
				{
					RuleID:  RuleInvalidWorkflow,
					Level:   finding.LevelError,
					Message: "the workflow file isn't a valid GitHub Actions workflow",
					Location: finding.SymbolicLocation{
						Name:       workflowFilePath,
						Annotation: "this workflow",
					},
					Line: 1,
				},
			}, nil
		}
		return nil, err
	}
	return c.auditModel(logE, wf)
}

func (c *Controller) auditModel(logE *logrus.Entry, wf *workflow.Workflow) ([]*finding.Finding, error) {
	findings := []*finding.Finding{}
	for job := range wf.Jobs() {
		if call := job.ReusableCall(); call != nil {
			f, err := c.evaluateUses(logE, wf, uses.Parse(logE, call.Uses), job.Location().Annotated("this reusable workflow call"))
			if err != nil {
				return nil, err
			}
			if f != nil {
				findings = append(findings, f)
			}
			continue
		}
		for step := range job.Steps() {
			f, err := c.evaluateUses(logE, wf, step.Uses(logE), step.LocationWithName())
			if err != nil {
				return nil, err
			}
			if f != nil {
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}

// evaluateUses classifies one resolved action reference. A nil reference
// (run step, local reference, unparseable string) is a normal outcome and
// produces no finding.
func (c *Controller) evaluateUses(logE *logrus.Entry, wf *workflow.Workflow, u uses.Uses, location finding.SymbolicLocation) (*finding.Finding, error) {
	if u == nil {
		return nil, nil //nolint:nilnil
	}

	name, ref := referenceNameRef(u)
	ignored, err := c.ignored(name, ref)
	if err != nil {
		return nil, err
	}
	if ignored {
		logE.WithFields(logrus.Fields{
			"action": name,
			"ref":    ref,
		}).Debug("ignore the action")
		return nil, nil //nolint:nilnil
	}

	f := classify(u, name)
	if f == nil {
		return nil, nil //nolint:nilnil
	}
	f.Location = location
	c.resolve(logE, wf, f)
	return f, nil
}

func classify(u uses.Uses, name string) *finding.Finding {
	switch u := u.(type) {
	case *uses.Repository:
		if u.Unpinned() {
			return &finding.Finding{
				RuleID:  RuleUnpinnedUses,
				Level:   finding.LevelError,
				Message: name + " isn't pinned to any ref",
			}
		}
		if u.RefIsCommit() {
			return nil
		}
		kind := "branch or tag"
		if _, ok := u.RefVersion(); ok {
			kind = "version tag"
		}
		return &finding.Finding{
			RuleID:  RuleMutableUses,
			Level:   finding.LevelWarning,
			Message: fmt.Sprintf("%s is pinned to the mutable %s %s, not a commit SHA", name, kind, u.Ref),
		}
	case *uses.Docker:
		if u.Unpinned() {
			return &finding.Finding{
				RuleID:  RuleUnpinnedUses,
				Level:   finding.LevelError,
				Message: "docker://" + name + " isn't pinned to a tag or digest",
			}
		}
		if u.Hash != "" {
			return nil
		}
		return &finding.Finding{
			RuleID:  RuleMutableUses,
			Level:   finding.LevelWarning,
			Message: fmt.Sprintf("docker://%s is pinned to the mutable tag %s, not a digest", name, u.Tag),
		}
	}
	return nil
}

func referenceNameRef(u uses.Uses) (string, string) {
	switch u := u.(type) {
	case *uses.Repository:
		return u.Name(), u.Ref
	case *uses.Docker:
		name := u.Image
		if u.Registry != "" {
			name = u.Registry + "/" + u.Image
		}
		if u.Tag != "" {
			return name, u.Tag
		}
		return name, u.Hash
	}
	return "", ""
}

func (c *Controller) ignored(name, ref string) (bool, error) {
	for _, ia := range c.cfg.IgnoreActions {
		f, err := ia.Match(name, ref)
		if err != nil {
			return false, fmt.Errorf("match an ignored action: %w", err)
		}
		if f {
			return true, nil
		}
	}
	return false, nil
}

// resolve fills in a finding's line and column from its symbolic route.
// Resolution failure is a diagnostic, not an error: the finding is still
// reported, just without a position.
func (c *Controller) resolve(logE *logrus.Entry, wf *workflow.Workflow, f *finding.Finding) {
	f.Location.Name = wf.Path
	position, err := wf.Document.Query(f.Location.Route)
	if err != nil {
		logE.WithField("route", f.Location.Route.String()).WithError(err).Debug("resolve a route")
		return
	}
	f.Line = position.Line
	f.Column = position.Column
	if line, ok := wf.Document.Line(position.Line); ok {
		f.Snippet = line
	}
}
