package list

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"

	"github.com/wfaudit/wfaudit/pkg/controller/run"
	"github.com/wfaudit/wfaudit/pkg/finding"
	"github.com/wfaudit/wfaudit/pkg/uses"
	"github.com/wfaudit/wfaudit/pkg/workflow"
)

// Entry is one listed action reference.
type Entry struct {
	File string
	Line int
	Name string
	Ref  string
	Pin  string
}

// Pin classifications, strongest to weakest.
const (
	PinCommit     = "commit"
	PinDigest     = "digest"
	PinVersionTag = "version-tag"
	PinSymbolic   = "symbolic"
	PinTag        = "tag"
	PinUnpinned   = "unpinned"
)

// List enumerates action references in the target files and writes one CSV
// line per reference: file,line,name,ref,pin.
func (c *Controller) List(logE *logrus.Entry) error {
	workflowFilePaths, err := run.SearchFiles(c.fs, c.param.WorkflowFilePaths, c.cfg)
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}
	for _, workflowFilePath := range workflowFilePaths {
		logE := logE.WithField("workflow_file", workflowFilePath)
		if err := c.listWorkflow(logE, workflowFilePath); err != nil {
			logerr.WithError(logE, err).Warn("list a workflow")
		}
	}
	return nil
}

func (c *Controller) listWorkflow(logE *logrus.Entry, workflowFilePath string) error {
	wf, err := workflow.Load(c.fs, workflowFilePath)
	if err != nil {
		return err
	}
	for job := range wf.Jobs() {
		if job.ReusableCall() != nil {
			repo := job.Uses(logE)
			if repo == nil {
				continue
			}
			c.output(logE, wf, repo, job.Location())
			continue
		}
		for step := range job.Steps() {
			u := step.Uses(logE)
			if u == nil {
				continue
			}
			c.output(logE, wf, u, step.Location())
		}
	}
	return nil
}

func (c *Controller) output(logE *logrus.Entry, wf *workflow.Workflow, u uses.Uses, location finding.SymbolicLocation) {
	entry := newEntry(u)
	if entry == nil {
		return
	}
	if c.param.Owner != "" && !entryOwnedBy(u, c.param.Owner) {
		return
	}
	entry.File = wf.Path
	if position, err := wf.Document.Query(location.Route); err == nil {
		entry.Line = position.Line
	} else {
		logE.WithField("route", location.Route.String()).WithError(err).Debug("resolve a route")
	}
	fmt.Fprintf(c.stdout, "%s,%d,%s,%s,%s\n", entry.File, entry.Line, entry.Name, entry.Ref, entry.Pin)
}

func newEntry(u uses.Uses) *Entry {
	switch u := u.(type) {
	case *uses.Repository:
		entry := &Entry{Name: u.Name(), Ref: u.Ref}
		switch {
		case u.Unpinned():
			entry.Pin = PinUnpinned
		case u.RefIsCommit():
			entry.Pin = PinCommit
		default:
			entry.Pin = PinSymbolic
			if _, ok := u.RefVersion(); ok {
				entry.Pin = PinVersionTag
			}
		}
		return entry
	case *uses.Docker:
		name := u.Image
		if u.Registry != "" {
			name = u.Registry + "/" + u.Image
		}
		entry := &Entry{Name: "docker://" + name}
		switch {
		case u.Hash != "":
			entry.Ref = u.Hash
			entry.Pin = PinDigest
		case u.Tag != "":
			entry.Ref = u.Tag
			entry.Pin = PinTag
		default:
			entry.Pin = PinUnpinned
		}
		return entry
	}
	return nil
}

func entryOwnedBy(u uses.Uses, owner string) bool {
	repo, ok := u.(*uses.Repository)
	return ok && repo.Owner == owner
}
