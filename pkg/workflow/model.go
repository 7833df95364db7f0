// Package workflow wraps a deserialized GitHub Actions workflow document in
// a navigable object model: Workflow -> Job -> Step, with parent links and
// symbolic locations for diagnostics. Everything here is read-only after
// construction and safe for shared reads.
package workflow

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Model is the raw deserialized workflow document.
type Model struct {
	Name        string            `yaml:"name"`
	RunName     string            `yaml:"run-name"`
	On          yaml.Node         `yaml:"on"`
	Permissions yaml.Node         `yaml:"permissions"`
	Env         map[string]string `yaml:"env"`
	Jobs        *JobSet           `yaml:"jobs"`
}

// JobSet is the workflow's job mapping. It preserves document order and
// guarantees id uniqueness, which is what makes a job id a stable identity.
type JobSet struct {
	ids  []string
	byID map[string]*JobModel
}

func (s *JobSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.New("jobs must be a mapping")
	}
	s.byID = map[string]*JobModel{}
	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]
		id := keyNode.Value
		if _, ok := s.byID[id]; ok {
			return fmt.Errorf("duplicate job id: %s", id)
		}
		job := &JobModel{}
		if err := valueNode.Decode(job); err != nil {
			return fmt.Errorf("decode job %s: %w", id, err)
		}
		s.ids = append(s.ids, id)
		s.byID[id] = job
	}
	return nil
}

// Len returns the number of jobs.
func (s *JobSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Lookup returns the job with the given id, or nil.
func (s *JobSet) Lookup(id string) *JobModel {
	if s == nil {
		return nil
	}
	return s.byID[id]
}

// JobModel is a closed union over the two kinds of job a workflow can
// declare: a normal job with steps, or a call to a reusable workflow.
// Exactly one of Normal and ReusableCall is non-nil.
type JobModel struct {
	Name         string
	Normal       *NormalJob
	ReusableCall *ReusableWorkflowCall
}

// NormalJob is a job that runs its own step sequence.
type NormalJob struct {
	RunsOn      yaml.Node         `yaml:"runs-on"`
	If          string            `yaml:"if"`
	Permissions yaml.Node         `yaml:"permissions"`
	Env         map[string]string `yaml:"env"`
	Steps       []*StepModel      `yaml:"steps"`
}

// ReusableWorkflowCall is a job that delegates to another workflow. It has
// no steps of its own.
type ReusableWorkflowCall struct {
	Uses    string            `yaml:"uses"`
	With    map[string]string `yaml:"with"`
	Secrets yaml.Node         `yaml:"secrets"`
}

func (j *JobModel) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		Name string `yaml:"name"`
		Uses string `yaml:"uses"`

		RunsOn      yaml.Node         `yaml:"runs-on"`
		If          string            `yaml:"if"`
		Permissions yaml.Node         `yaml:"permissions"`
		Env         map[string]string `yaml:"env"`
		Steps       []*StepModel      `yaml:"steps"`

		With    map[string]string `yaml:"with"`
		Secrets yaml.Node         `yaml:"secrets"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	j.Name = raw.Name
	// A `uses:` key is what makes a job a reusable workflow call.
	if raw.Uses != "" {
		j.ReusableCall = &ReusableWorkflowCall{
			Uses:    raw.Uses,
			With:    raw.With,
			Secrets: raw.Secrets,
		}
		return nil
	}
	j.Normal = &NormalJob{
		RunsOn:      raw.RunsOn,
		If:          raw.If,
		Permissions: raw.Permissions,
		Env:         raw.Env,
		Steps:       raw.Steps,
	}
	return nil
}

// StepModel is a single entry of a normal job's step sequence. A step body
// is either a `uses:` step or a `run:` step; both fields empty means the
// step has no recognized body.
type StepModel struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	If   string `yaml:"if"`

	Uses string            `yaml:"uses"`
	With map[string]string `yaml:"with"`

	Run              string `yaml:"run"`
	Shell            string `yaml:"shell"`
	WorkingDirectory string `yaml:"working-directory"`

	Env map[string]string `yaml:"env"`
}
