package workflow

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wfaudit/wfaudit/pkg/finding"
	"github.com/wfaudit/wfaudit/pkg/yamlpath"
)

var (
	// ErrInvalidPath is returned when a workflow path isn't valid UTF-8 or
	// has no filename component.
	ErrInvalidPath = errors.New("invalid workflow path")
	// ErrInvalidDocument is returned when workflow text can't be
	// deserialized or structurally indexed.
	ErrInvalidDocument = errors.New("invalid workflow document")
)

// Workflow is a loaded GitHub Actions workflow: its path, its structural
// index over the raw text, and the deserialized model. There is exactly one
// per loaded file, and it is immutable after construction.
type Workflow struct {
	Path     string
	Document *yamlpath.Document
	model    *Model
}

// Load reads a workflow file and constructs a Workflow from it.
func Load(fs afero.Fs, path string) (*Workflow, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read a workflow file: %w", err)
	}
	return New(path, content)
}

// New constructs a Workflow from a path and the file's raw text. The path
// must be valid UTF-8 and have a non-empty filename component; the text
// must deserialize as a workflow and be indexable.
func New(path string, content []byte) (*Workflow, error) {
	if !utf8.ValidString(path) {
		return nil, fmt.Errorf("%w: path is not UTF-8", ErrInvalidPath)
	}
	if base := filepath.Base(path); path == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: path has no filename: %q", ErrInvalidPath, path)
	}
	model := &Model{}
	if err := yaml.Unmarshal(content, model); err != nil {
		return nil, errors.Join(ErrInvalidDocument, fmt.Errorf("parse a workflow file as YAML: %w", err))
	}
	document, err := yamlpath.New(content)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, fmt.Errorf("index a workflow file: %w", err))
	}
	return &Workflow{
		Path:     path,
		Document: document,
		model:    model,
	}, nil
}

// Filename returns the base component of the workflow's path. The
// construction invariants guarantee it is non-empty.
func (w *Workflow) Filename() string {
	return filepath.Base(w.Path)
}

// Name returns the workflow's `name:` field, which may be empty.
func (w *Workflow) Name() string {
	return w.model.Name
}

// Location returns this workflow's symbolic location: the document root.
func (w *Workflow) Location() finding.SymbolicLocation {
	return finding.SymbolicLocation{
		Name:       w.Filename(),
		Annotation: "this workflow",
	}
}

// Jobs enumerates the workflow's jobs in document order. The sequence is
// lazy and single-pass; ranging over it again starts a fresh enumeration.
func (w *Workflow) Jobs() iter.Seq[*Job] {
	return func(yield func(*Job) bool) {
		if w.model.Jobs == nil {
			return
		}
		for _, id := range w.model.Jobs.ids {
			job := &Job{
				ID:     id,
				inner:  w.model.Jobs.byID[id],
				parent: w,
			}
			if !yield(job) {
				return
			}
		}
	}
}
