package run

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/wfaudit/wfaudit/pkg/finding"
)

type colorFunc func(a ...interface{}) string

// Logger renders findings for humans on stderr.
type Logger struct {
	stderr io.Writer
	red    colorFunc
	yellow colorFunc
}

func NewLogger(stderr io.Writer) *Logger {
	return &Logger{
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		stderr: stderr,
	}
}

func (l *Logger) Output(f *finding.Finding) {
	level := l.yellow("WARNING")
	if f.Level == finding.LevelError {
		level = l.red("ERROR")
	}
	position := f.Location.Name
	if f.Line > 0 {
		position = fmt.Sprintf("%s:%d:%d", f.Location.Name, f.Line, f.Column)
	}
	fmt.Fprintf(l.stderr, `%s %s (%s)
%s
%s
`, level, f.Message, f.RuleID, position, f.Location.Annotation)
	if f.Snippet != "" {
		fmt.Fprintln(l.stderr, f.Snippet)
	}
}
