// Package yamlpath indexes a YAML document's structure so that symbolic
// routes (mapping keys and sequence indices) can be resolved back to line
// and column positions in the original text. It never interprets the
// document's contents; it only answers "where is this node".
package yamlpath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/wfaudit/wfaudit/pkg/finding"
)

var ErrNotFound = errors.New("route not found in document")

// Position is a 1-based line/column position in the source text.
type Position struct {
	Line   int
	Column int
}

// Document is a queryable structural index over a single YAML document,
// paired with the raw text it was built from.
type Document struct {
	body  ast.Node
	lines []string
}

// New builds an index from raw document text. It fails if the text isn't
// parseable YAML or doesn't contain a document body.
func New(content []byte) (*Document, error) {
	file, err := parser.ParseBytes(content, 0)
	if err != nil {
		return nil, fmt.Errorf("parse document as YAML: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, errors.New("document has no body")
	}
	return &Document{
		body:  file.Docs[0].Body,
		lines: strings.Split(string(content), "\n"),
	}, nil
}

// Line returns the 1-based nth line of the source text.
func (d *Document) Line(n int) (string, bool) {
	if n < 1 || n > len(d.lines) {
		return "", false
	}
	return d.lines[n-1], true
}

// Query resolves a route to the position of the node it addresses. The
// final component of a route that ends on a mapping key resolves to the
// key's own position, so diagnostics point at e.g. `uses:` rather than its
// value.
func (d *Document) Query(route finding.Route) (*Position, error) {
	node := d.body
	keyToken := nodeToken(node)
	for _, key := range route.Keys() {
		if key.IsIndex() {
			seq, ok := node.(*ast.SequenceNode)
			if !ok {
				return nil, fmt.Errorf("%w: %s is not a sequence", ErrNotFound, route)
			}
			i := key.Index()
			if i < 0 || i >= len(seq.Values) {
				return nil, fmt.Errorf("%w: index %d out of range in %s", ErrNotFound, i, route)
			}
			node = seq.Values[i]
			keyToken = nodeToken(node)
			continue
		}
		value := findMappingValue(node, key.Key())
		if value == nil {
			return nil, fmt.Errorf("%w: no key %q in %s", ErrNotFound, key.Key(), route)
		}
		keyToken = value.Key.GetToken()
		node = value.Value
	}
	if keyToken == nil || keyToken.Position == nil {
		return nil, fmt.Errorf("%w: %s has no position", ErrNotFound, route)
	}
	return &Position{
		Line:   keyToken.Position.Line,
		Column: keyToken.Position.Column,
	}, nil
}

// nodeToken returns the token whose position represents a node. GetToken
// on a mapping-shaped node returns the colon token of its first pair, so
// mappings resolve to their first key instead; a route ending on a step
// element then points at the step's start, not at a `:`.
func nodeToken(node ast.Node) *token.Token {
	switch m := node.(type) {
	case *ast.MappingNode:
		if len(m.Values) > 0 {
			return m.Values[0].Key.GetToken()
		}
	case *ast.MappingValueNode:
		return m.Key.GetToken()
	}
	return node.GetToken()
}

// findMappingValue looks up a key in a mapping node. goccy/go-yaml
// represents a single-pair mapping as a bare MappingValueNode, so both
// shapes are handled.
func findMappingValue(node ast.Node, key string) *ast.MappingValueNode {
	switch m := node.(type) {
	case *ast.MappingNode:
		for _, value := range m.Values {
			if mappingKey(value) == key {
				return value
			}
		}
	case *ast.MappingValueNode:
		if mappingKey(m) == key {
			return m
		}
	}
	return nil
}

func mappingKey(value *ast.MappingValueNode) string {
	k, ok := value.Key.(*ast.StringNode)
	if !ok {
		return ""
	}
	return k.Value
}
