package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/artpar/filetree/internal/core"
)

// Format is a seed/export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// FormatForPath picks a format from the file extension; YAML by default.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// TreeLoader reads seed trees. Nodes without an id get one from ids.
type TreeLoader struct {
	ids core.IDGenerator
}

// NewTreeLoader creates a loader.
func NewTreeLoader(ids core.IDGenerator) *TreeLoader {
	return &TreeLoader{ids: ids}
}

// LoadFile reads and validates the seed tree at path.
func (l *TreeLoader) LoadFile(path string) (core.Tree, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	tree, err := l.Decode(content, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Decode parses content in the given format and validates the result.
func (l *TreeLoader) Decode(content []byte, format Format) (core.Tree, error) {
	var data []nodeData
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
		}
	default:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
		}
	}

	taken := make(map[string]bool)
	collectIDs(data, taken)

	tree := make(core.Tree, 0, len(data))
	for i := range data {
		n, err := l.fromNodeData(&data[i], taken)
		if err != nil {
			return nil, err
		}
		tree = append(tree, n)
	}

	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

// Encode writes t to w in the given format.
func Encode(w io.Writer, t core.Tree, format Format) error {
	data := make([]nodeData, 0, len(t))
	for _, n := range t {
		data = append(data, toNodeData(n))
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal tree: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal tree: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush tree: %w", err)
		}
	}
	return nil
}

// Storage format types

type nodeData struct {
	ID       string     `yaml:"id,omitempty" json:"id,omitempty"`
	Label    string     `yaml:"label" json:"label"`
	Kind     string     `yaml:"kind,omitempty" json:"kind,omitempty"`
	Children []nodeData `yaml:"children,omitempty" json:"children,omitempty"`
}

// Conversion functions

func toNodeData(n *core.Node) nodeData {
	data := nodeData{
		ID:    n.ID,
		Label: n.Label,
		Kind:  n.Kind.String(),
	}
	for _, child := range n.Children {
		data.Children = append(data.Children, toNodeData(child))
	}
	return data
}

// collectIDs records every explicit id in data.
func collectIDs(data []nodeData, taken map[string]bool) {
	for i := range data {
		if data[i].ID != "" {
			taken[data[i].ID] = true
		}
		collectIDs(data[i].Children, taken)
	}
}

// fromNodeData converts a stored node. A missing kind means folder when the
// node lists children and file otherwise. Generated ids avoid everything in
// taken and are added to it.
func (l *TreeLoader) fromNodeData(data *nodeData, taken map[string]bool) (*core.Node, error) {
	n := &core.Node{ID: data.ID, Label: data.Label}

	if data.Kind == "" {
		n.Kind = core.KindFile
		if data.Children != nil {
			n.Kind = core.KindFolder
		}
	} else {
		kind, err := core.ParseKind(data.Kind)
		if err != nil {
			return nil, err
		}
		n.Kind = kind
	}

	if n.ID == "" && l.ids != nil {
		id, ok := core.FreshID(l.ids, func(id string) bool { return taken[id] })
		if !ok {
			return nil, fmt.Errorf("failed to generate an id for %q", data.Label)
		}
		n.ID = id
		taken[id] = true
	}

	if data.Children != nil {
		n.Children = make([]*core.Node, 0, len(data.Children))
		for i := range data.Children {
			child, err := l.fromNodeData(&data.Children[i], taken)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}
