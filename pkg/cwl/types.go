package cwl

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind classifies a node of a parsed CWL document.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

// Node is a read-only view over one value in a CWL document.
// The zero Node is null, which is also what lookups of absent keys return.
type Node struct {
	n *yaml.Node
}

// NewNode wraps a yaml.v3 node. Document nodes are unwrapped to their content
// and aliases are followed.
func NewNode(n *yaml.Node) Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return Node{}
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return Node{n: n}
		}
	}
	return Node{}
}

// Kind reports the variant held by the node. An explicit YAML null is KindNull.
func (n Node) Kind() Kind {
	if n.n == nil {
		return KindNull
	}
	switch n.n.Kind {
	case yaml.ScalarNode:
		if n.n.Tag == "!!null" {
			return KindNull
		}
		return KindScalar
	case yaml.SequenceNode:
		return KindSequence
	case yaml.MappingNode:
		return KindMapping
	}
	return KindNull
}

// IsNull reports whether the node is absent or an explicit null.
func (n Node) IsNull() bool { return n.Kind() == KindNull }

// Scalar returns the scalar text and whether the node is a scalar.
func (n Node) Scalar() (string, bool) {
	if n.Kind() != KindScalar {
		return "", false
	}
	return n.n.Value, true
}

// String returns the scalar text, or "" for any other kind.
func (n Node) String() string {
	s, _ := n.Scalar()
	return s
}

// Items returns the elements of a sequence node, nil for any other kind.
func (n Node) Items() []Node {
	if n.Kind() != KindSequence {
		return nil
	}
	items := make([]Node, 0, len(n.n.Content))
	for _, c := range n.n.Content {
		items = append(items, NewNode(c))
	}
	return items
}

// Lookup returns the value stored under key in a mapping node.
// The boolean is false when the node is not a mapping or has no such key.
func (n Node) Lookup(key string) (Node, bool) {
	if n.Kind() != KindMapping {
		return Node{}, false
	}
	// Mapping content alternates key, value.
	for i := 0; i+1 < len(n.n.Content); i += 2 {
		if n.n.Content[i].Value == key {
			return NewNode(n.n.Content[i+1]), true
		}
	}
	return Node{}, false
}

// Field returns the value under key, or a null node.
func (n Node) Field(key string) Node {
	v, _ := n.Lookup(key)
	return v
}

// Len returns the number of entries of a mapping or elements of a sequence.
func (n Node) Len() int {
	switch n.Kind() {
	case KindSequence:
		return len(n.n.Content)
	case KindMapping:
		return len(n.n.Content) / 2
	}
	return 0
}

// Line returns the 1-based source line of the node, or 0 if unknown.
func (n Node) Line() int {
	if n.n == nil {
		return 0
	}
	return n.n.Line
}

// Document is a parsed CWL document. Its root is always a mapping.
type Document struct {
	Root Node
}

// ParseDocument parses CWL YAML (or JSON) into a Document.
func ParseDocument(data []byte) (*Document, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	root := NewNode(&n)
	if root.Kind() != KindMapping {
		return nil, fmt.Errorf("document root must be a mapping, got %s", root.Kind())
	}
	return &Document{Root: root}, nil
}

// Class returns the CWL class (Workflow, CommandLineTool, ExpressionTool).
func (d *Document) Class() string {
	return d.Root.Field("class").String()
}

// ID returns the document's id field, if present.
func (d *Document) ID() string {
	return d.Root.Field("id").String()
}

// CWLVersion returns the cwlVersion field.
func (d *Document) CWLVersion() string {
	return d.Root.Field("cwlVersion").String()
}
