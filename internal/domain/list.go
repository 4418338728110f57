package domain

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunItem describes one external command: a program name and its exact
// argument list. It owns no OS resources.
type RunItem struct {
	Name string   `yaml:"name" json:"name"`
	Args []string `yaml:"args" json:"args"`
}

func NewRunItem(name string, args ...string) RunItem {
	return RunItem{Name: name, Args: slices.Clone(args)}
}

// Equal treats a nil and an empty argument list as the same.
func (i RunItem) Equal(other RunItem) bool {
	return i.Name == other.Name && slices.Equal(i.Args, other.Args)
}

// String joins name and args for display only; it is never passed to a shell.
func (i RunItem) String() string {
	if len(i.Args) == 0 {
		return i.Name
	}
	return i.Name + " " + strings.Join(i.Args, " ")
}

func (i RunItem) MarshalYAML() (any, error) {
	type plain RunItem
	p := plain(i)
	if p.Args == nil {
		p.Args = []string{}
	}
	return p, nil
}

// ListKind names the failure and redirection policy of a List.
type ListKind string

const (
	ListPromiscuous ListKind = "Promiscuous"
	ListSilent      ListKind = "Silent"
	ListInteractive ListKind = "Interactive"
)

var listKinds = []ListKind{ListPromiscuous, ListSilent, ListInteractive}

func (k ListKind) Valid() bool {
	return slices.Contains(listKinds, k)
}

// List is the persisted script: an ordered set of items under one policy.
// Item order is execution order.
type List struct {
	Kind  ListKind
	Items []RunItem
}

type listBody struct {
	Items []RunItem `yaml:"items"`
}

func NewList(kind ListKind, items ...RunItem) List {
	return List{Kind: kind, Items: slices.Clone(items)}
}

func (l List) Equal(other List) bool {
	return l.Kind == other.Kind && slices.EqualFunc(l.Items, other.Items, RunItem.Equal)
}

// MarshalYAML writes the list as a single-key mapping tagged by kind:
//
//	Silent:
//	  items:
//	    - name: "true"
//	      args: []
func (l List) MarshalYAML() (any, error) {
	if !l.Kind.Valid() {
		return nil, fmt.Errorf("unknown list kind %q", l.Kind)
	}
	items := l.Items
	if items == nil {
		items = []RunItem{}
	}
	return map[string]listBody{string(l.Kind): {Items: items}}, nil
}

func (l *List) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: list must be a mapping with one policy key", node.Line)
	}
	if len(node.Content) != 2 {
		return fmt.Errorf("line %d: list must have exactly one policy key, got %d", node.Line, len(node.Content)/2)
	}
	key, value := node.Content[0], node.Content[1]
	kind := ListKind(key.Value)
	if !kind.Valid() {
		return fmt.Errorf("line %d: unknown list kind %q", key.Line, key.Value)
	}
	var body listBody
	if value.Kind != yaml.ScalarNode || value.Tag != "!!null" {
		if err := checkBodyKeys(kind, value); err != nil {
			return err
		}
		if err := value.Decode(&body); err != nil {
			return fmt.Errorf("decode %s list: %w", kind, err)
		}
	}
	l.Kind = kind
	l.Items = body.Items
	return nil
}

// checkBodyKeys requires a mapping body to hold exactly the items key.
func checkBodyKeys(kind ListKind, body *yaml.Node) error {
	if body.Kind != yaml.MappingNode {
		return nil
	}
	hasItems := false
	for i := 0; i+1 < len(body.Content); i += 2 {
		key := body.Content[i]
		if key.Value != "items" {
			return fmt.Errorf("line %d: %s list: unknown field %q", key.Line, kind, key.Value)
		}
		hasItems = true
	}
	if !hasItems {
		return fmt.Errorf("line %d: %s list: missing field \"items\"", body.Line, kind)
	}
	return nil
}
