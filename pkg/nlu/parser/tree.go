package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// tokenTree builds the yaml.Node tree of a JSON document from encoding/json
// tokens. It reads the valid JSON that yaml.v3 rejects, such as "\/"
// escapes, \u escaped surrogate pairs and keys longer than 1024 characters.
// Nodes carry the line and byte column of their first byte.
func tokenTree(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	b := &treeBuilder{data: data, dec: dec}
	root, err := b.value()
	if err != nil {
		return nil, err
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Line: 1, Column: 1, Content: []*yaml.Node{root}}, nil
}

type treeBuilder struct {
	data []byte
	dec  *json.Decoder
}

// next returns the next token and the node positioned at its first byte.
func (b *treeBuilder) next() (json.Token, *yaml.Node, error) {
	start := b.dec.InputOffset()
	for start < int64(len(b.data)) && strings.IndexByte(" \t\r\n,:", b.data[start]) >= 0 {
		start++
	}
	tok, err := b.dec.Token()
	if err != nil {
		return nil, nil, err
	}
	loc := offsetToLocation(b.data, start, "")
	return tok, &yaml.Node{Line: loc.Line, Column: loc.Column}, nil
}

func (b *treeBuilder) value() (*yaml.Node, error) {
	tok, node, err := b.next()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			node.Kind, node.Tag = yaml.MappingNode, "!!map"
		case '[':
			node.Kind, node.Tag = yaml.SequenceNode, "!!seq"
		default:
			return nil, fmt.Errorf("unexpected %q", rune(t))
		}
		for b.dec.More() {
			child, err := b.value()
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		if _, err := b.dec.Token(); err != nil {
			return nil, err
		}
	case string:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!str", t
	case json.Number:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!float", t.String()
		if _, err := t.Int64(); err == nil {
			node.Tag = "!!int"
		}
	case bool:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!bool", strconv.FormatBool(t)
	case nil:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!null", "null"
	}
	return node, nil
}
