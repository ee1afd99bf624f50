// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatYAML, FormatJSON, FormatTOML, FormatText}

// ParseFormat returns the Format named s. The empty string is yaml.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown format %q, want one of %v", s, Formats)
}

var (
	keyColor   = color.New(color.FgYellow).SprintFunc()
	valueColor = color.New(color.FgGreen).SprintFunc()
	nullColor  = color.New(color.FgWhite).SprintFunc()
)

// Render writes v to w in format f.
func Render(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		e.SetEscapeHTML(false)
		return errors.Wrap(e.Encode(v), "encoding json")
	case FormatYAML, "":
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(e.Close(), "encoding yaml")
	case FormatTOML:
		p, err := plain(v)
		if err != nil {
			return err
		}
		if _, ok := p.(map[string]any); !ok {
			p = map[string]any{"value": p}
		}
		return errors.Wrap(toml.NewEncoder(w).Encode(p), "encoding toml")
	case FormatText:
		var n yaml.Node
		if err := n.Encode(v); err != nil {
			return errors.Wrap(err, "encoding text")
		}
		writeText(w, &n, 0)
		return nil
	default:
		return errors.Errorf("unknown format %q", f)
	}
}

// plain converts v to maps, slices and scalars through its json encoding.
func plain(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding json")
	}
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	var out any
	if err := d.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decoding json")
	}
	return numbers(out), nil
}

func numbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			if e == nil {
				delete(t, k)
				continue
			}
			t[k] = numbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = numbers(e)
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	}
	return v
}

// writeText prints n as indented, colored "key: value" lines.
func writeText(w io.Writer, n *yaml.Node, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			writeText(w, c, depth)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind == yaml.ScalarNode {
				fmt.Fprintf(w, "%s%s: %s\n", pad, keyColor(k.Value), scalar(v))
				continue
			}
			fmt.Fprintf(w, "%s%s:\n", pad, keyColor(k.Value))
			writeText(w, v, depth+1)
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if c.Kind == yaml.ScalarNode {
				fmt.Fprintf(w, "%s- %s\n", pad, scalar(c))
				continue
			}
			fmt.Fprintf(w, "%s-\n", pad)
			writeText(w, c, depth+1)
		}
	case yaml.ScalarNode:
		fmt.Fprintf(w, "%s%s\n", pad, scalar(n))
	}
}

func scalar(n *yaml.Node) string {
	if n.ShortTag() == "!!null" {
		return nullColor("-")
	}
	return valueColor(n.Value)
}

// Ordered is a map whose keys keep their insertion order.
type Ordered interface {
	Keys() []string
	Get(key string) (any, bool)
}

// OrderedMap renders an Ordered value in key order. Nested Ordered values
// are rendered the same way.
type OrderedMap struct {
	Ordered
}

func wrap(v any) any {
	if o, ok := v.(Ordered); ok {
		return OrderedMap{o}
	}
	return v
}

func (m OrderedMap) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		v, _ := m.Get(k)
		vb, err := json.Marshal(wrap(v))
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (m OrderedMap) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		var vn yaml.Node
		if err := vn.Encode(wrap(v)); err != nil {
			return nil, err
		}
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		n.Content = append(n.Content, kn, &vn)
	}
	return n, nil
}
