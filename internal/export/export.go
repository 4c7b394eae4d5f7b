// Package export writes every stored collection to a spreadsheet, YAML or
// JSON file.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/fintrack/internal/view"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Document is the exported data: the raw collections plus the derived views.
type Document struct {
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Currency   string         `json:"currency" yaml:"currency"`
	State      view.State     `json:"state" yaml:"state"`
	View       view.ViewModel `json:"view" yaml:"-"`
}

// ParseFormat resolves a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q (want xlsx, yaml or json)", name)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer format from %q", path)
	}
	return ParseFormat(ext)
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		var node yaml.Node
		if err := node.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		numericAmounts(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatXLSX:
		return writeXLSX(w, doc)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// amountKeys are the YAML keys of decimal fields. Decimals only implement
// MarshalText, so yaml writes them as quoted strings unless retagged.
var amountKeys = map[string]bool{
	"amount":             true,
	"units":              true,
	"nav":                true,
	"monthly_withdrawal": true,
	"target_amount":      true,
	"current_saved":      true,
	"monthly_add":        true,
}

// numericAmounts rewrites decimal string scalars under amountKeys as plain
// YAML numbers so they match the JSON export.
func numericAmounts(n *yaml.Node) {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.ScalarNode || !amountKeys[k.Value] {
				continue
			}
			d, err := decimal.NewFromString(v.Value)
			if err != nil {
				continue
			}
			v.Style = 0
			v.Value = d.String()
			if d.IsInteger() {
				v.Tag = "!!int"
			} else {
				v.Tag = "!!float"
			}
		}
	}
	for _, c := range n.Content {
		numericAmounts(c)
	}
}
