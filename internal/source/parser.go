// Package source reads browser local-storage dumps so existing data can be
// imported into the store.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
)

// ParseResult holds the output of parsing a single dump file.
type ParseResult struct {
	Items       []Item
	Skipped     []string // keys not known to the store
	ParseErrors int
	Err         error
}

// decoders validate a value against the shape stored under each key and
// return its record count.
var decoders = map[string]func([]byte) (int, error){
	store.KeyCashflow:  decodeList[model.CashflowEntry],
	store.KeySavings:   decodeList[model.SavingsEntry],
	store.KeyTargets:   decodeList[model.Target],
	store.KeyPortfolio: decodeList[model.PortfolioFund],
	store.KeyTasks:     decodeList[model.Task],
	store.KeyGoal: func(b []byte) (int, error) {
		var g model.SavingsGoal
		return -1, json.Unmarshal(b, &g)
	},
}

func decodeList[T any](b []byte) (int, error) {
	var v []T
	if err := json.Unmarshal(b, &v); err != nil {
		return 0, err
	}
	return len(v), nil
}

// ParseFile reads a dump file. A .json file is a single object mapping
// storage keys to values; a .jsonl file has one {"key","value"} per line.
// Later occurrences of a key replace earlier ones.
func ParseFile(df DiscoveredFile) ParseResult {
	var raw []RawItem
	var parseErrors int

	if df.Lines {
		items, errs, err := readLines(df.Path)
		if err != nil {
			return ParseResult{Err: err}
		}
		raw, parseErrors = items, errs
	} else {
		data, err := os.ReadFile(df.Path)
		if err != nil {
			return ParseResult{Err: err}
		}
		items, err := ParseObject(data)
		if err != nil {
			return ParseResult{Err: fmt.Errorf("%s: %w", df.Path, err)}
		}
		raw = items
	}

	res := collect(raw)
	res.ParseErrors += parseErrors
	return res
}

// ParseObject splits a JSON object dump into raw items in key order.
func ParseObject(data []byte) ([]RawItem, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("dump must be a JSON object")
	}

	var items []RawItem
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		items = append(items, RawItem{Key: key, Value: v})
	}
	return items, nil
}

func readLines(path string) ([]RawItem, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = f.Close() }()

	var (
		items       []RawItem
		parseErrors int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 8*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var it RawItem
		if err := json.Unmarshal(line, &it); err != nil || it.Key == "" {
			parseErrors++
			continue
		}
		items = append(items, it)
	}
	return items, parseErrors, scanner.Err()
}

func collect(raw []RawItem) ParseResult {
	var res ParseResult
	index := make(map[string]int)

	for _, r := range raw {
		decode, known := decoders[r.Key]
		if !known {
			res.Skipped = append(res.Skipped, r.Key)
			continue
		}

		value, err := unwrapValue(r.Value)
		if err != nil {
			res.ParseErrors++
			continue
		}
		n, err := decode(value)
		if err != nil {
			res.ParseErrors++
			continue
		}

		item := Item{Key: r.Key, Value: value, Records: n}
		if i, ok := index[r.Key]; ok {
			res.Items[i] = item
			continue
		}
		index[r.Key] = len(res.Items)
		res.Items = append(res.Items, item)
	}
	return res
}

// unwrapValue returns the JSON text held by v. Local storage values are
// strings, so a JSON string is decoded once more to reach the payload.
func unwrapValue(v json.RawMessage) ([]byte, error) {
	v = bytes.TrimSpace(v)
	if len(v) > 0 && v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		v = []byte(s)
	}
	if !json.Valid(v) {
		return nil, fmt.Errorf("value is not valid JSON")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
