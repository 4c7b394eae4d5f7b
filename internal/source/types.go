package source

import "encoding/json"

// RawItem is one key/value pair from a storage dump. Value holds the item
// exactly as exported: either a JSON string wrapping JSON text (how browser
// local storage keeps it) or inline JSON.
type RawItem struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Item is a decoded, validated collection ready to be written to the store.
type Item struct {
	Key     string
	Value   []byte // canonical JSON text
	Records int    // -1 for non-list values such as the goal snapshot
}

// DiscoveredFile is a dump file found during scanning.
type DiscoveredFile struct {
	Path  string
	Lines bool // JSON Lines layout, one RawItem per line
}
