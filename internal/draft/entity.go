package draft

import (
	"encoding/json"
	"sort"
	"strconv"
)

// EntityType is the wire name of an entity kind.
type EntityType string

const (
	EntityLink       EntityType = "LINK"
	EntityImage      EntityType = "IMAGE"
	EntityFile       EntityType = "FILE"
	EntityPDF        EntityType = "PDF"
	EntityVideoEmbed EntityType = "draft-js-video-plugin-video"
	EntityTable      EntityType = "draft-js-table-plugin"
)

// Mutability controls how Draft.js treats edits to entity text.
type Mutability string

const (
	Mutable   Mutability = "MUTABLE"
	Immutable Mutability = "IMMUTABLE"
)

// Entity is an out-of-line object referenced from block text.
type Entity struct {
	Type       EntityType `json:"type"`
	Mutability Mutability `json:"mutability"`
	Data       any        `json:"data"`
}

// LinkData is the payload of LINK entities.
type LinkData struct {
	URL string `json:"url"`
}

// ImageData is the payload of IMAGE entities.
type ImageData struct {
	URL      string `json:"url"`
	Src      string `json:"src"`
	FileName string `json:"fileName"`
}

// FileData is the payload of FILE and PDF entities.
type FileData struct {
	Src  string `json:"src"`
	Name string `json:"name"`
}

// VideoData is the payload of video embed entities.
type VideoData struct {
	Src string `json:"src"`
}

// TableData is the payload of table entities.
type TableData struct {
	Columns []Cell `json:"columns"`
	Rows    []Row  `json:"rows"`
}

// Cell is a keyed table value.
type Cell struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Row is a keyed sequence of cells.
type Row struct {
	Key   string `json:"key"`
	Value []Cell `json:"value"`
}

// sentinelEntityMap is emitted in place of an empty map. Draft.js
// convertFromRaw rejects documents whose entityMap is {}.
var sentinelEntityMap = []byte(`{"data":"","mutability":"","type":""}`)

// EntityMap stores entities by their decimal key.
type EntityMap map[string]Entity

// NextKey returns the key the next inserted entity will receive.
func (m EntityMap) NextKey() string {
	return strconv.Itoa(len(m))
}

// Keys returns the map keys in numeric order.
func (m EntityMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

// IsSentinel reports whether the map serialises as the empty placeholder.
func (m EntityMap) IsSentinel() bool {
	return len(m) == 0
}

// MarshalJSON writes the sentinel for an empty map.
func (m EntityMap) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return append([]byte(nil), sentinelEntityMap...), nil
	}
	return json.Marshal(map[string]Entity(m))
}
