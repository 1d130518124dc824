// internal/domain/content/document.go
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ToolVersion is stamped into documents on save. Version is informational:
// loading never gates on it, so documents written by newer tool versions
// still load.
const ToolVersion = "1.4.0"

// Document is an ordered sequence of blocks plus versioning metadata. Block
// order is the rendering order. An empty document is valid and renders
// nothing.
type Document struct {
	Time    int64   `bson:"time" json:"time"` // epoch milliseconds of last save
	Blocks  []Block `bson:"blocks" json:"blocks"`
	Version string  `bson:"version" json:"version"`
}

// Load deserializes a document snapshot. Unknown or future versions still
// deserialize; unrecognized block types are preserved as raw payloads.
//
// Payloads stay raw but are normalized to compact form here, matching what
// Save emits, so a save-then-reload cycle is byte-stable for every block
// type including unknown ones.
func Load(snapshot []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(snapshot, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if d.Blocks == nil {
		d.Blocks = []Block{}
	}
	for i, b := range d.Blocks {
		if len(b.Data) == 0 {
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, b.Data); err != nil {
			return Document{}, fmt.Errorf("block %d payload: %w", i, err)
		}
		d.Blocks[i].Data = json.RawMessage(buf.Bytes())
	}
	return d, nil
}

// Save serializes the document, refreshing Time to the save moment and
// stamping Version to the current tool version. Blocks are written exactly
// as authored.
func Save(d Document) ([]byte, error) {
	d.Time = time.Now().UnixMilli()
	d.Version = ToolVersion
	if d.Blocks == nil {
		d.Blocks = []Block{}
	}
	out, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

// Empty reports whether the document has no blocks.
func (d Document) Empty() bool {
	return len(d.Blocks) == 0
}

// NewDocument returns an empty document stamped with the current time and
// tool version.
func NewDocument() Document {
	return Document{
		Time:    time.Now().UnixMilli(),
		Blocks:  []Block{},
		Version: ToolVersion,
	}
}
