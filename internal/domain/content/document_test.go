package content

import (
	"bytes"
	"testing"
)

func TestLoad_EmptyDocument(t *testing.T) {
	doc, err := Load([]byte(`{"time":0,"blocks":[],"version":"1.0.0"}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !doc.Empty() {
		t.Error("document should be empty")
	}
}

func TestLoad_NilBlocksBecomesEmptySlice(t *testing.T) {
	doc, err := Load([]byte(`{"time":0,"version":"1.0.0"}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Blocks == nil {
		t.Error("Blocks should be non-nil after Load")
	}
}

func TestLoad_FutureVersionStillLoads(t *testing.T) {
	// Version is informational; a snapshot written by a newer tool must
	// still deserialize.
	doc, err := Load([]byte(`{"time":1,"blocks":[{"type":"paragraph","data":{"text":"hi"}}],"version":"99.0.0"}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1", len(doc.Blocks))
	}
	if doc.Version != "99.0.0" {
		t.Errorf("Version = %q, want %q", doc.Version, "99.0.0")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	if _, err := Load([]byte(`{not json`)); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestSave_StampsTimeAndVersion(t *testing.T) {
	doc := Document{Time: 1, Version: "0.0.1"}
	out, err := Save(doc)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	reloaded, err := Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Version != ToolVersion {
		t.Errorf("Version = %q, want %q", reloaded.Version, ToolVersion)
	}
	if reloaded.Time <= 1 {
		t.Errorf("Time = %d, should be refreshed to the save moment", reloaded.Time)
	}
}

func TestRoundTrip_PreservesBlocksExactly(t *testing.T) {
	snapshot := []byte(`{"time":5,"blocks":[` +
		`{"id":"b1","type":"header","data":{"text":"Title","level":2}},` +
		`{"type":"paragraph","data":{"text":"Body <em>text</em>"}},` +
		`{"id":"b3","type":"futureBlockType","data":{"shape":{"nested":[1,2,3]},"flag":true}}` +
		`],"version":"1.0.0"}`)

	doc, err := Load(snapshot)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out, err := Save(doc)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(out)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}

	if len(reloaded.Blocks) != len(doc.Blocks) {
		t.Fatalf("len(Blocks) = %d, want %d", len(reloaded.Blocks), len(doc.Blocks))
	}
	for i := range doc.Blocks {
		if reloaded.Blocks[i].ID != doc.Blocks[i].ID {
			t.Errorf("block %d ID = %q, want %q", i, reloaded.Blocks[i].ID, doc.Blocks[i].ID)
		}
		if reloaded.Blocks[i].Type != doc.Blocks[i].Type {
			t.Errorf("block %d Type = %q, want %q", i, reloaded.Blocks[i].Type, doc.Blocks[i].Type)
		}
		if !bytes.Equal(reloaded.Blocks[i].Data, doc.Blocks[i].Data) {
			t.Errorf("block %d Data = %s, want %s", i, reloaded.Blocks[i].Data, doc.Blocks[i].Data)
		}
	}
}

func TestRoundTrip_UnknownBlockByteIdentical(t *testing.T) {
	// Key order and content of an unknown payload must survive an edit
	// session: the payload stays raw and is never re-encoded field by
	// field. Whitespace is normalized once at load; after that,
	// save-then-reload is byte-stable.
	snapshot := []byte(`{"time":5,"blocks":[` +
		`{"type":"futureBlockType","data":{"zeta":1, "alpha": [true , null]}}` +
		`],"version":"1.0.0"}`)

	doc, err := Load(snapshot)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := `{"zeta":1,"alpha":[true,null]}`; string(doc.Blocks[0].Data) != want {
		t.Fatalf("loaded data = %s, want key order kept and whitespace normalized %s", doc.Blocks[0].Data, want)
	}

	out, err := Save(doc)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	reloaded, err := Load(out)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if !bytes.Equal(reloaded.Blocks[0].Data, doc.Blocks[0].Data) {
		t.Errorf("unknown block data = %s, want byte-identical %s", reloaded.Blocks[0].Data, doc.Blocks[0].Data)
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Version != ToolVersion {
		t.Errorf("Version = %q, want %q", doc.Version, ToolVersion)
	}
	if doc.Blocks == nil || len(doc.Blocks) != 0 {
		t.Error("new document should have an empty, non-nil block slice")
	}
}
