package store

import (
	"path/filepath"
	"strings"
	"testing"
)

type item struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCollectionSeedsOnFirstLoad(t *testing.T) {
	db := openTestDB(t)
	calls := 0
	c := NewCollection(db, "items", func() []item {
		calls++
		return []item{{ID: "a", Amount: 1}, {ID: "b", Amount: 2}}
	})

	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	raw, ok, err := db.Get("items")
	if err != nil || !ok {
		t.Fatalf("seed not persisted: ok=%v err=%v", ok, err)
	}
	if !strings.Contains(string(raw), `"id":"a"`) {
		t.Errorf("stored blob = %s", raw)
	}

	if _, err := c.Load(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("seed called %d times, want 1", calls)
	}
}

func TestCollectionSaveOverwrites(t *testing.T) {
	db := openTestDB(t)
	c := NewCollection(db, "items", func() []item { return []item{{ID: "seed"}} })

	if err := c.Save([]item{{ID: "x", Amount: 5}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("Load after Save = %+v, want [x]", got)
	}

	if err := c.Save([]item{}); err != nil {
		t.Fatal(err)
	}
	got, _ = c.Load()
	if len(got) != 0 {
		t.Errorf("empty save not preserved, got %+v", got)
	}
}

func TestCollectionCorruptBlob(t *testing.T) {
	db := openTestDB(t)
	if err := db.Put("items", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	c := NewCollection(db, "items", func() []item { return nil })
	if _, err := c.Load(); err == nil {
		t.Fatal("expected decode error for corrupt blob")
	}
}

func TestPutIfAbsentKeepsExisting(t *testing.T) {
	db := openTestDB(t)
	if err := db.Put("k", []byte(`"first"`)); err != nil {
		t.Fatal(err)
	}
	got, err := db.PutIfAbsent("k", []byte(`"second"`))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `"first"` {
		t.Errorf("PutIfAbsent = %s, want \"first\"", got)
	}
}

func TestDeleteReseeds(t *testing.T) {
	db := openTestDB(t)
	c := NewCollection(db, "items", func() []item { return []item{{ID: "seed"}} })
	if err := c.Save(nil); err != nil {
		t.Fatal(err)
	}
	if err := db.Delete("items"); err != nil {
		t.Fatal(err)
	}
	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "seed" {
		t.Errorf("after delete got %+v, want seed", got)
	}

	keys, err := db.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0].Key != "items" {
		t.Errorf("Keys = %+v", keys)
	}
}
