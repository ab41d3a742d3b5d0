package store

import (
	"bytes"
	"testing"

	"github.com/meteorroute/feeroute/errors"
)

func TestMemStoreCRUD(t *testing.T) {
	db := MemStore()

	if has, err := db.Has([]byte("a")); err != nil || has {
		t.Fatalf("empty store must not contain a key: %v %v", has, err)
	}
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if v, err := db.Get([]byte("a")); err != nil || !bytes.Equal(v, []byte("1")) {
		t.Fatalf("unexpected value: %q %v", v, err)
	}
	if err := db.Delete([]byte("a")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	if v, err := db.Get([]byte("a")); err != nil || v != nil {
		t.Fatalf("deleted key must be gone: %q %v", v, err)
	}
}

func TestCacheWrapIsolation(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("k"), []byte("old")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("k"), []byte("new")); err != nil {
		t.Fatalf("cannot set in cache: %+v", err)
	}

	// The parent must not see the change before Write.
	if v, _ := db.Get([]byte("k")); !bytes.Equal(v, []byte("old")) {
		t.Fatalf("uncommitted write leaked to the parent: %q", v)
	}
	// The cache must see its own change.
	if v, _ := cache.Get([]byte("k")); !bytes.Equal(v, []byte("new")) {
		t.Fatalf("cache must serve its own write: %q", v)
	}

	if err := cache.Write(); err != nil {
		t.Fatalf("cannot write cache: %+v", err)
	}
	if v, _ := db.Get([]byte("k")); !bytes.Equal(v, []byte("new")) {
		t.Fatalf("committed write missing in the parent: %q", v)
	}
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("k"), []byte("old")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("k"), []byte("new")); err != nil {
		t.Fatalf("cannot set in cache: %+v", err)
	}
	if err := cache.Delete([]byte("k")); err != nil {
		t.Fatalf("cannot delete in cache: %+v", err)
	}
	cache.Discard()

	if v, _ := db.Get([]byte("k")); !bytes.Equal(v, []byte("old")) {
		t.Fatalf("discard must not touch the parent: %q", v)
	}
}

func TestCacheWrapDeleteShadowsParent(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}

	cache := db.CacheWrap()
	if err := cache.Delete([]byte("k")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	if v, _ := cache.Get([]byte("k")); v != nil {
		t.Fatalf("deleted key must be hidden: %q", v)
	}
	if has, _ := cache.Has([]byte("k")); has {
		t.Fatal("deleted key must not exist")
	}
}

func TestMergedIterator(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "c", "e"} {
		if err := db.Set([]byte(k), []byte("parent")); err != nil {
			t.Fatalf("cannot set: %+v", err)
		}
	}

	cache := db.CacheWrap()
	// b is new, c is overwritten, e is deleted.
	if err := cache.Set([]byte("b"), []byte("cache")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Set([]byte("c"), []byte("cache")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Delete([]byte("e")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}

	it, err := cache.Iterator(nil, nil)
	if err != nil {
		t.Fatalf("cannot create iterator: %+v", err)
	}
	defer it.Release()

	want := []struct{ key, value string }{
		{"a", "parent"},
		{"b", "cache"},
		{"c", "cache"},
	}
	for _, w := range want {
		key, value, err := it.Next()
		if err != nil {
			t.Fatalf("unexpected iterator failure: %+v", err)
		}
		if string(key) != w.key || string(value) != w.value {
			t.Fatalf("want %s=%s, got %s=%s", w.key, w.value, key, value)
		}
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator done, got %+v", err)
	}
}

func TestMemStoreIteratorRange(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"aa", "ab", "b", "c"} {
		if err := db.Set([]byte(k), []byte(k)); err != nil {
			t.Fatalf("cannot set: %+v", err)
		}
	}

	it, err := db.Iterator([]byte("aa"), []byte("b"))
	if err != nil {
		t.Fatalf("cannot create iterator: %+v", err)
	}
	defer it.Release()

	var got []string
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected iterator failure: %+v", err)
		}
		got = append(got, string(key))
	}
	if len(got) != 2 || got[0] != "aa" || got[1] != "ab" {
		t.Fatalf("unexpected range result: %v", got)
	}
}

func TestNestedCacheWrap(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	inner := outer.CacheWrap()

	if err := inner.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := inner.Write(); err != nil {
		t.Fatalf("cannot write inner: %+v", err)
	}

	// Outer holds the change, the root store does not.
	if v, _ := outer.Get([]byte("k")); !bytes.Equal(v, []byte("v")) {
		t.Fatalf("outer cache must hold the inner write: %q", v)
	}
	if v, _ := db.Get([]byte("k")); v != nil {
		t.Fatalf("root store must be untouched: %q", v)
	}

	if err := outer.Write(); err != nil {
		t.Fatalf("cannot write outer: %+v", err)
	}
	if v, _ := db.Get([]byte("k")); !bytes.Equal(v, []byte("v")) {
		t.Fatalf("root store must hold the change: %q", v)
	}
}
