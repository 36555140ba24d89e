/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkClassifiesPerUserArtifacts(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "alice", "_db0001"))
	touch(t, filepath.Join(root, "alice", "_gc0001"))
	touch(t, filepath.Join(root, "alice", "avatars", "photo.jpg"))
	touch(t, filepath.Join(root, "info", "cache"))
	touch(t, filepath.Join(root, "dialogs", "cache1"))
	touch(t, filepath.Join(root, "favorites", "cache2"))
	touch(t, filepath.Join(root, "cache.cl"))

	m, err := Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	db := m.ByFamily(FamilyMessageHistory)
	if len(db) != 1 || db[0].UserID != "alice" {
		t.Fatalf("got %+v", db)
	}
	av := m.ByFamily(FamilyAvatar)
	if len(av) != 1 || av[0].UserID != "alice" {
		t.Fatalf("got %+v", av)
	}
	if len(m.ByFamily(FamilyMyInfo)) != 1 {
		t.Fatal("expected info/cache classified")
	}
	if len(m.ByFamily(FamilyDialogIndex)) != 1 {
		t.Fatal("expected dialogs/cache1 classified")
	}
	if len(m.ByFamily(FamilyFavorites)) != 1 {
		t.Fatal("expected favorites/cache2 classified")
	}
	if len(m.ByFamily(FamilyContactList)) != 1 {
		t.Fatal("expected cache.cl classified")
	}
}

func TestWalkStopsAtContentCacheDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "content.cache", "deadbeef"))
	touch(t, filepath.Join(root, "content.cache", "sub", "deadbeef2"))

	m, err := Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	cc := m.ByFamily(FamilyContentCache)
	if len(cc) != 1 {
		t.Fatalf("expected exactly one content.cache entry, got %+v", cc)
	}
	for _, e := range m.Entries {
		if e.Family != FamilyContentCache && filepath.Base(filepath.Dir(e.Path)) == "content.cache" {
			t.Fatalf("descended into content.cache, found %+v", e)
		}
	}
}

func TestWalkIgnoresUnrecognisedFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "alice", "notes.txt"))
	m, err := Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 0 {
		t.Fatalf("expected no entries, got %+v", m.Entries)
	}
}
