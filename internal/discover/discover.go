/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package discover walks an extracted input directory tree and classifies
// every file into an artifact family by (parent-directory name,
// basename-glob), per spec §6's table. It never opens a file; classifying
// only needs path shape.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Family names one of spec §6's artifact kinds.
type Family string

const (
	FamilyMessageHistory Family = "message_history" // <uid>/_db*
	FamilyGalleryCache   Family = "gallery_cache"    // <uid>/_gc*
	FamilyGalleryState   Family = "gallery_state"    // <uid>/_gs*
	FamilyDialogState    Family = "dialog_state"     // <uid>/_ste*
	FamilyDraft          Family = "draft"            // <uid>/_draft*
	FamilySearchHistory  Family = "search_history"   // <uid>/hst
	FamilyAvatar         Family = "avatar"            // <uid>/avatars/*.jpg
	FamilyMyInfo         Family = "my_info"           // info/cache
	FamilyDialogIndex    Family = "dialog_index"      // dialogs/cache*
	FamilyContactList    Family = "contact_list"      // */cache.cl
	FamilyCallLog        Family = "call_log"          // */call_log.cache
	FamilyUISettings     Family = "ui_settings"       // */ui2.stg
	FamilyFavorites      Family = "favorites"         // favorites/cache2
	FamilyContentCache   Family = "content_cache"     // content.cache/ (directory)
)

// Entry is one classified file (or, for FamilyContentCache, directory).
type Entry struct {
	Path   string
	UserID string // parent directory name (grandparent for avatars); empty for info/, dialogs/, favorites/ and content.cache entries
	Family Family
}

// Manifest groups every classified entry produced by a Walk.
type Manifest struct {
	Entries []Entry
}

// ByFamily filters the manifest to one artifact family.
func (m Manifest) ByFamily(f Family) []Entry {
	var out []Entry
	for _, e := range m.Entries {
		if e.Family == f {
			out = append(out, e)
		}
	}
	return out
}

// rule is one basename-glob classification rule, optionally scoped to an
// exact parent directory name. uidFromGrandparent handles the avatars/
// nesting, where the user-id directory is the parent of the parent.
type rule struct {
	family             Family
	pattern            string
	parentDir          string
	uidFromGrandparent bool
}

var rules = []rule{
	{family: FamilyMessageHistory, pattern: "_db*"},
	{family: FamilyGalleryCache, pattern: "_gc*"},
	{family: FamilyGalleryState, pattern: "_gs*"},
	{family: FamilyDialogState, pattern: "_ste*"},
	{family: FamilyDraft, pattern: "_draft*"},
	{family: FamilySearchHistory, pattern: "hst"},
	{family: FamilyAvatar, pattern: "*.jpg", parentDir: "avatars", uidFromGrandparent: true},
	{family: FamilyMyInfo, pattern: "cache", parentDir: "info"},
	{family: FamilyDialogIndex, pattern: "cache*", parentDir: "dialogs"},
	{family: FamilyContactList, pattern: "cache.cl"},
	{family: FamilyCallLog, pattern: "call_log.cache"},
	{family: FamilyUISettings, pattern: "ui2.stg"},
	{family: FamilyFavorites, pattern: "cache2", parentDir: "favorites"},
}

// classifier wraps doublestar glob matching over a fixed rule set,
// validated once at construction (teacher pattern:
// ingesters/s3Ingester/utils.go's matcher type, adapted from S3-key globs
// to filesystem basename globs).
type classifier struct {
	rules []rule
}

func newClassifier(rs []rule) (*classifier, error) {
	for _, r := range rs {
		if _, err := doublestar.Match(r.pattern, "foobar"); err != nil {
			return nil, fmt.Errorf("file pattern %q is invalid: %w", r.pattern, err)
		}
	}
	return &classifier{rules: rs}, nil
}

func (c *classifier) classify(parentName, baseName string) (rule, bool) {
	for _, r := range c.rules {
		if r.parentDir != "" && r.parentDir != parentName {
			continue
		}
		if ok, err := doublestar.Match(r.pattern, baseName); err == nil && ok {
			return r, true
		}
	}
	return rule{}, false
}

var defaultClassifier = mustClassifier()

func mustClassifier() *classifier {
	c, err := newClassifier(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Walk recursively classifies every file under root per spec §6's table.
// content.cache/ is recorded as a single directory entry and not descended
// into — its own contents are the domain of internal/cachescan. Unreadable
// entries are skipped rather than aborting the whole walk.
func Walk(root string) (Manifest, error) {
	var m Manifest
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "content.cache" {
				m.Entries = append(m.Entries, Entry{Path: path, Family: FamilyContentCache})
				return filepath.SkipDir
			}
			return nil
		}

		parentDir := filepath.Dir(path)
		parentName := filepath.Base(parentDir)
		r, ok := defaultClassifier.classify(parentName, d.Name())
		if !ok {
			return nil
		}

		uid := ""
		switch {
		case r.uidFromGrandparent:
			uid = filepath.Base(filepath.Dir(parentDir))
		case r.parentDir == "":
			uid = parentName
		}
		m.Entries = append(m.Entries, Entry{Path: path, UserID: uid, Family: r.family})
		return nil
	})
	return m, err
}
