/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// icqforensic walks an extracted ICQ profile-directory tree, decodes the
// message-history, gallery-cache, gallery-state, dialog-state, binary
// MyInfo, contact-list and favourites families, runs the nine-step
// correlation engine over the result, and logs a summary. Drafts, call
// logs, the dialog index, search history, avatars and ui2.stg are
// classified by discover but not decoded here. The full CLI argument surface (output
// format, partial re-runs, selective family filters) is explicitly out of
// scope here; this is the minimal wiring demonstration spec §5 describes.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/gravwell/icqforensic/internal/cachescan"
	"github.com/gravwell/icqforensic/internal/discover"
	"github.com/gravwell/icqforensic/internal/elog"
	"github.com/gravwell/icqforensic/internal/iconfig"
	"github.com/gravwell/icqforensic/internal/icq/correlate"
	"github.com/gravwell/icqforensic/internal/icq/model"
	"github.com/gravwell/icqforensic/internal/icq/stream"
	"github.com/gravwell/icqforensic/internal/jsoncache"
)

var (
	root       = flag.String("root", "", "extracted ICQ profile directory to decode")
	configPath = flag.String("config", "", "optional icqforensic.conf path")
)

func main() {
	flag.Parse()
	if *root == "" {
		os.Stderr.WriteString("usage: icqforensic -root <extracted-profile-dir> [-config <path>]\n")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		os.Stderr.WriteString("loading config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := elog.New(os.Stderr)
	if lerr := log.SetLevelString(cfg.Global.Log_Level); lerr != nil {
		log.SetLevel(elog.ERROR)
	}

	if err := run(*root, cfg, log); err != nil {
		log.Errorf("run failed: %v", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*iconfig.DecodeConfig, error) {
	if path == "" {
		return iconfig.Default(), nil
	}
	return iconfig.LoadConfigFile(path)
}

func run(rootDir string, cfg *iconfig.DecodeConfig, log *elog.Logger) error {
	manifest, err := discover.Walk(rootDir)
	if err != nil {
		return err
	}

	ds := &correlate.Dataset{
		Owner:         &model.Owner{},
		Contacts:      make(map[string]*model.Contact),
		Messages:      make(map[string]map[uint64]*model.Message),
		SharedFiles:   make(map[string]map[uint64]*model.SharedFile),
		DialogStates:  make(map[string]*model.DialogState),
		GalleryStates: make(map[string]*model.GalleryState),
	}

	decodeBinaryFamilies(manifest, ds, cfg.Global.Verbose, log)
	decodeJSONFamilies(manifest, ds, log)

	cacheRoot := ""
	for _, e := range manifest.ByFamily(discover.FamilyContentCache) {
		cacheRoot = e.Path
		break
	}
	if cacheRoot == "" {
		cacheRoot = filepath.Join(rootDir, cfg.Global.Content_Cache_Name)
	}
	cache, err := cachescan.Scan(cacheRoot, log)
	if err != nil {
		return err
	}
	sidecars := decodeSidecars(cache, log)

	urls := correlate.Run(ds, cache, sidecars, log)

	log.Infof("decoded %d contacts, %d shared urls, %d content-cache files", len(ds.Contacts), len(urls), len(cache.Files))
	return nil
}

func decodeBinaryFamilies(manifest discover.Manifest, ds *correlate.Dataset, verbose bool, log *elog.Logger) {
	for _, e := range manifest.ByFamily(discover.FamilyMessageHistory) {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			log.Warnf("reading %q: %v", e.Path, err)
			continue
		}
		recs := ds.Messages[e.UserID]
		ds.Messages[e.UserID] = stream.DecodeMessageHistory(data, recs, e.UserID, verbose)
	}
	for _, e := range manifest.ByFamily(discover.FamilyGalleryCache) {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			log.Warnf("reading %q: %v", e.Path, err)
			continue
		}
		recs := ds.SharedFiles[e.UserID]
		ds.SharedFiles[e.UserID] = stream.DecodeSharedFiles(data, recs, verbose)
	}
	for _, e := range manifest.ByFamily(discover.FamilyGalleryState) {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			log.Warnf("reading %q: %v", e.Path, err)
			continue
		}
		ds.GalleryStates[e.UserID] = stream.DecodeGalleryState(data, ds.GalleryStates[e.UserID], verbose)
	}
	for _, e := range manifest.ByFamily(discover.FamilyDialogState) {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			log.Warnf("reading %q: %v", e.Path, err)
			continue
		}
		ds.DialogStates[e.UserID] = stream.DecodeDialogState(data, ds.DialogStates[e.UserID], verbose)
	}
	for _, e := range manifest.ByFamily(discover.FamilyMyInfo) {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			log.Warnf("reading %q: %v", e.Path, err)
			continue
		}
		ds.Owner = stream.DecodeMyInfo(data, ds.Owner)
	}
}

func decodeJSONFamilies(manifest discover.Manifest, ds *correlate.Dataset, log *elog.Logger) {
	for _, e := range manifest.ByFamily(discover.FamilyContactList) {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			log.Warnf("reading %q: %v", e.Path, err)
			continue
		}
		contacts, err := jsoncache.DecodeContactList(data)
		if err != nil {
			log.Warnf("decoding contact list %q: %v", e.Path, err)
			continue
		}
		for uid, c := range contacts {
			ds.Contacts[uid] = c
		}
	}
	for _, e := range manifest.ByFamily(discover.FamilyFavorites) {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			log.Warnf("reading %q: %v", e.Path, err)
			continue
		}
		favorites, err := jsoncache.DecodeFavorites(data)
		if err != nil {
			log.Warnf("decoding favorites %q: %v", e.Path, err)
			continue
		}
		for uid, fav := range favorites {
			if c, ok := ds.Contacts[uid]; ok {
				c.IsFavorite = fav
			}
		}
	}
}

func decodeSidecars(cache cachescan.Index, log *elog.Logger) map[string]jsoncache.Sidecar {
	sidecars := make(map[string]jsoncache.Sidecar, len(cache.Sidecars))
	for _, name := range cache.Sidecars {
		path := filepath.Join(cache.Root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("reading sidecar %q: %v", path, err)
			continue
		}
		sc, err := jsoncache.DecodeSidecar(data)
		if err != nil {
			log.Warnf("decoding sidecar %q: %v", path, err)
			continue
		}
		sidecars[name] = sc
	}
	return sidecars
}
