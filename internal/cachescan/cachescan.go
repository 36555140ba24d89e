/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package cachescan enumerates the `content.cache/` directory once,
// building the filename→(size, MD5, sniffed kind) index the correlation
// engine's steps 7-9 join message URLs against (spec §4.5, §5's resource
// policy: "the content cache is enumerated once and cached as an
// in-memory filename→metadata map for the whole correlation pass").
package cachescan

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	"github.com/h2non/filetype"

	"github.com/gravwell/icqforensic/internal/elog"
	"github.com/gravwell/icqforensic/internal/icq/model"
)

const chunkSize = 64 * 1024

// CompanionDir is a subdirectory of the content cache sitting alongside the
// opaque blobs — step 8's "companion directory" whose name may prefix-match
// a sidecar filename.
type CompanionDir struct {
	Name    string
	Path    string
	Listing []string
}

// Index is the result of scanning one content-cache directory: the opaque
// blob files (by name), the `.json` sidecar filenames found alongside them,
// and any companion directories.
type Index struct {
	Root     string
	Files    map[string]model.CacheFileInfo
	Sidecars []string
	Dirs     []CompanionDir
}

// Scan walks the immediate children of root: non-JSON files are hashed and
// sniffed into Files, `.json` files are recorded as Sidecars (content
// decoding is internal/jsoncache's job), and subdirectories are recorded as
// companion directories with their listing. A missing root is not an
// error — per spec §4.5's failure semantics the corresponding correlation
// steps simply find no data.
func Scan(root string, log *elog.Logger) (Index, error) {
	idx := Index{Root: root, Files: make(map[string]model.CacheFileInfo)}

	entries, err := os.ReadDir(root)
	if err != nil {
		log.Infof("content cache %q not present, skipping steps 7-9: %v", root, err)
		return idx, nil
	}

	lock := flock.New(filepath.Join(root, ".icqforensic-scan.lock"))
	if locked, lerr := lock.TryLock(); lerr == nil && locked {
		defer lock.Unlock()
	} else if lerr != nil {
		log.Warnf("could not lock content cache %q: %v", root, lerr)
	}

	for _, e := range entries {
		full := filepath.Join(root, e.Name())
		if e.IsDir() {
			listing, _ := listDir(full)
			idx.Dirs = append(idx.Dirs, CompanionDir{Name: e.Name(), Path: full, Listing: listing})
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			idx.Sidecars = append(idx.Sidecars, e.Name())
			continue
		}
		info, err := e.Info()
		if err != nil {
			log.Warnf("stat %q: %v", full, err)
			continue
		}
		sum, kind, err := hashAndSniff(full)
		if err != nil {
			log.Warnf("hash %q: %v", full, err)
			continue
		}
		idx.Files[e.Name()] = model.CacheFileInfo{Size: info.Size(), MD5: sum, Kind: kind}
	}
	return idx, nil
}

func listDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// hashAndSniff streams a file through MD5 in 64 KiB chunks (spec §5) and
// sniffs its content type from the leading chunk via h2non/filetype. The
// sniffed MIME type is only recorded as Kind; Scan decides what is a
// sidecar by the `.json` extension alone.
func hashAndSniff(path string) (sum, kind string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, chunkSize)
	first := true
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			if first {
				if kt, _ := filetype.Match(buf[:n]); kt != filetype.Unknown {
					kind = kt.MIME.Value
				}
				first = false
			}
			if _, werr := h.Write(buf[:n]); werr != nil {
				return "", kind, werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", kind, rerr
		}
	}
	return hex.EncodeToString(h.Sum(nil)), kind, nil
}
