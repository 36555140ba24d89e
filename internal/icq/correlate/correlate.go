/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package correlate implements the nine-step correlation engine of spec
// §4.5: it runs once all primary records exist, joining shared-file,
// contact, dialog-state and content-cache data onto the decoded message
// set. Every step's failure semantics are "skip silently" — a missing
// input never aborts a later step.
package correlate

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/gravwell/icqforensic/internal/cachescan"
	"github.com/gravwell/icqforensic/internal/elog"
	"github.com/gravwell/icqforensic/internal/icq/model"
	"github.com/gravwell/icqforensic/internal/icq/uri"
	"github.com/gravwell/icqforensic/internal/jsoncache"
)

// filesHostPrefix is the sanitised ("hxxp"-defanged) file-sharing host
// prefix that steps 6-9 key off, matching the output of
// internal/icq/primitive.Sanitize applied to every decoded text field.
const filesHostPrefix = "hxxps://files.icq.net"

// SharedURLRecord is one entry of the top-level URL-metadata map produced
// by step 9: a fetched URL recovered from a content-cache sidecar,
// independent of any particular message.
type SharedURLRecord struct {
	URL          string                           `json:"url"`
	FetchTime    string                           `json:"fetch_time,omitempty"`
	FileLocation *model.SharedContentFileLocation `json:"SHARED_CONTENT_FILE_LOCATION,omitempty"`
}

// Dataset is the full set of primary records correlation runs over, per
// spec §3's keying rules. Messages, Contacts and the owner record are
// mutated in place; the other maps are read-only inputs.
type Dataset struct {
	Owner         *model.Owner
	Contacts      map[string]*model.Contact
	Messages      map[string]map[uint64]*model.Message
	SharedFiles   map[string]map[uint64]*model.SharedFile
	DialogStates  map[string]*model.DialogState
	GalleryStates map[string]*model.GalleryState
}

// Run executes all nine correlation steps against ds, using cache as the
// already-scanned content-cache index and sidecars as the already-decoded
// `.json` companion documents (spec §5: the cache is scanned once per
// correlation pass, ahead of this call). It returns the step-9
// URL-metadata map; every other result is mutated directly into ds.
func Run(ds *Dataset, cache cachescan.Index, sidecars map[string]jsoncache.Sidecar, log *elog.Logger) map[string]SharedURLRecord {
	if ds.Contacts == nil {
		ds.Contacts = make(map[string]*model.Contact)
	}

	tallies := tallyMediaTypes(ds.SharedFiles)          // step 1
	enrichContacts(ds.Contacts, ds.Messages, tallies, ds.GalleryStates) // step 2
	countMessages(ds.Contacts, ds.Messages, ds.Owner)   // step 3
	attachDialogStates(ds.Contacts, ds.DialogStates)    // step 4
	spliceSharedFiles(ds.Messages, ds.SharedFiles)      // step 5
	attachURLMetadataFromText(ds.Messages, log)         // step 6

	owners := cacheLookup(ds.Messages, cache) // step 7
	sidecarMD5Lookup(cache, sidecars, owners) // step 8
	return sidecarURLMetadata(sidecars, cache.Dirs) // step 9
}

// Step 1: per-user media-type tallies over shared-file content types.
func tallyMediaTypes(sharedFiles map[string]map[uint64]*model.SharedFile) map[string]*model.MediaTallies {
	out := make(map[string]*model.MediaTallies, len(sharedFiles))
	for uid, files := range sharedFiles {
		t := &model.MediaTallies{}
		for _, f := range files {
			switch f.ContentType {
			case "image":
				t.Images++
			case "video":
				t.Videos++
			case "file":
				t.Files++
			case "link":
				t.Links++
			case "ptt":
				t.PTT++
			default:
				t.Other++
			}
		}
		out[uid] = t
	}
	return out
}

// Step 2: contact enrichment — media tallies, gallery state, conversation
// type, and non-contact stub synthesis.
func enrichContacts(contacts map[string]*model.Contact, messages map[string]map[uint64]*model.Message, tallies map[string]*model.MediaTallies, galleryStates map[string]*model.GalleryState) {
	for uid, c := range contacts {
		if t, ok := tallies[uid]; ok {
			c.MediaInCommon = t
		}
		if gs, ok := galleryStates[uid]; ok {
			c.GalleryContentDetails = gs
		}
		if c.ConversationType == "" {
			c.ConversationType = conversationType(uid)
		}
	}
	for uid := range messages {
		if _, ok := contacts[uid]; ok {
			continue
		}
		contacts[uid] = &model.Contact{
			UID:                   uid,
			AIMID:                 uid,
			ConversationType:      conversationType(uid),
			MessageFromNonContact: true,
		}
	}
}

func conversationType(uid string) string {
	if strings.Contains(uid, "@chat.agent") {
		return model.ConversationGroup
	}
	return model.ConversationPrivate
}

// Step 3: message counts, per-contact and global.
func countMessages(contacts map[string]*model.Contact, messages map[string]map[uint64]*model.Message, owner *model.Owner) {
	var totalSent, totalRcvd int
	for uid, msgs := range messages {
		var sent, rcvd int
		for _, msg := range msgs {
			switch msg.Message.Direction {
			case "OUTGOING":
				sent++
			case "INCOMING":
				rcvd++
			}
		}
		if c, ok := contacts[uid]; ok {
			c.MessagesSent = sent
			c.MessagesReceived = rcvd
			c.MessagesTotal = sent + rcvd
		}
		totalSent += sent
		totalRcvd += rcvd
	}
	if owner != nil {
		owner.TotalSent = totalSent
		owner.TotalRcvd = totalRcvd
		owner.TotalAll = totalSent + totalRcvd
	}
}

// Step 4: attach each dialog-state record to its contact.
func attachDialogStates(contacts map[string]*model.Contact, dialogStates map[string]*model.DialogState) {
	for uid, ds := range dialogStates {
		if c, ok := contacts[uid]; ok {
			c.ConversationState = ds
		}
	}
}

// Step 5: splice matching shared-file records into their message.
func spliceSharedFiles(messages map[string]map[uint64]*model.Message, sharedFiles map[string]map[uint64]*model.SharedFile) {
	for uid, files := range sharedFiles {
		msgs, ok := messages[uid]
		if !ok {
			continue
		}
		for mid, sf := range files {
			if msg, ok := msgs[mid]; ok {
				ensureSharedContentDetails(msg).SharedFile = sf
			}
		}
	}
}

// Step 6: for a message lacking URI-decoded metadata, decode one from the
// first URL-bearing field carrying the sanitised files prefix.
func attachURLMetadataFromText(messages map[string]map[uint64]*model.Message, log *elog.Logger) {
	for _, msgs := range messages {
		for _, msg := range msgs {
			if msg.SharedContentDetails != nil && msg.SharedContentDetails.URIDecodedMetadata != nil {
				continue
			}
			for _, candidate := range urlCandidates(msg) {
				if !strings.HasPrefix(candidate, filesHostPrefix) {
					continue
				}
				md, err := uri.Decode(uri.ExtractToken(candidate))
				if err != nil {
					log.Debugf("skipping malformed file-sharing uri %q: %v", candidate, err)
					continue
				}
				ensureSharedContentDetails(msg).URIDecodedMetadata = toModelMetadata(md)
				break
			}
		}
	}
}

func toModelMetadata(md uri.Metadata) *model.URIDecodedMetadata {
	return &model.URIDecodedMetadata{
		ContentType:  md.ContentType,
		Timestamp:    md.Timestamp,
		DurationSecs: md.DurationSecs,
		Width:        md.Width,
		Height:       md.Height,
		ColorHex:     md.ColorHex,
	}
}

func urlCandidates(msg *model.Message) []string {
	var out []string
	for _, s := range []string{msg.Message.Text, msg.Message.QuoteText, msg.Message.QuoteURL, msg.Message.URL} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Step 7: content-cache lookup by MD5(url), 50%-prefix partial match.
// Returns the filename→owning-messages index step 8 joins against.
func cacheLookup(messages map[string]map[uint64]*model.Message, cache cachescan.Index) map[string][]*model.Message {
	owners := make(map[string][]*model.Message)
	if len(cache.Files) == 0 {
		return owners
	}
	for _, msgs := range messages {
		for _, msg := range msgs {
			for _, candidate := range urlCandidates(msg) {
				if !strings.Contains(candidate, filesHostPrefix) {
					continue
				}
				sum := md5.Sum([]byte(candidate))
				hexSum := hex.EncodeToString(sum[:])
				for name, info := range cache.Files {
					if !matchesByPrefix(name, hexSum) {
						continue
					}
					sd := ensureSharedContentDetails(msg)
					sd.FileMetadataByName[name] = info
					owners[name] = append(owners[name], msg)
				}
			}
		}
	}
	return owners
}

// Step 8: join the content-cache's own MD5s against `.json` sidecars
// describing a data file by MD5, then attach the owning message's file
// location using the filename→message index built in step 7.
func sidecarMD5Lookup(cache cachescan.Index, sidecars map[string]jsoncache.Sidecar, owners map[string][]*model.Message) {
	for sidecarName, sc := range sidecars {
		if sc.FileInfo == nil || sc.FileInfo.MD5 == "" {
			continue
		}
		for cacheName, info := range cache.Files {
			if info.MD5 != sc.FileInfo.MD5 {
				continue
			}
			for _, msg := range owners[cacheName] {
				sd := ensureSharedContentDetails(msg)
				if sd.FileLocation != nil {
					continue
				}
				loc := &model.SharedContentFileLocation{
					LocalPath:       filepath.Join(cache.Root, cacheName),
					SidecarFilename: sidecarName,
				}
				if dir, ok := matchCompanionDir(sidecarName, cache.Dirs); ok {
					loc.CompanionDirPath = dir.Path
					loc.CompanionListing = dir.Listing
				}
				sd.FileLocation = loc
			}
		}
	}
}

// Step 9: expose `doc.url`/`doc.fetch_ts` sidecars as a top-level
// URL-metadata map, with the same companion-directory attachment as step 8.
func sidecarURLMetadata(sidecars map[string]jsoncache.Sidecar, dirs []cachescan.CompanionDir) map[string]SharedURLRecord {
	out := make(map[string]SharedURLRecord)
	for name, sc := range sidecars {
		if sc.URL == nil {
			continue
		}
		rec := SharedURLRecord{URL: sc.URL.URL, FetchTime: sc.URL.FetchTime}
		if dir, ok := matchCompanionDir(name, dirs); ok {
			rec.FileLocation = &model.SharedContentFileLocation{
				CompanionDirPath: dir.Path,
				CompanionListing: dir.Listing,
			}
		}
		out[name] = rec
	}
	return out
}

func matchCompanionDir(filename string, dirs []cachescan.CompanionDir) (cachescan.CompanionDir, bool) {
	for _, d := range dirs {
		if matchesByPrefix(d.Name, filename) {
			return d, true
		}
	}
	return cachescan.CompanionDir{}, false
}

// matchesByPrefix implements spec §4.5 step 7's partial-match rule: the
// first half (rounded down) of name's characters must equal the
// corresponding prefix of ref, character-by-character from the left.
func matchesByPrefix(name, ref string) bool {
	n := len(name) / 2
	if n == 0 {
		return false
	}
	if n > len(ref) {
		n = len(ref)
	}
	return name[:n] == ref[:n]
}

func ensureSharedContentDetails(msg *model.Message) *model.SharedContentDetails {
	if msg.SharedContentDetails == nil {
		msg.SharedContentDetails = &model.SharedContentDetails{}
	}
	if msg.SharedContentDetails.FileMetadataByName == nil {
		msg.SharedContentDetails.FileMetadataByName = make(map[string]model.CacheFileInfo)
	}
	return msg.SharedContentDetails
}
