/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package correlate

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/gravwell/icqforensic/internal/cachescan"
	"github.com/gravwell/icqforensic/internal/elog"
	"github.com/gravwell/icqforensic/internal/icq/model"
	"github.com/gravwell/icqforensic/internal/jsoncache"
)

func testLogger() *elog.Logger { return elog.NewDiscard() }

func TestRunTalliesAndEnrichesContacts(t *testing.T) {
	ds := &Dataset{
		Owner:    &model.Owner{},
		Contacts: map[string]*model.Contact{"alice": {UID: "alice"}},
		SharedFiles: map[string]map[uint64]*model.SharedFile{
			"alice": {
				1: {ContentType: "image"},
				2: {ContentType: "image"},
				3: {ContentType: "mystery"},
			},
		},
		Messages: map[string]map[uint64]*model.Message{},
	}
	Run(ds, cachescan.Index{}, nil, testLogger())

	mt := ds.Contacts["alice"].MediaInCommon
	if mt == nil || mt.Images != 2 || mt.Other != 1 {
		t.Fatalf("got %+v", mt)
	}
}

func TestRunSynthesisesStubForNonContactMessage(t *testing.T) {
	ds := &Dataset{
		Owner:    &model.Owner{},
		Contacts: map[string]*model.Contact{},
		Messages: map[string]map[uint64]*model.Message{
			"stranger@chat.agent": {1: {UserID: "stranger@chat.agent", Message: model.MessageContent{Direction: "INCOMING"}}},
		},
	}
	Run(ds, cachescan.Index{}, nil, testLogger())

	c := ds.Contacts["stranger@chat.agent"]
	if c == nil || !c.MessageFromNonContact {
		t.Fatalf("expected synthesised stub contact, got %+v", c)
	}
	if c.ConversationType != model.ConversationGroup {
		t.Fatalf("got %q", c.ConversationType)
	}
	if c.MessagesReceived != 1 || c.MessagesTotal != 1 {
		t.Fatalf("got %+v", c)
	}
	if ds.Owner.TotalRcvd != 1 || ds.Owner.TotalAll != 1 {
		t.Fatalf("got %+v", ds.Owner)
	}
}

func TestRunSplicesSharedFileIntoMessage(t *testing.T) {
	ds := &Dataset{
		Owner:    &model.Owner{},
		Contacts: map[string]*model.Contact{},
		Messages: map[string]map[uint64]*model.Message{
			"bob": {42: {UserID: "bob"}},
		},
		SharedFiles: map[string]map[uint64]*model.SharedFile{
			"bob": {42: {Content: "hxxps://files.icq.net/get/xyz"}},
		},
	}
	Run(ds, cachescan.Index{}, nil, testLogger())

	sd := ds.Messages["bob"][42].SharedContentDetails
	if sd == nil || sd.SharedFile == nil || sd.SharedFile.Content != "hxxps://files.icq.net/get/xyz" {
		t.Fatalf("got %+v", sd)
	}
}

func TestRunAttachesURLMetadataFromText(t *testing.T) {
	token := "0" + "01" + "02" + "000" + "00000000000000" + "60989700"
	for len(token) < 30 {
		token += "0"
	}
	ds := &Dataset{
		Owner:    &model.Owner{},
		Contacts: map[string]*model.Contact{},
		Messages: map[string]map[uint64]*model.Message{
			"carol": {1: {UserID: "carol", Message: model.MessageContent{Text: "hxxps://files.icq.net/get/" + token}}},
		},
	}
	Run(ds, cachescan.Index{}, nil, testLogger())

	md := ds.Messages["carol"][1].SharedContentDetails.URIDecodedMetadata
	if md == nil || md.ContentType != "image-regular" {
		t.Fatalf("got %+v", md)
	}
}

func TestCacheLookupAndSidecarLocation(t *testing.T) {
	url := "hxxps://files.icq.net/get/abc"
	sum := md5.Sum([]byte(url))
	hexSum := hex.EncodeToString(sum[:])
	cacheName := hexSum[:16] // exactly matches first half, well past the 50% bar

	ds := &Dataset{
		Owner:    &model.Owner{},
		Contacts: map[string]*model.Contact{},
		Messages: map[string]map[uint64]*model.Message{
			"dave": {7: {UserID: "dave", Message: model.MessageContent{Text: url}}},
		},
	}
	cache := cachescan.Index{
		Root:  "/cache",
		Files: map[string]model.CacheFileInfo{cacheName: {Size: 10, MD5: hexSum}},
	}
	sidecars := map[string]jsoncache.Sidecar{
		"sidecar1.json": {FileInfo: &jsoncache.FileInfo{FileName: cacheName, MD5: hexSum}},
	}
	Run(ds, cache, sidecars, testLogger())

	sd := ds.Messages["dave"][7].SharedContentDetails
	if sd == nil || sd.FileMetadataByName[cacheName].MD5 != hexSum {
		t.Fatalf("expected step-7 match, got %+v", sd)
	}
	if sd.FileLocation == nil || sd.FileLocation.SidecarFilename != "sidecar1.json" {
		t.Fatalf("expected step-8 file location, got %+v", sd.FileLocation)
	}
}

func TestSidecarURLMetadataTopLevel(t *testing.T) {
	sidecars := map[string]jsoncache.Sidecar{
		"page.json": {URL: &jsoncache.URLDoc{URL: "hxxps://example.test", FetchTime: "2021-02-21 22:40:00"}},
	}
	ds := &Dataset{Owner: &model.Owner{}, Contacts: map[string]*model.Contact{}, Messages: map[string]map[uint64]*model.Message{}}
	urls := Run(ds, cachescan.Index{}, sidecars, testLogger())
	if urls["page.json"].URL != "hxxps://example.test" {
		t.Fatalf("got %+v", urls)
	}
}

func TestMatchesByPrefix(t *testing.T) {
	if !matchesByPrefix("abcd", "abcdef") {
		t.Fatal("expected match")
	}
	if matchesByPrefix("abcd", "xxcdef") {
		t.Fatal("expected no match")
	}
	if matchesByPrefix("", "abcdef") {
		t.Fatal("empty name should never match")
	}
}
