/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package stream

import (
	"encoding/binary"
	"testing"

	"github.com/gravwell/icqforensic/internal/icq/model"
)

// field is a test-only (tag, payload) builder.
type field struct {
	tag     uint32
	payload []byte
}

func buildBlock(fields ...field) []byte {
	var body []byte
	for _, f := range fields {
		hdr := make([]byte, 8)
		binary.LittleEndian.PutUint32(hdr, f.tag)
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(f.payload)))
		body = append(body, hdr...)
		body = append(body, f.payload...)
	}
	var out []byte
	sz := make([]byte, 8)
	binary.LittleEndian.PutUint32(sz, uint32(len(body)))
	binary.LittleEndian.PutUint32(sz[4:], uint32(len(body)))
	out = append(out, sz...)
	out = append(out, body...)
	out = append(out, make([]byte, 8)...)
	return out
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func textPayload(s string) []byte { return []byte(s) }

func TestBlocksStopsOnHeaderMismatch(t *testing.T) {
	good := buildBlock(field{1, u64(1)})
	bad := make([]byte, 16)
	binary.LittleEndian.PutUint32(bad[0:], 5)
	binary.LittleEndian.PutUint32(bad[4:], 6)
	data := append(good, bad...)
	blocks := Blocks(data)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block decoded before corruption, got %d", len(blocks))
	}
}

func TestDecodeMessageHistoryRecordBoundaryAndTextAccumulation(t *testing.T) {
	blk := buildBlock(
		field{5, textPayload("hello")},
		field{1, u64(100)},
		field{5, textPayload("world")},
		field{1, u64(200)},
	)
	recs := DecodeMessageHistory(blk, nil, "user1", false)
	if len(recs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(recs))
	}
	if recs[100].Message.Text != "hello" {
		t.Fatalf("got %q", recs[100].Message.Text)
	}
	if recs[200] == nil {
		t.Fatal("expected record 200 to exist")
	}
}

func TestDecodeMessageHistoryTextAppendsOnRepeat(t *testing.T) {
	blk := buildBlock(
		field{5, textPayload("first")},
		field{1, u64(1)},
		field{5, textPayload("second")},
		field{1, u64(1)},
	)
	recs := DecodeMessageHistory(blk, nil, "user1", false)
	want := "first\nsecond"
	if recs[1].Message.Text != want {
		t.Fatalf("got %q, want %q", recs[1].Message.Text, want)
	}
}

func TestDecodeMessageHistoryDeletedDetection(t *testing.T) {
	blk := buildBlock(
		field{5, textPayload("Message was deleted")},
		field{1, u64(1)},
	)
	recs := DecodeMessageHistory(blk, nil, "user1", false)
	if !recs[1].Message.Deleted {
		t.Fatal("expected DELETED to be set")
	}
}

func TestDecodeMessageHistoryDirectionDerivation(t *testing.T) {
	blk := buildBlock(
		field{1, u64(1)},
		field{2, u32(1 << 2)},
	)
	recs := DecodeMessageHistory(blk, nil, "user1", false)
	if recs[1].Message.Direction != "OUTGOING" {
		t.Fatalf("got %q", recs[1].Message.Direction)
	}
}

func TestDecodeMessageHistoryRawTimeShadow(t *testing.T) {
	blk := buildBlock(
		field{1, u64(1)},
		field{3, u32(1613952000)},
	)
	recs := DecodeMessageHistory(blk, nil, "user1", false)
	if recs[1].Message.TimeRaw != 1613952000 {
		t.Fatalf("got %d", recs[1].Message.TimeRaw)
	}
	if recs[1].Message.Time != "2021-02-22 00:00:00" {
		t.Fatalf("got %q", recs[1].Message.Time)
	}
}

func TestDecodeSharedFilesBasic(t *testing.T) {
	blk := buildBlock(
		field{2, u64(7)},
		field{6, textPayload("hxxps://files.icq.net/get/abc")},
		field{7, textPayload("image")},
	)
	recs := DecodeSharedFiles(blk, nil, false)
	if recs[7] == nil || recs[7].Content == "" {
		t.Fatalf("got %+v", recs[7])
	}
	if recs[7].ContentType != "image" {
		t.Fatalf("got %q", recs[7].ContentType)
	}
}

func TestDecodeGalleryStateCounts(t *testing.T) {
	blk := buildBlock(
		field{6, u32(3)},
		field{7, u32(1)},
	)
	st := DecodeGalleryState(blk, nil, false)
	if st.ImageCount != 3 || st.VideoCount != 1 {
		t.Fatalf("got %+v", st)
	}
}

func TestDecodeDialogStateHeads(t *testing.T) {
	heads := buildHeadsPayload()
	blk := buildBlock(
		field{1, u32(4)},
		field{20, heads},
	)
	st := DecodeDialogState(blk, nil, false)
	if st.UnreadCount != 4 {
		t.Fatalf("got %d", st.UnreadCount)
	}
	if len(st.Heads) != 2 {
		t.Fatalf("got %d heads: %+v", len(st.Heads), st.Heads)
	}
	if st.Heads[0].AIMID != "alice" || st.Heads[1].AIMID != "bob" {
		t.Fatalf("got %+v", st.Heads)
	}
}

func buildHeadsPayload() []byte {
	var body []byte
	add := func(tag uint32, payload []byte) {
		hdr := make([]byte, 8)
		binary.LittleEndian.PutUint32(hdr, tag)
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(payload)))
		body = append(body, hdr...)
		body = append(body, payload...)
	}
	add(21, textPayload("alice"))
	add(21, textPayload("bob"))
	return body
}

func TestDecodeDraftsNestedMessageAndPendingState(t *testing.T) {
	blk := buildBlock(
		field{1, u32(2)},
		field{2, u32(1613952000)},
		field{3, u32(0)},
		field{5, textPayload("draft text")},
	)
	recs := DecodeDrafts(blk, nil, "user1", false)
	var rec *model.Draft
	for _, r := range recs {
		rec = r
	}
	if rec == nil {
		t.Fatal("expected one draft record")
	}
	if rec.State != 2 {
		t.Fatalf("got state=%d", rec.State)
	}
	if rec.Message.Text != "draft text" {
		t.Fatalf("got message text %q", rec.Message.Text)
	}
}

func TestDecodeCallLogMissedDetection(t *testing.T) {
	blk := buildBlock(
		field{1, u64(9)},
		field{27, u32(2)},
	)
	recs := DecodeCallLog(blk, nil, false)
	if recs[9] == nil || !recs[9].Missed {
		t.Fatalf("got %+v", recs[9])
	}
}
