/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package primitive

import (
	"encoding/binary"
	"testing"
)

func TestDecodeMessageIDSentinel(t *testing.T) {
	b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	id, null, err := DecodeMessageID(b)
	if err != nil {
		t.Fatal(err)
	}
	if !null {
		t.Fatalf("expected sentinel to decode as null, got id=%d", id)
	}
}

func TestDecodeMessageIDRoundTrip(t *testing.T) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, 42)
	id, null, err := DecodeMessageID(b)
	if err != nil {
		t.Fatal(err)
	}
	if null || id != 42 {
		t.Fatalf("got id=%d null=%v, want id=42 null=false", id, null)
	}
}

func TestDecodeTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		epoch   uint32
		wantStr string
		wantNil bool
	}{
		{"zero", 0, "", true},
		{"max", 0xFFFFFFFF, "", true},
		{"known", 1613952000, "2021-02-22 00:00:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, 4)
			binary.LittleEndian.PutUint32(b, tt.epoch)
			s, _, null, err := DecodeTimestamp(b)
			if err != nil {
				t.Fatal(err)
			}
			if null != tt.wantNil {
				t.Fatalf("null=%v, want %v", null, tt.wantNil)
			}
			if !tt.wantNil && s != tt.wantStr {
				t.Fatalf("got %q, want %q", s, tt.wantStr)
			}
		})
	}
}

func TestDecodeMessageFlags(t *testing.T) {
	var v uint32
	for _, bit := range []uint{1, 2, 3, 5, 6, 7, 8, 0, 4, 9} {
		v |= 1 << bit
	}
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	f, err := DecodeMessageFlags(b)
	if err != nil {
		t.Fatal(err)
	}
	if !(f.Unread && f.Outgoing && f.Invisible && f.Deleted && f.Modified && f.Updated && f.Clear) {
		t.Fatalf("expected all seven named bits set, got %+v", f)
	}
}

func TestDecodeMessageFlagsDirection(t *testing.T) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, 1<<2)
	f, err := DecodeMessageFlags(b)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Outgoing {
		t.Fatal("expected OUTGOING bit set")
	}
}

func TestDecodeFormatFlags(t *testing.T) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, (1<<0)|(1<<6))
	set, err := DecodeFormatFlags(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 2 || set[0] != "bold" || set[1] != "mention" {
		t.Fatalf("got %v", set)
	}
}

func TestDecodeChatMembers(t *testing.T) {
	var b []byte
	put := func(id uint32, name string) {
		hdr := make([]byte, 8)
		binary.LittleEndian.PutUint32(hdr, id)
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(name)))
		b = append(b, hdr...)
		b = append(b, []byte(name)...)
	}
	put(1, "alice")
	put(2, "bob")
	members, err := DecodeChatMembers(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 || members[0].Name != "alice" || members[1].MemberID != 2 {
		t.Fatalf("got %+v", members)
	}
}

func TestDecodeResolution(t *testing.T) {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint32(b[0:], 10)
	binary.LittleEndian.PutUint32(b[4:], 20)
	binary.LittleEndian.PutUint32(b[8:], 1920)
	binary.LittleEndian.PutUint32(b[12:], 1080)
	r, err := DecodeResolution(b)
	if err != nil {
		t.Fatal(err)
	}
	if r != (Resolution{X: 10, Y: 20, W: 1920, H: 1080}) {
		t.Fatalf("got %+v", r)
	}
}

func TestDecodeEventTimesBigEndian(t *testing.T) {
	b := make([]byte, 32)
	binary.BigEndian.PutUint64(b[0:], 1)
	binary.BigEndian.PutUint64(b[8:], 1000)
	binary.BigEndian.PutUint64(b[16:], 2)
	binary.BigEndian.PutUint64(b[24:], 2000)
	out, err := DecodeEventTimes(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].EventID != 1 || out[1].Epoch != 2000 {
		t.Fatalf("got %+v", out)
	}
}

func TestDecodeTextRejectsInvalidUTF8(t *testing.T) {
	if _, err := DecodeText([]byte{0xff, 0xfe}); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestDecodeValueIsOfficialBigEndian(t *testing.T) {
	b := []byte{0x00, 0x01}
	v, err := DecodeValue(69, b)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
}
