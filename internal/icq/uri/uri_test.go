/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package uri

import "testing"

func pad(prefix string, total int) string {
	for len(prefix) < total {
		prefix += "0"
	}
	return prefix
}

func TestDecodeTooShort(t *testing.T) {
	if _, err := Decode("short"); err != ErrTooShort {
		t.Fatalf("got %v", err)
	}
}

func TestDecodeImageWidthHeight(t *testing.T) {
	// type '0' (image-regular), width/height = base62("01")/base62("02"), color = base62("000"),
	// timestamp at [22:30) = "60989700" (hex) padded to length >= 30.
	id := "0" + "01" + "02" + "000" + "00000000000000" + "60989700"
	id = pad(id, 30)
	md, err := Decode(id)
	if err != nil {
		t.Fatal(err)
	}
	if md.ContentType != "image-regular" {
		t.Fatalf("got %q", md.ContentType)
	}
	if md.Width == nil || *md.Width != 1 {
		t.Fatalf("got width %v", md.Width)
	}
	if md.Height == nil || *md.Height != 2 {
		t.Fatalf("got height %v", md.Height)
	}
}

func TestDecodeAudioDuration(t *testing.T) {
	id := "G" + "0001" + "000" + "00000000000000000"
	id = pad(id, 30)
	md, err := Decode(id)
	if err != nil {
		t.Fatal(err)
	}
	if md.ContentType != "audio-regular" {
		t.Fatalf("got %q", md.ContentType)
	}
	if md.DurationSecs == nil || *md.DurationSecs != 1 {
		t.Fatalf("got duration %v", md.DurationSecs)
	}
}

func TestDecodeVideoNonPTSHasDurationAndShiftedColor(t *testing.T) {
	id := "8" + "0101" + "0002" + "00a" + "0000000000"
	id = pad(id, 30)
	md, err := Decode(id)
	if err != nil {
		t.Fatal(err)
	}
	if md.ContentType != "video-regular" {
		t.Fatalf("got %q", md.ContentType)
	}
	if md.DurationSecs == nil || *md.DurationSecs != 2 {
		t.Fatalf("got duration %v", md.DurationSecs)
	}
	// color comes from [9:12) ("00a"), not [5:8) ("000")
	if md.ColorHex != "a" {
		t.Fatalf("got color %q", md.ColorHex)
	}
}

func TestDecodeVideoPTSHasNoDuration(t *testing.T) {
	id := "A" + "0101" + "000" + "0000000000000"
	id = pad(id, 30)
	md, err := Decode(id)
	if err != nil {
		t.Fatal(err)
	}
	if md.ContentType != "video-pts" {
		t.Fatalf("got %q", md.ContentType)
	}
	if md.DurationSecs != nil {
		t.Fatalf("expected no duration for PTS video, got %v", *md.DurationSecs)
	}
}

func TestDecodeTimestampRejectsUppercaseHex(t *testing.T) {
	id := "L" + strings0(21) + "6098970A"
	id = pad(id, 30)
	md, err := Decode(id)
	if err != nil {
		t.Fatal(err)
	}
	if md.Timestamp != "" {
		t.Fatalf("expected empty timestamp for uppercase hex, got %q", md.Timestamp)
	}
}

func strings0(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "0"
	}
	return s
}

func TestLottieAndPdfOverrides(t *testing.T) {
	l, _ := Decode(pad("L", 30))
	if l.ContentType != "lottie-sticker" {
		t.Fatalf("got %q", l.ContentType)
	}
	s, _ := Decode(pad("S", 30))
	if s.ContentType != "pdf" {
		t.Fatalf("got %q", s.ContentType)
	}
}

func TestExtractToken(t *testing.T) {
	got := ExtractToken("hxxps://files.icq.net/get/abc123")
	if got != "abc123" {
		t.Fatalf("got %q", got)
	}
	if ExtractToken("abc123") != "abc123" {
		t.Fatal("expected passthrough for non-URL input")
	}
}
