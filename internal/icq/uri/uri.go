/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package uri decodes the file-sharing identifier embedded in
// "hxxps://files.icq.net/get/<id>" URLs (and bare identifiers recovered
// from shared-file records) per spec §4.4: a fixed-width Base62-encoded
// token carrying a type class, optional width/height/duration/colour,
// and an embedded POSIX timestamp.
package uri

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Base62 is the fixed digit alphabet used throughout the token: 0-9, a-z, A-Z.
const Base62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var ErrTooShort = errors.New("uri: file-sharing identifier shorter than 30 characters")

var reverseIndex = func() map[byte]int {
	m := make(map[byte]int, len(Base62))
	for i := 0; i < len(Base62); i++ {
		m[Base62[i]] = i
	}
	return m
}()

// decodeBase62 decodes a positional Base62 string (most-significant digit
// first) into its integer value. An unrecognised character yields ok=false.
func decodeBase62(s string) (int, bool) {
	v := 0
	for i := 0; i < len(s); i++ {
		idx, ok := reverseIndex[s[i]]
		if !ok {
			return 0, false
		}
		v = v*62 + idx
	}
	return v, true
}

// Metadata is the result of decoding one file-sharing identifier.
type Metadata struct {
	ContentType  string
	Timestamp    string // formatted "YYYY-MM-DD HH:MM:SS" UTC, empty if invalid
	Width        *int
	Height       *int
	DurationSecs *int
	ColorHex     string
}

// ExtractToken recovers the identifier from the tail of an
// "http(s)://.../get/<id>" style URL, or returns s unchanged if it does
// not look like a URL (spec §4.4: "optionally extracted from the tail").
func ExtractToken(s string) string {
	if strings.HasPrefix(s, "http") || strings.HasPrefix(s, "hxxp") {
		if i := strings.LastIndex(s, "/"); i >= 0 && i+1 < len(s) {
			return s[i+1:]
		}
	}
	return s
}

type category int

const (
	catUnknown category = iota
	catImage
	catVideo
	catAudio
)

type classInfo struct {
	label    string
	category category
}

var typeClasses = map[byte]classInfo{
	'0': {"image-regular", catImage},
	'1': {"image-snap", catImage},
	'2': {"image-sticker", catImage},
	'3': {"image-unknown", catImage},
	'4': {"image-gif-animated", catImage},
	'5': {"image-gif-animated-sticker", catImage},
	'6': {"image-unknown", catImage},
	'7': {"image-unknown", catImage},

	'8': {"video-regular", catVideo},
	'9': {"video-snap", catVideo},
	'A': {"video-pts", catVideo},
	'B': {"video-pts_b", catVideo},
	'C': {"video-unknown", catVideo},
	'D': {"video-sticker", catVideo},
	'E': {"video-unknown", catVideo},
	'F': {"video-unknown", catVideo},

	'G': {"audio-regular", catAudio},
	'H': {"audio-snap", catAudio},
	'I': {"audio-ptt", catAudio},
	'J': {"audio-ptt", catAudio},
	'K': {"audio-unknown", catAudio},
	'M': {"audio-unknown", catAudio},
	'N': {"audio-unknown", catAudio},

	'L': {"lottie-sticker", catUnknown},
	'S': {"pdf", catUnknown},
}

func isPTSVideo(c byte) bool { return c == 'A' || c == 'B' }

// Decode parses a file-sharing identifier per spec §4.4's character-index
// schema. Only a token shorter than 30 characters is an error; an
// unrecognised type character yields ContentType "unknown", and a malformed
// sub-field (bad timestamp hex, unrecognised Base62 digit) simply leaves
// that field unset rather than failing the whole decode.
func Decode(id string) (Metadata, error) {
	if len(id) < 30 {
		return Metadata{}, ErrTooShort
	}
	info, known := typeClasses[id[0]]
	if !known {
		info = classInfo{label: "unknown", category: catUnknown}
	}
	md := Metadata{ContentType: info.label}

	switch info.category {
	case catAudio:
		if d, ok := decodeBase62(id[1:5]); ok {
			md.DurationSecs = &d
		}
		md.ColorHex = decodeColor(id[5:8])
	case catImage:
		md.Width, md.Height = decodePair(id[1:3]), decodePair(id[3:5])
		md.ColorHex = decodeColor(id[5:8])
	case catVideo:
		md.Width, md.Height = decodePair(id[1:3]), decodePair(id[3:5])
		if isPTSVideo(id[0]) {
			md.ColorHex = decodeColor(id[5:8])
		} else {
			if d, ok := decodeBase62(id[5:9]); ok {
				md.DurationSecs = &d
			}
			md.ColorHex = decodeColor(id[9:12])
		}
	}

	md.Timestamp = decodeTimestampHex(id[22:30])
	return md, nil
}

func decodePair(s string) *int {
	v, ok := decodeBase62(s)
	if !ok {
		return nil
	}
	return &v
}

func decodeColor(s string) string {
	v, ok := decodeBase62(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%x", v)
}

// decodeTimestampHex decodes an 8-character lowercase-hex POSIX timestamp
// per spec §4.4's invariant; any violation (wrong length, non-hex, or
// uppercase hex digits) yields "".
func decodeTimestampHex(s string) string {
	if len(s) != 8 || strings.ToLower(s) != s {
		return ""
	}
	sec, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return ""
	}
	t := time.Unix(sec, 0).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
