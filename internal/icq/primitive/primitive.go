/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package primitive implements the fixed set of typed decoders used by the
// record-stream engine to turn a field payload into a value: integers,
// booleans, UTF-8 text, 64-bit message identifiers, POSIX timestamps, and
// the composite readers (chat-member maps, bit-flag sets, screen-resolution
// quads, event-timestamp pairs).
package primitive

import (
	"encoding/binary"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidLength = errors.New("primitive: length not supported by this reader")
	ErrTruncated     = errors.New("primitive: payload shorter than declared length")
	ErrInvalidUTF8   = errors.New("primitive: payload is not valid UTF-8")
)

// MessageIDNull is the sentinel 64-bit value that denotes "absent" per spec §3.
const MessageIDNull = ^uint64(0)

// tsLayout is the canonical timestamp rendering used throughout the decoder.
const tsLayout = "2006-01-02 15:04:05"

// DecodeInteger implements the "integer" reader. Lengths 1, 2 and 4 return a
// single scalar of that width; lengths 8, 12 and 16 return a tuple of
// little-endian uint32s (callers wanting a 64-bit scalar use DecodeMessageID
// instead, per spec §4.1).
func DecodeInteger(b []byte) (single uint64, multi []uint32, err error) {
	switch len(b) {
	case 1:
		single = uint64(b[0])
	case 2:
		single = uint64(binary.LittleEndian.Uint16(b))
	case 4:
		single = uint64(binary.LittleEndian.Uint32(b))
	case 8, 12, 16:
		n := len(b) / 4
		multi = make([]uint32, n)
		for i := 0; i < n; i++ {
			multi[i] = binary.LittleEndian.Uint32(b[i*4:])
		}
	default:
		err = ErrInvalidLength
	}
	return
}

// DecodeMessageID implements the "message-id" reader: an 8-byte little-endian
// 64-bit unsigned integer, with MessageIDNull mapping to null.
func DecodeMessageID(b []byte) (id uint64, null bool, err error) {
	if len(b) != 8 {
		err = ErrInvalidLength
		return
	}
	id = binary.LittleEndian.Uint64(b)
	null = id == MessageIDNull
	return
}

// DecodeTimestamp implements the "timestamp" reader: epoch-seconds (4 or 8
// bytes, little-endian) formatted as "YYYY-MM-DD HH:MM:SS" UTC. 0 and
// 0xFFFFFFFF map to null, as does any value time.Unix cannot represent.
func DecodeTimestamp(b []byte) (formatted string, raw int64, null bool, err error) {
	var v uint64
	switch len(b) {
	case 4:
		v = uint64(binary.LittleEndian.Uint32(b))
	case 8:
		v = binary.LittleEndian.Uint64(b)
	default:
		err = ErrInvalidLength
		return
	}
	if v == 0 || v == 0xFFFFFFFF {
		null = true
		return
	}
	raw = int64(v)
	t := time.Unix(raw, 0).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		null = true
		raw = 0
		return
	}
	formatted = t.Format(tsLayout)
	return
}

// DecodeText implements the "text" reader. Ill-formed UTF-8 is a parse error,
// per spec §4.1 — it is not tolerated like other field-level failures. The
// result is passed through Sanitize, matching the source client's universal
// defanging of every decoded text field.
func DecodeText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return Sanitize(string(b)), nil
}

// Sanitize defangs scheme prefixes in decoded text so the JSON output never
// carries a directly-clickable URL: "http" becomes "hxxp", and "ftp://"
// becomes "fxx://" (spec §6's canonical "hxxps://files.icq.net" prefix is
// produced by this transform).
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "http", "hxxp")
	s = strings.ReplaceAll(s, "ftp://", "fxx://")
	return s
}

// DecodeBool implements the "boolean" reader: the first byte, non-zero is true.
func DecodeBool(b []byte) (bool, error) {
	if len(b) < 1 {
		return false, ErrTruncated
	}
	return b[0] != 0, nil
}

// MessageFlags is the named-bit map produced by DecodeMessageFlags.
type MessageFlags struct {
	Unread    bool
	Outgoing  bool
	Invisible bool
	Deleted   bool
	Modified  bool
	Updated   bool
	Clear     bool
}

// DecodeMessageFlags implements the "message-flags" reader: bits 1,2,3,5,6,7,8
// of a 1/2/4-byte little-endian value (bits 0,4,9 are discarded). Bit 2 is
// OUTGOING and drives MESSAGE.DIRECTION at the stream-engine layer.
func DecodeMessageFlags(b []byte) (MessageFlags, error) {
	single, _, err := DecodeInteger(b)
	if err != nil {
		return MessageFlags{}, err
	}
	return MessageFlags{
		Unread:    single&(1<<1) != 0,
		Outgoing:  single&(1<<2) != 0,
		Invisible: single&(1<<3) != 0,
		Deleted:   single&(1<<5) != 0,
		Modified:  single&(1<<6) != 0,
		Updated:   single&(1<<7) != 0,
		Clear:     single&(1<<8) != 0,
	}, nil
}

var formatFlagNames = []string{
	"bold", "italic", "underline", "strikethrough", "monospace",
	"link", "mention", "quote", "pre", "ordered_list", "unordered_list",
}

// DecodeFormatFlags implements the "format-flags" reader: the names of the
// set bits 0..10 of a 1/2/4-byte little-endian value, as a slice in bit
// order. The names are not joined into a single string.
func DecodeFormatFlags(b []byte) ([]string, error) {
	single, _, err := DecodeInteger(b)
	if err != nil {
		return nil, err
	}
	var set []string
	for i, name := range formatFlagNames {
		if single&(1<<uint(i)) != 0 {
			set = append(set, name)
		}
	}
	return set, nil
}

// ChatMember is one entry of the "chat-members" composite reader.
type ChatMember struct {
	MemberID uint32
	Name     string
}

// DecodeChatMembers implements the "chat-members" reader: a concatenation of
// (member-id:u32, name-length:u32, name:UTF-8) triples until the payload is
// consumed.
func DecodeChatMembers(b []byte) ([]ChatMember, error) {
	var members []ChatMember
	off := 0
	for off+8 <= len(b) {
		memberID := binary.LittleEndian.Uint32(b[off:])
		nameLen := binary.LittleEndian.Uint32(b[off+4:])
		off += 8
		if off+int(nameLen) > len(b) {
			return members, ErrTruncated
		}
		name, err := DecodeText(b[off : off+int(nameLen)])
		if err != nil {
			return members, err
		}
		off += int(nameLen)
		members = append(members, ChatMember{MemberID: memberID, Name: name})
	}
	return members, nil
}

// Resolution is the (x, y, w, h) quad decoded by DecodeResolution.
type Resolution struct {
	X, Y, W, H uint32
}

// DecodeResolution implements the "resolution" reader: four little-endian
// uint32s.
func DecodeResolution(b []byte) (Resolution, error) {
	if len(b) != 16 {
		return Resolution{}, ErrInvalidLength
	}
	return Resolution{
		X: binary.LittleEndian.Uint32(b[0:]),
		Y: binary.LittleEndian.Uint32(b[4:]),
		W: binary.LittleEndian.Uint32(b[8:]),
		H: binary.LittleEndian.Uint32(b[12:]),
	}, nil
}

// EventTime is one (event-id, epoch) pair decoded by DecodeEventTimes.
type EventTime struct {
	EventID uint64
	Epoch   uint64
}

// DecodeEventTimes implements the "event-times" reader: a list of
// (event-id:u64, epoch:u64) pairs, BIG-endian — the one exception to the
// little-endian convention used everywhere else in the format (spec §4.1).
func DecodeEventTimes(b []byte) ([]EventTime, error) {
	if len(b)%16 != 0 {
		return nil, ErrInvalidLength
	}
	out := make([]EventTime, 0, len(b)/16)
	for off := 0; off+16 <= len(b); off += 16 {
		out = append(out, EventTime{
			EventID: binary.BigEndian.Uint64(b[off:]),
			Epoch:   binary.BigEndian.Uint64(b[off+8:]),
		})
	}
	return out, nil
}
