/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package primitive

import "encoding/binary"

// DecodeValue implements the source's generic "value" reader: an integer of
// the declared width, with the one framing exception that tag 69
// (IS_OFFICIAL) is 16-bit BIG-endian per spec §6.
func DecodeValue(tag uint32, b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if tag == 69 {
		if len(b) != 2 {
			return 0, ErrInvalidLength
		}
		return uint64(binary.BigEndian.Uint16(b)), nil
	}
	single, _, err := DecodeInteger(b)
	return single, err
}

// ChatEventType is the closed 0..35 enum decoded for CHAT_EVENT_TYPE (tag 23).
var ChatEventType = map[uint64]string{
	0: "invalid", 1: "min", 2: "added to buddy list", 3: "add members to chat",
	4: "invite", 5: "leave", 6: "delete members from chat", 7: "kicked",
	8: "chat name modified", 9: "buddy registered", 10: "buddy found",
	11: "birthday", 12: "avatar modified", 13: "generic",
	14: "chat description modified", 15: "message deleted",
	16: "chat rules modified", 17: "chat stamp modified",
	18: "chat join moderation modified", 19: "chat public modified",
	20: "chat trust required modified", 21: "chat threads enabled modified",
	22: "mchat admin granted", 23: "mchat admin revoked",
	24: "mchat allowed to write", 25: "mchat disallowed to write",
	26: "mchat waiting for approval", 27: "mchat joining approved",
	28: "mchat joining rejected", 29: "mchat joining canceled",
	30: "warn about stranger", 31: "no longer stranger", 32: "status reply",
	33: "custom status reply", 34: "task changed", 35: "max",
}

// VoipEventType is the closed 0..6 enum decoded for VOIP_EVENT_TYPE (tag 27).
var VoipEventType = map[uint64]string{
	0: "invalid", 1: "min", 2: "missed call", 3: "call ended",
	4: "call accepted", 5: "call declined", 6: "max",
}

// VoipDirection maps VOIP_IS_INCOMING (tag 31) to the same DIRECTION labels
// used for messages.
var VoipDirection = map[uint64]string{
	0: "OUTGOING", 1: "INCOMING",
}

// LookupEnum resolves a decoded integer against the enum table for a given
// tag. An out-of-range value is a semantic violation per spec §7 — the
// caller logs and skips the field rather than panicking.
func LookupEnum(tag uint32, v uint64) (string, bool) {
	switch tag {
	case 23:
		s, ok := ChatEventType[v]
		return s, ok
	case 27:
		s, ok := VoipEventType[v]
		return s, ok
	case 31:
		s, ok := VoipDirection[v]
		return s, ok
	}
	return "", false
}
