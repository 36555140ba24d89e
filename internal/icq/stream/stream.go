/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package stream implements the record-stream engine: the block-framing
// and tag-dispatch loop shared by every artifact family (message history,
// my-info, shared-file gallery cache, drafts, gallery state, dialog
// state, call log), per spec §4.2.
package stream

import "encoding/binary"

// Block is one decoded block body, already stripped of its 8-byte
// size/size-check header and 8-byte tail.
type Block struct {
	Body []byte
}

// Blocks splits a file's contents into block bodies. It stops — without
// error — at the first malformed or truncated header; blocks already
// produced remain valid. This implements spec §4.2 steps 1-2 and 5.
func Blocks(data []byte) []Block {
	var out []Block
	for len(data) >= 16 {
		size := binary.LittleEndian.Uint32(data[0:4])
		check := binary.LittleEndian.Uint32(data[4:8])
		if size != check {
			break
		}
		blkEnd := int(size) + 8
		if blkEnd+8 > len(data) {
			break
		}
		out = append(out, Block{Body: data[8:blkEnd]})
		data = data[blkEnd+8:]
	}
	return out
}

// directionLabel renders the OUTGOING flag bit the way every family that
// carries a FLAGS/IS_INCOMING field does (spec §4.2's "direction
// derivation" rule).
func directionLabel(outgoing bool) string {
	if outgoing {
		return "OUTGOING"
	}
	return "INCOMING"
}

// Field is one decoded (tag, payload) pair from a block body.
type Field struct {
	Tag     uint32
	Payload []byte
}

// Fields iterates the (tag:u32, length:u32, payload) triples of a block
// body in order. A declared length that would overrun the block
// truncates iteration early (spec §4.2 step 4's "else, advance by
// 8+length" applies equally to known and unknown tags since the
// advance is uniform; callers decide per-tag what to do with Payload).
func Fields(block []byte) []Field {
	var out []Field
	off := 0
	for off+8 <= len(block) {
		tag := binary.LittleEndian.Uint32(block[off:])
		length := binary.LittleEndian.Uint32(block[off+4:])
		off += 8
		if off+int(length) > len(block) {
			break
		}
		out = append(out, Field{Tag: tag, Payload: block[off : off+int(length)]})
		off += int(length)
	}
	return out
}
