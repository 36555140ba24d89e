/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package stream

import (
	"github.com/gravwell/icqforensic/internal/icq/model"
	"github.com/gravwell/icqforensic/internal/icq/primitive"
	"github.com/gravwell/icqforensic/internal/icq/tables"
)

// DecodeCallLog decodes a `call_log.cache` file into per-message-id
// CALL_LOG_* records, reusing the message-history handler table (the
// source client's call-log cache shares history_message.cpp's tag space)
// with tag 1 as the record boundary, same as message history.
func DecodeCallLog(data []byte, recs map[uint64]*model.CallLogEntry, verbose bool) map[uint64]*model.CallLogEntry {
	if recs == nil {
		recs = make(map[uint64]*model.CallLogEntry)
	}
	for _, blk := range Blocks(data) {
		decodeCallLogBlock(blk.Body, recs, verbose)
	}
	return recs
}

func decodeCallLogBlock(block []byte, recs map[uint64]*model.CallLogEntry, verbose bool) {
	var curID uint64
	var haveCur bool

	for _, f := range Fields(block) {
		entry, known := tables.Message[f.Tag]
		if !known {
			continue
		}

		if f.Tag == 1 {
			id, null, err := primitive.DecodeMessageID(f.Payload)
			if err != nil || null {
				haveCur = false
				continue
			}
			curID = id
			haveCur = true
			if _, exists := recs[curID]; !exists {
				recs[curID] = &model.CallLogEntry{MessageID: curID}
			}
			continue
		}
		if !haveCur {
			continue
		}
		rec := recs[curID]

		val, err := decodeField(f.Tag, entry, f.Payload)
		if err != nil || val == nil {
			continue
		}
		if entry.Dest == "" && !verbose {
			continue
		}

		switch f.Tag {
		case 2:
			if flags, ok := val.(primitive.MessageFlags); ok {
				rec.Message.Direction = directionLabel(flags.Outgoing)
			}
			continue
		case 30:
			if d, ok := val.(uint64); ok {
				rec.DurationSeconds = d
			}
		case 27:
			if s, ok := val.(string); ok && s == "missed call" {
				rec.Missed = true
			}
		}

		if tv, ok := val.(timeValue); ok {
			val = tv.Formatted
		}

		if entry.Dest == "VOIP" {
			if rec.Voip == nil {
				rec.Voip = &model.VoipContent{}
			}
			if f.Tag == 31 {
				if dir, ok := val.(string); ok {
					rec.Voip.Direction = dir
				}
				continue
			}
			setField(rec.Voip, entry.Field, val)
			continue
		}
		setField(&rec.Message, entry.Field, val)
	}
}
