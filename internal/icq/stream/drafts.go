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

// DecodeDrafts decodes a draft-storage (`_draft*`) file into records keyed
// by draft timestamp (tag 2, DRAFT_TIME). Tag 3 (DRAFT_MESSAGE_BLOCK_SIZE)
// switches the remaining fields of the block to the message-history table
// so the draft's own message body — its own embedded sub-record, per spec
// §4.2 — populates DRAFT_MESSAGE.
func DecodeDrafts(data []byte, recs map[int64]*model.Draft, uid string, verbose bool) map[int64]*model.Draft {
	if recs == nil {
		recs = make(map[int64]*model.Draft)
	}
	for _, blk := range Blocks(data) {
		decodeDraftBlock(blk.Body, recs, uid, verbose)
	}
	return recs
}

// draftPending buffers a field decoded before DRAFT_TIME (tag 2) has
// created the record, per the source client's "park state, apply on
// DRAFT_TIME" ordering — tag 1 (DRAFT_STATE) routinely precedes tag 2.
type draftPending struct {
	field string
	value interface{}
}

func decodeDraftBlock(block []byte, recs map[int64]*model.Draft, uid string, verbose bool) {
	var curTS int64
	var haveCur bool
	var nestedMessage bool
	var curRec *model.Draft
	var pending []draftPending

	for _, f := range Fields(block) {
		if nestedMessage {
			entry, known := tables.Message[f.Tag]
			if !known || curRec == nil {
				continue
			}
			if f.Tag == 5 {
				if text, err := primitive.DecodeText(f.Payload); err == nil {
					if curRec.Message.Text == "" {
						curRec.Message.Text = text
					} else if curRec.Message.Text != text {
						curRec.Message.Text = curRec.Message.Text + "\n" + text
					}
					if text == deletedText {
						curRec.Message.Deleted = true
					}
				}
				continue
			}
			val, err := decodeField(f.Tag, entry, f.Payload)
			if err != nil || val == nil || entry.Dest == "" {
				continue
			}
			if tv, ok := val.(timeValue); ok {
				val = tv.Formatted
			}
			setField(&curRec.Message, entry.Field, val)
			continue
		}

		entry, known := tables.DraftFiles[f.Tag]
		if !known {
			continue
		}
		val, err := decodeField(f.Tag, entry, f.Payload)
		if err != nil {
			continue
		}

		switch f.Tag {
		case 2:
			if tv, ok := val.(timeValue); ok {
				curTS = tv.Raw
				haveCur = true
				if _, exists := recs[curTS]; !exists {
					recs[curTS] = &model.Draft{UserID: uid, Timestamp: curTS}
				}
				curRec = recs[curTS]
				curRec.Time = tv.Formatted
				for _, p := range pending {
					setField(curRec, p.field, p.value)
				}
				pending = nil
			}
			continue
		case 3:
			nestedMessage = true
			continue
		}

		if entry.Dest == "" && !verbose {
			continue
		}
		if val == nil {
			continue
		}
		if tv, ok := val.(timeValue); ok {
			val = tv.Formatted
		}
		if !haveCur {
			pending = append(pending, draftPending{field: entry.Field, value: val})
			continue
		}
		setField(curRec, entry.Field, val)
	}
}
