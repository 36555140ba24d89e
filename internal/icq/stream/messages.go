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

const deletedText = "Message was deleted"

// messageParkState carries the scratch cells a message-history block needs
// across fields: the text-accumulation cell (tag 5) and the raw-time
// shadow cell (tag 3), per spec §4.2.
type messageParkState struct {
	textScratch    *string
	haveTextScratch bool
	rawTime        int64
}

// DecodeMessageHistory decodes one message-history file's content (a `_db*`
// family file) into per-message-id records, accumulating into (and
// returning) recs so repeated calls across a user's several files merge
// additively, per spec §5's ordering-independence rule. verbose lets
// framing-only (Dest == "") fields reach setField; no MessageContent field
// carries their names, so they are not stored either way.
func DecodeMessageHistory(data []byte, recs map[uint64]*model.Message, uid string, verbose bool) map[uint64]*model.Message {
	if recs == nil {
		recs = make(map[uint64]*model.Message)
	}
	for _, blk := range Blocks(data) {
		decodeMessageBlock(blk.Body, recs, uid, verbose)
	}
	return recs
}

func decodeMessageBlock(block []byte, recs map[uint64]*model.Message, uid string, verbose bool) {
	var park messageParkState
	var curID uint64
	var haveCur bool

	flush := func(rec *model.Message) {
		if park.haveTextScratch {
			applyTextScratch(rec, *park.textScratch)
			park.haveTextScratch = false
		}
	}

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
			if _, ok := recs[curID]; !ok {
				recs[curID] = &model.Message{UserID: uid, MessageID: curID}
			}
			flush(recs[curID])
			continue
		}

		if f.Tag == 5 {
			text, err := primitive.DecodeText(f.Payload)
			if err == nil {
				park.textScratch = &text
				park.haveTextScratch = true
			}
			continue
		}

		if !haveCur {
			continue
		}
		rec := recs[curID]

		val, err := decodeField(f.Tag, entry, f.Payload)
		if err != nil {
			continue
		}
		if entry.Dest == "" {
			if !verbose {
				continue
			}
		}

		switch f.Tag {
		case 2:
			if flags, ok := val.(primitive.MessageFlags); ok {
				rec.Message.Direction = directionLabel(flags.Outgoing)
			}
			continue
		case 3:
			if tv, ok := val.(timeValue); ok {
				rec.Message.Time = tv.Formatted
				park.rawTime = tv.Raw
			}
			if park.rawTime != 0 {
				rec.Message.TimeRaw = park.rawTime
				park.rawTime = 0
			}
			continue
		}

		if tv, ok := val.(timeValue); ok {
			val = tv.Formatted
		}

		dest := entry.Dest
		if dest == "VOIP" {
			if rec.Voip == nil {
				rec.Voip = &model.VoipContent{}
			}
			if f.Tag == 31 {
				if dir, ok := val.(string); ok {
					rec.Voip.Direction = dir
					continue
				}
			}
			setField(rec.Voip, entry.Field, val)
			continue
		}
		setField(&rec.Message, entry.Field, val)
	}
	if haveCur {
		flush(recs[curID])
	}
}

// applyTextScratch implements the text-accumulation rule (spec §4.2): the
// scratch value replaces empty text, is appended (newline-joined) to
// differing non-empty text, and a literal "Message was deleted" also
// flags DELETED.
func applyTextScratch(rec *model.Message, text string) {
	if rec == nil {
		return
	}
	switch {
	case rec.Message.Text == "":
		rec.Message.Text = text
	case rec.Message.Text != text:
		rec.Message.Text = rec.Message.Text + "\n" + text
	}
	if text == deletedText {
		rec.Message.Deleted = true
	}
}
