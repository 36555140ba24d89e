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

// DecodeDialogState decodes a dialog-state (`_ste*`) file into a single
// per-user DIALOG_STATE record. Tag 20 (HEADS) nests a nested block of
// dialog-state fields indexed by ordinal (spec §4.2's invariant); each
// HEAD_AIMID (tag 21) starts a new ordinal entry. Tag 7
// (LAST_MESSAGE_CONTENT_SIZE) switches the remainder of the enclosing
// block to the message-history table to recover the dialog's last-message
// preview text and direction, mirroring the source client's last-message
// cache.
func DecodeDialogState(data []byte, state *model.DialogState, verbose bool) *model.DialogState {
	if state == nil {
		state = &model.DialogState{}
	}
	for _, blk := range Blocks(data) {
		decodeDialogStateBlock(blk.Body, state, verbose)
	}
	return state
}

func decodeDialogStateBlock(block []byte, state *model.DialogState, verbose bool) {
	var nestedMessage bool

	for _, f := range Fields(block) {
		if nestedMessage {
			entry, known := tables.Message[f.Tag]
			if !known {
				continue
			}
			val, err := decodeField(f.Tag, entry, f.Payload)
			if err != nil || val == nil {
				continue
			}
			if f.Tag == 2 {
				if flags, ok := val.(primitive.MessageFlags); ok {
					state.Direction = directionLabel(flags.Outgoing)
				}
				continue
			}
			if f.Tag == 5 {
				if text, ok := val.(string); ok {
					state.Text = text
				}
				continue
			}
			continue
		}

		entry, known := tables.DialogState[f.Tag]
		if !known {
			continue
		}

		if f.Tag == 20 {
			decodeDialogHeads(f.Payload, state, verbose)
			continue
		}
		if f.Tag == 7 {
			nestedMessage = true
			continue
		}

		val, err := decodeField(f.Tag, entry, f.Payload)
		if err != nil || val == nil {
			continue
		}
		if entry.Dest == "" && !verbose {
			continue
		}
		if tv, ok := val.(timeValue); ok {
			val = tv.Formatted
		}
		setField(state, entry.Field, val)
	}
}

// decodeDialogHeads parses a HEADS composite's payload as a nested
// sequence of dialog-state fields, opening a new ordinal head entry each
// time HEAD_AIMID (tag 21) appears.
func decodeDialogHeads(payload []byte, state *model.DialogState, verbose bool) {
	var cur *model.DialogHead
	var ordinal int
	for _, f := range Fields(payload) {
		entry, known := tables.DialogState[f.Tag]
		if !known {
			continue
		}
		val, err := decodeField(f.Tag, entry, f.Payload)
		if err != nil || val == nil {
			continue
		}
		if entry.Dest == "" && !verbose {
			continue
		}
		if f.Tag == 21 {
			if state.Heads == nil {
				state.Heads = make(map[int]model.DialogHead)
			}
			head := model.DialogHead{}
			if aimid, ok := val.(string); ok {
				head.AIMID = aimid
			}
			state.Heads[ordinal] = head
			cur = &head
			ordinal++
			continue
		}
		if cur == nil {
			continue
		}
		if s, ok := val.(string); ok && entry.Field == "FRIENDLY_NAME" {
			cur.FriendlyName = s
			state.Heads[ordinal-1] = *cur
		}
	}
}
