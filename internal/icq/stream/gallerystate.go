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
	"github.com/gravwell/icqforensic/internal/icq/tables"
)

// DecodeGalleryState decodes a gallery-state (`_gs*`) file into a single
// per-user STATE record — there is no record-boundary tag in this family,
// every field belongs to the one state document for the file's user.
func DecodeGalleryState(data []byte, state *model.GalleryState, verbose bool) *model.GalleryState {
	if state == nil {
		state = &model.GalleryState{}
	}
	for _, blk := range Blocks(data) {
		for _, f := range Fields(blk.Body) {
			entry, known := tables.State[f.Tag]
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
			if tv, ok := val.(timeValue); ok {
				val = tv.Formatted
			}
			setField(state, entry.Field, val)
		}
	}
	return state
}
