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

// DecodeSharedFiles decodes a gallery-cache (`_gc*`) file into per-message
// shared-file records, keyed by SHARED_CONTENT_MSG_ID (tag 2), the only
// record-identifying tag in this family.
func DecodeSharedFiles(data []byte, recs map[uint64]*model.SharedFile, verbose bool) map[uint64]*model.SharedFile {
	if recs == nil {
		recs = make(map[uint64]*model.SharedFile)
	}
	for _, blk := range Blocks(data) {
		var curID uint64
		var haveCur bool
		for _, f := range Fields(blk.Body) {
			entry, known := tables.SharedFiles[f.Tag]
			if !known {
				continue
			}
			val, err := decodeField(f.Tag, entry, f.Payload)
			if err != nil {
				continue
			}
			if f.Tag == 2 {
				if id, ok := val.(uint64); ok {
					curID = id
					haveCur = true
					if _, exists := recs[curID]; !exists {
						recs[curID] = &model.SharedFile{MessageID: curID}
					}
				}
				continue
			}
			if entry.Dest == "" || !haveCur {
				if !verbose {
					continue
				}
			}
			if !haveCur {
				continue
			}
			rec := recs[curID]
			if f.Tag == 9 {
				if flags, ok := val.(primitive.MessageFlags); ok {
					rec.Direction = directionLabel(flags.Outgoing)
				}
				continue
			}
			if tv, ok := val.(timeValue); ok {
				val = tv.Formatted
			}
			setField(rec, entry.Field, val)
		}
	}
	return recs
}
