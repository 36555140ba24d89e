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

// DecodeMyInfo decodes the desktop `info/cache` binary variant into an
// Owner record. iOS/JSON-form MyInfo is handled by internal/jsoncache
// instead (spec §4's per-platform note).
func DecodeMyInfo(data []byte, owner *model.Owner) *model.Owner {
	if owner == nil {
		owner = &model.Owner{}
	}
	for _, blk := range Blocks(data) {
		for _, f := range Fields(blk.Body) {
			entry, known := tables.MyInfo[f.Tag]
			if !known {
				continue
			}
			val, err := decodeField(f.Tag, entry, f.Payload)
			if err != nil || val == nil {
				continue
			}
			setField(owner, entry.Field, val)
		}
	}
	return owner
}
