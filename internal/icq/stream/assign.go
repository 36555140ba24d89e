/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package stream

import (
	"reflect"
	"strings"

	"github.com/gravwell/icqforensic/internal/icq/primitive"
	"github.com/gravwell/icqforensic/internal/icq/tables"
)

// decodeField runs the primitive reader named by entry.Reader over a
// field's payload and returns a value of the matching Go type: string,
// bool, uint64, []string, []primitive.ChatMember, primitive.MessageFlags,
// timeValue, or nil for a framing-only read whose result is never routed
// (size/unknown) and for a null message id or timestamp.
func decodeField(tag uint32, entry tables.Entry, payload []byte) (interface{}, error) {
	switch entry.Reader {
	case tables.ReadSize, tables.ReadUnknown:
		return nil, nil
	case tables.ReadMessageID:
		id, null, err := primitive.DecodeMessageID(payload)
		if err != nil {
			return nil, err
		}
		if null {
			return nil, nil
		}
		return id, nil
	case tables.ReadMessageFlags:
		return primitive.DecodeMessageFlags(payload)
	case tables.ReadTime:
		formatted, raw, null, err := primitive.DecodeTimestamp(payload)
		if err != nil {
			return nil, err
		}
		if null {
			return nil, nil
		}
		return timeValue{Formatted: formatted, Raw: raw}, nil
	case tables.ReadText:
		return primitive.DecodeText(payload)
	case tables.ReadBool:
		return primitive.DecodeBool(payload)
	case tables.ReadValue:
		return primitive.DecodeValue(tag, payload)
	case tables.ReadLookupValue:
		v, err := primitive.DecodeValue(tag, payload)
		if err != nil {
			return nil, err
		}
		if s, ok := primitive.LookupEnum(tag, v); ok {
			return s, nil
		}
		return v, nil
	case tables.ReadChatMembers:
		return primitive.DecodeChatMembers(payload)
	case tables.ReadFormatFlags:
		return primitive.DecodeFormatFlags(payload)
	}
	return nil, nil
}

// timeValue carries both renderings of a decoded timestamp so the caller
// can apply the raw-time shadow rule (spec §4.2) without re-parsing.
type timeValue struct {
	Formatted string
	Raw       int64
}

// setField locates the struct field of target whose `json` tag name
// matches fieldName and assigns value into it, converting between the
// dynamic decode-time type and the field's static type. Using the
// model's own json tags as the routing key keeps the tag tables (data)
// and the model (destination shape) in a single source of truth instead
// of a second hand-maintained name-mapping table. Returns false if no
// field matches or the value's shape doesn't fit.
func setField(target interface{}, fieldName string, value interface{}) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("json")
		name := strings.Split(tag, ",")[0]
		if name != fieldName {
			continue
		}
		return assignValue(rv.Field(i), value)
	}
	return false
}

func assignValue(fv reflect.Value, value interface{}) bool {
	switch v := value.(type) {
	case string:
		if fv.Kind() == reflect.String {
			fv.SetString(v)
			return true
		}
	case bool:
		if fv.Kind() == reflect.Bool {
			fv.SetBool(v)
			return true
		}
	case uint64:
		switch fv.Kind() {
		case reflect.Uint64, reflect.Uint, reflect.Uint32:
			fv.SetUint(v)
			return true
		case reflect.Ptr:
			p := reflect.New(fv.Type().Elem())
			p.Elem().SetUint(v)
			fv.Set(p)
			return true
		case reflect.Int:
			fv.SetInt(int64(v))
			return true
		}
	case int:
		if fv.Kind() == reflect.Int {
			fv.SetInt(int64(v))
			return true
		}
	case []string:
		if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String {
			fv.Set(reflect.ValueOf(v))
			return true
		}
	case []primitive.ChatMember:
		if fv.Kind() == reflect.Map {
			m := reflect.MakeMap(fv.Type())
			for _, cm := range v {
				m.SetMapIndex(reflect.ValueOf(cm.MemberID), reflect.ValueOf(cm.Name))
			}
			fv.Set(m)
			return true
		}
	}
	return false
}
