/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package tables holds the static tag-dispatch tables the record-stream
// engine (internal/icq/stream) consults to decide, for a given field tag,
// which primitive reader to invoke, what field name to assign, and which
// sub-record ("destination") the value belongs to. One table exists per
// artifact family, matching the six handler dictionaries of the source
// client's archive parsers.
package tables

// Reader names the primitive decoder a handler entry invokes. The
// record-stream engine maps these onto internal/icq/primitive functions;
// kept as a closed enum here rather than a func value so the tables stay
// data, not code.
type Reader int

const (
	ReadSize Reader = iota
	ReadMessageID
	ReadMessageFlags
	ReadTime
	ReadText
	ReadBool
	ReadValue
	ReadLookupValue
	ReadChatMembers
	ReadFormatFlags
	ReadUnknown
)

// Entry is one tag's dispatch rule: which reader to use, what to call the
// decoded field, and which sub-record ("MESSAGE", "VOIP", "FILE", "DRAFT",
// "STATE", "DIALOG_STATE") it belongs to. Dest == "" means the field is
// framing-only (a block-size counter, a reserved/unused slot, or a value
// not attributed to an output record). The decoders skip such a field
// unless run in verbose mode; in verbose mode they pass it to setField,
// which stores nothing because no model struct has a field with any of
// these names.
type Entry struct {
	Reader Reader
	Field  string
	Dest   string
}

// Message is the message-history handler table (tag domain used by _db*
// archive files), transcribed from the source client's
// icqdesktop.deprecated/core/archive/history_message.cpp tag list.
var Message = map[uint32]Entry{
	0:   {ReadSize, "CALL_LOG_CACHE_BLOCK_SIZE", ""},
	1:   {ReadMessageID, "MESSAGE_ID", "MESSAGE"},
	2:   {ReadMessageFlags, "FLAGS", "MESSAGE"},
	3:   {ReadTime, "TIME", "MESSAGE"},
	4:   {ReadText, "WID", "MESSAGE"},
	5:   {ReadText, "TEXT", ""},
	6:   {ReadSize, "CHAT_BLOCK_SIZE", ""},
	7:   {ReadSize, "STICKER_BLOCK_SIZE", ""},
	8:   {ReadSize, "MULT", ""},
	9:   {ReadSize, "VOIP_BLOCK_SIZE", ""},
	10:  {ReadText, "STICKER_ID", "MESSAGE"},
	11:  {ReadText, "CHAT_SENDER", "MESSAGE"},
	12:  {ReadText, "CHAT_NAME", "MESSAGE"},
	13:  {ReadMessageID, "PREVIOUS_MESSAGE_ID", "MESSAGE"},
	14:  {ReadText, "INTERNAL_ID", "MESSAGE"},
	15:  {ReadText, "CHAT_FRIENDLY_NAME", "MESSAGE"},
	16:  {ReadSize, "FILE_SHARING_BLOCK_SIZE", ""},
	17:  {ReadSize, "FILE_SHARING_FLAGS", ""},
	18:  {ReadText, "FILE_SHARING_URI", "MESSAGE"},
	19:  {ReadText, "FILE_SHARING_LOCAL_PATH", "MESSAGE"},
	20:  {ReadUnknown, "FILE_SHARING_UPLOAD_ID", ""},
	21:  {ReadText, "SENDER_FRIENDLY_NAME", "MESSAGE"},
	22:  {ReadSize, "CHAT_EVENT_BLOCK_SIZE", ""},
	23:  {ReadLookupValue, "CHAT_EVENT_TYPE", "MESSAGE"},
	24:  {ReadText, "CHAT_EVENT_SENDER_FRIENDLY_NAME", "MESSAGE"},
	25:  {ReadChatMembers, "CHAT_EVENT_MCHAT_MEMBERS", "MESSAGE"},
	26:  {ReadText, "CHAT_EVENT_NEW_CHAT_NAME", "MESSAGE"},
	27:  {ReadLookupValue, "VOIP_EVENT_TYPE", "VOIP"},
	28:  {ReadText, "VOIP_SENDER_FRIENDLY_NAME", "VOIP"},
	29:  {ReadText, "VOIP_SENDER_AIMID", "VOIP"},
	30:  {ReadValue, "VOIP_DURATION", "VOIP"},
	31:  {ReadLookupValue, "VOIP_IS_INCOMING", "VOIP"},
	32:  {ReadText, "CHAT_EVENT_GENERIC_TEXT", "MESSAGE"},
	33:  {ReadText, "CHAT_EVENT_NEW_CHAT_DESCRIPTION", "MESSAGE"},
	34:  {ReadText, "QUOTE_TEXT", "MESSAGE"},
	35:  {ReadText, "QUOTE_SENDER_SN", "MESSAGE"},
	36:  {ReadMessageID, "QUOTE_MESSAGE_ID", "MESSAGE"},
	37:  {ReadTime, "QUOTE_TIME", "MESSAGE"},
	38:  {ReadText, "QUOTE_CHAT_ID", "MESSAGE"},
	39:  {ReadSize, "QUOTE", ""},
	40:  {ReadText, "QUOTE_SENDER_FRIENDLY_NAME", "MESSAGE"},
	41:  {ReadBool, "QUOTE_IS_FORWARDED", "MESSAGE"},
	42:  {ReadText, "CHAT_EVENT_NEW_CHAT_RULES", "MESSAGE"},
	43:  {ReadText, "CHAT_EVENT_SENDER_AIMID", "MESSAGE"},
	44:  {ReadValue, "QUOTE_SET_ID", ""},
	45:  {ReadValue, "QUOTE_STICKER_ID", ""},
	46:  {ReadText, "QUOTE_CHAT_STAMP", "MESSAGE"},
	47:  {ReadText, "QUOTE_CHAT_NAME", "MESSAGE"},
	48:  {ReadSize, "MENTION_BLOCK_SIZE", ""},
	49:  {ReadText, "MENTIONER", "MESSAGE"},
	50:  {ReadText, "MENTIONER_FRIENDLY_NAME", "MESSAGE"},
	51:  {ReadChatMembers, "CHAT_EVENT_MCHAT_MEMBERS_AIMIDS", "MESSAGE"},
	52:  {ReadText, "UPDATE_PATCH_VERSION", "MESSAGE"},
	53:  {ReadSize, "SNIPPET_BLOCK_SIZE", ""},
	54:  {ReadText, "SNIPPET_URL", "MESSAGE"},
	55:  {ReadText, "SNIPPET_CONTENT_TYPE", "MESSAGE"},
	56:  {ReadText, "SNIPPET_PREVIEW_URL", "MESSAGE"},
	57:  {ReadValue, "SNIPPET_PREVIEW_WIDTH", "MESSAGE"},
	58:  {ReadValue, "SNIPPET_PREVIEW_HEIGHT", "MESSAGE"},
	59:  {ReadText, "SNIPPET_PREVIEW_TITLE", "MESSAGE"},
	60:  {ReadText, "SNIPPET_DESCRIPTION", "MESSAGE"},
	61:  {ReadText, "VOIP_CONFERENCE_MEMBERS", "VOIP"},
	62:  {ReadBool, "VOIP_IS_VIDEO", "VOIP"},
	63:  {ReadSize, "IS_CAPTCHA_PRESENT", ""},
	64:  {ReadText, "DESCRIPTION", "MESSAGE"},
	65:  {ReadText, "URL", "MESSAGE"},
	66:  {ReadText, "QUOTE_URL", "MESSAGE"},
	67:  {ReadText, "QUOTE_DESCRIPTION", "MESSAGE"},
	68:  {ReadValue, "OFFLINE_VERSION", ""},
	69:  {ReadLookupValue, "IS_OFFICIAL", "MESSAGE"},
	70:  {ReadSize, "SHARED_CONTACT", ""},
	71:  {ReadText, "SHARED_CONTACT_NAME", "MESSAGE"},
	72:  {ReadText, "SHARED_CONTACT_PHONE_NUMBER", "MESSAGE"},
	73:  {ReadText, "SHARED_CONTACT_SN", "MESSAGE"},
	74:  {ReadText, "FILE_SHARING_BASE_CONTENT_TYPE", "MESSAGE"},
	75:  {ReadValue, "FILE_SHARING_DURATION", "MESSAGE"},
	76:  {ReadSize, "GEO_DATA_BLOCK_SIZE", ""},
	77:  {ReadText, "GEOGRAPHIC_NAME", "MESSAGE"},
	78:  {ReadText, "LATITUDE", "MESSAGE"},
	79:  {ReadText, "LONGITUDE", "MESSAGE"},
	80:  {ReadBool, "CHAT_IS_CHANNEL", "MESSAGE"},
	81:  {ReadSize, "POLL_BLOCK_SIZE", ""},
	82:  {ReadValue, "POLL_ID", "MESSAGE"},
	83:  {ReadText, "POLL_ANSWER", "MESSAGE"},
	84:  {ReadValue, "POLL_TYPE", "MESSAGE"},
	85:  {ReadText, "CHAT_EVENT_NEW_CHAT_STAMP", "MESSAGE"},
	86:  {ReadValue, "JSON_BLOCK_SIZE", ""},
	87:  {ReadText, "SENDER_AIMID", "MESSAGE"},
	88:  {ReadUnknown, "BUTTONS", ""},
	89:  {ReadBool, "HIDE_EDIT", ""},
	90:  {ReadText, "CHAT_REQUESTED_BY", "MESSAGE"},
	91:  {ReadText, "CHAT_REQUESTER_FRIENDLY_NAME", "MESSAGE"},
	92:  {ReadText, "VOIP_CALL_AIMID", "VOIP"},
	93:  {ReadText, "VOIP_SID", "VOIP"},
	94:  {ReadSize, "REACTIONS_BLOCK", ""},
	95:  {ReadBool, "REACTIONS_EXISTS", "MESSAGE"},
	96:  {ReadText, "CHAT_EVENT_SENDER_STATUS", "MESSAGE"},
	97:  {ReadText, "CHAT_EVENT_OWNER_STATUS", "MESSAGE"},
	98:  {ReadText, "CHAT_EVENT_SENDER_STATUS_DESCRIPTION", "MESSAGE"},
	99:  {ReadText, "CHAT_EVENT_OWNER_STATUS_DESCRIPTION", "MESSAGE"},
	100: {ReadSize, "FORMAT_BLOCK_SIZE", ""},
	101: {ReadUnknown, "FORMAT_OFFSET", ""},
	102: {ReadUnknown, "FORMAT_LENGTH", ""},
	103: {ReadUnknown, "FORMAT_DATA", ""},
	104: {ReadFormatFlags, "FORMAT_BOLD", ""},
	105: {ReadFormatFlags, "FORMAT_ITALIC", ""},
	106: {ReadFormatFlags, "FORMAT_UNDERLINE", ""},
	107: {ReadFormatFlags, "FORMAT_STRIKETHROUGH", ""},
	108: {ReadFormatFlags, "FORMAT_INLINE_CODE", ""},
	109: {ReadFormatFlags, "FORMAT_URL", ""},
	110: {ReadFormatFlags, "FORMAT_MENTION", ""},
	111: {ReadFormatFlags, "FORMAT_QUOTE", ""},
	112: {ReadFormatFlags, "FORMAT_PRE", ""},
	113: {ReadFormatFlags, "FORMAT_ORDERED_LIST", ""},
	114: {ReadFormatFlags, "FORMAT_UNORDERED_LIST", ""},
	115: {ReadUnknown, "DESCRIPTION_FORMAT", ""},
	116: {ReadSize, "TASK_BLOCK_SIZE", ""},
	117: {ReadValue, "TASK_ID", "MESSAGE"},
	118: {ReadText, "TASK_TITLE", "MESSAGE"},
	119: {ReadText, "TASK_ASSIGNEE", "MESSAGE"},
	120: {ReadTime, "TASK_END_TIME", "MESSAGE"},
	121: {ReadValue, "THREAD_ID", "MESSAGE"},
	122: {ReadText, "TASK_STATUS", "MESSAGE"},
	123: {ReadText, "CHAT_EVENT_TASK_EDITOR", ""},
	124: {ReadUnknown, "FORMAT_START_INDEX", ""},
	125: {ReadBool, "CHAT_EVENT_THREADS_ENABLED", "MESSAGE"},
}

// MyInfo is the info/cache handler table (desktop binary `info/cache`),
// transcribed from the source client's
// im-desktop/core/connections/wim/my_info.h. Dest is empty for every
// entry; DecodeMyInfo assigns every decoded field regardless of Dest.
var MyInfo = map[uint32]Entry{
	1:  {ReadText, "AIMID", ""},
	2:  {ReadText, "DISPLAY_ID", ""},
	3:  {ReadText, "FRIENDLY_NAME", ""},
	4:  {ReadText, "STATE", ""},
	5:  {ReadText, "USER_TYPE", ""},
	6:  {ReadText, "ATTACHED_PHONE_NUMBER", ""},
	7:  {ReadValue, "GLOBAL_FLAGS", ""},
	8:  {ReadBool, "AUTO_CREATED", ""},
	9:  {ReadBool, "HAS_MAIL", ""},
	10: {ReadBool, "READ_USER_AGREEMENT", ""},
	11: {ReadBool, "ACCOUNT_IS_OFFICIAL", ""},
	12: {ReadText, "NICKNAME", ""},
}

// SharedFiles is the gallery-cache handler table (desktop `_gc*` files),
// transcribed from the source client's core/archive/gallery_cache.cpp.
var SharedFiles = map[uint32]Entry{
	1:  {ReadSize, "SHARED_CONTENT_BLOCK_SIZE", ""},
	2:  {ReadMessageID, "SHARED_CONTENT_MSG_ID", "FILE"},
	3:  {ReadValue, "SHARED_SEQUENCE_NO", ""},
	4:  {ReadMessageID, "SHARED_CONTENT_NEXT_MSG_ID", "FILE"},
	5:  {ReadValue, "SHARED_NEXT_SEQUENCE_NO", ""},
	6:  {ReadText, "SHARED_CONTENT", "FILE"},
	7:  {ReadText, "SHARED_CONTENT_TYPE", "FILE"},
	8:  {ReadText, "SHARED_CONTENT_SENDER", "FILE"},
	9:  {ReadMessageFlags, "SHARED_MESSAGE_FLAGS", "FILE"},
	10: {ReadTime, "SHARED_CONTENT_TIME", "FILE"},
	11: {ReadText, "SHARED_CONTENT_CAPTION", "FILE"},
}

// DraftFiles is the draft-storage handler table (desktop `_draft*` files),
// transcribed from the source client's core/archive/draft_storage.h. Tag 3
// additionally opens a nested Message-table frame for the draft body, per
// spec §4.2's embedded-sub-record rule.
var DraftFiles = map[uint32]Entry{
	1:  {ReadValue, "DRAFT_STATE", "DRAFT"},
	2:  {ReadTime, "DRAFT_TIME", "DRAFT"},
	3:  {ReadSize, "DRAFT_MESSAGE_BLOCK_SIZE", "DRAFT"},
	4:  {ReadTime, "DRAFT_LOCAL_TIME", "DRAFT"},
	5:  {ReadText, "DRAFT_FRIENDLY_NAME", "DRAFT"},
	68: {ReadValue, "OFFLINE_VERSION", ""},
	89: {ReadBool, "HIDE_EDIT", ""},
}

// State is the gallery-state handler table (desktop `_gs*` files),
// transcribed from the source client's core/archive/gallery_cache.cpp.
var State = map[uint32]Entry{
	1:  {ReadText, "PATCH_VERSION", ""},
	2:  {ReadMessageID, "LAST_ENTRY", "STATE"},
	3:  {ReadValue, "LAST_ENTRY_SEQUENCE_NO", ""},
	4:  {ReadMessageID, "FIRST_ENTRY", "STATE"},
	5:  {ReadValue, "FIRST_ENTRY_SEQUENCE_NO", ""},
	6:  {ReadValue, "IMAGE_COUNT", "STATE"},
	7:  {ReadValue, "VIDEO_COUNT", "STATE"},
	8:  {ReadValue, "FILE_COUNT", "STATE"},
	9:  {ReadValue, "LINK_COUNT", "STATE"},
	10: {ReadValue, "PTT_COUNT", "STATE"},
	11: {ReadValue, "AUDIO_COUNT", "STATE"},
	12: {ReadBool, "PATCH_VERSION_CHANGED", ""},
}

// DialogState is the dialog-state handler table (desktop `_ste*` files),
// transcribed from the source client's im-desktop/core/archive/dlg_state.cpp.
// Tag 20 opens a nested repeating frame of ordinal DialogState tables (one
// per chat "head"), per spec §4.2's embedded-sub-record rule.
var DialogState = map[uint32]Entry{
	1:  {ReadValue, "UNREAD_COUNT", "DIALOG_STATE"},
	2:  {ReadMessageID, "LAST_MESSAGE_ID", "DIALOG_STATE"},
	3:  {ReadMessageID, "YOURS_LAST_READ", "DIALOG_STATE"},
	4:  {ReadMessageID, "THEIRS_LAST_READ", "DIALOG_STATE"},
	5:  {ReadMessageID, "THEIRS_LAST_DELIVERED", "DIALOG_STATE"},
	7:  {ReadSize, "LAST_MESSAGE_CONTENT_SIZE", "DIALOG_STATE"},
	8:  {ReadBool, "VISIBLE", "DIALOG_STATE"},
	9:  {ReadUnknown, "LAST_MESSAGE_FRIENDLY_UNUSED", ""},
	10: {ReadText, "PATCH_VERSION", ""},
	11: {ReadMessageID, "DEL_UP_TO", ""},
	12: {ReadText, "FRIENDLY_NAME", "DIALOG_STATE"},
	13: {ReadBool, "OFFICIAL", "DIALOG_STATE"},
	14: {ReadBool, "FAKE", "DIALOG_STATE"},
	15: {ReadMessageID, "HIDDEN_MESSAGE_ID", "DIALOG_STATE"},
	16: {ReadValue, "UNREAD_MENTIONS_COUNT", "DIALOG_STATE"},
	17: {ReadUnknown, "PINNED_MESSAGE", ""},
	18: {ReadBool, "ATTENTION", ""},
	19: {ReadBool, "SUSPICIOUS", ""},
	20: {ReadUnknown, "HEADS", ""},
	21: {ReadText, "HEAD_AIMID", "DIALOG_STATE"},
	22: {ReadSize, "HEAD_FRIENDLY_BLOCK_SIZE", ""},
	23: {ReadMessageID, "LAST_READ_MENTION", "DIALOG_STATE"},
	24: {ReadBool, "STRANGER", "DIALOG_STATE"},
	25: {ReadText, "INFO_VERSION", ""},
	26: {ReadValue, "NO_RECENTS_UPDATE", ""},
	27: {ReadText, "MEMBERS_VERSION", ""},
}

// NestedFrameTag identifies a tag whose payload is itself a sequence of
// tag-dispatched records rather than a primitive value, per spec §4.2's
// embedded sub-record rule. DraftFiles tag 3 nests a single Message frame
// (the draft's own message body); DialogState tag 20 nests a repeating
// sequence of DialogState frames (one per chat head, terminated by the
// enclosing block's declared size).
type NestedFrameTag struct {
	Table    map[uint32]Entry
	Repeats  bool
}

var (
	DraftMessageFrame = NestedFrameTag{Table: Message, Repeats: false}
	DialogHeadsFrame  = NestedFrameTag{Table: DialogState, Repeats: true}
)
