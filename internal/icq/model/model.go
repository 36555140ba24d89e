/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package model holds the in-memory record types the decoder and
// correlation engine populate, per spec §3. Every record is keyed by
// (user-id, message-id) or user-id alone as described there; fields are
// exported with JSON tags so a downstream serialiser (out of scope here)
// can render them without reshaping.
package model

// MessageContent is the MESSAGE sub-map of a message record: text,
// timestamps, direction, flags, quote, snippet, mentions, task and format
// runs.
type MessageContent struct {
	Text                         string            `json:"TEXT,omitempty"`
	Deleted                      bool              `json:"DELETED,omitempty"`
	Time                         string            `json:"TIME,omitempty"`
	TimeRaw                      int64             `json:"TIME_RAW,omitempty"`
	Direction                    string            `json:"DIRECTION,omitempty"`
	WID                          string            `json:"WID,omitempty"`
	StickerID                    string            `json:"STICKER_ID,omitempty"`
	ChatSender                   string            `json:"CHAT_SENDER,omitempty"`
	ChatName                     string            `json:"CHAT_NAME,omitempty"`
	PreviousMessageID            *uint64           `json:"PREVIOUS_MESSAGE_ID,omitempty"`
	InternalID                   string            `json:"INTERNAL_ID,omitempty"`
	ChatFriendlyName             string            `json:"CHAT_FRIENDLY_NAME,omitempty"`
	FileSharingURI               string            `json:"FILE_SHARING_URI,omitempty"`
	FileSharingLocalPath         string            `json:"FILE_SHARING_LOCAL_PATH,omitempty"`
	SenderFriendlyName           string            `json:"SENDER_FRIENDLY_NAME,omitempty"`
	ChatEventType                string            `json:"CHAT_EVENT_TYPE,omitempty"`
	ChatEventSenderFriendlyName  string            `json:"CHAT_EVENT_SENDER_FRIENDLY_NAME,omitempty"`
	ChatEventMChatMembers        map[uint32]string `json:"CHAT_EVENT_MCHAT_MEMBERS,omitempty"`
	ChatEventNewChatName         string            `json:"CHAT_EVENT_NEW_CHAT_NAME,omitempty"`
	ChatEventGenericText         string            `json:"CHAT_EVENT_GENERIC_TEXT,omitempty"`
	ChatEventNewChatDescription  string            `json:"CHAT_EVENT_NEW_CHAT_DESCRIPTION,omitempty"`
	QuoteText                    string            `json:"QUOTE_TEXT,omitempty"`
	QuoteSenderSN                string            `json:"QUOTE_SENDER_SN,omitempty"`
	QuoteMessageID                *uint64          `json:"QUOTE_MESSAGE_ID,omitempty"`
	QuoteTime                    string            `json:"QUOTE_TIME,omitempty"`
	QuoteChatID                  string            `json:"QUOTE_CHAT_ID,omitempty"`
	QuoteSenderFriendlyName      string            `json:"QUOTE_SENDER_FRIENDLY_NAME,omitempty"`
	QuoteIsForwarded             bool              `json:"QUOTE_IS_FORWARDED,omitempty"`
	QuoteChatStamp               string            `json:"QUOTE_CHAT_STAMP,omitempty"`
	QuoteChatName                string            `json:"QUOTE_CHAT_NAME,omitempty"`
	QuoteURL                     string            `json:"QUOTE_URL,omitempty"`
	QuoteDescription             string            `json:"QUOTE_DESCRIPTION,omitempty"`
	ChatEventNewChatRules        string            `json:"CHAT_EVENT_NEW_CHAT_RULES,omitempty"`
	ChatEventSenderAIMID         string            `json:"CHAT_EVENT_SENDER_AIMID,omitempty"`
	Mentioner                    string            `json:"MENTIONER,omitempty"`
	MentionerFriendlyName        string            `json:"MENTIONER_FRIENDLY_NAME,omitempty"`
	ChatEventMChatMembersAimIDs  map[uint32]string `json:"CHAT_EVENT_MCHAT_MEMBERS_AIMIDS,omitempty"`
	UpdatePatchVersion           string            `json:"UPDATE_PATCH_VERSION,omitempty"`
	SnippetURL                   string            `json:"SNIPPET_URL,omitempty"`
	SnippetContentType           string            `json:"SNIPPET_CONTENT_TYPE,omitempty"`
	SnippetPreviewURL            string            `json:"SNIPPET_PREVIEW_URL,omitempty"`
	SnippetPreviewWidth          uint64            `json:"SNIPPET_PREVIEW_WIDTH,omitempty"`
	SnippetPreviewHeight         uint64            `json:"SNIPPET_PREVIEW_HEIGHT,omitempty"`
	SnippetPreviewTitle          string            `json:"SNIPPET_PREVIEW_TITLE,omitempty"`
	SnippetDescription           string            `json:"SNIPPET_DESCRIPTION,omitempty"`
	Description                  string            `json:"DESCRIPTION,omitempty"`
	URL                          string            `json:"URL,omitempty"`
	IsOfficial                   bool              `json:"IS_OFFICIAL,omitempty"`
	SharedContactName            string            `json:"SHARED_CONTACT_NAME,omitempty"`
	SharedContactPhoneNumber     string            `json:"SHARED_CONTACT_PHONE_NUMBER,omitempty"`
	SharedContactSN              string            `json:"SHARED_CONTACT_SN,omitempty"`
	FileSharingBaseContentType   string            `json:"FILE_SHARING_BASE_CONTENT_TYPE,omitempty"`
	FileSharingDuration          uint64            `json:"FILE_SHARING_DURATION,omitempty"`
	GeographicName               string            `json:"GEOGRAPHIC_NAME,omitempty"`
	Latitude                     string            `json:"LATITUDE,omitempty"`
	Longitude                    string            `json:"LONGITUDE,omitempty"`
	ChatIsChannel                bool              `json:"CHAT_IS_CHANNEL,omitempty"`
	PollID                       uint64            `json:"POLL_ID,omitempty"`
	PollAnswer                   string            `json:"POLL_ANSWER,omitempty"`
	PollType                     uint64            `json:"POLL_TYPE,omitempty"`
	ChatEventNewChatStamp        string            `json:"CHAT_EVENT_NEW_CHAT_STAMP,omitempty"`
	SenderAIMID                  string            `json:"SENDER_AIMID,omitempty"`
	ChatRequestedBy              string            `json:"CHAT_REQUESTED_BY,omitempty"`
	ChatRequesterFriendlyName    string            `json:"CHAT_REQUESTER_FRIENDLY_NAME,omitempty"`
	ReactionsExists              bool              `json:"REACTIONS_EXISTS,omitempty"`
	ChatEventSenderStatus        string            `json:"CHAT_EVENT_SENDER_STATUS,omitempty"`
	ChatEventOwnerStatus         string            `json:"CHAT_EVENT_OWNER_STATUS,omitempty"`
	ChatEventSenderStatusDesc    string            `json:"CHAT_EVENT_SENDER_STATUS_DESCRIPTION,omitempty"`
	ChatEventOwnerStatusDesc     string            `json:"CHAT_EVENT_OWNER_STATUS_DESCRIPTION,omitempty"`
	TaskID                       uint64            `json:"TASK_ID,omitempty"`
	TaskTitle                    string            `json:"TASK_TITLE,omitempty"`
	TaskAssignee                 string            `json:"TASK_ASSIGNEE,omitempty"`
	TaskEndTime                  string            `json:"TASK_END_TIME,omitempty"`
	ThreadID                     uint64            `json:"THREAD_ID,omitempty"`
	TaskStatus                   string            `json:"TASK_STATUS,omitempty"`
	ChatEventThreadsEnabled      bool              `json:"CHAT_EVENT_THREADS_ENABLED,omitempty"`
	FormatRuns                   []string          `json:"FORMAT_RUNS,omitempty"`
}

// VoipContent is the optional VOIP sub-map of a message record.
type VoipContent struct {
	EventType          string `json:"VOIP_EVENT_TYPE,omitempty"`
	SenderFriendlyName string `json:"VOIP_SENDER_FRIENDLY_NAME,omitempty"`
	SenderAIMID        string `json:"VOIP_SENDER_AIMID,omitempty"`
	Duration           uint64 `json:"VOIP_DURATION,omitempty"`
	Direction          string `json:"DIRECTION,omitempty"`
	ConferenceMembers  string `json:"VOIP_CONFERENCE_MEMBERS,omitempty"`
	IsVideo            bool   `json:"VOIP_IS_VIDEO,omitempty"`
	CallAIMID          string `json:"VOIP_CALL_AIMID,omitempty"`
	SID                string `json:"VOIP_SID,omitempty"`
}

// SharedContentDetails is spliced into a message record during correlation
// (spec §4.5 step 5) from the matching shared-file record, and further
// enriched with URI-decoded and content-cache metadata (steps 6-9).
type SharedContentDetails struct {
	SharedFile            *SharedFile              `json:"SHARED_FILE,omitempty"`
	URIDecodedMetadata    *URIDecodedMetadata      `json:"URI_DECODED_METADATA,omitempty"`
	FileMetadataByName    map[string]CacheFileInfo `json:"SHARED_CONTENT_FILE_METADATA,omitempty"`
	FileLocation          *SharedContentFileLocation `json:"SHARED_CONTENT_FILE_LOCATION,omitempty"`
}

// CacheFileInfo is the size/MD5 pair kept in the content-cache filename index
// (spec §4.5 step 7, §5's "resource policy").
type CacheFileInfo struct {
	Size int64  `json:"size"`
	MD5  string `json:"md5"`
	Kind string `json:"kind,omitempty"`
}

// SharedContentFileLocation is attached during correlation step 8.
type SharedContentFileLocation struct {
	LocalPath        string   `json:"local_path"`
	SidecarFilename  string   `json:"sidecar_filename"`
	CompanionDirPath string   `json:"companion_dir_path,omitempty"`
	CompanionListing []string `json:"companion_dir_listing,omitempty"`
}

// URIDecodedMetadata is the output of the Base62 file-sharing URI decoder
// (spec §4.4), attached wherever a URI is recovered from message text or a
// shared-file record.
type URIDecodedMetadata struct {
	ContentType  string `json:"URI_DECODED_CONTENT_TYPE"`
	Timestamp    string `json:"URI_DECODED_CONTENT_TIMESTAMP,omitempty"`
	DurationSecs *int   `json:"URI_DECODED_DURATION_SECONDS,omitempty"`
	Width        *int   `json:"URI_DECODED_WIDTH,omitempty"`
	Height       *int   `json:"URI_DECODED_HEIGHT,omitempty"`
	ColorHex     string `json:"URI_DECODED_COLOR,omitempty"`
	ExtraDurationSecs *int `json:"URI_DECODED_EXTRA_DURATION_SECONDS,omitempty"`
}

// Message is keyed by (user-id, message-id) per spec §3.
type Message struct {
	UserID                string                 `json:"UID"`
	MessageID             uint64                 `json:"-"`
	Message               MessageContent         `json:"MESSAGE"`
	Voip                  *VoipContent           `json:"VOIP,omitempty"`
	SharedContentDetails  *SharedContentDetails  `json:"SharedContentDetails,omitempty"`
}

// Contact is keyed by user-id per spec §3.
type Contact struct {
	UID                   string            `json:"UID"`
	AIMID                 string            `json:"AIMID,omitempty"`
	DisplayName           string            `json:"DisplayName,omitempty"`
	FirstName             string            `json:"FirstName,omitempty"`
	LastName              string            `json:"LastName,omitempty"`
	FriendlyName          string            `json:"FriendlyName,omitempty"`
	NickName              string            `json:"NickName,omitempty"`
	PhoneNumber           string            `json:"PhoneNumber,omitempty"`
	Blocked               bool              `json:"Blocked,omitempty"`
	Bot                   bool              `json:"Bot,omitempty"`
	Muted                 bool              `json:"Muted,omitempty"`
	IsFavorite            bool              `json:"IsFavorite,omitempty"`
	ConversationType      string            `json:"ConversationType"`
	MessageFromNonContact bool              `json:"MESSAGE_FROM_NON_CONTACT,omitempty"`
	AvatarPaths           []string          `json:"AvatarPaths,omitempty"`
	MediaInCommon         *MediaTallies     `json:"MediaInCommon,omitempty"`
	GalleryContentDetails *GalleryState     `json:"GalleryContentDetails,omitempty"`
	ConversationState     *DialogState      `json:"ConversationState,omitempty"`
	MessagesSent          int               `json:"MessagesSent"`
	MessagesReceived      int               `json:"MessagesReceived"`
	MessagesTotal         int               `json:"MessagesTotal"`
}

const (
	ConversationPrivate = "PRIVATE"
	ConversationGroup   = "GROUP CHAT"
)

// SharedFile is keyed by (user-id, message-id) per spec §3.
type SharedFile struct {
	UserID        string               `json:"-"`
	MessageID     uint64               `json:"-"`
	NextMessageID *uint64              `json:"SHARED_CONTENT_NEXT_MSG_ID,omitempty"`
	Content       string               `json:"SHARED_CONTENT,omitempty"`
	ContentType   string               `json:"SHARED_CONTENT_TYPE,omitempty"`
	Sender        string               `json:"SHARED_CONTENT_SENDER,omitempty"`
	Direction     string               `json:"DIRECTION,omitempty"`
	Time          string               `json:"SHARED_CONTENT_TIME,omitempty"`
	Caption       string               `json:"SHARED_CONTENT_CAPTION,omitempty"`
	URIDecoded    *URIDecodedMetadata  `json:"URI_DECODED_METADATA,omitempty"`
}

// MediaTallies is the per-user media-type counters from correlation step 1.
type MediaTallies struct {
	Files  int `json:"FILES"`
	Images int `json:"IMAGES"`
	Links  int `json:"LINKS"`
	PTT    int `json:"PTT"`
	Videos int `json:"VIDEOS"`
	Other  int `json:"OTHER"`
}

// GalleryState is keyed by user-id (the STATE destination label, spec §4.3).
type GalleryState struct {
	LastEntry   *uint64 `json:"LAST_ENTRY,omitempty"`
	FirstEntry  *uint64 `json:"FIRST_ENTRY,omitempty"`
	ImageCount  uint64  `json:"IMAGE_COUNT,omitempty"`
	VideoCount  uint64  `json:"VIDEO_COUNT,omitempty"`
	FileCount   uint64  `json:"FILE_COUNT,omitempty"`
	LinkCount   uint64  `json:"LINK_COUNT,omitempty"`
	PTTCount    uint64  `json:"PTT_COUNT,omitempty"`
	AudioCount  uint64  `json:"AUDIO_COUNT,omitempty"`
}

// DialogHead is one ordinal entry of a dialog state's chat-heads composite
// (tag 20).
type DialogHead struct {
	AIMID        string `json:"HEAD_AIMID,omitempty"`
	FriendlyName string `json:"FRIENDLY_NAME,omitempty"`
}

// DialogState is keyed by user-id per spec §3.
type DialogState struct {
	UnreadCount         uint64            `json:"UNREAD_COUNT,omitempty"`
	LastMessageID       *uint64           `json:"LAST_MESSAGE_ID,omitempty"`
	YoursLastRead       *uint64           `json:"YOURS_LAST_READ,omitempty"`
	TheirsLastRead      *uint64           `json:"THEIRS_LAST_READ,omitempty"`
	TheirsLastDelivered *uint64           `json:"THEIRS_LAST_DELIVERED,omitempty"`
	Visible             bool              `json:"VISIBLE,omitempty"`
	FriendlyName        string            `json:"FRIENDLY_NAME,omitempty"`
	Official            bool              `json:"OFFICIAL,omitempty"`
	Fake                bool              `json:"FAKE,omitempty"`
	HiddenMessageID     *uint64           `json:"HIDDEN_MESSAGE_ID,omitempty"`
	UnreadMentionsCount uint64            `json:"UNREAD_MENTIONS_COUNT,omitempty"`
	LastReadMention     *uint64           `json:"LAST_READ_MENTION,omitempty"`
	Stranger            bool              `json:"STRANGER,omitempty"`
	Direction           string            `json:"DIRECTION,omitempty"`
	Text                string            `json:"TEXT,omitempty"`
	Heads               map[int]DialogHead `json:"Heads,omitempty"`
}

// CallLogEntry is keyed by message-id per spec §3: a subset of Message with
// the extra CALL_LOG_* routing label.
type CallLogEntry struct {
	MessageID        uint64       `json:"-"`
	Message          MessageContent `json:"MESSAGE"`
	Voip             *VoipContent `json:"VOIP,omitempty"`
	DurationSeconds  uint64       `json:"CALL_LOG_DURATION_SECONDS,omitempty"`
	Missed           bool         `json:"CALL_LOG_MISSED,omitempty"`
}

// Draft is keyed by (user-id, draft-timestamp) per spec §3.
type Draft struct {
	UserID        string         `json:"-"`
	Timestamp     int64          `json:"-"`
	State         uint64         `json:"DRAFT_STATE,omitempty"`
	Time          string         `json:"DRAFT_TIME,omitempty"`
	LocalTime     string         `json:"DRAFT_LOCAL_TIME,omitempty"`
	FriendlyName  string         `json:"DRAFT_FRIENDLY_NAME,omitempty"`
	Message       MessageContent `json:"DRAFT_MESSAGE,omitempty"`
}

// Owner is the MyInfo record for the capturing account itself, exposed as
// the top-level "owner" output document.
type Owner struct {
	AIMID                string `json:"AIMID,omitempty"`
	DisplayID            string `json:"DISPLAY_ID,omitempty"`
	FriendlyName         string `json:"FRIENDLY_NAME,omitempty"`
	State                string `json:"STATE,omitempty"`
	UserType             string `json:"USER_TYPE,omitempty"`
	AttachedPhoneNumber  string `json:"ATTACHED_PHONE_NUMBER,omitempty"`
	GlobalFlags          uint64 `json:"GLOBAL_FLAGS,omitempty"`
	AutoCreated          bool   `json:"AUTO_CREATED,omitempty"`
	HasMail              bool   `json:"HAS_MAIL,omitempty"`
	ReadUserAgreement    bool   `json:"READ_USER_AGREEMENT,omitempty"`
	AccountIsOfficial    bool   `json:"ACCOUNT_IS_OFFICIAL,omitempty"`
	Nickname             string `json:"NICKNAME,omitempty"`
	TotalSent            int    `json:"TOTAL_SENT"`
	TotalRcvd            int    `json:"TOTAL_RCVD"`
	TotalAll             int    `json:"TOTAL_ALL"`
}
