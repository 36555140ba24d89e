/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tables

// UISettingEntry is one title's dispatch rule for the ui2.stg stream, which
// is title-keyed rather than tag-keyed (spec §4's "UI settings" note).
type UISettingEntry struct {
	Reader Reader
	Field  string
}

// UISettings is the closed dictionary of named UI-settings titles. This
// package holds the dictionary and the two title markers below only:
// internal/icq/stream has no ui2.stg decoder, so nothing reads these
// tables, splits a "favorites_pinned_on_start" title into its user-id
// prefix, or skips "splitter" titles.
var UISettings = map[string]UISettingEntry{
	"first_run":                      {ReadBool, "FIRST_RUN"},
	"show_notifications":             {ReadBool, "SHOW_NOTIFICATIONS"},
	"sound_enabled":                  {ReadBool, "SOUND_ENABLED"},
	"show_in_taskbar":                {ReadBool, "SHOW_IN_TASKBAR"},
	"autostart":                      {ReadBool, "AUTOSTART"},
	"download_path":                  {ReadText, "DOWNLOAD_PATH"},
	"language":                       {ReadText, "LANGUAGE"},
	"theme":                          {ReadText, "THEME"},
	"scale_coefficient":              {ReadValue, "SCALE_COEFFICIENT"},
	"last_login_aimid":               {ReadText, "LAST_LOGIN_AIMID"},
	"close_to_tray":                  {ReadBool, "CLOSE_TO_TRAY"},
	"send_message_by_enter":          {ReadBool, "SEND_MESSAGE_BY_ENTER"},
	"spell_check":                    {ReadBool, "SPELL_CHECK"},
	"show_read_receipts":             {ReadBool, "SHOW_READ_RECEIPTS"},
	"hide_online_status":             {ReadBool, "HIDE_ONLINE_STATUS"},
	"recent_avatars_size":            {ReadValue, "RECENT_AVATARS_SIZE"},
	"last_window_state":              {ReadValue, "LAST_WINDOW_STATE"},
	"install_beta_updates":           {ReadBool, "INSTALL_BETA_UPDATES"},
	"proxy_settings_enabled":         {ReadBool, "PROXY_SETTINGS_ENABLED"},
	"proxy_type":                     {ReadValue, "PROXY_TYPE"},
	"proxy_host":                     {ReadText, "PROXY_HOST"},
	"proxy_port":                     {ReadValue, "PROXY_PORT"},
	"video_quality":                  {ReadValue, "VIDEO_QUALITY"},
	"preview_gallery_in_chat":        {ReadBool, "PREVIEW_GALLERY_IN_CHAT"},
	"last_active_dialog_aimid":       {ReadText, "LAST_ACTIVE_DIALOG_AIMID"},
	"archive_version":                {ReadValue, "ARCHIVE_VERSION"},
	"unread_count_sound_enabled":     {ReadBool, "UNREAD_COUNT_SOUND_ENABLED"},
	"stickers_suggest_enabled":       {ReadBool, "STICKERS_SUGGEST_ENABLED"},
	"mentions_notify_enabled":        {ReadBool, "MENTIONS_NOTIFY_ENABLED"},
	"last_update_check_time":         {ReadTime, "LAST_UPDATE_CHECK_TIME"},
}

// FavoritesPinnedOnStartSuffix is the title substring whose presence
// triggers the stream engine's user-id-prefix-split handling instead of a
// UISettings table lookup.
const FavoritesPinnedOnStartSuffix = "favorites_pinned_on_start"

// SplitterSubstring marks an opaque geometry-blob title to be skipped
// outright.
const SplitterSubstring = "splitter"
