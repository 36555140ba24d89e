/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package jsoncache decodes the plain-JSON artifacts the forensic decoder
// reads directly — the contact list (`cache.cl`), the dialog index
// (`dialogs/cache*`), favourites (`favorites/cache2`), the JSON form of
// `info/cache`, and the content-cache `.json` sidecars — isolating JSON
// ingestion from the binary record-stream engine in internal/icq/stream.
package jsoncache

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/gravwell/icqforensic/internal/icq/model"
)

// contactListDoc is the `cache.cl` shape: groups of buddies.
type contactListDoc struct {
	Groups []struct {
		Name    string `json:"name"`
		Buddies []struct {
			AimID       string `json:"aimId"`
			DisplayID   string `json:"displayId"`
			FirstName   string `json:"firstName"`
			LastName    string `json:"lastName"`
			Friendly    string `json:"friendly"`
			Nick        string `json:"nick"`
			PhoneNumber string `json:"phoneNumber"`
			Blocked     bool   `json:"blocked"`
			Bot         bool   `json:"bot"`
			Mute        bool   `json:"mute"`
		} `json:"buddies"`
	} `json:"groups"`
}

// DecodeContactList decodes a `cache.cl` document into contacts keyed by
// AIMID, per spec §6's contact-list artifact family. ConversationType is
// set from the `@chat.agent` substring rule (spec §3) so correlation step 2
// only needs to fill in what a JSON-absent contact lacks.
func DecodeContactList(data []byte) (map[string]*model.Contact, error) {
	var doc contactListDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	contacts := make(map[string]*model.Contact)
	for _, group := range doc.Groups {
		for _, b := range group.Buddies {
			if b.AimID == "" {
				continue
			}
			c := &model.Contact{
				UID:         b.AimID,
				AIMID:       b.AimID,
				DisplayName: b.DisplayID,
				FirstName:   b.FirstName,
				LastName:    b.LastName,
				FriendlyName: b.Friendly,
				NickName:    b.Nick,
				PhoneNumber: b.PhoneNumber,
				Blocked:     b.Blocked,
				Bot:         b.Bot,
				Muted:       b.Mute,
				ConversationType: conversationTypeForUID(b.AimID),
			}
			contacts[b.AimID] = c
		}
	}
	return contacts, nil
}

func conversationTypeForUID(uid string) string {
	if strings.Contains(uid, "@chat.agent") {
		return model.ConversationGroup
	}
	return model.ConversationPrivate
}

type dialogIndexDoc struct {
	Dialogs []struct {
		AimID string `json:"aimId"`
	} `json:"dialogs"`
}

// DecodeDialogIndex decodes `dialogs/cache*` into the list of user-ids with
// an active dialog, per spec §6.
func DecodeDialogIndex(data []byte) ([]string, error) {
	var doc dialogIndexDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(doc.Dialogs))
	for _, d := range doc.Dialogs {
		if d.AimID != "" {
			out = append(out, d.AimID)
		}
	}
	return out, nil
}

type favoritesDoc struct {
	Favorites []struct {
		AimID string `json:"aimId"`
	} `json:"favorites"`
}

// DecodeFavorites decodes `favorites/cache2` into the set of favourited
// user-ids, per spec §6.
func DecodeFavorites(data []byte) (map[string]bool, error) {
	var doc favoritesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(doc.Favorites))
	for _, f := range doc.Favorites {
		if f.AimID != "" {
			out[f.AimID] = true
		}
	}
	return out, nil
}

type ownerInfoDoc struct {
	Info struct {
		Nick                string `json:"nick"`
		AimID               string `json:"aimId"`
		Friendly            string `json:"friendly"`
		State               string `json:"state"`
		UserType            string `json:"userType"`
		AttachedPhoneNumber string `json:"attachedPhoneNumber"`
		GlobalFlags         uint64 `json:"globalFlags"`
		HasMail             bool   `json:"hasMail"`
		Official            bool   `json:"official"`
	} `json:"info"`
}

// DecodeOwnerInfo decodes the JSON form of `info/cache` (spec §6 notes this
// artifact is "binary or JSON" — the binary form is handled by
// internal/icq/stream.DecodeMyInfo).
func DecodeOwnerInfo(data []byte) (*model.Owner, error) {
	var doc ownerInfoDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &model.Owner{
		Nickname:            doc.Info.Nick,
		AIMID:                doc.Info.AimID,
		FriendlyName:         doc.Info.Friendly,
		State:                doc.Info.State,
		UserType:             doc.Info.UserType,
		AttachedPhoneNumber:  doc.Info.AttachedPhoneNumber,
		GlobalFlags:          doc.Info.GlobalFlags,
		HasMail:              doc.Info.HasMail,
		AccountIsOfficial:    doc.Info.Official,
	}, nil
}

// FileInfo is the `result.info.*` shape of a content-cache sidecar that
// describes a data file by name, size and MD5 (spec §4.5 step 8).
type FileInfo struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MD5      string `json:"md5"`
	Mime     string `json:"mime"`
}

// URLDoc is the `doc.url`/`doc.fetch_ts` shape of a content-cache sidecar
// that describes a fetched URL (spec §4.5 step 9).
type URLDoc struct {
	URL       string
	FetchTime string // formatted "YYYY-MM-DD HH:MM:SS" UTC, empty if absent/invalid
}

// Sidecar is the decoded shape of one content-cache `.json` companion file.
// FileInfo is set when the document has a `result.info` with a file name,
// URL when it has a non-empty `doc.url` (both, if it carries both); neither
// is set if the document matches neither known shape (spec §4.5: "missing or
// malformed files skip their step silently").
type Sidecar struct {
	FileInfo *FileInfo
	URL      *URLDoc
}

type sidecarEnvelope struct {
	Result *struct {
		Info *FileInfo `json:"info"`
	} `json:"result"`
	Doc *struct {
		URL      string `json:"url"`
		FetchTS  *int64 `json:"fetch_ts"`
	} `json:"doc"`
}

// DecodeSidecar decodes one content-cache `.json` companion file, matching
// it against the two known sidecar shapes (spec §4.5 steps 8-9).
func DecodeSidecar(data []byte) (Sidecar, error) {
	var env sidecarEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Sidecar{}, err
	}
	var sc Sidecar
	if env.Result != nil && env.Result.Info != nil && env.Result.Info.FileName != "" {
		fi := *env.Result.Info
		sc.FileInfo = &fi
	}
	if env.Doc != nil && env.Doc.URL != "" {
		ud := &URLDoc{URL: env.Doc.URL}
		if env.Doc.FetchTS != nil {
			t := time.Unix(*env.Doc.FetchTS, 0).UTC()
			if t.Year() >= 1 && t.Year() <= 9999 {
				ud.FetchTime = t.Format("2006-01-02 15:04:05")
			}
		}
		sc.URL = ud
	}
	return sc, nil
}
