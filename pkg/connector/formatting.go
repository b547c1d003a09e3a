// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"fmt"

	"maunium.net/go/mautrix/event"
)

// unknownUserPlaceholder is used in presence notices when the event
// carries no user name.
const unknownUserPlaceholder = "[Bridge error: Unknown user]"

// mediaResolver resolves an mxc:// content URI to a fetchable HTTP URL.
// An empty result means the URI could not be resolved.
type mediaResolver interface {
	ResolveMediaURL(mxc string) string
}

// FormatMatrixMessage computes the Mumble-bound text for a Matrix message.
// Body precedence:
//
//  1. image/file with a media URL that resolves: an anchor link wrapping
//     the plain body (Mumble renders HTML natively). Failed resolution
//     falls through to rule 3, not rule 2.
//  2. m.text with an HTML formatted body: the formatted body verbatim.
//  3. the plain body.
//
// The formatted body is passed through without sanitization; both sides of
// the bridge treat message HTML as already safe. That is accepted behavior,
// not an oversight.
func FormatMatrixMessage(content *event.MessageEventContent, displayName string, media mediaResolver) string {
	body := content.Body

	switch {
	case (content.MsgType == event.MsgImage || content.MsgType == event.MsgFile) && content.URL != "":
		if httpURL := media.ResolveMediaURL(string(content.URL)); httpURL != "" {
			body = fmt.Sprintf(`<a href="%s">%s</a>`, httpURL, content.Body)
		}
	case content.MsgType == event.MsgText && content.Format == event.FormatHTML && content.FormattedBody != "":
		body = content.FormattedBody
	}

	return fmt.Sprintf("%s: %s", displayName, body)
}

// PresenceNoticeContent builds the m.notice relayed when a user connects
// to or disconnects from the Mumble server.
func PresenceNoticeContent(username string, connected bool) *event.MessageEventContent {
	if username == "" {
		username = unknownUserPlaceholder
	}
	verb := "connected to"
	if !connected {
		verb = "disconnected from"
	}
	return &event.MessageEventContent{
		MsgType: event.MsgNotice,
		Body:    fmt.Sprintf("%s has %s the server.", username, verb),
	}
}

// TextRelayContent builds the m.text content for a Mumble text message.
// Mumble text messages are HTML, so the body doubles as the formatted body
// with no escaping applied (mirroring FormatMatrixMessage's verbatim policy).
func TextRelayContent(text string) *event.MessageEventContent {
	return &event.MessageEventContent{
		MsgType:       event.MsgText,
		Body:          text,
		Format:        event.FormatHTML,
		FormattedBody: text,
	}
}
