// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"context"
	"fmt"
	"strings"

	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

const commandPrefix = "!mumble"

// HandleMatrixEvent relays a Matrix room message to the Mumble channels
// linked to its room. Events from the bridge bot or its own ghosts are
// dropped (echo prevention); rooms with no links are a silent no-op.
func (mc *MumbleConnector) HandleMatrixEvent(ctx context.Context, evt *event.Event) {
	content, ok := evt.Content.Parsed.(*event.MessageEventContent)
	if !ok {
		return
	}

	// Echo prevention: never relay our own traffic back.
	if evt.Sender == mc.botMXID || mc.isGhostUser(evt.Sender) {
		return
	}

	if strings.HasPrefix(content.Body, commandPrefix+" ") {
		mc.handleCommand(ctx, evt, strings.TrimPrefix(content.Body, commandPrefix+" "))
		return
	}

	channels := mc.links.ChannelsForRoom(evt.RoomID)
	if len(channels) == 0 {
		return
	}

	displayName := DisplayNameFor(evt.Sender, mc.profiles.GetDisplayName(ctx, evt.Sender))
	text := FormatMatrixMessage(content, displayName, mc.media)
	mc.murmur.SendText(ctx, text, channels)
}

// handleCommand processes bridge management commands sent in a room.
// Currently only "link <channel name>", which resolves a Mumble channel
// name to the id needed for a link entry.
func (mc *MumbleConnector) handleCommand(ctx context.Context, evt *event.Event, args string) {
	verb, rest, _ := strings.Cut(args, " ")
	if verb != "link" {
		return
	}

	var reply string
	channelID, found, err := mc.murmur.LookupChannelID(ctx, rest)
	switch {
	case err != nil:
		// Transport failure resolves to "not found" for the user.
		mc.log.Error().Err(err).Str("channel_name", rest).Msg("Channel lookup failed")
		fallthrough
	case !found:
		reply = fmt.Sprintf("No channel named %q found on the Mumble server.", rest)
	default:
		reply = fmt.Sprintf("Channel %q has id %d. Add it to the links section of the bridge config to link it to this room.", rest, channelID)
	}

	content := &event.MessageEventContent{MsgType: event.MsgNotice, Body: reply}
	if err := mc.matrix.SendMessage(ctx, "", evt.RoomID, content); err != nil {
		mc.log.Error().Err(err).Str("room_id", string(evt.RoomID)).Msg("Failed to send command reply")
	}
}

// isGhostUser reports whether the Matrix user is one of this bridge's
// ghosts, by localpart prefix on the configured domain.
func (mc *MumbleConnector) isGhostUser(userID id.UserID) bool {
	localpart, domain, err := userID.Parse()
	if err != nil || domain != mc.config.Domain {
		return false
	}
	return mc.ghostPrefix != "" && strings.HasPrefix(localpart, mc.ghostPrefix)
}
