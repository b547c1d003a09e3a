// Copyright 2024-2026 Aiku AI

package connector

import (
	"context"

	"github.com/aiku/mautrix-mumble/pkg/murmurrpc"
)

// eventStream is the slice of the ServerEvents stream the consumer loop
// needs. murmurrpc.V1_ServerEventsClient satisfies it; tests inject fakes.
type eventStream interface {
	Recv() (*murmurrpc.Server_Event, error)
}

// runEventLoop consumes the Murmur event stream for the lifetime of the
// connection. Events are read in delivery order, but each one is handled
// in its own goroutine without awaiting: the stream is never blocked on
// Matrix I/O, at the cost of cross-room ordering once several events are
// in flight. That trade-off is deliberate; there is no concurrency cap
// and no queue.
func (mc *MumbleConnector) runEventLoop(ctx context.Context, stream eventStream) {
	mc.log.Info().Msg("Murmur event loop started")
	for {
		evt, err := stream.Recv()
		if err != nil {
			if ctx.Err() != nil {
				mc.log.Info().Msg("Murmur event loop stopped")
				return
			}
			// The stream is not restartable; reconnection is a future
			// extension.
			mc.log.Error().Err(err).Msg("Murmur event stream closed")
			return
		}
		go mc.handleMurmurEvent(ctx, evt)
	}
}

// handleMurmurEvent dispatches a single server event. Unhandled event
// types are dropped without side effects.
func (mc *MumbleConnector) handleMurmurEvent(ctx context.Context, evt *murmurrpc.Server_Event) {
	switch evt.GetType() {
	case murmurrpc.Server_Event_UserConnected:
		mc.relayPresence(ctx, evt, true)
	case murmurrpc.Server_Event_UserDisconnected:
		mc.relayPresence(ctx, evt, false)
	case murmurrpc.Server_Event_UserTextMessage:
		mc.relayMurmurText(ctx, evt)
	default:
		mc.log.Trace().Stringer("event_type", evt.GetType()).Msg("Ignoring Murmur event")
	}
}

// relayPresence sends a connect/disconnect notice to every room whose link
// opted into join/part relay. No opted-in rooms means no work at all.
func (mc *MumbleConnector) relayPresence(ctx context.Context, evt *murmurrpc.Server_Event, connected bool) {
	rooms := mc.links.JoinPartRooms()
	if len(rooms) == 0 {
		return
	}

	content := PresenceNoticeContent(evt.GetUser().GetName(), connected)
	for _, roomID := range rooms {
		if err := mc.matrix.SendMessage(ctx, "", roomID, content); err != nil {
			mc.log.Error().Err(err).
				Str("room_id", string(roomID)).
				Bool("connected", connected).
				Msg("Failed to send presence notice")
		}
	}
}

// relayMurmurText fans a Mumble text message out to every room linked to
// any of its target channels. Duplicates are preserved: a room linked to
// two of the message's channels gets two sends. A failure for one room
// never blocks the others.
func (mc *MumbleConnector) relayMurmurText(ctx context.Context, evt *murmurrpc.Server_Event) {
	msg := evt.GetMessage()
	if msg == nil {
		return
	}

	var channelIDs []uint32
	for _, channel := range msg.GetChannels() {
		channelIDs = append(channelIDs, channel.GetId())
	}
	rooms := mc.links.RoomsForChannels(channelIDs)
	if len(rooms) == 0 {
		return
	}

	ghost := mc.config.GhostUserID(evt.GetUser().GetName())
	content := TextRelayContent(msg.GetText())
	for _, roomID := range rooms {
		if err := mc.matrix.SendMessage(ctx, ghost, roomID, content); err != nil {
			mc.log.Error().Err(err).
				Str("room_id", string(roomID)).
				Str("ghost", string(ghost)).
				Msg("Failed to relay text message")
		}
	}
}
