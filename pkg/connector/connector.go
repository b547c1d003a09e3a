// Copyright 2024-2026 Aiku AI

package connector

import (
	"context"

	"github.com/rs/zerolog"
	"maunium.net/go/mautrix/appservice"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

// matrixSender is the slice of the appservice the engine uses to deliver
// messages. An empty sender means the bridge bot; any other value selects
// the ghost intent for that user.
type matrixSender interface {
	SendMessage(ctx context.Context, sender id.UserID, roomID id.RoomID, content *event.MessageEventContent) error
}

// profileFetcher looks up a Matrix user's display name. A miss or failure
// is an empty string, never an error; callers fall back to the MXID.
type profileFetcher interface {
	GetDisplayName(ctx context.Context, userID id.UserID) string
}

// MumbleConnector is the bridge core: it owns the Murmur client and the
// link resolver, consumes the Murmur event stream, and accepts Matrix
// events from the appservice's event processor.
type MumbleConnector struct {
	config Config
	log    zerolog.Logger

	murmur *MurmurClient
	links  *RoomLinkResolver

	matrix   matrixSender
	profiles profileFetcher
	media    mediaResolver

	botMXID     id.UserID
	ghostPrefix string
}

// NewMumbleConnector creates a connector from a post-processed config.
func NewMumbleConnector(config Config) *MumbleConnector {
	return &MumbleConnector{config: config}
}

// Init wires the connector to the appservice and builds its components.
// Must be called before Start.
func (mc *MumbleConnector) Init(as *appservice.AppService, log zerolog.Logger) {
	mc.log = log.With().Str("component", "connector").Logger()
	mc.murmur = NewMurmurClient(log)
	mc.links = NewRoomLinkResolver(newConfigLinkStore(mc.config.Links))

	api := &appserviceAPI{as: as}
	mc.matrix = api
	mc.profiles = api
	mc.media = api

	mc.botMXID = as.BotMXID()
	mc.ghostPrefix = mc.config.GhostPrefix()
}

// Start connects to Murmur, discovers the running server, and launches the
// event loop. Discovery failures are fatal for the process and returned to
// the caller, which owns termination; nothing here exits directly.
func (mc *MumbleConnector) Start(ctx context.Context) error {
	if err := mc.murmur.Connect(mc.config.MurmurAddress); err != nil {
		return err
	}
	if err := mc.murmur.DiscoverServer(ctx); err != nil {
		return err
	}
	stream, err := mc.murmur.OpenEventStream(ctx)
	if err != nil {
		return err
	}
	go mc.runEventLoop(ctx, stream)
	return nil
}

// Stop closes the Murmur connection, which also ends the event stream.
func (mc *MumbleConnector) Stop() {
	mc.murmur.Close()
}

// appserviceAPI adapts the mautrix appservice to the engine's narrow
// matrixSender, profileFetcher, and mediaResolver interfaces.
type appserviceAPI struct {
	as *appservice.AppService
}

func (a *appserviceAPI) SendMessage(ctx context.Context, sender id.UserID, roomID id.RoomID, content *event.MessageEventContent) error {
	intent := a.as.BotIntent()
	if sender != "" {
		intent = a.as.Intent(sender)
	}
	_, err := intent.SendMessageEvent(ctx, roomID, event.EventMessage, content)
	return err
}

func (a *appserviceAPI) GetDisplayName(ctx context.Context, userID id.UserID) string {
	resp, err := a.as.BotIntent().GetDisplayName(ctx, userID)
	if err != nil || resp == nil {
		return ""
	}
	return resp.DisplayName
}

// ResolveMediaURL turns an mxc:// URI into the homeserver's download URL.
// Unparseable URIs resolve to empty, which the formatter treats as an
// unresolvable attachment.
func (a *appserviceAPI) ResolveMediaURL(mxc string) string {
	uri, err := id.ParseContentURI(mxc)
	if err != nil {
		return ""
	}
	hsURL := a.as.BotClient().HomeserverURL
	if hsURL == nil {
		return ""
	}
	return hsURL.JoinPath("_matrix", "media", "v3", "download", uri.Homeserver, uri.FileID).String()
}
