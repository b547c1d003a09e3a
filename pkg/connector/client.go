// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/proto"

	"github.com/aiku/mautrix-mumble/pkg/murmurrpc"
)

var (
	// ErrNotConnected is returned when an operation needs the gRPC channel
	// or the discovered server before setup has established them.
	ErrNotConnected = errors.New("murmur: not connected")
	// ErrNoRunningServer is returned by discovery when no configured server
	// is running. There is nothing to bridge; the caller is expected to
	// treat this as fatal.
	ErrNoRunningServer = errors.New("murmur: no running server found")
)

// MurmurClient talks to the Murmur gRPC interface: server discovery, the
// event stream, channel lookup, and text sends. The active server is
// written exactly once by DiscoverServer and read thereafter.
type MurmurClient struct {
	log zerolog.Logger

	conn *grpc.ClientConn
	rpc  murmurrpc.V1Client

	serverMu sync.RWMutex
	server   *murmurrpc.Server
}

// NewMurmurClient creates an unconnected client.
func NewMurmurClient(log zerolog.Logger) *MurmurClient {
	return &MurmurClient{
		log: log.With().Str("component", "murmur_client").Logger(),
	}
}

// Connect establishes the gRPC channel. Dialing is lazy: an unreachable
// address does not fail here but on the first RPC.
func (m *MurmurClient) Connect(addr string) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to create murmur gRPC client: %w", err)
	}
	m.conn = conn
	m.rpc = murmurrpc.NewV1Client(conn)
	m.log.Info().Str("address", addr).Msg("Murmur gRPC channel created")
	return nil
}

// Close tears down the gRPC channel, ending the event stream.
func (m *MurmurClient) Close() {
	if m.conn != nil {
		_ = m.conn.Close()
	}
}

// DiscoverServer queries all servers and records the first one that is
// running. Both failure modes (no connection, nothing running) are fatal
// for the process; the error is returned rather than exiting so the caller
// owns termination.
func (m *MurmurClient) DiscoverServer(ctx context.Context) error {
	if m.rpc == nil {
		return ErrNotConnected
	}
	resp, err := m.rpc.ServerQuery(ctx, &murmurrpc.Server_Query{})
	if err != nil {
		return fmt.Errorf("server query failed: %w", err)
	}
	for _, server := range resp.GetServers() {
		if server.GetRunning() {
			m.serverMu.Lock()
			m.server = server
			m.serverMu.Unlock()
			m.log.Info().Uint32("server_id", server.GetId()).Msg("Discovered running Murmur server")
			return nil
		}
	}
	return ErrNoRunningServer
}

// ActiveServer returns the discovered server, or ErrNotConnected if
// discovery has not completed yet.
func (m *MurmurClient) ActiveServer() (*murmurrpc.Server, error) {
	m.serverMu.RLock()
	defer m.serverMu.RUnlock()
	if m.server == nil {
		return nil, ErrNotConnected
	}
	return m.server, nil
}

// OpenEventStream subscribes to the active server's event stream. The
// stream is continuous and order-preserving for as long as the underlying
// connection stays open; it is not restartable.
func (m *MurmurClient) OpenEventStream(ctx context.Context) (murmurrpc.V1_ServerEventsClient, error) {
	server, err := m.ActiveServer()
	if err != nil {
		return nil, err
	}
	stream, err := m.rpc.ServerEvents(ctx, server)
	if err != nil {
		return nil, fmt.Errorf("failed to open server event stream: %w", err)
	}
	return stream, nil
}

// LookupChannelID returns the id of the first channel on the active server
// whose trimmed name equals the trimmed query, case-sensitively. A miss is
// (0, false, nil), not an error; errors are transport failures only.
func (m *MurmurClient) LookupChannelID(ctx context.Context, name string) (uint32, bool, error) {
	server, err := m.ActiveServer()
	if err != nil {
		return 0, false, err
	}
	resp, err := m.rpc.ChannelQuery(ctx, &murmurrpc.Channel_Query{Server: server})
	if err != nil {
		return 0, false, fmt.Errorf("channel query failed: %w", err)
	}
	want := strings.TrimSpace(name)
	for _, channel := range resp.GetChannels() {
		if strings.TrimSpace(channel.GetName()) == want {
			return channel.GetId(), true, nil
		}
	}
	return 0, false, nil
}

// SendText sends a text message to the given channels on the active
// server. Fire-and-forget: nothing is retried and failures are only
// logged. Before discovery completes this logs and does nothing.
func (m *MurmurClient) SendText(ctx context.Context, text string, channelIDs []uint32) {
	server, err := m.ActiveServer()
	if err != nil {
		m.log.Warn().Err(err).Msg("Dropping text message, no active server")
		return
	}

	msg := &murmurrpc.TextMessage{
		Server: server,
		Text:   proto.String(text),
	}
	for _, channelID := range channelIDs {
		msg.Channels = append(msg.Channels, &murmurrpc.Channel{Id: proto.Uint32(channelID)})
	}

	if _, err := m.rpc.TextMessageSend(ctx, msg); err != nil {
		m.log.Error().Err(err).Uints32("channel_ids", channelIDs).Msg("Failed to send text message")
	}
}
