// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"

	"github.com/aiku/mautrix-mumble/pkg/murmurrpc"
)

func newTestMurmurClient(rpc murmurrpc.V1Client) *MurmurClient {
	return &MurmurClient{log: zerolog.Nop(), rpc: rpc}
}

func TestDiscoverServer_PicksFirstRunning(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{servers: []*murmurrpc.Server{
		{Id: proto.Uint32(1), Running: proto.Bool(false)},
		{Id: proto.Uint32(2), Running: proto.Bool(true)},
		{Id: proto.Uint32(3), Running: proto.Bool(true)},
	}}
	m := newTestMurmurClient(rpc)

	if err := m.DiscoverServer(context.Background()); err != nil {
		t.Fatalf("DiscoverServer: %v", err)
	}
	server, err := m.ActiveServer()
	if err != nil {
		t.Fatalf("ActiveServer: %v", err)
	}
	if server.GetId() != 2 {
		t.Errorf("discovered server id: got %d, want 2", server.GetId())
	}
}

func TestDiscoverServer_OrderIndependent(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{servers: []*murmurrpc.Server{
		{Id: proto.Uint32(7), Running: proto.Bool(true)},
		{Id: proto.Uint32(1), Running: proto.Bool(false)},
	}}
	m := newTestMurmurClient(rpc)

	if err := m.DiscoverServer(context.Background()); err != nil {
		t.Fatalf("DiscoverServer: %v", err)
	}
	server, _ := m.ActiveServer()
	if server.GetId() != 7 {
		t.Errorf("discovered server id: got %d, want 7", server.GetId())
	}
}

func TestDiscoverServer_NoneRunning(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{servers: []*murmurrpc.Server{
		{Id: proto.Uint32(1), Running: proto.Bool(false)},
	}}
	m := newTestMurmurClient(rpc)

	if err := m.DiscoverServer(context.Background()); !errors.Is(err, ErrNoRunningServer) {
		t.Errorf("DiscoverServer error: got %v, want ErrNoRunningServer", err)
	}
}

func TestDiscoverServer_NotConnected(t *testing.T) {
	t.Parallel()
	m := &MurmurClient{log: zerolog.Nop()}
	if err := m.DiscoverServer(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("DiscoverServer error: got %v, want ErrNotConnected", err)
	}
}

func TestActiveServer_BeforeDiscovery(t *testing.T) {
	t.Parallel()
	m := newTestMurmurClient(&fakeRPC{})
	if _, err := m.ActiveServer(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("ActiveServer error: got %v, want ErrNotConnected", err)
	}
}

func discoveredClient(t *testing.T, rpc *fakeRPC) *MurmurClient {
	t.Helper()
	rpc.servers = append(rpc.servers, &murmurrpc.Server{Id: proto.Uint32(1), Running: proto.Bool(true)})
	m := newTestMurmurClient(rpc)
	if err := m.DiscoverServer(context.Background()); err != nil {
		t.Fatalf("DiscoverServer: %v", err)
	}
	return m
}

func TestLookupChannelID_TrimmedCaseSensitive(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{channels: []*murmurrpc.Channel{
		{Id: proto.Uint32(10), Name: proto.String("General")},
		{Id: proto.Uint32(11), Name: proto.String("general ")},
	}}
	m := discoveredClient(t, rpc)

	channelID, found, err := m.LookupChannelID(context.Background(), "general")
	if err != nil {
		t.Fatalf("LookupChannelID: %v", err)
	}
	if !found || channelID != 11 {
		t.Errorf(`lookup "general": got (%d, %v), want (11, true)`, channelID, found)
	}

	channelID, found, err = m.LookupChannelID(context.Background(), "General")
	if err != nil {
		t.Fatalf("LookupChannelID: %v", err)
	}
	if !found || channelID != 10 {
		t.Errorf(`lookup "General": got (%d, %v), want (10, true)`, channelID, found)
	}
}

func TestLookupChannelID_Miss(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{channels: []*murmurrpc.Channel{
		{Id: proto.Uint32(10), Name: proto.String("General")},
	}}
	m := discoveredClient(t, rpc)

	_, found, err := m.LookupChannelID(context.Background(), "no-such-channel")
	if err != nil {
		t.Fatalf("LookupChannelID: %v", err)
	}
	if found {
		t.Error("lookup miss should report not found, not an error")
	}
}

func TestLookupChannelID_TransportError(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{channelQueryErr: errors.New("transport down")}
	m := discoveredClient(t, rpc)

	_, found, err := m.LookupChannelID(context.Background(), "General")
	if err == nil {
		t.Fatal("transport failure should surface as an error")
	}
	if found {
		t.Error("transport failure must not report a match")
	}
}

func TestSendText_AddressesServerAndChannels(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{}
	m := discoveredClient(t, rpc)

	m.SendText(context.Background(), "alice: hi", []uint32{3, 5})

	sent := rpc.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent messages: got %d, want 1", len(sent))
	}
	msg := sent[0]
	if msg.Server.GetId() != 1 {
		t.Errorf("message server id: got %d, want 1", msg.Server.GetId())
	}
	if msg.GetText() != "alice: hi" {
		t.Errorf("message text: got %q, want %q", msg.GetText(), "alice: hi")
	}
	channels := msg.GetChannels()
	if len(channels) != 2 || channels[0].GetId() != 3 || channels[1].GetId() != 5 {
		t.Errorf("message channels: got %v, want ids [3 5]", channels)
	}
}

func TestSendText_BeforeDiscovery(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{}
	m := newTestMurmurClient(rpc)

	// No active server: the send is dropped without an RPC call.
	m.SendText(context.Background(), "hi", []uint32{1})
	if len(rpc.Sent()) != 0 {
		t.Errorf("sent messages: got %d, want 0", len(rpc.Sent()))
	}
}

func TestSendText_TransportErrorIsSwallowed(t *testing.T) {
	t.Parallel()
	rpc := &fakeRPC{textSendErr: errors.New("transport down")}
	m := discoveredClient(t, rpc)

	// Fire-and-forget: the failure is logged, never returned.
	m.SendText(context.Background(), "hi", []uint32{1})
}
