// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"

	"github.com/aiku/mautrix-mumble/pkg/murmurrpc"
)

// fakeRPC is an in-memory murmurrpc.V1Client with canned responses and
// recorded text sends.
type fakeRPC struct {
	mu sync.Mutex

	servers  []*murmurrpc.Server
	channels []*murmurrpc.Channel

	serverQueryErr  error
	channelQueryErr error
	textSendErr     error

	sent []*murmurrpc.TextMessage
}

func (f *fakeRPC) ServerQuery(_ context.Context, _ *murmurrpc.Server_Query, _ ...grpc.CallOption) (*murmurrpc.Server_List, error) {
	if f.serverQueryErr != nil {
		return nil, f.serverQueryErr
	}
	return &murmurrpc.Server_List{Servers: f.servers}, nil
}

func (f *fakeRPC) ServerEvents(_ context.Context, _ *murmurrpc.Server, _ ...grpc.CallOption) (murmurrpc.V1_ServerEventsClient, error) {
	return nil, errors.New("fakeRPC does not implement streams")
}

func (f *fakeRPC) ChannelQuery(_ context.Context, _ *murmurrpc.Channel_Query, _ ...grpc.CallOption) (*murmurrpc.Channel_List, error) {
	if f.channelQueryErr != nil {
		return nil, f.channelQueryErr
	}
	return &murmurrpc.Channel_List{Channels: f.channels}, nil
}

func (f *fakeRPC) TextMessageSend(_ context.Context, in *murmurrpc.TextMessage, _ ...grpc.CallOption) (*murmurrpc.Void, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.textSendErr != nil {
		return nil, f.textSendErr
	}
	f.sent = append(f.sent, in)
	return &murmurrpc.Void{}, nil
}

func (f *fakeRPC) Sent() []*murmurrpc.TextMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]*murmurrpc.TextMessage, len(f.sent))
	copy(cp, f.sent)
	return cp
}

// fakeEventStream feeds a fixed event sequence, then returns io.EOF (or a
// configured error).
type fakeEventStream struct {
	events []*murmurrpc.Server_Event
	idx    int
	err    error
}

func (f *fakeEventStream) Recv() (*murmurrpc.Server_Event, error) {
	if f.idx < len(f.events) {
		evt := f.events[f.idx]
		f.idx++
		return evt, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, io.EOF
}

// matrixCall records a single SendMessage invocation.
type matrixCall struct {
	Sender  id.UserID
	RoomID  id.RoomID
	Content *event.MessageEventContent
}

// mockMatrixSender captures sends for assertions. Rooms in blocked make
// the send wait until the channel is closed; rooms in failRooms fail.
type mockMatrixSender struct {
	mu        sync.Mutex
	calls     []matrixCall
	blocked   map[id.RoomID]chan struct{}
	failRooms map[id.RoomID]bool
}

func (m *mockMatrixSender) SendMessage(_ context.Context, sender id.UserID, roomID id.RoomID, content *event.MessageEventContent) error {
	m.mu.Lock()
	ch := m.blocked[roomID]
	m.mu.Unlock()
	if ch != nil {
		<-ch
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRooms[roomID] {
		return errors.New("mock send failure")
	}
	m.calls = append(m.calls, matrixCall{Sender: sender, RoomID: roomID, Content: content})
	return nil
}

func (m *mockMatrixSender) Calls() []matrixCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]matrixCall, len(m.calls))
	copy(cp, m.calls)
	return cp
}

type fakeProfiles struct {
	names map[id.UserID]string
}

func (f *fakeProfiles) GetDisplayName(_ context.Context, userID id.UserID) string {
	return f.names[userID]
}

type fakeMedia struct {
	urls map[string]string
}

func (f *fakeMedia) ResolveMediaURL(mxc string) string {
	return f.urls[mxc]
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func newTestConfig(t *testing.T, links []LinkConfig) Config {
	t.Helper()
	cfg := Config{
		Domain:        "example.com",
		MurmurAddress: "localhost:50051",
		Links:         links,
	}
	if err := cfg.PostProcess(); err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	return cfg
}

// newTestConnector builds a connector wired to fakes, with the Murmur
// server already discovered.
func newTestConnector(t *testing.T, links []LinkConfig) (*MumbleConnector, *fakeRPC, *mockMatrixSender) {
	t.Helper()
	cfg := newTestConfig(t, links)
	rpc := &fakeRPC{}
	sender := &mockMatrixSender{}
	mc := &MumbleConnector{
		config: cfg,
		log:    zerolog.Nop(),
		murmur: &MurmurClient{
			log:    zerolog.Nop(),
			rpc:    rpc,
			server: &murmurrpc.Server{Id: proto.Uint32(1), Running: proto.Bool(true)},
		},
		links:       NewRoomLinkResolver(newConfigLinkStore(links)),
		matrix:      sender,
		profiles:    &fakeProfiles{},
		media:       &fakeMedia{},
		botMXID:     id.UserID("@mumblebridge:example.com"),
		ghostPrefix: cfg.GhostPrefix(),
	}
	return mc, rpc, sender
}

func newPresenceEvent(eventType murmurrpc.Server_Event_Type, username string) *murmurrpc.Server_Event {
	evt := &murmurrpc.Server_Event{Type: eventType.Enum()}
	if username != "" {
		evt.User = &murmurrpc.User{Name: proto.String(username)}
	}
	return evt
}

func newTextEvent(username, text string, channelIDs ...uint32) *murmurrpc.Server_Event {
	msg := &murmurrpc.TextMessage{Text: proto.String(text)}
	for _, channelID := range channelIDs {
		msg.Channels = append(msg.Channels, &murmurrpc.Channel{Id: proto.Uint32(channelID)})
	}
	evt := &murmurrpc.Server_Event{
		Type:    murmurrpc.Server_Event_UserTextMessage.Enum(),
		Message: msg,
	}
	if username != "" {
		evt.User = &murmurrpc.User{Name: proto.String(username)}
	}
	return evt
}

func newMatrixMessage(sender id.UserID, roomID id.RoomID, content *event.MessageEventContent) *event.Event {
	return &event.Event{
		Type:    event.EventMessage,
		Sender:  sender,
		RoomID:  roomID,
		Content: event.Content{Parsed: content},
	}
}
