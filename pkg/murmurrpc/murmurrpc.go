// Copyright 2024-2026 Aiku AI

// Package murmurrpc contains a hand-maintained subset of the MurmurRPC
// protocol (the gRPC interface exposed by Murmur's grpc plugin). Only the
// messages and RPCs the bridge actually calls are kept; field numbers and
// the MurmurRPC.V1 method names match the upstream MurmurRPC.proto so the
// package stays wire-compatible with a real Murmur server.
//
// The messages follow the proto2 conventions of the upstream definition:
// optional scalar fields are pointers and carry nil-safe getters. They
// implement the legacy proto message interface, which the grpc-go proto
// codec adapts transparently. Upstream fields this subset does not declare
// land in unknown-field handling when a server sends them.
package murmurrpc

import "fmt"

// Void is the empty response message used by send-style RPCs.
type Void struct{}

func (m *Void) Reset()         { *m = Void{} }
func (m *Void) String() string { return "Void{}" }
func (*Void) ProtoMessage()    {}

// Server identifies a single virtual server instance on the Murmur process.
// Upstream fields the bridge never reads (uptime, field 3) are left
// undeclared so replies carrying them decode with those fields skipped as
// unknown.
type Server struct {
	Id      *uint32 `protobuf:"varint,1,opt,name=id"`
	Running *bool   `protobuf:"varint,2,opt,name=running"`
}

func (m *Server) Reset()         { *m = Server{} }
func (m *Server) String() string { return fmt.Sprintf("Server{Id: %v}", m.GetId()) }
func (*Server) ProtoMessage()    {}

func (m *Server) GetId() uint32 {
	if m != nil && m.Id != nil {
		return *m.Id
	}
	return 0
}

func (m *Server) GetRunning() bool {
	if m != nil && m.Running != nil {
		return *m.Running
	}
	return false
}

// Server_Query requests the list of all configured servers.
type Server_Query struct{}

func (m *Server_Query) Reset()         { *m = Server_Query{} }
func (m *Server_Query) String() string { return "Server_Query{}" }
func (*Server_Query) ProtoMessage()    {}

// Server_List is the response to a Server_Query.
type Server_List struct {
	Servers []*Server `protobuf:"bytes,1,rep,name=servers"`
}

func (m *Server_List) Reset()         { *m = Server_List{} }
func (m *Server_List) String() string { return fmt.Sprintf("Server_List{%d servers}", len(m.GetServers())) }
func (*Server_List) ProtoMessage()    {}

func (m *Server_List) GetServers() []*Server {
	if m != nil {
		return m.Servers
	}
	return nil
}

// Server_Event_Type enumerates the event kinds pushed on the ServerEvents stream.
type Server_Event_Type int32

const (
	Server_Event_UserConnected       Server_Event_Type = 0
	Server_Event_UserDisconnected    Server_Event_Type = 1
	Server_Event_UserStateChanged    Server_Event_Type = 2
	Server_Event_UserTextMessage     Server_Event_Type = 3
	Server_Event_ChannelCreated      Server_Event_Type = 4
	Server_Event_ChannelRemoved      Server_Event_Type = 5
	Server_Event_ChannelStateChanged Server_Event_Type = 6
)

var serverEventTypeNames = map[Server_Event_Type]string{
	Server_Event_UserConnected:       "UserConnected",
	Server_Event_UserDisconnected:    "UserDisconnected",
	Server_Event_UserStateChanged:    "UserStateChanged",
	Server_Event_UserTextMessage:     "UserTextMessage",
	Server_Event_ChannelCreated:      "ChannelCreated",
	Server_Event_ChannelRemoved:      "ChannelRemoved",
	Server_Event_ChannelStateChanged: "ChannelStateChanged",
}

func (x Server_Event_Type) Enum() *Server_Event_Type {
	p := new(Server_Event_Type)
	*p = x
	return p
}

func (x Server_Event_Type) String() string {
	if name, ok := serverEventTypeNames[x]; ok {
		return name
	}
	return fmt.Sprintf("Server_Event_Type(%d)", int32(x))
}

// Server_Event is a single event pushed by the ServerEvents stream.
type Server_Event struct {
	Server  *Server            `protobuf:"bytes,1,opt,name=server"`
	Type    *Server_Event_Type `protobuf:"varint,2,opt,name=type,enum=MurmurRPC.Server_Event_Type"`
	User    *User              `protobuf:"bytes,3,opt,name=user"`
	Message *TextMessage       `protobuf:"bytes,4,opt,name=message"`
	Channel *Channel           `protobuf:"bytes,5,opt,name=channel"`
}

func (m *Server_Event) Reset()         { *m = Server_Event{} }
func (m *Server_Event) String() string { return fmt.Sprintf("Server_Event{Type: %v}", m.GetType()) }
func (*Server_Event) ProtoMessage()    {}

func (m *Server_Event) GetType() Server_Event_Type {
	if m != nil && m.Type != nil {
		return *m.Type
	}
	return Server_Event_UserConnected
}

func (m *Server_Event) GetUser() *User {
	if m != nil {
		return m.User
	}
	return nil
}

func (m *Server_Event) GetMessage() *TextMessage {
	if m != nil {
		return m.Message
	}
	return nil
}

// User describes a connected user on a server.
type User struct {
	Server  *Server `protobuf:"bytes,1,opt,name=server"`
	Session *uint32 `protobuf:"varint,2,opt,name=session"`
	Id      *uint32 `protobuf:"varint,3,opt,name=id"`
	Name    *string `protobuf:"bytes,4,opt,name=name"`
}

func (m *User) Reset()         { *m = User{} }
func (m *User) String() string { return fmt.Sprintf("User{Name: %q}", m.GetName()) }
func (*User) ProtoMessage()    {}

func (m *User) GetName() string {
	if m != nil && m.Name != nil {
		return *m.Name
	}
	return ""
}

// Channel describes a channel on a server.
type Channel struct {
	Server *Server `protobuf:"bytes,1,opt,name=server"`
	Id     *uint32 `protobuf:"varint,2,opt,name=id"`
	Name   *string `protobuf:"bytes,3,opt,name=name"`
}

func (m *Channel) Reset()         { *m = Channel{} }
func (m *Channel) String() string { return fmt.Sprintf("Channel{Id: %d, Name: %q}", m.GetId(), m.GetName()) }
func (*Channel) ProtoMessage()    {}

func (m *Channel) GetId() uint32 {
	if m != nil && m.Id != nil {
		return *m.Id
	}
	return 0
}

func (m *Channel) GetName() string {
	if m != nil && m.Name != nil {
		return *m.Name
	}
	return ""
}

// Channel_Query requests the list of channels on a server.
type Channel_Query struct {
	Server *Server `protobuf:"bytes,1,opt,name=server"`
}

func (m *Channel_Query) Reset()         { *m = Channel_Query{} }
func (m *Channel_Query) String() string { return "Channel_Query{}" }
func (*Channel_Query) ProtoMessage()    {}

// Channel_List is the response to a Channel_Query.
type Channel_List struct {
	Server   *Server    `protobuf:"bytes,1,opt,name=server"`
	Channels []*Channel `protobuf:"bytes,2,rep,name=channels"`
}

func (m *Channel_List) Reset() { *m = Channel_List{} }
func (m *Channel_List) String() string {
	return fmt.Sprintf("Channel_List{%d channels}", len(m.GetChannels()))
}
func (*Channel_List) ProtoMessage() {}

func (m *Channel_List) GetChannels() []*Channel {
	if m != nil {
		return m.Channels
	}
	return nil
}

// TextMessage is a text message addressed to users, channels, or channel trees.
type TextMessage struct {
	Server   *Server    `protobuf:"bytes,1,opt,name=server"`
	Actor    *User      `protobuf:"bytes,2,opt,name=actor"`
	Users    []*User    `protobuf:"bytes,3,rep,name=users"`
	Channels []*Channel `protobuf:"bytes,4,rep,name=channels"`
	Trees    []*Channel `protobuf:"bytes,5,rep,name=trees"`
	Text     *string    `protobuf:"bytes,6,opt,name=text"`
}

func (m *TextMessage) Reset()         { *m = TextMessage{} }
func (m *TextMessage) String() string { return fmt.Sprintf("TextMessage{Text: %q}", m.GetText()) }
func (*TextMessage) ProtoMessage()    {}

func (m *TextMessage) GetText() string {
	if m != nil && m.Text != nil {
		return *m.Text
	}
	return ""
}

func (m *TextMessage) GetChannels() []*Channel {
	if m != nil {
		return m.Channels
	}
	return nil
}
