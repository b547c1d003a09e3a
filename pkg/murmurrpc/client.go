// Copyright 2024-2026 Aiku AI

package murmurrpc

import (
	"context"

	"google.golang.org/grpc"
)

// V1Client is the client API for the MurmurRPC.V1 service, restricted to
// the RPCs the bridge uses.
type V1Client interface {
	// ServerQuery returns all servers configured on the Murmur process.
	ServerQuery(ctx context.Context, in *Server_Query, opts ...grpc.CallOption) (*Server_List, error)
	// ServerEvents subscribes to the event stream of a single server.
	ServerEvents(ctx context.Context, in *Server, opts ...grpc.CallOption) (V1_ServerEventsClient, error)
	// ChannelQuery returns all channels on a server.
	ChannelQuery(ctx context.Context, in *Channel_Query, opts ...grpc.CallOption) (*Channel_List, error)
	// TextMessageSend sends a text message to the addressed users and channels.
	TextMessageSend(ctx context.Context, in *TextMessage, opts ...grpc.CallOption) (*Void, error)
}

type v1Client struct {
	cc grpc.ClientConnInterface
}

// NewV1Client creates a MurmurRPC.V1 client on the given connection.
func NewV1Client(cc grpc.ClientConnInterface) V1Client {
	return &v1Client{cc: cc}
}

func (c *v1Client) ServerQuery(ctx context.Context, in *Server_Query, opts ...grpc.CallOption) (*Server_List, error) {
	out := new(Server_List)
	err := c.cc.Invoke(ctx, "/MurmurRPC.V1/ServerQuery", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

var serverEventsStreamDesc = &grpc.StreamDesc{
	StreamName:    "ServerEvents",
	ServerStreams: true,
}

func (c *v1Client) ServerEvents(ctx context.Context, in *Server, opts ...grpc.CallOption) (V1_ServerEventsClient, error) {
	stream, err := c.cc.NewStream(ctx, serverEventsStreamDesc, "/MurmurRPC.V1/ServerEvents", opts...)
	if err != nil {
		return nil, err
	}
	x := &v1ServerEventsClient{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// V1_ServerEventsClient is the client side of the ServerEvents stream.
type V1_ServerEventsClient interface {
	Recv() (*Server_Event, error)
	grpc.ClientStream
}

type v1ServerEventsClient struct {
	grpc.ClientStream
}

func (x *v1ServerEventsClient) Recv() (*Server_Event, error) {
	m := new(Server_Event)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *v1Client) ChannelQuery(ctx context.Context, in *Channel_Query, opts ...grpc.CallOption) (*Channel_List, error) {
	out := new(Channel_List)
	err := c.cc.Invoke(ctx, "/MurmurRPC.V1/ChannelQuery", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *v1Client) TextMessageSend(ctx context.Context, in *TextMessage, opts ...grpc.CallOption) (*Void, error) {
	out := new(Void)
	err := c.cc.Invoke(ctx, "/MurmurRPC.V1/TextMessageSend", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
