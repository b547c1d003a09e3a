// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package connector implements a Matrix-Mumble bridge over Murmur's gRPC
// interface.
//
// The bridge consumes the server-push event stream of the single running
// Murmur server, translates user connect/disconnect notices and channel
// text messages into Matrix events, and relays Matrix room messages back
// into the linked Mumble channels. Each Mumble user appears in Matrix as a
// ghost user (@mumble_<name>:<domain>); Matrix senders appear in Mumble as
// "<display name>: <body>" text messages.
//
// # Core Types
//
// [MumbleConnector] orchestrates everything: it runs the event loop over
// the Murmur stream and handles Matrix events from the appservice's event
// processor. Per-event handling is dispatched on its own goroutine and
// never awaited, so slow Matrix I/O cannot stall the stream; the cost is
// that messages from back-to-back events may land out of order.
//
// [MurmurClient] wraps the MurmurRPC.V1 gRPC client: server discovery
// (first running server wins), the event stream, channel lookup by name,
// and fire-and-forget text sends.
//
// [RoomLinkResolver] answers which Matrix rooms a channel relays to and
// vice versa, reading a [LinkStore]. Links are many-to-many and carry a
// send_join_part flag for presence notices.
//
// # HTML Passthrough
//
// Mumble text messages are HTML and Matrix formatted bodies are HTML, so
// message bodies cross the bridge verbatim in both directions with no
// escaping or sanitization. That makes formatting lossless but means each
// network trusts the other's HTML; deployments bridging untrusted servers
// should be aware of it.
package connector
