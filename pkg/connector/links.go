// Copyright 2024-2026 Aiku AI

package connector

import (
	"maunium.net/go/mautrix/id"
)

// LinkData is the metadata attached to a channel-room link.
type LinkData struct {
	SendJoinPart bool `yaml:"send_join_part" json:"send_join_part"`
}

// RoomLink is a single persisted association between a Mumble channel and
// a Matrix room. The store owning these is external to the engine; the
// engine only ever reads them.
type RoomLink struct {
	ChannelID uint32
	RoomID    id.RoomID
	Data      LinkData
}

// LinkStore is the read view over externally-owned link state.
type LinkStore interface {
	GetLinkedRooms(channelID uint32) []RoomLink
	GetLinkedChannels(roomID id.RoomID) []RoomLink
	GetEntriesByLinkData(filter LinkData) []RoomLink
}

// RoomLinkResolver answers which rooms a channel's traffic goes to and
// vice versa. Purely a read layer; no side effects.
type RoomLinkResolver struct {
	store LinkStore
}

func NewRoomLinkResolver(store LinkStore) *RoomLinkResolver {
	return &RoomLinkResolver{store: store}
}

// RoomsForChannel returns the rooms linked to a single channel, in store order.
func (r *RoomLinkResolver) RoomsForChannel(channelID uint32) []id.RoomID {
	var rooms []id.RoomID
	for _, link := range r.store.GetLinkedRooms(channelID) {
		rooms = append(rooms, link.RoomID)
	}
	return rooms
}

// RoomsForChannels concatenates RoomsForChannel over the given ids in input
// order. Duplicates are preserved: a room linked to two of the channels
// appears twice and receives two independent sends.
func (r *RoomLinkResolver) RoomsForChannels(channelIDs []uint32) []id.RoomID {
	var rooms []id.RoomID
	for _, channelID := range channelIDs {
		rooms = append(rooms, r.RoomsForChannel(channelID)...)
	}
	return rooms
}

// JoinPartRooms returns every room whose link requests connect/disconnect
// notices. An empty result means presence events are dropped entirely.
func (r *RoomLinkResolver) JoinPartRooms() []id.RoomID {
	var rooms []id.RoomID
	for _, link := range r.store.GetEntriesByLinkData(LinkData{SendJoinPart: true}) {
		rooms = append(rooms, link.RoomID)
	}
	return rooms
}

// ChannelsForRoom returns the channels a Matrix room's messages relay to.
func (r *RoomLinkResolver) ChannelsForRoom(roomID id.RoomID) []uint32 {
	var channels []uint32
	for _, link := range r.store.GetLinkedChannels(roomID) {
		channels = append(channels, link.ChannelID)
	}
	return channels
}

// configLinkStore serves links declared statically in the bridge config.
type configLinkStore struct {
	links []RoomLink
}

func newConfigLinkStore(links []LinkConfig) *configLinkStore {
	store := &configLinkStore{}
	for _, l := range links {
		store.links = append(store.links, RoomLink{
			ChannelID: l.ChannelID,
			RoomID:    l.RoomID,
			Data:      LinkData{SendJoinPart: l.SendJoinPart},
		})
	}
	return store
}

func (s *configLinkStore) GetLinkedRooms(channelID uint32) []RoomLink {
	var out []RoomLink
	for _, link := range s.links {
		if link.ChannelID == channelID {
			out = append(out, link)
		}
	}
	return out
}

func (s *configLinkStore) GetLinkedChannels(roomID id.RoomID) []RoomLink {
	var out []RoomLink
	for _, link := range s.links {
		if link.RoomID == roomID {
			out = append(out, link)
		}
	}
	return out
}

func (s *configLinkStore) GetEntriesByLinkData(filter LinkData) []RoomLink {
	var out []RoomLink
	for _, link := range s.links {
		if link.Data == filter {
			out = append(out, link)
		}
	}
	return out
}
