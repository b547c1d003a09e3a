// Copyright 2024-2026 Aiku AI

package connector

import (
	"maunium.net/go/mautrix/id"
)

// UnknownUserName is the sentinel substituted when a Murmur event carries
// no user name. It flows through the ghost localpart template like a real
// username so relaying never fails on a missing name.
const UnknownUserName = "err_unknown_user"

// GhostUserID derives the Matrix ghost identity for a Mumble username.
func (c *Config) GhostUserID(username string) id.UserID {
	if username == "" {
		username = UnknownUserName
	}
	return id.NewUserID(c.FormatUsername(username), c.Domain)
}

// DisplayNameFor picks the display name used when relaying a Matrix
// message to Mumble: the provided profile name if there is one, otherwise
// the sender's Matrix user ID verbatim.
func DisplayNameFor(sender id.UserID, provided string) string {
	if provided != "" {
		return provided
	}
	return string(sender)
}
