// Copyright 2024-2026 Aiku AI

package connector

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
	"maunium.net/go/mautrix/id"
)

//go:embed example-config.yaml
var ExampleConfig string

// LinkConfig declares a single channel-room link in the config file.
// Links are static configuration for this bridge; the link store reading
// them is swappable for deployments that keep links elsewhere.
type LinkConfig struct {
	ChannelID uint32    `yaml:"channel_id"`
	RoomID    id.RoomID `yaml:"room_id"`
	// SendJoinPart controls whether connect/disconnect notices for the
	// Mumble server are relayed into the linked room.
	SendJoinPart bool `yaml:"send_join_part"`
}

// Config holds the Mumble connector configuration.
type Config struct {
	// Domain is the Matrix homeserver domain ghost user IDs are scoped to.
	Domain string `yaml:"domain"`
	// MurmurAddress is the host:port of the Murmur gRPC interface.
	MurmurAddress string `yaml:"murmur_address"`
	// UsernameTemplate produces ghost localparts from Mumble usernames.
	// Defaults to mumble_{{.}}.
	UsernameTemplate string `yaml:"username_template"`

	Links []LinkConfig `yaml:"links"`

	usernameTemplate *template.Template `yaml:"-"`
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type rawConfig Config
	return node.Decode((*rawConfig)(c))
}

func (c *Config) PostProcess() error {
	if c.Domain == "" {
		return fmt.Errorf("config: domain must be set")
	}
	if c.MurmurAddress == "" {
		return fmt.Errorf("config: murmur_address must be set")
	}
	if c.UsernameTemplate == "" {
		c.UsernameTemplate = "mumble_{{.}}"
	}
	var err error
	c.usernameTemplate, err = template.New("username").Parse(c.UsernameTemplate)
	if err != nil {
		return fmt.Errorf("config: invalid username_template: %w", err)
	}
	return nil
}

// FormatUsername renders the ghost localpart for a Mumble username.
func (c *Config) FormatUsername(username string) string {
	if c.usernameTemplate == nil {
		return "mumble_" + username
	}
	var buf strings.Builder
	if err := c.usernameTemplate.Execute(&buf, username); err != nil {
		return "mumble_" + username
	}
	return buf.String()
}

// GhostPrefix returns the localpart prefix shared by all ghost users, used
// for echo prevention on the Matrix side.
func (c *Config) GhostPrefix() string {
	return c.FormatUsername("")
}
