// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Command mautrix-mumble is a Matrix-Mumble bridge. It connects to a
// Murmur server's gRPC interface, relays channel text messages and
// connect/disconnect notices into linked Matrix rooms, and relays Matrix
// room messages back into the linked Mumble channels.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.mau.fi/util/exzerolog"
	"go.mau.fi/zeroconfig"
	"gopkg.in/yaml.v3"
	flag "maunium.net/go/mauflag"
	"maunium.net/go/mautrix/appservice"
	"maunium.net/go/mautrix/event"

	"github.com/aiku/mautrix-mumble/pkg/connector"
)

// These are filled at build time with -ldflags.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  = flag.MakeFull("c", "config", "The path to your config file.", "config.yaml").String()
	version     = flag.MakeFull("v", "version", "View bridge version and quit.", "false").Bool()
	wantHelp, _ = flag.MakeHelpFlag()
)

// BridgeConfig is the top-level config file structure.
type BridgeConfig struct {
	Homeserver struct {
		// Address is the client-server API URL of the homeserver.
		Address string `yaml:"address"`
		Domain  string `yaml:"domain"`
	} `yaml:"homeserver"`
	Appservice struct {
		Hostname string `yaml:"hostname"`
		Port     uint16 `yaml:"port"`
		// Registration is the path to the appservice registration file.
		Registration string `yaml:"registration"`
	} `yaml:"appservice"`
	Mumble  connector.Config  `yaml:"mumble"`
	Logging zeroconfig.Config `yaml:"logging"`
}

func loadConfig(path string) (*BridgeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg BridgeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Mumble.PostProcess(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	flag.SetHelpTitles(
		"mautrix-mumble - A Matrix-Mumble bridge.",
		"mautrix-mumble [-h] [-v] [-c <path>]")
	if err := flag.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.PrintHelp()
		os.Exit(1)
	} else if *wantHelp {
		flag.PrintHelp()
		os.Exit(0)
	} else if *version {
		fmt.Printf("mautrix-mumble %s (%s, built %s)\n", Tag, Commit, BuildTime)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := cfg.Logging.Compile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to configure logger:", err)
		os.Exit(1)
	}
	exzerolog.SetupDefaults(log)

	as := appservice.Create()
	as.Log = log.With().Str("component", "appservice").Logger()
	as.HomeserverDomain = cfg.Homeserver.Domain
	if err := as.SetHomeserverURL(cfg.Homeserver.Address); err != nil {
		log.Fatal().Err(err).Msg("Invalid homeserver address")
	}
	as.Host = appservice.HostConfig{
		Hostname: cfg.Appservice.Hostname,
		Port:     cfg.Appservice.Port,
	}
	as.Registration, err = appservice.LoadRegistration(cfg.Appservice.Registration)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load appservice registration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = log.WithContext(ctx)

	conn := connector.NewMumbleConnector(cfg.Mumble)
	conn.Init(as, *log)

	ep := appservice.NewEventProcessor(as)
	ep.On(event.EventMessage, conn.HandleMatrixEvent)

	go as.Start()
	go ep.Start(ctx)

	// Discovery failures (no connection, no running server) are fatal:
	// there is nothing to bridge and no degraded mode worth running.
	if err := conn.Start(ctx); err != nil {
		log.WithLevel(zerolog.FatalLevel).Err(err).Msg("Failed to start Mumble connector")
		os.Exit(1)
	}
	log.Info().Str("version", Tag).Msg("Bridge started")

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	conn.Stop()
	ep.Stop()
	as.Stop()
}
