// Package module is the host-facing surface: it registers the settings
// entry and lifecycle hooks, and exposes the two public operations,
// reroll-selected and resolve-reference.
package module

import (
	"context"
	"log"

	"github.com/hearthglen/vtt-tokenroll/internal/events"
	"github.com/hearthglen/vtt-tokenroll/internal/services/orchestrator"
	"github.com/hearthglen/vtt-tokenroll/internal/services/resolver"
	"github.com/hearthglen/vtt-tokenroll/internal/settings"
)

// Name is the module identifier used in hook registrations and log lines
const Name = "vtt-tokenroll"

// Module wires the pipeline into the host's hook bus. All collaborators
// arrive through the config; nothing is read from ambient globals.
type Module struct {
	bus          *events.Bus
	settings     settings.Registry
	orchestrator orchestrator.Service
	resolver     resolver.Service
}

// Config holds configuration for the module
type Config struct {
	Bus          *events.Bus          // Required
	Settings     settings.Registry    // Required
	Orchestrator orchestrator.Service // Required
	Resolver     resolver.Service     // Required
}

// New creates the module
func New(cfg *Config) *Module {
	if cfg == nil {
		panic("Config cannot be nil")
	}
	if cfg.Bus == nil {
		panic("event bus is required")
	}
	if cfg.Settings == nil {
		panic("settings registry is required")
	}
	if cfg.Orchestrator == nil {
		panic("orchestrator service is required")
	}
	if cfg.Resolver == nil {
		panic("resolver service is required")
	}

	return &Module{
		bus:          cfg.Bus,
		settings:     cfg.Settings,
		orchestrator: cfg.Orchestrator,
		resolver:     cfg.Resolver,
	}
}

// Register subscribes the module to the host lifecycle: settings at init,
// a banner at ready, the pipeline on every token creation.
func (m *Module) Register() {
	m.bus.SubscribeOnce(events.EventInit, &events.ListenerFunc{
		ListenerID: Name + ":init",
		Handler: func(ctx context.Context, event events.Event) error {
			return m.settings.Register(ctx, settings.Setting{
				Key:     orchestrator.SettingSyncActorName,
				Name:    "Sync Actor Name",
				Hint:    "Also write a rolled token name to the linked character",
				Scope:   settings.ScopeWorld,
				Default: false,
			})
		},
	})

	m.bus.SubscribeOnce(events.EventReady, &events.ListenerFunc{
		ListenerID: Name + ":ready",
		Handler: func(ctx context.Context, event events.Event) error {
			log.Printf("%s | ready", Name)
			return nil
		},
	})

	m.bus.Subscribe(events.EventTokenCreated, &events.ListenerFunc{
		ListenerID: Name + ":create-token",
		Handler: func(ctx context.Context, event events.Event) error {
			created, ok := event.(*events.TokenCreatedEvent)
			if !ok || created.Token == nil {
				return nil
			}

			// A failing token must not break the host's event dispatch
			if err := m.orchestrator.HandleTokenCreated(ctx, created.Token); err != nil {
				log.Printf("%s | token '%s' pipeline failed: %v", Name, created.Token.ID, err)
			}
			return nil
		},
	})
}

// RerollSelected reruns name and biography rolls for the current selection
func (m *Module) RerollSelected(ctx context.Context) error {
	return m.orchestrator.RerollSelected(ctx)
}

// Resolve resolves a single reference string, or passes it through
// unchanged when it matches neither grammar
func (m *Module) Resolve(ctx context.Context, raw string) (*resolver.Resolution, error) {
	return m.resolver.Resolve(ctx, raw)
}
