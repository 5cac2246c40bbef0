package notify

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// DiscordNotifier posts warnings to a Discord channel so the GM sees them
// without watching the server log.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	prefix    string
}

// DiscordNotifierConfig holds configuration for the Discord notifier
type DiscordNotifierConfig struct {
	Session   *discordgo.Session // Required
	ChannelID string             // Required
	Prefix    string             // Optional message prefix
}

// NewDiscordNotifier creates a Discord-backed notifier
func NewDiscordNotifier(cfg *DiscordNotifierConfig) *DiscordNotifier {
	if cfg == nil {
		panic("DiscordNotifierConfig cannot be nil")
	}
	if cfg.Session == nil {
		panic("Discord session cannot be nil")
	}
	if cfg.ChannelID == "" {
		panic("Discord channel ID cannot be empty")
	}

	return &DiscordNotifier{
		session:   cfg.Session,
		channelID: cfg.ChannelID,
		prefix:    cfg.Prefix,
	}
}

// Warn implements Notifier
func (n *DiscordNotifier) Warn(message string) {
	content := message
	if n.prefix != "" {
		content = n.prefix + " | " + message
	}

	if _, err := n.session.ChannelMessageSend(n.channelID, content); err != nil {
		// Fire and forget: fall back to the log, never propagate
		log.Printf("DiscordNotifier: failed to send warning: %v", err)
	}
}
