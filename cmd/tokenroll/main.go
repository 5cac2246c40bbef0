package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hearthglen/vtt-tokenroll/internal/config"
	"github.com/hearthglen/vtt-tokenroll/internal/events"
	"github.com/hearthglen/vtt-tokenroll/internal/module"
	"github.com/hearthglen/vtt-tokenroll/internal/notify"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/characters"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/packs"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tables"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tokens"
	"github.com/hearthglen/vtt-tokenroll/internal/services/miner"
	"github.com/hearthglen/vtt-tokenroll/internal/services/orchestrator"
	"github.com/hearthglen/vtt-tokenroll/internal/services/resolver"
	"github.com/hearthglen/vtt-tokenroll/internal/services/tableroll"
	"github.com/hearthglen/vtt-tokenroll/internal/settings"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// In-memory repositories by default, Redis when a URL is provided
	tokenRepo := tokens.Repository(tokens.NewInMemoryRepository())
	characterRepo := characters.Repository(characters.NewInMemoryRepository())
	tableRepo := tables.Repository(tables.NewInMemoryRepository())
	packRepo := packs.Repository(packs.NewInMemoryRepository())
	settingRegistry := settings.Registry(settings.NewInMemoryRegistry())

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if URL is provided
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		log.Printf("Connecting to Redis at: %s", redisURL)

		opts, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory repositories")
		} else {
			redisClient = redis.NewClient(opts)

			// Test connection
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory repositories")
			} else {
				defer cancel()
				log.Println("Successfully connected to Redis")

				tokenRepo = tokens.NewRedisRepository(&tokens.RedisRepoConfig{Client: redisClient})
				characterRepo = characters.NewRedisRepository(&characters.RedisRepoConfig{Client: redisClient})
				tableRepo = tables.NewRedisRepository(&tables.RedisRepoConfig{Client: redisClient})
				packRepo = packs.NewRedisRepository(&packs.RedisRepoConfig{Client: redisClient})
				settingRegistry = settings.NewRedisRegistry(&settings.RedisRegistryConfig{Client: redisClient})

				log.Println("Using Redis for persistence")
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory repositories")
	}

	// Warnings go to the log unless a Discord channel is configured
	var notifier notify.Notifier = notify.NewLogNotifier(module.Name)

	var discordSession *discordgo.Session
	if cfg.Discord.Token != "" {
		discordSession, err = discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			log.Fatalf("Failed to create Discord session: %v", err)
		}
		if err := discordSession.Open(); err != nil {
			log.Printf("Failed to open Discord connection: %v", err)
			log.Println("Falling back to log notifications")
			discordSession = nil
		} else {
			notifier = notify.NewDiscordNotifier(&notify.DiscordNotifierConfig{
				Session:   discordSession,
				ChannelID: cfg.Discord.ChannelID,
				Prefix:    module.Name,
			})
			log.Printf("Sending warnings to Discord channel: %s", cfg.Discord.ChannelID)
		}
	}
	defer func() {
		if discordSession == nil {
			return
		}
		if closeErr := discordSession.Close(); closeErr != nil {
			log.Printf("Failed to close Discord connection: %v", closeErr)
		}
	}()

	selection := module.NewAmbientSelection()

	resolverService := resolver.NewService(&resolver.ServiceConfig{
		Registry: tableRepo,
		Packs:    packRepo,
		Roller:   tableroll.NewService(&tableroll.ServiceConfig{}),
		Notifier: notifier,
	})

	orchestratorService := orchestrator.NewService(&orchestrator.ServiceConfig{
		Miner:      miner.NewService(&miner.ServiceConfig{Characters: characterRepo}),
		Resolver:   resolverService,
		Tokens:     tokenRepo,
		Characters: characterRepo,
		Settings:   settingRegistry,
		Selection:  selection,
	})

	bus := events.NewBus()
	mod := module.New(&module.Config{
		Bus:          bus,
		Settings:     settingRegistry,
		Orchestrator: orchestratorService,
		Resolver:     resolverService,
	})
	mod.Register()

	ctx := context.Background()
	if err := bus.Emit(ctx, &events.InitEvent{}); err != nil {
		log.Fatalf("Init failed: %v", err)
	}
	if err := bus.Emit(ctx, &events.ReadyEvent{}); err != nil {
		log.Fatalf("Ready failed: %v", err)
	}

	fmt.Println("Module is now running. Press CTRL-C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
