package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/hearthglen/vtt-tokenroll/internal/repositories/packs"
	"github.com/hearthglen/vtt-tokenroll/internal/repositories/tables"
	"github.com/hearthglen/vtt-tokenroll/internal/services/resolver"
	"github.com/hearthglen/vtt-tokenroll/internal/services/tableroll"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: resolve-ref <reference>")
		fmt.Println("  e.g. resolve-ref '@UUID[RollTable.kDtZZFzOGsIZWLot]{Goblin Name}'")
		os.Exit(1)
	}

	raw := os.Args[1]
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test connection first
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}
	defer func() {
		clientErr := client.Close()
		if clientErr != nil {
			log.Printf("Failed to close Redis connection: %v", clientErr)
		}
	}()

	svc := resolver.NewService(&resolver.ServiceConfig{
		Registry: tables.NewRedisRepository(&tables.RedisRepoConfig{Client: client}),
		Packs:    packs.NewRedisRepository(&packs.RedisRepoConfig{Client: client}),
		Roller:   tableroll.NewService(&tableroll.ServiceConfig{}),
	})

	res, err := svc.Resolve(ctx, raw)
	if err != nil {
		log.Fatalf("Failed to resolve %q: %v", raw, err)
	}

	switch {
	case res.Resolved():
		fmt.Printf("Resolved: %s\n", res.Result.Text())
		for i, entry := range res.Result.Entries {
			fmt.Printf("  draw %d: rolled %d -> %q\n", i+1, entry.Roll, entry.Text)
		}
	case res.Passthrough != "":
		fmt.Printf("Passthrough (not a roll-table reference): %s\n", res.Passthrough)
	default:
		fmt.Println("No roll table found for reference")
	}
}
