package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// PingFunc reports whether a dependency answered.
type PingFunc func(ctx context.Context) error

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every dependency once and stores the snapshot.
func CheckHealth(ctx context.Context, redisPings []PingFunc, mongoPing PingFunc) HealthStatus {
	redisHealth := make([]bool, 0, len(redisPings))
	for _, ping := range redisPings {
		redisHealth = append(redisHealth, ping(ctx) == nil)
	}

	status := HealthStatus{
		Mongo:     mongoPing != nil && mongoPing(ctx) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	var redisPings []PingFunc
	for _, client := range redisClients {
		client := client
		redisPings = append(redisPings, func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}
	var mongoPing PingFunc
	if mongoClient != nil {
		mongoPing = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
	}

	go func() {
		CheckHealth(ctx, redisPings, mongoPing)

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, redisPings, mongoPing)
			}
		}
	}()
}
