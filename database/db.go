package database

import (
	"context"
	"fmt"
	"time"

	"flexispace/config"
	"flexispace/database/kv"
	"flexispace/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance, set when STORE_BACKEND is mongo.
var MongoClient *mongo.Client

// ConnectMongo connects and pings within a bounded time.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// InitDB connects the global MongoDB client from config.
func InitDB(ctx context.Context) error {
	client, err := ConnectMongo(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		return err
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB successfully", zap.String("database", config.AppConfig.DatabaseName))
	return nil
}

// OpenStore opens the key-value store selected by cfg.StoreBackend. The mongo
// backend keeps listings in memory; bookings go to their own collection.
func OpenStore(cfg config.Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case "", "memory", "mongo":
		return kv.NewMemoryStore(), nil
	case "redis":
		client, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			return nil, err
		}
		return kv.NewRedisStore(client, "flexispace:"), nil
	case "bolt":
		return kv.OpenBolt(cfg.BoltPath)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
