package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"consultly/config"
	"consultly/utils"
)

var MongoClient *mongo.Client

// ConnectMongo dials MongoDB and verifies the connection with a ping.
func ConnectMongo() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURL))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongo: %w", err)
	}

	MongoClient = client
	utils.GetLogger().Info("connected to mongo", zap.String("db", config.AppConfig.MongoDB))
	return nil
}

// Collection returns a handle in the configured database.
func Collection(name string) *mongo.Collection {
	return MongoClient.Database(config.AppConfig.MongoDB).Collection(name)
}

// DisconnectMongo closes the client during shutdown.
func DisconnectMongo(ctx context.Context) {
	if MongoClient == nil {
		return
	}
	if err := MongoClient.Disconnect(ctx); err != nil {
		utils.GetLogger().Error("failed to disconnect mongo", zap.Error(err))
	}
}
