package database

import (
	"context"
	"time"

	"bookify/config"
	"bookify/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the shared Mongo connection, established once at startup.
var MongoClient *mongo.Client

const connectTimeout = 10 * time.Second

// InitDB connects to Mongo and verifies the connection against the primary
// before any request is served.
func InitDB() {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		logger.Sugar().Fatalf("database: failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Sugar().Fatalf("database: MongoDB ping failed: %v", err)
	}

	MongoClient = client
	logger.Info("Connected to MongoDB")
}
