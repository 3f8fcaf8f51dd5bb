// Package database owns the MongoDB connection that backs the admin audit log.
package database

import (
	"context"
	"time"

	"dpiportal/config"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// MongoClient is set by InitDB.
var MongoClient *mongo.Client

// Connect dials uri and waits for the primary to answer a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("dpiportal").
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongo")
	}
	return client, nil
}

// InitDB connects MongoClient using the loaded configuration.
func InitDB(ctx context.Context) error {
	client, err := Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		return err
	}
	MongoClient = client
	return nil
}

// Database returns the portal database on MongoClient.
func Database() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Close disconnects MongoClient if it was opened.
func Close(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
