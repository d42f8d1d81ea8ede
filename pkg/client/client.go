// Package client holds lazily-attached connections to external systems.
// Only the connections a deployment actually enables get set; everything
// else stays nil and the owning component falls back to its no-op mode.
package client

import (
	"context"
	"time"

	"tably/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	Mongo *mongo.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return err
	}

	if err := mc.Ping(ctx, nil); err != nil {
		return err
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = mc
	return nil
}

func (c *Client) Close(ctx context.Context, log *logger.Logger) {
	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}
}
