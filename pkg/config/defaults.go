package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "INFO"

	DefaultOpeningTime     = "11:00"
	DefaultClosingTime     = "21:00"
	DefaultSlotDurationMin = 30
	DefaultMaxPartySize    = 8

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultEventsTopic = "reservation-events"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tably"
	DefaultMongoConnTimeout  = 10 * time.Second
)
