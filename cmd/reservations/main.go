package main

import (
	"context"

	"tably/internal/mcp"
	"tably/internal/reservations/events"
	"tably/internal/reservations/grid"
	"tably/internal/reservations/handler"
	"tably/internal/reservations/inventory"
	"tably/internal/reservations/ledger"
	"tably/internal/reservations/service"
	"tably/internal/reservations/snapshot"
	"tably/internal/reservations/validator"
	"tably/pkg/app"
	"tably/pkg/config"
	"tably/pkg/kafka"
	kafka_config "tably/pkg/kafka/config"

	"go.mongodb.org/mongo-driver/mongo"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Reservations service")

	inv := loadInventory(cfg)
	reservationGrid := buildGrid(cfg)
	reservationLedger := ledger.New()

	var mongoClient *mongo.Client
	var snapshotStore snapshot.Store
	if cfg.SnapshotEnabled {
		if err := cfg.SetMongo(); err != nil {
			cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = cfg.Client.Mongo
		snapshotStore = snapshot.NewMongoStore(
			mongoClient,
			cfg.MongoDatabaseName,
			cfg.MongoConnTimeout,
		)
		restoreLedger(cfg, snapshotStore, reservationLedger)
	}

	publisher := buildPublisher(cfg)

	reservationService := service.NewReservationService(
		inv,
		reservationLedger,
		reservationGrid,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg.MaxPartySize,
	)
	cfg.Log.Info("Reservation service initialized",
		"tables", len(inv.Tables()),
		"max_party_size", cfg.MaxPartySize,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHealthHandler(mongoClient, cfg.Log),
		handler.NewReservationHandler(reservationService, cfg.Log),
		mcp.NewServer(mcp.Tools(reservationService), cfg.Log),
	)

	if snapshotStore != nil {
		serverApp.OnShutdown("snapshot", func(ctx context.Context) error {
			return snapshotStore.Save(ctx, reservationLedger.Snapshot())
		})
	}
	serverApp.OnShutdown("events", func(ctx context.Context) error {
		return publisher.Close()
	})
	if mongoClient != nil {
		serverApp.OnShutdown("mongo", func(ctx context.Context) error {
			cfg.Client.Close(ctx, cfg.Log)
			return nil
		})
	}

	serverApp.Run()
}

func loadInventory(cfg *config.Config) *inventory.Inventory {
	if cfg.TablesFile == "" {
		return inventory.Default()
	}

	inv, err := inventory.Load(cfg.TablesFile)
	if err != nil {
		cfg.Log.Fatal("Failed to load table inventory", "file", cfg.TablesFile, "error", err)
	}
	cfg.Log.Info("Table inventory loaded", "file", cfg.TablesFile, "tables", len(inv.Tables()))
	return inv
}

func buildGrid(cfg *config.Config) *grid.Grid {
	opening, closing := cfg.OpeningHours()
	g, err := grid.New(opening, closing, cfg.SlotDurationMin)
	if err != nil {
		cfg.Log.Fatal("Invalid slot grid configuration", "error", err)
	}
	return g
}

func buildPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, reservation events disabled")
		return events.Noop{}
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Reservation event publishing enabled", "topic", cfg.EventsTopic)
	return events.NewKafkaPublisher(producer, cfg.Log)
}

func restoreLedger(cfg *config.Config, store snapshot.Store, lg *ledger.Ledger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	records, err := store.Load(ctx)
	if err != nil {
		cfg.Log.Fatal("Failed to load reservation snapshot", "error", err)
	}
	if len(records) == 0 {
		return
	}

	if err := lg.Restore(records); err != nil {
		cfg.Log.Fatal("Failed to restore reservation ledger", "error", err)
	}
	cfg.Log.Info("Reservation ledger restored from snapshot", "reservations", len(records))
}
