package snapshot

import (
	"context"
	"fmt"
	"time"

	mongotx "tably/pkg/db/mongo"
	"tably/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Reservations"
)

type mongoStore struct {
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
	timeout    time.Duration
}

func NewMongoStore(client *mongo.Client, databaseName string, timeout time.Duration) Store {
	return &mongoStore{
		collection: client.Database(databaseName).Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(client),
		timeout:    timeout,
	}
}

func (s *mongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Save replaces the stored snapshot wholesale, inside a transaction so a
// failed write never leaves a half-cleared collection behind. Each
// reservation keeps its ledger id as the document _id, so a repeated
// save is idempotent.
func (s *mongoStore) Save(ctx context.Context, reservations []model.Reservation) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.collection.DeleteMany(sessCtx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear reservation snapshot: %w", err)
		}

		if len(reservations) == 0 {
			return nil
		}

		docs := make([]any, 0, len(reservations))
		for _, res := range reservations {
			docs = append(docs, res)
		}

		if _, err := s.collection.InsertMany(sessCtx, docs); err != nil {
			return fmt.Errorf("failed to write reservation snapshot: %w", err)
		}
		return nil
	})
	return err
}

func (s *mongoStore) Load(ctx context.Context) ([]model.Reservation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read reservation snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservation snapshot: %w", err)
	}

	return reservations, nil
}
