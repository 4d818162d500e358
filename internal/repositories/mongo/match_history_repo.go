package mongo

import (
	"context"
	"time"

	"github.com/launchpool/launchpool/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MatchHistoryRepository is append-only: entries are inserted once and
// never updated or deleted here.
type MatchHistoryRepository interface {
	Append(ctx context.Context, h *models.MatchHistory) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.MatchHistory, error)
}

type matchHistoryRepo struct {
	col *mongo.Collection
}

func NewMatchHistoryRepo(db *mongo.Database) MatchHistoryRepository {
	return &matchHistoryRepo{col: db.Collection("match_history")}
}

func (r *matchHistoryRepo) Append(ctx context.Context, h *models.MatchHistory) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, h)
	return err
}

func (r *matchHistoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.MatchHistory, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.MatchHistory
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
