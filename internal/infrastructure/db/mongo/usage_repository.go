package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

const (
	collectionUsage = "usage_events"
	// usage documents expire after 90 days
	usageRetentionSeconds = 90 * 24 * 60 * 60
)

// UsageRepository writes the usage audit trail.
type UsageRepository struct {
	col *mongo.Collection
}

var _ ports.UsageRepository = (*UsageRepository)(nil)

func NewUsageRepository(db *mongo.Database) *UsageRepository {
	return &UsageRepository{col: db.Collection(collectionUsage)}
}

func usageIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "district", Value: 1}}},
		{
			Keys:    bson.D{{Key: "at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(usageRetentionSeconds),
		},
	}
}

func (r *UsageRepository) InsertUsage(ctx context.Context, e *domain.UsageEvent) error {
	doc := bson.M{
		"_id":         e.ID,
		"subject":     e.Subject,
		"district":    e.District,
		"method":      e.Method,
		"outcome":     string(e.Outcome),
		"duration_ms": e.DurationMs,
		"at":          e.At.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert usage event: %w", err)
	}
	return nil
}
