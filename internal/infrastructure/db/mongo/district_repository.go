package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

const collectionDistricts = "districts"

// DistrictRepository implements ports.DistrictRepository. Documents are keyed
// by district ID; host carries a unique index.
type DistrictRepository struct {
	col *mongo.Collection
}

var _ ports.DistrictRepository = (*DistrictRepository)(nil)

func NewDistrictRepository(db *mongo.Database) *DistrictRepository {
	return &DistrictRepository{col: db.Collection(collectionDistricts)}
}

func districtIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "host", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

func (r *DistrictRepository) FindByID(ctx context.Context, id string) (*domain.District, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *DistrictRepository) FindByHost(ctx context.Context, host string) (*domain.District, error) {
	return r.findOne(ctx, bson.M{"host": host})
}

func (r *DistrictRepository) findOne(ctx context.Context, filter bson.M) (*domain.District, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.District
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDistrictNotFound
		}
		return nil, fmt.Errorf("find district: %w", err)
	}
	return &d, nil
}

// List returns every district ordered by ID.
func (r *DistrictRepository) List(ctx context.Context) ([]*domain.District, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.District, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode districts: %w", err)
	}
	return out, nil
}

func (r *DistrictRepository) Create(ctx context.Context, d *domain.District) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDistrictExists
		}
		return fmt.Errorf("insert district: %w", err)
	}
	return nil
}

func (r *DistrictRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete district: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDistrictNotFound
	}
	return nil
}
