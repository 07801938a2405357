package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civiworks/workboard/internal/core/domain"
)

const areasCollection = "areas"

// MongoAreaRepository persists work areas.
type MongoAreaRepository struct {
	coll *mongo.Collection
}

func NewAreaRepository(db *mongo.Database) *MongoAreaRepository {
	return &MongoAreaRepository{coll: db.Collection(areasCollection)}
}

type areaDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
}

func (r *MongoAreaRepository) Create(ctx context.Context, area *domain.Area) (*domain.Area, error) {
	doc := areaDoc{
		ID:          uuid.NewString(),
		Name:        area.Name,
		Description: area.Description,
		CreatedAt:   area.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert area: %w", err)
	}
	return docToArea(doc), nil
}

// List returns all areas in insertion order.
func (r *MongoAreaRepository) List(ctx context.Context) ([]domain.Area, error) {
	var out []domain.Area
	err := readRetry(ctx, func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
		cur, err := r.coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			return retry.RetryableError(err)
		}
		var docs []areaDoc
		if err := cur.All(ctx, &docs); err != nil {
			return retry.RetryableError(err)
		}
		out = out[:0]
		for _, d := range docs {
			out = append(out, *docToArea(d))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return out, nil
}

// Delete removes an area. References from users and reports are left intact.
func (r *MongoAreaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAreaNotFound
	}
	return nil
}

func docToArea(d areaDoc) *domain.Area {
	return &domain.Area{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   unixToTime(d.CreatedAt),
	}
}
