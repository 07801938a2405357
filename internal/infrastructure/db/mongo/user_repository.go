package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civiworks/workboard/internal/core/domain"
)

const usersCollection = "users"

// MongoUserRepository persists user role records, keyed by the identity
// provider's credential id.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	Name      string `bson:"name"`
	Role      string `bson:"role"`
	Area      string `bson:"area,omitempty"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *MongoUserRepository) Get(ctx context.Context, id string) (*domain.UserRecord, error) {
	var doc userDoc
	err := readRetry(ctx, func(ctx context.Context) error {
		err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
		if err == nil || errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return docToUser(doc), nil
}

// Set upserts a record, stamping updated_at and preserving the caller's
// created_at on first write.
func (r *MongoUserRepository) Set(ctx context.Context, record *domain.UserRecord) (*domain.UserRecord, error) {
	now := time.Now().UTC()
	created := record.CreatedAt
	if created.IsZero() {
		created = now
	}
	doc := userDoc{
		ID:        record.ID,
		Email:     record.Email,
		Name:      record.Name,
		Role:      string(record.Role),
		Area:      record.Area,
		CreatedAt: created.Unix(),
		UpdatedAt: now.Unix(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": record.ID}, doc, opts); err != nil {
		return nil, fmt.Errorf("set user: %w", err)
	}
	return docToUser(doc), nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns all records in insertion order.
func (r *MongoUserRepository) List(ctx context.Context) ([]domain.UserRecord, error) {
	var out []domain.UserRecord
	err := readRetry(ctx, func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
		cur, err := r.coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			return retry.RetryableError(err)
		}
		var docs []userDoc
		if err := cur.All(ctx, &docs); err != nil {
			return retry.RetryableError(err)
		}
		out = out[:0]
		for _, d := range docs {
			out = append(out, *docToUser(d))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *MongoUserRepository) SuperadminExists(ctx context.Context) (bool, error) {
	var n int64
	err := readRetry(ctx, func(ctx context.Context) error {
		count, err := r.coll.CountDocuments(ctx, bson.M{"role": string(domain.RoleSuperadmin)}, options.Count().SetLimit(1))
		if err != nil {
			return retry.RetryableError(err)
		}
		n = count
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("count superadmins: %w", err)
	}
	return n > 0, nil
}

func docToUser(d userDoc) *domain.UserRecord {
	return &domain.UserRecord{
		ID:        d.ID,
		Email:     d.Email,
		Name:      d.Name,
		Role:      domain.Role(d.Role),
		Area:      d.Area,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}
