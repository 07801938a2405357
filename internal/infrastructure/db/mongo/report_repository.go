package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civiworks/workboard/internal/core/domain"
)

const reportsCollection = "workReports"

// MongoReportRepository persists work reports.
type MongoReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{coll: db.Collection(reportsCollection)}
}

type locationDoc struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type reportDoc struct {
	ID          string      `bson:"_id"`
	UserID      string      `bson:"user_id"`
	Description string      `bson:"description"`
	Area        string      `bson:"area,omitempty"`
	StartTime   int64       `bson:"start_time"`
	EndTime     int64       `bson:"end_time,omitempty"`
	Status      string      `bson:"status"`
	StartImage  string      `bson:"start_image"`
	EndImage    string      `bson:"end_image,omitempty"`
	Location    locationDoc `bson:"location"`
	CreatedAt   int64       `bson:"created_at"`
	UpdatedAt   int64       `bson:"updated_at"`
}

func (r *MongoReportRepository) Create(ctx context.Context, report *domain.WorkReport) (*domain.WorkReport, error) {
	now := time.Now().UTC()
	doc := reportToDoc(report)
	doc.ID = uuid.NewString()
	doc.CreatedAt = now.Unix()
	doc.UpdatedAt = now.Unix()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return docToReport(doc), nil
}

func (r *MongoReportRepository) Get(ctx context.Context, id string) (*domain.WorkReport, error) {
	var doc reportDoc
	err := readRetry(ctx, func(ctx context.Context) error {
		err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
		if err == nil || errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return docToReport(doc), nil
}

func (r *MongoReportRepository) Update(ctx context.Context, report *domain.WorkReport) error {
	doc := reportToDoc(report)
	doc.ID = report.ID
	doc.CreatedAt = report.CreatedAt.Unix()
	doc.UpdatedAt = time.Now().UTC().Unix()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": report.ID}, doc)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// Query returns reports matching the filter, newest start time first.
func (r *MongoReportRepository) Query(ctx context.Context, filter domain.ReportFilter) ([]domain.WorkReport, error) {
	q := bson.M{}
	if filter.UserID != "" {
		q["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if filter.Area != "" {
		q["area"] = filter.Area
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		span := bson.M{}
		if !filter.From.IsZero() {
			span["$gte"] = filter.From.Unix()
		}
		if !filter.To.IsZero() {
			span["$lte"] = filter.To.Unix()
		}
		q["start_time"] = span
	}

	var out []domain.WorkReport
	err := readRetry(ctx, func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
		cur, err := r.coll.Find(ctx, q, opts)
		if err != nil {
			return retry.RetryableError(err)
		}
		var docs []reportDoc
		if err := cur.All(ctx, &docs); err != nil {
			return retry.RetryableError(err)
		}
		out = out[:0]
		for _, d := range docs {
			out = append(out, *docToReport(d))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return out, nil
}

func reportToDoc(rep *domain.WorkReport) reportDoc {
	doc := reportDoc{
		UserID:      rep.UserID,
		Description: rep.Description,
		Area:        rep.Area,
		StartTime:   rep.StartTime.Unix(),
		Status:      string(rep.Status),
		StartImage:  rep.StartImage,
		EndImage:    rep.EndImage,
		Location:    locationDoc{Lat: rep.Location.Lat, Lng: rep.Location.Lng},
	}
	if rep.EndTime != nil {
		doc.EndTime = rep.EndTime.Unix()
	}
	return doc
}

func docToReport(d reportDoc) *domain.WorkReport {
	rep := &domain.WorkReport{
		ID:          d.ID,
		UserID:      d.UserID,
		Description: d.Description,
		Area:        d.Area,
		StartTime:   unixToTime(d.StartTime),
		Status:      domain.ReportStatus(d.Status),
		StartImage:  d.StartImage,
		EndImage:    d.EndImage,
		Location:    domain.Coordinates{Lat: d.Location.Lat, Lng: d.Location.Lng},
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
	if d.EndTime != 0 {
		t := unixToTime(d.EndTime)
		rep.EndTime = &t
	}
	return rep
}
