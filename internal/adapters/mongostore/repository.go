package mongostore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/proverb-service/internal/domain"
	"github.com/jsamuelsen/proverb-service/internal/platform/logging"
	"github.com/jsamuelsen/proverb-service/internal/platform/metrics"
	"github.com/jsamuelsen/proverb-service/internal/ports"
)

const tracerName = "github.com/jsamuelsen/proverb-service/internal/adapters/mongostore"

// CollectionSource yields the collection to operate on. *Connector is the
// production implementation.
type CollectionSource interface {
	Collection(ctx context.Context) (*mongo.Collection, error)
}

// Repository implements ports.ProverbRepository on a MongoDB collection.
type Repository struct {
	source  CollectionSource
	metrics *metrics.StoreMetrics
	tracer  trace.Tracer
}

var _ ports.ProverbRepository = (*Repository)(nil)

// NewRepository creates a repository. m may be nil.
func NewRepository(source CollectionSource, m *metrics.StoreMetrics) *Repository {
	return &Repository{
		source:  source,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}
}

// EnsureIndexes creates the listing sort index. It is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	ctx, done := r.begin(ctx, "ensure_indexes")

	coll, err := r.source.Collection(ctx)
	if err != nil {
		done(err)
		return err
	}

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fieldCreatedAt, Value: 1}, {Key: fieldID, Value: 1}},
		Options: options.Index().SetName("createdAt_id"),
	})

	err = r.translate("ensure_indexes", "", err)
	done(err)

	return err
}

// List returns proverbs sorted by createdAt then _id.
func (r *Repository) List(ctx context.Context, opts domain.ListOptions) ([]domain.Proverb, error) {
	ctx, done := r.begin(ctx, "list")

	items, err := r.list(ctx, opts)
	done(err)

	return items, err
}

func (r *Repository) list(ctx context.Context, opts domain.ListOptions) ([]domain.Proverb, error) {
	filter := bson.D{}

	if opts.After != nil {
		id, err := primitive.ObjectIDFromHex(opts.After.ID)
		if err != nil {
			return nil, domain.NewValidationError("cursor", "is not valid")
		}

		filter = afterCursor(opts.After, id)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: fieldCreatedAt, Value: 1}, {Key: fieldID, Value: 1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	if len(opts.Fields) > 0 {
		findOpts.SetProjection(projection(opts.Fields))
	}

	coll, err := r.source.Collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, r.translate("list", "", err)
	}

	var docs []proverbDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, r.translate("list", "", err)
	}

	items := make([]domain.Proverb, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}

	return items, nil
}

// Count returns the number of stored proverbs.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	ctx, done := r.begin(ctx, "count")

	coll, err := r.source.Collection(ctx)
	if err != nil {
		done(err)
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, bson.D{})
	err = r.translate("count", "", err)
	done(err)

	return n, err
}

// Get returns one proverb by id.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Proverb, error) {
	ctx, done := r.begin(ctx, "get")

	p, err := r.get(ctx, id)
	done(err)

	return p, err
}

func (r *Repository) get(ctx context.Context, id string) (*domain.Proverb, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFoundError(domain.ProverbEntity, id)
	}

	coll, err := r.source.Collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc proverbDocument
	if err := coll.FindOne(ctx, bson.D{{Key: fieldID, Value: oid}}).Decode(&doc); err != nil {
		return nil, r.translate("get", id, err)
	}

	p := doc.toDomain()

	return &p, nil
}

// Insert stores a new proverb. createdAt is truncated to the millisecond
// precision the store keeps, so the returned record matches later reads.
func (r *Repository) Insert(ctx context.Context, details domain.ProverbDetails, createdAt time.Time) (*domain.Proverb, error) {
	ctx, done := r.begin(ctx, "insert")

	p, err := r.insert(ctx, &details, createdAt)
	done(err)

	return p, err
}

func (r *Repository) insert(ctx context.Context, details *domain.ProverbDetails, createdAt time.Time) (*domain.Proverb, error) {
	coll, err := r.source.Collection(ctx)
	if err != nil {
		return nil, err
	}

	doc := proverbDocument{
		ID:        primitive.NewObjectID(),
		Fields:    fieldsFromDomain(details),
		CreatedAt: storedTime(createdAt),
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, r.translate("insert", "", err)
	}

	p := doc.toDomain()

	return &p, nil
}

// Replace overwrites the client-supplied fields of an existing proverb.
func (r *Repository) Replace(ctx context.Context, id string, details domain.ProverbDetails) (*domain.Proverb, error) {
	ctx, done := r.begin(ctx, "replace")

	p, err := r.replace(ctx, id, &details)
	done(err)

	return p, err
}

func (r *Repository) replace(ctx context.Context, id string, details *domain.ProverbDetails) (*domain.Proverb, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFoundError(domain.ProverbEntity, id)
	}

	coll, err := r.source.Collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc proverbDocument

	err = coll.FindOneAndUpdate(ctx,
		bson.D{{Key: fieldID, Value: oid}},
		bson.D{{Key: "$set", Value: fieldsFromDomain(details)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, r.translate("replace", id, err)
	}

	p := doc.toDomain()

	return &p, nil
}

// Delete removes one proverb by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, done := r.begin(ctx, "delete")

	err := r.delete(ctx, id)
	done(err)

	return err
}

func (r *Repository) delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFoundError(domain.ProverbEntity, id)
	}

	coll, err := r.source.Collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.D{{Key: fieldID, Value: oid}})
	if err != nil {
		return r.translate("delete", id, err)
	}

	if res.DeletedCount == 0 {
		return domain.NewNotFoundError(domain.ProverbEntity, id)
	}

	return nil
}

// translate maps driver errors onto domain errors.
func (r *Repository) translate(op, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.NewNotFoundError(domain.ProverbEntity, id)
	case domain.IsPersistence(err):
		return err
	default:
		return domain.NewPersistenceError(op, err)
	}
}

// begin starts a client span for op. The returned func ends it, records
// the outcome metric and logs at trace level.
func (r *Repository) begin(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()

	ctx, span := r.tracer.Start(ctx, "mongo."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.operation.name", op),
		),
	)

	return ctx, func(err error) {
		outcome := metrics.OutcomeOK

		switch {
		case err == nil:
		case domain.IsNotFound(err):
			outcome = metrics.OutcomeNotFound
		default:
			outcome = metrics.OutcomeError

			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		r.metrics.Observe(op, outcome, start)
		span.End()

		logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "store operation",
			slog.String("operation", op),
			slog.String("outcome", outcome),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
