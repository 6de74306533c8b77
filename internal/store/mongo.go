package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	JobCollection         = "job"
	ApplicationCollection = "jobApplications"
)

type MongoJobRepository struct {
	coll *mongo.Collection
}

func NewMongoJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{coll: db.Collection(JobCollection)}
}

func (r *MongoJobRepository) FindByOwner(ctx context.Context, email string) ([]models.Job, error) {
	docs, err := findDocuments(ctx, r.coll, bson.M{models.KeyOwnerEmail: email})
	if err != nil {
		return nil, fmt.Errorf("find jobs by owner: %w", err)
	}
	return toJobs(docs), nil
}

func (r *MongoJobRepository) List(ctx context.Context, limit int64) ([]models.Job, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	docs, err := findDocuments(ctx, r.coll, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return toJobs(docs), nil
}

func (r *MongoJobRepository) Get(ctx context.Context, id string) (models.Job, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Job{}, false, nil
	}

	var doc bson.M
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Job{}, false, nil
		}
		return models.Job{}, false, fmt.Errorf("find job: %w", err)
	}
	return models.JobFromDocument(normalizeID(doc)), true, nil
}

func (r *MongoJobRepository) GetMany(ctx context.Context, ids []string) (map[string]models.Job, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	found := make(map[string]models.Job, len(oids))
	if len(oids) == 0 {
		return found, nil
	}

	docs, err := findDocuments(ctx, r.coll, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find jobs by id: %w", err)
	}
	for _, job := range toJobs(docs) {
		found[job.ID] = job
	}
	return found, nil
}

func (r *MongoJobRepository) Insert(ctx context.Context, job models.Job) (InsertResult, error) {
	return insertDocument(ctx, r.coll, job.Document())
}

func (r *MongoJobRepository) Update(ctx context.Context, id string, fields map[string]any) (UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return UpdateResult{Acknowledged: true}, nil
	}

	set := bson.M{}
	for k, v := range fields {
		if k != models.KeyID {
			set[k] = v
		}
	}
	if len(set) == 0 {
		return UpdateResult{Acknowledged: true}, nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	return updateResult(res, err)
}

func (r *MongoJobRepository) Delete(ctx context.Context, id string) (DeleteResult, error) {
	return deleteDocument(ctx, r.coll, id)
}

type MongoApplicationRepository struct {
	coll *mongo.Collection
}

func NewMongoApplicationRepository(db *mongo.Database) *MongoApplicationRepository {
	return &MongoApplicationRepository{coll: db.Collection(ApplicationCollection)}
}

func (r *MongoApplicationRepository) Insert(ctx context.Context, app models.Application) (InsertResult, error) {
	return insertDocument(ctx, r.coll, app.Document())
}

func (r *MongoApplicationRepository) FindByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	docs, err := findDocuments(ctx, r.coll, bson.M{models.KeyApplicantEmail: email})
	if err != nil {
		return nil, fmt.Errorf("find applications by applicant: %w", err)
	}

	apps := make([]models.Application, 0, len(docs))
	for _, doc := range docs {
		apps = append(apps, models.ApplicationFromDocument(normalizeID(doc)))
	}
	return apps, nil
}

func (r *MongoApplicationRepository) Delete(ctx context.Context, id string) (DeleteResult, error) {
	return deleteDocument(ctx, r.coll, id)
}

func findDocuments(ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]bson.M, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func insertDocument(ctx context.Context, coll *mongo.Collection, doc map[string]any) (InsertResult, error) {
	oid := primitive.NewObjectID()
	stored := bson.M(doc)
	stored["_id"] = oid

	res, err := coll.InsertOne(ctx, stored)
	if err != nil && !errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return InsertResult{}, fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return insertResult(res, err, oid), nil
}

func deleteDocument(ctx context.Context, coll *mongo.Collection, id string) (DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return DeleteResult{Acknowledged: true}, nil
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil && !errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return DeleteResult{}, fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	return deleteResult(res, err), nil
}

// insertResult and its siblings map driver results. The v1 driver reports an
// unacknowledged write (w:0) only through mongo.ErrUnacknowledgedWrite, so any
// other result it hands back was acknowledged.
func insertResult(res *mongo.InsertOneResult, err error, oid primitive.ObjectID) InsertResult {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) || res == nil {
		return InsertResult{}
	}
	return InsertResult{Acknowledged: true, InsertedID: oid.Hex()}
}

func updateResult(res *mongo.UpdateResult, err error) (UpdateResult, error) {
	if err != nil && !errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return UpdateResult{}, fmt.Errorf("update job: %w", err)
	}
	if err != nil || res == nil {
		return UpdateResult{}, nil
	}

	out := UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if upserted, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = upserted.Hex()
	}
	return out, nil
}

func deleteResult(res *mongo.DeleteResult, err error) DeleteResult {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) || res == nil {
		return DeleteResult{}
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func toJobs(docs []bson.M) []models.Job {
	jobs := make([]models.Job, 0, len(docs))
	for _, doc := range docs {
		jobs = append(jobs, models.JobFromDocument(normalizeID(doc)))
	}
	return jobs
}

// normalizeID rewrites an ObjectID _id to its hex string.
func normalizeID(doc bson.M) map[string]any {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		doc["_id"] = oid.Hex()
	}
	return doc
}
