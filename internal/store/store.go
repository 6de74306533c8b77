package store

import (
	"context"
	"errors"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrStoreUnavailable = errors.New("store is unavailable")

// JobRepository is the data access surface for the job collection.
// Lookups report a missing record with ok == false, never an error.
type JobRepository interface {
	FindByOwner(ctx context.Context, email string) ([]models.Job, error)
	// List returns jobs in store order; limit <= 0 means no limit.
	List(ctx context.Context, limit int64) ([]models.Job, error)
	Get(ctx context.Context, id string) (models.Job, bool, error)
	// GetMany returns the jobs found among ids, keyed by id.
	GetMany(ctx context.Context, ids []string) (map[string]models.Job, error)
	Insert(ctx context.Context, job models.Job) (InsertResult, error)
	Update(ctx context.Context, id string, fields map[string]any) (UpdateResult, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

type ApplicationRepository interface {
	Insert(ctx context.Context, app models.Application) (InsertResult, error)
	FindByApplicant(ctx context.Context, email string) ([]models.Application, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId,omitempty"`
}

type UpdateResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// NewID returns a fresh record identifier. Every backend uses the same
// 24 character hex format so clients never see a difference.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Unavailable stands in for a store that could not be opened at startup.
type Unavailable struct{}

func (Unavailable) FindByOwner(context.Context, string) ([]models.Job, error) {
	return nil, ErrStoreUnavailable
}

func (Unavailable) List(context.Context, int64) ([]models.Job, error) {
	return nil, ErrStoreUnavailable
}

func (Unavailable) Get(context.Context, string) (models.Job, bool, error) {
	return models.Job{}, false, ErrStoreUnavailable
}

func (Unavailable) GetMany(context.Context, []string) (map[string]models.Job, error) {
	return nil, ErrStoreUnavailable
}

func (Unavailable) Insert(context.Context, models.Job) (InsertResult, error) {
	return InsertResult{}, ErrStoreUnavailable
}

func (Unavailable) Update(context.Context, string, map[string]any) (UpdateResult, error) {
	return UpdateResult{}, ErrStoreUnavailable
}

func (Unavailable) Delete(context.Context, string) (DeleteResult, error) {
	return DeleteResult{}, ErrStoreUnavailable
}

// UnavailableApplications is the ApplicationRepository counterpart of Unavailable.
type UnavailableApplications struct{}

func (UnavailableApplications) Insert(context.Context, models.Application) (InsertResult, error) {
	return InsertResult{}, ErrStoreUnavailable
}

func (UnavailableApplications) FindByApplicant(context.Context, string) ([]models.Application, error) {
	return nil, ErrStoreUnavailable
}

func (UnavailableApplications) Delete(context.Context, string) (DeleteResult, error) {
	return DeleteResult{}, ErrStoreUnavailable
}
