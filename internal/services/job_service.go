package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/justsurfingit/job-seeker-api/internal/store"
)

// PreviewLimit caps the featured job list.
const PreviewLimit = 6

type JobService struct {
	Jobs store.JobRepository
}

func NewJobService(jobs store.JobRepository) *JobService {
	return &JobService{
		Jobs: jobs,
	}
}

func (s *JobService) ListByOwner(ctx context.Context, email string) ([]models.Job, error) {
	jobs, err := s.Jobs.FindByOwner(ctx, email)
	if err != nil {
		return nil, err
	}
	return nonNil(jobs), nil
}

func (s *JobService) ListPreview(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.Jobs.List(ctx, PreviewLimit)
	if err != nil {
		return nil, err
	}
	return nonNil(jobs), nil
}

func (s *JobService) ListAll(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.Jobs.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	return nonNil(jobs), nil
}

func (s *JobService) Get(ctx context.Context, id string) (models.Job, error) {
	if !store.ValidID(id) {
		return models.Job{}, ErrInvalidID
	}
	job, ok, err := s.Jobs.Get(ctx, id)
	if err != nil {
		return models.Job{}, err
	}
	if !ok {
		return models.Job{}, ErrNotFound
	}
	return job, nil
}

// Create stores the payload as a new job. Any caller supplied _id is dropped,
// the store assigns the identifier.
func (s *JobService) Create(ctx context.Context, job models.Job) (store.InsertResult, error) {
	job.ID = ""
	res, err := s.Jobs.Insert(ctx, job)
	if err != nil {
		return store.InsertResult{}, err
	}
	if !res.Acknowledged {
		return res, ErrNotAcknowledged
	}
	return res, nil
}

// Update merges fields into the job. A missing job and a payload that changes
// nothing both report ErrNotFound.
func (s *JobService) Update(ctx context.Context, id string, fields map[string]any) (store.UpdateResult, error) {
	if !store.ValidID(id) {
		return store.UpdateResult{}, ErrInvalidID
	}

	patch := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != models.KeyID {
			patch[k] = v
		}
	}
	if len(patch) == 0 {
		return store.UpdateResult{Acknowledged: true}, ErrNotFound
	}

	res, err := s.Jobs.Update(ctx, id, patch)
	if err != nil {
		return store.UpdateResult{}, err
	}
	if !res.Acknowledged {
		return res, ErrNotAcknowledged
	}
	if res.ModifiedCount == 0 {
		return res, ErrNotFound
	}
	return res, nil
}

func (s *JobService) Delete(ctx context.Context, id string) (store.DeleteResult, error) {
	if !store.ValidID(id) {
		return store.DeleteResult{}, ErrInvalidID
	}
	res, err := s.Jobs.Delete(ctx, id)
	if err != nil {
		return store.DeleteResult{}, err
	}
	if !res.Acknowledged {
		return res, ErrNotAcknowledged
	}
	if res.DeletedCount == 0 {
		return res, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return res, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
