package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/justsurfingit/job-seeker-api/internal/store"
)

type ApplicationService struct {
	Applications store.ApplicationRepository
	Jobs         store.JobRepository
}

func NewApplicationService(apps store.ApplicationRepository, jobs store.JobRepository) *ApplicationService {
	return &ApplicationService{
		Applications: apps,
		Jobs:         jobs,
	}
}

func (s *ApplicationService) Submit(ctx context.Context, app models.Application) (store.InsertResult, error) {
	app.ID = ""
	res, err := s.Applications.Insert(ctx, app)
	if err != nil {
		return store.InsertResult{}, err
	}
	if !res.Acknowledged {
		return res, ErrNotAcknowledged
	}
	return res, nil
}

// ListByApplicant returns the applicant's applications in store order, each
// carrying the display fields of its job. Applications whose job is gone, or
// whose jobId is not an identifier at all, come back as stored.
func (s *ApplicationService) ListByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	apps, err := s.Applications.FindByApplicant(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return []models.Application{}, nil
	}

	seen := make(map[string]struct{}, len(apps))
	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		if !store.ValidID(app.JobID) {
			continue
		}
		if _, dup := seen[app.JobID]; dup {
			continue
		}
		seen[app.JobID] = struct{}{}
		ids = append(ids, app.JobID)
	}

	jobs := map[string]models.Job{}
	if len(ids) > 0 {
		jobs, err = s.Jobs.GetMany(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load jobs for applications: %w", err)
		}
	}

	for i := range apps {
		if job, ok := jobs[apps[i].JobID]; ok {
			apps[i].Enrich(job)
		}
	}
	return apps, nil
}

func (s *ApplicationService) Withdraw(ctx context.Context, id string) (store.DeleteResult, error) {
	if !store.ValidID(id) {
		return store.DeleteResult{}, ErrInvalidID
	}
	res, err := s.Applications.Delete(ctx, id)
	if err != nil {
		return store.DeleteResult{}, err
	}
	if !res.Acknowledged {
		return res, ErrNotAcknowledged
	}
	if res.DeletedCount == 0 {
		return res, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return res, nil
}
