package store

import (
	"context"
	"reflect"
	"sync"

	"github.com/justsurfingit/job-seeker-api/internal/models"
)

// MemoryStore keeps both collections in insertion order. It backs local
// runs with STORE_DRIVER=memory and the service tests.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs []record
	apps []record
}

type record struct {
	id  string
	doc map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Jobs() *MemoryJobRepository {
	return &MemoryJobRepository{s: s}
}

func (s *MemoryStore) Applications() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{s: s}
}

type MemoryJobRepository struct {
	s *MemoryStore
}

func (r *MemoryJobRepository) FindByOwner(_ context.Context, email string) ([]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	jobs := []models.Job{}
	for _, rec := range r.s.jobs {
		if rec.doc[models.KeyOwnerEmail] == email {
			jobs = append(jobs, rec.job())
		}
	}
	return jobs, nil
}

func (r *MemoryJobRepository) List(_ context.Context, limit int64) ([]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	jobs := []models.Job{}
	for _, rec := range r.s.jobs {
		if limit > 0 && int64(len(jobs)) >= limit {
			break
		}
		jobs = append(jobs, rec.job())
	}
	return jobs, nil
}

func (r *MemoryJobRepository) Get(_ context.Context, id string) (models.Job, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := indexOf(r.s.jobs, id)
	if i < 0 {
		return models.Job{}, false, nil
	}
	return r.s.jobs[i].job(), true, nil
}

func (r *MemoryJobRepository) GetMany(_ context.Context, ids []string) (map[string]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	found := make(map[string]models.Job, len(ids))
	for _, id := range ids {
		if i := indexOf(r.s.jobs, id); i >= 0 {
			found[id] = r.s.jobs[i].job()
		}
	}
	return found, nil
}

func (r *MemoryJobRepository) Insert(_ context.Context, job models.Job) (InsertResult, error) {
	id := NewID()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.jobs = append(r.s.jobs, record{id: id, doc: job.Document()})
	return InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *MemoryJobRepository) Update(_ context.Context, id string, fields map[string]any) (UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := indexOf(r.s.jobs, id)
	if i < 0 {
		return UpdateResult{Acknowledged: true}, nil
	}

	merged, changed := mergeFields(r.s.jobs[i].doc, fields)
	if !changed {
		return UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	}
	r.s.jobs[i].doc = merged
	return UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *MemoryJobRepository) Delete(_ context.Context, id string) (DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	r.s.jobs, n = removeRecord(r.s.jobs, id)
	return DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

type MemoryApplicationRepository struct {
	s *MemoryStore
}

func (r *MemoryApplicationRepository) Insert(_ context.Context, app models.Application) (InsertResult, error) {
	id := NewID()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.apps = append(r.s.apps, record{id: id, doc: app.Document()})
	return InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *MemoryApplicationRepository) FindByApplicant(_ context.Context, email string) ([]models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	apps := []models.Application{}
	for _, rec := range r.s.apps {
		if rec.doc[models.KeyApplicantEmail] == email {
			app := models.ApplicationFromDocument(rec.doc)
			app.ID = rec.id
			apps = append(apps, app)
		}
	}
	return apps, nil
}

func (r *MemoryApplicationRepository) Delete(_ context.Context, id string) (DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	r.s.apps, n = removeRecord(r.s.apps, id)
	return DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func (rec record) job() models.Job {
	job := models.JobFromDocument(rec.doc)
	job.ID = rec.id
	return job
}

func indexOf(recs []record, id string) int {
	for i, rec := range recs {
		if rec.id == id {
			return i
		}
	}
	return -1
}

func removeRecord(recs []record, id string) ([]record, int64) {
	i := indexOf(recs, id)
	if i < 0 {
		return recs, 0
	}
	return append(recs[:i:i], recs[i+1:]...), 1
}

// mergeFields applies fields on top of doc the way a $set does and reports
// whether anything actually changed. doc is not modified.
func mergeFields(doc, fields map[string]any) (map[string]any, bool) {
	merged := make(map[string]any, len(doc)+len(fields))
	for k, v := range doc {
		merged[k] = v
	}

	changed := false
	for k, v := range fields {
		if k == models.KeyID {
			continue
		}
		if old, ok := merged[k]; ok && reflect.DeepEqual(old, v) {
			continue
		}
		merged[k] = v
		changed = true
	}
	return merged, changed
}
