package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"gorm.io/gorm"
)

// jobRow keeps the whole job document as JSON next to the columns the
// queries filter on. Seq preserves insertion order.
type jobRow struct {
	Seq        uint64 `gorm:"primaryKey;autoIncrement"`
	DocID      string `gorm:"column:doc_id;size:24;uniqueIndex;not null"`
	OwnerEmail string `gorm:"column:owner_email;index"`
	Document   string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (jobRow) TableName() string { return "jobs" }

type applicationRow struct {
	Seq            uint64 `gorm:"primaryKey;autoIncrement"`
	DocID          string `gorm:"column:doc_id;size:24;uniqueIndex;not null"`
	ApplicantEmail string `gorm:"column:applicant_email;index"`
	JobID          string `gorm:"column:job_id;index"`
	Document       string `gorm:"type:text;not null"`
	CreatedAt      time.Time
}

func (applicationRow) TableName() string { return "job_applications" }

// GormStore is the relational home for both collections.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the necessary tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&jobRow{}, &applicationRow{})
}

func (s *GormStore) Jobs() *GormJobRepository {
	return &GormJobRepository{db: s.db}
}

func (s *GormStore) Applications() *GormApplicationRepository {
	return &GormApplicationRepository{db: s.db}
}

type GormJobRepository struct {
	db *gorm.DB
}

func (r *GormJobRepository) FindByOwner(ctx context.Context, email string) ([]models.Job, error) {
	var rows []jobRow
	err := r.db.WithContext(ctx).
		Where("owner_email = ?", email).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find jobs by owner: %w", err)
	}
	return rowsToJobs(rows)
}

func (r *GormJobRepository) List(ctx context.Context, limit int64) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Order("seq ASC")
	if limit > 0 {
		q = q.Limit(int(limit))
	}

	var rows []jobRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return rowsToJobs(rows)
}

func (r *GormJobRepository) Get(ctx context.Context, id string) (models.Job, bool, error) {
	var row jobRow
	err := r.db.WithContext(ctx).Where("doc_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Job{}, false, nil
		}
		return models.Job{}, false, fmt.Errorf("find job: %w", err)
	}

	job, err := row.job()
	if err != nil {
		return models.Job{}, false, err
	}
	return job, true, nil
}

func (r *GormJobRepository) GetMany(ctx context.Context, ids []string) (map[string]models.Job, error) {
	found := make(map[string]models.Job, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var rows []jobRow
	if err := r.db.WithContext(ctx).Where("doc_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find jobs by id: %w", err)
	}

	for _, row := range rows {
		job, err := row.job()
		if err != nil {
			return nil, err
		}
		found[job.ID] = job
	}
	return found, nil
}

func (r *GormJobRepository) Insert(ctx context.Context, job models.Job) (InsertResult, error) {
	body, err := json.Marshal(job.Document())
	if err != nil {
		return InsertResult{}, fmt.Errorf("marshal job document: %w", err)
	}

	row := &jobRow{
		DocID:      NewID(),
		OwnerEmail: job.OwnerEmail,
		Document:   string(body),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return InsertResult{}, fmt.Errorf("insert job: %w", err)
	}
	return InsertResult{Acknowledged: true, InsertedID: row.DocID}, nil
}

func (r *GormJobRepository) Update(ctx context.Context, id string, fields map[string]any) (UpdateResult, error) {
	result := UpdateResult{Acknowledged: true}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row jobRow
		if err := tx.Where("doc_id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		result.MatchedCount = 1

		doc, err := decodeDocument(row.Document)
		if err != nil {
			return err
		}

		// Round trip through JSON so values compare the way they are stored.
		patch, err := normalizeJSON(fields)
		if err != nil {
			return err
		}
		merged, changed := mergeFields(doc, patch)
		if !changed {
			return nil
		}

		body, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("marshal job document: %w", err)
		}
		err = tx.Model(&row).Updates(map[string]interface{}{
			"document":    string(body),
			"owner_email": models.JobFromDocument(merged).OwnerEmail,
		}).Error
		if err != nil {
			return err
		}
		result.ModifiedCount = 1
		return nil
	})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update job: %w", err)
	}
	return result, nil
}

func (r *GormJobRepository) Delete(ctx context.Context, id string) (DeleteResult, error) {
	res := r.db.WithContext(ctx).Where("doc_id = ?", id).Delete(&jobRow{})
	if res.Error != nil {
		return DeleteResult{}, fmt.Errorf("delete job: %w", res.Error)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

type GormApplicationRepository struct {
	db *gorm.DB
}

func (r *GormApplicationRepository) Insert(ctx context.Context, app models.Application) (InsertResult, error) {
	body, err := json.Marshal(app.Document())
	if err != nil {
		return InsertResult{}, fmt.Errorf("marshal application document: %w", err)
	}

	row := &applicationRow{
		DocID:          NewID(),
		ApplicantEmail: app.ApplicantEmail,
		JobID:          app.JobID,
		Document:       string(body),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return InsertResult{}, fmt.Errorf("insert application: %w", err)
	}
	return InsertResult{Acknowledged: true, InsertedID: row.DocID}, nil
}

func (r *GormApplicationRepository) FindByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	var rows []applicationRow
	err := r.db.WithContext(ctx).
		Where("applicant_email = ?", email).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find applications by applicant: %w", err)
	}

	apps := make([]models.Application, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeDocument(row.Document)
		if err != nil {
			return nil, err
		}
		app := models.ApplicationFromDocument(doc)
		app.ID = row.DocID
		apps = append(apps, app)
	}
	return apps, nil
}

func (r *GormApplicationRepository) Delete(ctx context.Context, id string) (DeleteResult, error) {
	res := r.db.WithContext(ctx).Where("doc_id = ?", id).Delete(&applicationRow{})
	if res.Error != nil {
		return DeleteResult{}, fmt.Errorf("delete application: %w", res.Error)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

func (row jobRow) job() (models.Job, error) {
	doc, err := decodeDocument(row.Document)
	if err != nil {
		return models.Job{}, err
	}
	job := models.JobFromDocument(doc)
	job.ID = row.DocID
	return job, nil
}

func rowsToJobs(rows []jobRow) ([]models.Job, error) {
	jobs := make([]models.Job, 0, len(rows))
	for _, row := range rows {
		job, err := row.job()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func decodeDocument(body string) (map[string]any, error) {
	doc := map[string]any{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("decode stored document: %w", err)
	}
	return doc, nil
}

func normalizeJSON(fields map[string]any) (map[string]any, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal update fields: %w", err)
	}
	return decodeDocument(string(body))
}
