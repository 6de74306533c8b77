package services

import (
	"context"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/justsurfingit/job-seeker-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockJobRepository is a mock implementation of store.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByOwner(ctx context.Context, email string) ([]models.Job, error) {
	args := m.Called(ctx, email)
	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *MockJobRepository) List(ctx context.Context, limit int64) ([]models.Job, error) {
	args := m.Called(ctx, limit)
	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *MockJobRepository) Get(ctx context.Context, id string) (models.Job, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Job), args.Bool(1), args.Error(2)
}

func (m *MockJobRepository) GetMany(ctx context.Context, ids []string) (map[string]models.Job, error) {
	args := m.Called(ctx, ids)
	jobs, _ := args.Get(0).(map[string]models.Job)
	return jobs, args.Error(1)
}

func (m *MockJobRepository) Insert(ctx context.Context, job models.Job) (store.InsertResult, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(store.InsertResult), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, id string, fields map[string]any) (store.UpdateResult, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(store.UpdateResult), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, id string) (store.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.DeleteResult), args.Error(1)
}

// MockApplicationRepository is a mock implementation of store.ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Insert(ctx context.Context, app models.Application) (store.InsertResult, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(store.InsertResult), args.Error(1)
}

func (m *MockApplicationRepository) FindByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	args := m.Called(ctx, email)
	apps, _ := args.Get(0).([]models.Application)
	return apps, args.Error(1)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id string) (store.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.DeleteResult), args.Error(1)
}
