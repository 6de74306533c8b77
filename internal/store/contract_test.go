package store

import (
	"context"
	"testing"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behavior every backend must share.
func runRepositoryContract(t *testing.T, jobs JobRepository, apps ApplicationRepository) {
	ctx := context.Background()

	t.Run("InsertAndGet", func(t *testing.T) {
		in := models.Job{
			OwnerEmail: "owner-get@x.com",
			Title:      "Engineer",
			Company:    "Acme",
			Fields:     map[string]any{"category": "Backend"},
		}
		res, err := jobs.Insert(ctx, in)
		require.NoError(t, err)
		require.True(t, res.Acknowledged)
		require.True(t, ValidID(res.InsertedID))

		got, ok, err := jobs.Get(ctx, res.InsertedID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, res.InsertedID, got.ID)
		assert.Equal(t, in.Document(), got.Document())
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, ok, err := jobs.Get(ctx, NewID())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("FindByOwnerKeepsOrder", func(t *testing.T) {
		var ids []string
		for _, title := range []string{"first", "second", "third"} {
			res, err := jobs.Insert(ctx, models.Job{OwnerEmail: "owner-list@x.com", Title: title})
			require.NoError(t, err)
			ids = append(ids, res.InsertedID)
		}
		_, err := jobs.Insert(ctx, models.Job{OwnerEmail: "someone-else@x.com", Title: "other"})
		require.NoError(t, err)

		got, err := jobs.FindByOwner(ctx, "owner-list@x.com")
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, job := range got {
			assert.Equal(t, ids[i], job.ID)
		}

		none, err := jobs.FindByOwner(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("ListLimit", func(t *testing.T) {
		for i := 0; i < 7; i++ {
			_, err := jobs.Insert(ctx, models.Job{OwnerEmail: "owner-limit@x.com", Title: "filler"})
			require.NoError(t, err)
		}

		limited, err := jobs.List(ctx, 6)
		require.NoError(t, err)
		assert.Len(t, limited, 6)

		all, err := jobs.List(ctx, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 7)
	})

	t.Run("UpdateMerges", func(t *testing.T) {
		res, err := jobs.Insert(ctx, models.Job{
			OwnerEmail: "owner-update@x.com",
			Title:      "Engineer",
			Location:   "Berlin",
		})
		require.NoError(t, err)

		upd, err := jobs.Update(ctx, res.InsertedID, map[string]any{"title": "Senior Engineer", "_id": "ignored"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), upd.MatchedCount)
		assert.Equal(t, int64(1), upd.ModifiedCount)

		got, ok, err := jobs.Get(ctx, res.InsertedID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, res.InsertedID, got.ID)
		assert.Equal(t, "Senior Engineer", got.Title)
		assert.Equal(t, "Berlin", got.Location)
		assert.Equal(t, "owner-update@x.com", got.OwnerEmail)

		same, err := jobs.Update(ctx, res.InsertedID, map[string]any{"title": "Senior Engineer"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), same.MatchedCount)
		assert.Equal(t, int64(0), same.ModifiedCount)

		missing, err := jobs.Update(ctx, NewID(), map[string]any{"title": "x"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), missing.MatchedCount)
		assert.Equal(t, int64(0), missing.ModifiedCount)
	})

	t.Run("UpdateMovesOwner", func(t *testing.T) {
		res, err := jobs.Insert(ctx, models.Job{OwnerEmail: "owner-before@x.com", Title: "Engineer"})
		require.NoError(t, err)

		_, err = jobs.Update(ctx, res.InsertedID, map[string]any{models.KeyOwnerEmail: "owner-after@x.com"})
		require.NoError(t, err)

		after, err := jobs.FindByOwner(ctx, "owner-after@x.com")
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, res.InsertedID, after[0].ID)

		before, err := jobs.FindByOwner(ctx, "owner-before@x.com")
		require.NoError(t, err)
		assert.Empty(t, before)
	})

	t.Run("DeleteCounts", func(t *testing.T) {
		res, err := jobs.Insert(ctx, models.Job{OwnerEmail: "owner-delete@x.com"})
		require.NoError(t, err)

		del, err := jobs.Delete(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.True(t, del.Acknowledged)
		assert.Equal(t, int64(1), del.DeletedCount)

		again, err := jobs.Delete(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), again.DeletedCount)

		_, ok, err := jobs.Get(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("GetMany", func(t *testing.T) {
		a, err := jobs.Insert(ctx, models.Job{Title: "A"})
		require.NoError(t, err)
		b, err := jobs.Insert(ctx, models.Job{Title: "B"})
		require.NoError(t, err)

		found, err := jobs.GetMany(ctx, []string{a.InsertedID, b.InsertedID, NewID()})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Equal(t, "A", found[a.InsertedID].Title)
		assert.Equal(t, "B", found[b.InsertedID].Title)

		empty, err := jobs.GetMany(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Applications", func(t *testing.T) {
		jobID := NewID()
		first, err := apps.Insert(ctx, models.Application{
			ApplicantEmail: "applicant@y.com",
			JobID:          jobID,
			Fields:         map[string]any{"linkedin": "https://linkedin.test/b"},
		})
		require.NoError(t, err)
		require.True(t, first.Acknowledged)

		second, err := apps.Insert(ctx, models.Application{ApplicantEmail: "applicant@y.com", JobID: NewID()})
		require.NoError(t, err)
		_, err = apps.Insert(ctx, models.Application{ApplicantEmail: "other@y.com", JobID: jobID})
		require.NoError(t, err)

		got, err := apps.FindByApplicant(ctx, "applicant@y.com")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.InsertedID, got[0].ID)
		assert.Equal(t, jobID, got[0].JobID)
		assert.Equal(t, "https://linkedin.test/b", got[0].Fields["linkedin"])
		assert.Equal(t, second.InsertedID, got[1].ID)

		del, err := apps.Delete(ctx, first.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), del.DeletedCount)

		got, err = apps.FindByApplicant(ctx, "applicant@y.com")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, second.InsertedID, got[0].ID)
	})
}
