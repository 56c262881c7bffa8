package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

func TestSubmissionRepository(t *testing.T) {
	repo := NewSubmissionRepository(openTestDB(t))
	ctx := context.Background()

	latest, err := repo.LatestByForm(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, latest)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Submission{
			ID:          uuid.NewString(),
			FormID:      1,
			Data:        datatypes.JSONMap{"f1": "Ada"},
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.Submission{ID: uuid.NewString(), FormID: 2, SubmittedAt: base}))

	count, err := repo.CountByForm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	latest, err = repo.LatestByForm(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Equal(base.Add(2*time.Minute)))

	subs, err := repo.ListByForm(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Ada", subs[0].Data["f1"])

	require.NoError(t, repo.DeleteByForm(ctx, 1))
	count, err = repo.CountByForm(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}
