package models_test

import (
	"context"
	"testing"

	"github.com/jerikareyna/modasnansi-backend-main/app/database/dbtest"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceKinds(t *testing.T) {
	assert.Equal(t, "education level", models.KindEducationLevel.Label())
	assert.Equal(t, "target_audiences", models.KindTargetAudience.Table())
	assert.False(t, models.ReferenceKind("colour").Valid())
	assert.Equal(t, "", models.ReferenceKind("colour").Table())
	assert.Equal(t, "ACME CO", models.NormalizeReferenceName("  acme co "))
}

func TestReferencesRepository(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	repo := models.NewReferencesRepository(db, logger.NewNop())

	ref, err := repo.Create(ctx, nil, models.KindSize, " xl ")
	require.NoError(t, err)
	assert.Equal(t, "XL", ref.Name)
	assert.Equal(t, models.KindSize, ref.Kind)

	got, err := repo.Get(ctx, nil, models.KindSize, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, "XL", got.Name)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repo.Get(ctx, nil, models.KindBrand, ref.ID)
	assert.ErrorIs(t, err, models.ErrReferenceNotFound)

	exists, err := repo.NameExists(ctx, nil, models.KindSize, "Xl")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NameExists(ctx, nil, models.KindCategory, "XL")
	require.NoError(t, err)
	assert.False(t, exists)
}
