package catalog_test

import (
	"context"
	"testing"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
	"github.com/jerikareyna/modasnansi-backend-main/app/catalog"
	"github.com/jerikareyna/modasnansi-backend-main/app/database"
	"github.com/jerikareyna/modasnansi-backend-main/app/database/dbtest"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*catalog.Service, *gorm.DB, dbtest.Refs) {
	t.Helper()
	db := dbtest.Open(t)
	log := logger.NewNop()
	refs := dbtest.SeedRefs(t, db, "A")
	svc := catalog.NewService(
		database.NewUnitOfWork(db, log),
		models.NewProductsRepository(db, log),
		models.NewReferencesRepository(db, log),
		log,
	)
	return svc, db, refs
}

func createInput(refs dbtest.Refs, code, name string) catalog.CreateInput {
	return catalog.CreateInput{
		Code:             code,
		Name:             name,
		Description:      "cotton",
		Stock:            4,
		Genre:            models.GenreFemale,
		Price:            decimal.RequireFromString("12.345"),
		BrandID:          refs.Brand.ID,
		TargetAudienceID: refs.TargetAudience.ID,
		EducationLevelID: refs.EducationLevel.ID,
		CategoryID:       refs.Category.ID,
		SizeID:           refs.Size.ID,
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists with references and defaults", func(t *testing.T) {
		svc, _, refs := newService(t)

		p, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))

		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, models.DefaultImageURL, p.Image)
		assert.Equal(t, "12.35", p.Price.StringFixed(2))
		assert.Equal(t, refs.Brand.Name, p.Brand.Name)
		assert.Equal(t, refs.Size.Name, p.Size.Name)
		assert.Equal(t, refs.EducationLevel.Name, p.EducationLevel.Name)
		assert.Nil(t, p.ProductGroupID)
	})

	t.Run("duplicate name is a conflict regardless of case", func(t *testing.T) {
		svc, db, refs := newService(t)
		_, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createInput(refs, "P-2", "BLOUSE"))

		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Equal(t, int64(1), dbtest.Count(t, db, &models.Product{}))
	})

	t.Run("duplicate code is a conflict", func(t *testing.T) {
		svc, db, refs := newService(t)
		_, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createInput(refs, "p-1", "Skirt"))

		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Equal(t, `product code "p-1" already exists`, err.Error())
		assert.Equal(t, int64(1), dbtest.Count(t, db, &models.Product{}))
	})

	t.Run("missing reference is not found", func(t *testing.T) {
		svc, db, refs := newService(t)
		in := createInput(refs, "P-1", "Blouse")
		in.SizeID = 404

		_, err := svc.Create(ctx, in)

		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "size 404 not found", err.Error())
		assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Product{}))
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		svc, _, refs := newService(t)

		negative := createInput(refs, "P-1", "Blouse")
		negative.Stock = -1
		_, err := svc.Create(ctx, negative)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

		badGenre := createInput(refs, "P-1", "Blouse")
		badGenre.Genre = "OTHER"
		_, err = svc.Create(ctx, badGenre)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

		noName := createInput(refs, "P-1", " ")
		_, err = svc.Create(ctx, noName)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("changes only supplied fields", func(t *testing.T) {
		svc, _, refs := newService(t)
		p, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
		require.NoError(t, err)
		stock := 11
		name := "Silk blouse"

		updated, err := svc.Update(ctx, p.ID, catalog.UpdateInput{Stock: &stock, Name: &name})

		require.NoError(t, err)
		assert.Equal(t, 11, updated.Stock)
		assert.Equal(t, "Silk blouse", updated.Name)
		assert.Equal(t, "P-1", updated.Code)
		assert.Equal(t, "cotton", updated.Description)
	})

	t.Run("keeping its own name is not a conflict", func(t *testing.T) {
		svc, _, refs := newService(t)
		p, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
		require.NoError(t, err)
		name := "blouse"

		_, err = svc.Update(ctx, p.ID, catalog.UpdateInput{Name: &name})

		assert.NoError(t, err)
	})

	t.Run("taking another product's name is a conflict", func(t *testing.T) {
		svc, _, refs := newService(t)
		_, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
		require.NoError(t, err)
		p2, err := svc.Create(ctx, createInput(refs, "P-2", "Skirt"))
		require.NoError(t, err)
		name := "Blouse"

		_, err = svc.Update(ctx, p2.ID, catalog.UpdateInput{Name: &name})

		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("switches a reference", func(t *testing.T) {
		svc, db, refs := newService(t)
		other := dbtest.SeedRefs(t, db, "B")
		p, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, p.ID, catalog.UpdateInput{BrandID: &other.Brand.ID})

		require.NoError(t, err)
		assert.Equal(t, other.Brand.Name, updated.Brand.Name)
		assert.Equal(t, refs.Size.Name, updated.Size.Name)
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		svc, db, refs := newService(t)
		p, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
		require.NoError(t, err)
		stock := -3

		_, err = svc.Update(ctx, p.ID, catalog.UpdateInput{Stock: &stock})

		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		assert.Equal(t, 4, dbtest.Stock(t, db, p.ID))
	})

	t.Run("missing product is not found", func(t *testing.T) {
		svc, _, _ := newService(t)
		stock := 1

		_, err := svc.Update(ctx, 50, catalog.UpdateInput{Stock: &stock})

		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, db, refs := newService(t)
	p, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))

	assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Product{}))
	_, err = svc.Get(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.Delete(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	svc, db, refs := newService(t)
	other := dbtest.SeedRefs(t, db, "B")

	_, err := svc.Create(ctx, createInput(refs, "P-1", "Blouse"))
	require.NoError(t, err)
	in := createInput(other, "P-2", "Skirt")
	in.Price = decimal.RequireFromString("30")
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)
	in = createInput(other, "P-3", "Long skirt")
	in.Genre = models.GenreUnisex
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	tests := []struct {
		name      string
		filters   models.ProductFilters
		params    query.Params
		wantCodes []string
	}{
		{
			name:      "substring on name",
			filters:   models.ProductFilters{Name: "kirt"},
			params:    query.Params{SortBy: "code", SortOrder: "ASC"},
			wantCodes: []string{"P-2", "P-3"},
		},
		{
			name:      "substring is case-sensitive",
			filters:   models.ProductFilters{Name: "SKIRT"},
			wantCodes: []string{},
		},
		{
			name:      "joined reference name",
			filters:   models.ProductFilters{BrandName: "BRAND B"},
			params:    query.Params{SortBy: "code", SortOrder: "DESC"},
			wantCodes: []string{"P-3", "P-2"},
		},
		{
			name:      "combined filters are ANDed",
			filters:   models.ProductFilters{BrandName: "BRAND B", Genre: models.GenreUnisex},
			wantCodes: []string{"P-3"},
		},
		{
			name:      "exact price",
			filters:   models.ProductFilters{Price: ptr(decimal.RequireFromString("30.00"))},
			wantCodes: []string{"P-2"},
		},
		{
			name:      "second page",
			params:    query.Params{SortBy: "code", SortOrder: "ASC", Page: 2, Limit: 2},
			wantCodes: []string{"P-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(ctx, tt.filters, tt.params)

			require.NoError(t, err)
			codes := []string{}
			for _, p := range res.Data {
				codes = append(codes, p.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}

	res, err := svc.List(ctx, models.ProductFilters{}, query.Params{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, query.Pagination{TotalItems: 3, TotalPages: 2, CurrentPage: 1, ItemsPerPage: 2}, res.Pagination)
}

func ptr[T any](v T) *T { return &v }
