// Package dbtest opens isolated, migrated in-memory SQLite databases for
// storage-level tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jerikareyna/modasnansi-backend-main/app/database"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a fresh migrated database with foreign keys enforced. It is
// closed when the test ends. A single connection keeps the in-memory
// database alive and serialises transactions.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         database.NewGormLogger(logger.NewNop()),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Refs holds one row of every reference kind.
type Refs struct {
	Brand          models.Brand
	Category       models.Category
	Size           models.Size
	EducationLevel models.EducationLevel
	TargetAudience models.TargetAudience
}

// SeedRefs inserts one row per reference kind.
func SeedRefs(t testing.TB, db *gorm.DB, suffix string) Refs {
	t.Helper()
	refs := Refs{
		Brand:          models.Brand{Name: "BRAND " + suffix},
		Category:       models.Category{Name: "CATEGORY " + suffix},
		Size:           models.Size{Name: "SIZE " + suffix},
		EducationLevel: models.EducationLevel{Name: "LEVEL " + suffix},
		TargetAudience: models.TargetAudience{Name: "AUDIENCE " + suffix},
	}
	for _, m := range []any{&refs.Brand, &refs.Category, &refs.Size, &refs.EducationLevel, &refs.TargetAudience} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed reference: %v", err)
		}
	}
	return refs
}

// SeedProduct inserts a product with the given code, name and stock.
func SeedProduct(t testing.TB, db *gorm.DB, refs Refs, code, name string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Code:             code,
		Name:             name,
		Description:      "description of " + name,
		Stock:            stock,
		Genre:            models.GenreUnisex,
		Image:            models.DefaultImageURL,
		Price:            decimal.RequireFromString("19.99"),
		BrandID:          refs.Brand.ID,
		TargetAudienceID: refs.TargetAudience.ID,
		EducationLevelID: refs.EducationLevel.ID,
		CategoryID:       refs.Category.ID,
		SizeID:           refs.Size.ID,
	}
	if err := db.Omit("Brand", "TargetAudience", "EducationLevel", "Category", "Size").Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

// Stock reads a product's stock directly.
func Stock(t testing.TB, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	if err := db.Select("stock").Where("id = ?", id).Take(&p).Error; err != nil {
		t.Fatalf("read stock of %d: %v", id, err)
	}
	return p.Stock
}

// Count returns the row count of a model's table.
func Count(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
