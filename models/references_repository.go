package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"gorm.io/gorm"
)

// ErrReferenceNotFound is returned when a reference entity is not found.
var ErrReferenceNotFound = errors.New("reference not found")

// ReferenceKind names one of the lookup tables a product points at.
type ReferenceKind string

const (
	KindBrand          ReferenceKind = "brand"
	KindCategory       ReferenceKind = "category"
	KindSize           ReferenceKind = "size"
	KindEducationLevel ReferenceKind = "education_level"
	KindTargetAudience ReferenceKind = "target_audience"
)

// ReferenceKinds lists every kind in a stable order.
var ReferenceKinds = []ReferenceKind{KindBrand, KindCategory, KindSize, KindEducationLevel, KindTargetAudience}

func (k ReferenceKind) Valid() bool {
	switch k {
	case KindBrand, KindCategory, KindSize, KindEducationLevel, KindTargetAudience:
		return true
	}
	return false
}

func (k ReferenceKind) Table() string {
	switch k {
	case KindBrand:
		return "brands"
	case KindCategory:
		return "categories"
	case KindSize:
		return "sizes"
	case KindEducationLevel:
		return "education_levels"
	case KindTargetAudience:
		return "target_audiences"
	}
	return ""
}

// Label is the human-readable name used in error messages.
func (k ReferenceKind) Label() string {
	return strings.ReplaceAll(string(k), "_", " ")
}

func (k ReferenceKind) schema() query.Schema {
	t := k.Table()
	return query.Schema{
		Table: t,
		Sortable: map[string]string{
			"id":           t + ".id",
			"name":         t + ".name",
			"date_created": t + ".date_created",
			"date_updated": t + ".date_updated",
		},
		DefaultSort: "date_updated",
	}
}

// NormalizeReferenceName is the stored form of a reference name.
func NormalizeReferenceName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Reference is a read-only snapshot of a reference entity row.
type Reference struct {
	Kind      ReferenceKind `gorm:"-" json:"-"`
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `gorm:"column:date_created" json:"date_created"`
	UpdatedAt time.Time     `gorm:"column:date_updated" json:"date_updated"`
}

type ReferencesRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferencesRepository(db *gorm.DB, baseLog *logger.Logger) *ReferencesRepository {
	return &ReferencesRepository{
		db:  db,
		log: baseLog.With("repo", "ReferencesRepository"),
	}
}

func (r *ReferencesRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx)
}

// Get returns the snapshot of one reference row.
func (r *ReferencesRepository) Get(ctx context.Context, tx *gorm.DB, kind ReferenceKind, id uint) (Reference, error) {
	var ref Reference
	if err := r.conn(ctx, tx).
		Table(kind.Table()).
		Where("id = ?", id).
		Take(&ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Reference{}, ErrReferenceNotFound
		}
		return Reference{}, err
	}
	ref.Kind = kind
	return ref, nil
}

// NameExists compares against the normalized name.
func (r *ReferencesRepository) NameExists(ctx context.Context, tx *gorm.DB, kind ReferenceKind, name string) (bool, error) {
	var count int64
	if err := r.conn(ctx, tx).
		Table(kind.Table()).
		Where("name = ?", NormalizeReferenceName(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReferencesRepository) Create(ctx context.Context, tx *gorm.DB, kind ReferenceKind, name string) (Reference, error) {
	name = NormalizeReferenceName(name)
	db := r.conn(ctx, tx)

	var (
		err error
		ref = Reference{Kind: kind, Name: name}
	)
	switch kind {
	case KindBrand:
		m := &Brand{Name: name}
		err = db.Create(m).Error
		ref.ID, ref.CreatedAt, ref.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	case KindCategory:
		m := &Category{Name: name}
		err = db.Create(m).Error
		ref.ID, ref.CreatedAt, ref.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	case KindSize:
		m := &Size{Name: name}
		err = db.Create(m).Error
		ref.ID, ref.CreatedAt, ref.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	case KindEducationLevel:
		m := &EducationLevel{Name: name}
		err = db.Create(m).Error
		ref.ID, ref.CreatedAt, ref.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	case KindTargetAudience:
		m := &TargetAudience{Name: name}
		err = db.Create(m).Error
		ref.ID, ref.CreatedAt, ref.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	default:
		return Reference{}, ErrReferenceNotFound
	}
	if err != nil {
		return Reference{}, err
	}
	return ref, nil
}

// Count returns the number of rows of one kind.
func (r *ReferencesRepository) Count(ctx context.Context, kind ReferenceKind) (int64, error) {
	var count int64
	err := r.conn(ctx, nil).Table(kind.Table()).Count(&count).Error
	return count, err
}

func (r *ReferencesRepository) GetFiltered(ctx context.Context, kind ReferenceKind, name string, params query.Params) (query.Result[Reference], error) {
	params.Filters = []query.Filter{query.Contains(kind.Table()+".name", name)}
	plan, err := kind.schema().Compose(r.db.Dialector.Name(), params)
	if err != nil {
		return query.Result[Reference]{}, err
	}

	var total int64
	if err := r.conn(ctx, nil).Table(kind.Table()).
		Scopes(plan.FilterScope()).
		Count(&total).Error; err != nil {
		return query.Result[Reference]{}, err
	}

	refs := []Reference{}
	if err := r.conn(ctx, nil).Table(kind.Table()).
		Scopes(plan.FilterScope(), plan.PageScope()).
		Find(&refs).Error; err != nil {
		return query.Result[Reference]{}, err
	}
	for i := range refs {
		refs[i].Kind = kind
	}

	return query.Result[Reference]{
		Data:       refs,
		Pagination: query.NewPagination(total, plan.Page, plan.Limit),
	}, nil
}
