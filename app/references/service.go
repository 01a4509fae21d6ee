// Package references serves the lookup tables products and groups point at:
// brands, categories, sizes, education levels and target audiences.
package references

import (
	"context"
	"errors"
	"strings"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
	"github.com/jerikareyna/modasnansi-backend-main/app/database"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"gorm.io/gorm"
)

type Service struct {
	uow  database.Transactor
	refs *models.ReferencesRepository
	log  *logger.Logger
}

func NewService(uow database.Transactor, refs *models.ReferencesRepository, baseLog *logger.Logger) *Service {
	return &Service{
		uow:  uow,
		refs: refs,
		log:  baseLog.With("component", "ReferenceService"),
	}
}

// Create stores name trimmed and upper-cased. A name that normalizes to an
// existing one is a conflict.
func (s *Service) Create(ctx context.Context, kind models.ReferenceKind, name string) (models.Reference, error) {
	if !kind.Valid() {
		return models.Reference{}, apperr.BadRequest("unknown reference kind %q", kind)
	}
	if strings.TrimSpace(name) == "" {
		return models.Reference{}, apperr.BadRequest("name is required")
	}

	var created models.Reference
	err := s.uow.Do(ctx, "create "+kind.Label(), func(tx *gorm.DB) error {
		exists, err := s.refs.NameExists(ctx, tx, kind, name)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("%s %q already exists", kind.Label(), models.NormalizeReferenceName(name))
		}
		created, err = s.refs.Create(ctx, tx, kind, name)
		return err
	})
	if err != nil {
		return models.Reference{}, err
	}

	s.log.Info("reference created", "kind", kind, "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) Get(ctx context.Context, kind models.ReferenceKind, id uint) (models.Reference, error) {
	ref, err := s.refs.Get(ctx, nil, kind, id)
	if errors.Is(err, models.ErrReferenceNotFound) {
		return models.Reference{}, apperr.NotFound("%s %d not found", kind.Label(), id)
	}
	if err != nil {
		return models.Reference{}, apperr.Wrap(err, "get "+kind.Label())
	}
	return ref, nil
}

// List filters by a case-sensitive substring of the stored name.
func (s *Service) List(ctx context.Context, kind models.ReferenceKind, name string, params query.Params) (query.Result[models.Reference], error) {
	res, err := s.refs.GetFiltered(ctx, kind, name, params)
	if err != nil {
		return query.Result[models.Reference]{}, apperr.Wrap(err, "list "+kind.Label())
	}
	return res, nil
}
