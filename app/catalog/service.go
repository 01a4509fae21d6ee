package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
	"github.com/jerikareyna/modasnansi-backend-main/app/database"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateInput struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Stock            int             `json:"stock"`
	Genre            string          `json:"genre"`
	Image            string          `json:"image"`
	Price            decimal.Decimal `json:"price"`
	BrandID          uint            `json:"brand_id"`
	TargetAudienceID uint            `json:"target_audience_id"`
	EducationLevelID uint            `json:"education_level_id"`
	CategoryID       uint            `json:"category_id"`
	SizeID           uint            `json:"size_id"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Code             *string          `json:"code"`
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Stock            *int             `json:"stock"`
	Genre            *string          `json:"genre"`
	Image            *string          `json:"image"`
	Price            *decimal.Decimal `json:"price"`
	BrandID          *uint            `json:"brand_id"`
	TargetAudienceID *uint            `json:"target_audience_id"`
	EducationLevelID *uint            `json:"education_level_id"`
	CategoryID       *uint            `json:"category_id"`
	SizeID           *uint            `json:"size_id"`
}

// Service is the product write and read path.
type Service struct {
	uow      database.Transactor
	products *models.ProductsRepository
	refs     *models.ReferencesRepository
	log      *logger.Logger
}

func NewService(uow database.Transactor, products *models.ProductsRepository, refs *models.ReferencesRepository, baseLog *logger.Logger) *Service {
	return &Service{
		uow:      uow,
		products: products,
		refs:     refs,
		log:      baseLog.With("component", "ProductService"),
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Product, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	if in.Image == "" {
		in.Image = models.DefaultImageURL
	}

	var created *models.Product
	err := s.uow.Do(ctx, "create product", func(tx *gorm.DB) error {
		if err := s.ensureUnique(ctx, tx, in.Code, in.Name, 0); err != nil {
			return err
		}
		if err := s.resolveReferences(ctx, tx, referenceIDs{
			brand:          &in.BrandID,
			targetAudience: &in.TargetAudienceID,
			category:       &in.CategoryID,
			size:           &in.SizeID,
			educationLevel: &in.EducationLevelID,
		}); err != nil {
			return err
		}

		product := &models.Product{
			Code:             in.Code,
			Name:             in.Name,
			Description:      in.Description,
			Stock:            in.Stock,
			Genre:            in.Genre,
			Image:            in.Image,
			Price:            in.Price.Round(2),
			BrandID:          in.BrandID,
			TargetAudienceID: in.TargetAudienceID,
			EducationLevelID: in.EducationLevelID,
			CategoryID:       in.CategoryID,
			SizeID:           in.SizeID,
		}
		if err := s.products.Create(ctx, tx, product); err != nil {
			return err
		}

		var err error
		created, err = s.products.GetByID(ctx, tx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created", "product_id", created.ID, "code", created.Code)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Product, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	var updated *models.Product
	err := s.uow.Do(ctx, "update product", func(tx *gorm.DB) error {
		if _, err := s.load(ctx, tx, id); err != nil {
			return err
		}

		changes := map[string]any{"date_updated": time.Now()}
		var code, name string
		if in.Code != nil {
			code = strings.TrimSpace(*in.Code)
			changes["code"] = code
		}
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
			changes["name"] = name
		}
		if err := s.ensureUnique(ctx, tx, code, name, id); err != nil {
			return err
		}
		if err := s.resolveReferences(ctx, tx, referenceIDs{
			brand:          in.BrandID,
			targetAudience: in.TargetAudienceID,
			category:       in.CategoryID,
			size:           in.SizeID,
			educationLevel: in.EducationLevelID,
		}); err != nil {
			return err
		}

		if in.Description != nil {
			changes["description"] = *in.Description
		}
		if in.Stock != nil {
			changes["stock"] = *in.Stock
		}
		if in.Genre != nil {
			changes["genre"] = *in.Genre
		}
		if in.Image != nil {
			changes["image"] = *in.Image
		}
		if in.Price != nil {
			changes["price"] = in.Price.Round(2)
		}
		setID(changes, "brand_id", in.BrandID)
		setID(changes, "target_audience_id", in.TargetAudienceID)
		setID(changes, "education_level_id", in.EducationLevelID)
		setID(changes, "category_id", in.CategoryID)
		setID(changes, "size_id", in.SizeID)

		if err := s.products.Update(ctx, tx, id, changes); err != nil {
			return err
		}

		var err error
		updated, err = s.products.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product updated", "product_id", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, "delete product", func(tx *gorm.DB) error {
		if err := s.products.Delete(ctx, tx, id); err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				return productNotFound(id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("product deleted", "product_id", id)
	return nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.load(ctx, nil, id)
	if err != nil {
		return nil, apperr.Wrap(err, "get product")
	}
	return product, nil
}

func (s *Service) List(ctx context.Context, filters models.ProductFilters, params query.Params) (query.Result[models.Product], error) {
	params.Filters = filters.Filters()
	res, err := s.products.GetFilteredProducts(ctx, params)
	if err != nil {
		return query.Result[models.Product]{}, apperr.Wrap(err, "list products")
	}
	return res, nil
}

func (s *Service) load(ctx context.Context, tx *gorm.DB, id uint) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, tx, id)
	if errors.Is(err, models.ErrProductNotFound) {
		return nil, productNotFound(id)
	}
	return product, err
}

// ensureUnique rejects a code or name already used by another product,
// ignoring case. Empty values are not checked.
func (s *Service) ensureUnique(ctx context.Context, tx *gorm.DB, code, name string, excludeID uint) error {
	if name != "" {
		taken, err := s.products.NameTaken(ctx, tx, name, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("product name %q already exists", name)
		}
	}
	if code != "" {
		taken, err := s.products.CodeTaken(ctx, tx, code, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("product code %q already exists", code)
		}
	}
	return nil
}

type referenceIDs struct {
	brand          *uint
	targetAudience *uint
	category       *uint
	size           *uint
	educationLevel *uint
}

func (s *Service) resolveReferences(ctx context.Context, tx *gorm.DB, ids referenceIDs) error {
	checks := []struct {
		kind models.ReferenceKind
		id   *uint
	}{
		{models.KindBrand, ids.brand},
		{models.KindTargetAudience, ids.targetAudience},
		{models.KindCategory, ids.category},
		{models.KindSize, ids.size},
		{models.KindEducationLevel, ids.educationLevel},
	}
	for _, check := range checks {
		if check.id == nil {
			continue
		}
		if _, err := s.refs.Get(ctx, tx, check.kind, *check.id); err != nil {
			if errors.Is(err, models.ErrReferenceNotFound) {
				return apperr.NotFound("%s %d not found", check.kind.Label(), *check.id)
			}
			return err
		}
	}
	return nil
}

func validateCreate(in CreateInput) error {
	switch {
	case in.Code == "":
		return apperr.BadRequest("code is required")
	case in.Name == "":
		return apperr.BadRequest("name is required")
	case in.Stock < 0:
		return apperr.BadRequest("stock must not be negative")
	case !models.ValidGenre(in.Genre):
		return apperr.BadRequest("genre must be one of %s, %s, %s", models.GenreMale, models.GenreFemale, models.GenreUnisex)
	case in.Price.IsNegative():
		return apperr.BadRequest("price must not be negative")
	}
	return nil
}

func validateUpdate(in UpdateInput) error {
	switch {
	case in.Code != nil && strings.TrimSpace(*in.Code) == "":
		return apperr.BadRequest("code must not be empty")
	case in.Name != nil && strings.TrimSpace(*in.Name) == "":
		return apperr.BadRequest("name must not be empty")
	case in.Stock != nil && *in.Stock < 0:
		return apperr.BadRequest("stock must not be negative")
	case in.Genre != nil && !models.ValidGenre(*in.Genre):
		return apperr.BadRequest("genre must be one of %s, %s, %s", models.GenreMale, models.GenreFemale, models.GenreUnisex)
	case in.Price != nil && in.Price.IsNegative():
		return apperr.BadRequest("price must not be negative")
	}
	return nil
}

func setID(changes map[string]any, column string, id *uint) {
	if id != nil {
		changes[column] = *id
	}
}

func productNotFound(id uint) *apperr.Error {
	return apperr.NotFound("product %d not found", id)
}
