// Package groups owns the write path of the product group aggregate: a
// group, its variation products, its recommended products and its
// category, brand and target audience references. Every write resolves all
// references first and then persists, inside one unit of work.
package groups

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

type CreateInput struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	Image                 string `json:"image"`
	VariationIDs          []uint `json:"variation_ids"`
	RecommendedProductIDs []uint `json:"recommended_product_ids"`
	CategoryID            uint   `json:"category_id"`
	BrandID               uint   `json:"brand_id"`
	TargetAudienceID      uint   `json:"target_audience_id"`
}

// UpdateInput is a partial update. Nil fields are left unchanged, and so
// are empty id lists: an empty list does not clear the relation.
type UpdateInput struct {
	Name                  *string `json:"name"`
	Description           *string `json:"description"`
	Image                 *string `json:"image"`
	VariationIDs          []uint  `json:"variation_ids"`
	RecommendedProductIDs []uint  `json:"recommended_product_ids"`
	CategoryID            *uint   `json:"category_id"`
	BrandID               *uint   `json:"brand_id"`
	TargetAudienceID      *uint   `json:"target_audience_id"`
}

type Coordinator struct {
	uow      database.Transactor
	groups   *models.ProductGroupsRepository
	products *models.ProductsRepository
	refs     *models.ReferencesRepository
	log      *logger.Logger
}

func NewCoordinator(
	uow database.Transactor,
	groups *models.ProductGroupsRepository,
	products *models.ProductsRepository,
	refs *models.ReferencesRepository,
	baseLog *logger.Logger,
) *Coordinator {
	return &Coordinator{
		uow:      uow,
		groups:   groups,
		products: products,
		refs:     refs,
		log:      baseLog.With("component", "GroupCoordinator"),
	}
}

func (c *Coordinator) Create(ctx context.Context, in CreateInput) (*models.ProductGroup, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	image := in.Image
	if image == "" {
		image = models.DefaultImageURL
	}

	var created *models.ProductGroup
	err := c.uow.Do(ctx, "create product group", func(tx *gorm.DB) error {
		variations, err := c.resolveProducts(ctx, tx, "variation products", in.VariationIDs)
		if err != nil {
			return err
		}
		recommended, err := c.resolveProducts(ctx, tx, "recommended products", in.RecommendedProductIDs)
		if err != nil {
			return err
		}
		if err := c.resolveReferences(ctx, tx, &in.CategoryID, &in.BrandID, &in.TargetAudienceID); err != nil {
			return err
		}

		group := &models.ProductGroup{
			Name:                name,
			Description:         in.Description,
			Image:               image,
			Variations:          variations,
			RecommendedProducts: recommended,
			CategoryID:          in.CategoryID,
			BrandID:             in.BrandID,
			TargetAudienceID:    in.TargetAudienceID,
		}
		if err := c.groups.Create(ctx, tx, group); err != nil {
			return err
		}

		created, err = c.groups.GetByID(ctx, tx, group.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("product group created",
		"group_id", created.ID,
		"variations", len(created.Variations),
		"recommended_products", len(created.RecommendedProducts),
	)
	return created, nil
}

// Update applies a partial update. Relations named by a non-empty id list
// are replaced wholesale; references are re-resolved only when supplied.
func (c *Coordinator) Update(ctx context.Context, id uint, in UpdateInput) (*models.ProductGroup, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.BadRequest("name must not be empty")
	}

	var updated *models.ProductGroup
	err := c.uow.Do(ctx, "update product group", func(tx *gorm.DB) error {
		current, err := c.load(ctx, tx, id)
		if err != nil {
			return err
		}

		patch := models.GroupPatch{
			Name:             trimmed(in.Name),
			Description:      in.Description,
			Image:            in.Image,
			CategoryID:       in.CategoryID,
			BrandID:          in.BrandID,
			TargetAudienceID: in.TargetAudienceID,
		}
		if len(in.VariationIDs) > 0 {
			if patch.Variations, err = c.resolveProducts(ctx, tx, "variation products", in.VariationIDs); err != nil {
				return err
			}
		}
		if len(in.RecommendedProductIDs) > 0 {
			if patch.RecommendedProducts, err = c.resolveProducts(ctx, tx, "recommended products", in.RecommendedProductIDs); err != nil {
				return err
			}
		}
		if err := c.resolveReferences(ctx, tx, in.CategoryID, in.BrandID, in.TargetAudienceID); err != nil {
			return err
		}

		next := patch.ApplyTo(*current)
		if err := c.groups.Persist(ctx, tx, &next, patch); err != nil {
			return err
		}

		updated, err = c.groups.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("product group updated", "group_id", id)
	return updated, nil
}

// Remove detaches the group's variations, clears its recommended products
// and deletes the row. Either all of it happens or none of it.
func (c *Coordinator) Remove(ctx context.Context, id uint) error {
	err := c.uow.Do(ctx, "remove product group", func(tx *gorm.DB) error {
		group, err := c.load(ctx, tx, id)
		if err != nil {
			return err
		}
		c.log.Debug("removing product group",
			"group_id", id,
			"variations", group.VariationIDs(),
			"recommended_products", group.RecommendedProductIDs(),
		)
		if err := c.groups.Delete(ctx, tx, id); err != nil {
			if errors.Is(err, models.ErrProductGroupNotFound) {
				return groupNotFound(id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.log.Info("product group removed", "group_id", id)
	return nil
}

func (c *Coordinator) Get(ctx context.Context, id uint) (*models.ProductGroup, error) {
	group, err := c.load(ctx, nil, id)
	if err != nil {
		return nil, apperr.Wrap(err, "get product group")
	}
	return group, nil
}

func (c *Coordinator) List(ctx context.Context, filters models.ProductGroupFilters, params query.Params) (query.Result[models.ProductGroup], error) {
	params.Filters = filters.Filters()
	res, err := c.groups.GetFilteredGroups(ctx, params)
	if err != nil {
		return query.Result[models.ProductGroup]{}, apperr.Wrap(err, "list product groups")
	}
	return res, nil
}

func (c *Coordinator) load(ctx context.Context, tx *gorm.DB, id uint) (*models.ProductGroup, error) {
	group, err := c.groups.GetByID(ctx, tx, id)
	if errors.Is(err, models.ErrProductGroupNotFound) {
		return nil, groupNotFound(id)
	}
	return group, err
}

// resolveProducts loads every product named by ids. Duplicate ids count
// once; any id without a row fails the whole set.
func (c *Coordinator) resolveProducts(ctx context.Context, tx *gorm.DB, what string, ids []uint) ([]models.Product, error) {
	ids = unique(ids)
	found, err := c.products.FindByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) == len(ids) {
		return found, nil
	}

	present := make(map[uint]bool, len(found))
	for _, p := range found {
		present[p.ID] = true
	}
	var missing []uint
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return nil, apperr.MissingIDs(what, missing)
}

// resolveReferences confirms that every supplied reference exists. Nil ids
// are skipped.
func (c *Coordinator) resolveReferences(ctx context.Context, tx *gorm.DB, categoryID, brandID, targetAudienceID *uint) error {
	checks := []struct {
		kind models.ReferenceKind
		id   *uint
	}{
		{models.KindCategory, categoryID},
		{models.KindBrand, brandID},
		{models.KindTargetAudience, targetAudienceID},
	}
	for _, check := range checks {
		if check.id == nil {
			continue
		}
		if _, err := c.refs.Get(ctx, tx, check.kind, *check.id); err != nil {
			if errors.Is(err, models.ErrReferenceNotFound) {
				return apperr.NotFound("%s %d not found", check.kind.Label(), *check.id)
			}
			return err
		}
	}
	return nil
}

func groupNotFound(id uint) *apperr.Error {
	return apperr.NotFound("product group %d not found", id)
}

func unique(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
