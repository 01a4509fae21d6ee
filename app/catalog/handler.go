package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/app/respond"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"github.com/shopspring/decimal"
)

type Response struct {
	Data       []Product        `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

type Reference struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID             uint      `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Stock          int       `json:"stock"`
	Genre          string    `json:"genre"`
	Image          string    `json:"image"`
	Price          float64   `json:"price"`
	Brand          Reference `json:"brand"`
	TargetAudience Reference `json:"target_audience"`
	EducationLevel Reference `json:"education_level"`
	Category       Reference `json:"category"`
	Size           Reference `json:"size"`
	ProductGroupID *uint     `json:"product_group_id"`
	DateCreated    time.Time `json:"date_created"`
	DateUpdated    time.Time `json:"date_updated"`
}

// NewProduct maps a stored product to its response shape.
func NewProduct(p models.Product) Product {
	return Product{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		Stock:          p.Stock,
		Genre:          p.Genre,
		Image:          p.Image,
		Price:          p.Price.InexactFloat64(),
		Brand:          Reference{ID: p.Brand.ID, Name: p.Brand.Name},
		TargetAudience: Reference{ID: p.TargetAudience.ID, Name: p.TargetAudience.Name},
		EducationLevel: Reference{ID: p.EducationLevel.ID, Name: p.EducationLevel.Name},
		Category:       Reference{ID: p.Category.ID, Name: p.Category.Name},
		Size:           Reference{ID: p.Size.ID, Name: p.Size.Name},
		ProductGroupID: p.ProductGroupID,
		DateCreated:    p.CreatedAt,
		DateUpdated:    p.UpdatedAt,
	}
}

// NewProducts maps a slice of stored products.
func NewProducts(products []models.Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = NewProduct(p)
	}
	return out
}

type ProductProvider interface {
	Create(ctx context.Context, in CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, filters models.ProductFilters, params query.Params) (query.Result[models.Product], error)
}

type CatalogHandler struct {
	service ProductProvider
	paging  query.Paging
}

func NewCatalogHandler(s ProductProvider, paging query.Paging) *CatalogHandler {
	return &CatalogHandler{
		service: s,
		paging:  paging,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// An unparsable price is ignored like any other absent filter.
	var priceFilter *decimal.Decimal
	if priceStr := q.Get("price"); priceStr != "" {
		if val, err := decimal.NewFromString(priceStr); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		Code:               q.Get("code"),
		Name:               q.Get("name"),
		Description:        q.Get("description"),
		Genre:              q.Get("genre"),
		Price:              priceFilter,
		BrandName:          q.Get("brand_name"),
		TargetAudienceName: q.Get("target_audience_name"),
		EducationLevelName: q.Get("education_level_name"),
		CategoryName:       q.Get("category_name"),
		SizeName:           q.Get("size_name"),
	}

	res, err := h.service.List(r.Context(), filters, h.paging.Parse(q))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, Response{
		Data:       NewProducts(res.Data),
		Pagination: res.Pagination,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewProduct(*product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, NewProduct(*product))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var input UpdateInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	product, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewProduct(*product))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
