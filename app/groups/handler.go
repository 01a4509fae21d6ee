package groups

import (
	"context"
	"net/http"
	"time"

	"github.com/jerikareyna/modasnansi-backend-main/app/catalog"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/app/respond"
	"github.com/jerikareyna/modasnansi-backend-main/models"
)

type Response struct {
	Data       []Group          `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

type Group struct {
	ID                  uint              `json:"id"`
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	Image               string            `json:"image"`
	Category            catalog.Reference `json:"category"`
	Brand               catalog.Reference `json:"brand"`
	TargetAudience      catalog.Reference `json:"target_audience"`
	Variations          []catalog.Product `json:"variations"`
	RecommendedProducts []catalog.Product `json:"recommended_products"`
	DateCreated         time.Time         `json:"date_created"`
	DateUpdated         time.Time         `json:"date_updated"`
}

func NewGroup(g models.ProductGroup) Group {
	return Group{
		ID:                  g.ID,
		Name:                g.Name,
		Description:         g.Description,
		Image:               g.Image,
		Category:            catalog.Reference{ID: g.Category.ID, Name: g.Category.Name},
		Brand:               catalog.Reference{ID: g.Brand.ID, Name: g.Brand.Name},
		TargetAudience:      catalog.Reference{ID: g.TargetAudience.ID, Name: g.TargetAudience.Name},
		Variations:          catalog.NewProducts(g.Variations),
		RecommendedProducts: catalog.NewProducts(g.RecommendedProducts),
		DateCreated:         g.CreatedAt,
		DateUpdated:         g.UpdatedAt,
	}
}

type GroupService interface {
	Create(ctx context.Context, in CreateInput) (*models.ProductGroup, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.ProductGroup, error)
	Remove(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.ProductGroup, error)
	List(ctx context.Context, filters models.ProductGroupFilters, params query.Params) (query.Result[models.ProductGroup], error)
}

type GroupsHandler struct {
	service GroupService
	paging  query.Paging
}

func NewGroupsHandler(s GroupService, paging query.Paging) *GroupsHandler {
	return &GroupsHandler{service: s, paging: paging}
}

func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.ProductGroupFilters{
		Name:               q.Get("name"),
		Description:        q.Get("description"),
		BrandName:          q.Get("brand_name"),
		TargetAudienceName: q.Get("target_audience_name"),
		CategoryName:       q.Get("category_name"),
	}

	res, err := h.service.List(r.Context(), filters, h.paging.Parse(q))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	groups := make([]Group, len(res.Data))
	for i, g := range res.Data {
		groups[i] = NewGroup(g)
	}
	respond.JSON(w, http.StatusOK, Response{Data: groups, Pagination: res.Pagination})
}

func (h *GroupsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	group, err := h.service.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewGroup(*group))
}

func (h *GroupsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	group, err := h.service.Create(r.Context(), input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, NewGroup(*group))
}

func (h *GroupsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	group, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewGroup(*group))
}

func (h *GroupsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
