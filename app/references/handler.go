package references

import (
	"context"
	"net/http"
	"strings"

	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/app/respond"
	"github.com/jerikareyna/modasnansi-backend-main/models"
)

type ReferenceResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Response struct {
	Data       []ReferenceResponse `json:"data"`
	Pagination query.Pagination    `json:"pagination"`
}

type ReferenceProvider interface {
	Create(ctx context.Context, kind models.ReferenceKind, name string) (models.Reference, error)
	Get(ctx context.Context, kind models.ReferenceKind, id uint) (models.Reference, error)
	List(ctx context.Context, kind models.ReferenceKind, name string, params query.Params) (query.Result[models.Reference], error)
}

// ReferenceHandler serves one reference kind.
type ReferenceHandler struct {
	service ReferenceProvider
	kind    models.ReferenceKind
	paging  query.Paging
}

func NewReferenceHandler(s ReferenceProvider, kind models.ReferenceKind, paging query.Paging) *ReferenceHandler {
	return &ReferenceHandler{service: s, kind: kind, paging: paging}
}

// Path is the collection path of the handler's kind, e.g. /education-levels.
func (h *ReferenceHandler) Path() string {
	return "/" + strings.ReplaceAll(h.kind.Table(), "_", "-")
}

func (h *ReferenceHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.service.List(r.Context(), h.kind, q.Get("name"), h.paging.Parse(q))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	data := make([]ReferenceResponse, len(res.Data))
	for i, ref := range res.Data {
		data[i] = ReferenceResponse{
			ID:   ref.ID,
			Name: ref.Name,
		}
	}
	respond.JSON(w, http.StatusOK, Response{Data: data, Pagination: res.Pagination})
}

func (h *ReferenceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ref, err := h.service.Get(r.Context(), h.kind, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ReferenceResponse{ID: ref.ID, Name: ref.Name})
}

func (h *ReferenceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	ref, err := h.service.Create(r.Context(), h.kind, input.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, ReferenceResponse{ID: ref.ID, Name: ref.Name})
}
