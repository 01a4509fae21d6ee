package inventory

import (
	"context"
	"net/http"

	"github.com/jerikareyna/modasnansi-backend-main/app/respond"
	"gorm.io/gorm"
)

type StockKeeper interface {
	DecreaseStock(ctx context.Context, items []Item) error
	IncreaseStock(ctx context.Context, tx *gorm.DB, items []Item)
	CheckStock(ctx context.Context, productID uint, quantity int) (bool, error)
	Reconcile(ctx context.Context) (ReconcileReport, error)
}

type BatchRequest struct {
	Items []Item `json:"items"`
}

type CheckResponse struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
	Available bool `json:"available"`
}

type InventoryHandler struct {
	ledger StockKeeper
}

func NewInventoryHandler(l StockKeeper) *InventoryHandler {
	return &InventoryHandler{ledger: l}
}

func (h *InventoryHandler) HandleDecrease(w http.ResponseWriter, r *http.Request) {
	var input BatchRequest
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.ledger.DecreaseStock(r.Context(), input.Items); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message("stock decreased for %d item(s)", len(input.Items)))
}

// HandleIncrease always answers 202: failed items are queued for
// reconciliation instead of being reported.
func (h *InventoryHandler) HandleIncrease(w http.ResponseWriter, r *http.Request) {
	var input BatchRequest
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	h.ledger.IncreaseStock(r.Context(), nil, input.Items)
	respond.JSON(w, http.StatusAccepted, respond.Message("stock increase accepted for %d item(s)", len(input.Items)))
}

func (h *InventoryHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	productID, err := respond.QueryID(r, "product_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	quantity, err := respond.QueryInt(r, "quantity")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ok, err := h.ledger.CheckStock(r.Context(), productID, quantity)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, CheckResponse{
		ProductID: productID,
		Quantity:  quantity,
		Available: ok,
	})
}

func (h *InventoryHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.Reconcile(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, report)
}
