// Package api mounts the feature handlers on one mux and wraps it with the
// request-scoped middleware.
package api

import (
	"net/http"

	"github.com/jerikareyna/modasnansi-backend-main/app/catalog"
	"github.com/jerikareyna/modasnansi-backend-main/app/groups"
	"github.com/jerikareyna/modasnansi-backend-main/app/inventory"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/references"
)

type Handlers struct {
	Catalog    *catalog.CatalogHandler
	Groups     *groups.GroupsHandler
	Inventory  *inventory.InventoryHandler
	References []*references.ReferenceHandler
}

// NewRouter registers every route. Outermost middleware runs first: the
// request id is assigned before the access log and panic recovery see it.
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /products", h.Catalog.HandleGet)
	mux.HandleFunc("POST /products", h.Catalog.HandleCreate)
	mux.HandleFunc("GET /products/{id}", h.Catalog.HandleGetProduct)
	mux.HandleFunc("PATCH /products/{id}", h.Catalog.HandleUpdate)
	mux.HandleFunc("DELETE /products/{id}", h.Catalog.HandleDelete)

	mux.HandleFunc("GET /product-groups", h.Groups.HandleList)
	mux.HandleFunc("POST /product-groups", h.Groups.HandleCreate)
	mux.HandleFunc("GET /product-groups/{id}", h.Groups.HandleGet)
	mux.HandleFunc("PATCH /product-groups/{id}", h.Groups.HandleUpdate)
	mux.HandleFunc("DELETE /product-groups/{id}", h.Groups.HandleDelete)

	mux.HandleFunc("POST /inventory/decrease", h.Inventory.HandleDecrease)
	mux.HandleFunc("POST /inventory/increase", h.Inventory.HandleIncrease)
	mux.HandleFunc("GET /inventory/check", h.Inventory.HandleCheck)
	mux.HandleFunc("POST /inventory/reconcile", h.Inventory.HandleReconcile)

	for _, ref := range h.References {
		mux.HandleFunc("GET "+ref.Path(), ref.HandleGetAll)
		mux.HandleFunc("POST "+ref.Path(), ref.HandleCreate)
		mux.HandleFunc("GET "+ref.Path()+"/{id}", ref.HandleGet)
	}

	return WithRequestID(WithAccessLog(log, WithRecovery(log, mux)))
}
