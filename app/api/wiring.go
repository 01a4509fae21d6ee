package api

import (
	"github.com/jerikareyna/modasnansi-backend-main/app/catalog"
	"github.com/jerikareyna/modasnansi-backend-main/app/database"
	"github.com/jerikareyna/modasnansi-backend-main/app/groups"
	"github.com/jerikareyna/modasnansi-backend-main/app/inventory"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/jerikareyna/modasnansi-backend-main/app/references"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"gorm.io/gorm"
)

// NewHandlers builds the repositories, services and handlers over one
// database handle.
func NewHandlers(db *gorm.DB, paging query.Paging, log *logger.Logger) Handlers {
	uow := database.NewUnitOfWork(db, log)

	products := models.NewProductsRepository(db, log)
	productGroups := models.NewProductGroupsRepository(db, log)
	refs := models.NewReferencesRepository(db, log)
	restocks := models.NewRestocksRepository(db, log)

	refService := references.NewService(uow, refs, log)
	refHandlers := make([]*references.ReferenceHandler, len(models.ReferenceKinds))
	for i, kind := range models.ReferenceKinds {
		refHandlers[i] = references.NewReferenceHandler(refService, kind, paging)
	}

	return Handlers{
		Catalog:    catalog.NewCatalogHandler(catalog.NewService(uow, products, refs, log), paging),
		Groups:     groups.NewGroupsHandler(groups.NewCoordinator(uow, productGroups, products, refs, log), paging),
		Inventory:  inventory.NewInventoryHandler(inventory.NewLedger(uow, products, restocks, log)),
		References: refHandlers,
	}
}
