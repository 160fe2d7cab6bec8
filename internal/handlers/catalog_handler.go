package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// CatalogHandler feeds the service and product pickers of the booking form.
type CatalogHandler struct {
	services domain.ServiceCatalog
	products domain.ProductCatalog
}

func NewCatalogHandler(services domain.ServiceCatalog, products domain.ProductCatalog) *CatalogHandler {
	return &CatalogHandler{services: services, products: products}
}

// --------- Handlers ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		return
	}
	if professionalID == 0 {
		httperr.BadRequest(c, "professional_required", "Profissional obrigatório.")
		return
	}

	entries, err := h.services.ListByProfessional(c.Request.Context(), middleware.CompanyID(c), professionalID)
	if err != nil {
		httperr.FromError(c, domain.Wrap("carregar serviços", err))
		return
	}

	httpresp.List(c, entries)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	entries, err := h.products.List(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		httperr.FromError(c, domain.Wrap("carregar produtos", err))
		return
	}

	httpresp.List(c, entries)
}
