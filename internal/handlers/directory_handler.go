package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type directory interface {
	ListCustomers(ctx context.Context, companyID uint, query string) ([]models.Customer, error)
	ListProfessionals(ctx context.Context, companyID uint) ([]models.Professional, error)
}

type DirectoryHandler struct {
	dir directory
}

func NewDirectoryHandler(dir directory) *DirectoryHandler {
	return &DirectoryHandler{dir: dir}
}

// ======================================================
// LIST CUSTOMERS
// ======================================================
func (h *DirectoryHandler) ListCustomers(c *gin.Context) {
	customers, err := h.dir.ListCustomers(c.Request.Context(), middleware.CompanyID(c), c.Query("query"))
	if err != nil {
		httperr.FromError(c, domain.Wrap("listar clientes", err))
		return
	}

	httpresp.List(c, customers)
}

// ======================================================
// LIST PROFESSIONALS
// ======================================================
func (h *DirectoryHandler) ListProfessionals(c *gin.Context) {
	pros, err := h.dir.ListProfessionals(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		httperr.FromError(c, domain.Wrap("listar profissionais", err))
		return
	}

	httpresp.List(c, pros)
}
