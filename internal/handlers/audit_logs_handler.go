package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type auditReader interface {
	List(ctx context.Context, q audit.Query) (*audit.Page, error)
}

type AuditLogsHandler struct {
	logs auditReader
	tz   string
}

func NewAuditLogsHandler(logs auditReader, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, tz: tz}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		CompanyID: middleware.CompanyID(c),
		Action:    c.Query("action"),
		Entity:    c.Query("entity"),
	}

	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	entityID, ok := queryID(c, "entity_id")
	if !ok {
		return
	}
	q.EntityID = entityID

	// --------------------------------------------------
	// Período (dias inclusivos no fuso da empresa)
	// --------------------------------------------------
	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		start, end, err := timezone.RangeBounds(from, to, timezone.Location(h.tz))
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q.From, q.To = &start, &end
	}

	page, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.OK(c, page)
}
