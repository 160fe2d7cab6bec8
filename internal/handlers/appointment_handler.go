package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type appointmentBooker interface {
	Execute(ctx context.Context, req ucAppointment.BookingRequest) (*models.Appointment, error)
}

type appointmentTransitioner interface {
	Execute(ctx context.Context, in ucAppointment.TransitionInput) (*models.Appointment, error)
}

type appointmentLister interface {
	Execute(ctx context.Context, filter domain.Filter) ([]dto.AppointmentListDTO, error)
}

type appointmentGetter interface {
	Execute(ctx context.Context, companyID, appointmentID uint) (*dto.AppointmentDTO, error)
}

type availabilityFinder interface {
	Execute(ctx context.Context, in ucAppointment.AvailabilityInput) ([]domain.TimeSlot, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book         appointmentBooker
	transition   appointmentTransitioner
	list         appointmentLister
	get          appointmentGetter
	availability availabilityFinder
	policy       domain.Policy
}

func NewAppointmentHandler(
	book appointmentBooker,
	transition appointmentTransitioner,
	list appointmentLister,
	get appointmentGetter,
	availability availabilityFinder,
	policy domain.Policy,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:         book,
		transition:   transition,
		list:         list,
		get:          get,
		availability: availability,
		policy:       policy,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SaveAppointmentRequest struct {
	CustomerID      uint                     `json:"customer_id"`
	ProfessionalID  uint                     `json:"professional_id"`
	Date            string                   `json:"date"`
	Time            string                   `json:"time"`
	Services        []domain.ServiceLineItem `json:"services"`
	Products        []domain.ProductLineItem `json:"products"`
	DiscountPercent decimal.Decimal          `json:"discount_percent"`
	Notes           string                   `json:"notes"`
}

func (r SaveAppointmentRequest) toBooking(c *gin.Context, appointmentID uint) ucAppointment.BookingRequest {
	products := make([]domain.ProductLineItem, 0, len(r.Products))
	for _, p := range r.Products {
		if usage, ok := domain.ParseUsageType(string(p.UsageType)); ok {
			p.UsageType = usage
		}
		products = append(products, p)
	}

	return ucAppointment.BookingRequest{
		CompanyID:       middleware.CompanyID(c),
		ActorID:         middleware.UserID(c),
		RequestID:       middleware.GetRequestID(c),
		AppointmentID:   appointmentID,
		CustomerID:      r.CustomerID,
		ProfessionalID:  r.ProfessionalID,
		Date:            strings.TrimSpace(r.Date),
		Time:            strings.TrimSpace(r.Time),
		Services:        r.Services,
		Products:        products,
		DiscountPercent: r.DiscountPercent,
		Notes:           strings.TrimSpace(r.Notes),
	}
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req SaveAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), req.toBooking(c, 0))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAppointmentDTO(ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SaveAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), req.toBooking(c, id))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// READS
// ======================================================

// List accepts either date=YYYY-MM-DD or from/to (inclusive days), plus
// professional_id, customer_id and a comma separated status list.
func (h *AppointmentHandler) List(c *gin.Context) {
	filter := domain.Filter{CompanyID: middleware.CompanyID(c)}

	var ok bool
	if filter.ProfessionalID, ok = queryID(c, "professional_id"); !ok {
		return
	}
	if filter.CustomerID, ok = queryID(c, "customer_id"); !ok {
		return
	}

	loc := h.policy.Loc()
	var (
		from, to time.Time
		err      error
	)
	switch {
	case c.Query("date") != "":
		from, to, err = timezone.DayBounds(c.Query("date"), loc)
	case c.Query("from") != "" || c.Query("to") != "":
		// a missing bound fails to parse
		from, to, err = timezone.RangeBounds(c.Query("from"), c.Query("to"), loc)
	}
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	if !from.IsZero() {
		filter.From, filter.To = &from, &to
	}

	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, ok := domain.ParseStatus(part)
			if !ok {
				httperr.BadRequest(c, "invalid_status", "Status inválido.")
				return
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}

	out, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATUS ACTIONS
// ======================================================

func (h *AppointmentHandler) Action(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	action, ok := domain.ParseAction(c.Param("action"))
	if !ok {
		httperr.BadRequest(c, "invalid_action", "Ação desconhecida.")
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), ucAppointment.TransitionInput{
		CompanyID:     middleware.CompanyID(c),
		ActorID:       middleware.UserID(c),
		RequestID:     middleware.GetRequestID(c),
		AppointmentID: id,
		Action:        action,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		return
	}
	if professionalID == 0 {
		httperr.BadRequest(c, "professional_required", "Profissional obrigatório.")
		return
	}

	var serviceIDs []uint
	if raw := c.Query("service_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil || id == 0 {
				httperr.BadRequest(c, "invalid_service", "Serviço inválido.")
				return
			}
			serviceIDs = append(serviceIDs, uint(id))
		}
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		CompanyID:      middleware.CompanyID(c),
		ProfessionalID: professionalID,
		Date:           c.Query("date"),
		ServiceIDs:     serviceIDs,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *AppointmentHandler) Slots(c *gin.Context) {
	httpresp.List(c, h.policy.GenerateSlots())
}

// ======================================================
// PARAMS
// ======================================================

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryID returns 0 when the parameter is absent.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return uint(id), true
}
