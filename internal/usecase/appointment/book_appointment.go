package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

// ======================================================
// USE CASE
// ======================================================

// BookAppointment creates or updates a booking. Everything before the single
// store write is validation over in-memory data, so a rejection never leaves
// partial state behind.
type BookAppointment struct {
	store    domain.Store
	services domain.ServiceCatalog
	products domain.ProductCatalog
	policy   domain.Policy
	clock    TimeProvider
	audit    Auditor
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

func NewBookAppointment(
	store domain.Store,
	services domain.ServiceCatalog,
	products domain.ProductCatalog,
	policy domain.Policy,
	auditor Auditor,
	m *metrics.BookingMetrics,
	logger *logging.Logger,
) *BookAppointment {
	return &BookAppointment{
		store:    store,
		services: services,
		products: products,
		policy:   policy,
		clock:    RealTimeProvider{},
		audit:    auditorOrNoop(auditor),
		metrics:  m,
		logger:   logger,
	}
}

// WithClock swaps the time source, mostly for tests.
func (uc *BookAppointment) WithClock(clock TimeProvider) *BookAppointment {
	uc.clock = clock
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	req BookingRequest,
) (*models.Appointment, error) {
	began := time.Now()
	op := req.operation()

	ap, err := uc.execute(ctx, req)
	uc.observe(op, err, time.Since(began))
	if err != nil {
		uc.logOutcome(req, err)
		return nil, err
	}

	action := audit.ActionAppointmentCreated
	if req.IsUpdate() {
		action = audit.ActionAppointmentUpdated
	}
	uc.audit.Dispatch(audit.Event{
		CompanyID: req.CompanyID,
		UserID:    actor(req.ActorID),
		Action:    action,
		Entity:    audit.EntityAppointment,
		EntityID:  &ap.ID,
		RequestID: req.RequestID,
		Metadata: map[string]any{
			"professional_id": ap.ProfessionalID,
			"start":           ap.StartTime,
			"end":             ap.EndTime,
			"total_amount":    ap.TotalAmount.StringFixed(2),
		},
	})

	uc.logger.Info("appointment saved",
		"operation", op,
		"appointment_id", ap.ID,
		"company_id", ap.CompanyID,
		"professional_id", ap.ProfessionalID,
		"start", ap.StartTime,
		"end", ap.EndTime,
	)
	return ap, nil
}

func (uc *BookAppointment) execute(
	ctx context.Context,
	req BookingRequest,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Validação estrutural
	// --------------------------------------------------
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var existing *models.Appointment
	if req.IsUpdate() {
		found, err := uc.store.Get(ctx, req.CompanyID, req.AppointmentID)
		if err != nil {
			return nil, domain.Wrap("carregar agendamento", err)
		}
		if err := domain.EnsureEditable(found); err != nil {
			return nil, err
		}
		existing = found
	}

	// --------------------------------------------------
	// 2️⃣ Estoque
	// --------------------------------------------------
	products := req.Products
	if len(products) > 0 {
		priced, err := uc.validateStock(ctx, req, existing)
		if err != nil {
			return nil, err
		}
		products = priced
	}

	// --------------------------------------------------
	// 3️⃣ Janela de horário + duração
	// --------------------------------------------------
	start, err := uc.policy.ParseStart(req.Date, req.Time)
	if err != nil {
		return nil, windowError("Data ou hora inválida.")
	}

	catalog, err := uc.services.ListByProfessional(ctx, req.CompanyID, req.ProfessionalID)
	if err != nil {
		return nil, domain.Wrap("carregar serviços", err)
	}

	totals := domain.ComputeTotals(
		req.Services,
		products,
		req.DiscountPercent,
		domain.NewServiceIndex(catalog),
	)

	window := domain.Interval{
		Start: start.UTC(),
		End:   domain.ComputeEndTime(start, totals.TotalDuration).UTC(),
	}

	// an unchanged start on an update is not re-validated, so notes can still
	// be edited on an appointment that already began today
	if existing == nil || !existing.StartTime.Equal(window.Start) {
		res := uc.policy.ValidateStart(start, uc.clock.Now())
		if !res.Valid {
			return nil, windowError(res.Reason)
		}
	}

	// --------------------------------------------------
	// 4️⃣ Disponibilidade
	// --------------------------------------------------
	if domain.NeedsAvailabilityCheck(existing, req.ProfessionalID, window) {
		w := domain.AvailabilityWindow{
			CompanyID:      req.CompanyID,
			ProfessionalID: req.ProfessionalID,
			Interval:       window,
			ExcludeID:      req.AppointmentID,
		}

		available, err := domain.CheckAvailability(ctx, uc.store, w)
		if err != nil {
			return nil, err
		}
		uc.metrics.ObserveAvailability(available)

		if !available {
			uc.audit.Dispatch(audit.Event{
				CompanyID: req.CompanyID,
				UserID:    actor(req.ActorID),
				Action:    audit.ActionAppointmentConflict,
				Entity:    audit.EntityAppointment,
				RequestID: req.RequestID,
				Metadata: map[string]any{
					"professional_id": req.ProfessionalID,
					"start":           window.Start,
					"end":             window.End,
				},
			})
			return nil, &domain.ConflictError{
				ProfessionalID: req.ProfessionalID,
				Start:          window.Start,
				End:            window.End,
			}
		}
	}

	// --------------------------------------------------
	// 5️⃣ Montagem do agendamento
	// --------------------------------------------------
	ap := existing
	if ap == nil {
		ap = &models.Appointment{
			CompanyID: req.CompanyID,
			Status:    string(domain.InitialStatus()),
		}
	}
	ap.CustomerID = req.CustomerID
	ap.ProfessionalID = req.ProfessionalID
	ap.StartTime = window.Start
	ap.EndTime = window.End
	ap.TotalAmount = totals.TotalAmount
	ap.DiscountPercent = req.DiscountPercent
	ap.Notes = req.Notes
	ap.Services = domain.ServiceLinesToModels(req.Services)
	ap.Products = domain.ProductLinesToModels(products)

	// a caller that gave up must not see a write land afterwards
	if err := ctx.Err(); err != nil {
		return nil, domain.Wrap("salvar agendamento", err)
	}

	// --------------------------------------------------
	// 6️⃣ Persistência
	// --------------------------------------------------
	if existing == nil {
		err = uc.store.Create(ctx, ap)
	} else {
		err = uc.store.Update(ctx, ap)
	}
	if err != nil {
		return nil, domain.Wrap("salvar agendamento", err)
	}

	return ap, nil
}

// validateStock fills missing unit prices from the catalog and checks stock
// for the quantity this submission adds.
func (uc *BookAppointment) validateStock(
	ctx context.Context,
	req BookingRequest,
	existing *models.Appointment,
) ([]domain.ProductLineItem, error) {

	catalog, err := uc.products.List(ctx, req.CompanyID)
	if err != nil {
		return nil, domain.Wrap("carregar produtos", err)
	}
	byID := make(map[uint]domain.ProductCatalogEntry, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	priced := make([]domain.ProductLineItem, 0, len(req.Products))
	for _, line := range req.Products {
		entry, ok := byID[line.ProductID]
		if !ok {
			return nil, &domain.NotFoundError{Entity: "product", ID: line.ProductID}
		}
		if line.UnitPrice.IsZero() {
			line.UnitPrice = entry.Price
		}
		priced = append(priced, line)
	}

	demand := priced
	if existing != nil {
		demand = domain.NetDemand(priced, domain.ProductLinesFromModel(existing))
	}

	res, err := domain.ValidateStock(ctx, uc.products, demand)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &domain.StockError{
			ProductID:   res.FirstInsufficient,
			ProductName: byID[res.FirstInsufficient].Name,
		}
	}
	return priced, nil
}

func (uc *BookAppointment) observe(op string, err error, elapsed time.Duration) {
	result, code := metrics.ResultOK, ""
	if err != nil {
		result, code = classify(err)
	}
	uc.metrics.ObserveBooking(op, result, code, elapsed.Seconds())
}

func (uc *BookAppointment) logOutcome(req BookingRequest, err error) {
	attrs := []any{
		"operation", req.operation(),
		"company_id", req.CompanyID,
		"appointment_id", req.AppointmentID,
		"professional_id", req.ProfessionalID,
		"error", err,
	}
	var ce *domain.CollaboratorError
	if errors.As(err, &ce) {
		uc.logger.Error("booking failed", attrs...)
		return
	}
	uc.logger.Warn("booking rejected", attrs...)
}

func windowError(reason string) error {
	return &domain.ValidationError{Fields: []domain.FieldError{{
		Field:   "time",
		Code:    "invalid_window",
		Message: reason,
	}}}
}

func classify(err error) (string, string) {
	var ce *domain.CollaboratorError
	if errors.As(err, &ce) {
		return metrics.ResultError, ce.Code()
	}
	var ue domain.UserError
	if errors.As(err, &ue) {
		return metrics.ResultRejected, ue.Code()
	}
	return metrics.ResultError, "internal"
}

func actor(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
