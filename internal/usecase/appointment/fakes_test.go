package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// CLOCK
// ======================================================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// Sunday 2024-06-09 12:00 UTC, the day before the Monday used in most cases.
var sundayNoon = fixedClock{t: time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC)}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

// ======================================================
// STORE
// ======================================================

type fakeStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Appointment

	getErr     error
	overlapErr error
	writeErr   error

	overlapCalls int
	creates      int
	updates      int
	statusSets   int
}

func newFakeStore(seed ...models.Appointment) *fakeStore {
	s := &fakeStore{nextID: 100, rows: map[uint]models.Appointment{}}
	for _, ap := range seed {
		s.rows[ap.ID] = clone(ap)
	}
	return s
}

func clone(ap models.Appointment) models.Appointment {
	ap.Services = append([]models.AppointmentService(nil), ap.Services...)
	ap.Products = append([]models.AppointmentProduct(nil), ap.Products...)
	return ap
}

func (s *fakeStore) CheckOverlap(_ context.Context, w domain.AvailabilityWindow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlapCalls++
	if s.overlapErr != nil {
		return false, s.overlapErr
	}
	agenda := make([]models.Appointment, 0, len(s.rows))
	for _, ap := range s.rows {
		if ap.CompanyID == w.CompanyID {
			agenda = append(agenda, ap)
		}
	}
	return len(domain.FindConflicts(w, agenda)) == 0, nil
}

func (s *fakeStore) List(_ context.Context, f domain.Filter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, ap := range s.rows {
		if ap.CompanyID != f.CompanyID {
			continue
		}
		if f.ProfessionalID != 0 && ap.ProfessionalID != f.ProfessionalID {
			continue
		}
		if f.From != nil && ap.EndTime.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.StartTime.Before(*f.To) {
			continue
		}
		out = append(out, clone(ap))
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, companyID, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	ap, ok := s.rows[id]
	if !ok || ap.CompanyID != companyID {
		return nil, &domain.NotFoundError{Entity: "appointment", ID: id}
	}
	c := clone(ap)
	return &c, nil
}

func (s *fakeStore) Create(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.nextID++
	ap.ID = s.nextID
	s.rows[ap.ID] = clone(*ap)
	return nil
}

func (s *fakeStore) Update(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.writeErr != nil {
		return s.writeErr
	}
	if err := domain.EnsureEditable(&models.Appointment{Status: s.rows[ap.ID].Status}); err != nil {
		return err
	}
	s.rows[ap.ID] = clone(*ap)
	return nil
}

func (s *fakeStore) SetStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusSets++
	stored := s.rows[ap.ID]
	if stored.Status != string(from) {
		return domain.ErrStaleStatus
	}
	s.rows[ap.ID] = clone(*ap)
	return nil
}

func (s *fakeStore) row(id uint) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[id]
}

func (s *fakeStore) touched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlapCalls + s.creates + s.updates + s.statusSets
}

// ======================================================
// CATALOGS
// ======================================================

type fakeServices struct {
	entries []domain.ServiceCatalogEntry
	err     error
}

func (f fakeServices) ListByProfessional(context.Context, uint, uint) ([]domain.ServiceCatalogEntry, error) {
	return f.entries, f.err
}

type fakeProducts struct {
	entries []domain.ProductCatalogEntry
	err     error
	checked []uint
}

func (f *fakeProducts) List(context.Context, uint) ([]domain.ProductCatalogEntry, error) {
	return f.entries, f.err
}

func (f *fakeProducts) CheckStock(_ context.Context, productID uint, qty int) (bool, error) {
	f.checked = append(f.checked, productID)
	for _, p := range f.entries {
		if p.ID == productID {
			return p.Stock >= qty, nil
		}
	}
	return false, nil
}

// ======================================================
// AUDIT
// ======================================================

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

// ======================================================
// FIXTURES
// ======================================================

const (
	companyID      uint = 1
	professionalID uint = 7
	customerID     uint = 3
	haircutID      uint = 11
	shampooID      uint = 21
)

var haircut = domain.ServiceCatalogEntry{
	ID: haircutID, Name: "Corte", Price: decimal.NewFromInt(50), Duration: 30,
}

func scheduled(id uint, start, end time.Time) models.Appointment {
	return models.Appointment{
		ID:             id,
		CompanyID:      companyID,
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.StatusScheduled),
		TotalAmount:    decimal.NewFromInt(50),
		Services: []models.AppointmentService{
			{ServiceID: haircutID, Quantity: 1},
		},
	}
}

func baseRequest(clock string) BookingRequest {
	return BookingRequest{
		CompanyID:      companyID,
		ActorID:        9,
		RequestID:      "req-1",
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		Date:           "2024-06-10",
		Time:           clock,
		Services:       []domain.ServiceLineItem{{ServiceID: haircutID, Quantity: 1}},
	}
}
