package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
)

// TimeProvider lets tests pin "now".
type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Auditor receives fire-and-forget audit events.
type Auditor interface {
	Dispatch(ev audit.Event)
}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

func auditorOrNoop(a Auditor) Auditor {
	if a == nil {
		return noopAuditor{}
	}
	return a
}
