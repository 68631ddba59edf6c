package flows

import (
	"context"
	"slices"
	"sync"

	"acadiasafe/internal/domain"

	"github.com/google/uuid"
)

type AlertsAPI interface {
	List(ctx context.Context) ([]domain.CampusAlert, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.CampusAlert, error)
}

// AlertsFlow keeps the last fetched alert list, newest first.
type AlertsFlow struct {
	api AlertsAPI

	mu     sync.RWMutex
	alerts []domain.CampusAlert
}

func NewAlertsFlow(api AlertsAPI) *AlertsFlow {
	return &AlertsFlow{api: api}
}

func (f *AlertsFlow) Refresh(ctx context.Context) error {
	list, err := f.api.List(ctx)
	if err != nil {
		return err
	}
	slices.SortStableFunc(list, func(a, b domain.CampusAlert) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	f.mu.Lock()
	f.alerts = list
	f.mu.Unlock()
	return nil
}

func (f *AlertsFlow) Alerts() []domain.CampusAlert {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.alerts)
}

// Latest is the banner alert on the home screen.
func (f *AlertsFlow) Latest() (domain.CampusAlert, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.alerts) == 0 {
		return domain.CampusAlert{}, false
	}
	return f.alerts[0], true
}

func (f *AlertsFlow) Open(ctx context.Context, id uuid.UUID) (*domain.CampusAlert, error) {
	return f.api.Get(ctx, id)
}

func (f *AlertsFlow) ByType(t domain.AlertType) []domain.CampusAlert {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.CampusAlert
	for _, a := range f.alerts {
		if a.AlertType == t {
			out = append(out, a)
		}
	}
	return out
}
