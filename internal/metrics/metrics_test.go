package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"acadiasafe/internal/metrics"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/incidents/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/incidents/"+id, nil))
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()

	want := `http_requests_total{method="GET",route="/api/incidents/{id}",status="404"} 3`
	if !strings.Contains(body, want) {
		t.Fatalf("expected %q in metrics output:\n%s", want, body)
	}
}

func TestNotificationDelivered(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.NotificationDelivered("sos.created", true)
	m.NotificationDelivered("sos.created", false)
	m.NotificationDelivered("sos.created", false)
	m.EscortsAssigned(2)

	if got, err := testutil.GatherAndCount(m.Registry(), "notifications_delivered_total"); err != nil || got != 2 {
		t.Fatalf("expected 2 label sets got %d (%v)", got, err)
	}
	if got, err := testutil.GatherAndCount(m.Registry(), "escort_assignments_total"); err != nil || got != 1 {
		t.Fatalf("expected 1 series got %d (%v)", got, err)
	}
}
