package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"acadiasafe/internal/api/handlers/http/admin"
	mock_admin "acadiasafe/internal/api/handlers/http/admin/mocks"
	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestIncidentList_Defaults_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockAdminService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		ListIncidents(gomock.Any(), 1, 20).
		Return([]domain.IncidentReport{{ID: uuid.New()}}, int64(1), nil).
		Times(1)

	rr := httptest.NewRecorder()
	h.IncidentList(rr, httptest.NewRequest(http.MethodGet, "/api/admin/incidents", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[admin.IncidentPage](t, rr)
	if got.Total != 1 || got.Page != 1 || got.Limit != 20 || len(got.Incidents) != 1 {
		t.Fatalf("unexpected page %+v", got)
	}
}

func TestIncidentList_LimitCapped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockAdminService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	svc.EXPECT().ListIncidents(gomock.Any(), 2, 100).Return(nil, int64(0), nil).Times(1)

	rr := httptest.NewRecorder()
	h.IncidentList(rr, httptest.NewRequest(http.MethodGet, "/api/admin/incidents?page=2&limit=500", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestIncidentUpdateStatus_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockAdminService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	id := uuid.New()
	svc.EXPECT().
		UpdateIncidentStatus(gomock.Any(), id, domain.UpdateIncidentStatusRequest{Status: domain.IncidentReviewing}).
		Return(&domain.IncidentReport{ID: id, Status: domain.IncidentReviewing}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/incidents/"+id.String()+"/status", bytes.NewBufferString(`{"status":"reviewing"}`))
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()
	h.IncidentUpdateStatus(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestSOSResolve_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockAdminService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	id := uuid.New()
	svc.EXPECT().ResolveSOS(gomock.Any(), id).Return(e.ErrNotFound).Times(1)

	req := addChiURLParam(httptest.NewRequest(http.MethodPost, "/api/admin/sos/"+id.String()+"/resolve", nil), "id", id.String())
	rr := httptest.NewRecorder()
	h.SOSResolve(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d", http.StatusNotFound, rr.Code)
	}
}

func TestAlertBroadcast_Created(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockAdminService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		BroadcastAlert(gomock.Any(), gomock.Any()).
		Return(&domain.CampusAlert{ID: uuid.New(), Title: "Ice on paths"}, nil).
		Times(1)

	body := `{"title":"Ice on paths","message":"Use caution near University Hall","alert_type":"advisory"}`
	rr := httptest.NewRecorder()
	h.AlertBroadcast(rr, httptest.NewRequest(http.MethodPost, "/api/admin/alerts", bytes.NewBufferString(body)))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d, body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
}
