package incidents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"acadiasafe/internal/api/handlers/http/incidents"
	mock_incidents "acadiasafe/internal/api/handlers/http/incidents/mocks"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/middleware"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreate_PhotosDecodedFromBase64(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_incidents.NewMockIncidentService(ctrl)
	h := incidents.NewHandler(newTestLogger(), svc)

	in := domain.CreateIncidentRequest{
		IncidentType: "Theft",
		Lat:          45.0875,
		Lng:          -64.3665,
		Description:  "bike taken",
		Photos:       [][]byte{[]byte("jpeg-bytes")},
		IsAnonymous:  true,
	}
	body, _ := json.Marshal(in)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/incidents", bytes.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rr := httptest.NewRecorder()

	svc.EXPECT().
		Create(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, r domain.CreateIncidentRequest) (*domain.IncidentReport, error) {
			if len(r.Photos) != 1 || string(r.Photos[0]) != "jpeg-bytes" {
				t.Errorf("photos not decoded: %v", r.Photos)
			}
			return &domain.IncidentReport{ID: uuid.New(), IncidentType: r.IncidentType, Status: domain.IncidentPending}, nil
		}).
		Times(1)

	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d, body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
}

func TestGet_ServiceError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_incidents.NewMockIncidentService(ctrl)
	h := incidents.NewHandler(newTestLogger(), svc)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/incidents/"+id.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	svc.EXPECT().Get(gomock.Any(), id).Return(nil, errors.New("boom")).Times(1)

	h.Get(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d got %d", http.StatusInternalServerError, rr.Code)
	}
}
