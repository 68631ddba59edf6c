package campus_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"

	"acadiasafe/internal/api/handlers/http/campus"
	mock_campus "acadiasafe/internal/api/handlers/http/campus/mocks"
	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLocations_TypeFilter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_campus.NewMockCampusService(ctrl)
	h := campus.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		ListLocations(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lt *domain.LocationType) ([]domain.CampusLocation, error) {
			if lt == nil || *lt != domain.LocationType("aed") {
				t.Errorf("expected aed filter, got %v", lt)
			}
			return []domain.CampusLocation{}, nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?location_type=aed", nil)
	rr := httptest.NewRecorder()
	h.Locations(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestLocations_NoFilter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_campus.NewMockCampusService(ctrl)
	h := campus.NewHandler(newTestLogger(), svc)

	svc.EXPECT().ListLocations(gomock.Any(), nil).Return(nil, nil).Times(1)

	rr := httptest.NewRecorder()
	h.Locations(rr, httptest.NewRequest(http.MethodGet, "/api/locations", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestLocations_UnknownType_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_campus.NewMockCampusService(ctrl)
	h := campus.NewHandler(newTestLogger(), svc)

	svc.EXPECT().ListLocations(gomock.Any(), gomock.Any()).Return(nil, e.ErrInvalidInput).Times(1)

	rr := httptest.NewRecorder()
	h.Locations(rr, httptest.NewRequest(http.MethodGet, "/api/locations?location_type=castle", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestSeed_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_campus.NewMockCampusService(ctrl)
	h := campus.NewHandler(newTestLogger(), svc)

	svc.EXPECT().Seed(gomock.Any()).
		Return(&domain.SeedResponse{Message: "Data seeded successfully", Alerts: 3, Locations: 12}, nil).
		Times(1)

	rr := httptest.NewRecorder()
	h.Seed(rr, httptest.NewRequest(http.MethodPost, "/api/seed", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}
