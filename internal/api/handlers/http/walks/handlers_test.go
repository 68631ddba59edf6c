package walks_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"acadiasafe/internal/api/handlers/http/walks"
	mock_walks "acadiasafe/internal/api/handlers/http/walks/mocks"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/middleware"
	"acadiasafe/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func walkRequest(method, target string, userID, walkID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", walkID.String())
	ctx := context.WithValue(middleware.WithUserID(req.Context(), userID), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func TestExtend_MinutesQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "default", query: "", want: domain.WalkExtendMinutes},
		{name: "explicit", query: "?minutes=30", want: 30},
		{name: "garbage falls back", query: "?minutes=abc", want: domain.WalkExtendMinutes},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mock_walks.NewMockWalkService(ctrl)
			h := walks.NewHandler(newTestLogger(), svc)

			userID, walkID := uuid.New(), uuid.New()
			end := time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC)
			svc.EXPECT().
				Extend(gomock.Any(), userID, walkID, tt.want).
				Return(&domain.ExtendWalkResponse{Message: "Walk extended", NewEndTime: end}, nil).
				Times(1)

			rr := httptest.NewRecorder()
			h.Extend(rr, walkRequest(http.MethodPut, "/api/friend-walk/"+walkID.String()+"/extend"+tt.query, userID, walkID, ""))

			if rr.Code != http.StatusOK {
				t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
			}
			var got domain.ExtendWalkResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if !got.NewEndTime.Equal(end) {
				t.Fatalf("expected end %v got %v", end, got.NewEndTime)
			}
		})
	}
}

func TestExtend_Unbounded_409(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_walks.NewMockWalkService(ctrl)
	h := walks.NewHandler(newTestLogger(), svc)

	userID, walkID := uuid.New(), uuid.New()
	svc.EXPECT().Extend(gomock.Any(), userID, walkID, 15).Return(nil, e.ErrConflict).Times(1)

	rr := httptest.NewRecorder()
	h.Extend(rr, walkRequest(http.MethodPut, "/api/friend-walk/x/extend", userID, walkID, ""))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected %d got %d", http.StatusConflict, rr.Code)
	}
}

func TestUpdateLocation_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_walks.NewMockWalkService(ctrl)
	h := walks.NewHandler(newTestLogger(), svc)

	userID, walkID := uuid.New(), uuid.New()
	svc.EXPECT().
		UpdateLocation(gomock.Any(), userID, walkID, domain.UpdateWalkLocationRequest{Lat: 45.09, Lng: -64.36}).
		Return(nil).
		Times(1)

	rr := httptest.NewRecorder()
	h.UpdateLocation(rr, walkRequest(http.MethodPut, "/api/friend-walk/x/location", userID, walkID, `{"location_lat":45.09,"location_lng":-64.36}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
}
