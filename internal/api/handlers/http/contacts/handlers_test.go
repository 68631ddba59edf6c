package contacts_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"acadiasafe/internal/api/handlers/http/contacts"
	mock_contacts "acadiasafe/internal/api/handlers/http/contacts/mocks"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/middleware"
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

func TestAdd_Created(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_contacts.NewMockContactService(ctrl)
	h := contacts.NewHandler(newTestLogger(), svc)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/contacts", bytes.NewBufferString(`{"name":"Mom","phone":"902-555-0101"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rr := httptest.NewRecorder()

	svc.EXPECT().
		Add(gomock.Any(), userID, domain.CreateContactRequest{Name: "Mom", Phone: "902-555-0101"}).
		Return(&domain.TrustedContact{ID: uuid.New(), UserID: userID, Name: "Mom", Phone: "902-555-0101"}, nil).
		Times(1)

	h.Add(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d, body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
}

func TestDelete_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_contacts.NewMockContactService(ctrl)
	h := contacts.NewHandler(newTestLogger(), svc)

	userID, id := uuid.New(), uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/contacts/"+id.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	svc.EXPECT().
		Delete(gomock.Any(), userID, id).
		Return(e.WithDetail(e.ErrNotFound, "Contact not found")).
		Times(1)

	h.Delete(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d, body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}

func TestDelete_BadID_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := contacts.NewHandler(newTestLogger(), mock_contacts.NewMockContactService(ctrl))

	req := httptest.NewRequest(http.MethodDelete, "/api/contacts/nope", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	req = addChiURLParam(req, "id", "nope")
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}
