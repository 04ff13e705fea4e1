package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/usecase/interfaces"
	mock_interfaces "estimate_service/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(store interfaces.ISessionStore) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthRequired(store), func(c *gin.Context) {
		p := PrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "name": p.Name})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockISessionStore(ctrl)
		r := newAuthRouter(store)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockISessionStore(ctrl)
		r := newAuthRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockISessionStore(ctrl)
		store.EXPECT().Lookup(gomock.Any(), "tok").Return(entities.Principal{}, interfaces.ErrSessionNotFound)
		r := newAuthRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("store down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockISessionStore(ctrl)
		store.EXPECT().Lookup(gomock.Any(), "tok").Return(entities.Principal{}, errors.New("dial tcp"))
		r := newAuthRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("valid session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockISessionStore(ctrl)
		store.EXPECT().Lookup(gomock.Any(), "tok").Return(entities.Principal{ID: 7, Name: "Kim"}, nil)
		r := newAuthRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "bearer  tok ")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := w.Body.String(); body != `{"id":7,"name":"Kim"}` {
			t.Fatalf("unexpected body %s", body)
		}
	})
}
