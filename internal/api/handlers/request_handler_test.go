// server/internal/api/handlers/request_handler_test.go
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"asset-verse-api-server/internal/clock"
	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/store/memstore"

	"github.com/gin-gonic/gin"
)

func newTestRouter(st *memstore.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := core.NewRequestService(st, st, st, st, clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)))
	h := &RequestHandler{Service: svc}

	router := gin.New()

	employee := router.Group("/")
	employee.Use(func(c *gin.Context) {
		c.Set("user_email", "eve@acme.test")
		c.Set("user_name", "Eve")
		c.Set("user_role", models.RoleEmployee)
	})
	employee.POST("/requests", h.SubmitRequest)

	hr := router.Group("/hr")
	hr.Use(func(c *gin.Context) {
		c.Set("user_email", "hr@acme.test")
		c.Set("user_name", "Acme HR")
		c.Set("user_role", models.RoleHR)
	})
	hr.POST("/requests/:id/decide", h.DecideRequest)

	otherHR := router.Group("/other-hr")
	otherHR.Use(func(c *gin.Context) {
		c.Set("user_email", "hr@globex.test")
		c.Set("user_name", "Globex HR")
		c.Set("user_role", models.RoleHR)
	})
	otherHR.POST("/requests/:id/decide", h.DecideRequest)

	return router
}

func seedHandlerStore() *memstore.Store {
	st := memstore.New()
	st.AddEmployer(models.User{
		Email:        "hr@acme.test",
		Role:         models.RoleHR,
		CompanyName:  "Acme",
		PackageLimit: 5,
	})
	st.AddAsset(models.AssetItem{
		AssetID:       "AST-11111111",
		EmployerEmail: "hr@acme.test",
		Name:          "Monitor",
		Type:          models.AssetTypeReturnable,
		Total:         2,
		Available:     2,
	})
	return st
}

func TestSubmitRequestHandler(t *testing.T) {
	t.Run("creates a pending request", func(t *testing.T) {
		router := newTestRouter(seedHandlerStore())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{"assetID":"AST-11111111","note":"wfh setup"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"status":"pending"`) {
			t.Fatalf("expected pending status in body: %s", w.Body.String())
		}
	})

	t.Run("unknown asset returns 404", func(t *testing.T) {
		router := newTestRouter(seedHandlerStore())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{"assetID":"AST-MISSING1"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("exhausted asset returns 409", func(t *testing.T) {
		st := seedHandlerStore()
		st.AddAsset(models.AssetItem{
			AssetID:       "AST-EMPTY001",
			EmployerEmail: "hr@acme.test",
			Name:          "Dock",
			Total:         1,
			Available:     0,
		})
		router := newTestRouter(st)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{"assetID":"AST-EMPTY001"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("missing assetID returns 400", func(t *testing.T) {
		router := newTestRouter(seedHandlerStore())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestDecideRequestHandler(t *testing.T) {
	pending := models.Request{
		RequestID:     "REQ-TEST0001",
		AssetID:       "AST-11111111",
		AssetName:     "Monitor",
		EmployeeEmail: "eve@acme.test",
		EmployeeName:  "Eve",
		EmployerEmail: "hr@acme.test",
		Status:        models.RequestStatusPending,
	}

	decide := func(router *gin.Engine, id, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hr/requests/"+id+"/decide", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("approves a pending request", func(t *testing.T) {
		st := seedHandlerStore()
		st.AddRequest(pending)
		router := newTestRouter(st)

		w := decide(router, "REQ-TEST0001", `{"outcome":"approved"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if asset, _ := st.Asset("AST-11111111"); asset.Available != 1 {
			t.Fatalf("expected available 1, got %d", asset.Available)
		}
	})

	t.Run("second decision returns 409", func(t *testing.T) {
		st := seedHandlerStore()
		st.AddRequest(pending)
		router := newTestRouter(st)

		if w := decide(router, "REQ-TEST0001", `{"outcome":"approved"}`); w.Code != http.StatusOK {
			t.Fatalf("first decision: %d", w.Code)
		}
		if w := decide(router, "REQ-TEST0001", `{"outcome":"rejected"}`); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("another company's HR gets 403 and the request stays pending", func(t *testing.T) {
		st := seedHandlerStore()
		st.AddRequest(pending)
		router := newTestRouter(st)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/other-hr/requests/REQ-TEST0001/decide", strings.NewReader(`{"outcome":"approved"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
		}
		if got, _ := st.Get(context.Background(), "REQ-TEST0001"); got.Status != models.RequestStatusPending {
			t.Fatalf("expected request to stay pending, got %s", got.Status)
		}
	})

	t.Run("unknown request returns 404", func(t *testing.T) {
		router := newTestRouter(seedHandlerStore())
		if w := decide(router, "REQ-NOPE0000", `{"outcome":"approved"}`); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid outcome returns 400", func(t *testing.T) {
		st := seedHandlerStore()
		st.AddRequest(pending)
		router := newTestRouter(st)
		if w := decide(router, "REQ-TEST0001", `{"outcome":"maybe"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("limit reached returns 409 and leaves the request pending", func(t *testing.T) {
		st := seedHandlerStore()
		st.AddEmployer(models.User{
			Email:            "hr@acme.test",
			Role:             models.RoleHR,
			CompanyName:      "Acme",
			PackageLimit:     1,
			CurrentEmployees: 1,
		})
		st.AddRequest(pending)
		router := newTestRouter(st)

		if w := decide(router, "REQ-TEST0001", `{"outcome":"approved"}`); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if req, _ := st.Get(context.Background(), "REQ-TEST0001"); req.Status != models.RequestStatusPending {
			t.Fatalf("expected request to stay pending, got %s", req.Status)
		}
	})
}
