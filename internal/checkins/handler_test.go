package checkins

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/qr-checkin/backend/internal/guests"
	"github.com/qr-checkin/backend/internal/models"
	"github.com/qr-checkin/backend/internal/settings"
)

func newTestRouter(t *testing.T, checkinEnabled bool, guestList ...models.Guest) (*gin.Engine, *MemoryLedger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	settingsStore := settings.NewMemoryStore()
	cfg := models.DefaultEventSettings()
	cfg.CheckinEnabled = checkinEnabled
	if err := settingsStore.Upsert(ctx, cfg); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	guestStore := guests.NewMemoryStore()
	for _, g := range guestList {
		if err := guestStore.Upsert(ctx, g); err != nil {
			t.Fatalf("seed guest: %v", err)
		}
	}
	ledger := NewMemoryLedger()
	svc := NewService(settingsStore, guestStore, ledger, nil, nil)
	h := NewHandler(svc, ledger, nil)

	router := gin.New()
	router.POST("/api/checkin/:guestId", h.Process)
	router.GET("/api/checkins", h.List)
	router.GET("/api/export", h.Export)
	return router, ledger
}

func doRequest(router *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestProcessEndpointStatusCodes(t *testing.T) {
	complete := models.Guest{ID: "G1", Salutation: "Mr.", Name: "A", Position: "Eng", Company: "Acme"}
	incomplete := models.Guest{ID: "G2", Salutation: "", Name: "B", Position: "", Company: "X"}

	t.Run("disabled returns 403", func(t *testing.T) {
		router, _ := newTestRouter(t, false, complete)
		w, body := doRequest(router, http.MethodPost, "/api/checkin/G1")
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		if body["success"] != false {
			t.Fatalf("expected success=false, got %v", body)
		}
	})

	t.Run("unknown guest returns 404", func(t *testing.T) {
		router, _ := newTestRouter(t, true)
		w, _ := doRequest(router, http.MethodPost, "/api/checkin/NOPE")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("incomplete profile returns 400 with field list", func(t *testing.T) {
		router, _ := newTestRouter(t, true, incomplete)
		w, body := doRequest(router, http.MethodPost, "/api/checkin/G2")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		data, _ := body["data"].(map[string]interface{})
		missing, _ := data["missingFields"].([]interface{})
		if len(missing) != 2 || missing[0] != "salutation" || missing[1] != "position" {
			t.Fatalf("expected missing [salutation position], got %v", missing)
		}
	})

	t.Run("success then already checked in", func(t *testing.T) {
		router, _ := newTestRouter(t, true, complete)
		w, body := doRequest(router, http.MethodPost, "/api/checkin/G1")
		if w.Code != http.StatusOK || body["success"] != true {
			t.Fatalf("expected 200 success, got %d %v", w.Code, body)
		}
		data, _ := body["data"].(map[string]interface{})
		if data["id"] != "G1" || data["name"] != "A" {
			t.Fatalf("unexpected data %v", data)
		}

		w, body = doRequest(router, http.MethodPost, "/api/checkin/G1")
		if w.Code != http.StatusOK || body["success"] != true {
			t.Fatalf("repeat must be 200 success, got %d %v", w.Code, body)
		}
		if body["message"] != "guest already checked in" {
			t.Fatalf("expected already-checked-in message, got %v", body["message"])
		}
	})
}

func TestListEndpointNewestFirst(t *testing.T) {
	g1 := models.Guest{ID: "G1", Salutation: "Mr.", Name: "A", Position: "Eng", Company: "Acme"}
	g2 := models.Guest{ID: "G2", Salutation: "Ms.", Name: "B", Position: "Dev", Company: "Beta"}
	router, ledger := newTestRouter(t, true, g1, g2)

	ctx := context.Background()
	if _, err := ledger.Append(ctx, "G1", "A"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := ledger.Append(ctx, "G2", "B"); err != nil {
		t.Fatalf("append: %v", err)
	}

	w, body := doRequest(router, http.MethodGet, "/api/checkins")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["total"] != float64(2) {
		t.Fatalf("expected total 2, got %v", body["total"])
	}
	list, _ := body["checkins"].([]interface{})
	if len(list) != 2 {
		t.Fatalf("expected 2 checkins, got %d", len(list))
	}
}

func TestExportEndpointShape(t *testing.T) {
	g1 := models.Guest{ID: "G1", Salutation: "Mr.", Name: "A", Position: "Eng", Company: "Acme"}
	router, ledger := newTestRouter(t, true, g1)
	if _, err := ledger.Append(context.Background(), "G1", "A"); err != nil {
		t.Fatalf("append: %v", err)
	}

	w, body := doRequest(router, http.MethodGet, "/api/export")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	rows, _ := body["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row, _ := rows[0].(map[string]interface{})
	for _, key := range []string{"id", "name", "checkinTime", "checkinDate", "checkinTimeOnly"} {
		if _, ok := row[key]; !ok {
			t.Fatalf("export row missing %q: %v", key, row)
		}
	}
}
