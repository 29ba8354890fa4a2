package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"homefood-api/models"
	"homefood-api/reports"
	"homefood-api/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestRouter wires handlers to a fresh in-memory stack. Auth middleware
// is deliberately left off: these tests cover the handler/store contract.
func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.MenuItem{}, &models.Order{}, &models.SaleRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(db, log, 5*time.Second)
	Init(st, reports.NewService(st, log), log)

	r := gin.New()
	r.POST("/api/orders", PlaceOrder)
	r.GET("/api/orders", ListOrders)
	r.PUT("/api/orders/:id/status", UpdateOrderStatus)
	r.GET("/api/reports", GenerateReport)
	r.GET("/api/reports/today", TodaySummary)
	r.POST("/api/menu", AddMenuItem)
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedBiryani(t *testing.T, st *store.Store) models.MenuItem {
	t.Helper()
	item, err := st.AddMenuItem(context.Background(), store.MenuItemInput{
		Name: "Biryani", Price: 250, Cost: 180, Availability: true,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestPlaceOrderEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	item := seedBiryani(t, st)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"name": "Ali", "phone": "03001234567", "hostel": "H7",
		"meal": "Lunch", "item_id": item.ID, "quantity": 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Order.Status != models.StatusPending || resp.Order.Margin != 70 {
		t.Fatalf("unexpected order: %+v", resp.Order)
	}
}

func TestPlaceOrderEndpoint_ValidationFields(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{"meal": "Breakfast"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Fields) == 0 {
		t.Fatalf("validation response should name fields: %s", w.Body.String())
	}
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	item := seedBiryani(t, st)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"name": "Ali", "phone": "0300", "hostel": "H7",
		"meal": "Dinner", "item_id": item.ID, "quantity": 2,
	})
	var placed struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &placed); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodPut, "/api/orders/"+placed.Order.ID+"/status", gin.H{"status": "delivered"})
	if w.Code != http.StatusOK {
		t.Fatalf("deliver status = %d, body = %s", w.Code, w.Body.String())
	}

	// A second transition hits the terminal-state rule
	w = doJSON(t, r, http.MethodPut, "/api/orders/"+placed.Order.ID+"/status", gin.H{"status": "canceled"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("repeat transition status = %d, want 422; body = %s", w.Code, w.Body.String())
	}

	// Unknown order
	w = doJSON(t, r, http.MethodPut, "/api/orders/ghost/status", gin.H{"status": "delivered"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown order status = %d, want 404", w.Code)
	}
}

func TestReportEndpoints(t *testing.T) {
	r, st := newTestRouter(t)
	item := seedBiryani(t, st)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"name": "Ali", "phone": "0300", "hostel": "H7",
		"meal": "Lunch", "item_id": item.ID, "quantity": 1,
	})
	var placed struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &placed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w := doJSON(t, r, http.MethodPut, "/api/orders/"+placed.Order.ID+"/status", gin.H{"status": "delivered"}); w.Code != http.StatusOK {
		t.Fatalf("deliver: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/reports?period=today", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report status = %d, body = %s", w.Code, w.Body.String())
	}
	var rep struct {
		Report models.SaleReport `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Report.TotalSales != 250 || rep.Report.TotalOrders != 1 || rep.Report.TotalProfit != 70 {
		t.Fatalf("report numbers wrong: %+v", rep.Report)
	}

	w = doJSON(t, r, http.MethodGet, "/api/reports?period=fortnight", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad period status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/reports/today", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d, body = %s", w.Code, w.Body.String())
	}
	var sum models.TodaySummary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.TotalSales != 250 || len(sum.Slices) != 1 || sum.Slices[0].Color == "" {
		t.Fatalf("summary wrong: %+v", sum)
	}
}
