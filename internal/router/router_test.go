package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portside_pos_backend/internal/config"
	"portside_pos_backend/internal/events"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type testServer struct {
	t        *testing.T
	engine   *gin.Engine
	store    *repositories.MemoryStore
	recorder *events.Recorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("router-test-secret", time.Hour)

	store := repositories.NewMemoryStore()
	if err := services.Bootstrap(store); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	cfg := &config.Config{Location: time.UTC, KitchenPollInterval: time.Second}
	recorder := &events.Recorder{}

	engine := gin.New()
	Setup(engine, store, cfg, recorder)
	return &testServer{t: t, engine: engine, store: store, recorder: recorder}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": password})
	if w.Code != http.StatusOK {
		s.t.Fatalf("login %s: status %d %s", username, w.Code, w.Body.String())
	}
	var resp services.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		s.t.Fatal(err)
	}
	return resp.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(http.MethodGet, "/ping", "", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "jane", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong passcode status = %d", w.Code)
	}
	var body struct {
		Error utils.APIError `json:"error"`
	}
	decode(t, w, &body)
	if body.Error.Code != utils.ErrCodeUnauthorized {
		t.Errorf("error code = %q", body.Error.Code)
	}

	if w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d", w.Code)
	}
}

func TestAddCartLineUnknownItem(t *testing.T) {
	s := newTestServer(t)
	jane := s.login("jane", "0000")

	for _, id := range []int64{0, 999} {
		w := s.do(http.MethodPost, "/api/v1/pos/cart/lines", jane, map[string]int64{"item_id": id})
		if w.Code != http.StatusOK {
			t.Fatalf("item %d: status = %d %s", id, w.Code, w.Body.String())
		}
		var cart struct {
			ItemCount int `json:"item_count"`
		}
		decode(t, w, &cart)
		if cart.ItemCount != 0 {
			t.Errorf("item %d: item count = %d, want 0", id, cart.ItemCount)
		}
	}

	if w := s.do(http.MethodPost, "/api/v1/pos/cart/lines", jane, map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing item_id status = %d, want 400", w.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	s := newTestServer(t)
	jane := s.login("jane", "0000")

	if w := s.do(http.MethodPost, "/api/v1/pos/checkout", jane, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty checkout status = %d", w.Code)
	}

	for i := 0; i < 2; i++ {
		if w := s.do(http.MethodPost, "/api/v1/pos/cart/lines", jane, map[string]int64{"item_id": 21}); w.Code != http.StatusOK {
			t.Fatalf("add line status = %d %s", w.Code, w.Body.String())
		}
	}
	w := s.do(http.MethodGet, "/api/v1/pos/cart", jane, nil)
	var cart struct {
		ItemCount int `json:"item_count"`
		Display   struct {
			Subtotal string `json:"subtotal"`
			Tax      string `json:"tax"`
			Total    string `json:"total"`
		} `json:"display"`
	}
	decode(t, w, &cart)
	if cart.ItemCount != 2 || cart.Display.Subtotal != "7.00" || cart.Display.Tax != "0.70" || cart.Display.Total != "7.70" {
		t.Fatalf("cart = %+v", cart)
	}

	w = s.do(http.MethodPost, "/api/v1/pos/checkout", jane, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout status = %d %s", w.Code, w.Body.String())
	}
	var checkout struct {
		Order struct {
			Ref string `json:"ref"`
			ID  string `json:"id"`
		} `json:"order"`
	}
	decode(t, w, &checkout)
	if checkout.Order.ID != "101" || checkout.Order.Ref == "" {
		t.Fatalf("order = %+v", checkout.Order)
	}

	w = s.do(http.MethodGet, "/api/v1/kitchen/tickets", jane, nil)
	var tickets struct {
		Count   int `json:"count"`
		Tickets []struct {
			Lines []struct {
				Name string `json:"name"`
				Qty  int    `json:"qty"`
			} `json:"lines"`
		} `json:"tickets"`
	}
	decode(t, w, &tickets)
	if tickets.Count != 1 || tickets.Tickets[0].Lines[0].Name != "Coke" || tickets.Tickets[0].Lines[0].Qty != 2 {
		t.Fatalf("tickets = %s", w.Body.String())
	}

	if w := s.do(http.MethodPost, "/api/v1/kitchen/tickets/"+checkout.Order.Ref+"/complete", jane, nil); w.Code != http.StatusOK {
		t.Fatalf("complete status = %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/kitchen/tickets/"+checkout.Order.Ref+"/complete", jane, nil); w.Code != http.StatusNotFound {
		t.Errorf("second complete status = %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/kitchen/tickets/complete?timestamp=abc", jane, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad timestamp status = %d", w.Code)
	}

	if got := len(s.recorder.Events()); got != 2 {
		t.Errorf("events = %d, want 2", got)
	}

	admin := s.login("admin", "admin123")
	w = s.do(http.MethodGet, "/api/v1/dashboard/summary", admin, nil)
	var summary struct {
		TodayOrders int    `json:"today_orders"`
		Currency    string `json:"currency"`
	}
	decode(t, w, &summary)
	if summary.TodayOrders != 1 || summary.Currency != "₱" {
		t.Errorf("summary = %s", w.Body.String())
	}
}

func TestManagementRoutesRequireRole(t *testing.T) {
	s := newTestServer(t)
	jane := s.login("jane", "0000")
	john := s.login("john", "1234")

	for _, path := range []string{"/api/v1/dashboard/summary", "/api/v1/staff", "/api/v1/stocks", "/api/v1/reports/daily", "/api/v1/menu/items", "/api/v1/expenses"} {
		if w := s.do(http.MethodGet, path, jane, nil); w.Code != http.StatusForbidden {
			t.Errorf("server GET %s = %d, want 403", path, w.Code)
		}
		if w := s.do(http.MethodGet, path, john, nil); w.Code != http.StatusOK {
			t.Errorf("manager GET %s = %d, want 200", path, w.Code)
		}
		if w := s.do(http.MethodGet, path, "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("anonymous GET %s = %d, want 401", path, w.Code)
		}
	}

	if w := s.do(http.MethodPut, "/api/v1/settings/admin", john, map[string]string{"username": "x", "password": "y"}); w.Code != http.StatusForbidden {
		t.Errorf("manager changing admin = %d", w.Code)
	}
}

func TestStockUsageAndReportExport(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")

	w := s.do(http.MethodPost, "/api/v1/stocks/4/usage", admin, map[string]interface{}{"amount": 0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("zero usage status = %d", w.Code)
	}
	w = s.do(http.MethodPost, "/api/v1/stocks/4/usage", admin, map[string]interface{}{"amount": 1.5})
	if w.Code != http.StatusCreated {
		t.Fatalf("usage status = %d %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodPost, "/api/v1/stocks/999/usage", admin, map[string]interface{}{"amount": 1}); w.Code != http.StatusNotFound {
		t.Errorf("unknown stock status = %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/reports/daily?date=bad", admin, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/reports/daily/export", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("export is not a zip container")
	}
}

func TestStaffAndMenuEditors(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")

	w := s.do(http.MethodPost, "/api/v1/staff", admin, map[string]string{"name": "Ko", "username": "jane", "passcode": "1", "role": "Kitchen"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate username status = %d", w.Code)
	}
	w = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"name": "Chef Ko", "username": "ko", "passcode": "1", "role": "Kitchen"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d %s", w.Code, w.Body.String())
	}
	if tok := s.login("ko", "1"); tok == "" {
		t.Fatal("no token for registered user")
	}

	w = s.do(http.MethodPost, "/api/v1/menu/categories", admin, map[string]string{"name": "Drinks"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate category status = %d", w.Code)
	}
	w = s.do(http.MethodPost, "/api/v1/menu/items", admin, map[string]interface{}{"name": "Iced Tea", "price": 3, "category": "drinks"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create item status = %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodDelete, "/api/v1/menu/items/mains/21", admin, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete from wrong category status = %d", w.Code)
	}

	w = s.do(http.MethodPut, "/api/v1/settings", admin, map[string]interface{}{"tax": 5, "currency": "$"})
	if w.Code != http.StatusOK {
		t.Fatalf("settings status = %d %s", w.Code, w.Body.String())
	}
}
