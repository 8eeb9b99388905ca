package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestGinLoggerCarriesTillFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	engine := gin.New()
	engine.Use(GinLogger())
	engine.POST("/pos/checkout", func(c *gin.Context) {
		SetLogField(c, "username", "jane")
		SetLogField(c, "order_ref", "ref-1")
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/pos/checkout", nil)
	req.Header.Set(RequestIDHeader, "till-7")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "till-7" {
		t.Errorf("response %s = %q", RequestIDHeader, got)
	}
	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	want := map[string]interface{}{
		"request_id":  "till-7",
		"route":       "/pos/checkout",
		"username":    "jane",
		"order_ref":   "ref-1",
		"status_code": float64(http.StatusCreated),
		"level":       "info",
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("%s = %v, want %v", k, line[k], v)
		}
	}
}

func TestGinLoggerGeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := log.Logger
	log.Logger = zerolog.Nop()
	t.Cleanup(func() { log.Logger = prev })

	engine := gin.New()
	engine.Use(GinLogger())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}
}
