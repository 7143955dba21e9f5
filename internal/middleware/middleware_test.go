package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestID_GeneratesID(t *testing.T) {
	// Arrange
	var seenID string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seenID, _ = r.Context().Value(RequestIDKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	// Act
	RequestID()(next).ServeHTTP(rr, req)

	// Assert
	if seenID == "" {
		t.Error("request ID should be set in context")
	}
	if rr.Header().Get(RequestIDHeader) != seenID {
		t.Errorf("response header ID = %s, want %s", rr.Header().Get(RequestIDHeader), seenID)
	}
}

func TestRequestID_PreservesIncomingID(t *testing.T) {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "incoming-id")
	rr := httptest.NewRecorder()

	// Act
	RequestID()(okHandler()).ServeHTTP(rr, req)

	// Assert
	if got := rr.Header().Get(RequestIDHeader); got != "incoming-id" {
		t.Errorf("response header ID = %s, want incoming-id", got)
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	// Arrange
	panicking := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	// Act
	Recovery(zap.NewNop())(panicking).ServeHTTP(rr, req)

	// Assert
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestRecovery_PassesThrough(t *testing.T) {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	// Act
	Recovery(zap.NewNop())(okHandler()).ServeHTTP(rr, req)

	// Assert
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestLogging_PassesThrough(t *testing.T) {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	rr := httptest.NewRecorder()

	// Act
	Logging(zap.NewNop())(okHandler()).ServeHTTP(rr, req)

	// Assert
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Body.String() != "ok" {
		t.Errorf("body = %s, want ok", rr.Body.String())
	}
}

func TestMetrics_PassesThrough(t *testing.T) {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	rr := httptest.NewRecorder()

	// Act
	Metrics()(okHandler()).ServeHTTP(rr, req)

	// Assert
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name            string
		allowedOrigins  []string
		requestOrigin   string
		method          string
		wantStatus      int
		wantOrigin      string
		wantCredentials string
	}{
		{
			name:           "wildcard allows any origin without credentials",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://example.com",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantOrigin:     "https://example.com",
		},
		{
			name:            "specific origin match sets credentials",
			allowedOrigins:  []string{"https://example.com"},
			requestOrigin:   "https://example.com",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantOrigin:      "https://example.com",
			wantCredentials: "true",
		},
		{
			name:           "unlisted origin gets no allow header",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://evil.test",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantOrigin:     "",
		},
		{
			name:           "preflight short-circuits",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://example.com",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantOrigin:     "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mw := CORS(tt.allowedOrigins, []string{http.MethodGet, http.MethodPost}, []string{"Content-Type"})
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.requestOrigin)
			rr := httptest.NewRecorder()

			// Act
			mw(okHandler()).ServeHTTP(rr, req)

			// Assert
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredentials {
				t.Errorf("allow-credentials = %q, want %q", got, tt.wantCredentials)
			}
		})
	}
}

func TestChain_AppliesInOrder(t *testing.T) {
	// Arrange
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	// Act
	Chain(tag("outer"), tag("inner"))(okHandler()).ServeHTTP(rr, req)

	// Assert
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v, want [outer inner]", order)
	}
}

func TestResponseWriter_CapturesStatus(t *testing.T) {
	// Arrange
	rr := httptest.NewRecorder()
	rw := newResponseWriter(rr)

	// Act
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK) // second call must be ignored

	// Assert
	if rw.statusCode != http.StatusTeapot {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusTeapot)
	}
	if rr.Code != http.StatusTeapot {
		t.Errorf("recorded status = %d, want %d", rr.Code, http.StatusTeapot)
	}
}

func TestResponseWriter_WriteDefaultsToOK(t *testing.T) {
	// Arrange
	rr := httptest.NewRecorder()
	rw := newResponseWriter(rr)

	// Act
	_, err := rw.Write([]byte("body"))

	// Assert
	if err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusOK)
	}
}
