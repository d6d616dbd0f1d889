package syncjobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karimelbaz/photodesk-backend/pkg/config"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

func testPayload() Payload {
	return PayloadFromJob(&models.SyncJob{
		Status:          enums.SyncStatusPending,
		EmployeeName:    "Sara",
		PayAmount:       decimal.RequireFromString("31.50"),
		OrderPrefixCode: "12345678",
		ShiftName:       "morning",
		OrderPhone:      "01012345678",
		NumberOfPhotos:  3,
	})
}

func clientFor(t *testing.T, url string, attempts int) *Client {
	t.Helper()
	c, err := NewClient(config.SyncConfig{
		BaseURL:      url,
		BearerToken:  "token-123",
		Timeout:      2 * time.Second,
		MaxAttempts:  attempts,
		RetryBackoff: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestPushSendsContractPayload(t *testing.T) {
	var got Payload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sync-jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := clientFor(t, srv.URL, 3).Push(context.Background(), testPayload()); err != nil {
		t.Fatalf("push: %v", err)
	}
	if auth != "Bearer token-123" {
		t.Fatalf("expected bearer auth got %q", auth)
	}
	if got.EmployeeName != "Sara" || got.PayAmount != "31.50" || got.NumberOfPhotos != 3 {
		t.Fatalf("unexpected payload %+v", got)
	}
	if got.OrderPrefixCode != "12345678" {
		t.Fatalf("unexpected prefix %q", got.OrderPrefixCode)
	}
}

func TestPushRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := clientFor(t, srv.URL, 3).Push(context.Background(), testPayload()); err != nil {
		t.Fatalf("push: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts got %d", calls)
	}
}

func TestPushGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := clientFor(t, srv.URL, 3).Push(context.Background(), testPayload()); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts got %d", calls)
	}
}

func TestPushDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	if err := clientFor(t, srv.URL, 3).Push(context.Background(), testPayload()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt got %d", calls)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.SyncConfig{}); err == nil {
		t.Fatal("expected error without base url")
	}
}
