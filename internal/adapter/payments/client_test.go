package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
	"github.com/storekit/orders/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sessionFixture() model.PaymentSessionRequest {
	return model.PaymentSessionRequest{
		OrderID:  "order-1",
		Currency: "mxn",
		Items: []model.PaymentSessionItem{
			{Name: "Widget", Price: 5, Quantity: 2},
		},
	}
}

func TestNewHTTPClient(t *testing.T) {
	if _, err := NewHTTPClient("http://payments.local", testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewHTTPClient("payments.local", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := NewHTTPClient(":://bad", testLogger()); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestCreateSession(t *testing.T) {
	var gotPath string
	var gotBody sessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"sess-1","url":"https://pay.local/sess-1"}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session, err := client.CreateSession(context.Background(), sessionFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/payments/session" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotBody.OrderID != "order-1" || gotBody.Currency != "mxn" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
	if len(gotBody.Items) != 1 || gotBody.Items[0].Name != "Widget" || gotBody.Items[0].Quantity != 2 {
		t.Errorf("unexpected items: %+v", gotBody.Items)
	}
	if session.ID != "sess-1" || session.URL != "https://pay.local/sess-1" {
		t.Errorf("unexpected session: %+v", session)
	}
}

func TestCreateSessionUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.CreateSession(context.Background(), sessionFixture()); !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestCreateSessionTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.CreateSession(context.Background(), sessionFixture()); !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestCreateSessionMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.CreateSession(context.Background(), sessionFixture()); err == nil {
		t.Fatal("expected decode error")
	}
}
