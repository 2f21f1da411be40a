package paygate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestClient_VerifyPayment_Confirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/payments/verify" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("Authorization header: got %q", got)
		}

		var req verifyPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if req.TransactionRef != "PB-ref-1" || req.UserID != "user_2abcDEF" {
			t.Errorf("unexpected payload: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","data":{"success":true,"transaction_id":"flw-881"}}`))
	}))
	defer server.Close()

	nopLogger := zerolog.Nop()
	client := NewClient(server.URL, "sk_test_123", &nopLogger)

	verdict, err := client.VerifyPayment(context.Background(), "PB-ref-1", "user_2abcDEF")
	if err != nil {
		t.Fatalf("VerifyPayment failed: %v", err)
	}
	if !verdict.Success {
		t.Errorf("verdict should be successful")
	}
	if verdict.TransactionID != "flw-881" {
		t.Errorf("TransactionID mismatch: got %s", verdict.TransactionID)
	}
}

func TestClient_VerifyPayment_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","data":{"success":false}}`))
	}))
	defer server.Close()

	nopLogger := zerolog.Nop()
	client := NewClient(server.URL, "sk_test_123", &nopLogger)

	verdict, err := client.VerifyPayment(context.Background(), "PB-ref-bad", "user_2abcDEF")
	if err != nil {
		t.Fatalf("a declined reference must not be an error: %v", err)
	}
	if verdict.Success {
		t.Errorf("verdict should be declined")
	}
}

func TestClient_VerifyPayment_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer server.Close()

	nopLogger := zerolog.Nop()
	client := NewClient(server.URL, "sk_wrong", &nopLogger)

	_, err := client.VerifyPayment(context.Background(), "PB-ref-1", "user_2abcDEF")
	if err == nil {
		t.Fatalf("expected an error from a 401 response")
	}
	var apiErr *ErrorResponse
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *ErrorResponse, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "invalid api key" {
		t.Errorf("unexpected error payload: %+v", apiErr)
	}
}

func TestClient_VerifyPayment_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	nopLogger := zerolog.Nop()
	client := NewClient(server.URL, "sk_test_123", &nopLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.VerifyPayment(ctx, "PB-ref-1", "user_2abcDEF"); err == nil {
		t.Fatalf("expected an error from a cancelled context")
	}
}
