package challenge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homeshield_backend/platform/apperr"
	"homeshield_backend/platform/logger"
)

type stubConfig struct {
	secret string
}

func (s stubConfig) GetTurnstileSecret() string { return s.secret }
func (s stubConfig) IsChallengeEnabled() bool   { return s.secret != "" }

func TestVerifyMissingTokenRejectedLocally(t *testing.T) {
	// Secret set, so a present token would trigger an outbound call. The
	// empty token must be rejected before that.
	client := NewClient(stubConfig{secret: "sk"}, logger.New("development"), nil)

	err := client.Verify(context.Background(), "", "1.2.3.4")
	if !apperr.Is(err, apperr.KindChallenge) {
		t.Fatalf("expected challenge error, got %v", err)
	}

	err = client.Verify(context.Background(), "   ", "1.2.3.4")
	if !apperr.Is(err, apperr.KindChallenge) {
		t.Fatalf("expected challenge error for blank token, got %v", err)
	}
}

func TestVerifyDisabledPassesAnyToken(t *testing.T) {
	client := NewClient(stubConfig{}, logger.New("development"), nil)

	if err := client.Verify(context.Background(), "anything", ""); err != nil {
		t.Fatalf("disabled verification must pass, got %v", err)
	}
}

func TestVerifyRejectedReturnsErrorCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":false,"error-codes":["invalid-input-response"]}`)
	}))
	defer srv.Close()

	client := NewClient(stubConfig{secret: "sk"}, logger.New("development"), nil)
	client.verifyURL = srv.URL

	err := client.Verify(context.Background(), "bad-token", "1.2.3.4")
	if !apperr.Is(err, apperr.KindChallenge) {
		t.Fatalf("expected challenge error, got %v", err)
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	details, ok := appErr.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("expected details map, got %T", appErr.Details)
	}
	codes, ok := details["error-codes"].([]string)
	if !ok || len(codes) != 1 || codes[0] != "invalid-input-response" {
		t.Fatalf("expected error codes passed through, got %v", details["error-codes"])
	}
}

func TestVerifyAcceptedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("response"); got != "good-token" {
			t.Errorf("expected token in form, got %q", got)
		}
		if got := r.PostForm.Get("secret"); got != "sk" {
			t.Errorf("expected secret in form, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"hostname":"example.com"}`)
	}))
	defer srv.Close()

	client := NewClient(stubConfig{secret: "sk"}, logger.New("development"), nil)
	client.verifyURL = srv.URL

	if err := client.Verify(context.Background(), "good-token", ""); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}
