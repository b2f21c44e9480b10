package address

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return NewClient(Config{BaseURL: ts.URL, HTTPClient: ts.Client()}, nil)
}

func TestLookup(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("zipcode"); got != "6650845" {
			t.Errorf("expected normalized zipcode, got %q", got)
		}
		w.Write([]byte(`{"status":200,"results":[{"zipcode":"6650845","address1":"兵庫県","address2":"宝塚市","address3":"栄町"}]}`))
	})

	got, err := c.Lookup(context.Background(), "665-0845")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Full != "兵庫県宝塚市栄町" {
		t.Errorf("unexpected full address %q", got.Full)
	}
	if got.Prefecture != "兵庫県" {
		t.Errorf("unexpected prefecture %q", got.Prefecture)
	}
}

func TestLookupNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"results":null}`))
	})

	_, err := c.Lookup(context.Background(), "0000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupInvalidCode(t *testing.T) {
	c := NewClient(Config{}, nil)
	for _, code := range []string{"", "12345", "abcdefg", "12345678"} {
		if _, err := c.Lookup(context.Background(), code); err == nil {
			t.Errorf("expected error for %q", code)
		}
	}
}

func TestLookupUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":400,"message":"パラメータ「郵便番号」の桁数が不正です。"}`))
	})

	if _, err := c.Lookup(context.Background(), "1234567"); err == nil {
		t.Fatal("expected upstream error")
	}
}
