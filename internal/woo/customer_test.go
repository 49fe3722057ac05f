package woo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestLookupNotConfigured(t *testing.T) {
	client := NewClient("", "", "")
	if client.Configured() {
		t.Fatal("empty client reports configured")
	}
	if _, err := client.Lookup(context.Background(), 1); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestLookupExtractsMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wc/v3/customers/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_test" || pass != "cs_test" {
			t.Errorf("missing or wrong basic auth: %s/%s", user, pass)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 42,
			"meta_data": [
				{"key": "jobTitle", "value": "Data Engineer"},
				{"key": "plavras", "value": ["python", "sql"]},
				{"key": "location", "value": "Lisbon, Portugal"},
				{"key": "unrelated", "value": {"nested": true}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "ck_test", "cs_test")
	profile, err := client.Lookup(context.Background(), 42)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if profile.ID != 42 {
		t.Fatalf("id = %d, want 42", profile.ID)
	}
	if profile.JobTitle != "Data Engineer" {
		t.Fatalf("jobTitle = %q", profile.JobTitle)
	}
	if !reflect.DeepEqual(profile.Plavras, []string{"python", "sql"}) {
		t.Fatalf("plavras = %v", profile.Plavras)
	}
	if profile.Location != "Lisbon, Portugal" {
		t.Fatalf("location = %q", profile.Location)
	}
}

func TestLookupAppliesDefaultsForMissingMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 7, "meta_data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret")
	profile, err := client.Lookup(context.Background(), 7)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if profile.JobTitle != "Engenharia Ambiental" {
		t.Fatalf("jobTitle default = %q", profile.JobTitle)
	}
	if profile.Location != "Brazil" {
		t.Fatalf("location default = %q", profile.Location)
	}
	if profile.Plavras == nil || len(profile.Plavras) != 0 {
		t.Fatalf("plavras = %#v, want empty non-nil slice", profile.Plavras)
	}
}

func TestLookupNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": "woocommerce_rest_invalid_id"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret")
	if _, err := client.Lookup(context.Background(), 999); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("err = %v, want ErrCustomerNotFound", err)
	}
}

func TestLookupTreatsErrorCodeAsNotFound(t *testing.T) {
	// Some WooCommerce setups answer 200 with an error payload.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "woocommerce_rest_customer_invalid", "message": "Resource does not exist."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret")
	if _, err := client.Lookup(context.Background(), 5); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("err = %v, want ErrCustomerNotFound", err)
	}
}

func TestLookupSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret")
	_, err := client.Lookup(context.Background(), 5)
	if err == nil || errors.Is(err, ErrCustomerNotFound) || errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want plain server error", err)
	}
}
