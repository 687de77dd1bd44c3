package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

const directoryFixture = `[
	{"name": "Central Pharmacy", "phone": "+15551234567", "city": "Springfield", "state": "IL", "rxVolume": 15000, "email": "orders@centralpharm.com", "contactPerson": "Maria Lopez"},
	{"name": "Riverside Drugs", "phone": "555-222-3333", "city": "Austin", "state": "TX", "rxVolume": 4200, "email": "", "contactPerson": ""},
	{"name": "", "phone": "5554445555", "city": "Austin", "state": "TX", "rxVolume": 800, "email": "", "contactPerson": ""}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func fixtureHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pharmacies" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(directoryFixture))
	}
}

func TestFindByPhoneMatchesNormalizedDigits(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, fixtureHandler(t))

	// Same trailing ten digits, different formatting.
	record, err := client.FindByPhone(context.Background(), "(555) 123-4567")
	if err != nil {
		t.Fatalf("FindByPhone: %v", err)
	}
	if record.Name != "Central Pharmacy" || record.RxVolume != 15000 {
		t.Fatalf("record = %+v", record)
	}
}

func TestFindByPhoneNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, fixtureHandler(t))

	_, err := client.FindByPhone(context.Background(), "+19990000000")
	if !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByPhoneEmptyNameFallback(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, fixtureHandler(t))

	record, err := client.FindByPhone(context.Background(), "5554445555")
	if err != nil {
		t.Fatalf("FindByPhone: %v", err)
	}
	if record.Name != "Unknown Pharmacy" {
		t.Fatalf("name = %q", record.Name)
	}
}

func TestFindByPhoneServerError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.FindByPhone(context.Background(), "+15551234567")
	if !errors.Is(err, contractx.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
}

func TestFindByPhoneTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(fixtureHandler(t))
	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	server.Close()

	_, err = client.FindByPhone(context.Background(), "+15551234567")
	if !errors.Is(err, contractx.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
}

func TestFindByPhoneMalformedResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	})

	_, err := client.FindByPhone(context.Background(), "+15551234567")
	if !errors.Is(err, contractx.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
}

func TestSearchFilters(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, fixtureHandler(t))

	records, err := client.Search(context.Background(), contractx.SearchFilters{State: "tx"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("state filter: got %d records", len(records))
	}

	records, err = client.Search(context.Background(), contractx.SearchFilters{State: "TX", MinVolume: 1000})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Riverside Drugs" {
		t.Fatalf("volume filter: %+v", records)
	}

	records, err = client.Search(context.Background(), contractx.SearchFilters{City: "Nowhere"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("city filter: %+v", records)
	}
}

func TestNewClientRejectsEmptyURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{URL: "   "}); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	healthy := newTestClient(t, fixtureHandler(t))
	if !healthy.HealthCheck(context.Background()) {
		t.Fatal("expected healthy")
	}

	broken := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	if broken.HealthCheck(context.Background()) {
		t.Fatal("expected unhealthy")
	}
}
