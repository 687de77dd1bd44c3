package state

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)

func TestNewSessionKnownPharmacy(t *testing.T) {
	t.Parallel()

	record := &PharmacyRecord{Name: "Central Pharmacy", Phone: "+15551234567", RxVolume: 15000}
	s, err := NewSession("+15551234567", record, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if !s.IsKnownPharmacy() {
		t.Fatal("expected known-pharmacy session")
	}
	if s.Lead != nil {
		t.Fatal("known session must not carry lead data")
	}
	if s.Status != StatusActive {
		t.Fatalf("expected active status, got %q", s.Status)
	}
	if s.ID == "" {
		t.Fatal("expected generated session id")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestNewSessionUnknownCallerGetsLead(t *testing.T) {
	t.Parallel()

	s, err := NewSession("+15559876543", nil, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if s.IsKnownPharmacy() {
		t.Fatal("expected lead session")
	}
	if s.Lead == nil {
		t.Fatal("lead session must carry lead data")
	}
	if s.Lead.Phone != "+15559876543" {
		t.Fatalf("lead phone = %q", s.Lead.Phone)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestNewSessionEmptyPhone(t *testing.T) {
	t.Parallel()

	if _, err := NewSession("   ", nil, testNow); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestValidateInvariant(t *testing.T) {
	t.Parallel()

	s := &SessionState{Phone: "+15550001111"}
	if err := s.Validate(); !errors.Is(err, ErrInvariantBroken) {
		t.Fatalf("neither record set: expected ErrInvariantBroken, got %v", err)
	}

	s.Pharmacy = &PharmacyRecord{Name: "Dual"}
	s.Lead = NewLeadData("+15550001111")
	if err := s.Validate(); !errors.Is(err, ErrInvariantBroken) {
		t.Fatalf("both records set: expected ErrInvariantBroken, got %v", err)
	}

	s.Lead = nil
	if err := s.Validate(); err != nil {
		t.Fatalf("exactly one record: %v", err)
	}
}

func TestAddMessageRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	s, err := NewSession("+15551230000", nil, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if err := s.AddMessage("system", "nope", nil, testNow); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := s.AddMessage(RoleUser, "hello", nil, testNow); err != nil {
		t.Fatalf("AddMessage user: %v", err)
	}
	if err := s.AddMessage(RoleAssistant, "hi", map[string]string{"intent": "greeting"}, testNow); err != nil {
		t.Fatalf("AddMessage assistant: %v", err)
	}
	if len(s.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(s.Messages))
	}
	if s.Messages[1].Metadata["intent"] != "greeting" {
		t.Fatalf("metadata lost: %v", s.Messages[1].Metadata)
	}
}

func TestAddActionIdempotent(t *testing.T) {
	t.Parallel()

	s, err := NewSession("+15551230000", nil, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	s.AddAction("send_email")
	s.AddAction("log_lead")
	s.AddAction("send_email")
	s.AddAction("")

	want := []string{"send_email", "log_lead"}
	if len(s.ActionsTaken) != len(want) {
		t.Fatalf("actions = %v, want %v", s.ActionsTaken, want)
	}
	for i := range want {
		if s.ActionsTaken[i] != want[i] {
			t.Fatalf("actions = %v, want %v", s.ActionsTaken, want)
		}
	}
}

func TestMergeEntitiesLastWriteWins(t *testing.T) {
	t.Parallel()

	s, err := NewSession("+15551230000", nil, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	volume := 8000
	s.MergeEntities(Entities{Email: "first@pharmacy.com", PharmacyName: "MedCare Plus"})
	s.MergeEntities(Entities{Email: "second@pharmacy.com", RxVolume: &volume})

	if s.Lead.Email != "second@pharmacy.com" {
		t.Fatalf("email = %q, want later write", s.Lead.Email)
	}
	if s.Lead.PharmacyName != "MedCare Plus" {
		t.Fatalf("pharmacy name overwritten by absent field: %q", s.Lead.PharmacyName)
	}
	if s.Lead.RxVolume != 8000 {
		t.Fatalf("rx volume = %d", s.Lead.RxVolume)
	}
}

func TestMergeEntitiesNoopForKnownPharmacy(t *testing.T) {
	t.Parallel()

	record := &PharmacyRecord{Name: "Central Pharmacy", Email: "orders@central.com"}
	s, err := NewSession("+15551234567", record, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	s.MergeEntities(Entities{Email: "intruder@example.com", PharmacyName: "Other"})

	if s.Pharmacy.Email != "orders@central.com" || s.Pharmacy.Name != "Central Pharmacy" {
		t.Fatalf("directory record mutated: %+v", s.Pharmacy)
	}
}

func TestDisplayNameFallback(t *testing.T) {
	t.Parallel()

	s, err := NewSession("+15551230000", nil, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := s.DisplayName(); got != "there" {
		t.Fatalf("DisplayName = %q, want %q", got, "there")
	}

	s.Lead.PharmacyName = "MedCare Plus"
	if got := s.DisplayName(); got != "MedCare Plus" {
		t.Fatalf("DisplayName = %q", got)
	}
}

func TestEmailAddressPrefersPharmacyRecord(t *testing.T) {
	t.Parallel()

	record := &PharmacyRecord{Name: "Central", Email: "orders@central.com"}
	s, err := NewSession("+15551234567", record, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := s.EmailAddress(); got != "orders@central.com" {
		t.Fatalf("EmailAddress = %q", got)
	}
	if !s.HasEmail() {
		t.Fatal("expected HasEmail")
	}

	lead, err := NewSession("+15551230000", nil, testNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if lead.HasEmail() {
		t.Fatal("fresh lead should have no email")
	}
}
