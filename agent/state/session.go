package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionState is the aggregate root for one call. Exactly one of Pharmacy
// and Lead is set for the whole lifetime of the session: a caller matched in
// the directory keeps an immutable PharmacyRecord, everyone else accumulates
// a LeadData. Messages and actions only ever grow; there is no cross-call
// identity.
type SessionState struct {
	ID     string             `json:"id"`
	Phone  string             `json:"phone"`
	Status ConversationStatus `json:"status"`

	Pharmacy *PharmacyRecord `json:"pharmacy,omitempty"`
	Lead     *LeadData       `json:"lead,omitempty"`

	Messages     []ConversationMessage `json:"messages,omitempty"`
	ActionsTaken []string              `json:"actions_taken,omitempty"`

	StartedAt time.Time `json:"started_at"`
}

type ConversationStatus string

const (
	StatusActive          ConversationStatus = "active"
	StatusCompleted       ConversationStatus = "completed"
	StatusPendingEmail    ConversationStatus = "pending_email"
	StatusPendingCallback ConversationStatus = "pending_callback"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is one turn. Never mutated after creation; ordering
// is arrival order.
type ConversationMessage struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

var (
	ErrNilSession      = errors.New("session state is nil")
	ErrInvalidPhone    = errors.New("phone number is empty")
	ErrInvariantBroken = errors.New("session must hold exactly one of pharmacy record and lead data")
	ErrInvalidRole     = errors.New("message role must be user or assistant")
)

// NewSession initializes session state for one call. A lead is created
// iff no pharmacy record was found for the caller.
func NewSession(phone string, record *PharmacyRecord, now time.Time) (*SessionState, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrInvalidPhone
	}

	s := &SessionState{
		ID:        uuid.NewString(),
		Phone:     phone,
		Status:    StatusActive,
		Pharmacy:  record,
		StartedAt: now.UTC(),
	}
	if record == nil {
		s.Lead = NewLeadData(phone)
	}
	return s, nil
}

// IsKnownPharmacy reports whether the caller was matched in the directory.
func (s *SessionState) IsKnownPharmacy() bool {
	return s != nil && s.Pharmacy != nil
}

// DisplayName returns the best name for addressing the caller, falling
// back to "there" when nothing has been collected yet.
func (s *SessionState) DisplayName() string {
	if s == nil {
		return "there"
	}
	if s.Pharmacy != nil && s.Pharmacy.Name != "" {
		return s.Pharmacy.Name
	}
	if s.Lead != nil && s.Lead.PharmacyName != "" {
		return s.Lead.PharmacyName
	}
	return "there"
}

// EmailAddress returns the stored email from whichever record the session
// holds, or empty when none has been collected.
func (s *SessionState) EmailAddress() string {
	if s == nil {
		return ""
	}
	if s.Pharmacy != nil && s.Pharmacy.Email != "" {
		return s.Pharmacy.Email
	}
	if s.Lead != nil {
		return s.Lead.Email
	}
	return ""
}

// HasEmail reports whether an email address is already on file.
func (s *SessionState) HasEmail() bool {
	return s.EmailAddress() != ""
}

// Tier classifies the session's pharmacy or lead by volume.
func (s *SessionState) Tier() VolumeTier {
	if s == nil {
		return TierStartup
	}
	if s.Pharmacy != nil {
		return s.Pharmacy.Tier()
	}
	return s.Lead.Tier()
}

// AddMessage appends one turn with the given timestamp. Callers must not
// mutate the returned message afterward.
func (s *SessionState) AddMessage(role, content string, meta map[string]string, now time.Time) error {
	if s == nil {
		return ErrNilSession
	}
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	s.Messages = append(s.Messages, ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: now.UTC(),
		Metadata:  meta,
	})
	return nil
}

// AddAction records an action name once; repeated calls are no-ops so the
// action history stays duplicate-free in insertion order.
func (s *SessionState) AddAction(name string) {
	if s == nil || name == "" {
		return
	}
	for _, taken := range s.ActionsTaken {
		if taken == name {
			return
		}
	}
	s.ActionsTaken = append(s.ActionsTaken, name)
}

// MergeEntities writes recognized entities into the lead, later values
// overwriting earlier ones. Fields absent from the patch are untouched.
// Known-pharmacy sessions are never mutated: directory data is immutable
// after lookup.
func (s *SessionState) MergeEntities(entities Entities) {
	if s == nil || s.Lead == nil {
		return
	}
	if entities.Email != "" {
		s.Lead.Email = entities.Email
	}
	if entities.PharmacyName != "" {
		s.Lead.PharmacyName = entities.PharmacyName
	}
	if entities.Location != "" {
		s.Lead.Location = entities.Location
	}
	if entities.RxVolume != nil {
		s.Lead.RxVolume = *entities.RxVolume
	}
}

// Validate enforces the session invariant: exactly one of pharmacy record
// and lead data, never both and never neither.
func (s *SessionState) Validate() error {
	if s == nil {
		return ErrNilSession
	}
	if strings.TrimSpace(s.Phone) == "" {
		return ErrInvalidPhone
	}
	if (s.Pharmacy == nil) == (s.Lead == nil) {
		return ErrInvariantBroken
	}
	return nil
}
