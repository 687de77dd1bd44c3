package state

import "strings"

// VolumeTier classifies a pharmacy by monthly prescription volume.
type VolumeTier string

const (
	TierHighVolume   VolumeTier = "high_volume"   // 10,000+ per month
	TierMediumVolume VolumeTier = "medium_volume" // 5,000-9,999 per month
	TierLowVolume    VolumeTier = "low_volume"    // 1,000-4,999 per month
	TierStartup      VolumeTier = "startup"       // below 1,000 or unknown
)

// TierForVolume maps a monthly prescription count to its tier.
// Zero or negative counts as unknown volume.
func TierForVolume(rxVolume int) VolumeTier {
	switch {
	case rxVolume >= 10000:
		return TierHighVolume
	case rxVolume >= 5000:
		return TierMediumVolume
	case rxVolume >= 1000:
		return TierLowVolume
	default:
		return TierStartup
	}
}

// PharmacyRecord is a directory entry for a known caller. It is immutable
// once looked up; the session owns it for the duration of the call.
type PharmacyRecord struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	RxVolume      int    `json:"rx_volume,omitempty"` // 0 = unknown
	Email         string `json:"email,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
}

// Tier is always recomputed from RxVolume, never stored.
func (p *PharmacyRecord) Tier() VolumeTier {
	if p == nil {
		return TierStartup
	}
	return TierForVolume(p.RxVolume)
}

// LocationDisplay formats the city/state pair for user-facing text.
func (p *PharmacyRecord) LocationDisplay() string {
	if p == nil {
		return "Unknown location"
	}
	switch {
	case p.City != "" && p.State != "":
		return p.City + ", " + p.State
	case p.City != "":
		return p.City
	case p.State != "":
		return p.State
	}
	return "Unknown location"
}

// leadTrackedFields is the number of optional fields counted toward
// lead completeness.
const leadTrackedFields = 5

// LeadData is the progressively-assembled record for an unknown caller.
// Empty string / zero volume means the field has not been collected yet.
type LeadData struct {
	Phone         string   `json:"phone"`
	PharmacyName  string   `json:"pharmacy_name,omitempty"`
	ContactPerson string   `json:"contact_person,omitempty"`
	Email         string   `json:"email,omitempty"`
	Location      string   `json:"location,omitempty"`
	RxVolume      int      `json:"rx_volume,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// NewLeadData starts a lead with only the caller's phone number.
func NewLeadData(phone string) *LeadData {
	return &LeadData{Phone: strings.TrimSpace(phone)}
}

// IsComplete reports whether the minimum information for a usable lead
// has been collected.
func (l *LeadData) IsComplete() bool {
	return l != nil && l.PharmacyName != "" && l.Email != ""
}

// CompletionPercentage is recomputed on demand over the five tracked
// optional fields, so it is always one of 0, 20, 40, 60, 80, 100.
func (l *LeadData) CompletionPercentage() int {
	if l == nil {
		return 0
	}
	completed := 0
	if l.PharmacyName != "" {
		completed++
	}
	if l.ContactPerson != "" {
		completed++
	}
	if l.Email != "" {
		completed++
	}
	if l.Location != "" {
		completed++
	}
	if l.RxVolume > 0 {
		completed++
	}
	return completed * 100 / leadTrackedFields
}

// Tier classifies the lead by its reported volume, unknown until stated.
func (l *LeadData) Tier() VolumeTier {
	if l == nil {
		return TierStartup
	}
	return TierForVolume(l.RxVolume)
}
