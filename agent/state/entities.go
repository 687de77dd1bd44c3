package state

// Entities is the fixed set of structured values the analyzer can pull out
// of one caller message. A zero field means the message did not mention it;
// there are no null placeholders.
type Entities struct {
	Email         string `json:"email,omitempty"`
	PharmacyName  string `json:"pharmacy_name,omitempty"`
	Location      string `json:"location,omitempty"`
	RxVolume      *int   `json:"rx_volume,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
}

// IsEmpty reports whether no entity of any kind was recognized.
func (e Entities) IsEmpty() bool {
	return e.Email == "" &&
		e.PharmacyName == "" &&
		e.Location == "" &&
		e.RxVolume == nil &&
		e.PreferredTime == ""
}
