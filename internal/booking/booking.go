// Package booking holds the schedule's core data model: the booking
// record as the sheet reports it, the derived overlay key, and the status
// vocabulary translation between the UI and the sheet.
package booking

// Booking represents one reservation row from the upstream sheet. The
// client never creates or deletes bookings, only annotates status.
type Booking struct {
	ID      string `json:"id,omitempty"`
	Row     int    `json:"row,omitempty"`
	Time    string `json:"time"` // "09:00–11:00", en-dash or hyphen
	Hall    string `json:"hall"`
	People  string `json:"people,omitempty"`
	Extras  string `json:"extras,omitempty"`
	Status  string `json:"status,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// KeySeparator joins the time range and hall name into an overlay key.
const KeySeparator = "_"

// Key derives the natural identifier of a booking from its (time, hall)
// pair. The raw strings are joined byte-for-byte: no trimming, no case
// folding, no escaping. A hall name containing the separator can collide;
// known limitation, the upstream sheet owns uniqueness.
func (b Booking) Key() string {
	return b.Time + KeySeparator + b.Hall
}
