package booking

import "strings"

// Storage-side status vocabulary, as written to the sheet.
const (
	StatusArrived   = "arrived"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
	StatusBooked    = "booked"
	StatusNone      = "none" // explicitly cleared, distinct from rejection
)

// StatusEntered is the UI-side name for StatusDone.
const StatusEntered = "entered"

// uiToStorage maps normalized UI input to the sheet vocabulary. Absent
// entries are rejected.
var uiToStorage = map[string]string{
	"":              StatusNone,
	StatusEntered:   StatusDone,
	StatusArrived:   StatusArrived,
	StatusDone:      StatusDone,
	StatusCancelled: StatusCancelled,
	StatusNone:      StatusNone,
	StatusBooked:    StatusBooked,
}

// UIToStorage translates a UI status into the sheet vocabulary. Input is
// trimmed and lowercased first. Unrecognized values return "", the
// rejection sentinel: callers must treat it as a validation failure, not
// as the "none" clear marker.
func UIToStorage(uiStatus string) string {
	normalized := strings.ToLower(strings.TrimSpace(uiStatus))
	return uiToStorage[normalized]
}

// StorageToUI translates a sheet status into the UI vocabulary: "done"
// becomes "entered", everything else passes through unchanged so that
// statuses this build does not know about still reach the UI verbatim.
func StorageToUI(storageStatus string) string {
	normalized := strings.ToLower(strings.TrimSpace(storageStatus))
	if normalized == StatusDone {
		return StatusEntered
	}
	return normalized
}

// Visible reports whether a storage status is a real annotation worth
// surfacing to the UI. The "none" and "booked" placeholders are overlay
// noise: "booked" is every row's default, "none" marks an explicit clear.
func Visible(storageStatus string) bool {
	normalized := strings.ToLower(strings.TrimSpace(storageStatus))
	return normalized != "" && normalized != StatusNone && normalized != StatusBooked
}
