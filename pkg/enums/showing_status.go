package enums

import "fmt"

// ShowingStatus represents the canonical showing_status enum in Postgres.
// Stored and returned statuses are always one of the four canonical values;
// the caller-facing aliases "approved" and "rejected" are translated on input
// and never persisted.
type ShowingStatus string

const (
	ShowingStatusPending   ShowingStatus = "pending"
	ShowingStatusConfirmed ShowingStatus = "confirmed"
	ShowingStatusCompleted ShowingStatus = "completed"
	ShowingStatusCancelled ShowingStatus = "cancelled"
)

var validShowingStatuses = []ShowingStatus{
	ShowingStatusPending,
	ShowingStatusConfirmed,
	ShowingStatusCompleted,
	ShowingStatusCancelled,
}

var showingStatusAliases = map[string]ShowingStatus{
	"approved": ShowingStatusConfirmed,
	"rejected": ShowingStatusCancelled,
}

// ShowingStatusValues lists the canonical values in declaration order.
func ShowingStatusValues() []string {
	values := make([]string, 0, len(validShowingStatuses))
	for _, candidate := range validShowingStatuses {
		values = append(values, string(candidate))
	}
	return values
}

// String implements fmt.Stringer.
func (s ShowingStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a canonical ShowingStatus.
func (s ShowingStatus) IsValid() bool {
	for _, candidate := range validShowingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShowingStatus converts raw input into a canonical ShowingStatus.
// Aliases are rejected here; use NormalizeShowingStatus for caller input.
func ParseShowingStatus(value string) (ShowingStatus, error) {
	for _, candidate := range validShowingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid showing status %q", value)
}

// NormalizeShowingStatus resolves caller input, including the approved and
// rejected aliases, into the canonical status that is stored.
func NormalizeShowingStatus(value string) (ShowingStatus, error) {
	if status, err := ParseShowingStatus(value); err == nil {
		return status, nil
	}
	if status, ok := showingStatusAliases[value]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid showing status %q", value)
}
