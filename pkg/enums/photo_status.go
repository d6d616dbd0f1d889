package enums

import "fmt"

// PhotoStatus describes where a photo sits in the selection/print lifecycle.
type PhotoStatus string

const (
	PhotoStatusPending      PhotoStatus = "pending"
	PhotoStatusReadyToPrint PhotoStatus = "ready_to_print"
	PhotoStatusPrinted      PhotoStatus = "printed"
)

var validPhotoStatuses = []PhotoStatus{
	PhotoStatusPending,
	PhotoStatusReadyToPrint,
	PhotoStatusPrinted,
}

// String returns the literal string for the status.
func (p PhotoStatus) String() string {
	return string(p)
}

// IsValid reports whether the status is known.
func (p PhotoStatus) IsValid() bool {
	for _, candidate := range validPhotoStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePhotoStatus converts raw input into a PhotoStatus.
func ParsePhotoStatus(value string) (PhotoStatus, error) {
	for _, candidate := range validPhotoStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid photo status %q", value)
}
