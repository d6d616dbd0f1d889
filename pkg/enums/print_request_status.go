package enums

import "fmt"

// PrintRequestStatus describes the lifecycle of a staged purchase.
type PrintRequestStatus string

const (
	PrintRequestStatusPending      PrintRequestStatus = "pending"
	PrintRequestStatusProcessing   PrintRequestStatus = "processing"
	PrintRequestStatusReadyToPrint PrintRequestStatus = "ready_to_print"
	PrintRequestStatusCompleted    PrintRequestStatus = "completed"
	PrintRequestStatusCancelled    PrintRequestStatus = "cancelled"
)

var validPrintRequestStatuses = []PrintRequestStatus{
	PrintRequestStatusPending,
	PrintRequestStatusProcessing,
	PrintRequestStatusReadyToPrint,
	PrintRequestStatusCompleted,
	PrintRequestStatusCancelled,
}

// String implements fmt.Stringer.
func (p PrintRequestStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PrintRequestStatus.
func (p PrintRequestStatus) IsValid() bool {
	for _, candidate := range validPrintRequestStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePrintRequestStatus converts raw input into a PrintRequestStatus.
func ParsePrintRequestStatus(value string) (PrintRequestStatus, error) {
	for _, candidate := range validPrintRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid print request status %q", value)
}
