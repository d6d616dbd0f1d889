package enums

import "fmt"

// InvoiceStatus describes the state of a frozen invoice snapshot.
type InvoiceStatus string

const (
	InvoiceStatusActive    InvoiceStatus = "active"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusCompleted InvoiceStatus = "completed"
)

var validInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusActive,
	InvoiceStatusCancelled,
	InvoiceStatusCompleted,
}

// String implements fmt.Stringer.
func (i InvoiceStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InvoiceStatus.
func (i InvoiceStatus) IsValid() bool {
	for _, candidate := range validInvoiceStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInvoiceStatus converts raw input into an InvoiceStatus.
func ParseInvoiceStatus(value string) (InvoiceStatus, error) {
	for _, candidate := range validInvoiceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice status %q", value)
}

// InvoiceMethod describes how the customer receives the invoice.
type InvoiceMethod string

const (
	InvoiceMethodWhatsapp InvoiceMethod = "whatsapp"
	InvoiceMethodPrint    InvoiceMethod = "print"
	InvoiceMethodBoth     InvoiceMethod = "both"
)

var validInvoiceMethods = []InvoiceMethod{
	InvoiceMethodWhatsapp,
	InvoiceMethodPrint,
	InvoiceMethodBoth,
}

// String implements fmt.Stringer.
func (i InvoiceMethod) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InvoiceMethod.
func (i InvoiceMethod) IsValid() bool {
	for _, candidate := range validInvoiceMethods {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInvoiceMethod converts raw input into an InvoiceMethod.
func ParseInvoiceMethod(value string) (InvoiceMethod, error) {
	for _, candidate := range validInvoiceMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice method %q", value)
}
