package enums

import "fmt"

// OrderOrigin records which surface created an order.
type OrderOrigin string

const (
	OrderOriginManual        OrderOrigin = "manual"
	OrderOriginUserInterface OrderOrigin = "user_interface"
)

var validOrderOrigins = []OrderOrigin{
	OrderOriginManual,
	OrderOriginUserInterface,
}

// String implements fmt.Stringer.
func (o OrderOrigin) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderOrigin.
func (o OrderOrigin) IsValid() bool {
	for _, candidate := range validOrderOrigins {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderOrigin converts raw input into an OrderOrigin.
func ParseOrderOrigin(value string) (OrderOrigin, error) {
	for _, candidate := range validOrderOrigins {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order origin %q", value)
}

// OrderSendType describes what the customer receives: prints, digital sends, or both.
type OrderSendType string

const (
	OrderSendTypePrint        OrderSendType = "print"
	OrderSendTypeSend         OrderSendType = "send"
	OrderSendTypePrintAndSend OrderSendType = "print_and_send"
)

var validOrderSendTypes = []OrderSendType{
	OrderSendTypePrint,
	OrderSendTypeSend,
	OrderSendTypePrintAndSend,
}

// String implements fmt.Stringer.
func (o OrderSendType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderSendType.
func (o OrderSendType) IsValid() bool {
	for _, candidate := range validOrderSendTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderSendType converts raw input into an OrderSendType.
func ParseOrderSendType(value string) (OrderSendType, error) {
	for _, candidate := range validOrderSendTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order send type %q", value)
}
