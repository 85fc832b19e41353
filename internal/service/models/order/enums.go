package order

// Type distinguishes dine-in from takeaway orders.
type Type string

const (
	TypeDineIn   Type = "DINE_IN"
	TypeTakeaway Type = "TAKEAWAY"
)

func (t Type) String() string {
	return string(t)
}

// ParseType parses an order type string. The empty string defaults to
// DINE_IN, matching POS terminals that omit the field.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDineIn, TypeTakeaway:
		return Type(s), nil
	case "":
		return TypeDineIn, nil
	default:
		return "", ErrInvalidType
	}
}

// PaymentMethod is the tender used for an order.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "CASH"
	PaymentCard  PaymentMethod = "CARD"
	PaymentClick PaymentMethod = "CLICK"
	PaymentPayme PaymentMethod = "PAYME"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentClick, PaymentPayme:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// PaymentStatus is the settlement state of an order's payment.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus parses a payment status string. The empty string
// defaults to PAID: walk-in orders are settled at the till before the
// kitchen sees them.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusPaid, PaymentStatusRefunded:
		return PaymentStatus(s), nil
	case "":
		return PaymentStatusPaid, nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}
