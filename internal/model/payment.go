package model

type PaymentState string

const (
	PaymentFullyPaid  PaymentState = "fully-paid"
	PaymentPartial    PaymentState = "partial"
	PaymentUnpaid     PaymentState = "unpaid"
	PaymentNoStudents PaymentState = "no-students"
)

// PaymentStatus сколько учеников оплатили из записанных
type PaymentStatus struct {
	Paid  int `json:"paid"`
	Total int `json:"total"`
}

func (p PaymentStatus) State() PaymentState {
	switch {
	case p.Total == 0:
		return PaymentNoStudents
	case p.Paid == p.Total:
		return PaymentFullyPaid
	case p.Paid > 0:
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}
