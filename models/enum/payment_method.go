package enum

// PaymentMethod 表示買家選擇的付款方式
type PaymentMethod string

const (
	PaymentMethodMTNMobileMoney    PaymentMethod = "MTN_MOBILE_MONEY"
	PaymentMethodAirtelMobileMoney PaymentMethod = "AIRTEL_MOBILE_MONEY"
	PaymentMethodBankTransfer      PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCashOnDelivery    PaymentMethod = "CASH_ON_DELIVERY"
)

// IsMobileMoney reports whether the method settles over a mobile-money rail
// and therefore needs an automatic payment initiation after order creation.
func (m PaymentMethod) IsMobileMoney() bool {
	return m == PaymentMethodMTNMobileMoney || m == PaymentMethodAirtelMobileMoney
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodMTNMobileMoney, PaymentMethodAirtelMobileMoney,
		PaymentMethodBankTransfer, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}
