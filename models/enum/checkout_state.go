package enum

// CheckoutState 表示結帳流程的狀態
type CheckoutState string

const (
	CheckoutStateCollecting CheckoutState = "collecting" // 收集收貨資料與付款方式
	CheckoutStateSubmitting CheckoutState = "submitting" // 訂單提交中
	CheckoutStateConfirmed  CheckoutState = "confirmed"  // 訂單建立成功
	CheckoutStateFailed     CheckoutState = "failed"     // 訂單建立失敗，可重試
)

// CanTransitionTo encodes the legal state machine. Submitting is entered only
// from Collecting or Failed (retry); it is never re-entered from itself, which
// is what disables the submit action while a submission is in flight.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutStateCollecting:
		return next == CheckoutStateSubmitting
	case CheckoutStateSubmitting:
		return next == CheckoutStateConfirmed || next == CheckoutStateFailed
	case CheckoutStateFailed:
		return next == CheckoutStateSubmitting
	default:
		return false
	}
}

func (s CheckoutState) String() string {
	return string(s)
}
