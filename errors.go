package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyCart 購物車為空，無法提交
	ErrEmptyCart = errors.New("cart is empty, nothing to submit")
	// ErrSubmitInProgress 提交已在進行中
	ErrSubmitInProgress = errors.New("submission already in progress")
	// ErrOrderCreation wraps a failed order-creation call. The cart is kept
	// intact and the attempt may be retried.
	ErrOrderCreation = errors.New("order creation failed")
)

// FieldErrors carries per-field validation messages surfaced inline on the
// checkout form. No boundary call is made while any field is invalid.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid checkout fields: %s", strings.Join(fields, ", "))
}
