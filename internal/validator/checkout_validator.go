package validator

import (
	"strings"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"
)

type checkoutValidator struct{}

func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// 顧客IDが先、次にカートの中身
func (v *checkoutValidator) ValidateCheckout(customerIdentifier string, itemCount int) error {
	if strings.TrimSpace(customerIdentifier) == "" {
		return usecase.ErrMissingCustomer
	}
	if itemCount == 0 {
		return usecase.ErrEmptyCart
	}
	return nil
}
