package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// カート・チェックアウトの失敗の種類
type ErrorKind string

const (
	KindInvalidVariant    ErrorKind = "INVALID_VARIANT"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindAlreadyInProgress ErrorKind = "ALREADY_IN_PROGRESS"
	KindCheckoutFailed    ErrorKind = "CHECKOUT_FAILED"
)

// ValidationErrorの理由
const (
	ReasonMissingCustomer = "MISSING_CUSTOMER"
	ReasonEmptyCart       = "EMPTY_CART"
)

// 汎用メッセージ（バックエンドのメッセージが無いとき）
const genericCheckoutDetail = "checkout failed"

// CheckoutError はカート操作とチェックアウトの失敗をひとつの型で返す。
// UpstreamStatus はバックエンドのHTTPステータス（通信エラーなら0）。
type CheckoutError struct {
	Kind           ErrorKind
	Reason         string
	Detail         string
	UpstreamStatus int
}

func (e *CheckoutError) Error() string {
	msg := string(e.Kind)
	if e.Reason != "" {
		msg += "(" + e.Reason + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is は Kind（と Reason が指定されていれば Reason）で比較する。
func (e *CheckoutError) Is(target error) bool {
	t, ok := target.(*CheckoutError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

func AsCheckoutError(err error) (*CheckoutError, bool) {
	var ce *CheckoutError
	ok := errors.As(err, &ce)
	return ce, ok
}

var (
	ErrInvalidVariant    = &CheckoutError{Kind: KindInvalidVariant, Detail: "variant does not belong to product"}
	ErrInsufficientStock = &CheckoutError{Kind: KindInsufficientStock, Detail: "insufficient stock"}
	ErrMissingCustomer   = &CheckoutError{Kind: KindValidation, Reason: ReasonMissingCustomer, Detail: "customer identifier required"}
	ErrEmptyCart         = &CheckoutError{Kind: KindValidation, Reason: ReasonEmptyCart, Detail: "cart is empty"}
	ErrAlreadyInProgress = &CheckoutError{Kind: KindAlreadyInProgress, Detail: "checkout already in progress"}
	ErrCheckoutFailed    = &CheckoutError{Kind: KindCheckoutFailed, Detail: genericCheckoutDetail}
)

// 認証まわり
var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrInvalidCredentials = errors.New("invalid credentials")
	//401 トークンが読めない・期限切れ
	ErrInvalidToken = errors.New("invalid token")
	//500
	ErrInternal = errors.New("internal error")
)
