package repository

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// APIError はバックエンドがエラー応答を返したときの値。
// Detail はバックエンドのメッセージ（無ければ空）。
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("store api: status %d", e.Status)
	}
	return fmt.Sprintf("store api: status %d: %s", e.Status, e.Detail)
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}
