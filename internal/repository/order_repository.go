package repository

import (
	"context"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

// 注文送信API。1回の呼び出しで1注文。リトライしない。
type OrderAPI interface {
	SubmitOrder(ctx context.Context, order model.CheckoutOrder) (model.OrderAck, error)
}
