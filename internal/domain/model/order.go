package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// 値はバックエンドの表記に合わせる
const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusConfirmed OrderStatus = "confirmada"
	OrderStatusCanceled  OrderStatus = "cancelada"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCanceled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("invalid order status %q", s)
	}
}

// 注文送信用の明細。表示用の項目は落とす。
type OrderLine struct {
	VariantID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// CheckoutOrder はカートから1回の送信のために作る使い捨ての値。
type CheckoutOrder struct {
	CustomerIdentifier string
	Status             OrderStatus
	Lines              []OrderLine
}

// NewCheckoutOrder はカートの並び順のまま明細を作る。
func NewCheckoutOrder(customerIdentifier string, items []CartLineItem) CheckoutOrder {
	lines := make([]OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderLine{
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return CheckoutOrder{
		CustomerIdentifier: customerIdentifier,
		Status:             OrderStatusPending,
		Lines:              lines,
	}
}

// 注文送信APIの成功応答。CreatedAtは不明ならゼロ値。
type OrderAck struct {
	Code         string
	CreatedAt    time.Time
	CustomerName string
}
