package model

import "github.com/shopspring/decimal"

// カートの明細。IDはバリアントIDと同じで、カート内で一意。
// 追加時点の名前・価格を保持する。
type CartLineItem struct {
	ID        int64           `json:"id"`
	VariantID int64           `json:"variant_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Image     string          `json:"image"`
}

func (it CartLineItem) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
