package model

import "github.com/shopspring/decimal"

// 商品のバリアント（サイズ・色の組み合わせ）。在庫と購入の単位。
type Variant struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int64  `json:"stock"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Variants    []Variant       `json:"variants"`
}

// FindVariant は商品に属するバリアントを探す。
func (p Product) FindVariant(variantID int64) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}
