package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 完了した注文のスナップショット。表示・印刷用で、カートとは独立。
type Receipt struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	Code                string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	Timestamp           time.Time       `gorm:"not null;index" json:"timestamp"`
	Status              OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	Lines               []ReceiptLine   `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"lines"`
	Total               decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CustomerIdentifier  string          `gorm:"type:varchar(50);not null;index" json:"customer_identifier"`
	CustomerDisplayName string          `gorm:"type:varchar(255)" json:"customer_display_name"`
	CustomerAddress     string          `gorm:"type:varchar(255)" json:"customer_address"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"-"`
}

type ReceiptLine struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	ReceiptID int64           `gorm:"not null;index" json:"-"`
	VariantID int64           `gorm:"not null" json:"variant_id"`
	ProductID int64           `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Size      string          `gorm:"type:varchar(50)" json:"size"`
	Color     string          `gorm:"type:varchar(50)" json:"color"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

func (l ReceiptLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewReceiptLines はカート明細をコピーする（ライブビューにしない）。
func NewReceiptLines(items []CartLineItem) []ReceiptLine {
	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, ReceiptLine{
			VariantID: it.VariantID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Color:     it.Color,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return lines
}
