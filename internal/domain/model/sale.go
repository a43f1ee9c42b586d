package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// バックエンドの売上（ventas）
type Sale struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Customer  *SaleCustomer   `json:"customer,omitempty"`
	Lines     []SaleLine      `json:"lines"`
}

type SaleCustomer struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Cedula   string `json:"cedula"`
	FullName string `json:"full_name"`
}

type SaleLine struct {
	ID          int64           `json:"id"`
	VariantID   int64           `json:"variant_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
