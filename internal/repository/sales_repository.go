package repository

import (
	"context"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

// 管理画面の売上API
type SalesAPI interface {
	ListSales(ctx context.Context) ([]model.Sale, error)
	ListSalesByCedula(ctx context.Context, cedula string) ([]model.Sale, error)
	GetSale(ctx context.Context, code string) (model.Sale, error)
	UpdateSaleStatus(ctx context.Context, code string, status model.OrderStatus) (model.Sale, error)
}
