package repository

import (
	"context"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

// 商品・バリアントの取得だけを約束（Catalog API）。
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, productID int64) (model.Product, error)
}
