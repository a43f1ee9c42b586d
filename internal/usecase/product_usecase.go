package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"go.uber.org/zap"
)

// 商品の読み取り（ストアAPIをそのまま中継）
type ProductUsecase struct {
	catalog repo.CatalogAPI
	logger  *zap.Logger
}

func NewProductUsecase(catalog repo.CatalogAPI, logger *zap.Logger) *ProductUsecase {
	return &ProductUsecase{catalog: catalog, logger: logger}
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	ps, err := u.catalog.ListProducts(ctx)
	if err != nil {
		u.logger.Warn("list products failed", zap.Error(err))
		return []model.Product{}, NewHTTPError(http.StatusBadGateway, "catalog unavailable")
	}
	return ps, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.catalog.GetProduct(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		u.logger.Warn("get product failed", zap.Int64("product_id", id), zap.Error(err))
		return model.Product{}, NewHTTPError(http.StatusBadGateway, "catalog unavailable")
	}
	return p, nil
}
