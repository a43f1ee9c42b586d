package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/cart"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/metrics"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartUsecase は /cart の業務ロジックです。
// カート本体はセッションが持ち、ここには渡されるだけ。
type CartUsecase struct {
	catalog repo.CatalogAPI
	metrics *metrics.Collectors
	logger  *zap.Logger
}

func NewCartUsecase(catalog repo.CatalogAPI, m *metrics.Collectors, logger *zap.Logger) *CartUsecase {
	return &CartUsecase{
		catalog: catalog,
		metrics: m,
		logger:  logger,
	}
}

type AddItemInput struct {
	ProductID int64
	VariantID int64
	Quantity  int
}

type CartView struct {
	Items []model.CartLineItem `json:"items"`
	Total decimal.Decimal      `json:"total"`
}

func (u *CartUsecase) View(store *cart.Store) CartView {
	items := store.Items()
	return CartView{Items: items, Total: cart.Total(items)}
}

// AddItem は商品を取り直して、そのバリアントの在庫で参考チェックしてから追加する。
func (u *CartUsecase) AddItem(ctx context.Context, store *cart.Store, in AddItemInput) (CartView, error) {
	if in.ProductID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		u.metrics.ObserveCartOp("add", "invalid")
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.catalog.GetProduct(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		u.logger.Warn("catalog lookup failed", zap.Int64("product_id", in.ProductID), zap.Error(err))
		return CartView{}, NewHTTPError(http.StatusBadGateway, "catalog unavailable")
	}

	// バリアントが無ければ在庫0として扱い、InvalidVariantはStore側で返す
	var knownStock int64
	if v, ok := p.FindVariant(in.VariantID); ok {
		knownStock = v.Stock
	}

	if err := store.AddItem(p, in.Quantity, in.VariantID, knownStock); err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidVariant):
			u.metrics.ObserveCartOp("add", "invalid_variant")
			return CartView{}, ErrInvalidVariant
		case errors.Is(err, cart.ErrInsufficientStock):
			u.metrics.ObserveCartOp("add", "insufficient_stock")
			return CartView{}, ErrInsufficientStock
		default:
			u.metrics.ObserveCartOp("add", "invalid")
			return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	u.metrics.ObserveCartOp("add", "ok")
	return u.View(store), nil
}

// 数量変更（1未満は1）
func (u *CartUsecase) UpdateQuantity(store *cart.Store, itemID int64, quantity int) CartView {
	store.UpdateQuantity(itemID, quantity)
	u.metrics.ObserveCartOp("update", "ok")
	return u.View(store)
}

func (u *CartUsecase) RemoveItem(store *cart.Store, itemID int64) CartView {
	store.RemoveItem(itemID)
	u.metrics.ObserveCartOp("remove", "ok")
	return u.View(store)
}

func (u *CartUsecase) Clear(store *cart.Store) CartView {
	store.Clear()
	u.metrics.ObserveCartOp("clear", "ok")
	return u.View(store)
}
