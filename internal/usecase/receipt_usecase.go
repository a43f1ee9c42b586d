package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"go.uber.org/zap"
)

const defaultReceiptListLimit = 20

// ReceiptUsecase はレシートの再表示・再印刷。台帳は無くてもよい。
type ReceiptUsecase struct {
	ledger repo.ReceiptRepository
	logger *zap.Logger
}

func NewReceiptUsecase(ledger repo.ReceiptRepository, logger *zap.Logger) *ReceiptUsecase {
	return &ReceiptUsecase{ledger: ledger, logger: logger}
}

// Get はセッション直近のレシートを先に見て、無ければ台帳を引く。
// 台帳のレシートは本人か管理者にだけ見せる（他人には404）。
func (u *ReceiptUsecase) Get(ctx context.Context, code string, viewer model.AuthState, session *Session) (model.Receipt, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Receipt{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}

	if session != nil {
		if last, ok := session.Checkout.LastReceipt(); ok && last.Code == code {
			return last, nil
		}
	}
	if u.ledger == nil {
		return model.Receipt{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	r, err := u.ledger.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Receipt{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		u.logger.Error("receipt lookup failed", zap.String("code", code), zap.Error(err))
		return model.Receipt{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !canView(viewer, r) {
		return model.Receipt{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return r, nil
}

// ListMine はログイン中の顧客のレシート（新しい順）
func (u *ReceiptUsecase) ListMine(ctx context.Context, viewer model.AuthState) ([]model.Receipt, error) {
	if viewer.CustomerIdentifier == "" {
		return []model.Receipt{}, NewHTTPError(http.StatusBadRequest, "no customer identifier on account")
	}
	if u.ledger == nil {
		return []model.Receipt{}, nil
	}
	rs, err := u.ledger.ListByCustomer(ctx, viewer.CustomerIdentifier, defaultReceiptListLimit)
	if err != nil {
		u.logger.Error("receipt list failed", zap.String("customer", viewer.CustomerIdentifier), zap.Error(err))
		return []model.Receipt{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rs, nil
}

func canView(viewer model.AuthState, r model.Receipt) bool {
	if !viewer.IsAuthenticated {
		return false
	}
	if viewer.Role == model.RoleAdmin || viewer.Role == model.RoleManager {
		return true
	}
	return viewer.CustomerIdentifier != "" && viewer.CustomerIdentifier == r.CustomerIdentifier
}
