package repository

import (
	"context"
	"errors"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

// 同じコードのレシートが既にある
var ErrDuplicateReceipt = errors.New("duplicate receipt")

// レシート台帳（再印刷用）
type ReceiptRepository interface {
	Create(ctx context.Context, r *model.Receipt) error
	FindByCode(ctx context.Context, code string) (model.Receipt, error)
	ListByCustomer(ctx context.Context, customerIdentifier string, limit int) ([]model.Receipt, error)
}

// 完了したレシートをイベントとして流す
type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, r model.Receipt) error
}
