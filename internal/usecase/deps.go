package usecase

import (
	"context"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// usecaseがValidatorInterfaceに依存する約束
type CheckoutValidator interface {
	ValidateCheckout(customerIdentifier string, itemCount int) error
}

type AuthValidator interface {
	ValidateLogin(ctx context.Context, email string, password string) error
}

// 管理画面の入力チェック。エラーメッセージはそのまま400で返す。
type AdminValidator interface {
	ValidateSupplier(in model.SupplierInput) error
	ValidateCategory(in model.CategoryInput) error
	ValidateUserCreate(in model.UserCreate) error
	ValidateUserUpdate(in model.UserUpdate) error
}
