package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"
)

const (
	categoryNameMin = 2
	categoryNameMax = 100
	passwordMin     = 8
)

type adminValidator struct{}

func NewAdminValidator() usecase.AdminValidator {
	return &adminValidator{}
}

func (v *adminValidator) ValidateSupplier(in model.SupplierInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if e := strings.TrimSpace(in.Email); e != "" && !isEmailLike(e) {
		return invalid("email is not valid")
	}
	return nil
}

func (v *adminValidator) ValidateCategory(in model.CategoryInput) error {
	n := utf8.RuneCountInString(strings.TrimSpace(in.Name))
	if n < categoryNameMin || n > categoryNameMax {
		return invalid(fmt.Sprintf("name must be %d-%d characters", categoryNameMin, categoryNameMax))
	}
	return nil
}

func (v *adminValidator) ValidateUserCreate(in model.UserCreate) error {
	if !isEmailLike(strings.TrimSpace(in.Email)) {
		return invalid("email is not valid")
	}
	if strings.TrimSpace(in.Cedula) == "" {
		return invalid("cedula is required")
	}
	if utf8.RuneCountInString(in.Password) < passwordMin {
		return invalid(fmt.Sprintf("password must be at least %d characters", passwordMin))
	}
	// 空はバックエンドの既定（client）
	if in.Role != model.RoleNone && model.ParseRole(string(in.Role)) == model.RoleNone {
		return invalid("unknown role")
	}
	return nil
}

// 部分更新。送られた項目だけ見る
func (v *adminValidator) ValidateUserUpdate(in model.UserUpdate) error {
	if in.Email != nil && !isEmailLike(strings.TrimSpace(*in.Email)) {
		return invalid("email is not valid")
	}
	if in.Cedula != nil && strings.TrimSpace(*in.Cedula) == "" {
		return invalid("cedula must not be empty")
	}
	if in.Password != nil && utf8.RuneCountInString(*in.Password) < passwordMin {
		return invalid(fmt.Sprintf("password must be at least %d characters", passwordMin))
	}
	if in.Role != nil && model.ParseRole(string(*in.Role)) == model.RoleNone {
		return invalid("unknown role")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
