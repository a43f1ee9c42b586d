package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultUserListLimit = 100
	maxUserListLimit     = 500
)

// AdminUsecase は仕入先・カテゴリ・ユーザーの管理をバックエンドへ中継する。
// 入力チェックだけ先に行い、保存はバックエンドに任せる。
type AdminUsecase struct {
	suppliers  repo.SupplierAPI
	categories repo.CategoryAPI
	users      repo.UserAPI
	validator  AdminValidator
	logger     *zap.Logger
}

func NewAdminUsecase(
	suppliers repo.SupplierAPI,
	categories repo.CategoryAPI,
	users repo.UserAPI,
	validator AdminValidator,
	logger *zap.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		suppliers:  suppliers,
		categories: categories,
		users:      users,
		validator:  validator,
		logger:     logger,
	}
}

func (u *AdminUsecase) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	out, err := u.suppliers.ListSuppliers(ctx)
	if err != nil {
		return nil, upstreamError(u.logger, err, "list suppliers")
	}
	return out, nil
}

func (u *AdminUsecase) GetSupplier(ctx context.Context, id int64) (model.Supplier, error) {
	if id <= 0 {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	out, err := u.suppliers.GetSupplier(ctx, id)
	if err != nil {
		return model.Supplier{}, upstreamError(u.logger, err, "get supplier")
	}
	return out, nil
}

func (u *AdminUsecase) CreateSupplier(ctx context.Context, in model.SupplierInput) (model.Supplier, error) {
	in = trimSupplier(in)
	if err := u.validator.ValidateSupplier(in); err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := u.suppliers.CreateSupplier(ctx, in)
	if err != nil {
		return model.Supplier{}, upstreamError(u.logger, err, "create supplier")
	}
	u.logger.Info("supplier created", zap.Int64("id", out.ID))
	return out, nil
}

func (u *AdminUsecase) UpdateSupplier(ctx context.Context, id int64, in model.SupplierInput) (model.Supplier, error) {
	if id <= 0 {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	in = trimSupplier(in)
	if err := u.validator.ValidateSupplier(in); err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := u.suppliers.UpdateSupplier(ctx, id, in)
	if err != nil {
		return model.Supplier{}, upstreamError(u.logger, err, "update supplier")
	}
	return out, nil
}

func (u *AdminUsecase) DeleteSupplier(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.suppliers.DeleteSupplier(ctx, id); err != nil {
		return upstreamError(u.logger, err, "delete supplier")
	}
	u.logger.Info("supplier deleted", zap.Int64("id", id))
	return nil
}

func (u *AdminUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	out, err := u.categories.ListCategories(ctx)
	if err != nil {
		return nil, upstreamError(u.logger, err, "list categories")
	}
	return out, nil
}

func (u *AdminUsecase) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	out, err := u.categories.GetCategory(ctx, id)
	if err != nil {
		return model.Category{}, upstreamError(u.logger, err, "get category")
	}
	return out, nil
}

func (u *AdminUsecase) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := u.validator.ValidateCategory(in); err != nil {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := u.categories.CreateCategory(ctx, in)
	if err != nil {
		return model.Category{}, upstreamError(u.logger, err, "create category")
	}
	return out, nil
}

func (u *AdminUsecase) UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := u.validator.ValidateCategory(in); err != nil {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := u.categories.UpdateCategory(ctx, id, in)
	if err != nil {
		return model.Category{}, upstreamError(u.logger, err, "update category")
	}
	return out, nil
}

func (u *AdminUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.categories.DeleteCategory(ctx, id); err != nil {
		return upstreamError(u.logger, err, "delete category")
	}
	return nil
}

// ListUsers は skip/limit をそのまま渡す。limit 0 は既定の100。
func (u *AdminUsecase) ListUsers(ctx context.Context, skip int, limit int) ([]model.User, error) {
	if skip < 0 || limit < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid paging")
	}
	if limit == 0 {
		limit = defaultUserListLimit
	}
	if limit > maxUserListLimit {
		limit = maxUserListLimit
	}
	out, err := u.users.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, upstreamError(u.logger, err, "list users")
	}
	return out, nil
}

func (u *AdminUsecase) GetUser(ctx context.Context, id int64) (model.User, error) {
	if id <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	out, err := u.users.GetUser(ctx, id)
	if err != nil {
		return model.User{}, upstreamError(u.logger, err, "get user")
	}
	return out, nil
}

func (u *AdminUsecase) CreateUser(ctx context.Context, in model.UserCreate) (model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := u.validator.ValidateUserCreate(in); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Role == model.RoleNone {
		in.Role = model.RoleClient
	}
	out, err := u.users.CreateUser(ctx, in)
	if err != nil {
		return model.User{}, upstreamError(u.logger, err, "create user")
	}
	u.logger.Info("user created", zap.Int64("id", out.ID), zap.String("role", string(out.Role)))
	return out, nil
}

func (u *AdminUsecase) UpdateUser(ctx context.Context, id int64, in model.UserUpdate) (model.User, error) {
	if id <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validator.ValidateUserUpdate(in); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := u.users.UpdateUser(ctx, id, in)
	if err != nil {
		return model.User{}, upstreamError(u.logger, err, "update user")
	}
	return out, nil
}

func (u *AdminUsecase) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.users.DeleteUser(ctx, id); err != nil {
		return upstreamError(u.logger, err, "delete user")
	}
	u.logger.Info("user deleted", zap.Int64("id", id))
	return nil
}

func trimSupplier(in model.SupplierInput) model.SupplierInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	return in
}
