package repository

import (
	"context"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

// 仕入先の管理API
type SupplierAPI interface {
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (model.Supplier, error)
	CreateSupplier(ctx context.Context, in model.SupplierInput) (model.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, in model.SupplierInput) (model.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

// カテゴリの管理API
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// ユーザーの管理API
type UserAPI interface {
	ListUsers(ctx context.Context, skip int, limit int) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	CreateUser(ctx context.Context, in model.UserCreate) (model.User, error)
	UpdateUser(ctx context.Context, id int64, in model.UserUpdate) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
