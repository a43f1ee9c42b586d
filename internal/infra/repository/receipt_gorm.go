package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// 再印刷用のレシート台帳
type ReceiptGormRepository struct {
	db *gorm.DB
}

var _ repo.ReceiptRepository = (*ReceiptGormRepository)(nil)

func NewReceiptGormRepository(db *gorm.DB) *ReceiptGormRepository {
	return &ReceiptGormRepository{db: db}
}

// Create は明細ごと保存する（同じコードは ErrDuplicateReceipt）。
func (r *ReceiptGormRepository) Create(ctx context.Context, rec *model.Receipt) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicateReceipt
		}
		return fmt.Errorf("create receipt %s: %w", rec.Code, err)
	}
	return nil
}

func (r *ReceiptGormRepository) FindByCode(ctx context.Context, code string) (model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("code = ?", code).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Receipt{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Receipt{}, err
	}
	return rec, nil
}

// 新しい順
func (r *ReceiptGormRepository) ListByCustomer(ctx context.Context, customerIdentifier string, limit int) ([]model.Receipt, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var items []model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("customer_identifier = ?", customerIdentifier).
		Order("timestamp desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Receipt{}, err
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
