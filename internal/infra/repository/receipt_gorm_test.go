package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func sampleReceipt() *model.Receipt {
	return &model.Receipt{
		Code:               "AB12CD34",
		Timestamp:          time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		Status:             model.OrderStatusPending,
		Total:              decimal.RequireFromString("61.00"),
		CustomerIdentifier: "V-123",
		Lines: []model.ReceiptLine{
			{VariantID: 71, ProductID: 7, Name: "Camisa Lino", Size: "M", Color: "Blanco", Quantity: 2, UnitPrice: decimal.RequireFromString("30.50")},
		},
	}
}

func TestReceiptGormRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewReceiptGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "receipts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "receipt_lines"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	rec := sampleReceipt()
	require.NoError(t, r.Create(context.Background(), rec))
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, int64(1), rec.Lines[0].ReceiptID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptGormRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewReceiptGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "receipts"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := r.Create(context.Background(), sampleReceipt())
	assert.ErrorIs(t, err, repo.ErrDuplicateReceipt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptGormRepository_FindByCode(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewReceiptGormRepository(db)

	ts := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "receipts" WHERE code = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "timestamp", "status", "total", "customer_identifier", "customer_display_name", "customer_address", "created_at"}).
			AddRow(1, "AB12CD34", ts, "pendiente", "61.00", "V-123", "Ana", "Calle 1", ts))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "receipt_lines" WHERE "receipt_lines"."receipt_id" = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "receipt_id", "variant_id", "product_id", "name", "size", "color", "unit_price", "quantity"}).
			AddRow(10, 1, 71, 7, "Camisa Lino", "M", "Blanco", "30.50", 2))

	rec, err := r.FindByCode(context.Background(), "AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, "Ana", rec.CustomerDisplayName)
	assert.True(t, rec.Total.Equal(decimal.RequireFromString("61")))
	require.Len(t, rec.Lines, 1)
	assert.Equal(t, 2, rec.Lines[0].Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptGormRepository_FindByCodeNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewReceiptGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "receipts" WHERE code = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.FindByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptGormRepository_ListByCustomer(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewReceiptGormRepository(db)

	ts := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "receipts" WHERE customer_identifier = $1 ORDER BY timestamp desc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "timestamp", "status", "total", "customer_identifier"}).
			AddRow(2, "ZZ", ts, "pendiente", "5", "V-123").
			AddRow(1, "AA", ts.Add(-time.Hour), "pendiente", "7", "V-123"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "receipt_lines"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "receipt_id"}))

	items, err := r.ListByCustomer(context.Background(), "V-123", 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ZZ", items[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
