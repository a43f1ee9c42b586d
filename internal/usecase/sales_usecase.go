package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 管理画面の売上操作。データはバックエンドが正。
type SalesUsecase struct {
	sales  repo.SalesAPI
	clock  Clock
	logger *zap.Logger
}

func NewSalesUsecase(sales repo.SalesAPI, clock Clock, logger *zap.Logger) *SalesUsecase {
	return &SalesUsecase{sales: sales, clock: clock, logger: logger}
}

type SalesStats struct {
	Count       int             `json:"count"`
	Confirmed   int             `json:"confirmed"`
	Pending     int             `json:"pending"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type MonthRow struct {
	Month     string          `json:"month"`
	Total     decimal.Decimal `json:"total"`
	Confirmed int             `json:"confirmed"`
	Pending   int             `json:"pending"`
}

type RangeReport struct {
	Range  string          `json:"range"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Sales  []model.Sale    `json:"sales"`
}

type DashboardView struct {
	Stats   SalesStats  `json:"stats"`
	Report  RangeReport `json:"report"`
	Year    int         `json:"year"`
	Monthly []MonthRow  `json:"monthly"`
}

func (u *SalesUsecase) List(ctx context.Context) ([]model.Sale, error) {
	sales, err := u.sales.ListSales(ctx)
	if err != nil {
		return nil, u.upstream(err, "list sales")
	}
	return sales, nil
}

func (u *SalesUsecase) ListByCedula(ctx context.Context, cedula string) ([]model.Sale, error) {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "cedula required")
	}
	sales, err := u.sales.ListSalesByCedula(ctx, cedula)
	if err != nil {
		return nil, u.upstream(err, "list sales by cedula")
	}
	return sales, nil
}

func (u *SalesUsecase) Get(ctx context.Context, code string) (model.Sale, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}
	s, err := u.sales.GetSale(ctx, code)
	if err != nil {
		return model.Sale{}, u.upstream(err, "get sale")
	}
	return s, nil
}

// UpdateStatus はバックエンドと同じ規則を先に確認する（確定済みは取消不可）。
func (u *SalesUsecase) UpdateStatus(ctx context.Context, code string, status string) (model.Sale, error) {
	newStatus, err := model.ParseOrderStatus(strings.TrimSpace(status))
	if err != nil {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	cur, err := u.Get(ctx, code)
	if err != nil {
		return model.Sale{}, err
	}
	// 同じなら何もしない
	if cur.Status == newStatus {
		return cur, nil
	}
	if cur.Status == model.OrderStatusConfirmed && newStatus == model.OrderStatusCanceled {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "a confirmed sale cannot be canceled")
	}

	updated, err := u.sales.UpdateSaleStatus(ctx, cur.Code, newStatus)
	if err != nil {
		return model.Sale{}, u.upstream(err, "update sale status")
	}
	u.logger.Info("sale status updated",
		zap.String("code", cur.Code),
		zap.String("from", string(cur.Status)),
		zap.String("to", string(newStatus)),
	)
	return updated, nil
}

func (u *SalesUsecase) Dashboard(ctx context.Context, rng string, year int) (DashboardView, error) {
	sales, err := u.List(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	now := u.clock.Now()
	if year <= 0 {
		year = now.Year()
	}

	filtered := FilterSalesByRange(sales, rng, now)
	amount := decimal.Zero
	for _, s := range filtered {
		amount = amount.Add(s.Total)
	}

	return DashboardView{
		Stats: SummarizeSales(sales),
		Report: RangeReport{
			Range:  rng,
			Count:  len(filtered),
			Amount: amount,
			Sales:  filtered,
		},
		Year:    year,
		Monthly: MonthlySales(sales, year),
	}, nil
}

func SummarizeSales(sales []model.Sale) SalesStats {
	st := SalesStats{Count: len(sales), TotalAmount: decimal.Zero}
	for _, s := range sales {
		switch s.Status {
		case model.OrderStatusConfirmed:
			st.Confirmed++
		case model.OrderStatusPending:
			st.Pending++
		}
		st.TotalAmount = st.TotalAmount.Add(s.Total)
	}
	return st
}

// FilterSalesByRange は week / month / year 以外なら全件を返す。
// week は今週の日曜0時から。
func FilterSalesByRange(sales []model.Sale, rng string, now time.Time) []model.Sale {
	var start time.Time
	switch rng {
	case "week":
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = d.AddDate(0, 0, -int(d.Weekday()))
	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "year":
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return sales
	}

	out := make([]model.Sale, 0, len(sales))
	for _, s := range sales {
		if !s.CreatedAt.Before(start) {
			out = append(out, s)
		}
	}
	return out
}

// MonthlySales は year の12か月分の行を返す（売上が無い月もゼロで入る）。
func MonthlySales(sales []model.Sale, year int) []MonthRow {
	rows := make([]MonthRow, 12)
	for i := range rows {
		rows[i] = MonthRow{Month: time.Month(i + 1).String()[:3], Total: decimal.Zero}
	}
	for _, s := range sales {
		if s.CreatedAt.Year() != year {
			continue
		}
		r := &rows[s.CreatedAt.Month()-1]
		r.Total = r.Total.Add(s.Total)
		switch s.Status {
		case model.OrderStatusConfirmed:
			r.Confirmed++
		case model.OrderStatusPending:
			r.Pending++
		}
	}
	return rows
}

func (u *SalesUsecase) upstream(err error, op string) error {
	return upstreamError(u.logger, err, op)
}

// バックエンドのエラーをHTTPErrorへ
func upstreamError(logger *zap.Logger, err error, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if ae, ok := repo.AsAPIError(err); ok {
		switch {
		case ae.Status == http.StatusNotFound:
			return NewHTTPError(http.StatusNotFound, "not found")
		case ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden:
			return NewHTTPError(ae.Status, "store api rejected credentials")
		case ae.Status >= 400 && ae.Status < 500:
			msg := ae.Detail
			if msg == "" {
				msg = "request rejected"
			}
			return NewHTTPError(http.StatusBadRequest, msg)
		}
	}
	logger.Warn("store api call failed", zap.String("op", op), zap.Error(err))
	return NewHTTPError(http.StatusBadGateway, "store api unavailable")
}
