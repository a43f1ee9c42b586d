package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/cart"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/metrics"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"go.uber.org/zap"
)

const defaultCheckoutTimeout = 15 * time.Second

var errMissingOrderCode = errors.New("order acknowledged without code")

// CheckoutDeps はチェックアウトの依存。Receipts / Publisher は無くてもよい。
type CheckoutDeps struct {
	Orders    repo.OrderAPI
	Receipts  repo.ReceiptRepository
	Publisher repo.ReceiptPublisher
	Validator CheckoutValidator
	Clock     Clock
	Timeout   time.Duration
	Logger    *zap.Logger
	Metrics   *metrics.Collectors
}

// CheckoutUsecase はセッションごとに1つ。同時に走る送信は1本だけ。
type CheckoutUsecase struct {
	orders    repo.OrderAPI
	receipts  repo.ReceiptRepository
	publisher repo.ReceiptPublisher
	validator CheckoutValidator
	clock     Clock
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *metrics.Collectors

	submitting atomic.Bool
	last       atomic.Pointer[model.Receipt]
}

type CheckoutInput struct {
	CustomerIdentifier string
	CustomerName       string
	CustomerAddress    string
}

func NewCheckoutUsecase(d CheckoutDeps) *CheckoutUsecase {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultCheckoutTimeout
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutUsecase{
		orders:    d.Orders,
		receipts:  d.Receipts,
		publisher: d.Publisher,
		validator: d.Validator,
		clock:     d.Clock,
		timeout:   timeout,
		logger:    logger,
		metrics:   d.Metrics,
	}
}

// InProgress は送信中かどうか（UIのボタン無効化用）。
func (u *CheckoutUsecase) InProgress() bool {
	return u.submitting.Load()
}

// Checkout はカートを注文として1回だけ送る。リトライしない。
// 成功時のみカートを空にし、失敗時はカートに触らない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, store *cart.Store, in CheckoutInput) (model.Receipt, error) {
	if !u.submitting.CompareAndSwap(false, true) {
		u.metrics.ObserveCheckout("in_progress")
		return model.Receipt{}, ErrAlreadyInProgress
	}
	defer u.submitting.Store(false)

	in.CustomerIdentifier = strings.TrimSpace(in.CustomerIdentifier)
	if err := u.validator.ValidateCheckout(in.CustomerIdentifier, store.Len()); err != nil {
		u.metrics.ObserveCheckout("validation")
		return model.Receipt{}, err
	}

	// 送信前のスナップショット。これ以降のカート変更はこの注文に入らない
	snapshot := store.Snapshot()
	if len(snapshot) == 0 {
		u.metrics.ObserveCheckout("validation")
		return model.Receipt{}, ErrEmptyCart
	}
	order := model.NewCheckoutOrder(in.CustomerIdentifier, snapshot)

	// ブラウザが切れても送信中の注文は最後まで待つ
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer cancel()

	ack, err := u.orders.SubmitOrder(sendCtx, order)
	if err != nil {
		u.metrics.ObserveCheckout("failed")
		u.logger.Warn("order submission failed",
			zap.String("customer", in.CustomerIdentifier),
			zap.Int("lines", len(order.Lines)),
			zap.Error(err),
		)
		return model.Receipt{}, checkoutFailure(err)
	}
	// コードが無い応答は受付とみなさない
	if strings.TrimSpace(ack.Code) == "" {
		u.metrics.ObserveCheckout("failed")
		u.logger.Warn("order acknowledged without code",
			zap.String("customer", in.CustomerIdentifier),
			zap.Int("lines", len(order.Lines)),
		)
		return model.Receipt{}, checkoutFailure(errMissingOrderCode)
	}
	ack.Code = strings.TrimSpace(ack.Code)

	store.Clear()

	receipt := u.buildReceipt(ack, in, snapshot)
	u.metrics.ObserveCheckout("ok")
	u.logger.Info("order submitted",
		zap.String("code", receipt.Code),
		zap.String("customer", receipt.CustomerIdentifier),
		zap.String("total", receipt.Total.StringFixed(2)),
	)

	u.last.Store(&receipt)
	u.record(ctx, receipt)
	return receipt, nil
}

// LastReceipt は直近に成功したチェックアウトのレシート（台帳が無いときの表示用）。
func (u *CheckoutUsecase) LastReceipt() (model.Receipt, bool) {
	r := u.last.Load()
	if r == nil {
		return model.Receipt{}, false
	}
	return *r, true
}

func (u *CheckoutUsecase) buildReceipt(ack model.OrderAck, in CheckoutInput, snapshot []model.CartLineItem) model.Receipt {
	ts := ack.CreatedAt
	if ts.IsZero() {
		ts = u.clock.Now()
	}

	name := strings.TrimSpace(ack.CustomerName)
	if name == "" {
		name = strings.TrimSpace(in.CustomerName)
	}
	if name == "" {
		name = in.CustomerIdentifier
	}

	return model.Receipt{
		Code:                ack.Code,
		Timestamp:           ts,
		Status:              model.OrderStatusPending,
		Lines:               model.NewReceiptLines(snapshot),
		Total:               cart.Total(snapshot),
		CustomerIdentifier:  in.CustomerIdentifier,
		CustomerDisplayName: name,
		CustomerAddress:     strings.TrimSpace(in.CustomerAddress),
	}
}

// 台帳保存とイベント送信は結果に影響させない
func (u *CheckoutUsecase) record(parent context.Context, r model.Receipt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), u.timeout)
	defer cancel()

	if u.receipts != nil {
		row := r
		row.Lines = append([]model.ReceiptLine(nil), r.Lines...)
		if err := u.receipts.Create(ctx, &row); err != nil {
			u.logger.Warn("receipt ledger write failed", zap.String("code", r.Code), zap.Error(err))
		}
	}
	if u.publisher != nil {
		if err := u.publisher.PublishReceipt(ctx, r); err != nil {
			u.logger.Warn("receipt publish failed", zap.String("code", r.Code), zap.Error(err))
		}
	}
}

// バックエンドのdetailがあればそれを使う
func checkoutFailure(err error) *CheckoutError {
	ce := &CheckoutError{Kind: KindCheckoutFailed, Detail: genericCheckoutDetail}
	if ae, ok := repo.AsAPIError(err); ok {
		ce.UpstreamStatus = ae.Status
		if ae.Detail != "" {
			ce.Detail = ae.Detail
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		ce.UpstreamStatus = http.StatusGatewayTimeout
	}
	return ce
}
