package cart

import (
	"errors"
	"sync"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	// 数量が1未満
	ErrInvalidQuantity = errors.New("invalid quantity")
	// バリアントが商品に属していない
	ErrInvalidVariant = errors.New("invalid variant")
	// 手元の在庫情報では足りない（参考チェック。確定はバックエンド）
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store はセッションごとのカート。明細は追加順に並ぶ。
// 永続化しない。セッション開始で作り、終了で捨てる。
type Store struct {
	mu    sync.Mutex
	items []model.CartLineItem
}

func NewStore() *Store {
	return &Store{items: []model.CartLineItem{}}
}

// AddItem はバリアントを追加する。同じバリアントがあれば数量を加算する。
// knownStock は呼び出し側が最後に見た在庫数。
func (s *Store) AddItem(product model.Product, quantity int, variantID int64, knownStock int64) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	v, ok := product.FindVariant(variantID)
	if !ok {
		return ErrInvalidVariant
	}
	if knownStock < int64(quantity) {
		return ErrInsufficientStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(variantID); i >= 0 {
		s.items[i].Quantity += quantity
		return nil
	}

	s.items = append(s.items, model.CartLineItem{
		ID:        v.ID,
		VariantID: v.ID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		Size:      v.Size,
		Color:     v.Color,
		Image:     product.ImageURL,
	})
	return nil
}

// UpdateQuantity は数量を置き換える。1未満は1に丸める。無ければ何もしない。
func (s *Store) UpdateQuantity(itemID int64, newQuantity int) {
	if newQuantity < 1 {
		newQuantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(itemID); i >= 0 {
		s.items[i].Quantity = newQuantity
	}
}

// 無ければ何もしない
func (s *Store) RemoveItem(itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(itemID)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []model.CartLineItem{}
}

// Items は明細のコピーを返す。
func (s *Store) Items() []model.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot はレシート用のディープコピー。
func (s *Store) Snapshot() []model.CartLineItem {
	return s.Items()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Total は単価×数量の合計。保存せず毎回計算する。
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Total(s.items)
}

func Total(items []model.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *Store) indexOf(itemID int64) int {
	for i, it := range s.items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}
