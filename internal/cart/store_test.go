package cart

import (
	"testing"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() model.Product {
	return model.Product{
		ID:       1,
		Name:     "Calzado Dama Style",
		Price:    decimal.RequireFromString("30.50"),
		ImageURL: "calzado.jpg",
		Variants: []model.Variant{
			{ID: 11, ProductID: 1, Size: "37", Color: "Beige", Stock: 10},
			{ID: 12, ProductID: 1, Size: "38", Color: "Azul", Stock: 2},
		},
	}
}

func TestStore_AddItem_NewLineAppended(t *testing.T) {
	s := NewStore()
	p := testProduct()

	require.NoError(t, s.AddItem(p, 2, 11, 10))
	require.NoError(t, s.AddItem(p, 1, 12, 2))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(11), items[0].ID)
	assert.Equal(t, int64(11), items[0].VariantID)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, "37", items[0].Size)
	assert.Equal(t, "Beige", items[0].Color)
	assert.Equal(t, "calzado.jpg", items[0].Image)
	assert.Equal(t, int64(12), items[1].ID)
}

// 同じバリアントは加算（置き換えない）
func TestStore_AddItem_SameVariantMerges(t *testing.T) {
	s := NewStore()
	p := testProduct()

	for _, q := range []int{1, 3, 2} {
		require.NoError(t, s.AddItem(p, q, 11, 10))
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestStore_AddItem_InvalidVariant(t *testing.T) {
	s := NewStore()

	err := s.AddItem(testProduct(), 1, 99, 10)
	assert.ErrorIs(t, err, ErrInvalidVariant)
	assert.True(t, s.IsEmpty())
}

func TestStore_AddItem_InsufficientStock(t *testing.T) {
	s := NewStore()

	err := s.AddItem(testProduct(), 3, 12, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, s.IsEmpty())
}

func TestStore_AddItem_InvalidQuantity(t *testing.T) {
	s := NewStore()

	assert.ErrorIs(t, s.AddItem(testProduct(), 0, 11, 10), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddItem(testProduct(), -2, 11, 10), ErrInvalidQuantity)
	assert.Equal(t, 0, s.Len())
}

// 失敗しても既存明細は変わらない
func TestStore_AddItem_FailureLeavesCartUnchanged(t *testing.T) {
	s := NewStore()
	p := testProduct()
	require.NoError(t, s.AddItem(p, 2, 11, 10))

	assert.Error(t, s.AddItem(p, 5, 11, 4))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_UpdateQuantity_ClampsToOne(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(testProduct(), 4, 11, 10))

	for _, q := range []int{0, -1, -100} {
		s.UpdateQuantity(11, q)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	}

	s.UpdateQuantity(11, 7)
	assert.Equal(t, 7, s.Items()[0].Quantity)
}

func TestStore_UpdateQuantity_UnknownIsNoop(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(testProduct(), 2, 11, 10))

	s.UpdateQuantity(999, 5)

	assert.Equal(t, 2, s.Items()[0].Quantity)
}

func TestStore_RemoveItem(t *testing.T) {
	s := NewStore()
	p := testProduct()
	require.NoError(t, s.AddItem(p, 1, 11, 10))
	require.NoError(t, s.AddItem(p, 1, 12, 2))

	s.RemoveItem(11)
	s.RemoveItem(11)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(12), items[0].ID)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(testProduct(), 1, 11, 10))

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.True(t, s.Total().IsZero())
}

func TestStore_Total(t *testing.T) {
	s := NewStore()
	p := testProduct()
	require.NoError(t, s.AddItem(p, 3, 11, 10))
	require.NoError(t, s.AddItem(p, 2, 12, 2))

	// 30.50 * 5
	assert.True(t, decimal.RequireFromString("152.50").Equal(s.Total()), s.Total().String())

	s.UpdateQuantity(12, 1)
	assert.True(t, decimal.RequireFromString("122.00").Equal(s.Total()), s.Total().String())
}

// 別の明細への操作は順番を入れ替えても合計が同じ
func TestStore_Total_OrderIndependent(t *testing.T) {
	p := testProduct()

	a := NewStore()
	require.NoError(t, a.AddItem(p, 3, 11, 10))
	require.NoError(t, a.AddItem(p, 2, 12, 2))
	a.UpdateQuantity(11, 5)
	a.RemoveItem(12)

	b := NewStore()
	require.NoError(t, b.AddItem(p, 3, 11, 10))
	require.NoError(t, b.AddItem(p, 2, 12, 2))
	b.RemoveItem(12)
	b.UpdateQuantity(11, 5)

	assert.True(t, a.Total().Equal(b.Total()))
}

// Itemsはコピーなので外から書き換えてもカートは変わらない
func TestStore_ItemsIsCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddItem(testProduct(), 1, 11, 10))

	items := s.Items()
	items[0].Quantity = 42

	assert.Equal(t, 1, s.Items()[0].Quantity)
}
