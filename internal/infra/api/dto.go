package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"

	"github.com/shopspring/decimal"
)

// ストアAPIのJSON（項目名はバックエンドのまま）

type variantOut struct {
	ID    int64  `json:"id"`
	Color string `json:"color"`
	Talla string `json:"talla"`
	Stock int64  `json:"stock"`
	// 売上明細の中でだけ入る
	Producto *struct {
		ID     int64  `json:"id"`
		Nombre string `json:"nombre"`
	} `json:"producto,omitempty"`
}

type productOut struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	ImageURL    *string         `json:"image_url"`
	Variantes   []variantOut    `json:"variantes"`
}

type customerOut struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Cedula   string `json:"cedula"`
	FullName string `json:"full_name"`
}

type saleLineOut struct {
	ID             int64           `json:"id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Variante       *variantOut     `json:"variante"`
}

type saleOut struct {
	ID            int64           `json:"id"`
	Cliente       *customerOut    `json:"cliente"`
	Total         decimal.Decimal `json:"total"`
	Estado        string          `json:"estado"`
	Codigo        string          `json:"codigo"`
	FechaCreacion apiTime         `json:"fecha_creacion"`
	Detalles      []saleLineOut   `json:"detalles"`
}

type saleLineIn struct {
	VarianteID     int64      `json:"variante_id"`
	Cantidad       int        `json:"cantidad"`
	PrecioUnitario jsonNumber `json:"precio_unitario"`
}

// jsonNumber は金額を引用符なしの数値のまま送る（floatを経由しない）
type jsonNumber struct {
	decimal.Decimal
}

func (n jsonNumber) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

type saleIn struct {
	CedulaCliente string       `json:"cedula_cliente"`
	Estado        string       `json:"estado"`
	Detalles      []saleLineIn `json:"detalles"`
}

type statusIn struct {
	Estado string `json:"estado"`
}

type tokenOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// apiTime はタイムゾーン無しの日時も受ける（無ければUTC扱い）
type apiTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("unsupported time format %q", s)
}

func toProduct(p productOut) model.Product {
	out := model.Product{
		ID:          p.ID,
		Name:        p.Nombre,
		Description: p.Descripcion,
		Price:       p.Precio,
		Variants:    make([]model.Variant, 0, len(p.Variantes)),
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	for _, v := range p.Variantes {
		out.Variants = append(out.Variants, model.Variant{
			ID:        v.ID,
			ProductID: p.ID,
			Size:      v.Talla,
			Color:     v.Color,
			Stock:     v.Stock,
		})
	}
	return out
}

func toSale(s saleOut) model.Sale {
	out := model.Sale{
		ID:        s.ID,
		Code:      s.Codigo,
		Status:    model.OrderStatus(s.Estado),
		Total:     s.Total,
		CreatedAt: s.FechaCreacion.Time,
		Lines:     make([]model.SaleLine, 0, len(s.Detalles)),
	}
	if s.Cliente != nil {
		out.Customer = &model.SaleCustomer{
			ID:       s.Cliente.ID,
			Email:    s.Cliente.Email,
			Cedula:   s.Cliente.Cedula,
			FullName: s.Cliente.FullName,
		}
	}
	for _, d := range s.Detalles {
		line := model.SaleLine{
			ID:        d.ID,
			Quantity:  d.Cantidad,
			UnitPrice: d.PrecioUnitario,
		}
		if d.Variante != nil {
			line.VariantID = d.Variante.ID
			line.Size = d.Variante.Talla
			line.Color = d.Variante.Color
			if d.Variante.Producto != nil {
				line.ProductName = d.Variante.Producto.Nombre
			}
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

func toSales(in []saleOut) []model.Sale {
	out := make([]model.Sale, 0, len(in))
	for _, s := range in {
		out = append(out, toSale(s))
	}
	return out
}

func fromCheckoutOrder(o model.CheckoutOrder) saleIn {
	lines := make([]saleLineIn, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, saleLineIn{
			VarianteID:     l.VariantID,
			Cantidad:       l.Quantity,
			PrecioUnitario: jsonNumber{l.UnitPrice},
		})
	}
	return saleIn{
		CedulaCliente: o.CustomerIdentifier,
		Estado:        string(o.Status),
		Detalles:      lines,
	}
}

type proveedorOut struct {
	ID       int64   `json:"id"`
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono"`
	Correo   *string `json:"correo"`
}

// 空の correo はバックエンドのEmailStrで弾かれるので null で送る
type proveedorIn struct {
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono"`
	Correo   *string `json:"correo"`
}

type categoriaOut struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type categoriaIn struct {
	Name string `json:"name"`
}

type userOut struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Cedula   string  `json:"cedula"`
	Role     string  `json:"role"`
	IsActive bool    `json:"is_active"`
}

type userCreateIn struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Cedula   string  `json:"cedula"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

// cedula はバックエンド側で必須
type userUpdateIn struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Cedula   string  `json:"cedula"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toSupplier(p proveedorOut) model.Supplier {
	return model.Supplier{ID: p.ID, Name: p.Nombre, Phone: deref(p.Telefono), Email: deref(p.Correo)}
}

func fromSupplierInput(in model.SupplierInput) proveedorIn {
	return proveedorIn{Nombre: in.Name, Telefono: optional(in.Phone), Correo: optional(in.Email)}
}

func toCategory(c categoriaOut) model.Category {
	return model.Category{ID: c.ID, Name: c.Name}
}

func toUser(u userOut) model.User {
	return model.User{
		ID:       u.ID,
		Email:    u.Email,
		FullName: deref(u.FullName),
		Cedula:   u.Cedula,
		Role:     model.ParseRole(u.Role),
		IsActive: u.IsActive,
	}
}

func fromUserCreate(in model.UserCreate) userCreateIn {
	return userCreateIn{
		Email:    in.Email,
		FullName: optional(in.FullName),
		Cedula:   in.Cedula,
		Password: in.Password,
		Role:     string(in.Role),
	}
}

func fromUserUpdate(in model.UserUpdate, cedula string) userUpdateIn {
	out := userUpdateIn{
		Email:    in.Email,
		FullName: in.FullName,
		Cedula:   cedula,
		Password: in.Password,
		IsActive: in.IsActive,
	}
	if in.Role != nil {
		r := string(*in.Role)
		out.Role = &r
	}
	return out
}
