package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"
)

var (
	_ repo.CatalogAPI = (*Client)(nil)
	_ repo.OrderAPI   = (*Client)(nil)
	_ repo.SalesAPI   = (*Client)(nil)
	_ repo.AuthAPI    = (*Client)(nil)
)

var errEmptyToken = errors.New("store api returned empty access token")

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []productOut
	if err := c.getJSON(ctx, "/products/", &out); err != nil {
		return nil, err
	}
	ps := make([]model.Product, 0, len(out))
	for _, p := range out {
		ps = append(ps, toProduct(p))
	}
	return ps, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	var out productOut
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &out); err != nil {
		return model.Product{}, notFound(err)
	}
	return toProduct(out), nil
}

// SubmitOrder は POST /sales/ を1回だけ送る（リトライ・遮断器なし）。
func (c *Client) SubmitOrder(ctx context.Context, order model.CheckoutOrder) (model.OrderAck, error) {
	var out saleOut
	if err := c.sendJSON(ctx, "POST", "/sales/", fromCheckoutOrder(order), &out); err != nil {
		return model.OrderAck{}, err
	}
	ack := model.OrderAck{
		Code:      out.Codigo,
		CreatedAt: out.FechaCreacion.Time,
	}
	if out.Cliente != nil {
		ack.CustomerName = out.Cliente.FullName
	}
	return ack, nil
}

func (c *Client) ListSales(ctx context.Context) ([]model.Sale, error) {
	var out []saleOut
	if err := c.getJSON(ctx, "/sales/", &out); err != nil {
		return nil, err
	}
	return toSales(out), nil
}

func (c *Client) ListSalesByCedula(ctx context.Context, cedula string) ([]model.Sale, error) {
	var out []saleOut
	if err := c.getJSON(ctx, "/sales/by-cedula/"+url.PathEscape(cedula), &out); err != nil {
		return nil, notFound(err)
	}
	return toSales(out), nil
}

func (c *Client) GetSale(ctx context.Context, code string) (model.Sale, error) {
	var out saleOut
	if err := c.getJSON(ctx, "/sales/"+url.PathEscape(code), &out); err != nil {
		return model.Sale{}, notFound(err)
	}
	return toSale(out), nil
}

func (c *Client) UpdateSaleStatus(ctx context.Context, code string, status model.OrderStatus) (model.Sale, error) {
	var out saleOut
	if err := c.sendJSON(ctx, "PATCH", "/sales/"+url.PathEscape(code)+"/status", statusIn{Estado: string(status)}, &out); err != nil {
		return model.Sale{}, notFound(err)
	}
	return toSale(out), nil
}

// Token は OAuth2 password フォームでアクセストークンを取る。
func (c *Client) Token(ctx context.Context, email string, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var out tokenOut
	if err := c.postForm(ctx, "/auth/token", form, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return "", errEmptyToken
	}
	return out.AccessToken, nil
}
