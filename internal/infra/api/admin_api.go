package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"
)

var (
	_ repo.SupplierAPI = (*Client)(nil)
	_ repo.CategoryAPI = (*Client)(nil)
	_ repo.UserAPI     = (*Client)(nil)
)

func (c *Client) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var out []proveedorOut
	if err := c.getJSON(ctx, "/proveedores/", &out); err != nil {
		return nil, err
	}
	ss := make([]model.Supplier, 0, len(out))
	for _, p := range out {
		ss = append(ss, toSupplier(p))
	}
	return ss, nil
}

func (c *Client) GetSupplier(ctx context.Context, id int64) (model.Supplier, error) {
	var out proveedorOut
	if err := c.getJSON(ctx, fmt.Sprintf("/proveedores/%d", id), &out); err != nil {
		return model.Supplier{}, notFound(err)
	}
	return toSupplier(out), nil
}

func (c *Client) CreateSupplier(ctx context.Context, in model.SupplierInput) (model.Supplier, error) {
	var out proveedorOut
	if err := c.sendJSON(ctx, http.MethodPost, "/proveedores/", fromSupplierInput(in), &out); err != nil {
		return model.Supplier{}, err
	}
	return toSupplier(out), nil
}

func (c *Client) UpdateSupplier(ctx context.Context, id int64, in model.SupplierInput) (model.Supplier, error) {
	var out proveedorOut
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/proveedores/%d", id), fromSupplierInput(in), &out); err != nil {
		return model.Supplier{}, notFound(err)
	}
	return toSupplier(out), nil
}

func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/proveedores/%d", id))
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []categoriaOut
	if err := c.getJSON(ctx, "/categorias/", &out); err != nil {
		return nil, err
	}
	cs := make([]model.Category, 0, len(out))
	for _, v := range out {
		cs = append(cs, toCategory(v))
	}
	return cs, nil
}

func (c *Client) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var out categoriaOut
	if err := c.getJSON(ctx, fmt.Sprintf("/categorias/%d", id), &out); err != nil {
		return model.Category{}, notFound(err)
	}
	return toCategory(out), nil
}

func (c *Client) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	var out categoriaOut
	if err := c.sendJSON(ctx, http.MethodPost, "/categorias/", categoriaIn{Name: in.Name}, &out); err != nil {
		return model.Category{}, err
	}
	return toCategory(out), nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (model.Category, error) {
	var out categoriaOut
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/categorias/%d", id), categoriaIn{Name: in.Name}, &out); err != nil {
		return model.Category{}, notFound(err)
	}
	return toCategory(out), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/categorias/%d", id))
}

func (c *Client) ListUsers(ctx context.Context, skip int, limit int) ([]model.User, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out []userOut
	if err := c.getJSON(ctx, "/users/?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	us := make([]model.User, 0, len(out))
	for _, u := range out {
		us = append(us, toUser(u))
	}
	return us, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (model.User, error) {
	var out userOut
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return model.User{}, notFound(err)
	}
	return toUser(out), nil
}

func (c *Client) CreateUser(ctx context.Context, in model.UserCreate) (model.User, error) {
	var out userOut
	if err := c.sendJSON(ctx, http.MethodPost, "/users/", fromUserCreate(in), &out); err != nil {
		return model.User{}, err
	}
	return toUser(out), nil
}

// UpdateUser はcedulaが無ければ現在の値を取ってから送る（PUTで必須のため）。
func (c *Client) UpdateUser(ctx context.Context, id int64, in model.UserUpdate) (model.User, error) {
	var cedula string
	if in.Cedula != nil {
		cedula = *in.Cedula
	} else {
		cur, err := c.GetUser(ctx, id)
		if err != nil {
			return model.User{}, err
		}
		cedula = cur.Cedula
	}

	var out userOut
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), fromUserUpdate(in, cedula), &out); err != nil {
		return model.User{}, notFound(err)
	}
	return toUser(out), nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

// 204で本文なし
func (c *Client) delete(ctx context.Context, path string) error {
	if _, err := c.do(ctx, http.MethodDelete, path, nil, ""); err != nil {
		return notFound(err)
	}
	return nil
}
