package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuppliers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/proveedores/":
			_, _ = io.WriteString(w, `[{"id":1,"nombre":"Textiles Andinos","telefono":null,"correo":"ventas@andinos.com"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/proveedores/":
			raw, _ := io.ReadAll(r.Body)
			// 空の項目は null
			assert.JSONEq(t, `{"nombre":"Hilos Sur","telefono":"0412-555","correo":null}`, string(raw))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":2,"nombre":"Hilos Sur","telefono":"0412-555","correo":null}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/proveedores/3":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Proveedor no encontrado"}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	ss, err := c.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, ss, 1)
	assert.Equal(t, model.Supplier{ID: 1, Name: "Textiles Andinos", Email: "ventas@andinos.com"}, ss[0])

	s, err := c.CreateSupplier(ctx, model.SupplierInput{Name: "Hilos Sur", Phone: "0412-555"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.ID)

	assert.ErrorIs(t, c.DeleteSupplier(ctx, 3), repo.ErrNotFound)
}

func TestCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/categorias/4":
			var body categoriaIn
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Pantalones", body.Name)
			_, _ = io.WriteString(w, `{"id":4,"name":"Pantalones"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/categorias/4":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	cat, err := c.UpdateCategory(ctx, 4, model.CategoryInput{Name: "Pantalones"})
	require.NoError(t, err)
	assert.Equal(t, model.Category{ID: 4, Name: "Pantalones"}, cat)
	require.NoError(t, c.DeleteCategory(ctx, 4))
}

func TestUsers(t *testing.T) {
	var puts int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/":
			assert.Equal(t, "20", r.URL.Query().Get("skip"))
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			_, _ = io.WriteString(w, `[{"id":5,"email":"ana@example.com","full_name":null,"cedula":"V-1","role":"manager","is_active":true}]`)
		case r.Method == http.MethodGet && r.URL.Path == "/users/5":
			_, _ = io.WriteString(w, `{"id":5,"email":"ana@example.com","full_name":"Ana","cedula":"V-1","role":"manager","is_active":true}`)
		case r.Method == http.MethodPut && r.URL.Path == "/users/5":
			puts++
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			// cedulaは現在値で補う。送っていない項目は含めない
			assert.Equal(t, "V-1", body["cedula"])
			assert.Equal(t, false, body["is_active"])
			assert.NotContains(t, body, "email")
			_, _ = io.WriteString(w, `{"id":5,"email":"ana@example.com","full_name":"Ana","cedula":"V-1","role":"manager","is_active":false}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	us, err := c.ListUsers(ctx, 20, 50)
	require.NoError(t, err)
	require.Len(t, us, 1)
	assert.Equal(t, model.RoleManager, us[0].Role)
	assert.Equal(t, "", us[0].FullName)

	inactive := false
	u, err := c.UpdateUser(ctx, 5, model.UserUpdate{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, 1, puts)
}
