package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dawfilms-api/internal/application/auth"
	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
	apphttp "github.com/jhoicas/dawfilms-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type memButacas struct{ data map[string]*entity.Butaca }

var _ repository.ButacaRepository = (*memButacas)(nil)

func (m *memButacas) FindAll(_ context.Context, opts repository.ListOptions) ([]*entity.Butaca, error) {
	var out []*entity.Butaca
	for _, b := range m.data {
		if opts.IncluirEliminados || !b.IsDeleted {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (m *memButacas) FindByID(_ context.Context, id string) (*entity.Butaca, error) {
	return m.data[id], nil
}
func (m *memButacas) Save(_ context.Context, b *entity.Butaca) (*entity.Butaca, error) {
	if _, ok := m.data[b.ID]; ok {
		return nil, domain.ErrDuplicate
	}
	cp := *b
	m.data[b.ID] = &cp
	return &cp, nil
}
func (m *memButacas) Update(_ context.Context, id string, b *entity.Butaca) (*entity.Butaca, error) {
	if _, ok := m.data[id]; !ok {
		return nil, nil
	}
	cp := *b
	m.data[id] = &cp
	return &cp, nil
}
func (m *memButacas) Delete(_ context.Context, id string) (*entity.Butaca, error) {
	b, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	b.IsDeleted = true
	return b, nil
}
func (m *memButacas) DeleteAll(context.Context) error { return nil }
func (m *memButacas) GetForUpdate(ctx context.Context, id string) (*entity.Butaca, error) {
	return m.FindByID(ctx, id)
}
func (m *memButacas) MarcarOcupacion(context.Context, string, entity.OcupacionButaca) error {
	return nil
}

// De los complementos solo se ejercita la búsqueda por nombre.
type noComplementos struct{ repository.ComplementoRepository }

func (noComplementos) FindByNombre(_ context.Context, nombre string) (*entity.Complemento, error) {
	if nombre != "Palomitas" {
		return nil, nil
	}
	return &entity.Complemento{ID: "1", Nombre: "Palomitas", Stock: 10, Categoria: entity.CategoriaComida}, nil
}

type directTx struct {
	butacas *memButacas
}

func (t *directTx) RunProductos(_ context.Context, fn func(repository.ButacaRepository, repository.ComplementoRepository) error) error {
	return fn(t.butacas, noComplementos{})
}

const adminPassword = "palomitas"

func newRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	butacas := &memButacas{data: map[string]*entity.Butaca{}}
	productoUC := productos.NewProductoUseCase(butacas, noComplementos{}, &directTx{butacas: butacas}, zerolog.Nop())
	authUC := auth.NewAuthUseCase(
		auth.Credenciales{Usuario: "admin", PasswordHash: string(hash)},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		zerolog.Nop(),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ProductoUC: productoUC,
		JWTSecret:  testJWTSecret,
	})
	return app
}

func send(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := send(t, app, http.MethodPost, "/api/auth/login", "", `{"usuario":"admin","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	assert.Equal(t, auth.RoleAdmin, body["role"])
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app := newRouterApp(t)
	resp, body := send(t, app, http.MethodPost, "/api/auth/login", "", `{"usuario":"admin","password":"otra"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestLogin_CamposVacios_Retorna400(t *testing.T) {
	app := newRouterApp(t)
	resp, _ := send(t, app, http.MethodPost, "/api/auth/login", "", `{"usuario":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRutasProtegidas_SinToken_Retorna401(t *testing.T) {
	app := newRouterApp(t)
	for _, path := range []string{"/api/butacas", "/api/clientes", "/api/ventas", "/api/backup"} {
		resp, _ := send(t, app, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Butacas
// ──────────────────────────────────────────────────────────────────────────────

func TestButacas_CrudPorHTTP(t *testing.T) {
	app := newRouterApp(t)
	tok := login(t, app)

	resp, body := send(t, app, http.MethodPost, "/api/butacas", tok, `{"id":"A1","fila":0,"columna":1,"tipo":"vip"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "VIP", body["tipo"])
	assert.Equal(t, "ACTIVA", body["estado"])
	assert.Equal(t, "LIBRE", body["ocupacion"])
	assert.Equal(t, "8", body["precio"])

	resp, body = send(t, app, http.MethodPut, "/api/butacas/A1", tok, `{"fila":2,"columna":3,"tipo":"NORMAL","estado":"fuera de servicio"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "FUERASERVICIO", body["estado"])
	assert.Equal(t, "5", body["precio"])

	resp, body = send(t, app, http.MethodDelete, "/api/butacas/A1", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isDeleted"])

	// Eliminada: fuera del listado por defecto, visible con incluir_eliminados.
	req := httptest.NewRequest(http.MethodGet, "/api/butacas", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&list))
	r.Body.Close()
	assert.Empty(t, list)

	req = httptest.NewRequest(http.MethodGet, "/api/butacas?incluir_eliminados=true", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r, err = app.Test(req, -1)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(r.Body).Decode(&list))
	r.Body.Close()
	assert.Len(t, list, 1)
}

func TestButacas_ErroresPorHTTP(t *testing.T) {
	app := newRouterApp(t)
	tok := login(t, app)

	resp, body := send(t, app, http.MethodPost, "/api/butacas", tok, `{"id":"A1","tipo":"PLATINO"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, body = send(t, app, http.MethodPost, "/api/butacas", tok, `{"id":"A1","fila":-1,"tipo":"NORMAL"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "fila")

	resp, _ = send(t, app, http.MethodPost, "/api/butacas", tok, `{"id":"A1","tipo":"NORMAL"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, body = send(t, app, http.MethodPost, "/api/butacas", tok, `{"id":"A1","tipo":"NORMAL"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])

	resp, body = send(t, app, http.MethodGet, "/api/butacas/Z9", tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, _ = send(t, app, http.MethodDelete, "/api/butacas/Z9", tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complementos
// ──────────────────────────────────────────────────────────────────────────────

func TestComplementos_BuscarPorNombre(t *testing.T) {
	app := newRouterApp(t)
	tok := login(t, app)

	resp, body := send(t, app, http.MethodGet, "/api/complementos?nombre=Palomitas", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", body["id"])
	assert.Equal(t, "COMIDA", body["categoria"])

	resp, body = send(t, app, http.MethodGet, "/api/complementos?nombre=Nachos", tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
