package productos_test

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
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
func (m *memButacas) DeleteAll(context.Context) error {
	m.data = map[string]*entity.Butaca{}
	return nil
}
func (m *memButacas) GetForUpdate(ctx context.Context, id string) (*entity.Butaca, error) {
	return m.FindByID(ctx, id)
}
func (m *memButacas) MarcarOcupacion(context.Context, string, entity.OcupacionButaca) error {
	return nil
}

type memComplementos struct{ data map[string]*entity.Complemento }

var _ repository.ComplementoRepository = (*memComplementos)(nil)

func (m *memComplementos) FindAll(_ context.Context, opts repository.ListOptions) ([]*entity.Complemento, error) {
	var out []*entity.Complemento
	for _, c := range m.data {
		if opts.IncluirEliminados || !c.IsDeleted {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (m *memComplementos) FindByID(_ context.Context, id string) (*entity.Complemento, error) {
	return m.data[id], nil
}
func (m *memComplementos) FindByNombre(ctx context.Context, nombre string) (*entity.Complemento, error) {
	all, _ := m.FindAll(ctx, repository.ListOptions{IncluirEliminados: true})
	var found *entity.Complemento
	for _, c := range all {
		if c.Nombre != nombre {
			continue
		}
		if found == nil || (found.IsDeleted && !c.IsDeleted) {
			found = c
		}
	}
	return found, nil
}
func (m *memComplementos) Save(_ context.Context, c *entity.Complemento) (*entity.Complemento, error) {
	cp := *c
	m.data[c.ID] = &cp
	return &cp, nil
}
func (m *memComplementos) Update(_ context.Context, id string, c *entity.Complemento) (*entity.Complemento, error) {
	if _, ok := m.data[id]; !ok {
		return nil, nil
	}
	cp := *c
	m.data[id] = &cp
	return &cp, nil
}
func (m *memComplementos) Delete(_ context.Context, id string) (*entity.Complemento, error) {
	c, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	c.IsDeleted = true
	return c, nil
}
func (m *memComplementos) DeleteAll(context.Context) error { return nil }
func (m *memComplementos) GetForUpdate(ctx context.Context, id string) (*entity.Complemento, error) {
	return m.FindByID(ctx, id)
}
func (m *memComplementos) DescontarStock(context.Context, string, int) (int, error) { return 0, nil }

type directTx struct {
	butacas      *memButacas
	complementos *memComplementos
}

func (t *directTx) RunProductos(_ context.Context, fn func(repository.ButacaRepository, repository.ComplementoRepository) error) error {
	return fn(t.butacas, t.complementos)
}

func newUseCase() (*productos.ProductoUseCase, *memButacas, *memComplementos) {
	b := &memButacas{data: map[string]*entity.Butaca{}}
	c := &memComplementos{data: map[string]*entity.Complemento{}}
	return productos.NewProductoUseCase(b, c, &directTx{butacas: b, complementos: c}, zerolog.Nop()), b, c
}

func butaca(id string) *entity.Butaca {
	return &entity.Butaca{
		ID: id, Fila: 0, Columna: 1,
		TipoButaca: entity.TipoButacaNormal, Estado: entity.EstadoButacaActiva, Ocupacion: entity.OcupacionButacaLibre,
	}
}

func complemento(id, nombre string, stock int) *entity.Complemento {
	return &entity.Complemento{
		ID: id, Nombre: nombre, Precio: decimal.RequireFromString("3.00"), Stock: stock, Categoria: entity.CategoriaComida,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Butacas
// ──────────────────────────────────────────────────────────────────────────────

func TestButacas_CrudCompleto(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	saved, err := uc.CreateButaca(ctx, butaca("A1"))
	require.NoError(t, err)
	assert.Equal(t, "A1", saved.ID)

	got, err := uc.GetButaca(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(got.PrecioUnitario()))

	upd := butaca("A1")
	upd.TipoButaca = entity.TipoButacaVIP
	updated, err := uc.UpdateButaca(ctx, "A1", upd)
	require.NoError(t, err)
	assert.Equal(t, entity.TipoButacaVIP, updated.TipoButaca)

	deleted, err := uc.DeleteButaca(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	list, err := uc.ListButacas(ctx, repository.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list, "las eliminadas no se listan por defecto")

	list, err = uc.ListButacas(ctx, repository.ListOptions{IncluirEliminados: true})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestButacas_Errores(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.GetButaca(ctx, "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateButaca(ctx, "X", butaca("X"))
	assert.ErrorIs(t, err, domain.ErrNotUpdated)

	_, err = uc.DeleteButaca(ctx, "X")
	assert.ErrorIs(t, err, domain.ErrNotDeleted)

	invalida := butaca("A2")
	invalida.TipoButaca = "PREMIUM"
	_, err = uc.CreateButaca(ctx, invalida)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tipo", verr.Campo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complementos
// ──────────────────────────────────────────────────────────────────────────────

func TestNextComplementoID_MaximoMasUno(t *testing.T) {
	uc, _, comps := newUseCase()
	ctx := context.Background()

	id, err := uc.NextComplementoID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", id, "sin complementos empieza en 1")

	comps.data["3"] = complemento("3", "Nachos", 4)
	comps.data["7"] = complemento("7", "Refresco", 4)
	comps.data["7"].IsDeleted = true
	comps.data["xx"] = complemento("xx", "Raro", 1)

	id, err = uc.NextComplementoID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "8", id)
}

func TestCreateComplemento_AsignaIDSiFalta(t *testing.T) {
	uc, _, comps := newUseCase()
	comps.data["2"] = complemento("2", "Agua", 1)

	saved, err := uc.CreateComplemento(context.Background(), complemento("", "Palomitas", 10))
	require.NoError(t, err)
	assert.Equal(t, "3", saved.ID)
}

func TestGetComplementoByNombre(t *testing.T) {
	uc, _, comps := newUseCase()
	ctx := context.Background()
	comps.data["1"] = complemento("1", "Palomitas", 0)
	comps.data["1"].IsDeleted = true
	comps.data["4"] = complemento("4", "Palomitas", 12)
	comps.data["5"] = complemento("5", "Agua", 3)

	c, err := uc.GetComplementoByNombre(ctx, "Palomitas")
	require.NoError(t, err)
	assert.Equal(t, "4", c.ID, "prima el no eliminado")
	assert.Equal(t, 12, c.Stock)

	_, err = uc.GetComplementoByNombre(ctx, "Nachos")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "complemento con nombre: Nachos")
}

func TestCreateComplemento_StockNegativo(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.CreateComplemento(context.Background(), complemento("1", "Palomitas", -1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func TestImportarProductos_InsertaYActualiza(t *testing.T) {
	uc, butacas, comps := newUseCase()
	comps.data["1"] = complemento("1", "Palomitas", 1)

	res, err := uc.ImportarProductos(context.Background(), []entity.Producto{
		butaca("A1"),
		complemento("1", "Palomitas", 50),
		complemento("2", "Agua", 20),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Creados)
	assert.Equal(t, 1, res.Actualizados)
	assert.Equal(t, 50, comps.data["1"].Stock)
	assert.Contains(t, butacas.data, "A1")
}

func TestImportarProductos_UnoInvalidoNoImportaNada(t *testing.T) {
	uc, butacas, _ := newUseCase()
	_, err := uc.ImportarProductos(context.Background(), []entity.Producto{
		butaca("A1"),
		complemento("2", "", 20),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, butacas.data)
}

func TestExportarProductos_IncluyeAmbosTipos(t *testing.T) {
	uc, butacas, comps := newUseCase()
	butacas.data["A1"] = butaca("A1")
	comps.data["1"] = complemento("1", "Palomitas", 1)

	list, err := uc.ExportarProductos(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.TipoProductoButaca, list[0].Tipo())
	assert.Equal(t, entity.TipoProductoComplemento, list[1].Tipo())
}
