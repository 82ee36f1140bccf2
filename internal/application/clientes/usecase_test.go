package clientes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dawfilms-api/internal/application/clientes"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type countingRepo struct {
	data      map[int64]*entity.Cliente
	nextID    int64
	findCalls int
}

var _ repository.ClienteRepository = (*countingRepo)(nil)

func newRepo() *countingRepo {
	return &countingRepo{data: map[int64]*entity.Cliente{}, nextID: 1}
}

func (r *countingRepo) FindAll(_ context.Context, opts repository.ListOptions) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range r.data {
		if opts.IncluirEliminados || !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *countingRepo) FindByID(_ context.Context, id int64) (*entity.Cliente, error) {
	r.findCalls++
	return r.data[id], nil
}
func (r *countingRepo) FindByDNI(_ context.Context, dni string) (*entity.Cliente, error) {
	for _, c := range r.data {
		if c.DNI == dni {
			return c, nil
		}
	}
	return nil, nil
}
func (r *countingRepo) Save(_ context.Context, c *entity.Cliente) (*entity.Cliente, error) {
	cp := *c
	cp.ID = r.nextID
	r.nextID++
	r.data[cp.ID] = &cp
	return &cp, nil
}
func (r *countingRepo) Update(_ context.Context, id int64, c *entity.Cliente) (*entity.Cliente, error) {
	if _, ok := r.data[id]; !ok {
		return nil, nil
	}
	cp := *c
	cp.ID = id
	r.data[id] = &cp
	return &cp, nil
}
func (r *countingRepo) Delete(_ context.Context, id int64) (*entity.Cliente, error) {
	c, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	c.IsDeleted = true
	return c, nil
}
func (r *countingRepo) DeleteAll(context.Context) error { return nil }

type spyCache struct {
	items  map[int64]*entity.Cliente
	getErr error
}

func newSpyCache() *spyCache { return &spyCache{items: map[int64]*entity.Cliente{}} }

func (c *spyCache) Get(_ context.Context, id int64) (*entity.Cliente, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.items[id], nil
}
func (c *spyCache) Put(_ context.Context, id int64, cl *entity.Cliente) error {
	c.items[id] = cl
	return nil
}
func (c *spyCache) Remove(_ context.Context, id int64) error {
	delete(c.items, id)
	return nil
}
func (c *spyCache) Clear(context.Context) error {
	c.items = map[int64]*entity.Cliente{}
	return nil
}

func clienteValido() *entity.Cliente {
	return &entity.Cliente{
		Nombre: "Ana", Apellido: "García", DNI: "12345678Z", Email: "ana@dawfilms.es",
		FechaNacimiento: time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché
// ──────────────────────────────────────────────────────────────────────────────

// put(5) y get(5) no tocan el repositorio; tras remove(5) se consulta findById(5).
func TestGetByID_CacheHitYFallThrough(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	cache := newSpyCache()
	uc := clientes.NewClienteUseCase(repo, cache, zerolog.Nop())

	enCache := &entity.Cliente{ID: 5, Nombre: "Cacheado"}
	repo.data[5] = &entity.Cliente{ID: 5, Nombre: "EnBase"}
	require.NoError(t, cache.Put(ctx, 5, enCache))

	got, err := uc.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Same(t, enCache, got)
	assert.Equal(t, 0, repo.findCalls, "un acierto de caché no consulta el repositorio")

	require.NoError(t, cache.Remove(ctx, 5))
	got, err = uc.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "EnBase", got.Nombre)
	assert.Equal(t, 1, repo.findCalls)

	_, inCache := cache.items[5]
	assert.False(t, inCache, "la lectura no rellena la caché")
}

func TestGetByID_NoEncontrado(t *testing.T) {
	uc := clientes.NewClienteUseCase(newRepo(), newSpyCache(), zerolog.Nop())
	_, err := uc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrClienteNoEncontrado)
	assert.Contains(t, err.Error(), "cliente no encontrado con id: 99")
}

func TestGetByID_FalloDeCacheLeeDelRepositorio(t *testing.T) {
	repo := newRepo()
	repo.data[3] = &entity.Cliente{ID: 3, Nombre: "Pepe"}
	cache := newSpyCache()
	cache.getErr = errors.New("conexión rechazada")
	uc := clientes.NewClienteUseCase(repo, cache, zerolog.Nop())

	got, err := uc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Pepe", got.Nombre)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestSave_EscribeEnCache(t *testing.T) {
	repo := newRepo()
	cache := newSpyCache()
	uc := clientes.NewClienteUseCase(repo, cache, zerolog.Nop())

	saved, err := uc.Save(context.Background(), clienteValido())
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, saved, cache.items[1])
}

func TestSave_Invalido(t *testing.T) {
	cache := newSpyCache()
	uc := clientes.NewClienteUseCase(newRepo(), cache, zerolog.Nop())

	c := clienteValido()
	c.DNI = "12345678A"
	_, err := uc.Save(context.Background(), c)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dni", verr.Campo)
	assert.Empty(t, cache.items)
}

func TestUpdate_NoExisteDevuelveNoActualizado(t *testing.T) {
	uc := clientes.NewClienteUseCase(newRepo(), newSpyCache(), zerolog.Nop())
	_, err := uc.Update(context.Background(), 7, clienteValido())
	assert.ErrorIs(t, err, domain.ErrNotUpdated)
}

func TestUpdate_RefrescaCache(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	cache := newSpyCache()
	uc := clientes.NewClienteUseCase(repo, cache, zerolog.Nop())
	saved, err := uc.Save(ctx, clienteValido())
	require.NoError(t, err)

	mod := clienteValido()
	mod.Email = "nuevo@dawfilms.es"
	_, err = uc.Update(ctx, saved.ID, mod)
	require.NoError(t, err)
	assert.Equal(t, "nuevo@dawfilms.es", cache.items[saved.ID].Email)
}

func TestDelete_QuitaDeCacheYEsIdempotente(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	cache := newSpyCache()
	uc := clientes.NewClienteUseCase(repo, cache, zerolog.Nop())
	saved, err := uc.Save(ctx, clienteValido())
	require.NoError(t, err)

	first, err := uc.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, first.IsDeleted)
	assert.NotContains(t, cache.items, saved.ID)

	second, err := uc.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, second.IsDeleted)

	_, err = uc.Delete(ctx, 1234)
	assert.ErrorIs(t, err, domain.ErrNotDeleted)
}
