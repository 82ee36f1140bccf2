package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dawfilms-api/internal/application/ventas"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/postgres"
)

// Estos tests usan una base de datos real y la vacían: solo corren con TEST_DATABASE_URL.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	// Dos veces: las migraciones son idempotentes.
	require.NoError(t, postgres.Migrate(ctx, pool))

	require.NoError(t, postgres.NewVentaRepository(pool).DeleteAll(ctx))
	require.NoError(t, postgres.NewButacaRepository(pool).DeleteAll(ctx))
	require.NoError(t, postgres.NewComplementoRepository(pool).DeleteAll(ctx))
	require.NoError(t, postgres.NewClienteRepository(pool).DeleteAll(ctx))
	return pool
}

func clienteAna() *entity.Cliente {
	return &entity.Cliente{
		Nombre: "Ana", Apellido: "García", DNI: "12345678Z", Email: "ana@example.com",
		FechaNacimiento: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestClienteRepo_CrudYBorradoLogico(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewClienteRepository(pool)

	saved, err := repo.Save(ctx, clienteAna())
	require.NoError(t, err)
	require.Positive(t, saved.ID)
	assert.Equal(t, "1990-05-17", saved.FechaNacimiento.Format(entity.FormatoFecha))

	byDNI, err := repo.FindByDNI(ctx, "12345678Z")
	require.NoError(t, err)
	require.NotNil(t, byDNI)
	assert.Equal(t, saved.ID, byDNI.ID)

	saved.Email = "ana.garcia@example.com"
	updated, err := repo.Update(ctx, saved.ID, saved)
	require.NoError(t, err)
	assert.Equal(t, "ana.garcia@example.com", updated.Email)

	deleted, err := repo.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	activos, err := repo.FindAll(ctx, repository.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, activos)
	todos, err := repo.FindAll(ctx, repository.ListOptions{IncluirEliminados: true})
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	missing, err := repo.FindByID(ctx, saved.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClienteRepo_SaveConIDExplicitoAjustaSecuencia(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewClienteRepository(pool)

	c := clienteAna()
	c.ID = 500
	_, err := repo.Save(ctx, c)
	require.NoError(t, err)

	otro := clienteAna()
	otro.DNI = "00000000T"
	saved, err := repo.Save(ctx, otro)
	require.NoError(t, err)
	assert.Greater(t, saved.ID, int64(500))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas con TxRunner real
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_TransaccionCompleta(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	clienteRepo := postgres.NewClienteRepository(pool)
	butacaRepo := postgres.NewButacaRepository(pool)
	complementoRepo := postgres.NewComplementoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)

	cliente, err := clienteRepo.Save(ctx, clienteAna())
	require.NoError(t, err)
	_, err = butacaRepo.Save(ctx, &entity.Butaca{
		ID: "A1", Fila: 0, Columna: 1, TipoButaca: entity.TipoButacaVIP,
		Estado: entity.EstadoButacaActiva, Ocupacion: entity.OcupacionButacaLibre,
	})
	require.NoError(t, err)
	_, err = complementoRepo.Save(ctx, &entity.Complemento{
		ID: "C1", Nombre: "Palomitas", Precio: decimal.RequireFromString("3.50"), Stock: 5, Categoria: entity.CategoriaComida,
	})
	require.NoError(t, err)

	uc := ventas.NewVentaUseCase(
		ventas.NewValidator(clienteRepo, butacaRepo, complementoRepo),
		postgres.NewTxRunner(pool), ventaRepo, zerolog.Nop(),
	)

	venta, err := uc.CreateVenta(ctx, &entity.Venta{
		Cliente: entity.Cliente{ID: cliente.ID},
		Lineas: []entity.LineaVenta{
			{ProductoID: "A1", TipoProducto: entity.TipoProductoButaca, Cantidad: 1},
			{ProductoID: "C1", TipoProducto: entity.TipoProductoComplemento, Cantidad: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15).Equal(venta.Total), "total = %s", venta.Total)

	c1, err := complementoRepo.FindByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 3, c1.Stock)
	a1, err := butacaRepo.FindByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, entity.OcupacionButacaOcupada, a1.Ocupacion)

	leida, err := ventaRepo.FindByID(ctx, venta.ID)
	require.NoError(t, err)
	require.NotNil(t, leida)
	require.Len(t, leida.Lineas, 2)
	assert.Equal(t, "A1", leida.Lineas[0].ProductoID)
	assert.Equal(t, cliente.DNI, leida.Cliente.DNI)

	delDia, err := uc.GetByFecha(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, delDia, 1)

	// Stock insuficiente: nada cambia.
	_, err = uc.CreateVenta(ctx, &entity.Venta{
		Cliente: entity.Cliente{ID: cliente.ID},
		Lineas:  []entity.LineaVenta{{ProductoID: "C1", TipoProducto: entity.TipoProductoComplemento, Cantidad: 4}},
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	c1, err = complementoRepo.FindByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 3, c1.Stock)

	// La butaca ya está ocupada: no se vuelve a vender.
	_, err = uc.CreateVenta(ctx, &entity.Venta{
		Cliente: entity.Cliente{ID: cliente.ID},
		Lineas:  []entity.LineaVenta{{ProductoID: "A1", TipoProducto: entity.TipoProductoButaca, Cantidad: 1}},
	})
	require.ErrorIs(t, err, domain.ErrButacaNoDisponible)
	bloqueada, err := butacaRepo.GetForUpdate(ctx, "A1")
	require.NoError(t, err)
	assert.False(t, bloqueada.Disponible())

	eliminada, err := uc.Delete(ctx, venta.ID)
	require.NoError(t, err)
	assert.True(t, eliminada.IsDeleted)
	activas, err := uc.GetAll(ctx, repository.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, activas)
}
