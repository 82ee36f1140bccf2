package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/dawfilms-api/internal/application/backup"
	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	"github.com/jhoicas/dawfilms-api/internal/application/ventas"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

var (
	_ ventas.TxRunner    = (*TxRunner)(nil)
	_ backup.TxRunner    = (*TxRunner)(nil)
	_ productos.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx abre la tx, ejecuta fn y hace Commit; ante cualquier error se hace Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVentas registra una venta: cabecera, líneas, stock y ocupación de butacas en la misma tx.
func (r *TxRunner) RunVentas(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	complementoRepo repository.ComplementoRepository,
	butacaRepo repository.ButacaRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewVentaRepository(tx), NewComplementoRepository(tx), NewButacaRepository(tx))
	})
}

// RunProductos importación masiva de butacas y complementos.
func (r *TxRunner) RunProductos(ctx context.Context, fn func(
	butacaRepo repository.ButacaRepository,
	complementoRepo repository.ComplementoRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewButacaRepository(tx), NewComplementoRepository(tx))
	})
}

// RunRestore reemplazo completo de la base (restauración de copia de seguridad).
func (r *TxRunner) RunRestore(ctx context.Context, fn func(
	clienteRepo repository.ClienteRepository,
	butacaRepo repository.ButacaRepository,
	complementoRepo repository.ComplementoRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewClienteRepository(tx), NewButacaRepository(tx), NewComplementoRepository(tx), NewVentaRepository(tx))
	})
}

// RunClientes importación masiva de clientes.
func (r *TxRunner) RunClientes(ctx context.Context, fn func(clienteRepo repository.ClienteRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewClienteRepository(tx))
	})
}
