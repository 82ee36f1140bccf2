package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

var _ repository.ComplementoRepository = (*ComplementoRepo)(nil)

// ComplementoRepo implementación de ComplementoRepository sobre la tabla productos.
type ComplementoRepo struct {
	q Querier
}

// NewComplementoRepository construye el adaptador de complementos. Pasar pool o tx (Querier).
func NewComplementoRepository(q Querier) *ComplementoRepo {
	return &ComplementoRepo{q: q}
}

const complementoColumns = `id, imagen, nombre, precio, stock, categoria, created_at, updated_at, is_deleted`

func scanComplemento(s scanner) (*entity.Complemento, error) {
	var (
		c                    entity.Complemento
		categoria            string
		createdAt, updatedAt string
		deleted              int
	)
	if err := s.Scan(&c.ID, &c.Imagen, &c.Nombre, &c.Precio, &c.Stock, &categoria, &createdAt, &updatedAt, &deleted); err != nil {
		return nil, err
	}
	c.Categoria = entity.CategoriaComplemento(categoria)
	c.CreatedAt = parseFecha(createdAt)
	c.UpdatedAt = parseFecha(updatedAt)
	c.IsDeleted = deleted != 0
	return &c, nil
}

func (r *ComplementoRepo) queryOne(ctx context.Context, op, query string, args ...any) (*entity.Complemento, error) {
	c, err := scanComplemento(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// FindAll lista los complementos ordenados por id.
func (r *ComplementoRepo) FindAll(ctx context.Context, opts repository.ListOptions) ([]*entity.Complemento, error) {
	query := `
		SELECT ` + complementoColumns + `
		FROM productos
		WHERE tipo_producto = 'Complemento' AND ($1 OR is_deleted = 0)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, opts.IncluirEliminados)
	if err != nil {
		return nil, fmt.Errorf("list complementos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Complemento
	for rows.Next() {
		c, err := scanComplemento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan complemento: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// FindByID obtiene un complemento por id (también los eliminados lógicamente).
func (r *ComplementoRepo) FindByID(ctx context.Context, id string) (*entity.Complemento, error) {
	return r.queryOne(ctx, "get complemento",
		`SELECT `+complementoColumns+` FROM productos WHERE id = $1 AND tipo_producto = 'Complemento'`, id)
}

// FindByNombre busca por nombre exacto; prioriza el no eliminado.
func (r *ComplementoRepo) FindByNombre(ctx context.Context, nombre string) (*entity.Complemento, error) {
	return r.queryOne(ctx, "get complemento by nombre",
		`SELECT `+complementoColumns+` FROM productos
		WHERE nombre = $1 AND tipo_producto = 'Complemento'
		ORDER BY is_deleted, id LIMIT 1`, nombre)
}

// GetForUpdate obtiene el complemento y bloquea la fila hasta el fin de la tx.
func (r *ComplementoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Complemento, error) {
	return r.queryOne(ctx, "get complemento for update",
		`SELECT `+complementoColumns+` FROM productos
		WHERE id = $1 AND tipo_producto = 'Complemento'
		FOR UPDATE`, id)
}

// Save inserta el complemento y devuelve la fila guardada.
func (r *ComplementoRepo) Save(ctx context.Context, c *entity.Complemento) (*entity.Complemento, error) {
	query := `
		INSERT INTO productos (id, tipo_producto, imagen, nombre, precio, stock, categoria, created_at, updated_at, is_deleted)
		VALUES ($1, 'Complemento', $2, $3, $4, $5, $6, $7, $7, $8)
		RETURNING ` + complementoColumns
	saved, err := scanComplemento(r.q.QueryRow(ctx, query,
		c.ID, c.Imagen, c.Nombre, c.Precio, c.Stock, string(c.Categoria), hoy(), boolToInt(c.IsDeleted),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert complemento: %w", err)
	}
	return saved, nil
}

// Update sobrescribe los campos editables y relee la fila. (nil, nil) si no existe.
func (r *ComplementoRepo) Update(ctx context.Context, id string, c *entity.Complemento) (*entity.Complemento, error) {
	query := `
		UPDATE productos
		SET imagen = $2, nombre = $3, precio = $4, stock = $5, categoria = $6, updated_at = $7, is_deleted = $8
		WHERE id = $1 AND tipo_producto = 'Complemento'`
	cmd, err := r.q.Exec(ctx, query,
		id, c.Imagen, c.Nombre, c.Precio, c.Stock, string(c.Categoria), hoy(), boolToInt(c.IsDeleted),
	)
	if err != nil {
		return nil, fmt.Errorf("update complemento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete borrado lógico; devuelve la fila marcada o (nil, nil) si no existe.
func (r *ComplementoRepo) Delete(ctx context.Context, id string) (*entity.Complemento, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET is_deleted = 1, updated_at = $2 WHERE id = $1 AND tipo_producto = 'Complemento'`,
		id, hoy(),
	)
	if err != nil {
		return nil, fmt.Errorf("delete complemento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// DeleteAll borra físicamente todos los complementos.
func (r *ComplementoRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM productos WHERE tipo_producto = 'Complemento'`); err != nil {
		return fmt.Errorf("delete all complementos: %w", err)
	}
	return nil
}

// DescontarStock resta la cantidad solo si hay stock suficiente.
func (r *ComplementoRepo) DescontarStock(ctx context.Context, id string, cantidad int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE productos SET stock = stock - $2, updated_at = $3
		WHERE id = $1 AND tipo_producto = 'Complemento' AND stock >= $2
		RETURNING stock`,
		id, cantidad, hoy(),
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: complemento %s", domain.ErrStockInsuficiente, id)
		}
		return 0, fmt.Errorf("descontar stock: %w", err)
	}
	return stock, nil
}
