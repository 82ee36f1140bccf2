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

var _ repository.ButacaRepository = (*ButacaRepo)(nil)

// ButacaRepo implementación de ButacaRepository sobre la tabla productos (usable con pool o tx).
type ButacaRepo struct {
	q Querier
}

// NewButacaRepository construye el adaptador de butacas. Pasar pool o tx (Querier).
func NewButacaRepository(q Querier) *ButacaRepo {
	return &ButacaRepo{q: q}
}

const butacaColumns = `id, imagen, fila, columna, tipo_butaca, estado, ocupacion, created_at, updated_at, is_deleted`

// scanner lo cumplen pgx.Row y pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanButaca(s scanner) (*entity.Butaca, error) {
	var (
		b                    entity.Butaca
		tipo, estado, ocup   string
		createdAt, updatedAt string
		deleted              int
	)
	if err := s.Scan(&b.ID, &b.Imagen, &b.Fila, &b.Columna, &tipo, &estado, &ocup, &createdAt, &updatedAt, &deleted); err != nil {
		return nil, err
	}
	b.TipoButaca = entity.TipoButaca(tipo)
	b.Estado = entity.EstadoButaca(estado)
	b.Ocupacion = entity.OcupacionButaca(ocup)
	b.CreatedAt = parseFecha(createdAt)
	b.UpdatedAt = parseFecha(updatedAt)
	b.IsDeleted = deleted != 0
	return &b, nil
}

// FindAll lista las butacas ordenadas por id. Las eliminadas solo si opts lo pide.
func (r *ButacaRepo) FindAll(ctx context.Context, opts repository.ListOptions) ([]*entity.Butaca, error) {
	query := `
		SELECT ` + butacaColumns + `
		FROM productos
		WHERE tipo_producto = 'Butaca' AND ($1 OR is_deleted = 0)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, opts.IncluirEliminados)
	if err != nil {
		return nil, fmt.Errorf("list butacas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Butaca
	for rows.Next() {
		b, err := scanButaca(rows)
		if err != nil {
			return nil, fmt.Errorf("scan butaca: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// FindByID obtiene una butaca por id, incluso si está eliminada lógicamente.
func (r *ButacaRepo) FindByID(ctx context.Context, id string) (*entity.Butaca, error) {
	query := `SELECT ` + butacaColumns + ` FROM productos WHERE id = $1 AND tipo_producto = 'Butaca'`
	b, err := scanButaca(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get butaca: %w", err)
	}
	return b, nil
}

// Save inserta la butaca y devuelve la fila tal como quedó guardada.
func (r *ButacaRepo) Save(ctx context.Context, b *entity.Butaca) (*entity.Butaca, error) {
	query := `
		INSERT INTO productos (id, tipo_producto, imagen, fila, columna, tipo_butaca, estado, ocupacion, precio, created_at, updated_at, is_deleted)
		VALUES ($1, 'Butaca', $2, $3, $4, $5, $6, $7, $8, $9, $9, $10)
		RETURNING ` + butacaColumns
	saved, err := scanButaca(r.q.QueryRow(ctx, query,
		b.ID, b.Imagen, b.Fila, b.Columna, string(b.TipoButaca), string(b.Estado), string(b.Ocupacion),
		b.TipoButaca.Precio(), hoy(), boolToInt(b.IsDeleted),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert butaca: %w", err)
	}
	return saved, nil
}

// Update sobrescribe los campos editables (incluido is_deleted) y relee la fila. (nil, nil) si no existe.
func (r *ButacaRepo) Update(ctx context.Context, id string, b *entity.Butaca) (*entity.Butaca, error) {
	query := `
		UPDATE productos
		SET imagen = $2, fila = $3, columna = $4, tipo_butaca = $5, estado = $6, ocupacion = $7,
		    precio = $8, updated_at = $9, is_deleted = $10
		WHERE id = $1 AND tipo_producto = 'Butaca'`
	cmd, err := r.q.Exec(ctx, query,
		id, b.Imagen, b.Fila, b.Columna, string(b.TipoButaca), string(b.Estado), string(b.Ocupacion),
		b.TipoButaca.Precio(), hoy(), boolToInt(b.IsDeleted),
	)
	if err != nil {
		return nil, fmt.Errorf("update butaca: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete marca la butaca como eliminada y devuelve la fila resultante. Repetirlo no cambia nada.
func (r *ButacaRepo) Delete(ctx context.Context, id string) (*entity.Butaca, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET is_deleted = 1, updated_at = $2 WHERE id = $1 AND tipo_producto = 'Butaca'`,
		id, hoy(),
	)
	if err != nil {
		return nil, fmt.Errorf("delete butaca: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// DeleteAll borra físicamente todas las butacas.
func (r *ButacaRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM productos WHERE tipo_producto = 'Butaca'`); err != nil {
		return fmt.Errorf("delete all butacas: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la butaca y bloquea la fila hasta el fin de la tx.
func (r *ButacaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Butaca, error) {
	query := `SELECT ` + butacaColumns + ` FROM productos WHERE id = $1 AND tipo_producto = 'Butaca' FOR UPDATE`
	b, err := scanButaca(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock butaca: %w", err)
	}
	return b, nil
}

// MarcarOcupacion actualiza la ocupación de la butaca (venta de la butaca).
func (r *ButacaRepo) MarcarOcupacion(ctx context.Context, id string, ocupacion entity.OcupacionButaca) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE productos SET ocupacion = $2, updated_at = $3 WHERE id = $1 AND tipo_producto = 'Butaca'`,
		id, string(ocupacion), hoy(),
	)
	if err != nil {
		return fmt.Errorf("update ocupacion butaca: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: butaca %s", domain.ErrNotFound, id)
	}
	return nil
}
