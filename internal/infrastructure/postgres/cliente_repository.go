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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, nombre, apellido, fecha_nacimiento, dni, email, num_socio, imagen, created_at, updated_at, is_deleted`

func scanCliente(s scanner) (*entity.Cliente, error) {
	var (
		c                                entity.Cliente
		nacimiento, createdAt, updatedAt string
		deleted                          int
	)
	err := s.Scan(&c.ID, &c.Nombre, &c.Apellido, &nacimiento, &c.DNI, &c.Email, &c.NumSocio, &c.Imagen,
		&createdAt, &updatedAt, &deleted)
	if err != nil {
		return nil, err
	}
	c.FechaNacimiento = parseFecha(nacimiento)
	c.CreatedAt = parseFecha(createdAt)
	c.UpdatedAt = parseFecha(updatedAt)
	c.IsDeleted = deleted != 0
	return &c, nil
}

func (r *ClienteRepo) queryOne(ctx context.Context, op, query string, args ...any) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// FindAll lista los clientes ordenados por id.
func (r *ClienteRepo) FindAll(ctx context.Context, opts repository.ListOptions) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE ($1 OR is_deleted = 0) ORDER BY id`,
		opts.IncluirEliminados,
	)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// FindByID obtiene un cliente por id.
func (r *ClienteRepo) FindByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	return r.queryOne(ctx, "get cliente", `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id)
}

// FindByDNI obtiene el cliente no eliminado con ese DNI (o el más reciente eliminado).
func (r *ClienteRepo) FindByDNI(ctx context.Context, dni string) (*entity.Cliente, error) {
	return r.queryOne(ctx, "get cliente by dni",
		`SELECT `+clienteColumns+` FROM clientes WHERE dni = $1 ORDER BY is_deleted, id DESC LIMIT 1`, dni)
}

// Save inserta el cliente. El id lo asigna la secuencia salvo que venga informado (restauración).
func (r *ClienteRepo) Save(ctx context.Context, c *entity.Cliente) (*entity.Cliente, error) {
	var (
		saved *entity.Cliente
		err   error
	)
	args := []any{c.Nombre, c.Apellido, formatFecha(c.FechaNacimiento), c.DNI, c.Email, c.NumSocio, c.Imagen, hoy(), boolToInt(c.IsDeleted)}
	if c.ID > 0 {
		saved, err = scanCliente(r.q.QueryRow(ctx, `
			INSERT INTO clientes (nombre, apellido, fecha_nacimiento, dni, email, num_socio, imagen, created_at, updated_at, is_deleted, id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9, $10)
			RETURNING `+clienteColumns, append(args, c.ID)...))
	} else {
		saved, err = scanCliente(r.q.QueryRow(ctx, `
			INSERT INTO clientes (nombre, apellido, fecha_nacimiento, dni, email, num_socio, imagen, created_at, updated_at, is_deleted)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9)
			RETURNING `+clienteColumns, args...))
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert cliente: %w", err)
	}
	if c.ID > 0 {
		// La secuencia no avanza con ids explícitos.
		_, err = r.q.Exec(ctx, `SELECT setval(pg_get_serial_sequence('clientes', 'id'), (SELECT MAX(id) FROM clientes))`)
		if err != nil {
			return nil, fmt.Errorf("ajustar secuencia clientes: %w", err)
		}
	}
	return saved, nil
}

// Update sobrescribe los datos del cliente y relee la fila. (nil, nil) si no existe.
func (r *ClienteRepo) Update(ctx context.Context, id int64, c *entity.Cliente) (*entity.Cliente, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE clientes
		SET nombre = $2, apellido = $3, fecha_nacimiento = $4, dni = $5, email = $6, num_socio = $7,
		    imagen = $8, updated_at = $9, is_deleted = $10
		WHERE id = $1`,
		id, c.Nombre, c.Apellido, formatFecha(c.FechaNacimiento), c.DNI, c.Email, c.NumSocio, c.Imagen,
		hoy(), boolToInt(c.IsDeleted),
	)
	if err != nil {
		return nil, fmt.Errorf("update cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete borrado lógico; devuelve la fila marcada o (nil, nil) si no existe.
func (r *ClienteRepo) Delete(ctx context.Context, id int64) (*entity.Cliente, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE clientes SET is_deleted = 1, updated_at = $2 WHERE id = $1`, id, hoy())
	if err != nil {
		return nil, fmt.Errorf("delete cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// DeleteAll borra físicamente todos los clientes. Las ventas deben borrarse antes (FK).
func (r *ClienteRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM clientes`); err != nil {
		return fmt.Errorf("delete all clientes: %w", err)
	}
	return nil
}
