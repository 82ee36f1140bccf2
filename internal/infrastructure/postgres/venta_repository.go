package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository (cabecera en ventas, detalle en lineas_venta).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaSelect = `
	SELECT v.id, v.fecha_compra, v.total, v.created_at, v.updated_at, v.is_deleted,
	       c.id, c.nombre, c.apellido, c.fecha_nacimiento, c.dni, c.email, c.num_socio, c.imagen,
	       c.created_at, c.updated_at, c.is_deleted
	FROM ventas v
	JOIN clientes c ON c.id = v.cliente_id`

func scanVenta(s scanner) (*entity.Venta, error) {
	var (
		v                               entity.Venta
		fecha, createdAt, updatedAt     string
		deleted                         int
		cNacimiento, cCreated, cUpdated string
		cDeleted                        int
	)
	err := s.Scan(&v.ID, &fecha, &v.Total, &createdAt, &updatedAt, &deleted,
		&v.Cliente.ID, &v.Cliente.Nombre, &v.Cliente.Apellido, &cNacimiento, &v.Cliente.DNI, &v.Cliente.Email,
		&v.Cliente.NumSocio, &v.Cliente.Imagen, &cCreated, &cUpdated, &cDeleted,
	)
	if err != nil {
		return nil, err
	}
	v.FechaCompra = parseFecha(fecha)
	v.CreatedAt = parseFecha(createdAt)
	v.UpdatedAt = parseFecha(updatedAt)
	v.IsDeleted = deleted != 0
	v.Cliente.FechaNacimiento = parseFecha(cNacimiento)
	v.Cliente.CreatedAt = parseFecha(cCreated)
	v.Cliente.UpdatedAt = parseFecha(cUpdated)
	v.Cliente.IsDeleted = cDeleted != 0
	return &v, nil
}

// list ejecuta la consulta de cabeceras y completa las líneas de todas las ventas con una sola consulta extra.
func (r *VentaRepo) list(ctx context.Context, where string, args ...any) ([]*entity.Venta, error) {
	rows, err := r.q.Query(ctx, ventaSelect+" "+where+" ORDER BY v.fecha_compra, v.created_at, v.id", args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	var (
		ventas []*entity.Venta
		ids    []string
		byID   = map[uuid.UUID]*entity.Venta{}
	)
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		ventas = append(ventas, v)
		ids = append(ids, v.ID.String())
		byID[v.ID] = v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	if len(ventas) == 0 {
		return ventas, nil
	}
	if err := r.loadLineas(ctx, ids, byID); err != nil {
		return nil, err
	}
	return ventas, nil
}

func (r *VentaRepo) loadLineas(ctx context.Context, ids []string, byID map[uuid.UUID]*entity.Venta) error {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.venta_id, l.producto_id, l.tipo_producto, l.cantidad, l.precio,
		       l.created_at, l.updated_at, l.is_deleted, p.nombre, p.fila, p.columna
		FROM lineas_venta l
		LEFT JOIN productos p ON p.id = l.producto_id AND p.tipo_producto = l.tipo_producto
		WHERE l.venta_id = ANY($1::uuid[])
		ORDER BY l.venta_id, l.posicion`, ids)
	if err != nil {
		return fmt.Errorf("list lineas venta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l                    entity.LineaVenta
			createdAt, updatedAt string
			deleted              int
			nombre               *string
			fila, columna        *int
		)
		if err := rows.Scan(&l.ID, &l.VentaID, &l.ProductoID, &l.TipoProducto, &l.Cantidad, &l.Precio,
			&createdAt, &updatedAt, &deleted, &nombre, &fila, &columna); err != nil {
			return fmt.Errorf("scan linea venta: %w", err)
		}
		l.CreatedAt = parseFecha(createdAt)
		l.UpdatedAt = parseFecha(updatedAt)
		l.IsDeleted = deleted != 0
		l.Descripcion = describirLinea(l, nombre, fila, columna)
		if v, ok := byID[l.VentaID]; ok {
			v.Lineas = append(v.Lineas, l)
		}
	}
	return rows.Err()
}

// describirLinea arma el texto legible del producto; si el producto ya no existe queda su id.
func describirLinea(l entity.LineaVenta, nombre *string, fila, columna *int) string {
	switch {
	case l.TipoProducto == entity.TipoProductoComplemento && nombre != nil:
		return (&entity.Complemento{ID: l.ProductoID, Nombre: *nombre}).Descripcion()
	case l.TipoProducto == entity.TipoProductoButaca && fila != nil && columna != nil:
		return (&entity.Butaca{ID: l.ProductoID, Fila: *fila, Columna: *columna}).Descripcion()
	default:
		return l.ProductoID
	}
}

// FindAll lista ventas con su cliente y sus líneas.
func (r *VentaRepo) FindAll(ctx context.Context, opts repository.ListOptions) ([]*entity.Venta, error) {
	return r.list(ctx, "WHERE ($1 OR v.is_deleted = 0)", opts.IncluirEliminados)
}

// FindByID obtiene la venta completa (incluso si está eliminada). (nil, nil) si no existe.
func (r *VentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venta, error) {
	ventas, err := r.list(ctx, "WHERE v.id = $1::uuid", id.String())
	if err != nil {
		return nil, err
	}
	if len(ventas) == 0 {
		return nil, nil
	}
	return ventas[0], nil
}

// FindByFecha ventas no eliminadas de un día.
func (r *VentaRepo) FindByFecha(ctx context.Context, fecha time.Time) ([]*entity.Venta, error) {
	return r.list(ctx, "WHERE v.fecha_compra = $1 AND v.is_deleted = 0", formatFecha(fecha))
}

// FindByCliente ventas no eliminadas de un cliente.
func (r *VentaRepo) FindByCliente(ctx context.Context, clienteID int64) ([]*entity.Venta, error) {
	return r.list(ctx, "WHERE v.cliente_id = $1 AND v.is_deleted = 0", clienteID)
}

// Save inserta cabecera y líneas y devuelve la venta releída. Llamar dentro de una tx.
func (r *VentaRepo) Save(ctx context.Context, v *entity.Venta) (*entity.Venta, error) {
	fecha := formatFecha(v.FechaCompra)
	if fecha == "" {
		fecha = hoy()
	}
	now := hoy()
	_, err := r.q.Exec(ctx, `
		INSERT INTO ventas (id, cliente_id, fecha_compra, total, created_at, updated_at, is_deleted)
		VALUES ($1::uuid, $2, $3, $4, $5, $5, $6)`,
		v.ID.String(), v.Cliente.ID, fecha, v.Total, now, boolToInt(v.IsDeleted),
	)
	if err != nil {
		return nil, fmt.Errorf("insert venta: %w", err)
	}
	for i, l := range v.Lineas {
		lineaID := l.ID
		if lineaID == uuid.Nil {
			lineaID = uuid.New()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO lineas_venta (id, venta_id, posicion, producto_id, tipo_producto, cantidad, precio, created_at, updated_at, is_deleted)
			VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, $8, $8, $9)`,
			lineaID.String(), v.ID.String(), i, l.ProductoID, l.TipoProducto, l.Cantidad, l.Precio, now, boolToInt(l.IsDeleted),
		)
		if err != nil {
			return nil, fmt.Errorf("insert linea venta: %w", err)
		}
	}
	return r.FindByID(ctx, v.ID)
}

// Delete borrado lógico de cabecera y líneas; devuelve la venta marcada o (nil, nil) si no existe.
func (r *VentaRepo) Delete(ctx context.Context, id uuid.UUID) (*entity.Venta, error) {
	now := hoy()
	cmd, err := r.q.Exec(ctx, `UPDATE ventas SET is_deleted = 1, updated_at = $2 WHERE id = $1::uuid`, id.String(), now)
	if err != nil {
		return nil, fmt.Errorf("delete venta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	_, err = r.q.Exec(ctx, `UPDATE lineas_venta SET is_deleted = 1, updated_at = $2 WHERE venta_id = $1::uuid`, id.String(), now)
	if err != nil {
		return nil, fmt.Errorf("delete lineas venta: %w", err)
	}
	return r.FindByID(ctx, id)
}

// DeleteAll borra físicamente todas las ventas y sus líneas.
func (r *VentaRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM lineas_venta`); err != nil {
		return fmt.Errorf("delete all lineas venta: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM ventas`); err != nil {
		return fmt.Errorf("delete all ventas: %w", err)
	}
	return nil
}
