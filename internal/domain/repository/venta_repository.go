package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// VentaRepository define el puerto de persistencia para ventas (cabecera + líneas).
// No valida: la validación de negocio vive en la capa de aplicación.
type VentaRepository interface {
	FindAll(ctx context.Context, opts ListOptions) ([]*entity.Venta, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venta, error)
	FindByFecha(ctx context.Context, fecha time.Time) ([]*entity.Venta, error)
	FindByCliente(ctx context.Context, clienteID int64) ([]*entity.Venta, error)
	// Save inserta cabecera y líneas. Debe ejecutarse en una tx para que ambas se confirmen juntas.
	Save(ctx context.Context, venta *entity.Venta) (*entity.Venta, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.Venta, error)
	DeleteAll(ctx context.Context) error
}

