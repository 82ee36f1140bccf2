package repository

import (
	"context"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ComplementoRepository define el puerto de persistencia para complementos.
type ComplementoRepository interface {
	FindAll(ctx context.Context, opts ListOptions) ([]*entity.Complemento, error)
	FindByID(ctx context.Context, id string) (*entity.Complemento, error)
	FindByNombre(ctx context.Context, nombre string) (*entity.Complemento, error)
	Save(ctx context.Context, complemento *entity.Complemento) (*entity.Complemento, error)
	Update(ctx context.Context, id string, complemento *entity.Complemento) (*entity.Complemento, error)
	Delete(ctx context.Context, id string) (*entity.Complemento, error)
	// DeleteAll borra físicamente todas las filas del tipo (restauración de copias).
	DeleteAll(ctx context.Context) error
	// GetForUpdate obtiene el complemento bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Complemento, error)
	// DescontarStock resta cantidad al stock. Devuelve el stock resultante.
	DescontarStock(ctx context.Context, id string, cantidad int) (int, error)
}
