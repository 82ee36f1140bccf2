package repository

import (
	"context"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ButacaRepository define el puerto de persistencia para butacas.
// Las búsquedas devuelven (nil, nil) cuando la butaca no existe.
type ButacaRepository interface {
	FindAll(ctx context.Context, opts ListOptions) ([]*entity.Butaca, error)
	FindByID(ctx context.Context, id string) (*entity.Butaca, error)
	Save(ctx context.Context, butaca *entity.Butaca) (*entity.Butaca, error)
	Update(ctx context.Context, id string, butaca *entity.Butaca) (*entity.Butaca, error)
	Delete(ctx context.Context, id string) (*entity.Butaca, error)
	// DeleteAll borra físicamente todas las filas del tipo (restauración de copias).
	DeleteAll(ctx context.Context) error
	// GetForUpdate obtiene la butaca bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Butaca, error)
	// MarcarOcupacion cambia la ocupación. Dentro de una tx, después de GetForUpdate.
	MarcarOcupacion(ctx context.Context, id string, ocupacion entity.OcupacionButaca) error
}
