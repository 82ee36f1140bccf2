package repository

import (
	"context"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para clientes.
type ClienteRepository interface {
	FindAll(ctx context.Context, opts ListOptions) ([]*entity.Cliente, error)
	FindByID(ctx context.Context, id int64) (*entity.Cliente, error)
	FindByDNI(ctx context.Context, dni string) (*entity.Cliente, error)
	Save(ctx context.Context, cliente *entity.Cliente) (*entity.Cliente, error)
	Update(ctx context.Context, id int64, cliente *entity.Cliente) (*entity.Cliente, error)
	Delete(ctx context.Context, id int64) (*entity.Cliente, error)
	// DeleteAll borra físicamente todos los clientes (restauración de copias).
	DeleteAll(ctx context.Context) error
}
