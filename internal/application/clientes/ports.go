package clientes

import (
	"context"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ClienteCache caché de clientes por id. Sin expiración ni desalojo.
// Get devuelve (nil, nil) cuando la clave no está.
type ClienteCache interface {
	Get(ctx context.Context, id int64) (*entity.Cliente, error)
	Put(ctx context.Context, id int64, cliente *entity.Cliente) error
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
