package productos

import (
	"context"

	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repositorios de productos.
type TxRunner interface {
	RunProductos(ctx context.Context, fn func(
		butacaRepo repository.ButacaRepository,
		complementoRepo repository.ComplementoRepository,
	) error) error
}
