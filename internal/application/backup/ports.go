package backup

import (
	"context"

	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// TxRunner transacciones para restauraciones completas e importación de clientes.
type TxRunner interface {
	RunRestore(ctx context.Context, fn func(
		clienteRepo repository.ClienteRepository,
		butacaRepo repository.ButacaRepository,
		complementoRepo repository.ComplementoRepository,
		ventaRepo repository.VentaRepository,
	) error) error
	RunClientes(ctx context.Context, fn func(clienteRepo repository.ClienteRepository) error) error
}
