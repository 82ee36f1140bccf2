package ventas

import (
	"context"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error no se confirma nada.
type TxRunner interface {
	RunVentas(ctx context.Context, fn func(
		ventaRepo repository.VentaRepository,
		complementoRepo repository.ComplementoRepository,
		butacaRepo repository.ButacaRepository,
	) error) error
}

// TicketGenerator genera el ticket de una venta en PDF.
type TicketGenerator interface {
	GenerateVentaPDF(ctx context.Context, venta *entity.Venta) ([]byte, error)
}
