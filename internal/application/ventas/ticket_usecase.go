package ventas

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TicketUseCase genera el ticket PDF de una venta registrada.
type TicketUseCase struct {
	ventas    *VentaUseCase
	generator TicketGenerator
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(ventas *VentaUseCase, generator TicketGenerator) *TicketUseCase {
	return &TicketUseCase{ventas: ventas, generator: generator}
}

// DownloadTicket devuelve el PDF y el nombre de fichero sugerido.
func (uc *TicketUseCase) DownloadTicket(ctx context.Context, id uuid.UUID) (pdfBytes []byte, filename string, err error) {
	venta, err := uc.ventas.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateVentaPDF(ctx, venta)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("ticket_%s.pdf", venta.ID.String()[:8])
	return pdfBytes, filename, nil
}
