package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/dawfilms-api/internal/application/dto"
	"github.com/jhoicas/dawfilms-api/internal/application/ventas"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// VentaHandler alta y consulta de ventas, ticket PDF y resumen diario (protegido).
type VentaHandler struct {
	uc     *ventas.VentaUseCase
	ticket *ventas.TicketUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.VentaUseCase, ticket *ventas.TicketUseCase) *VentaHandler {
	return &VentaHandler{uc: uc, ticket: ticket}
}

func paramUUID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id de venta no válido: %q", domain.ErrInvalidInput, c.Params("id"))
	}
	return id, nil
}

// queryFecha ?fecha=YYYY-MM-DD; ausente => hoy.
func queryFecha(c *fiber.Ctx) (time.Time, error) {
	s := c.Query("fecha")
	if s == "" {
		return entity.Fecha(time.Now()), nil
	}
	t, err := time.Parse(entity.FormatoFecha, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError("fecha", "formato esperado YYYY-MM-DD")
	}
	return t, nil
}

// Create godoc
// @Summary      Registrar venta
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVentaRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Lineas) == 0 {
		return badRequest(c, "VALIDATION", "la venta debe tener al menos una línea")
	}
	out, err := h.uc.CreateVenta(c.UserContext(), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToVentaResponse(out))
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        fecha               query  string  false  "Día (YYYY-MM-DD)"
// @Param        cliente_id          query  int     false  "Ventas de un cliente"
// @Param        incluir_eliminados  query  bool    false  "Incluir eliminadas"
// @Success      200  {array}  dto.VentaResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		list []*entity.Venta
		err  error
	)
	switch {
	case c.Query("fecha") != "":
		fecha, ferr := queryFecha(c)
		if ferr != nil {
			return writeError(c, ferr)
		}
		list, err = h.uc.GetByFecha(ctx, fecha)
	case c.QueryInt("cliente_id") > 0:
		list, err = h.uc.GetByCliente(ctx, int64(c.QueryInt("cliente_id")))
	default:
		list, err = h.uc.GetAll(ctx, listOptions(c))
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToVentaResponses(list))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "UUID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(out))
}

// Delete borrado lógico.
func (h *VentaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(out))
}

// Ticket godoc
// @Summary      Descargar ticket PDF
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "UUID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/ticket [get]
func (h *VentaHandler) Ticket(c *fiber.Ctx) error {
	id, err := paramUUID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.ticket.DownloadTicket(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return adjunto(c, "application/pdf", filename, pdf)
}

// Resumen godoc
// @Summary      Resumen de ventas de un día
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "Día (YYYY-MM-DD), por defecto hoy"
// @Success      200  {object}  dto.ResumenResponse
// @Router       /api/ventas/resumen [get]
func (h *VentaHandler) Resumen(c *fiber.Ctx) error {
	fecha, err := queryFecha(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Resumen(c.UserContext(), fecha)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToResumenResponse(out))
}
