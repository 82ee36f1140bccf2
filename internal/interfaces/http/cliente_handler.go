package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dawfilms-api/internal/application/clientes"
	"github.com/jhoicas/dawfilms-api/internal/application/dto"
	"github.com/jhoicas/dawfilms-api/internal/domain"
)

// ClienteHandler CRUD de clientes (protegido).
type ClienteHandler struct {
	uc *clientes.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *clientes.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id de cliente no válido: %q", domain.ErrInvalidInput, c.Params("id"))
	}
	return int64(id), nil
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        incluir_eliminados  query  bool    false  "Incluir eliminados"
// @Param        dni                 query  string  false  "Buscar por DNI"
// @Success      200  {array}  dto.ClienteResponse
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	if dni := c.Query("dni"); dni != "" {
		out, err := h.uc.GetByDNI(c.UserContext(), dni)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.ToClienteResponse(out))
	}
	list, err := h.uc.GetAll(c.UserContext(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToClienteResponses(list))
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToClienteResponse(out))
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClienteRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	cliente, err := in.ToEntity()
	if err != nil {
		return writeError(c, err)
	}
	saved, err := h.uc.Save(c.UserContext(), cliente)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToClienteResponse(saved))
}

func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	cliente, err := in.ToEntity()
	if err != nil {
		return writeError(c, err)
	}
	updated, err := h.uc.Update(c.UserContext(), id, cliente)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToClienteResponse(updated))
}

func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToClienteResponse(out))
}
