package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dawfilms-api/internal/application/dto"
	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// ProductoHandler CRUD de butacas y complementos (protegido).
type ProductoHandler struct {
	uc *productos.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *productos.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

func listOptions(c *fiber.Ctx) repository.ListOptions {
	return repository.ListOptions{IncluirEliminados: c.QueryBool("incluir_eliminados", false)}
}

// ── Butacas ──────────────────────────────────────────────────────────────────

// ListButacas godoc
// @Summary      Listar butacas
// @Tags         butacas
// @Security     Bearer
// @Produce      json
// @Param        incluir_eliminados  query  bool  false  "Incluir eliminadas"
// @Success      200  {array}  dto.ButacaResponse
// @Router       /api/butacas [get]
func (h *ProductoHandler) ListButacas(c *fiber.Ctx) error {
	list, err := h.uc.ListButacas(c.UserContext(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToButacaResponses(list))
}

// GetButaca godoc
// @Summary      Obtener butaca por ID
// @Tags         butacas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la butaca"
// @Success      200  {object}  dto.ButacaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/butacas/{id} [get]
func (h *ProductoHandler) GetButaca(c *fiber.Ctx) error {
	b, err := h.uc.GetButaca(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToButacaResponse(b))
}

// CreateButaca godoc
// @Summary      Crear butaca
// @Tags         butacas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ButacaRequest  true  "Datos de la butaca"
// @Success      201   {object}  dto.ButacaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/butacas [post]
func (h *ProductoHandler) CreateButaca(c *fiber.Ctx) error {
	var in dto.ButacaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	b, err := in.ToEntity()
	if err != nil {
		return writeError(c, err)
	}
	saved, err := h.uc.CreateButaca(c.UserContext(), b)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToButacaResponse(saved))
}

// UpdateButaca godoc
// @Summary      Actualizar butaca
// @Tags         butacas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la butaca"
// @Param        body  body  dto.ButacaRequest  true  "Datos de la butaca"
// @Success      200   {object}  dto.ButacaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/butacas/{id} [put]
func (h *ProductoHandler) UpdateButaca(c *fiber.Ctx) error {
	var in dto.ButacaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	b, err := in.ToEntity()
	if err != nil {
		return writeError(c, err)
	}
	updated, err := h.uc.UpdateButaca(c.UserContext(), c.Params("id"), b)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToButacaResponse(updated))
}

// DeleteButaca godoc
// @Summary      Eliminar butaca (borrado lógico)
// @Tags         butacas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la butaca"
// @Success      200  {object}  dto.ButacaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/butacas/{id} [delete]
func (h *ProductoHandler) DeleteButaca(c *fiber.Ctx) error {
	b, err := h.uc.DeleteButaca(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToButacaResponse(b))
}

// ── Complementos ─────────────────────────────────────────────────────────────

// ListComplementos godoc
// @Summary      Listar complementos
// @Tags         complementos
// @Security     Bearer
// @Produce      json
// @Param        incluir_eliminados  query  bool    false  "Incluir eliminados"
// @Param        nombre              query  string  false  "Buscar por nombre"
// @Success      200  {array}  dto.ComplementoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/complementos [get]
func (h *ProductoHandler) ListComplementos(c *fiber.Ctx) error {
	if nombre := c.Query("nombre"); nombre != "" {
		out, err := h.uc.GetComplementoByNombre(c.UserContext(), nombre)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.ToComplementoResponse(out))
	}
	list, err := h.uc.ListComplementos(c.UserContext(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToComplementoResponses(list))
}

func (h *ProductoHandler) GetComplemento(c *fiber.Ctx) error {
	out, err := h.uc.GetComplemento(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToComplementoResponse(out))
}

// CreateComplemento godoc
// @Summary      Crear complemento
// @Tags         complementos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComplementoRequest  true  "Datos del complemento"
// @Success      201   {object}  dto.ComplementoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/complementos [post]
func (h *ProductoHandler) CreateComplemento(c *fiber.Ctx) error {
	var in dto.ComplementoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	comp, err := in.ToEntity()
	if err != nil {
		return writeError(c, err)
	}
	saved, err := h.uc.CreateComplemento(c.UserContext(), comp)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToComplementoResponse(saved))
}

func (h *ProductoHandler) UpdateComplemento(c *fiber.Ctx) error {
	var in dto.ComplementoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	comp, err := in.ToEntity()
	if err != nil {
		return writeError(c, err)
	}
	updated, err := h.uc.UpdateComplemento(c.UserContext(), c.Params("id"), comp)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToComplementoResponse(updated))
}

func (h *ProductoHandler) DeleteComplemento(c *fiber.Ctx) error {
	out, err := h.uc.DeleteComplemento(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToComplementoResponse(out))
}
