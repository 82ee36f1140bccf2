package http

import (
	"bytes"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dawfilms-api/internal/application/backup"
	"github.com/jhoicas/dawfilms-api/internal/application/dto"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/storage"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BackupHandler copia de seguridad, importación/exportación masiva e informe XLSX (protegido).
type BackupHandler struct {
	svc *backup.Service
}

// NewBackupHandler construye el handler.
func NewBackupHandler(svc *backup.Service) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// fichero acepta multipart (campo "file") o el cuerpo en bruto.
func fichero(c *fiber.Ctx) (io.Reader, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	// Body() reutiliza el buffer de fasthttp; se copia.
	return bytes.NewReader(append([]byte(nil), c.Body()...)), nil
}

func formato(c *fiber.Ctx) (storage.Formato, error) {
	return storage.ParseFormato(c.Query("formato", string(storage.FormatoJSON)))
}

func adjunto(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func toImportResponse(r *backup.Resultado) dto.ImportResponse {
	return dto.ImportResponse{
		Clientes: r.Clientes, Productos: r.Productos, Ventas: r.Ventas,
		Creados: r.Creados, Actualizados: r.Actualizados,
	}
}

// Export godoc
// @Summary      Descargar copia de seguridad (ZIP)
// @Tags         backup
// @Security     Bearer
// @Produce      application/zip
// @Success      200  {file}  binary
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.svc.ExportarBackup(c.UserContext(), &buf); err != nil {
		return writeError(c, err)
	}
	return adjunto(c, "application/zip", "dawfilms-backup.zip", buf.Bytes())
}

// Import godoc
// @Summary      Restaurar copia de seguridad (ZIP)
// @Tags         backup
// @Security     Bearer
// @Accept       application/zip
// @Produce      json
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	r, err := fichero(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "fichero no recibido")
	}
	res, err := h.svc.ImportarBackup(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toImportResponse(res))
}

func (h *BackupHandler) ExportProductos(c *fiber.Ctx) error {
	f, err := formato(c)
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := h.svc.ExportarProductos(c.UserContext(), &buf, f); err != nil {
		return writeError(c, err)
	}
	return adjunto(c, f.ContentType(), "productos."+string(f), buf.Bytes())
}

func (h *BackupHandler) ImportProductos(c *fiber.Ctx) error {
	f, err := formato(c)
	if err != nil {
		return writeError(c, err)
	}
	r, err := fichero(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "fichero no recibido")
	}
	res, err := h.svc.ImportarProductos(c.UserContext(), r, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toImportResponse(res))
}

func (h *BackupHandler) ExportClientes(c *fiber.Ctx) error {
	f, err := formato(c)
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := h.svc.ExportarClientes(c.UserContext(), &buf, f); err != nil {
		return writeError(c, err)
	}
	return adjunto(c, f.ContentType(), "clientes."+string(f), buf.Bytes())
}

func (h *BackupHandler) ImportClientes(c *fiber.Ctx) error {
	f, err := formato(c)
	if err != nil {
		return writeError(c, err)
	}
	r, err := fichero(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "fichero no recibido")
	}
	res, err := h.svc.ImportarClientes(c.UserContext(), r, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toImportResponse(res))
}

// InformeVentas godoc
// @Summary      Informe de ventas (XLSX)
// @Tags         ventas
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/export/ventas.xlsx [get]
func (h *BackupHandler) InformeVentas(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.svc.ExportarInformeVentas(c.UserContext(), &buf); err != nil {
		return writeError(c, err)
	}
	return adjunto(c, contentTypeXLSX, "ventas.xlsx", buf.Bytes())
}
