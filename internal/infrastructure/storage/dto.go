package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// productoDTO forma plana común a butacas y complementos en ficheros (JSON, CSV y XML).
// Los campos que no aplican al tipo quedan a nil.
type productoDTO struct {
	ID                   string           `json:"id"`
	TipoProducto         string           `json:"tipoProducto"`
	Imagen               string           `json:"imagen"`
	FilaButaca           *int             `json:"filaButaca"`
	ColumnaButaca        *int             `json:"columnaButaca"`
	TipoButaca           *string          `json:"tipoButaca"`
	EstadoButaca         *string          `json:"estadoButaca"`
	OcupacionButaca      *string          `json:"ocupacionButaca"`
	NombreComplemento    *string          `json:"nombreComplemento"`
	PrecioComplemento    *decimal.Decimal `json:"precioComplemento"`
	CategoriaComplemento *string          `json:"categoriaComplemento"`
	StockComplemento     *int             `json:"stockComplemento"`
	CreatedAt            string           `json:"createdAt"`
	UpdatedAt            string           `json:"updatedAt"`
	IsDeleted            bool             `json:"isDeleted"`
}

type clienteDTO struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	FechaNacimiento string `json:"fechaNacimiento"`
	DNI             string `json:"dni"`
	Email           string `json:"email"`
	NumSocio        string `json:"numSocio"`
	Imagen          string `json:"imagen"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	IsDeleted       bool   `json:"isDeleted"`
}

type lineaVentaDTO struct {
	ID           string      `json:"id"`
	VentaID      string      `json:"ventaId"`
	ProductoID   string      `json:"productoId"`
	TipoProducto string      `json:"tipoProducto"`
	Cantidad     flexInt     `json:"cantidad"`
	Precio       flexDecimal `json:"precio"`
	Descripcion  string      `json:"descripcion,omitempty"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
	IsDeleted    bool        `json:"isDeleted"`
}

type ventaDTO struct {
	ID          string          `json:"id"`
	Cliente     clienteDTO      `json:"cliente"`
	Lineas      []lineaVentaDTO `json:"lineas"`
	FechaCompra string          `json:"fechaCompra"`
	Total       flexDecimal     `json:"total"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	IsDeleted   bool            `json:"isDeleted"`
}

func fecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.FormatoFecha)
}

// parseFecha vacío => tiempo cero.
func parseFecha(campo, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(entity.FormatoFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: fecha no válida %q", campo, s)
	}
	return t, nil
}

func ptr[T any](v T) *T { return &v }

func toProductoDTO(p entity.Producto) (productoDTO, error) {
	switch v := p.(type) {
	case *entity.Butaca:
		return productoDTO{
			ID:              v.ID,
			TipoProducto:    entity.TipoProductoButaca,
			Imagen:          v.Imagen,
			FilaButaca:      ptr(v.Fila),
			ColumnaButaca:   ptr(v.Columna),
			TipoButaca:      ptr(string(v.TipoButaca)),
			EstadoButaca:    ptr(string(v.Estado)),
			OcupacionButaca: ptr(string(v.Ocupacion)),
			CreatedAt:       fecha(v.CreatedAt),
			UpdatedAt:       fecha(v.UpdatedAt),
			IsDeleted:       v.IsDeleted,
		}, nil
	case *entity.Complemento:
		return productoDTO{
			ID:                   v.ID,
			TipoProducto:         entity.TipoProductoComplemento,
			Imagen:               v.Imagen,
			NombreComplemento:    ptr(v.Nombre),
			PrecioComplemento:    ptr(v.Precio),
			CategoriaComplemento: ptr(string(v.Categoria)),
			StockComplemento:     ptr(v.Stock),
			CreatedAt:            fecha(v.CreatedAt),
			UpdatedAt:            fecha(v.UpdatedAt),
			IsDeleted:            v.IsDeleted,
		}, nil
	default:
		return productoDTO{}, fmt.Errorf("tipo de producto no soportado: %T", p)
	}
}

func (d productoDTO) toProducto() (entity.Producto, error) {
	createdAt, err := parseFecha("createdAt", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseFecha("updatedAt", d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	switch d.TipoProducto {
	case entity.TipoProductoButaca:
		if d.FilaButaca == nil || d.ColumnaButaca == nil || d.TipoButaca == nil || d.EstadoButaca == nil || d.OcupacionButaca == nil {
			return nil, fmt.Errorf("butaca %s: faltan campos", d.ID)
		}
		tipo, err := entity.ParseTipoButaca(*d.TipoButaca)
		if err != nil {
			return nil, err
		}
		estado, err := entity.ParseEstadoButaca(*d.EstadoButaca)
		if err != nil {
			return nil, err
		}
		ocupacion, err := entity.ParseOcupacionButaca(*d.OcupacionButaca)
		if err != nil {
			return nil, err
		}
		return &entity.Butaca{
			ID: d.ID, Imagen: d.Imagen, Fila: *d.FilaButaca, Columna: *d.ColumnaButaca,
			TipoButaca: tipo, Estado: estado, Ocupacion: ocupacion,
			CreatedAt: createdAt, UpdatedAt: updatedAt, IsDeleted: d.IsDeleted,
		}, nil
	case entity.TipoProductoComplemento:
		if d.NombreComplemento == nil || d.PrecioComplemento == nil || d.CategoriaComplemento == nil || d.StockComplemento == nil {
			return nil, fmt.Errorf("complemento %s: faltan campos", d.ID)
		}
		categoria, err := entity.ParseCategoriaComplemento(*d.CategoriaComplemento)
		if err != nil {
			return nil, err
		}
		return &entity.Complemento{
			ID: d.ID, Imagen: d.Imagen, Nombre: *d.NombreComplemento, Precio: *d.PrecioComplemento,
			Stock: *d.StockComplemento, Categoria: categoria,
			CreatedAt: createdAt, UpdatedAt: updatedAt, IsDeleted: d.IsDeleted,
		}, nil
	default:
		return nil, fmt.Errorf("tipo de producto no soportado: %q", d.TipoProducto)
	}
}

func toClienteDTO(c *entity.Cliente) clienteDTO {
	return clienteDTO{
		ID: c.ID, Nombre: c.Nombre, Apellido: c.Apellido, FechaNacimiento: fecha(c.FechaNacimiento),
		DNI: c.DNI, Email: c.Email, NumSocio: c.NumSocio, Imagen: c.Imagen,
		CreatedAt: fecha(c.CreatedAt), UpdatedAt: fecha(c.UpdatedAt), IsDeleted: c.IsDeleted,
	}
}

func (d clienteDTO) toCliente() (*entity.Cliente, error) {
	nacimiento, err := parseFecha("fechaNacimiento", d.FechaNacimiento)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseFecha("createdAt", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseFecha("updatedAt", d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Cliente{
		ID: d.ID, Nombre: d.Nombre, Apellido: d.Apellido, FechaNacimiento: nacimiento,
		DNI: d.DNI, Email: d.Email, NumSocio: d.NumSocio, Imagen: d.Imagen,
		CreatedAt: createdAt, UpdatedAt: updatedAt, IsDeleted: d.IsDeleted,
	}, nil
}

func toVentaDTO(v *entity.Venta) ventaDTO {
	lineas := make([]lineaVentaDTO, 0, len(v.Lineas))
	for _, l := range v.Lineas {
		lineas = append(lineas, lineaVentaDTO{
			ID: l.ID.String(), VentaID: v.ID.String(), ProductoID: l.ProductoID, TipoProducto: l.TipoProducto,
			Cantidad: flexInt(l.Cantidad), Precio: flexDecimal{l.Precio}, Descripcion: l.Descripcion,
			CreatedAt: fecha(l.CreatedAt), UpdatedAt: fecha(l.UpdatedAt), IsDeleted: l.IsDeleted,
		})
	}
	return ventaDTO{
		ID: v.ID.String(), Cliente: toClienteDTO(&v.Cliente), Lineas: lineas,
		FechaCompra: fecha(v.FechaCompra), Total: flexDecimal{v.Total},
		CreatedAt: fecha(v.CreatedAt), UpdatedAt: fecha(v.UpdatedAt), IsDeleted: v.IsDeleted,
	}
}

func parseUUID(campo, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: uuid no válido %q", campo, s)
	}
	return id, nil
}

func (d ventaDTO) toVenta() (*entity.Venta, error) {
	id, err := parseUUID("id", d.ID)
	if err != nil {
		return nil, err
	}
	cliente, err := d.Cliente.toCliente()
	if err != nil {
		return nil, err
	}
	fechaCompra, err := parseFecha("fechaCompra", d.FechaCompra)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseFecha("createdAt", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseFecha("updatedAt", d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	v := &entity.Venta{
		ID: id, Cliente: *cliente, FechaCompra: fechaCompra, Total: d.Total.Decimal,
		CreatedAt: createdAt, UpdatedAt: updatedAt, IsDeleted: d.IsDeleted,
		Lineas: make([]entity.LineaVenta, 0, len(d.Lineas)),
	}
	for _, ld := range d.Lineas {
		lineaID, err := parseUUID("lineas.id", ld.ID)
		if err != nil {
			return nil, err
		}
		lc, err := parseFecha("lineas.createdAt", ld.CreatedAt)
		if err != nil {
			return nil, err
		}
		lu, err := parseFecha("lineas.updatedAt", ld.UpdatedAt)
		if err != nil {
			return nil, err
		}
		v.Lineas = append(v.Lineas, entity.LineaVenta{
			ID: lineaID, VentaID: id, ProductoID: ld.ProductoID, TipoProducto: ld.TipoProducto,
			Cantidad: int(ld.Cantidad), Precio: ld.Precio.Decimal, Descripcion: ld.Descripcion,
			CreatedAt: lc, UpdatedAt: lu, IsDeleted: ld.IsDeleted,
		})
	}
	return v, nil
}
