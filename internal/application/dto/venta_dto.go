package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dawfilms-api/internal/application/ventas"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// CreateVentaRequest cliente y líneas; precio, fecha y total los fija el servidor.
type CreateVentaRequest struct {
	ClienteID int64               `json:"clienteId"`
	Lineas    []LineaVentaRequest `json:"lineas"`
}

type LineaVentaRequest struct {
	ProductoID   string `json:"productoId"`
	TipoProducto string `json:"tipoProducto"`
	Cantidad     int    `json:"cantidad"`
}

func (r CreateVentaRequest) ToEntity() *entity.Venta {
	v := &entity.Venta{Cliente: entity.Cliente{ID: r.ClienteID}}
	for _, l := range r.Lineas {
		v.Lineas = append(v.Lineas, entity.LineaVenta{
			ProductoID: l.ProductoID, TipoProducto: l.TipoProducto, Cantidad: l.Cantidad,
		})
	}
	return v
}

type LineaVentaResponse struct {
	ID           string          `json:"id"`
	ProductoID   string          `json:"productoId"`
	TipoProducto string          `json:"tipoProducto"`
	Descripcion  string          `json:"descripcion"`
	Cantidad     int             `json:"cantidad"`
	Precio       decimal.Decimal `json:"precio"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID          string               `json:"id"`
	Cliente     ClienteResponse      `json:"cliente"`
	Lineas      []LineaVentaResponse `json:"lineas"`
	FechaCompra string               `json:"fechaCompra"`
	Total       decimal.Decimal      `json:"total"`
	IsDeleted   bool                 `json:"isDeleted"`
}

func ToVentaResponse(v *entity.Venta) VentaResponse {
	lineas := make([]LineaVentaResponse, 0, len(v.Lineas))
	for _, l := range v.Lineas {
		lineas = append(lineas, LineaVentaResponse{
			ID: l.ID.String(), ProductoID: l.ProductoID, TipoProducto: l.TipoProducto, Descripcion: l.Descripcion,
			Cantidad: l.Cantidad, Precio: l.Precio, Subtotal: l.Subtotal(),
		})
	}
	return VentaResponse{
		ID: v.ID.String(), Cliente: ToClienteResponse(&v.Cliente), Lineas: lineas,
		FechaCompra: FormatFecha(v.FechaCompra), Total: v.Total, IsDeleted: v.IsDeleted,
	}
}

func ToVentaResponses(list []*entity.Venta) []VentaResponse {
	out := make([]VentaResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToVentaResponse(v))
	}
	return out
}

// ResumenResponse recaudación y unidades vendidas en un día.
type ResumenResponse struct {
	Fecha        string          `json:"fecha"`
	NumVentas    int             `json:"numVentas"`
	Butacas      int             `json:"butacas"`
	Complementos int             `json:"complementos"`
	Recaudacion  decimal.Decimal `json:"recaudacion"`
}

func ToResumenResponse(r *ventas.ResumenDiario) ResumenResponse {
	return ResumenResponse{
		Fecha: FormatFecha(r.Fecha), NumVentas: r.NumVentas, Butacas: r.Butacas,
		Complementos: r.Complementos, Recaudacion: r.Recaudacion,
	}
}
