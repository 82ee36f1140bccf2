package entity

import "github.com/shopspring/decimal"

// Etiquetas del discriminador tipo_producto.
const (
	TipoProductoButaca      = "Butaca"
	TipoProductoComplemento = "Complemento"
)

// Producto es la categoría base de lo que se vende en el cine: una Butaca o un Complemento.
type Producto interface {
	GetID() string
	Tipo() string
	PrecioUnitario() decimal.Decimal
	Descripcion() string
	Eliminado() bool
}

var tablaTipoProducto = map[string]string{
	"BUTACA":      TipoProductoButaca,
	"COMPLEMENTO": TipoProductoComplemento,
}

// ParseTipoProducto normaliza la etiqueta de tipo de una línea de venta ("butaca", "COMPLEMENTO"...).
// false si no corresponde a ningún tipo conocido.
func ParseTipoProducto(s string) (string, bool) {
	tipo, ok := tablaTipoProducto[normalizarEnum(s)]
	return tipo, ok
}
