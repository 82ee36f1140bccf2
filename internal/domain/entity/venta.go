package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta es el agregado de una compra: cliente, líneas y total derivado.
// Una vez persistida solo cambia por borrado lógico.
type Venta struct {
	ID          uuid.UUID
	Cliente     Cliente
	Lineas      []LineaVenta
	FechaCompra time.Time
	Total       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsDeleted   bool
}

// LineaVenta referencia un producto (id + tipo) con la cantidad y el precio unitario congelado.
type LineaVenta struct {
	ID           uuid.UUID
	VentaID      uuid.UUID
	ProductoID   string
	TipoProducto string
	Cantidad     int
	Precio       decimal.Decimal
	Descripcion  string // solo lectura; lo rellena el repositorio
	CreatedAt    time.Time
	UpdatedAt    time.Time
	IsDeleted    bool
}

// Subtotal cantidad × precio unitario.
func (l LineaVenta) Subtotal() decimal.Decimal {
	return l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// CalcularTotal suma los subtotales de las líneas.
func (v *Venta) CalcularTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lineas {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Fecha trunca un instante al día (las fechas se guardan como YYYY-MM-DD).
func Fecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatoFecha es el formato ISO con el que se persisten las fechas.
const FormatoFecha = "2006-01-02"
