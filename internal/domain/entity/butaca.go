package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TipoButaca determina el precio de la butaca.
type TipoButaca string

const (
	TipoButacaNormal TipoButaca = "NORMAL"
	TipoButacaVIP    TipoButaca = "VIP"
)

var preciosButaca = map[TipoButaca]decimal.Decimal{
	TipoButacaNormal: decimal.NewFromInt(5),
	TipoButacaVIP:    decimal.NewFromInt(8),
}

// Precio devuelve el precio asociado al tipo (cero si el tipo no es válido).
func (t TipoButaca) Precio() decimal.Decimal {
	return preciosButaca[t]
}

// EstadoButaca estado físico de la butaca.
type EstadoButaca string

const (
	EstadoButacaActiva        EstadoButaca = "ACTIVA"
	EstadoButacaMantenimiento EstadoButaca = "MANTENIMIENTO"
	EstadoButacaFueraServicio EstadoButaca = "FUERASERVICIO"
)

// OcupacionButaca estado de reserva/ocupación de la butaca.
type OcupacionButaca string

const (
	OcupacionButacaLibre     OcupacionButaca = "LIBRE"
	OcupacionButacaEnReserva OcupacionButaca = "ENRESERVA"
	OcupacionButacaOcupada   OcupacionButaca = "OCUPADA"
)

// Butaca representa un asiento de la sala (posición, tipo, estado y ocupación).
type Butaca struct {
	ID         string
	Imagen     string
	Fila       int
	Columna    int
	TipoButaca TipoButaca
	Estado     EstadoButaca
	Ocupacion  OcupacionButaca
	CreatedAt  time.Time
	UpdatedAt  time.Time
	IsDeleted  bool
}

func (b *Butaca) GetID() string                   { return b.ID }
func (b *Butaca) Tipo() string                    { return TipoProductoButaca }
func (b *Butaca) PrecioUnitario() decimal.Decimal { return b.TipoButaca.Precio() }
func (b *Butaca) Eliminado() bool                 { return b.IsDeleted }

// Disponible indica si la butaca puede venderse: activa y libre.
func (b *Butaca) Disponible() bool {
	return b.Estado == EstadoButacaActiva && b.Ocupacion == OcupacionButacaLibre
}

func (b *Butaca) Descripcion() string {
	return fmt.Sprintf("Butaca %s (fila %d, columna %d)", b.ID, b.Fila, b.Columna)
}
