package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

func TestGenerateVentaPDF(t *testing.T) {
	id := uuid.New()
	v := &entity.Venta{
		ID:          id,
		Cliente:     entity.Cliente{ID: 1, Nombre: "Ana", Apellido: "García", DNI: "12345678Z"},
		FechaCompra: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		Lineas: []entity.LineaVenta{
			{ProductoID: "B3", TipoProducto: entity.TipoProductoButaca, Cantidad: 1, Precio: decimal.NewFromInt(8),
				Descripcion: "Butaca VIP (fila 2, columna 3)"},
			{ProductoID: "1", TipoProducto: entity.TipoProductoComplemento, Cantidad: 2, Precio: decimal.RequireFromString("3.5")},
		},
	}
	v.Total = v.CalcularTotal()

	out, err := NewMarotoTicketGenerator().GenerateVentaPDF(context.Background(), v)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateVentaPDF_SinVenta(t *testing.T) {
	_, err := NewMarotoTicketGenerator().GenerateVentaPDF(context.Background(), nil)
	assert.Error(t, err)
}

func TestFormatEuros(t *testing.T) {
	assert.Equal(t, "0,00 €", formatEuros(decimal.Zero))
	assert.Equal(t, "3,50 €", formatEuros(decimal.RequireFromString("3.5")))
	assert.Equal(t, "1.234,50 €", formatEuros(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-12,00 €", formatEuros(decimal.NewFromInt(-12)))
}

func TestFormatMiles(t *testing.T) {
	assert.Equal(t, "999", formatMiles("999"))
	assert.Equal(t, "25.000", formatMiles("25000"))
	assert.Equal(t, "1.000.000", formatMiles("1000000"))
}
