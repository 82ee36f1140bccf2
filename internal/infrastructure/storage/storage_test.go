package storage_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/storage"
)

var dia = time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

func clientesFixture() []*entity.Cliente {
	return []*entity.Cliente{
		{ID: 1, Nombre: "Ana", Apellido: "García Núñez", FechaNacimiento: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			DNI: "12345678Z", Email: "ana@example.com", NumSocio: "S-001", CreatedAt: dia, UpdatedAt: dia},
		{ID: 7, Nombre: "Luis", Apellido: "Peña", FechaNacimiento: time.Date(1985, 12, 31, 0, 0, 0, 0, time.UTC),
			DNI: "87654321X", Email: "luis@example.com", Imagen: "luis.png", CreatedAt: dia, UpdatedAt: dia, IsDeleted: true},
	}
}

func productosFixture() []entity.Producto {
	return []entity.Producto{
		&entity.Butaca{ID: "A1", Fila: 1, Columna: 1, TipoButaca: entity.TipoButacaNormal,
			Estado: entity.EstadoButacaActiva, Ocupacion: entity.OcupacionButacaLibre, CreatedAt: dia, UpdatedAt: dia},
		&entity.Butaca{ID: "B3", Imagen: "vip.png", Fila: 2, Columna: 3, TipoButaca: entity.TipoButacaVIP,
			Estado: entity.EstadoButacaFueraServicio, Ocupacion: entity.OcupacionButacaOcupada, CreatedAt: dia, UpdatedAt: dia},
		&entity.Complemento{ID: "1", Nombre: "Palomitas", Precio: decimal.RequireFromString("3.5"), Stock: 10,
			Categoria: entity.CategoriaComida, CreatedAt: dia, UpdatedAt: dia},
		&entity.Complemento{ID: "2", Nombre: "Agua", Precio: decimal.RequireFromString("2"), Stock: 0,
			Categoria: entity.CategoriaBebida, CreatedAt: dia, UpdatedAt: dia, IsDeleted: true},
	}
}

func ventasFixture() []*entity.Venta {
	id := uuid.MustParse("6f1c2a7e-4a55-4a8e-9c3d-1b2e3f4a5b6c")
	v := &entity.Venta{
		ID: id, Cliente: *clientesFixture()[0], FechaCompra: dia, CreatedAt: dia, UpdatedAt: dia,
		Lineas: []entity.LineaVenta{
			{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), VentaID: id, ProductoID: "B3",
				TipoProducto: entity.TipoProductoButaca, Cantidad: 1, Precio: decimal.RequireFromString("8"),
				CreatedAt: dia, UpdatedAt: dia},
			{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), VentaID: id, ProductoID: "1",
				TipoProducto: entity.TipoProductoComplemento, Cantidad: 2, Precio: decimal.RequireFromString("3.5"),
				Descripcion: "Palomitas", CreatedAt: dia, UpdatedAt: dia},
		},
	}
	v.Total = v.CalcularTotal()
	return []*entity.Venta{v}
}

// ──────────────────────────────────────────────
// Round-trip
// ──────────────────────────────────────────────

func TestClientes_RoundTripEnTodosLosFormatos(t *testing.T) {
	for _, f := range []storage.Formato{storage.FormatoJSON, storage.FormatoCSV, storage.FormatoXML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, storage.WriteClientes(&buf, f, clientesFixture()))

			got, err := storage.ReadClientes(bytes.NewReader(buf.Bytes()), f)
			require.NoError(t, err)
			assert.Equal(t, clientesFixture(), got)
		})
	}
}

func TestProductos_RoundTripEnTodosLosFormatos(t *testing.T) {
	for _, f := range []storage.Formato{storage.FormatoJSON, storage.FormatoCSV, storage.FormatoXML} {
		t.Run(string(f), func(t *testing.T) {
			var primero bytes.Buffer
			require.NoError(t, storage.WriteProductos(&primero, f, productosFixture()))

			got, err := storage.ReadProductos(bytes.NewReader(primero.Bytes()), f)
			require.NoError(t, err)
			require.Len(t, got, 4)

			b, ok := got[1].(*entity.Butaca)
			require.True(t, ok)
			assert.Equal(t, "B3", b.ID)
			assert.Equal(t, entity.TipoButacaVIP, b.TipoButaca)
			assert.Equal(t, entity.EstadoButacaFueraServicio, b.Estado)
			assert.Equal(t, entity.OcupacionButacaOcupada, b.Ocupacion)

			c, ok := got[2].(*entity.Complemento)
			require.True(t, ok)
			assert.Equal(t, "Palomitas", c.Nombre)
			assert.True(t, decimal.RequireFromString("3.50").Equal(c.Precio))
			assert.Equal(t, 10, c.Stock)
			assert.True(t, got[3].Eliminado())

			var segundo bytes.Buffer
			require.NoError(t, storage.WriteProductos(&segundo, f, got))
			assert.Equal(t, primero.String(), segundo.String(), "guardar lo cargado produce el mismo fichero")
		})
	}
}

func TestVentas_RoundTripJSON(t *testing.T) {
	var primero bytes.Buffer
	require.NoError(t, storage.WriteVentasJSON(&primero, ventasFixture()))

	got, err := storage.ReadVentasJSON(bytes.NewReader(primero.Bytes()))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ventasFixture()[0].ID, got[0].ID)
	assert.Equal(t, int64(1), got[0].Cliente.ID)
	require.Len(t, got[0].Lineas, 2)
	assert.Equal(t, "B3", got[0].Lineas[0].ProductoID)
	assert.Equal(t, 2, got[0].Lineas[1].Cantidad)
	assert.True(t, decimal.RequireFromString("15").Equal(got[0].Total))

	var segundo bytes.Buffer
	require.NoError(t, storage.WriteVentasJSON(&segundo, got))
	assert.JSONEq(t, primero.String(), segundo.String())
}

// ──────────────────────────────────────────────
// JSON tolerante
// ──────────────────────────────────────────────

func TestReadVentasJSON_CoercionYClavesDesconocidas(t *testing.T) {
	in := `[{
	  "id": "6f1c2a7e-4a55-4a8e-9c3d-1b2e3f4a5b6c",
	  "cliente": {"id": 1, "nombre": "Ana", "apellido": "García", "dni": "12345678Z", "email": "a@b.es", "extra": true},
	  "lineas": [{"productoId": "1", "tipoProducto": "Complemento", "cantidad": "3", "precio": "3,50"}],
	  "fechaCompra": "2024-03-09",
	  "total": "10.5",
	  "campoNuevo": 42
	}, {
	  "id": "",
	  "cliente": {"id": 2},
	  "lineas": null,
	  "total": 0
	}]`

	got, err := storage.ReadVentasJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Lineas[0].Cantidad)
	assert.True(t, decimal.RequireFromString("3.5").Equal(got[0].Lineas[0].Precio))
	assert.True(t, decimal.RequireFromString("10.5").Equal(got[0].Total))
	assert.NotNil(t, got[1].Lineas)
	assert.Empty(t, got[1].Lineas)
	assert.Equal(t, uuid.Nil, got[1].ID)
}

func TestWriteProductosJSON_IndentadoDosEspacios(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, storage.WriteProductosJSON(&buf, productosFixture()[:1]))
	assert.Contains(t, buf.String(), "\n  {\n    \"id\": \"A1\"")
	assert.Contains(t, buf.String(), `"nombreComplemento": null`)
}

func TestReadProductosJSON_VacioNoEsError(t *testing.T) {
	got, err := storage.ReadProductosJSON(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadProductosJSON_TipoDesconocido(t *testing.T) {
	_, err := storage.ReadProductosJSON(strings.NewReader(`[{"id":"X","tipoProducto":"Entrada"}]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestReadProductosJSON_EnumTolerante(t *testing.T) {
	in := `[{"id":"C4","tipoProducto":"Butaca","filaButaca":3,"columnaButaca":4,
	  "tipoButaca":"vip","estadoButaca":"fuera de servicio","ocupacionButaca":"En reserva"}]`
	got, err := storage.ReadProductosJSON(strings.NewReader(in))
	require.NoError(t, err)
	b := got[0].(*entity.Butaca)
	assert.Equal(t, entity.TipoButacaVIP, b.TipoButaca)
	assert.Equal(t, entity.EstadoButacaFueraServicio, b.Estado)
	assert.Equal(t, entity.OcupacionButacaEnReserva, b.Ocupacion)
}

// ──────────────────────────────────────────────
// CSV y XML
// ──────────────────────────────────────────────

func TestReadClientesCSV_Latin1(t *testing.T) {
	utf := "id,nombre,apellido,dni,email\n3,José,Muñoz,11111111H,jose@example.com\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	got, err := storage.ReadClientesCSV(strings.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "José", got[0].Nombre)
	assert.Equal(t, "Muñoz", got[0].Apellido)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestReadProductosCSV_ErrorIndicaFila(t *testing.T) {
	in := "id,tipoProducto,filaButaca\nA1,Butaca,uno\n"
	_, err := storage.ReadProductosCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestWriteProductosXML_Estructura(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, storage.WriteProductosXML(&buf, productosFixture()[2:3]))
	s := buf.String()
	assert.Contains(t, s, `<productos>`)
	assert.Contains(t, s, `<producto tipo="Complemento">`)
	assert.Contains(t, s, `<nombreComplemento>Palomitas</nombreComplemento>`)
	assert.NotContains(t, s, `<filaButaca>`)
}

func TestReadClientesXML_SinRaiz(t *testing.T) {
	_, err := storage.ReadClientesXML(strings.NewReader(`<otra/>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

// ──────────────────────────────────────────────
// Formato, backup e informe
// ──────────────────────────────────────────────

func TestFormatoDesdeRuta(t *testing.T) {
	f, err := storage.FormatoDesdeRuta("/tmp/productos.CSV")
	require.NoError(t, err)
	assert.Equal(t, storage.FormatoCSV, f)

	_, err = storage.FormatoDesdeRuta("datos.txt")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestBackup_RoundTrip(t *testing.T) {
	in := &storage.Backup{Clientes: clientesFixture(), Productos: productosFixture(), Ventas: ventasFixture()}

	var buf bytes.Buffer
	require.NoError(t, storage.WriteBackup(&buf, in))

	got, err := storage.ReadBackup(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, in.Clientes, got.Clientes)
	assert.Len(t, got.Productos, 4)
	require.Len(t, got.Ventas, 1)
	assert.Equal(t, in.Ventas[0].ID, got.Ventas[0].ID)
}

func TestReadBackup_ZipIncompleto(t *testing.T) {
	_, err := storage.ReadBackup(strings.NewReader("no es un zip"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestWriteInformeVentas(t *testing.T) {
	ventas := ventasFixture()
	borrada := *ventas[0]
	borrada.ID = uuid.New()
	borrada.IsDeleted = true
	ventas = append(ventas, &borrada)

	var buf bytes.Buffer
	require.NoError(t, storage.WriteInformeVentas(&buf, ventas))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(storage.HojaVentas)
	require.NoError(t, err)
	require.Len(t, rows, 4, "cabecera + 2 líneas + total")
	assert.Equal(t, "Fecha", rows[0][0])
	assert.Equal(t, "2024-03-09", rows[1][0])
	assert.Equal(t, "Ana García Núñez", rows[1][2])
	assert.Equal(t, "Total", rows[3][7])
	assert.Equal(t, "15", rows[3][8])
}
