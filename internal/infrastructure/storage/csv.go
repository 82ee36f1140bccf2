package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

var cabeceraProductos = []string{
	"id", "tipoProducto", "imagen",
	"filaButaca", "columnaButaca", "tipoButaca", "estadoButaca", "ocupacionButaca",
	"nombreComplemento", "precioComplemento", "categoriaComplemento", "stockComplemento",
	"createdAt", "updatedAt", "isDeleted",
}

var cabeceraClientes = []string{
	"id", "nombre", "apellido", "fechaNacimiento", "dni", "email", "numSocio", "imagen",
	"createdAt", "updatedAt", "isDeleted",
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// decodificar devuelve el contenido en UTF-8; si no lo es se asume ISO-8859-1.
func decodificar(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, bom)
	if utf8.Valid(data) {
		return bytes.NewReader(data), nil
	}
	utf, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(utf), nil
}

// leerCSV devuelve las filas como mapas cabecera -> valor.
func leerCSV(r io.Reader) ([]map[string]string, error) {
	src, err := decodificar(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	cab, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range cab {
		cab[i] = strings.TrimSpace(cab[i])
	}

	var filas []map[string]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return filas, nil
		}
		if err != nil {
			return nil, err
		}
		fila := make(map[string]string, len(cab))
		for i, k := range cab {
			if i < len(rec) {
				fila[k] = strings.TrimSpace(rec[i])
			}
		}
		filas = append(filas, fila)
	}
}

func escribirCSV(w io.Writer, cabecera []string, filas [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cabecera); err != nil {
		return err
	}
	if err := cw.WriteAll(filas); err != nil {
		return err
	}
	return cw.Error()
}

func itoaPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optInt(fila map[string]string, k string) (*int, error) {
	s := fila[k]
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s: entero no válido %q", k, s)
	}
	return &n, nil
}

func optString(fila map[string]string, k string) *string {
	if s, ok := fila[k]; ok && s != "" {
		return &s
	}
	return nil
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func filaProducto(p entity.Producto) ([]string, error) {
	d, err := toProductoDTO(p)
	if err != nil {
		return nil, err
	}
	precio := ""
	if d.PrecioComplemento != nil {
		precio = d.PrecioComplemento.String()
	}
	return []string{
		d.ID, d.TipoProducto, d.Imagen,
		itoaPtr(d.FilaButaca), itoaPtr(d.ColumnaButaca), strPtr(d.TipoButaca), strPtr(d.EstadoButaca), strPtr(d.OcupacionButaca),
		strPtr(d.NombreComplemento), precio, strPtr(d.CategoriaComplemento), itoaPtr(d.StockComplemento),
		d.CreatedAt, d.UpdatedAt, strconv.FormatBool(d.IsDeleted),
	}, nil
}

func WriteProductosCSV(w io.Writer, productos []entity.Producto) error {
	filas := make([][]string, 0, len(productos))
	for _, p := range productos {
		fila, err := filaProducto(p)
		if err != nil {
			return domain.NewStorageError("guardar productos csv", err)
		}
		filas = append(filas, fila)
	}
	return domain.NewStorageError("guardar productos csv", escribirCSV(w, cabeceraProductos, filas))
}

func ReadProductosCSV(r io.Reader) ([]entity.Producto, error) {
	filas, err := leerCSV(r)
	if err != nil {
		return nil, domain.NewStorageError("cargar productos csv", err)
	}
	out := make([]entity.Producto, 0, len(filas))
	for n, fila := range filas {
		p, err := productoDesdeFila(fila)
		if err != nil {
			return nil, domain.NewStorageError("cargar productos csv", fmt.Errorf("fila %d: %w", n+2, err))
		}
		out = append(out, p)
	}
	return out, nil
}

func productoDesdeFila(fila map[string]string) (entity.Producto, error) {
	d := productoDTO{
		ID:                   fila["id"],
		TipoProducto:         fila["tipoProducto"],
		Imagen:               fila["imagen"],
		TipoButaca:           optString(fila, "tipoButaca"),
		EstadoButaca:         optString(fila, "estadoButaca"),
		OcupacionButaca:      optString(fila, "ocupacionButaca"),
		NombreComplemento:    optString(fila, "nombreComplemento"),
		CategoriaComplemento: optString(fila, "categoriaComplemento"),
		CreatedAt:            fila["createdAt"],
		UpdatedAt:            fila["updatedAt"],
		IsDeleted:            parseBool(fila["isDeleted"]),
	}
	var err error
	if d.FilaButaca, err = optInt(fila, "filaButaca"); err != nil {
		return nil, err
	}
	if d.ColumnaButaca, err = optInt(fila, "columnaButaca"); err != nil {
		return nil, err
	}
	if d.StockComplemento, err = optInt(fila, "stockComplemento"); err != nil {
		return nil, err
	}
	if s := fila["precioComplemento"]; s != "" {
		precio, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
		if err != nil {
			return nil, fmt.Errorf("precioComplemento: decimal no válido %q", s)
		}
		d.PrecioComplemento = &precio
	}
	return d.toProducto()
}

func filaCliente(c *entity.Cliente) []string {
	d := toClienteDTO(c)
	return []string{
		strconv.FormatInt(d.ID, 10), d.Nombre, d.Apellido, d.FechaNacimiento, d.DNI, d.Email, d.NumSocio, d.Imagen,
		d.CreatedAt, d.UpdatedAt, strconv.FormatBool(d.IsDeleted),
	}
}

func WriteClientesCSV(w io.Writer, clientes []*entity.Cliente) error {
	filas := make([][]string, 0, len(clientes))
	for _, c := range clientes {
		filas = append(filas, filaCliente(c))
	}
	return domain.NewStorageError("guardar clientes csv", escribirCSV(w, cabeceraClientes, filas))
}

func ReadClientesCSV(r io.Reader) ([]*entity.Cliente, error) {
	filas, err := leerCSV(r)
	if err != nil {
		return nil, domain.NewStorageError("cargar clientes csv", err)
	}
	out := make([]*entity.Cliente, 0, len(filas))
	for n, fila := range filas {
		c, err := clienteDesdeFila(fila)
		if err != nil {
			return nil, domain.NewStorageError("cargar clientes csv", fmt.Errorf("fila %d: %w", n+2, err))
		}
		out = append(out, c)
	}
	return out, nil
}

func clienteDesdeFila(fila map[string]string) (*entity.Cliente, error) {
	var id int64
	if s := fila["id"]; s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("id no válido %q", s)
		}
		id = n
	}
	return clienteDTO{
		ID: id, Nombre: fila["nombre"], Apellido: fila["apellido"], FechaNacimiento: fila["fechaNacimiento"],
		DNI: fila["dni"], Email: fila["email"], NumSocio: fila["numSocio"], Imagen: fila["imagen"],
		CreatedAt: fila["createdAt"], UpdatedAt: fila["updatedAt"], IsDeleted: parseBool(fila["isDeleted"]),
	}.toCliente()
}
