package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

const indent = "  "

// flexInt acepta 3, "3" o null.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// 3.0 también vale
		d, derr := decimal.NewFromString(s)
		if derr != nil || !d.IsInteger() {
			return fmt.Errorf("entero no válido: %s", s)
		}
		n = int(d.IntPart())
	}
	*f = flexInt(n)
	return nil
}

// flexDecimal acepta 3.5, "3.5", "3,5" o null.
type flexDecimal struct {
	decimal.Decimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return fmt.Errorf("decimal no válido: %s", s)
	}
	f.Decimal = d
	return nil
}

func (f flexDecimal) MarshalJSON() ([]byte, error) {
	return f.Decimal.MarshalJSON()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// readJSON decodifica ignorando claves desconocidas (comportamiento por defecto de encoding/json).
func readJSON(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// WriteProductosJSON escribe la lista de productos como array JSON.
func WriteProductosJSON(w io.Writer, productos []entity.Producto) error {
	dtos := make([]productoDTO, 0, len(productos))
	for _, p := range productos {
		d, err := toProductoDTO(p)
		if err != nil {
			return domain.NewStorageError("guardar productos json", err)
		}
		dtos = append(dtos, d)
	}
	return domain.NewStorageError("guardar productos json", writeJSON(w, dtos))
}

func ReadProductosJSON(r io.Reader) ([]entity.Producto, error) {
	var dtos []productoDTO
	if err := readJSON(r, &dtos); err != nil {
		return nil, domain.NewStorageError("cargar productos json", err)
	}
	out := make([]entity.Producto, 0, len(dtos))
	for _, d := range dtos {
		p, err := d.toProducto()
		if err != nil {
			return nil, domain.NewStorageError("cargar productos json", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func WriteClientesJSON(w io.Writer, clientes []*entity.Cliente) error {
	dtos := make([]clienteDTO, 0, len(clientes))
	for _, c := range clientes {
		dtos = append(dtos, toClienteDTO(c))
	}
	return domain.NewStorageError("guardar clientes json", writeJSON(w, dtos))
}

func ReadClientesJSON(r io.Reader) ([]*entity.Cliente, error) {
	var dtos []clienteDTO
	if err := readJSON(r, &dtos); err != nil {
		return nil, domain.NewStorageError("cargar clientes json", err)
	}
	out := make([]*entity.Cliente, 0, len(dtos))
	for _, d := range dtos {
		c, err := d.toCliente()
		if err != nil {
			return nil, domain.NewStorageError("cargar clientes json", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func WriteVentasJSON(w io.Writer, ventas []*entity.Venta) error {
	dtos := make([]ventaDTO, 0, len(ventas))
	for _, v := range ventas {
		dtos = append(dtos, toVentaDTO(v))
	}
	return domain.NewStorageError("guardar ventas json", writeJSON(w, dtos))
}

// ReadVentasJSON admite números como texto en cantidad, precio y total; lineas null se lee como vacía.
func ReadVentasJSON(r io.Reader) ([]*entity.Venta, error) {
	var dtos []ventaDTO
	if err := readJSON(r, &dtos); err != nil {
		return nil, domain.NewStorageError("cargar ventas json", err)
	}
	out := make([]*entity.Venta, 0, len(dtos))
	for _, d := range dtos {
		v, err := d.toVenta()
		if err != nil {
			return nil, domain.NewStorageError("cargar ventas json", err)
		}
		out = append(out, v)
	}
	return out, nil
}
