package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// Formato de fichero para importación y exportación masiva.
type Formato string

const (
	FormatoJSON Formato = "json"
	FormatoCSV  Formato = "csv"
	FormatoXML  Formato = "xml"
)

// ParseFormato admite "json", "CSV", ".xml"...
func ParseFormato(s string) (Formato, error) {
	f := Formato(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatoJSON, FormatoCSV, FormatoXML:
		return f, nil
	}
	return "", domain.NewValidationError("formato", fmt.Sprintf("formato no soportado: %q", s))
}

// FormatoDesdeRuta deduce el formato por la extensión del fichero.
func FormatoDesdeRuta(ruta string) (Formato, error) {
	return ParseFormato(filepath.Ext(ruta))
}

// ContentType para las respuestas HTTP.
func (f Formato) ContentType() string {
	switch f {
	case FormatoCSV:
		return "text/csv; charset=utf-8"
	case FormatoXML:
		return "application/xml"
	default:
		return "application/json"
	}
}

func WriteProductos(w io.Writer, f Formato, productos []entity.Producto) error {
	switch f {
	case FormatoCSV:
		return WriteProductosCSV(w, productos)
	case FormatoXML:
		return WriteProductosXML(w, productos)
	default:
		return WriteProductosJSON(w, productos)
	}
}

func ReadProductos(r io.Reader, f Formato) ([]entity.Producto, error) {
	switch f {
	case FormatoCSV:
		return ReadProductosCSV(r)
	case FormatoXML:
		return ReadProductosXML(r)
	default:
		return ReadProductosJSON(r)
	}
}

func WriteClientes(w io.Writer, f Formato, clientes []*entity.Cliente) error {
	switch f {
	case FormatoCSV:
		return WriteClientesCSV(w, clientes)
	case FormatoXML:
		return WriteClientesXML(w, clientes)
	default:
		return WriteClientesJSON(w, clientes)
	}
}

func ReadClientes(r io.Reader, f Formato) ([]*entity.Cliente, error) {
	switch f {
	case FormatoCSV:
		return ReadClientesCSV(r)
	case FormatoXML:
		return ReadClientesXML(r)
	default:
		return ReadClientesJSON(r)
	}
}
