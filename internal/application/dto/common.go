package dto

import (
	"time"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResponse recuento de una importación o restauración.
type ImportResponse struct {
	Clientes     int `json:"clientes"`
	Productos    int `json:"productos"`
	Ventas       int `json:"ventas"`
	Creados      int `json:"creados"`
	Actualizados int `json:"actualizados"`
}

// FormatFecha YYYY-MM-DD; cero => "".
func FormatFecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.FormatoFecha)
}

// ParseFecha YYYY-MM-DD; "" => tiempo cero.
func ParseFecha(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(entity.FormatoFecha, s)
}
