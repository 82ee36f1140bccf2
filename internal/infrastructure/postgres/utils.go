package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// hoy fecha actual en el formato persistido (YYYY-MM-DD).
func hoy() string {
	return time.Now().Format(entity.FormatoFecha)
}

func formatFecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.FormatoFecha)
}

// parseFecha tolera cadenas vacías o con hora (filas antiguas) y devuelve tiempo cero si no se puede leer.
func parseFecha(s string) time.Time {
	s = strings.TrimSpace(s)
	if len(s) > len(entity.FormatoFecha) {
		s = s[:len(entity.FormatoFecha)]
	}
	t, err := time.Parse(entity.FormatoFecha, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
