package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/dawfilms-api/internal/domain"
)

var mayusculas = cases.Upper(language.Spanish)

// normalizarEnum pasa a mayúsculas, quita tildes, convierte '_' y '-' en espacios y colapsa blancos.
func normalizarEnum(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	sinTildes, _, err := transform.String(t, s)
	if err != nil {
		sinTildes = s
	}
	sinTildes = strings.NewReplacer("_", " ", "-", " ").Replace(sinTildes)
	return strings.Join(strings.Fields(mayusculas.String(sinTildes)), " ")
}

var tablaTipoButaca = map[string]TipoButaca{
	"NORMAL": TipoButacaNormal,
	"VIP":    TipoButacaVIP,
}

var tablaEstadoButaca = map[string]EstadoButaca{
	"ACTIVA":            EstadoButacaActiva,
	"MANTENIMIENTO":     EstadoButacaMantenimiento,
	"EN MANTENIMIENTO":  EstadoButacaMantenimiento,
	"FUERASERVICIO":     EstadoButacaFueraServicio,
	"FUERA SERVICIO":    EstadoButacaFueraServicio,
	"FUERA DE SERVICIO": EstadoButacaFueraServicio,
}

var tablaOcupacionButaca = map[string]OcupacionButaca{
	"LIBRE":      OcupacionButacaLibre,
	"ENRESERVA":  OcupacionButacaEnReserva,
	"EN RESERVA": OcupacionButacaEnReserva,
	"RESERVADA":  OcupacionButacaEnReserva,
	"OCUPADA":    OcupacionButacaOcupada,
}

var tablaCategoria = map[string]CategoriaComplemento{
	"COMIDA": CategoriaComida,
	"BEBIDA": CategoriaBebida,
}

func ParseTipoButaca(s string) (TipoButaca, error) {
	if v, ok := tablaTipoButaca[normalizarEnum(s)]; ok {
		return v, nil
	}
	return "", domain.NewValidationError("tipo", "tipo de butaca desconocido: "+s)
}

func ParseEstadoButaca(s string) (EstadoButaca, error) {
	if v, ok := tablaEstadoButaca[normalizarEnum(s)]; ok {
		return v, nil
	}
	return "", domain.NewValidationError("estado", "estado de butaca desconocido: "+s)
}

func ParseOcupacionButaca(s string) (OcupacionButaca, error) {
	if v, ok := tablaOcupacionButaca[normalizarEnum(s)]; ok {
		return v, nil
	}
	return "", domain.NewValidationError("ocupacion", "ocupación de butaca desconocida: "+s)
}

func ParseCategoriaComplemento(s string) (CategoriaComplemento, error) {
	if v, ok := tablaCategoria[normalizarEnum(s)]; ok {
		return v, nil
	}
	return "", domain.NewValidationError("categoria", "categoría de complemento desconocida: "+s)
}

// Valido indica si el valor pertenece al enumerado.
func (t TipoButaca) Valido() bool {
	_, ok := preciosButaca[t]
	return ok
}

func (e EstadoButaca) Valido() bool {
	return e == EstadoButacaActiva || e == EstadoButacaMantenimiento || e == EstadoButacaFueraServicio
}

func (o OcupacionButaca) Valido() bool {
	return o == OcupacionButacaLibre || o == OcupacionButacaEnReserva || o == OcupacionButacaOcupada
}

func (c CategoriaComplemento) Valido() bool {
	return c == CategoriaComida || c == CategoriaBebida
}
