package validators

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	// decimal.Decimal se valida como número (min, gte, gt...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// El nombre del campo en los errores es el de la etiqueta json.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return DNIValido(fl.Field().String())
	})
	_ = v.RegisterValidation("nofutura", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.After(time.Now())
	})

	// Enumerados del dominio: el valor ya normalizado debe ser uno de los conocidos.
	_ = v.RegisterValidation("tipobutaca", func(fl validator.FieldLevel) bool {
		return entity.TipoButaca(fl.Field().String()).Valido()
	})
	_ = v.RegisterValidation("estadobutaca", func(fl validator.FieldLevel) bool {
		return entity.EstadoButaca(fl.Field().String()).Valido()
	})
	_ = v.RegisterValidation("ocupacionbutaca", func(fl validator.FieldLevel) bool {
		return entity.OcupacionButaca(fl.Field().String()).Valido()
	})
	_ = v.RegisterValidation("categoria", func(fl validator.FieldLevel) bool {
		return entity.CategoriaComplemento(fl.Field().String()).Valido()
	})
	return v
}

const letrasDNI = "TRWAGMYFPDXBNJZSQVHLCKE"

// DNIValido comprueba 8 dígitos y la letra de control.
func DNIValido(dni string) bool {
	dni = strings.ToUpper(strings.TrimSpace(dni))
	if len(dni) != 9 {
		return false
	}
	n := 0
	for _, r := range dni[:8] {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return dni[8] == letrasDNI[n%23]
}

var mensajes = map[string]string{
	"notblank": "no puede estar vacío",
	"required": "es obligatorio",
	"gte":      "no puede ser negativo",
	"gt":       "debe ser mayor que 0",
	"email":    "no es un email válido",
	"dni":      "no es un DNI válido",
	"nofutura": "no puede ser una fecha futura",

	"tipobutaca":      "valor no permitido",
	"estadobutaca":    "valor no permitido",
	"ocupacionbutaca": "valor no permitido",
	"categoria":       "valor no permitido",
}

// check ejecuta el validador sobre la vista y traduce el primer fallo a *domain.ValidationError.
func check(entidad string, view any) error {
	err := validate.Struct(view)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError(entidad, err.Error())
	}
	fe := verrs[0]
	msg, ok := mensajes[fe.Tag()]
	if !ok {
		msg = "no es válido (" + fe.Tag() + ")"
	}
	return domain.NewValidationError(fe.Field(), msg)
}

type butacaView struct {
	ID        string `json:"id" validate:"notblank"`
	Fila      int    `json:"fila" validate:"gte=0"`
	Columna   int    `json:"columna" validate:"gte=0"`
	Tipo      string `json:"tipo" validate:"tipobutaca"`
	Estado    string `json:"estado" validate:"estadobutaca"`
	Ocupacion string `json:"ocupacion" validate:"ocupacionbutaca"`
}

// ValidateButaca id no vacío, posición no negativa y enumerados conocidos.
func ValidateButaca(b *entity.Butaca) (*entity.Butaca, error) {
	if b == nil {
		return nil, domain.NewValidationError("butaca", "no informada")
	}
	err := check("butaca", butacaView{
		ID: b.ID, Fila: b.Fila, Columna: b.Columna,
		Tipo: string(b.TipoButaca), Estado: string(b.Estado), Ocupacion: string(b.Ocupacion),
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

type complementoView struct {
	ID        string          `json:"id" validate:"notblank"`
	Nombre    string          `json:"nombre" validate:"notblank"`
	Precio    decimal.Decimal `json:"precio" validate:"gte=0"`
	Stock     int             `json:"stock" validate:"gte=0"`
	Categoria string          `json:"categoria" validate:"categoria"`
}

// ValidateComplemento id y nombre no vacíos, precio y stock no negativos, categoría conocida.
func ValidateComplemento(c *entity.Complemento) (*entity.Complemento, error) {
	if c == nil {
		return nil, domain.NewValidationError("complemento", "no informado")
	}
	err := check("complemento", complementoView{
		ID: c.ID, Nombre: c.Nombre, Precio: c.Precio, Stock: c.Stock, Categoria: string(c.Categoria),
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

type clienteView struct {
	Nombre          string    `json:"nombre" validate:"notblank"`
	Apellido        string    `json:"apellido" validate:"notblank"`
	DNI             string    `json:"dni" validate:"dni"`
	Email           string    `json:"email" validate:"required,email"`
	FechaNacimiento time.Time `json:"fechaNacimiento" validate:"nofutura"`
}

// ValidateCliente nombre y apellido no vacíos, DNI con letra correcta, email válido.
func ValidateCliente(c *entity.Cliente) (*entity.Cliente, error) {
	if c == nil {
		return nil, domain.NewValidationError("cliente", "no informado")
	}
	err := check("cliente", clienteView{
		Nombre: c.Nombre, Apellido: c.Apellido, DNI: c.DNI, Email: c.Email, FechaNacimiento: c.FechaNacimiento,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

type lineaVentaView struct {
	ProductoID   string `json:"productoId" validate:"notblank"`
	TipoProducto string `json:"tipoProducto" validate:"notblank"`
}

// ValidateLineaVenta comprueba la forma de la línea (referencia al producto).
// Una etiqueta de tipo desconocida no es un error de forma: el servicio de ventas
// la trata como producto inexistente. La cantidad la valida el servicio junto con el stock.
func ValidateLineaVenta(l *entity.LineaVenta) (*entity.LineaVenta, error) {
	if l == nil {
		return nil, domain.NewValidationError("lineaVenta", "no informada")
	}
	if err := check("línea de venta", lineaVentaView{ProductoID: l.ProductoID, TipoProducto: l.TipoProducto}); err != nil {
		return nil, err
	}
	return l, nil
}
