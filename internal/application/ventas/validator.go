package ventas

import (
	"context"
	"fmt"

	"github.com/jhoicas/dawfilms-api/internal/application/validators"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// Validator es el único punto donde se validan las ventas antes de persistirlas.
type Validator struct {
	clienteRepo     repository.ClienteRepository
	butacaRepo      repository.ButacaRepository
	complementoRepo repository.ComplementoRepository
}

// NewValidator construye el validador de ventas.
func NewValidator(
	clienteRepo repository.ClienteRepository,
	butacaRepo repository.ButacaRepository,
	complementoRepo repository.ComplementoRepository,
) *Validator {
	return &Validator{clienteRepo: clienteRepo, butacaRepo: butacaRepo, complementoRepo: complementoRepo}
}

// LineaResuelta línea de venta junto al producto que referencia.
type LineaResuelta struct {
	Linea    entity.LineaVenta
	Producto entity.Producto
}

// VentaValidada resultado de una validación correcta.
type VentaValidada struct {
	Cliente *entity.Cliente
	Lineas  []LineaResuelta
}

// Validate comprueba, en este orden y parando en el primer fallo:
// cliente existente, productos existentes, cantidades válidas, butacas disponibles
// y stock suficiente de complementos.
// Una butaca se vende de una en una: cantidad 1 y una sola línea por butaca.
// El stock se compara contra la suma de todas las líneas del mismo complemento.
func (v *Validator) Validate(ctx context.Context, venta *entity.Venta) (*VentaValidada, error) {
	if venta == nil {
		return nil, fmt.Errorf("%w: venta no informada", domain.ErrInvalidInput)
	}

	cliente, err := v.clienteRepo.FindByID(ctx, venta.Cliente.ID)
	if err != nil {
		return nil, fmt.Errorf("ventas: obtener cliente: %w", err)
	}
	if cliente == nil {
		return nil, domain.VentaNoValida(domain.ErrClienteNoEncontrado, "con id: %d", venta.Cliente.ID)
	}

	// Primera pasada: forma de cada línea y existencia del producto.
	resueltas := make([]LineaResuelta, 0, len(venta.Lineas))
	for i := range venta.Lineas {
		linea := venta.Lineas[i]
		if _, err := validators.ValidateLineaVenta(&linea); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrVentaNoValida, err)
		}
		tipo, ok := entity.ParseTipoProducto(linea.TipoProducto)
		if !ok {
			return nil, domain.VentaNoValida(domain.ErrProductoNoEncontrado,
				"con id: %s (tipo %q desconocido)", linea.ProductoID, linea.TipoProducto)
		}
		linea.TipoProducto = tipo
		producto, err := v.findProducto(ctx, tipo, linea.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.VentaNoValida(domain.ErrProductoNoEncontrado, "con id: %s", linea.ProductoID)
		}
		resueltas = append(resueltas, LineaResuelta{Linea: linea, Producto: producto})
	}

	// Segunda pasada: cantidades.
	butacas := make(map[string]bool)
	for _, r := range resueltas {
		if r.Linea.Cantidad <= 0 {
			return nil, domain.VentaNoValida(domain.ErrCantidadInvalida,
				"en el producto %s, debe ser mayor que 0", r.Linea.ProductoID)
		}
		if _, ok := r.Producto.(*entity.Butaca); !ok {
			continue
		}
		id := r.Producto.GetID()
		if r.Linea.Cantidad != 1 || butacas[id] {
			return nil, domain.VentaNoValida(domain.ErrCantidadInvalida,
				"en la butaca %s, solo puede venderse una vez", id)
		}
		butacas[id] = true
	}

	// Tercera pasada: butacas activas y libres.
	for _, r := range resueltas {
		if b, ok := r.Producto.(*entity.Butaca); ok && !b.Disponible() {
			return nil, butacaNoDisponible(b)
		}
	}

	// Cuarta pasada: stock de complementos.
	pedidas := make(map[string]int)
	for _, r := range resueltas {
		c, ok := r.Producto.(*entity.Complemento)
		if !ok {
			continue
		}
		pedidas[c.ID] += r.Linea.Cantidad
		if pedidas[c.ID] > c.Stock {
			return nil, &domain.StockInsuficienteError{Producto: c.Nombre, Stock: c.Stock, Cantidad: pedidas[c.ID]}
		}
	}

	return &VentaValidada{Cliente: cliente, Lineas: resueltas}, nil
}

func butacaNoDisponible(b *entity.Butaca) error {
	return domain.VentaNoValida(domain.ErrButacaNoDisponible,
		"%s: estado %s, ocupación %s", b.ID, b.Estado, b.Ocupacion)
}

// findProducto resuelve el producto en el repositorio que corresponde a su etiqueta de tipo.
func (v *Validator) findProducto(ctx context.Context, tipo, id string) (entity.Producto, error) {
	switch tipo {
	case entity.TipoProductoButaca:
		b, err := v.butacaRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("ventas: obtener butaca: %w", err)
		}
		if b == nil {
			return nil, nil
		}
		return b, nil
	case entity.TipoProductoComplemento:
		c, err := v.complementoRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("ventas: obtener complemento: %w", err)
		}
		if c == nil {
			return nil, nil
		}
		return c, nil
	default:
		return nil, nil
	}
}
