package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// VentaUseCase casos de uso de ventas: alta atómica, consultas y borrado lógico.
type VentaUseCase struct {
	validator *Validator
	txRunner  TxRunner
	ventaRepo repository.VentaRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(
	validator *Validator,
	txRunner TxRunner,
	ventaRepo repository.VentaRepository,
	log zerolog.Logger,
) *VentaUseCase {
	return &VentaUseCase{
		validator: validator,
		txRunner:  txRunner,
		ventaRepo: ventaRepo,
		log:       log.With().Str("component", "ventas").Logger(),
		now:       time.Now,
	}
}

// CreateVenta valida la venta y, si es correcta, la registra en una sola transacción:
// descuenta stock de complementos, ocupa las butacas (volviendo a comprobar que siguen libres)
// e inserta cabecera y líneas.
// Id, fecha, precios unitarios y total los fija el servicio, no el llamador.
func (uc *VentaUseCase) CreateVenta(ctx context.Context, venta *entity.Venta) (*entity.Venta, error) {
	if venta == nil {
		return nil, fmt.Errorf("%w: venta no informada", domain.ErrInvalidInput)
	}
	uc.log.Debug().Int64("cliente_id", venta.Cliente.ID).Int("lineas", len(venta.Lineas)).Msg("creando venta")

	validada, err := uc.validator.Validate(ctx, venta)
	if err != nil {
		uc.log.Debug().Err(err).Msg("venta rechazada")
		return nil, err
	}

	nueva := uc.construir(validada)

	var guardada *entity.Venta
	err = uc.txRunner.RunVentas(ctx, func(
		ventaRepo repository.VentaRepository,
		complementoRepo repository.ComplementoRepository,
		butacaRepo repository.ButacaRepository,
	) error {
		if err := descontarStock(ctx, complementoRepo, validada.Lineas); err != nil {
			return err
		}
		if err := ocuparButacas(ctx, butacaRepo, validada.Lineas); err != nil {
			return err
		}
		saved, err := ventaRepo.Save(ctx, nueva)
		if err != nil {
			return err
		}
		guardada = saved
		return nil
	})
	if err != nil {
		uc.log.Debug().Err(err).Str("venta_id", nueva.ID.String()).Msg("venta no registrada")
		return nil, err
	}

	uc.log.Debug().Str("venta_id", guardada.ID.String()).Str("total", guardada.Total.StringFixed(2)).Msg("venta registrada")
	return guardada, nil
}

func (uc *VentaUseCase) construir(v *VentaValidada) *entity.Venta {
	now := uc.now()
	venta := &entity.Venta{
		ID:          uuid.New(),
		Cliente:     *v.Cliente,
		FechaCompra: entity.Fecha(now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, r := range v.Lineas {
		venta.Lineas = append(venta.Lineas, entity.LineaVenta{
			ID:           uuid.New(),
			VentaID:      venta.ID,
			ProductoID:   r.Producto.GetID(),
			TipoProducto: r.Producto.Tipo(),
			Cantidad:     r.Linea.Cantidad,
			Precio:       r.Producto.PrecioUnitario(),
			Descripcion:  r.Producto.Descripcion(),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	venta.Total = venta.CalcularTotal()
	return venta
}

// descontarStock vuelve a comprobar el stock con la fila bloqueada y lo descuenta por complemento.
func descontarStock(ctx context.Context, repo repository.ComplementoRepository, lineas []LineaResuelta) error {
	pedidas := make(map[string]int)
	var orden []string
	for _, r := range lineas {
		if r.Producto.Tipo() != entity.TipoProductoComplemento {
			continue
		}
		id := r.Producto.GetID()
		if _, ok := pedidas[id]; !ok {
			orden = append(orden, id)
		}
		pedidas[id] += r.Linea.Cantidad
	}
	for _, id := range orden {
		c, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.VentaNoValida(domain.ErrProductoNoEncontrado, "con id: %s", id)
		}
		if pedidas[id] > c.Stock {
			return &domain.StockInsuficienteError{Producto: c.Nombre, Stock: c.Stock, Cantidad: pedidas[id]}
		}
		if _, err := repo.DescontarStock(ctx, id, pedidas[id]); err != nil {
			return err
		}
	}
	return nil
}

// ocuparButacas vuelve a comprobar cada butaca con la fila bloqueada y la marca como ocupada.
func ocuparButacas(ctx context.Context, repo repository.ButacaRepository, lineas []LineaResuelta) error {
	for _, r := range lineas {
		if r.Producto.Tipo() != entity.TipoProductoButaca {
			continue
		}
		id := r.Producto.GetID()
		b, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.VentaNoValida(domain.ErrProductoNoEncontrado, "con id: %s", id)
		}
		if !b.Disponible() {
			return butacaNoDisponible(b)
		}
		if err := repo.MarcarOcupacion(ctx, id, entity.OcupacionButacaOcupada); err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve la venta o ErrVentaNoEncontrada.
func (uc *VentaUseCase) GetByID(ctx context.Context, id uuid.UUID) (*entity.Venta, error) {
	uc.log.Debug().Str("venta_id", id.String()).Msg("obteniendo venta")
	v, err := uc.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ventas: obtener venta: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w con id: %s", domain.ErrVentaNoEncontrada, id)
	}
	return v, nil
}

// GetAll lista las ventas; las eliminadas solo si se pide.
func (uc *VentaUseCase) GetAll(ctx context.Context, opts repository.ListOptions) ([]*entity.Venta, error) {
	uc.log.Debug().Bool("incluir_eliminados", opts.IncluirEliminados).Msg("listando ventas")
	return uc.ventaRepo.FindAll(ctx, opts)
}

// GetByFecha ventas de un día concreto.
func (uc *VentaUseCase) GetByFecha(ctx context.Context, fecha time.Time) ([]*entity.Venta, error) {
	uc.log.Debug().Time("fecha", fecha).Msg("listando ventas por fecha")
	return uc.ventaRepo.FindByFecha(ctx, entity.Fecha(fecha))
}

// GetByCliente ventas de un cliente.
func (uc *VentaUseCase) GetByCliente(ctx context.Context, clienteID int64) ([]*entity.Venta, error) {
	uc.log.Debug().Int64("cliente_id", clienteID).Msg("listando ventas por cliente")
	return uc.ventaRepo.FindByCliente(ctx, clienteID)
}

// Delete borrado lógico; repetirlo devuelve la misma venta marcada.
func (uc *VentaUseCase) Delete(ctx context.Context, id uuid.UUID) (*entity.Venta, error) {
	uc.log.Debug().Str("venta_id", id.String()).Msg("eliminando venta")
	v, err := uc.ventaRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ventas: eliminar venta: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: venta con id: %s", domain.ErrNotDeleted, id)
	}
	return v, nil
}

// ResumenDiario recuento y recaudación de un día.
type ResumenDiario struct {
	Fecha        time.Time
	NumVentas    int
	Butacas      int
	Complementos int
	Recaudacion  decimal.Decimal
}

// Resumen agrega las ventas no eliminadas del día.
func (uc *VentaUseCase) Resumen(ctx context.Context, fecha time.Time) (*ResumenDiario, error) {
	list, err := uc.GetByFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	res := &ResumenDiario{Fecha: entity.Fecha(fecha), Recaudacion: decimal.Zero}
	for _, v := range list {
		res.NumVentas++
		res.Recaudacion = res.Recaudacion.Add(v.Total)
		for _, l := range v.Lineas {
			switch l.TipoProducto {
			case entity.TipoProductoButaca:
				res.Butacas += l.Cantidad
			case entity.TipoProductoComplemento:
				res.Complementos += l.Cantidad
			}
		}
	}
	return res, nil
}
