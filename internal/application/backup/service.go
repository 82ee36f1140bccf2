package backup

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dawfilms-api/internal/application/clientes"
	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	"github.com/jhoicas/dawfilms-api/internal/application/validators"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/storage"
)

// Resultado recuento de una importación o restauración.
type Resultado struct {
	Clientes     int
	Productos    int
	Ventas       int
	Creados      int
	Actualizados int
}

// Service copias de seguridad, importación/exportación masiva e informe de ventas.
type Service struct {
	productos   *productos.ProductoUseCase
	clienteRepo repository.ClienteRepository
	ventaRepo   repository.VentaRepository
	cache       clientes.ClienteCache
	txRunner    TxRunner
	log         zerolog.Logger
}

// NewService construye el servicio.
func NewService(
	productoUC *productos.ProductoUseCase,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
	cache clientes.ClienteCache,
	txRunner TxRunner,
	log zerolog.Logger,
) *Service {
	return &Service{
		productos:   productoUC,
		clienteRepo: clienteRepo,
		ventaRepo:   ventaRepo,
		cache:       cache,
		txRunner:    txRunner,
		log:         log.With().Str("component", "backup").Logger(),
	}
}

var todos = repository.ListOptions{IncluirEliminados: true}

// ExportarBackup escribe el ZIP con clientes, productos y ventas (incluidos los eliminados).
func (s *Service) ExportarBackup(ctx context.Context, w io.Writer) error {
	s.log.Debug().Msg("exportando copia de seguridad")
	b := &storage.Backup{}
	var err error
	if b.Clientes, err = s.clienteRepo.FindAll(ctx, todos); err != nil {
		return fmt.Errorf("backup: clientes: %w", err)
	}
	if b.Productos, err = s.productos.ExportarProductos(ctx); err != nil {
		return fmt.Errorf("backup: productos: %w", err)
	}
	if b.Ventas, err = s.ventaRepo.FindAll(ctx, todos); err != nil {
		return fmt.Errorf("backup: ventas: %w", err)
	}
	if err := storage.WriteBackup(w, b); err != nil {
		return err
	}
	s.log.Info().Int("clientes", len(b.Clientes)).Int("productos", len(b.Productos)).Int("ventas", len(b.Ventas)).
		Msg("copia de seguridad exportada")
	return nil
}

// ImportarBackup sustituye todo el contenido de la base por el del ZIP en una única transacción.
// Si el fichero no es coherente no se toca nada.
func (s *Service) ImportarBackup(ctx context.Context, r io.Reader) (*Resultado, error) {
	s.log.Debug().Msg("importando copia de seguridad")
	b, err := storage.ReadBackup(r)
	if err != nil {
		return nil, err
	}
	if err := comprobarBackup(b); err != nil {
		return nil, err
	}

	err = s.txRunner.RunRestore(ctx, func(
		clienteRepo repository.ClienteRepository,
		butacaRepo repository.ButacaRepository,
		complementoRepo repository.ComplementoRepository,
		ventaRepo repository.VentaRepository,
	) error {
		if err := ventaRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := butacaRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := complementoRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := clienteRepo.DeleteAll(ctx); err != nil {
			return err
		}

		for _, c := range b.Clientes {
			if _, err := clienteRepo.Save(ctx, c); err != nil {
				return fmt.Errorf("restaurar cliente %d: %w", c.ID, err)
			}
		}
		for _, p := range b.Productos {
			var err error
			switch v := p.(type) {
			case *entity.Butaca:
				_, err = butacaRepo.Save(ctx, v)
			case *entity.Complemento:
				_, err = complementoRepo.Save(ctx, v)
			}
			if err != nil {
				return fmt.Errorf("restaurar producto %s: %w", p.GetID(), err)
			}
		}
		for _, v := range b.Ventas {
			if _, err := ventaRepo.Save(ctx, v); err != nil {
				return fmt.Errorf("restaurar venta %s: %w", v.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("restauración fallida")
		return nil, err
	}

	s.limpiarCache(ctx)
	res := &Resultado{Clientes: len(b.Clientes), Productos: len(b.Productos), Ventas: len(b.Ventas)}
	s.log.Info().Int("clientes", res.Clientes).Int("productos", res.Productos).Int("ventas", res.Ventas).
		Msg("copia de seguridad restaurada")
	return res, nil
}

// comprobarBackup valida clientes y productos y que cada venta apunte a un cliente y productos del propio fichero.
func comprobarBackup(b *storage.Backup) error {
	ids := make(map[int64]bool, len(b.Clientes))
	for _, c := range b.Clientes {
		if _, err := validators.ValidateCliente(c); err != nil {
			return fmt.Errorf("cliente %d: %w", c.ID, err)
		}
		if c.ID <= 0 {
			return fmt.Errorf("%w: cliente sin id en la copia", domain.ErrInvalidInput)
		}
		ids[c.ID] = true
	}
	productosPorID := make(map[string]string, len(b.Productos))
	for _, p := range b.Productos {
		if err := productos.ValidarProducto(p); err != nil {
			return fmt.Errorf("producto %s: %w", p.GetID(), err)
		}
		productosPorID[p.GetID()] = p.Tipo()
	}
	for _, v := range b.Ventas {
		if !ids[v.Cliente.ID] {
			return domain.VentaNoValida(domain.ErrClienteNoEncontrado, "con id: %d", v.Cliente.ID)
		}
		for _, l := range v.Lineas {
			tipo, _ := entity.ParseTipoProducto(l.TipoProducto)
			if productosPorID[l.ProductoID] != tipo {
				return domain.VentaNoValida(domain.ErrProductoNoEncontrado, "con id: %s", l.ProductoID)
			}
		}
	}
	return nil
}

func (s *Service) limpiarCache(ctx context.Context) {
	if err := s.cache.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo vaciar la caché de clientes")
	}
}

// ── Importación / exportación por formato ────────────────────────────────────

// ExportarProductos escribe butacas y complementos en el formato pedido.
func (s *Service) ExportarProductos(ctx context.Context, w io.Writer, f storage.Formato) error {
	s.log.Debug().Str("formato", string(f)).Msg("exportando productos")
	list, err := s.productos.ExportarProductos(ctx)
	if err != nil {
		return err
	}
	return storage.WriteProductos(w, f, list)
}

// ImportarProductos lee el fichero y hace upsert de todos los productos.
func (s *Service) ImportarProductos(ctx context.Context, r io.Reader, f storage.Formato) (*Resultado, error) {
	s.log.Debug().Str("formato", string(f)).Msg("importando productos")
	list, err := storage.ReadProductos(r, f)
	if err != nil {
		return nil, err
	}
	res, err := s.productos.ImportarProductos(ctx, list)
	if err != nil {
		return nil, err
	}
	return &Resultado{Productos: len(list), Creados: res.Creados, Actualizados: res.Actualizados}, nil
}

// ExportarClientes escribe todos los clientes (incluidos los eliminados) en el formato pedido.
func (s *Service) ExportarClientes(ctx context.Context, w io.Writer, f storage.Formato) error {
	s.log.Debug().Str("formato", string(f)).Msg("exportando clientes")
	list, err := s.clienteRepo.FindAll(ctx, todos)
	if err != nil {
		return err
	}
	return storage.WriteClientes(w, f, list)
}

// ImportarClientes valida todos los clientes y los inserta o actualiza por id en una sola tx.
// Un cliente sin id se da de alta con uno nuevo.
func (s *Service) ImportarClientes(ctx context.Context, r io.Reader, f storage.Formato) (*Resultado, error) {
	s.log.Debug().Str("formato", string(f)).Msg("importando clientes")
	list, err := storage.ReadClientes(r, f)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if _, err := validators.ValidateCliente(c); err != nil {
			return nil, fmt.Errorf("cliente %s: %w", c.DNI, err)
		}
	}

	res := &Resultado{Clientes: len(list)}
	err = s.txRunner.RunClientes(ctx, func(clienteRepo repository.ClienteRepository) error {
		res.Creados, res.Actualizados = 0, 0
		for _, c := range list {
			if c.ID > 0 {
				actual, err := clienteRepo.FindByID(ctx, c.ID)
				if err != nil {
					return err
				}
				if actual != nil {
					if _, err := clienteRepo.Update(ctx, c.ID, c); err != nil {
						return err
					}
					res.Actualizados++
					continue
				}
			}
			if _, err := clienteRepo.Save(ctx, c); err != nil {
				return fmt.Errorf("cliente %s: %w", c.DNI, err)
			}
			res.Creados++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.limpiarCache(ctx)
	s.log.Info().Int("creados", res.Creados).Int("actualizados", res.Actualizados).Msg("clientes importados")
	return res, nil
}

// ExportarInformeVentas genera el XLSX con las ventas no eliminadas.
func (s *Service) ExportarInformeVentas(ctx context.Context, w io.Writer) error {
	s.log.Debug().Msg("generando informe de ventas")
	list, err := s.ventaRepo.FindAll(ctx, repository.ListOptions{})
	if err != nil {
		return err
	}
	return storage.WriteInformeVentas(w, list)
}
