package productos

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dawfilms-api/internal/application/validators"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// ProductoUseCase gestión de butacas y complementos.
type ProductoUseCase struct {
	butacaRepo      repository.ButacaRepository
	complementoRepo repository.ComplementoRepository
	txRunner        TxRunner
	log             zerolog.Logger
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	butacaRepo repository.ButacaRepository,
	complementoRepo repository.ComplementoRepository,
	txRunner TxRunner,
	log zerolog.Logger,
) *ProductoUseCase {
	return &ProductoUseCase{
		butacaRepo:      butacaRepo,
		complementoRepo: complementoRepo,
		txRunner:        txRunner,
		log:             log.With().Str("component", "productos").Logger(),
	}
}

// ── Butacas ──────────────────────────────────────────────────────────────────

func (uc *ProductoUseCase) ListButacas(ctx context.Context, opts repository.ListOptions) ([]*entity.Butaca, error) {
	uc.log.Debug().Msg("listando butacas")
	return uc.butacaRepo.FindAll(ctx, opts)
}

func (uc *ProductoUseCase) GetButaca(ctx context.Context, id string) (*entity.Butaca, error) {
	uc.log.Debug().Str("id", id).Msg("obteniendo butaca")
	b, err := uc.butacaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: butaca con id: %s", domain.ErrNotFound, id)
	}
	return b, nil
}

func (uc *ProductoUseCase) CreateButaca(ctx context.Context, b *entity.Butaca) (*entity.Butaca, error) {
	uc.log.Debug().Str("id", b.ID).Msg("guardando butaca")
	if _, err := validators.ValidateButaca(b); err != nil {
		return nil, err
	}
	return uc.butacaRepo.Save(ctx, b)
}

func (uc *ProductoUseCase) UpdateButaca(ctx context.Context, id string, b *entity.Butaca) (*entity.Butaca, error) {
	uc.log.Debug().Str("id", id).Msg("actualizando butaca")
	b.ID = id
	if _, err := validators.ValidateButaca(b); err != nil {
		return nil, err
	}
	updated, err := uc.butacaRepo.Update(ctx, id, b)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: butaca con id: %s", domain.ErrNotUpdated, id)
	}
	return updated, nil
}

func (uc *ProductoUseCase) DeleteButaca(ctx context.Context, id string) (*entity.Butaca, error) {
	uc.log.Debug().Str("id", id).Msg("eliminando butaca")
	deleted, err := uc.butacaRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, fmt.Errorf("%w: butaca con id: %s", domain.ErrNotDeleted, id)
	}
	return deleted, nil
}

// ── Complementos ─────────────────────────────────────────────────────────────

func (uc *ProductoUseCase) ListComplementos(ctx context.Context, opts repository.ListOptions) ([]*entity.Complemento, error) {
	uc.log.Debug().Msg("listando complementos")
	return uc.complementoRepo.FindAll(ctx, opts)
}

// GetComplementoByNombre busca por nombre exacto; si hay varios, prima el no eliminado.
func (uc *ProductoUseCase) GetComplementoByNombre(ctx context.Context, nombre string) (*entity.Complemento, error) {
	uc.log.Debug().Str("nombre", nombre).Msg("buscando complemento por nombre")
	c, err := uc.complementoRepo.FindByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: complemento con nombre: %s", domain.ErrNotFound, nombre)
	}
	return c, nil
}

func (uc *ProductoUseCase) GetComplemento(ctx context.Context, id string) (*entity.Complemento, error) {
	uc.log.Debug().Str("id", id).Msg("obteniendo complemento")
	c, err := uc.complementoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: complemento con id: %s", domain.ErrNotFound, id)
	}
	return c, nil
}

// CreateComplemento si no trae id se le asigna el siguiente libre.
func (uc *ProductoUseCase) CreateComplemento(ctx context.Context, c *entity.Complemento) (*entity.Complemento, error) {
	if strings.TrimSpace(c.ID) == "" {
		id, err := uc.NextComplementoID(ctx)
		if err != nil {
			return nil, err
		}
		c.ID = id
	}
	uc.log.Debug().Str("id", c.ID).Str("nombre", c.Nombre).Msg("guardando complemento")
	if _, err := validators.ValidateComplemento(c); err != nil {
		return nil, err
	}
	return uc.complementoRepo.Save(ctx, c)
}

func (uc *ProductoUseCase) UpdateComplemento(ctx context.Context, id string, c *entity.Complemento) (*entity.Complemento, error) {
	uc.log.Debug().Str("id", id).Msg("actualizando complemento")
	c.ID = id
	if _, err := validators.ValidateComplemento(c); err != nil {
		return nil, err
	}
	updated, err := uc.complementoRepo.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: complemento con id: %s", domain.ErrNotUpdated, id)
	}
	return updated, nil
}

func (uc *ProductoUseCase) DeleteComplemento(ctx context.Context, id string) (*entity.Complemento, error) {
	uc.log.Debug().Str("id", id).Msg("eliminando complemento")
	deleted, err := uc.complementoRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, fmt.Errorf("%w: complemento con id: %s", domain.ErrNotDeleted, id)
	}
	return deleted, nil
}

// NextComplementoID mayor id numérico existente + 1 (incluidos los eliminados). Los ids no numéricos se ignoran.
func (uc *ProductoUseCase) NextComplementoID(ctx context.Context) (string, error) {
	list, err := uc.complementoRepo.FindAll(ctx, repository.ListOptions{IncluirEliminados: true})
	if err != nil {
		return "", err
	}
	maxID := 0
	for _, c := range list {
		if n, err := strconv.Atoi(c.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1), nil
}

// ── Importación ──────────────────────────────────────────────────────────────

// ResultadoImportacion número de productos creados y actualizados.
type ResultadoImportacion struct {
	Creados      int
	Actualizados int
}

// ImportarProductos valida todos los productos y los inserta o actualiza por id en una sola tx.
// Si uno no es válido no se importa ninguno.
func (uc *ProductoUseCase) ImportarProductos(ctx context.Context, productos []entity.Producto) (*ResultadoImportacion, error) {
	uc.log.Debug().Int("productos", len(productos)).Msg("importando productos")
	for _, p := range productos {
		if err := ValidarProducto(p); err != nil {
			return nil, fmt.Errorf("producto %s: %w", p.GetID(), err)
		}
	}

	res := &ResultadoImportacion{}
	err := uc.txRunner.RunProductos(ctx, func(butacaRepo repository.ButacaRepository, complementoRepo repository.ComplementoRepository) error {
		res.Creados, res.Actualizados = 0, 0
		for _, p := range productos {
			creado, err := upsertProducto(ctx, butacaRepo, complementoRepo, p)
			if err != nil {
				return err
			}
			if creado {
				res.Creados++
			} else {
				res.Actualizados++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("creados", res.Creados).Int("actualizados", res.Actualizados).Msg("productos importados")
	return res, nil
}

// ExportarProductos devuelve butacas y complementos (incluidos los eliminados) como lista de productos.
func (uc *ProductoUseCase) ExportarProductos(ctx context.Context) ([]entity.Producto, error) {
	opts := repository.ListOptions{IncluirEliminados: true}
	butacas, err := uc.butacaRepo.FindAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	complementos, err := uc.complementoRepo.FindAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Producto, 0, len(butacas)+len(complementos))
	for _, b := range butacas {
		out = append(out, b)
	}
	for _, c := range complementos {
		out = append(out, c)
	}
	return out, nil
}

// ValidarProducto valida una butaca o un complemento con su validador correspondiente.
func ValidarProducto(p entity.Producto) error {
	switch v := p.(type) {
	case *entity.Butaca:
		_, err := validators.ValidateButaca(v)
		return err
	case *entity.Complemento:
		_, err := validators.ValidateComplemento(v)
		return err
	default:
		return fmt.Errorf("%w: tipo de producto %T", domain.ErrInvalidInput, p)
	}
}

func upsertProducto(
	ctx context.Context,
	butacaRepo repository.ButacaRepository,
	complementoRepo repository.ComplementoRepository,
	p entity.Producto,
) (creado bool, err error) {
	switch v := p.(type) {
	case *entity.Butaca:
		existing, err := butacaRepo.FindByID(ctx, v.ID)
		if err != nil {
			return false, err
		}
		if existing == nil {
			_, err = butacaRepo.Save(ctx, v)
			return true, err
		}
		_, err = butacaRepo.Update(ctx, v.ID, v)
		return false, err
	case *entity.Complemento:
		existing, err := complementoRepo.FindByID(ctx, v.ID)
		if err != nil {
			return false, err
		}
		if existing == nil {
			_, err = complementoRepo.Save(ctx, v)
			return true, err
		}
		_, err = complementoRepo.Update(ctx, v.ID, v)
		return false, err
	default:
		return false, fmt.Errorf("%w: tipo de producto desconocido", domain.ErrInvalidInput)
	}
}
