package clientes

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dawfilms-api/internal/application/validators"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/domain/repository"
)

// ClienteUseCase gestión de clientes con caché delante del repositorio.
type ClienteUseCase struct {
	repo  repository.ClienteRepository
	cache ClienteCache
	log   zerolog.Logger
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository, cache ClienteCache, log zerolog.Logger) *ClienteUseCase {
	return &ClienteUseCase{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "clientes").Logger(),
	}
}

// GetAll lista clientes desde el repositorio (no pasa por la caché).
func (uc *ClienteUseCase) GetAll(ctx context.Context, opts repository.ListOptions) ([]*entity.Cliente, error) {
	uc.log.Debug().Msg("obteniendo todos los clientes")
	return uc.repo.FindAll(ctx, opts)
}

// GetByID primero la caché; si no está, el repositorio. La lectura no rellena la caché.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	uc.log.Debug().Int64("id", id).Msg("obteniendo cliente")
	cached, err := uc.cache.Get(ctx, id)
	if err != nil {
		// Un fallo de la caché no impide leer de la base de datos.
		uc.log.Warn().Err(err).Int64("id", id).Msg("caché de clientes no disponible")
	}
	if cached != nil {
		return cached, nil
	}

	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("clientes: obtener cliente: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w con id: %d", domain.ErrClienteNoEncontrado, id)
	}
	return c, nil
}

// GetByDNI búsqueda por DNI (sin caché).
func (uc *ClienteUseCase) GetByDNI(ctx context.Context, dni string) (*entity.Cliente, error) {
	uc.log.Debug().Str("dni", dni).Msg("obteniendo cliente por dni")
	c, err := uc.repo.FindByDNI(ctx, dni)
	if err != nil {
		return nil, fmt.Errorf("clientes: obtener cliente por dni: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w con dni: %s", domain.ErrClienteNoEncontrado, dni)
	}
	return c, nil
}

// Save valida, guarda y actualiza la caché con la fila guardada.
func (uc *ClienteUseCase) Save(ctx context.Context, c *entity.Cliente) (*entity.Cliente, error) {
	uc.log.Debug().Str("dni", c.DNI).Msg("guardando cliente")
	if _, err := validators.ValidateCliente(c); err != nil {
		return nil, err
	}
	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	uc.put(ctx, saved)
	return saved, nil
}

// Update valida y sobrescribe; ErrNotUpdated si el cliente no existe.
func (uc *ClienteUseCase) Update(ctx context.Context, id int64, c *entity.Cliente) (*entity.Cliente, error) {
	uc.log.Debug().Int64("id", id).Msg("actualizando cliente")
	if _, err := validators.ValidateCliente(c); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: cliente con id: %d", domain.ErrNotUpdated, id)
	}
	uc.put(ctx, updated)
	return updated, nil
}

// Delete borrado lógico y salida de la caché; ErrNotDeleted si no existe.
func (uc *ClienteUseCase) Delete(ctx context.Context, id int64) (*entity.Cliente, error) {
	uc.log.Debug().Int64("id", id).Msg("eliminando cliente")
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, fmt.Errorf("%w: cliente con id: %d", domain.ErrNotDeleted, id)
	}
	if err := uc.cache.Remove(ctx, id); err != nil {
		uc.log.Warn().Err(err).Int64("id", id).Msg("no se pudo quitar el cliente de la caché")
	}
	return deleted, nil
}

// ClearCache vacía la caché (tras restaurar una copia, por ejemplo).
func (uc *ClienteUseCase) ClearCache(ctx context.Context) error {
	return uc.cache.Clear(ctx)
}

func (uc *ClienteUseCase) put(ctx context.Context, c *entity.Cliente) {
	if err := uc.cache.Put(ctx, c.ID, c); err != nil {
		uc.log.Warn().Err(err).Int64("id", c.ID).Msg("no se pudo guardar el cliente en la caché")
	}
}
