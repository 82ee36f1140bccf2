package cache

import (
	"context"
	"sync"

	"github.com/jhoicas/dawfilms-api/internal/application/clientes"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

var _ clientes.ClienteCache = (*MemoryClienteCache)(nil)

// MemoryClienteCache caché en memoria del proceso. Guarda copias para que el llamador no comparta punteros.
type MemoryClienteCache struct {
	mu    sync.RWMutex
	items map[int64]entity.Cliente
}

// NewMemoryClienteCache crea una caché vacía.
func NewMemoryClienteCache() *MemoryClienteCache {
	return &MemoryClienteCache{items: make(map[int64]entity.Cliente)}
}

func (c *MemoryClienteCache) Get(_ context.Context, id int64) (*entity.Cliente, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (c *MemoryClienteCache) Put(_ context.Context, id int64, cliente *entity.Cliente) error {
	if cliente == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = *cliente
	return nil
}

func (c *MemoryClienteCache) Remove(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

func (c *MemoryClienteCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int64]entity.Cliente)
	return nil
}

// Len número de clientes en caché.
func (c *MemoryClienteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
