package cache_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/cache"
)

func TestMemoryClienteCache_PutGetRemoveClear(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryClienteCache()

	got, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got, "clave ausente => nil sin error")

	require.NoError(t, c.Put(ctx, 5, &entity.Cliente{ID: 5, Nombre: "Luis"}))
	got, err = c.Get(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Luis", got.Nombre)

	// Se guarda una copia: modificar el devuelto no altera la caché.
	got.Nombre = "Otro"
	again, _ := c.Get(ctx, 5)
	assert.Equal(t, "Luis", again.Nombre)

	require.NoError(t, c.Remove(ctx, 5))
	got, _ = c.Get(ctx, 5)
	assert.Nil(t, got)

	require.NoError(t, c.Put(ctx, 1, &entity.Cliente{ID: 1}))
	require.NoError(t, c.Put(ctx, 2, &entity.Cliente{ID: 2}))
	assert.Equal(t, 2, c.Len())
	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryClienteCache_AccesoConcurrente(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryClienteCache()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = c.Put(ctx, id, &entity.Cliente{ID: id})
			_, _ = c.Get(ctx, id)
			if id%2 == 0 {
				_ = c.Remove(ctx, id)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 25, c.Len())
}
