package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/dawfilms-api/internal/application/clientes"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
	"github.com/jhoicas/dawfilms-api/pkg/config"
)

var _ clientes.ClienteCache = (*RedisClienteCache)(nil)

const redisKeyPrefix = "dawfilms:clientes:"

// RedisClienteCache caché de clientes en Redis (JSON, sin TTL).
type RedisClienteCache struct {
	rdb *redis.Client
}

// NewRedisClient crea el cliente y comprueba la conexión con un ping corto.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}

// NewRedisClienteCache envuelve un cliente Redis ya conectado.
func NewRedisClienteCache(rdb *redis.Client) *RedisClienteCache {
	return &RedisClienteCache{rdb: rdb}
}

type clienteJSON struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	FechaNacimiento string `json:"fechaNacimiento"`
	DNI             string `json:"dni"`
	Email           string `json:"email"`
	NumSocio        string `json:"numSocio"`
	Imagen          string `json:"imagen"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	IsDeleted       bool   `json:"isDeleted"`
}

func key(id int64) string {
	return redisKeyPrefix + strconv.FormatInt(id, 10)
}

func fecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.FormatoFecha)
}

func parse(s string) time.Time {
	t, _ := time.Parse(entity.FormatoFecha, s)
	return t
}

func (c *RedisClienteCache) Get(ctx context.Context, id int64) (*entity.Cliente, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get cliente %d: %w", id, err)
	}
	var v clienteJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("redis decode cliente %d: %w", id, err)
	}
	return &entity.Cliente{
		ID: v.ID, Nombre: v.Nombre, Apellido: v.Apellido, FechaNacimiento: parse(v.FechaNacimiento),
		DNI: v.DNI, Email: v.Email, NumSocio: v.NumSocio, Imagen: v.Imagen,
		CreatedAt: parse(v.CreatedAt), UpdatedAt: parse(v.UpdatedAt), IsDeleted: v.IsDeleted,
	}, nil
}

func (c *RedisClienteCache) Put(ctx context.Context, id int64, cl *entity.Cliente) error {
	if cl == nil {
		return nil
	}
	raw, err := json.Marshal(clienteJSON{
		ID: cl.ID, Nombre: cl.Nombre, Apellido: cl.Apellido, FechaNacimiento: fecha(cl.FechaNacimiento),
		DNI: cl.DNI, Email: cl.Email, NumSocio: cl.NumSocio, Imagen: cl.Imagen,
		CreatedAt: fecha(cl.CreatedAt), UpdatedAt: fecha(cl.UpdatedAt), IsDeleted: cl.IsDeleted,
	})
	if err != nil {
		return fmt.Errorf("redis encode cliente %d: %w", id, err)
	}
	if err := c.rdb.Set(ctx, key(id), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set cliente %d: %w", id, err)
	}
	return nil
}

func (c *RedisClienteCache) Remove(ctx context.Context, id int64) error {
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis del cliente %d: %w", id, err)
	}
	return nil
}

// Clear borra solo las claves de clientes, no toda la base Redis.
func (c *RedisClienteCache) Clear(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan clientes: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis clear clientes: %w", err)
	}
	return nil
}
