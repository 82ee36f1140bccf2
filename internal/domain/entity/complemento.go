package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoriaComplemento clasifica los complementos del bar.
type CategoriaComplemento string

const (
	CategoriaComida CategoriaComplemento = "COMIDA"
	CategoriaBebida CategoriaComplemento = "BEBIDA"
)

// Complemento representa un producto del bar con precio y stock.
type Complemento struct {
	ID        string
	Imagen    string
	Nombre    string
	Precio    decimal.Decimal
	Stock     int
	Categoria CategoriaComplemento
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool
}

func (c *Complemento) GetID() string                   { return c.ID }
func (c *Complemento) Tipo() string                    { return TipoProductoComplemento }
func (c *Complemento) PrecioUnitario() decimal.Decimal { return c.Precio }
func (c *Complemento) Descripcion() string             { return c.Nombre }
func (c *Complemento) Eliminado() bool                 { return c.IsDeleted }
