package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ComplementoRequest cuerpo de alta/edición. Sin id en el alta se asigna el siguiente libre.
type ComplementoRequest struct {
	ID        string          `json:"id"`
	Imagen    string          `json:"imagen"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Stock     int             `json:"stock"`
	Categoria string          `json:"categoria"`
}

func (r ComplementoRequest) ToEntity() (*entity.Complemento, error) {
	categoria, err := entity.ParseCategoriaComplemento(r.Categoria)
	if err != nil {
		return nil, err
	}
	return &entity.Complemento{
		ID: r.ID, Imagen: r.Imagen, Nombre: r.Nombre, Precio: r.Precio, Stock: r.Stock, Categoria: categoria,
	}, nil
}

type ComplementoResponse struct {
	ID        string          `json:"id"`
	Imagen    string          `json:"imagen"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Stock     int             `json:"stock"`
	Categoria string          `json:"categoria"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
	IsDeleted bool            `json:"isDeleted"`
}

func ToComplementoResponse(c *entity.Complemento) ComplementoResponse {
	return ComplementoResponse{
		ID: c.ID, Imagen: c.Imagen, Nombre: c.Nombre, Precio: c.Precio, Stock: c.Stock,
		Categoria: string(c.Categoria),
		CreatedAt: FormatFecha(c.CreatedAt), UpdatedAt: FormatFecha(c.UpdatedAt), IsDeleted: c.IsDeleted,
	}
}

func ToComplementoResponses(list []*entity.Complemento) []ComplementoResponse {
	out := make([]ComplementoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToComplementoResponse(c))
	}
	return out
}
