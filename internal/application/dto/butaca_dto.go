package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ButacaRequest cuerpo de alta/edición de butaca. Los enumerados admiten variantes ("vip", "Fuera de servicio").
type ButacaRequest struct {
	ID        string `json:"id"`
	Imagen    string `json:"imagen"`
	Fila      int    `json:"fila"`
	Columna   int    `json:"columna"`
	Tipo      string `json:"tipo"`
	Estado    string `json:"estado"`
	Ocupacion string `json:"ocupacion"`
}

// ToEntity traduce los enumerados; un valor desconocido devuelve *domain.ValidationError.
func (r ButacaRequest) ToEntity() (*entity.Butaca, error) {
	tipo, err := entity.ParseTipoButaca(r.Tipo)
	if err != nil {
		return nil, err
	}
	estado := entity.EstadoButacaActiva
	if r.Estado != "" {
		if estado, err = entity.ParseEstadoButaca(r.Estado); err != nil {
			return nil, err
		}
	}
	ocupacion := entity.OcupacionButacaLibre
	if r.Ocupacion != "" {
		if ocupacion, err = entity.ParseOcupacionButaca(r.Ocupacion); err != nil {
			return nil, err
		}
	}
	return &entity.Butaca{
		ID: r.ID, Imagen: r.Imagen, Fila: r.Fila, Columna: r.Columna,
		TipoButaca: tipo, Estado: estado, Ocupacion: ocupacion,
	}, nil
}

// ButacaResponse butaca con su precio derivado del tipo.
type ButacaResponse struct {
	ID        string          `json:"id"`
	Imagen    string          `json:"imagen"`
	Fila      int             `json:"fila"`
	Columna   int             `json:"columna"`
	Tipo      string          `json:"tipo"`
	Estado    string          `json:"estado"`
	Ocupacion string          `json:"ocupacion"`
	Precio    decimal.Decimal `json:"precio"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
	IsDeleted bool            `json:"isDeleted"`
}

func ToButacaResponse(b *entity.Butaca) ButacaResponse {
	return ButacaResponse{
		ID: b.ID, Imagen: b.Imagen, Fila: b.Fila, Columna: b.Columna,
		Tipo: string(b.TipoButaca), Estado: string(b.Estado), Ocupacion: string(b.Ocupacion),
		Precio:    b.PrecioUnitario(),
		CreatedAt: FormatFecha(b.CreatedAt), UpdatedAt: FormatFecha(b.UpdatedAt), IsDeleted: b.IsDeleted,
	}
}

func ToButacaResponses(list []*entity.Butaca) []ButacaResponse {
	out := make([]ButacaResponse, 0, len(list))
	for _, b := range list {
		out = append(out, ToButacaResponse(b))
	}
	return out
}
