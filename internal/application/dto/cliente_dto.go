package dto

import (
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// ClienteRequest cuerpo de alta/edición de cliente. fechaNacimiento en formato YYYY-MM-DD.
type ClienteRequest struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	FechaNacimiento string `json:"fechaNacimiento"`
	DNI             string `json:"dni"`
	Email           string `json:"email"`
	NumSocio        string `json:"numSocio"`
	Imagen          string `json:"imagen"`
}

func (r ClienteRequest) ToEntity() (*entity.Cliente, error) {
	nacimiento, err := ParseFecha(r.FechaNacimiento)
	if err != nil {
		return nil, domain.NewValidationError("fechaNacimiento", "formato esperado YYYY-MM-DD")
	}
	return &entity.Cliente{
		Nombre: r.Nombre, Apellido: r.Apellido, FechaNacimiento: nacimiento,
		DNI: r.DNI, Email: r.Email, NumSocio: r.NumSocio, Imagen: r.Imagen,
	}, nil
}

type ClienteResponse struct {
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

func ToClienteResponse(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID: c.ID, Nombre: c.Nombre, Apellido: c.Apellido, FechaNacimiento: FormatFecha(c.FechaNacimiento),
		DNI: c.DNI, Email: c.Email, NumSocio: c.NumSocio, Imagen: c.Imagen,
		CreatedAt: FormatFecha(c.CreatedAt), UpdatedAt: FormatFecha(c.UpdatedAt), IsDeleted: c.IsDeleted,
	}
}

func ToClienteResponses(list []*entity.Cliente) []ClienteResponse {
	out := make([]ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToClienteResponse(c))
	}
	return out
}
