package entity

import "time"

// Cliente representa un socio del cine. El ID lo asigna la secuencia de la base de datos.
type Cliente struct {
	ID              int64
	Nombre          string
	Apellido        string
	FechaNacimiento time.Time
	DNI             string
	Email           string
	NumSocio        string
	Imagen          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	IsDeleted       bool
}

// NombreCompleto nombre y apellido separados por espacio.
func (c *Cliente) NombreCompleto() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}
