package repository

// ListOptions opciones de listado comunes a todos los repositorios.
// Por defecto los registros con borrado lógico quedan fuera.
type ListOptions struct {
	IncluirEliminados bool
}
