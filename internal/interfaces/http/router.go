package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dawfilms-api/internal/application/auth"
	"github.com/jhoicas/dawfilms-api/internal/application/backup"
	"github.com/jhoicas/dawfilms-api/internal/application/clientes"
	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	"github.com/jhoicas/dawfilms-api/internal/application/ventas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductoUC *productos.ProductoUseCase
	ClienteUC  *clientes.ClienteUseCase
	VentaUC    *ventas.VentaUseCase
	TicketUC   *ventas.TicketUseCase
	BackupSvc  *backup.Service
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Todo lo demás exige token de administrador
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))

	productoHandler := NewProductoHandler(deps.ProductoUC)
	butacas := protected.Group("/butacas")
	butacas.Get("/", productoHandler.ListButacas)
	butacas.Post("/", productoHandler.CreateButaca)
	butacas.Get("/:id", productoHandler.GetButaca)
	butacas.Put("/:id", productoHandler.UpdateButaca)
	butacas.Delete("/:id", productoHandler.DeleteButaca)

	complementos := protected.Group("/complementos")
	complementos.Get("/", productoHandler.ListComplementos)
	complementos.Post("/", productoHandler.CreateComplemento)
	complementos.Get("/:id", productoHandler.GetComplemento)
	complementos.Put("/:id", productoHandler.UpdateComplemento)
	complementos.Delete("/:id", productoHandler.DeleteComplemento)

	clienteHandler := NewClienteHandler(deps.ClienteUC)
	cls := protected.Group("/clientes")
	cls.Get("/", clienteHandler.List)
	cls.Post("/", clienteHandler.Create)
	cls.Get("/:id", clienteHandler.GetByID)
	cls.Put("/:id", clienteHandler.Update)
	cls.Delete("/:id", clienteHandler.Delete)

	ventaHandler := NewVentaHandler(deps.VentaUC, deps.TicketUC)
	vts := protected.Group("/ventas")
	vts.Post("/", ventaHandler.Create)
	vts.Get("/", ventaHandler.List)
	vts.Get("/resumen", ventaHandler.Resumen) // antes de /:id
	vts.Get("/:id", ventaHandler.GetByID)
	vts.Get("/:id/ticket", ventaHandler.Ticket)
	vts.Delete("/:id", ventaHandler.Delete)

	backupHandler := NewBackupHandler(deps.BackupSvc)
	protected.Get("/backup", backupHandler.Export)
	protected.Post("/backup", backupHandler.Import)
	protected.Get("/export/productos", backupHandler.ExportProductos)
	protected.Get("/export/clientes", backupHandler.ExportClientes)
	protected.Get("/export/ventas.xlsx", backupHandler.InformeVentas)
	protected.Post("/import/productos", backupHandler.ImportProductos)
	protected.Post("/import/clientes", backupHandler.ImportClientes)
}
