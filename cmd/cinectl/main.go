// cinectl tareas de mantenimiento de DawFilms contra la misma base de datos que la API.
//
// Uso:
//
//	cinectl migrate
//	cinectl backup export|import <fichero.zip>
//	cinectl productos export|import <fichero.json|csv|xml>
//	cinectl clientes export|import <fichero.json|csv|xml>
//	cinectl informe <fichero.xlsx>
//	cinectl hash-password <password>
//
// La configuración se lee igual que en cmd/api (variables de entorno, .env, config.env).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dawfilms-api/internal/application/backup"
	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	infracache "github.com/jhoicas/dawfilms-api/internal/infrastructure/cache"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/storage"
	"github.com/jhoicas/dawfilms-api/pkg/config"
	"github.com/jhoicas/dawfilms-api/pkg/logger"
)

func uso() {
	fmt.Fprintf(os.Stderr, `Uso: cinectl [opciones] <comando> [args]

Comandos:
  migrate                                  aplica las migraciones embebidas
  backup export|import <fichero.zip>       copia de seguridad completa
  productos export|import <fichero>        butacas y complementos (json, csv, xml)
  clientes export|import <fichero>         clientes (json, csv, xml)
  informe <fichero.xlsx>                   informe de ventas
  hash-password <password>                 hash bcrypt para ADMIN_PASSWORD_HASH

Opciones:
`)
	flag.PrintDefaults()
}

func main() {
	logLevel := flag.String("log-level", "info", "nivel de log (trace, debug, info, warn, error)")
	flag.Usage = uso
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		uso()
		os.Exit(2)
	}

	// No necesita base de datos.
	if args[0] == "hash-password" {
		if len(args) != 2 {
			fail(fmt.Errorf("hash-password necesita la contraseña"))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(args[1]), bcrypt.DefaultCost)
		if err != nil {
			fail(err)
		}
		fmt.Println(string(hash))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(fmt.Errorf("cargar configuración: %w", err))
	}
	log := logger.New(logger.Config{Env: "development", Level: *logLevel, Output: os.Stderr})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail(fmt.Errorf("conexión a PostgreSQL: %w", err))
	}
	defer pool.Close()

	if args[0] == "migrate" {
		if err := postgres.Migrate(ctx, pool); err != nil {
			fail(err)
		}
		log.Info().Msg("migraciones aplicadas")
		return
	}

	svc := nuevoServicio(pool, log)
	if err := ejecutar(ctx, svc, args); err != nil {
		fail(err)
	}
}

// nuevoServicio la caché es siempre en memoria: la CLI no comparte proceso con la API.
func nuevoServicio(pool *pgxpool.Pool, log *logger.Logger) *backup.Service {
	clienteRepo := postgres.NewClienteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	productoUC := productos.NewProductoUseCase(
		postgres.NewButacaRepository(pool), postgres.NewComplementoRepository(pool), txRunner, log.Zerolog(),
	)
	return backup.NewService(
		productoUC, clienteRepo, postgres.NewVentaRepository(pool),
		infracache.NewMemoryClienteCache(), txRunner, log.Zerolog(),
	)
}

func ejecutar(ctx context.Context, svc *backup.Service, args []string) error {
	switch args[0] {
	case "informe":
		if len(args) != 2 {
			return fmt.Errorf("informe necesita el fichero de salida")
		}
		return escribir(args[1], func(w io.Writer) error { return svc.ExportarInformeVentas(ctx, w) })
	case "backup", "productos", "clientes":
	default:
		return fmt.Errorf("comando desconocido: %s", args[0])
	}
	if len(args) != 3 {
		return fmt.Errorf("%s necesita export|import y un fichero", args[0])
	}
	entidad, accion, ruta := args[0], args[1], args[2]

	if entidad == "backup" {
		switch accion {
		case "export":
			return escribir(ruta, func(w io.Writer) error { return svc.ExportarBackup(ctx, w) })
		case "import":
			return leer(ruta, func(r io.Reader) (*backup.Resultado, error) { return svc.ImportarBackup(ctx, r) })
		}
		return fmt.Errorf("acción desconocida: %s", accion)
	}

	f, err := storage.FormatoDesdeRuta(ruta)
	if err != nil {
		return err
	}
	switch entidad + " " + accion {
	case "productos export":
		return escribir(ruta, func(w io.Writer) error { return svc.ExportarProductos(ctx, w, f) })
	case "productos import":
		return leer(ruta, func(r io.Reader) (*backup.Resultado, error) { return svc.ImportarProductos(ctx, r, f) })
	case "clientes export":
		return escribir(ruta, func(w io.Writer) error { return svc.ExportarClientes(ctx, w, f) })
	case "clientes import":
		return leer(ruta, func(r io.Reader) (*backup.Resultado, error) { return svc.ImportarClientes(ctx, r, f) })
	}
	return fmt.Errorf("acción desconocida: %s", accion)
}

func escribir(ruta string, fn func(io.Writer) error) error {
	out, err := os.Create(ruta)
	if err != nil {
		return fmt.Errorf("crear %s: %w", ruta, err)
	}
	if err := fn(out); err != nil {
		out.Close()
		_ = os.Remove(ruta)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", ruta, err)
	}
	fmt.Fprintf(os.Stderr, "Escrito %s\n", ruta)
	return nil
}

func leer(ruta string, fn func(io.Reader) (*backup.Resultado, error)) error {
	in, err := os.Open(ruta)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", ruta, err)
	}
	defer in.Close()
	res, err := fn(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Importado %s: clientes=%d productos=%d ventas=%d creados=%d actualizados=%d\n",
		ruta, res.Clientes, res.Productos, res.Ventas, res.Creados, res.Actualizados)
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "cinectl: %v\n", err)
	os.Exit(1)
}
