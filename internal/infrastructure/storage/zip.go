package storage

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// Nombres de las entradas de la copia de seguridad.
const (
	EntradaClientes  = "clientes.json"
	EntradaProductos = "productos.json"
	EntradaVentas    = "ventas.json"
)

// Backup contenido completo de la base de datos.
type Backup struct {
	Clientes  []*entity.Cliente
	Productos []entity.Producto
	Ventas    []*entity.Venta
}

// WriteBackup genera el ZIP con los tres documentos JSON.
func WriteBackup(w io.Writer, b *Backup) error {
	zw := zip.NewWriter(w)
	entradas := []struct {
		nombre   string
		escribir func(io.Writer) error
	}{
		{EntradaClientes, func(w io.Writer) error { return WriteClientesJSON(w, b.Clientes) }},
		{EntradaProductos, func(w io.Writer) error { return WriteProductosJSON(w, b.Productos) }},
		{EntradaVentas, func(w io.Writer) error { return WriteVentasJSON(w, b.Ventas) }},
	}
	for _, e := range entradas {
		fw, err := zw.Create(e.nombre)
		if err != nil {
			return domain.NewStorageError("crear backup", err)
		}
		if err := e.escribir(fw); err != nil {
			return err
		}
	}
	return domain.NewStorageError("cerrar backup", zw.Close())
}

// ReadBackup lee un ZIP completo desde r. Falta una entrada => error.
func ReadBackup(r io.Reader) (*Backup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.NewStorageError("leer backup", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewStorageError("leer backup", err)
	}

	abrir := func(nombre string) (io.ReadCloser, error) {
		f, err := zr.Open(nombre)
		if err != nil {
			return nil, domain.NewStorageError("leer backup", fmt.Errorf("falta %s", nombre))
		}
		return f, nil
	}

	b := &Backup{}
	f, err := abrir(EntradaClientes)
	if err != nil {
		return nil, err
	}
	b.Clientes, err = ReadClientesJSON(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	if f, err = abrir(EntradaProductos); err != nil {
		return nil, err
	}
	b.Productos, err = ReadProductosJSON(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	if f, err = abrir(EntradaVentas); err != nil {
		return nil, err
	}
	b.Ventas, err = ReadVentasJSON(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	return b, nil
}
