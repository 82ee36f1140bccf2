package storage

import (
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// HojaVentas nombre de la hoja del informe.
const HojaVentas = "Ventas"

var cabeceraInforme = []any{
	"Fecha", "Venta", "Cliente", "DNI", "Producto", "Tipo", "Cantidad", "Precio", "Subtotal",
}

// WriteInformeVentas escribe un XLSX con una fila por línea de venta y el total al final.
// Las ventas eliminadas no aparecen.
func WriteInformeVentas(w io.Writer, ventas []*entity.Venta) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HojaVentas); err != nil {
		return domain.NewStorageError("informe ventas", err)
	}
	if err := f.SetSheetRow(HojaVentas, "A1", &cabeceraInforme); err != nil {
		return domain.NewStorageError("informe ventas", err)
	}

	fila := 2
	total := decimal.Zero
	for _, v := range ventas {
		if v.IsDeleted {
			continue
		}
		for _, l := range v.Lineas {
			celda, err := excelize.CoordinatesToCellName(1, fila)
			if err != nil {
				return domain.NewStorageError("informe ventas", err)
			}
			valores := []any{
				v.FechaCompra.Format(entity.FormatoFecha),
				v.ID.String(),
				v.Cliente.NombreCompleto(),
				v.Cliente.DNI,
				l.Descripcion,
				l.TipoProducto,
				l.Cantidad,
				l.Precio.InexactFloat64(),
				l.Subtotal().InexactFloat64(),
			}
			if err := f.SetSheetRow(HojaVentas, celda, &valores); err != nil {
				return domain.NewStorageError("informe ventas", err)
			}
			fila++
		}
		total = total.Add(v.Total)
	}

	celda, err := excelize.CoordinatesToCellName(len(cabeceraInforme)-1, fila)
	if err != nil {
		return domain.NewStorageError("informe ventas", err)
	}
	pie := []any{"Total", total.InexactFloat64()}
	if err := f.SetSheetRow(HojaVentas, celda, &pie); err != nil {
		return domain.NewStorageError("informe ventas", err)
	}

	return domain.NewStorageError("informe ventas", f.Write(w))
}
