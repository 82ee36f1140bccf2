package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/internal/domain/entity"
)

// Los documentos XML reutilizan las columnas del CSV como elementos hijo:
//
//	<productos><producto tipo="Butaca"><id>A1</id>...</producto></productos>
//
// Los valores vacíos no se escriben.

func nuevoDocumento(raiz string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement(raiz)
}

func escribirDocumento(w io.Writer, doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func agregarCampos(el *etree.Element, cabecera, fila []string, omitir string) {
	for i, k := range cabecera {
		if k == omitir || fila[i] == "" {
			continue
		}
		el.CreateElement(k).SetText(fila[i])
	}
}

// leerElementos abre el documento y devuelve los hijos <hijo> de <raiz> como mapas etiqueta -> texto.
func leerElementos(r io.Reader, raiz, hijo string, attrs ...string) ([]map[string]string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	root := doc.SelectElement(raiz)
	if root == nil {
		return nil, fmt.Errorf("documento sin elemento raíz <%s>", raiz)
	}
	var out []map[string]string
	for _, el := range root.SelectElements(hijo) {
		fila := make(map[string]string)
		for _, c := range el.ChildElements() {
			fila[c.Tag] = strings.TrimSpace(c.Text())
		}
		for _, a := range attrs {
			if v := el.SelectAttrValue(a, ""); v != "" {
				fila[a] = v
			}
		}
		out = append(out, fila)
	}
	return out, nil
}

func WriteProductosXML(w io.Writer, productos []entity.Producto) error {
	doc, root := nuevoDocumento("productos")
	for _, p := range productos {
		fila, err := filaProducto(p)
		if err != nil {
			return domain.NewStorageError("guardar productos xml", err)
		}
		el := root.CreateElement("producto")
		el.CreateAttr("tipo", p.Tipo())
		agregarCampos(el, cabeceraProductos, fila, "tipoProducto")
	}
	return domain.NewStorageError("guardar productos xml", escribirDocumento(w, doc))
}

func ReadProductosXML(r io.Reader) ([]entity.Producto, error) {
	filas, err := leerElementos(r, "productos", "producto", "tipo")
	if err != nil {
		return nil, domain.NewStorageError("cargar productos xml", err)
	}
	out := make([]entity.Producto, 0, len(filas))
	for n, fila := range filas {
		if t, ok := fila["tipo"]; ok {
			fila["tipoProducto"] = t
		}
		p, err := productoDesdeFila(fila)
		if err != nil {
			return nil, domain.NewStorageError("cargar productos xml", fmt.Errorf("producto %d: %w", n+1, err))
		}
		out = append(out, p)
	}
	return out, nil
}

func WriteClientesXML(w io.Writer, clientes []*entity.Cliente) error {
	doc, root := nuevoDocumento("clientes")
	for _, c := range clientes {
		agregarCampos(root.CreateElement("cliente"), cabeceraClientes, filaCliente(c), "")
	}
	return domain.NewStorageError("guardar clientes xml", escribirDocumento(w, doc))
}

func ReadClientesXML(r io.Reader) ([]*entity.Cliente, error) {
	filas, err := leerElementos(r, "clientes", "cliente")
	if err != nil {
		return nil, domain.NewStorageError("cargar clientes xml", err)
	}
	out := make([]*entity.Cliente, 0, len(filas))
	for n, fila := range filas {
		c, err := clienteDesdeFila(fila)
		if err != nil {
			return nil, domain.NewStorageError("cargar clientes xml", fmt.Errorf("cliente %d: %w", n+1, err))
		}
		out = append(out, c)
	}
	return out, nil
}
