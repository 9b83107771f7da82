// Package pdf dibuja el reporte de cobranza con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO: Cobranza pendiente - VENDEDOR                       │
//	│  Al dd/mm/yyyy  |  Saldos No Pagados                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ▌ZONA NORTE (barra de color por zona)                       │
//	│  CLIENTE (CIUDAD)        | A la fecha | 1-30 | >30 | Total   │
//	│    documento dd/mm/yyyy  |    $ …     |      |     |         │
//	│  ─────────────────────────────────────────────────────────  │
//	└─────────────────────────────────────────────────────────────┘
//
// Los bloques con saldo sobre 30 días van destacados en la paleta de
// vencidos (fondo rojizo, montos en rojo oscuro).
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/natischnitzler/reporte-vendedores/internal/application/cobranza"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/aging"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/territory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorTexto        = &props.Color{Red: 40, Green: 40, Blue: 40}
	colorGris         = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBlanco       = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorFilaResumen  = &props.Color{Red: 220, Green: 232, Blue: 245} // #dce8f5
	colorFondoVencido = &props.Color{Red: 253, Green: 232, Blue: 232} // #fde8e8
	colorMontoVencido = &props.Color{Red: 192, Green: 57, Blue: 43}   // #c0392b

	coloresZona = map[int]*props.Color{
		territory.ZonaNorte:   {Red: 26, Green: 107, Blue: 60}, // #1a6b3c
		territory.ZonaCentro:  {Red: 26, Green: 74, Blue: 122}, // #1a4a7a
		territory.ZonaSur:     {Red: 107, Green: 45, Blue: 26}, // #6b2d1a
		territory.ZonaSinZona: {Red: 85, Green: 85, Blue: 85},  // #555555
	}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ cobranza.Renderizador = (*MarotoRenderer)(nil)

// MarotoRenderer implementa cobranza.Renderizador usando Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el renderizador.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// Render dibuja un reporte completo a partir de la secuencia de eventos.
func (r *MarotoRenderer) Render(_ context.Context, titulo string, hoy time.Time, eventos []cobranza.Evento) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(titulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(tituloRows(titulo, hoy)...)

	for _, ev := range eventos {
		switch e := ev.(type) {
		case cobranza.InicioZona:
			m.AddRows(separadorZonaRow(e))
			m.AddRows(cabeceraTablaRow())
		case cobranza.BloqueCliente:
			m.AddRows(bloqueClienteRow(e))
		case cobranza.FilaDocumento:
			m.AddRows(filaDocumentoRow(e))
		case cobranza.FinZona:
			m.AddRows(line.NewRow(2, props.Line{Color: colorGris, Thickness: 0.2}))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar %q: %w", titulo, err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func tituloRows(titulo string, hoy time.Time) []core.Row {
	return []core.Row{
		row.New(9).Add(col.New(12).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorTexto, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Al %s  |  Saldos No Pagados", hoy.Format("02/01/2006")), props.Text{
				Size: 9, Color: colorGris,
			}),
		)),
		row.New(3),
	}
}

// separadorZonaRow: barra de color con el nombre de la zona.
func separadorZonaRow(e cobranza.InicioZona) core.Row {
	color, ok := coloresZona[e.Indice]
	if !ok {
		color = coloresZona[territory.ZonaSinZona]
	}
	return row.New(7).WithStyle(&props.Cell{BackgroundColor: color}).Add(
		col.New(12).Add(text.New("ZONA "+e.Nombre, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorBlanco, Top: 1.5, Left: 2,
		})),
	)
}

// cabeceraTablaRow: encabezados de columnas, repetidos al abrir cada zona.
func cabeceraTablaRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorGris, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Cliente / Documento", 4, align.Left),
		h("A la fecha", 2, align.Right),
		h("1-30", 2, align.Right),
		h(">30 días", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// bloqueClienteRow: fila resumen del cliente con sus acumulados por tramo.
func bloqueClienteRow(e cobranza.BloqueCliente) core.Row {
	fondo := colorFilaResumen
	montos := colorTexto
	if e.Vencido {
		fondo = colorFondoVencido
		montos = colorMontoVencido
	}

	etiqueta := e.Resumen.Cliente
	if e.Resumen.Ciudad != "" {
		etiqueta += " (" + e.Resumen.Ciudad + ")"
	}

	celda := func(size int, valor decimal.Decimal) core.Col {
		return col.New(size).Add(text.New(fmtMonto(valor), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: montos, Top: 1.5, Right: 1,
		}))
	}

	return row.New(7).WithStyle(&props.Cell{BackgroundColor: fondo}).Add(
		col.New(4).Add(text.New(etiqueta, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorTexto, Top: 1.5, Left: 1,
		})),
		celda(2, e.Resumen.Monto(aging.BucketALaFecha)),
		celda(2, e.Resumen.Monto(aging.Bucket1a30)),
		celda(2, e.Resumen.Mayor30),
		celda(2, e.Resumen.Total),
	)
}

// filaDocumentoRow: documento individual con el saldo en la columna de su
// tramo. Las aperturas no llevan la fecha al lado del nombre: la etiqueta ya
// trae la glosa del asiento.
func filaDocumentoRow(e cobranza.FilaDocumento) core.Row {
	montos := colorGris
	if e.Vencido {
		montos = colorMontoVencido
	}

	etiqueta := e.Saldo.Etiqueta
	if !e.Saldo.EsApertura && e.Saldo.FechaDocumento != nil {
		etiqueta += "  " + e.Saldo.FechaDocumento.Format("02/01/2006")
	}

	alaFecha, unoATreinta, sobre30 := "", "", ""
	switch {
	case e.Saldo.Bucket == aging.BucketALaFecha:
		alaFecha = fmtMonto(e.Saldo.Saldo)
	case e.Saldo.Bucket == aging.Bucket1a30:
		unoATreinta = fmtMonto(e.Saldo.Saldo)
	default:
		sobre30 = fmtMonto(e.Saldo.Saldo)
	}

	celda := func(size int, valor string) core.Col {
		return col.New(size).Add(text.New(valor, props.Text{
			Size: 7.5, Align: align.Right, Color: montos, Top: 1, Right: 1,
		}))
	}

	return row.New(5.5).Add(
		col.New(4).Add(text.New(etiqueta, props.Text{
			Size: 7.5, Color: colorGris, Top: 1, Left: 3,
		})),
		celda(2, alaFecha),
		celda(2, unoATreinta),
		celda(2, sobre30),
		celda(2, fmtMonto(e.Saldo.Saldo)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// fmtMonto formatea un monto como "$ 1.759.125" (entero, puntos de miles).
// El cero se muestra como celda vacía.
func fmtMonto(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	signo := ""
	if d.IsNegative() {
		signo = "-"
		d = d.Neg()
	}
	return "$ " + signo + miles(d.StringFixed(0))
}

// miles inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func miles(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
