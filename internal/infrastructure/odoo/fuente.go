package odoo

import (
	"context"
	"fmt"

	"github.com/natischnitzler/reporte-vendedores/internal/domain/attribution"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/entity"
	"github.com/natischnitzler/reporte-vendedores/internal/domain/repository"
	"github.com/natischnitzler/reporte-vendedores/pkg/logger"
)

const (
	limiteCuentas = 200
	limiteLineas  = 200000
	limiteVentas  = 50000
	tamanoLote    = 500
)

// Fuente implementa repository.FuenteContable sobre el cliente JSON-RPC.
type Fuente struct {
	cli          *Cliente
	codigoCuenta string
	nombreCuenta string
	log          *logger.Logger
}

var _ repository.FuenteContable = (*Fuente)(nil)

func NewFuente(cli *Cliente, codigoCuenta, nombreCuenta string, log *logger.Logger) *Fuente {
	return &Fuente{cli: cli, codigoCuenta: codigoCuenta, nombreCuenta: nombreCuenta, log: log}
}

// CuentasPorCobrar prueba las tres estrategias en orden y se queda con la
// primera que devuelva algo. Un error en una estrategia no aborta: se registra
// y se sigue con la siguiente.
func (f *Fuente) CuentasPorCobrar(ctx context.Context) ([]int64, error) {
	estrategias := []struct {
		nombre  string
		dominio []any
	}{
		{"codigo", []any{[]any{"code", "=like", f.codigoCuenta + "%"}}},
		{"tipo", []any{[]any{"account_type", "=", "asset_receivable"}}},
		{"nombre", []any{[]any{"name", "ilike", f.nombreCuenta}}},
	}
	for _, e := range estrategias {
		ids, err := f.cli.Search(ctx, "account.account", e.dominio, limiteCuentas)
		if err != nil {
			f.log.Warn().Err(err).Str("estrategia", e.nombre).
				Msg("búsqueda de cuentas por cobrar falló, probando siguiente estrategia")
			continue
		}
		if len(ids) > 0 {
			f.log.Debug().Str("estrategia", e.nombre).Int("cuentas", len(ids)).
				Msg("cuentas por cobrar descubiertas")
			return ids, nil
		}
	}
	return nil, nil
}

type lineaRegistro struct {
	ID             int64      `json:"id"`
	MoveID         muchosAUno `json:"move_id"`
	PartnerID      muchosAUno `json:"partner_id"`
	DateMaturity   fechaOdoo  `json:"date_maturity"`
	Date           fechaOdoo  `json:"date"`
	Debit          montoOdoo  `json:"debit"`
	Credit         montoOdoo  `json:"credit"`
	AmountResidual montoOdoo  `json:"amount_residual"`
	FullReconcile  muchosAUno `json:"full_reconcile_id"`
	Name           cadenaOdoo `json:"name"`
}

func (f *Fuente) LineasPendientes(ctx context.Context, cuentaIDs []int64) ([]entity.LineaContable, error) {
	dominio := []any{
		[]any{"account_id", "in", cuentaIDs},
		[]any{"move_id.state", "=", entity.EstadoPublicado},
		[]any{"partner_id", "!=", false},
		[]any{"full_reconcile_id", "=", false},
	}
	ids, err := f.cli.Search(ctx, "account.move.line", dominio, limiteLineas)
	if err != nil {
		return nil, fmt.Errorf("líneas pendientes: %w", err)
	}

	campos := []string{"move_id", "partner_id", "date_maturity", "date",
		"debit", "credit", "amount_residual", "full_reconcile_id", "name"}
	lineas := make([]entity.LineaContable, 0, len(ids))
	for _, lote := range porLotes(ids, tamanoLote) {
		var registros []lineaRegistro
		if err := f.cli.Read(ctx, "account.move.line", lote, campos, &registros); err != nil {
			return nil, fmt.Errorf("líneas pendientes: %w", err)
		}
		for _, r := range registros {
			lineas = append(lineas, entity.LineaContable{
				ID:               r.ID,
				DocumentoID:      r.MoveID.ID,
				ClienteID:        r.PartnerID.ID,
				FechaVencimiento: r.DateMaturity.Ptr(),
				Fecha:            r.Date.Valor,
				Debe:             r.Debit.Decimal,
				Haber:            r.Credit.Decimal,
				SaldoResidual:    r.AmountResidual.Decimal,
				Conciliada:       r.FullReconcile.ID != 0,
				Glosa:            string(r.Name),
			})
		}
	}
	return lineas, nil
}

type documentoRegistro struct {
	ID             int64      `json:"id"`
	Name           cadenaOdoo `json:"name"`
	Ref            cadenaOdoo `json:"ref"`
	InvoiceUserID  muchosAUno `json:"invoice_user_id"`
	MoveType       cadenaOdoo `json:"move_type"`
	InvoiceDate    fechaOdoo  `json:"invoice_date"`
	InvoiceDateDue fechaOdoo  `json:"invoice_date_due"`
	Date           fechaOdoo  `json:"date"`
	State          cadenaOdoo `json:"state"`
}

func (f *Fuente) Documentos(ctx context.Context, documentoIDs []int64) (map[int64]entity.Documento, error) {
	campos := []string{"name", "ref", "invoice_user_id", "move_type",
		"invoice_date", "invoice_date_due", "date", "state"}
	documentos := make(map[int64]entity.Documento, len(documentoIDs))
	for _, lote := range porLotes(documentoIDs, tamanoLote) {
		var registros []documentoRegistro
		if err := f.cli.Read(ctx, "account.move", lote, campos, &registros); err != nil {
			return nil, fmt.Errorf("documentos: %w", err)
		}
		for _, r := range registros {
			documentos[r.ID] = entity.Documento{
				ID:               r.ID,
				Nombre:           string(r.Name),
				Referencia:       string(r.Ref),
				Vendedor:         r.InvoiceUserID.Nombre,
				Tipo:             string(r.MoveType),
				Estado:           string(r.State),
				FechaFactura:     r.InvoiceDate.Ptr(),
				FechaVencimiento: r.InvoiceDateDue.Ptr(),
				Fecha:            r.Date.Valor,
			}
		}
	}
	return documentos, nil
}

type clienteRegistro struct {
	ID     int64      `json:"id"`
	Name   cadenaOdoo `json:"name"`
	City   cadenaOdoo `json:"city"`
	UserID muchosAUno `json:"user_id"`
}

func (f *Fuente) Clientes(ctx context.Context, clienteIDs []int64) (map[int64]entity.Cliente, error) {
	campos := []string{"name", "city", "user_id"}
	clientes := make(map[int64]entity.Cliente, len(clienteIDs))
	for _, lote := range porLotes(clienteIDs, tamanoLote) {
		var registros []clienteRegistro
		if err := f.cli.Read(ctx, "res.partner", lote, campos, &registros); err != nil {
			return nil, fmt.Errorf("clientes: %w", err)
		}
		for _, r := range registros {
			clientes[r.ID] = entity.Cliente{
				ID:       r.ID,
				Nombre:   string(r.Name),
				Ciudad:   string(r.City),
				Vendedor: r.UserID.Nombre,
			}
		}
	}
	return clientes, nil
}

type ventaRegistro struct {
	ID            int64      `json:"id"`
	PartnerID     muchosAUno `json:"partner_id"`
	InvoiceUserID muchosAUno `json:"invoice_user_id"`
	InvoiceDate   fechaOdoo  `json:"invoice_date"`
}

func (f *Fuente) VentasFacturadas(ctx context.Context) ([]attribution.VentaFacturada, error) {
	dominio := []any{
		[]any{"move_type", "in", []string{entity.TipoFactura, entity.TipoNotaCredito}},
		[]any{"state", "=", entity.EstadoPublicado},
		[]any{"invoice_user_id", "!=", false},
	}
	ids, err := f.cli.Search(ctx, "account.move", dominio, limiteVentas)
	if err != nil {
		return nil, fmt.Errorf("ventas facturadas: %w", err)
	}

	campos := []string{"partner_id", "invoice_user_id", "invoice_date"}
	ventas := make([]attribution.VentaFacturada, 0, len(ids))
	for _, lote := range porLotes(ids, tamanoLote) {
		var registros []ventaRegistro
		if err := f.cli.Read(ctx, "account.move", lote, campos, &registros); err != nil {
			return nil, fmt.Errorf("ventas facturadas: %w", err)
		}
		for _, r := range registros {
			ventas = append(ventas, attribution.VentaFacturada{
				FacturaID: r.ID,
				ClienteID: r.PartnerID.ID,
				Vendedor:  r.InvoiceUserID.Nombre,
				Fecha:     r.InvoiceDate.Valor,
			})
		}
	}
	return ventas, nil
}

// porLotes parte ids en lotes de a lo más n elementos.
func porLotes(ids []int64, n int) [][]int64 {
	if len(ids) == 0 {
		return nil
	}
	lotes := make([][]int64, 0, (len(ids)+n-1)/n)
	for i := 0; i < len(ids); i += n {
		fin := i + n
		if fin > len(ids) {
			fin = len(ids)
		}
		lotes = append(lotes, ids[i:fin])
	}
	return lotes
}
