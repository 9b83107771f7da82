package postgres

import (
	"context"
	"fmt"
	"time"

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

var _ repository.FuenteContable = (*Fuente)(nil)

// Fuente implementa repository.FuenteContable contra el esquema de Odoo
// (account_account, account_move, account_move_line, res_partner, res_users).
type Fuente struct {
	q            Querier
	codigoCuenta string
	nombreCuenta string
	log          *logger.Logger
}

// NewFuente construye el adaptador. Pasar pool o tx (Querier).
func NewFuente(q Querier, codigoCuenta, nombreCuenta string, log *logger.Logger) *Fuente {
	return &Fuente{q: q, codigoCuenta: codigoCuenta, nombreCuenta: nombreCuenta, log: log}
}

// CuentasPorCobrar prueba tres consultas en orden y se queda con la primera
// que devuelva filas. Un error en una estrategia no aborta la corrida.
func (f *Fuente) CuentasPorCobrar(ctx context.Context) ([]int64, error) {
	estrategias := []struct {
		nombre string
		sql    string
		arg    any
	}{
		{"codigo",
			`SELECT id FROM account_account WHERE code LIKE $1 || '%' ORDER BY id LIMIT ` + fmt.Sprint(limiteCuentas),
			f.codigoCuenta},
		{"tipo",
			`SELECT id FROM account_account WHERE account_type = $1 ORDER BY id LIMIT ` + fmt.Sprint(limiteCuentas),
			"asset_receivable"},
		{"nombre",
			`SELECT id FROM account_account WHERE name ILIKE '%' || $1 || '%' ORDER BY id LIMIT ` + fmt.Sprint(limiteCuentas),
			f.nombreCuenta},
	}
	for _, e := range estrategias {
		ids, err := f.buscarIDs(ctx, e.sql, e.arg)
		if err != nil {
			f.log.Warn().Err(err).Str("estrategia", e.nombre).
				Msg("consulta de cuentas por cobrar falló, probando siguiente estrategia")
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

func (f *Fuente) buscarIDs(ctx context.Context, sql string, args ...any) ([]int64, error) {
	rows, err := f.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LineasPendientes trae las líneas abiertas de las cuentas dadas, con el
// asiento publicado, cliente asociado y sin conciliación total.
func (f *Fuente) LineasPendientes(ctx context.Context, cuentaIDs []int64) ([]entity.LineaContable, error) {
	query := `
		SELECT l.id, l.move_id, l.partner_id, l.date_maturity, l.date,
		       l.debit, l.credit, l.amount_residual, COALESCE(l.name, '')
		FROM account_move_line l
		JOIN account_move m ON m.id = l.move_id
		WHERE l.account_id = ANY($1)
		  AND m.state = $2
		  AND l.partner_id IS NOT NULL
		  AND l.full_reconcile_id IS NULL
		ORDER BY l.id
		LIMIT ` + fmt.Sprint(limiteLineas)
	rows, err := f.q.Query(ctx, query, cuentaIDs, entity.EstadoPublicado)
	if err != nil {
		return nil, fmt.Errorf("líneas pendientes: %w", err)
	}
	defer rows.Close()

	var lineas []entity.LineaContable
	for rows.Next() {
		var (
			l     entity.LineaContable
			fecha *time.Time
		)
		if err := rows.Scan(&l.ID, &l.DocumentoID, &l.ClienteID, &l.FechaVencimiento, &fecha,
			&l.Debe, &l.Haber, &l.SaldoResidual, &l.Glosa); err != nil {
			return nil, fmt.Errorf("scan línea: %w", err)
		}
		if fecha != nil {
			l.Fecha = *fecha
		}
		// El filtro ya excluye las conciliadas; se conserva el campo por simetría
		// con la fuente RPC.
		l.Conciliada = false
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}

// Documentos lee las cabeceras de los asientos. El nombre del vendedor sale
// de res_users -> res_partner, igual que lo muestra Odoo.
func (f *Fuente) Documentos(ctx context.Context, documentoIDs []int64) (map[int64]entity.Documento, error) {
	query := `
		SELECT m.id, COALESCE(m.name, ''), COALESCE(m.ref, ''), COALESCE(p.name, ''),
		       m.move_type, m.state, m.invoice_date, m.invoice_date_due, m.date
		FROM account_move m
		LEFT JOIN res_users u ON u.id = m.invoice_user_id
		LEFT JOIN res_partner p ON p.id = u.partner_id
		WHERE m.id = ANY($1)`
	documentos := make(map[int64]entity.Documento, len(documentoIDs))
	for _, lote := range porLotes(documentoIDs, tamanoLote) {
		rows, err := f.q.Query(ctx, query, lote)
		if err != nil {
			return nil, fmt.Errorf("documentos: %w", err)
		}
		for rows.Next() {
			var (
				d     entity.Documento
				fecha *time.Time
			)
			if err := rows.Scan(&d.ID, &d.Nombre, &d.Referencia, &d.Vendedor,
				&d.Tipo, &d.Estado, &d.FechaFactura, &d.FechaVencimiento, &fecha); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan documento: %w", err)
			}
			if fecha != nil {
				d.Fecha = *fecha
			}
			documentos[d.ID] = d
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("documentos: %w", err)
		}
		rows.Close()
	}
	return documentos, nil
}

// Clientes lee nombre, ciudad y vendedor de ficha de los clientes dados.
func (f *Fuente) Clientes(ctx context.Context, clienteIDs []int64) (map[int64]entity.Cliente, error) {
	query := `
		SELECT c.id, COALESCE(c.name, ''), COALESCE(c.city, ''), COALESCE(v.name, '')
		FROM res_partner c
		LEFT JOIN res_users u ON u.id = c.user_id
		LEFT JOIN res_partner v ON v.id = u.partner_id
		WHERE c.id = ANY($1)`
	clientes := make(map[int64]entity.Cliente, len(clienteIDs))
	for _, lote := range porLotes(clienteIDs, tamanoLote) {
		rows, err := f.q.Query(ctx, query, lote)
		if err != nil {
			return nil, fmt.Errorf("clientes: %w", err)
		}
		for rows.Next() {
			var c entity.Cliente
			if err := rows.Scan(&c.ID, &c.Nombre, &c.Ciudad, &c.Vendedor); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan cliente: %w", err)
			}
			clientes[c.ID] = c
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("clientes: %w", err)
		}
		rows.Close()
	}
	return clientes, nil
}

// VentasFacturadas trae facturas y notas de crédito publicadas con vendedor
// asignado, para sobreescribir la atribución de la ficha del cliente.
func (f *Fuente) VentasFacturadas(ctx context.Context) ([]attribution.VentaFacturada, error) {
	query := `
		SELECT m.id, COALESCE(m.partner_id, 0), COALESCE(p.name, ''), m.invoice_date
		FROM account_move m
		JOIN res_users u ON u.id = m.invoice_user_id
		JOIN res_partner p ON p.id = u.partner_id
		WHERE m.move_type = ANY($1)
		  AND m.state = $2
		ORDER BY m.id
		LIMIT ` + fmt.Sprint(limiteVentas)
	rows, err := f.q.Query(ctx, query,
		[]string{entity.TipoFactura, entity.TipoNotaCredito}, entity.EstadoPublicado)
	if err != nil {
		return nil, fmt.Errorf("ventas facturadas: %w", err)
	}
	defer rows.Close()

	var ventas []attribution.VentaFacturada
	for rows.Next() {
		var (
			v     attribution.VentaFacturada
			fecha *time.Time
		)
		if err := rows.Scan(&v.FacturaID, &v.ClienteID, &v.Vendedor, &fecha); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		if fecha != nil {
			v.Fecha = *fecha
		}
		ventas = append(ventas, v)
	}
	return ventas, rows.Err()
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
