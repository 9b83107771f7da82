package odoo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Odoo serializa campos vacíos como `false` en vez de null, y los many2one
// como pares [id, "nombre"]. Estos tipos absorben ambas convenciones.

// muchosAUno decodifica un campo many2one: [id, "nombre"] o false.
type muchosAUno struct {
	ID     int64
	Nombre string
}

func (m *muchosAUno) UnmarshalJSON(b []byte) error {
	var falso bool
	if err := json.Unmarshal(b, &falso); err == nil {
		if falso {
			return fmt.Errorf("many2one: valor booleano inesperado")
		}
		*m = muchosAUno{}
		return nil
	}
	var par []any
	if err := json.Unmarshal(b, &par); err != nil {
		return fmt.Errorf("many2one: %w", err)
	}
	if len(par) >= 1 {
		if id, ok := par[0].(float64); ok {
			m.ID = int64(id)
		}
	}
	if len(par) >= 2 {
		if nombre, ok := par[1].(string); ok {
			m.Nombre = nombre
		}
	}
	return nil
}

// fechaOdoo decodifica "2006-01-02", "2006-01-02 15:04:05" o false.
type fechaOdoo struct {
	Valor  time.Time
	Valida bool
}

func (f *fechaOdoo) UnmarshalJSON(b []byte) error {
	var falso bool
	if err := json.Unmarshal(b, &falso); err == nil {
		*f = fechaOdoo{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	if s == "" {
		*f = fechaOdoo{}
		return nil
	}
	for _, formato := range []string{"2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(formato, s); err == nil {
			*f = fechaOdoo{Valor: t, Valida: true}
			return nil
		}
	}
	return fmt.Errorf("fecha: formato desconocido %q", s)
}

// Ptr devuelve la fecha como puntero, o nil si no venía informada.
func (f fechaOdoo) Ptr() *time.Time {
	if !f.Valida {
		return nil
	}
	t := f.Valor
	return &t
}

// montoOdoo decodifica un monetario numérico, tolerando false como cero.
type montoOdoo struct {
	decimal.Decimal
}

func (m *montoOdoo) UnmarshalJSON(b []byte) error {
	var falso bool
	if err := json.Unmarshal(b, &falso); err == nil {
		m.Decimal = decimal.Zero
		return nil
	}
	return m.Decimal.UnmarshalJSON(b)
}

// cadenaOdoo decodifica un char/text, tolerando false como cadena vacía.
type cadenaOdoo string

func (c *cadenaOdoo) UnmarshalJSON(b []byte) error {
	var falso bool
	if err := json.Unmarshal(b, &falso); err == nil {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("cadena: %w", err)
	}
	*c = cadenaOdoo(s)
	return nil
}
