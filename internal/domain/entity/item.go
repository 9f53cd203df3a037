package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del almacén (SKU) con su saldo actual.
// Balance es siempre la suma de los deltas de sus movimientos desde la
// creación y nunca es negativo; solo lo muta el motor de movimientos.
// Los campos descriptivos se editan por el catálogo. Nunca se borra
// físicamente: Active=false preserva la integridad del libro de movimientos.
type Item struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Category    string
	Unit        string // unidad de medida: un, kg, l...
	SupplierID  string // referencia opcional a Supplier
	CostPrice   decimal.Decimal
	Balance     int64
	MinStock    int64
	MaxStock    *int64 // umbral máximo opcional
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el saldo está en o por debajo del umbral mínimo.
func (i *Item) LowStock() bool {
	return i.Balance <= i.MinStock
}
