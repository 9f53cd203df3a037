package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items. El artículo nace con saldo 0;
// el stock inicial se carga con un movimiento (receipt o correction) para
// que el saldo siempre sea la suma de los movimientos aplicados.
type CreateItemRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Unit        string          `json:"unit"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	MinStock    int64           `json:"min_stock"`
	MaxStock    *int64          `json:"max_stock,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. Solo campos descriptivos:
// el saldo no se edita por aquí.
type UpdateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Unit        string          `json:"unit"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	MinStock    int64           `json:"min_stock"`
	MaxStock    *int64          `json:"max_stock,omitempty"`
}

// ItemResponse representación HTTP de un artículo.
type ItemResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Unit        string          `json:"unit"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Balance     int64           `json:"balance"`
	MinStock    int64           `json:"min_stock"`
	MaxStock    *int64          `json:"max_stock,omitempty"`
	LowStock    bool            `json:"low_stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
