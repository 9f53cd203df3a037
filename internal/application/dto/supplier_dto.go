package dto

import "time"

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/:id.
type UpdateSupplierRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// SupplierResponse representación HTTP de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
