package entity

import "time"

// Supplier representa un proveedor (dato de referencia del catálogo).
// Igual que Item, se desactiva con Active=false y nunca se borra.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT/CNPJ según país
	Contact   string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
