package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
// Para kind=correction, Quantity es el nuevo saldo absoluto, no un delta
// (cero permitido solo en ese caso, para dejar el stock en 0).
type RegisterMovementRequest struct {
	ItemID   string `json:"item_id"`
	Kind     string `json:"kind"` // receipt | withdrawal | correction
	Quantity int64  `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// MovementResponse movimiento aplicado. BalanceAfter es el saldo
// autoritativo del artículo tras la operación: no hace falta releer.
type MovementResponse struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	Kind          string    `json:"kind"`
	Quantity      int64     `json:"quantity"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	ActorID       string    `json:"actor_id"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListMovementsRequest query params para GET /api/movements.
// From es inclusivo y To exclusivo (rango semiabierto), en RFC 3339.
type ListMovementsRequest struct {
	ItemID string `query:"item_id"`
	From   string `query:"from"`
	To     string `query:"to"`
	PageRequest
}
