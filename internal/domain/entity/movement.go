package entity

import "time"

// Clases de movimiento (conjunto cerrado, una regla de transición por clase).
const (
	MovementKindReceipt    = "receipt"    // entrada: saldo += cantidad
	MovementKindWithdrawal = "withdrawal" // salida: saldo -= cantidad, rechazada si queda negativo
	MovementKindCorrection = "correction" // ajuste: la cantidad es el nuevo saldo absoluto
)

// ValidMovementKind verifica que kind pertenezca al conjunto cerrado.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindReceipt, MovementKindWithdrawal, MovementKindCorrection:
		return true
	}
	return false
}

// Movement es el registro inmutable de un cambio de saldo.
// BalanceBefore y BalanceAfter se capturan en el instante de aplicar el
// movimiento; no existe update ni delete sobre movimientos en ninguna capa.
type Movement struct {
	ID            string
	ItemID        string
	Kind          string
	Quantity      int64
	BalanceBefore int64
	BalanceAfter  int64
	ActorID       string // UserID que causó el movimiento
	Note          string
	CreatedAt     time.Time
}
