package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/almacen-core/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint
// único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isSerializationFailure verifica los códigos que indican que la
// transacción perdió una carrera y debe reintentarse con una lectura nueva.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01" // serialization_failure, deadlock_detected
	}
	return false
}

// mapConflict traduce fallos de serialización a ErrPersistenceConflict
// para que el motor de movimientos los reintente de forma acotada.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceConflict, err)
	}
	return err
}
