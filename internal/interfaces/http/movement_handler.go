package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del motor de movimientos y
// del libro de movimientos (protegido).
type MovementHandler struct {
	engine  *inventory.MovementEngine
	queries *inventory.Queries
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *inventory.MovementEngine, queries *inventory.Queries) *MovementHandler {
	return &MovementHandler{engine: engine, queries: queries}
}

// Register godoc
// @Summary      Aplicar un movimiento de stock
// @Description  receipt suma, withdrawal resta (rechazado si el saldo
//               quedara negativo), correction fija el saldo absoluto.
//               La respuesta trae el saldo nuevo: no hace falta releer.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, kind, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.Apply(c.Context(), inventory.ApplyInput{
		ItemID:   in.ItemID,
		Kind:     in.Kind,
		Quantity: in.Quantity,
		ActorID:  actorID,
		Note:     in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos
// @Description  Filtros opcionales por artículo y rango temporal
//               semiabierto [from, to) en RFC 3339; orden descendente.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por artículo (UUID)"
// @Param        from     query  string  false  "Desde (inclusivo)"
// @Param        to       query  string  false  "Hasta (exclusivo)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.DefaultPage()

	filter := repository.MovementFilter{
		ItemID: in.ItemID,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.From != "" {
		t, err := time.Parse(time.RFC3339, in.From)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC 3339"})
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := time.Parse(time.RFC3339, in.To)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC 3339"})
		}
		filter.To = &t
	}

	movements, err := h.queries.ListMovements(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		Kind:          m.Kind,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		ActorID:       m.ActorID,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}
