package domain

import "time"

// UndoActionType identifica a mutação reversível registrada no log de
// desfazer. Cada tipo possui uma inversa específica aplicada pelo engine.
type UndoActionType string

const (
	// UndoPickIncrement reverte o incremento de uma linha do picking.
	UndoPickIncrement UndoActionType = "pick_increment"
	// UndoCountSet restaura o valor anterior (ou o estado não-contado) de
	// uma linha da contagem.
	UndoCountSet UndoActionType = "count_set"
	// UndoMoveStep retrocede um passo na movimentação de local.
	UndoMoveStep UndoActionType = "move_step"
	// UndoReturnStep retrocede um passo na devolução.
	UndoReturnStep UndoActionType = "return_step"
)

// UndoEntry é uma mutação reversível escopada ao workflow ativo.
// PreviousQuantity carrega o valor anterior para as inversas de quantidade;
// nil significa "linha ainda não contada" no caso de UndoCountSet.
type UndoEntry struct {
	ID               string         `json:"id"`
	ActionType       UndoActionType `json:"action_type"`
	Barcode          string         `json:"barcode,omitempty"` // Referência da entidade afetada
	PreviousQuantity *int           `json:"previous_quantity,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}
