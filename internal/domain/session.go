package domain

import (
	"time"
)

// WorkflowKind identifica o workflow ativo. O conjunto é fechado: todo
// dispatch sobre Kind deve tratar exatamente estes cinco valores.
type WorkflowKind string

const (
	KindNone         WorkflowKind = "none"
	KindPicking      WorkflowKind = "picking"
	KindStockCount   WorkflowKind = "stock_count"
	KindLocationMove WorkflowKind = "location_move"
	KindReturns      WorkflowKind = "returns"
)

// CountStep é o passo atual dentro de uma contagem de estoque.
type CountStep string

const (
	CountStepScanItem      CountStep = "scan_item"
	CountStepEnterQuantity CountStep = "enter_quantity"
)

// MoveStep é o passo atual dentro de uma movimentação de local.
type MoveStep string

const (
	MoveStepConfirmSource   MoveStep = "confirm_source"
	MoveStepScanItem        MoveStep = "scan_item"
	MoveStepScanDestination MoveStep = "scan_destination"
	MoveStepConfirmMove     MoveStep = "confirm_move"
)

// ReturnStep é o passo atual dentro de uma devolução.
type ReturnStep string

const (
	ReturnStepScanLocation ReturnStep = "scan_location"
	ReturnStepConfirm      ReturnStep = "confirm"
)

// PickingState é o payload de um workflow de separação (picking).
// O picking tem um único passo de leitura repetida; a disponibilidade da
// conclusão é derivada de Order.AllComplete().
type PickingState struct {
	Order Order `json:"order"`

	// PendingForceComplete marca que o operador confirmou a conclusão com
	// linhas pendentes e o sistema aguarda a segunda confirmação.
	PendingForceComplete bool `json:"pending_force_complete"`
}

// CountState é o payload de uma contagem de estoque.
type CountState struct {
	Count StockCount `json:"count"`
	Step  CountStep  `json:"step"`

	// ActiveBarcode é a linha aguardando digitação de quantidade
	// (válido apenas em CountStepEnterQuantity).
	ActiveBarcode string `json:"active_barcode,omitempty"`

	// PendingRecount é a linha já contada aguardando a confirmação de
	// recontagem (decisão sim/não do operador).
	PendingRecount string `json:"pending_recount,omitempty"`

	// PendingForceComplete: análogo ao picking, conclusão com linhas não
	// contadas aguardando segunda confirmação.
	PendingForceComplete bool `json:"pending_force_complete"`
}

// MoveState é o payload de uma movimentação de local.
type MoveState struct {
	Step        MoveStep  `json:"step"`
	Source      Location  `json:"source"`
	Item        *Item     `json:"item,omitempty"`
	Destination *Location `json:"destination,omitempty"`
}

// ReturnState é o payload de uma devolução: um item avulso aguardando um
// local de destino.
type ReturnState struct {
	Step     ReturnStep `json:"step"`
	Item     Item       `json:"item"`
	Location *Location  `json:"location,omitempty"`
}

// WorkflowSession é o agregado raiz do sistema: o único workflow ativo (se
// houver) e seu estado. Invariante central: no máximo um payload é não-nil,
// e exatamente o payload correspondente a Kind (nenhum quando KindNone).
type WorkflowSession struct {
	ID        string       `json:"id"`
	Kind      WorkflowKind `json:"kind"`
	StartedAt time.Time    `json:"started_at,omitempty"`

	Picking *PickingState `json:"picking,omitempty"`
	Count   *CountState   `json:"count,omitempty"`
	Move    *MoveState    `json:"move,omitempty"`
	Return  *ReturnState  `json:"return,omitempty"`
}

// Active indica se existe um workflow em andamento.
func (s *WorkflowSession) Active() bool {
	return s.Kind != KindNone
}

// Snapshot devolve uma cópia profunda da sessão para uso como instrução de
// renderização (renderHint). O Adapter de apresentação nunca recebe ponteiros
// para o estado vivo do engine.
func (s *WorkflowSession) Snapshot() *WorkflowSession {
	if s == nil {
		return nil
	}
	clone := *s

	if s.Picking != nil {
		p := *s.Picking
		p.Order.Lines = append([]OrderLine(nil), s.Picking.Order.Lines...)
		clone.Picking = &p
	}
	if s.Count != nil {
		c := *s.Count
		c.Count.Lines = make([]CountLine, len(s.Count.Count.Lines))
		for i, l := range s.Count.Count.Lines {
			if l.CountedQuantity != nil {
				q := *l.CountedQuantity
				l.CountedQuantity = &q
			}
			c.Count.Lines[i] = l
		}
		clone.Count = &c
	}
	if s.Move != nil {
		m := *s.Move
		m.Source.Items = append([]string(nil), s.Move.Source.Items...)
		if s.Move.Item != nil {
			item := *s.Move.Item
			m.Item = &item
		}
		if s.Move.Destination != nil {
			dst := *s.Move.Destination
			dst.Items = append([]string(nil), s.Move.Destination.Items...)
			m.Destination = &dst
		}
		clone.Move = &m
	}
	if s.Return != nil {
		r := *s.Return
		if s.Return.Location != nil {
			loc := *s.Return.Location
			loc.Items = append([]string(nil), s.Return.Location.Items...)
			r.Location = &loc
		}
		clone.Return = &r
	}

	return &clone
}
