package domain

// Severity classifica o resultado de uma operação do engine para a camada
// de apresentação.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Outcome é o contrato de saída do engine para o Adapter de apresentação:
// uma severidade, um texto voltado ao operador e o snapshot da sessão para
// renderização. O engine nunca emite markup — apenas Outcomes.
type Outcome struct {
	Severity Severity         `json:"severity"`
	Message  string           `json:"message"`
	Session  *WorkflowSession `json:"session,omitempty"`
}

// Success cria um Outcome de sucesso.
func Success(message string, session *WorkflowSession) Outcome {
	return Outcome{Severity: SeveritySuccess, Message: message, Session: session}
}

// Reject cria um Outcome de erro recuperável (a falha dominante do sistema:
// leitura inválida para o passo atual). Nunca representa um crash.
func Reject(message string, session *WorkflowSession) Outcome {
	return Outcome{Severity: SeverityError, Message: message, Session: session}
}

// Warn cria um Outcome de aviso (e.g. linha já completa, nada a desfazer).
func Warn(message string, session *WorkflowSession) Outcome {
	return Outcome{Severity: SeverityWarning, Message: message, Session: session}
}

// Info cria um Outcome informativo (e.g. pedido de confirmação ao operador).
func Info(message string, session *WorkflowSession) Outcome {
	return Outcome{Severity: SeverityInfo, Message: message, Session: session}
}
