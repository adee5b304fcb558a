package models

import "time"

// MensalidadeStatus is the payment state of a monthly due.
type MensalidadeStatus string

// Monthly due states as reported by the upstream financeiro API.
const (
	MensalidadePendente MensalidadeStatus = "pendente"
	MensalidadePaga     MensalidadeStatus = "paga"
	MensalidadeAtrasada MensalidadeStatus = "atrasada"
)

// Mensalidade is a monthly due on a student's ledger.
type Mensalidade struct {
	ID             int               `json:"id"`
	Aluno          int               `json:"aluno"`
	AlunoNome      string            `json:"aluno_nome,omitempty"`
	Valor          float64           `json:"valor"`
	Vencimento     string            `json:"data_vencimento"`
	DataPagamento  string            `json:"data_pagamento,omitempty"`
	Status         MensalidadeStatus `json:"status"`
	MesReferencia  string            `json:"mes_referencia"`
	FormaPagamento string            `json:"forma_pagamento,omitempty"`
}

// Despesa is an operating expense entry.
type Despesa struct {
	ID        int     `json:"id"`
	Descricao string  `json:"descricao"`
	Valor     float64 `json:"valor"`
	Data      string  `json:"data"`
	Categoria string  `json:"categoria,omitempty"`
	CT        int     `json:"ct,omitempty"`
}

// Salario is a staff salary entry.
type Salario struct {
	ID            int     `json:"id"`
	Professor     int     `json:"professor"`
	ProfessorNome string  `json:"professor_nome,omitempty"`
	Valor         float64 `json:"valor"`
	MesReferencia string  `json:"mes_referencia"`
	Status        string  `json:"status"`
}

// FinanceDashboard aggregates the upstream financial panel numbers.
type FinanceDashboard struct {
	ReceitaMes       float64 `json:"receita_mes"`
	DespesasMes      float64 `json:"despesas_mes"`
	SalariosMes      float64 `json:"salarios_mes"`
	SaldoMes         float64 `json:"saldo_mes"`
	Inadimplentes    int     `json:"inadimplentes"`
	MensalidadesMes  int     `json:"mensalidades_mes"`
	MensalidadesPagas int    `json:"mensalidades_pagas"`
}

// PixStatus is the lifecycle state of a PIX charge.
type PixStatus string

// PIX transaction states.
const (
	PixPendente PixStatus = "pendente"
	PixAprovado PixStatus = "aprovado"
	PixExpirado PixStatus = "expirado"
)

// PixTransaction is an instant-payment charge created for a mensalidade.
type PixTransaction struct {
	ID          int       `json:"id"`
	Mensalidade int       `json:"mensalidade"`
	CodigoPix   string    `json:"codigo_pix"`
	QRCode      string    `json:"qr_code,omitempty"`
	Valor       float64   `json:"valor"`
	Status      PixStatus `json:"status"`
	CriadoEm    time.Time `json:"criado_em"`
}

// Terminal reports whether the transaction reached a final state.
func (s PixStatus) Terminal() bool {
	return s == PixAprovado || s == PixExpirado
}

// PixWatchOutcome names how a PIX watch ended.
type PixWatchOutcome string

// Watch outcomes delivered by the billing watcher.
const (
	PixWatchApproved PixWatchOutcome = "approved"
	PixWatchExpired  PixWatchOutcome = "expired"
	PixWatchTimedOut PixWatchOutcome = "timed_out"
	PixWatchStopped  PixWatchOutcome = "stopped"
)

// PixWatchResult is the terminal result of a PIX status watch.
type PixWatchResult struct {
	Outcome     PixWatchOutcome `json:"outcome"`
	Transaction *PixTransaction `json:"transacao,omitempty"`
}
