package models

// Turma is a scheduled class/cohort tied to a training center.
type Turma struct {
	ID          int       `json:"id"`
	Nome        string    `json:"nome"`
	CT          int       `json:"ct"`
	DiasSemana  []WeekDay `json:"dias_semana"`
	Horario     string    `json:"horario"`
	Professores []User    `json:"professores,omitempty"`
	Capacidade  int       `json:"capacidade"`
	Alunos      []User    `json:"alunos,omitempty"`
}

// CentroTreinamento is a physical training-center location, the tenant scope
// for turmas and schedules.
type CentroTreinamento struct {
	ID             int    `json:"id"`
	Nome           string `json:"nome"`
	Endereco       string `json:"endereco"`
	Telefone       string `json:"telefone"`
	DiasVencimento []int  `json:"dias_vencimento,omitempty"`
	Ativo          bool   `json:"ativo"`
}
