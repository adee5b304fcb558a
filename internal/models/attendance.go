package models

// Presenca is a single attendance record for a student in a turma session.
type Presenca struct {
	ID        int    `json:"id"`
	Aluno     int    `json:"aluno"`
	AlunoNome string `json:"aluno_nome,omitempty"`
	Turma     int    `json:"turma"`
	Data      string `json:"data"`
	Presente  bool   `json:"presente"`
}

// CheckinStatus reports whether today's check-in already happened for a turma.
type CheckinStatus struct {
	Turma      int        `json:"turma"`
	Registrado bool       `json:"registrado"`
	Presencas  []Presenca `json:"presencas,omitempty"`
}

// AttendanceReportFilter narrows the attendance report.
type AttendanceReportFilter struct {
	Turma      int
	DataInicio string
	DataFim    string
	Aluno      int
}
