package models

// UserTipo is the role of a platform account.
type UserTipo string

// Roles understood by the upstream API.
const (
	TipoAluno     UserTipo = "aluno"
	TipoProfessor UserTipo = "professor"
	TipoGerente   UserTipo = "gerente"
)

// User mirrors the upstream usuário resource. Role-specific fields are only
// populated for the matching tipo.
type User struct {
	ID             int      `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	CPF            string   `json:"cpf"`
	Email          string   `json:"email"`
	Telefone       string   `json:"telefone"`
	Endereco       string   `json:"endereco"`
	DataNascimento string   `json:"data_nascimento,omitempty"`
	Tipo           UserTipo `json:"tipo"`
	Ativo          bool     `json:"is_active"`
	CT             int      `json:"ct,omitempty"`

	// Aluno fields.
	NomeResponsavel     string  `json:"nome_responsavel,omitempty"`
	TelefoneResponsavel string  `json:"telefone_responsavel,omitempty"`
	TelefoneEmergencia  string  `json:"telefone_emergencia,omitempty"`
	FichaMedica         string  `json:"ficha_medica,omitempty"`
	Plano               PlanID  `json:"plano,omitempty"`
	DiasHabilitados     []int   `json:"dias_habilitados,omitempty"`
	DiaVencimento       int     `json:"dia_vencimento,omitempty"`
	ValorMensalidade    float64 `json:"valor_mensalidade,omitempty"`
	PlanoFamilia        bool    `json:"plano_familia,omitempty"`

	// Professor fields.
	SalarioProfessor float64 `json:"salario_professor,omitempty"`
	PixProfessor     string  `json:"pix_professor,omitempty"`
}

// Nome returns the display name.
func (u User) Nome() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserFilter captures listing criteria forwarded upstream.
type UserFilter struct {
	Tipo   UserTipo
	CT     int
	Search string
}
