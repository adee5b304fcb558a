package models

// PreCadastroStatus tracks the lead conversion lifecycle.
type PreCadastroStatus string

// Possible pre-registration statuses as reported by the upstream API.
const (
	PreCadastroPendente    PreCadastroStatus = "pendente"
	PreCadastroMatriculado PreCadastroStatus = "matriculado"
)

// PreCadastro is a lead/pre-registration record awaiting conversion into an
// enrolled student. It is created by the public scheduling form and owned by
// the upstream API; this tier only reads it and transitions its status on a
// successful enrollment.
type PreCadastro struct {
	ID             int               `json:"id"`
	CPF            string            `json:"cpf"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Telefone       string            `json:"telefone"`
	DataNascimento string            `json:"data_nascimento"`
	CT             int               `json:"ct,omitempty"`
	Status         PreCadastroStatus `json:"status"`
}

// Nome returns the display name for listings.
func (p PreCadastro) Nome() string {
	if p.FirstName == "" && p.LastName == "" {
		return ""
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
