package models

import (
	"fmt"
	"strconv"
	"time"
)

// FormState names the lifecycle states of an enrollment form session.
type FormState string

// Form session states. A form starts in EDITING, moves to SUBMITTING for the
// duration of the upstream call, and either ends in ENROLLED or returns to
// EDITING carrying the upstream error for correction.
const (
	FormStateEditing    FormState = "EDITING"
	FormStateSubmitting FormState = "SUBMITTING"
	FormStateEnrolled   FormState = "ENROLLED"
)

// Billing constants for the enrollment act, in BRL.
const (
	// EnrollmentFee is the flat matrícula fee added to the displayed first
	// charge. The upstream API computes the authoritative amount; this value
	// is informational.
	EnrollmentFee = 90.00
	// FamilyPlanDiscount is the flat discount applied to the displayed total
	// when the family plan is active.
	FamilyPlanDiscount = 10.00
)

// EnrollmentForm is the in-memory working state for converting a
// pre-registration into an enrolled student. It exists only for the duration
// of a staff session and is never persisted.
type EnrollmentForm struct {
	ID          string      `json:"id"`
	PreCadastro PreCadastro `json:"precadastro"`
	State       FormState   `json:"state"`

	CPF                      string `json:"cpf"`
	DiaVencimento            int    `json:"dia_vencimento"`
	JaAluno                  bool   `json:"ja_aluno"`
	Plano                    PlanID `json:"plano"`
	ValorPrimeiraMensalidade string `json:"valor_primeira_mensalidade"`
	PlanoFamilia             bool   `json:"plano_familia"`
	DiasHabilitados          []int  `json:"dias_habilitados"`

	// LastError carries the most recent submission failure so the caller can
	// correct and resubmit. Cleared on the next submit attempt.
	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectPlan switches the active plan: the selected day set is truncated to
// the plan quota preserving the original selection order, and the first
// payment amount is re-seeded to the plan base price, discarding any edit.
func (f *EnrollmentForm) SelectPlan(plan Plan) {
	f.Plano = plan.ID
	if len(f.DiasHabilitados) > plan.WeeklySessions {
		f.DiasHabilitados = f.DiasHabilitados[:plan.WeeklySessions]
	}
	f.ValorPrimeiraMensalidade = fmt.Sprintf("%.2f", plan.BasePrice)
}

// ToggleDay adds or removes a weekday from the selection. Removing always
// succeeds. Adding fails with ok=false when the selection already sits at the
// plan quota; the selection is left untouched in that case.
func (f *EnrollmentForm) ToggleDay(dayID, quota int) (ok bool) {
	for i, id := range f.DiasHabilitados {
		if id == dayID {
			f.DiasHabilitados = append(f.DiasHabilitados[:i], f.DiasHabilitados[i+1:]...)
			return true
		}
	}
	if len(f.DiasHabilitados) >= quota {
		return false
	}
	f.DiasHabilitados = append(f.DiasHabilitados, dayID)
	return true
}

// FirstPaymentValue parses the user-editable first payment field. A value
// that does not parse is treated as zero; this is used for the informational
// total only, submission validation checks emptiness separately.
func (f *EnrollmentForm) FirstPaymentValue() float64 {
	v, err := strconv.ParseFloat(f.ValorPrimeiraMensalidade, 64)
	if err != nil {
		return 0
	}
	return v
}

// DisplayedTotal is the informational first charge shown to staff: first
// payment minus the family discount plus the matrícula fee. No floor clamp
// is applied.
func (f *EnrollmentForm) DisplayedTotal() float64 {
	total := f.FirstPaymentValue()
	if f.PlanoFamilia {
		total -= FamilyPlanDiscount
	}
	return total + EnrollmentFee
}

// DisplayedTotalFormatted renders DisplayedTotal with two decimals.
func (f *EnrollmentForm) DisplayedTotalFormatted() string {
	return fmt.Sprintf("%.2f", f.DisplayedTotal())
}

// EnrollmentPayload is the body submitted upstream to finalize a matrícula.
// The first payment is omitted for students already enrolled, the day set is
// omitted when empty, and the CPF is omitted when the pre-registration
// already has one on file.
type EnrollmentPayload struct {
	CPF                      string   `json:"cpf,omitempty"`
	DiaVencimento            int      `json:"dia_vencimento"`
	JaAluno                  bool     `json:"ja_aluno"`
	Plano                    PlanID   `json:"plano"`
	ValorPrimeiraMensalidade *float64 `json:"valor_primeira_mensalidade,omitempty"`
	PlanoFamilia             bool     `json:"plano_familia"`
	DiasHabilitados          []int    `json:"dias_habilitados,omitempty"`
}
