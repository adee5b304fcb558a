package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets and enrollment contracts into PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a tabular PDF with an optional title, used for financial
// report exports.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ContractData carries the fields printed on an enrollment contract.
type ContractData struct {
	AlunoNome        string
	CPF              string
	Plano            string
	DiasSemana       []string
	DiaVencimento    int
	PrimeiraParcela  string
	TotalPrimeiroAto string
	PlanoFamilia     bool
}

// ContractClauses is the fixed contract body printed under the student data.
// The matrícula fee clause mirrors the signed paper contract.
var ContractClauses = []string{
	"Matrícula e Uniforme: no primeiro ato é paga uma matrícula no valor de R$ 90,00 e a respectiva mensalidade. O valor da matrícula já inclui o fornecimento de 01 (uma) camisa de treino do CT SUPERA.",
	"Mensalidades: as mensalidades vencem no dia acordado neste contrato e devem ser pagas via PIX, pagamento bancário ou na secretaria do CT.",
	"Plano Família: quando ativo, aplica-se o desconto de R$ 10,00 por mensalidade.",
	"Frequência: o aluno treina nos dias da semana habilitados conforme o plano contratado.",
}

// RenderContract produces the enrollment contract/receipt PDF for a newly
// finalized matrícula.
func (e *PDFExporter) RenderContract(data ContractData) ([]byte, error) {
	if data.AlunoNome == "" {
		return nil, fmt.Errorf("contract requires the student name")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("CT SUPERA - Contrato de Matrícula"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(55, 8, tr(label), "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, tr(value), "", 1, "", false, 0, "")
	}

	line("Aluno:", data.AlunoNome)
	line("CPF:", data.CPF)
	line("Plano:", data.Plano)
	if len(data.DiasSemana) > 0 {
		line("Dias de treino:", strings.Join(data.DiasSemana, ", "))
	}
	line("Vencimento:", fmt.Sprintf("dia %d", data.DiaVencimento))
	if data.PrimeiraParcela != "" {
		line("Primeira mensalidade:", "R$ "+data.PrimeiraParcela)
	}
	if data.TotalPrimeiroAto != "" {
		line("Total do primeiro ato:", "R$ "+data.TotalPrimeiroAto)
	}
	if data.PlanoFamilia {
		line("Plano família:", "sim")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	for _, clause := range ContractClauses {
		pdf.MultiCell(0, 5.5, tr(clause), "", "J", false)
		pdf.Ln(2)
	}

	pdf.Ln(14)
	pdf.CellFormat(0, 6, tr("_________________________________"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("Assinatura do responsável"), "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render contract pdf: %w", err)
	}
	return buf.Bytes(), nil
}
