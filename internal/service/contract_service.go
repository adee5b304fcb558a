package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/export"
	"github.com/delguerso1/CT-Supera-sub000/pkg/jobs"
	"github.com/delguerso1/CT-Supera-sub000/pkg/storage"
)

// ContractStatus is the lifecycle state of a contract document.
type ContractStatus string

// Contract document states.
const (
	ContractQueued ContractStatus = "queued"
	ContractReady  ContractStatus = "ready"
	ContractFailed ContractStatus = "failed"
)

// ContractDocument tracks a rendered enrollment contract.
type ContractDocument struct {
	ID        string         `json:"id"`
	AlunoNome string         `json:"aluno_nome"`
	Status    ContractStatus `json:"status"`
	URL       string         `json:"url,omitempty"`
	ExpiresAt time.Time      `json:"expires_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ContractRequest carries the data printed on the contract.
type ContractRequest struct {
	AlunoNome        string        `json:"aluno_nome" validate:"required"`
	CPF              string        `json:"cpf"`
	Plano            models.PlanID `json:"plano"`
	DiasSemana       []string      `json:"dias_semana"`
	DiaVencimento    int           `json:"dia_vencimento"`
	PrimeiraParcela  string        `json:"primeira_parcela"`
	TotalPrimeiroAto string        `json:"total_primeiro_ato"`
	PlanoFamilia     bool          `json:"plano_familia"`
}

// ContractService renders enrollment contract PDFs in the background and
// hands out short-lived signed download links.
type ContractService struct {
	exporter *export.PDFExporter
	store    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	queue    *jobs.Queue
	logger   *zap.Logger

	mu   sync.RWMutex
	docs map[string]*contractRecord
}

type contractRecord struct {
	doc  ContractDocument
	path string
	data export.ContractData
}

// ContractQueueConfig sizes the render worker pool.
type ContractQueueConfig struct {
	Workers int
	Retries int
}

// NewContractService constructs the contract service.
func NewContractService(exporter *export.PDFExporter, store *storage.LocalStorage, signer *storage.SignedURLSigner, cfg ContractQueueConfig, logger *zap.Logger) *ContractService {
	if exporter == nil {
		exporter = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ContractService{
		exporter: exporter,
		store:    store,
		signer:   signer,
		logger:   logger,
		docs:     make(map[string]*contractRecord),
	}
	s.queue = jobs.NewQueue("contracts", s.render, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the render workers.
func (s *ContractService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the render workers.
func (s *ContractService) Stop() {
	s.queue.Stop()
}

// Generate queues a contract render and returns the tracking document.
func (s *ContractService) Generate(req ContractRequest) (*ContractDocument, error) {
	if req.AlunoNome == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "informe o nome do aluno")
	}
	record := &contractRecord{
		doc: ContractDocument{
			ID:        uuid.NewString(),
			AlunoNome: req.AlunoNome,
			Status:    ContractQueued,
			CreatedAt: time.Now().UTC(),
		},
		data: export.ContractData{
			AlunoNome:        req.AlunoNome,
			CPF:              req.CPF,
			Plano:            string(req.Plano),
			DiasSemana:       req.DiasSemana,
			DiaVencimento:    req.DiaVencimento,
			PrimeiraParcela:  req.PrimeiraParcela,
			TotalPrimeiroAto: req.TotalPrimeiroAto,
			PlanoFamilia:     req.PlanoFamilia,
		},
	}
	s.mu.Lock()
	s.docs[record.doc.ID] = record
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: record.doc.ID, Type: "contract.render"}); err != nil {
		s.mu.Lock()
		delete(s.docs, record.doc.ID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue contract render")
	}
	doc := record.doc
	return &doc, nil
}

// Get returns the document state, attaching a fresh signed URL when ready.
func (s *ContractService) Get(docID string) (*ContractDocument, error) {
	s.mu.RLock()
	record, ok := s.docs[docID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "contrato não encontrado")
	}
	doc := record.doc
	path := record.path
	s.mu.RUnlock()

	if doc.Status == ContractReady && s.signer != nil {
		token, expiresAt, err := s.signer.Generate(doc.ID, path)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
		}
		doc.URL = token
		doc.ExpiresAt = expiresAt
	}
	return &doc, nil
}

// Resolve validates a signed download token and returns the stored file path.
func (s *ContractService) Resolve(token string) (string, error) {
	if s.signer == nil || s.store == nil {
		return "", appErrors.Clone(appErrors.ErrNotFound, "contratos desabilitados")
	}
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "link de download inválido ou expirado")
	}
	return s.store.Path(relPath), nil
}

func (s *ContractService) render(_ context.Context, job jobs.Job) error {
	s.mu.RLock()
	record, ok := s.docs[job.ID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	pdf, err := s.exporter.RenderContract(record.data)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}
	relPath := fmt.Sprintf("contratos/%s.pdf", job.ID)
	if s.store != nil {
		if _, err := s.store.Save(relPath, pdf); err != nil {
			s.fail(job.ID, err)
			return err
		}
	}

	s.mu.Lock()
	record.path = relPath
	record.doc.Status = ContractReady
	s.mu.Unlock()
	s.logger.Info("contract rendered", zap.String("doc_id", job.ID))
	return nil
}

func (s *ContractService) fail(docID string, err error) {
	s.mu.Lock()
	if record, ok := s.docs[docID]; ok {
		record.doc.Status = ContractFailed
	}
	s.mu.Unlock()
	s.logger.Error("contract render failed", zap.String("doc_id", docID), zap.Error(err))
}
