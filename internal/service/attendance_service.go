package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type attendanceUpstream interface {
	VerificarCheckin(ctx context.Context, token string, turmaID int) (*models.CheckinStatus, error)
	RegistrarPresenca(ctx context.Context, token string, turmaID int, alunoIDs []int) error
	RelatorioPresenca(ctx context.Context, token string, filter models.AttendanceReportFilter) ([]models.Presenca, error)
	CorrigirPresenca(ctx context.Context, token string, presencaID int, presente bool) (*models.Presenca, error)
}

// AttendanceService drives the daily check-in flow and attendance reports.
type AttendanceService struct {
	upstream  attendanceUpstream
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(up attendanceUpstream, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{upstream: up, validator: validate, logger: logger}
}

// Checkin reports whether today's roll call already happened for the turma.
func (s *AttendanceService) Checkin(ctx context.Context, token string, turmaID int) (*models.CheckinStatus, error) {
	return s.upstream.VerificarCheckin(ctx, token, turmaID)
}

// Registrar records today's roll call. A turma checked in once per day; the
// upstream rejects duplicates, so the state is verified first to spare the
// professor a confusing error.
func (s *AttendanceService) Registrar(ctx context.Context, token string, turmaID int, presentes []int) error {
	status, err := s.upstream.VerificarCheckin(ctx, token, turmaID)
	if err != nil {
		return err
	}
	if status.Registrado {
		return appErrors.Clone(appErrors.ErrConflict, "A presença de hoje já foi registrada para esta turma.")
	}
	if err := s.upstream.RegistrarPresenca(ctx, token, turmaID, presentes); err != nil {
		return err
	}
	s.logger.Info("attendance recorded",
		zap.Int("turma_id", turmaID),
		zap.Int("presentes", len(presentes)))
	return nil
}

// Relatorio returns attendance records matching the filter.
func (s *AttendanceService) Relatorio(ctx context.Context, token string, filter models.AttendanceReportFilter) ([]models.Presenca, error) {
	return s.upstream.RelatorioPresenca(ctx, token, filter)
}

// Corrigir flips a single attendance record after the fact.
func (s *AttendanceService) Corrigir(ctx context.Context, token string, presencaID int, presente bool) (*models.Presenca, error) {
	return s.upstream.CorrigirPresenca(ctx, token, presencaID, presente)
}
