package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/middleware"
	"github.com/delguerso1/CT-Supera-sub000/internal/service"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth         *service.AuthService
	Catalog      *service.CatalogService
	Enrollments  *service.EnrollmentService
	PreCadastros *service.PreCadastroService
	Users        *service.UserService
	Turmas       *service.TurmaService
	CTs          *service.CTService
	Attendance   *service.AttendanceService
	Billing      *service.BillingService
	Contracts    *service.ContractService
	Metrics      *service.MetricsService
}

// Register mounts every route group under the API prefix.
func Register(r *gin.Engine, prefix string, svcs Services) {
	authHandler := NewAuthHandler(svcs.Auth)
	enrollmentHandler := NewEnrollmentHandler(svcs.Enrollments, svcs.Catalog)
	precadastroHandler := NewPreCadastroHandler(svcs.PreCadastros)
	userHandler := NewUserHandler(svcs.Users)
	turmaHandler := NewTurmaHandler(svcs.Turmas, svcs.Catalog)
	ctHandler := NewCTHandler(svcs.CTs)
	attendanceHandler := NewAttendanceHandler(svcs.Attendance)
	billingHandler := NewBillingHandler(svcs.Billing)
	metricsHandler := NewMetricsHandler(svcs.Metrics)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(prefix)

	// Public routes: login, the marketing plan catalog and lead capture.
	api.POST("/auth/login", authHandler.Login)
	api.GET("/planos", enrollmentHandler.Plans)
	api.POST("/precadastros", precadastroHandler.Create)

	authed := api.Group("")
	authed.Use(middleware.Session(svcs.Auth))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	staff := authed.Group("")
	staff.Use(middleware.Staff())

	gerente := authed.Group("")
	gerente.Use(middleware.Gerente())

	// Pre-registrations and the enrollment form flow are staff-only.
	staff.GET("/precadastros", precadastroHandler.List)
	staff.PATCH("/precadastros/:id", precadastroHandler.Update)
	staff.DELETE("/precadastros/:id", precadastroHandler.Delete)
	staff.POST("/precadastros/:id/matricula", enrollmentHandler.Open)
	staff.GET("/matriculas/:formId", enrollmentHandler.Get)
	staff.PATCH("/matriculas/:formId", enrollmentHandler.Update)
	staff.PUT("/matriculas/:formId/plano", enrollmentHandler.SelectPlan)
	staff.PUT("/matriculas/:formId/dias", enrollmentHandler.ToggleDay)
	staff.POST("/matriculas/:formId/confirmar", enrollmentHandler.Submit)
	staff.DELETE("/matriculas/:formId", enrollmentHandler.Cancel)

	// Accounts: managers administer; a user may read their own record.
	gerente.GET("/usuarios", userHandler.List)
	authed.GET("/usuarios/:id", middleware.RequireTipo("gerente", "SELF"), userHandler.Get)
	gerente.POST("/usuarios", userHandler.Create)
	gerente.PATCH("/usuarios/:id", userHandler.Update)
	gerente.PUT("/usuarios/:id/plano-familia", userHandler.SetFamilyPlan)
	gerente.DELETE("/usuarios/:id", userHandler.Delete)
	gerente.POST("/usuarios/:id/resetar-parq", userHandler.ResetParq)

	// Turmas and the weekday catalog.
	authed.GET("/turmas", turmaHandler.List)
	authed.GET("/turmas/diassemana", turmaHandler.WeekDays)
	authed.GET("/turmas/:id", turmaHandler.Get)
	gerente.POST("/turmas", turmaHandler.Create)
	gerente.PUT("/turmas/:id", turmaHandler.Update)
	gerente.DELETE("/turmas/:id", turmaHandler.Delete)
	staff.GET("/turmas/:id/alunos", turmaHandler.Alunos)
	gerente.POST("/turmas/:id/alunos", turmaHandler.AddAlunos)
	gerente.DELETE("/turmas/:id/alunos", turmaHandler.RemoveAlunos)

	// Training centers.
	authed.GET("/cts", ctHandler.List)
	authed.GET("/cts/:id", ctHandler.Get)
	gerente.POST("/cts", ctHandler.Create)
	gerente.PUT("/cts/:id", ctHandler.Update)
	gerente.DELETE("/cts/:id", ctHandler.Delete)

	// Attendance.
	staff.GET("/turmas/:id/checkin", attendanceHandler.Checkin)
	staff.POST("/turmas/:id/checkin", attendanceHandler.Registrar)
	staff.GET("/presencas", attendanceHandler.Relatorio)
	gerente.PATCH("/presencas/:id", attendanceHandler.Corrigir)

	// Financial ledger. Students reach their own dues and PIX charges.
	gerente.GET("/financeiro/mensalidades", billingHandler.ListMensalidades)
	gerente.GET("/financeiro/mensalidades/export", billingHandler.ExportMensalidades)
	gerente.POST("/financeiro/mensalidades", billingHandler.CreateMensalidade)
	gerente.DELETE("/financeiro/mensalidades/:id", billingHandler.DeleteMensalidade)
	gerente.POST("/financeiro/mensalidades/:id/baixa", billingHandler.DarBaixa)
	gerente.GET("/financeiro/dashboard", billingHandler.Dashboard)
	gerente.GET("/financeiro/despesas", billingHandler.ListDespesas)
	gerente.POST("/financeiro/despesas", billingHandler.CreateDespesa)
	gerente.DELETE("/financeiro/despesas/:id", billingHandler.DeleteDespesa)
	gerente.GET("/financeiro/salarios", billingHandler.ListSalarios)
	gerente.POST("/financeiro/salarios/:id/pagar", billingHandler.MarkSalarioPago)
	authed.POST("/financeiro/mensalidades/:id/pix", billingHandler.GerarPix)
	authed.GET("/financeiro/pix/:id", billingHandler.PixStatus)
	authed.GET("/financeiro/pix/:id/aguardar", billingHandler.AguardarPix)
	authed.POST("/financeiro/mensalidades/:id/pagamento-bancario", billingHandler.GerarPagamentoBancario)

	// Enrollment contracts, when enabled.
	if svcs.Contracts != nil {
		contractHandler := NewContractHandler(svcs.Contracts)
		staff.POST("/contratos", contractHandler.Generate)
		staff.GET("/contratos/:id", contractHandler.Get)
		api.GET("/contratos/download", contractHandler.Download)
	}
}
