package schedule

import (
	"database/sql"

	"aquaorders/internal/schedule/controller"
	"aquaorders/internal/schedule/service"
	workflowrepo "aquaorders/internal/workflow/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ScheduleController {
	orderRepo := workflowrepo.NewMySQLOrderRepository(db)
	svc := service.NewScheduleService(orderRepo, logger)
	return controller.NewScheduleController(svc, logger)
}
