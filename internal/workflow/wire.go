package workflow

import (
	"database/sql"

	"aquaorders/internal/config"
	"aquaorders/internal/refdata"
	"aquaorders/internal/workflow/controller"
	"aquaorders/internal/workflow/repository"
	"aquaorders/internal/workflow/service"
	"aquaorders/internal/workflow/usecase"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, catalog *refdata.Catalog, cfg *config.Config, logger *zap.Logger) *controller.TransitionController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	historyRepo := repository.NewMySQLHistoryRepository(db)

	transitionSvc := service.NewTransitionService(db, orderRepo, historyRepo, catalog, logger, cfg.Order.TxTimeout)

	uc := usecase.NewApplyTransitionUseCase(transitionSvc, logger)

	return controller.NewTransitionController(uc, logger)
}
