package sequence

import (
	"database/sql"

	"aquaorders/internal/config"
	"aquaorders/internal/refdata"
	"aquaorders/internal/sequence/controller"
	"aquaorders/internal/sequence/repository"
	"aquaorders/internal/sequence/service"
	"aquaorders/internal/sequence/usecase"
	workflowrepo "aquaorders/internal/workflow/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, catalog *refdata.Catalog, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	counterRepo := repository.NewMySQLCounterRepository(db)
	orderRepo := workflowrepo.NewMySQLOrderRepository(db)

	allocatorSvc := service.NewAllocatorService(db, counterRepo, orderRepo, logger, cfg.Order.TxTimeout)

	uc := usecase.NewSubmitOrderUseCase(allocatorSvc, catalog, logger, cfg.Order.MaxRetryAttempts)

	return controller.NewOrderController(uc, logger)
}
