package refdata

import (
	"database/sql"
	"time"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, refreshInterval time.Duration, logger *zap.Logger) (*Catalog, *Refresher) {
	repo := NewMySQLRepository(db)
	catalog := NewCatalog(repo, logger)
	refresher := NewRefresher(catalog, refreshInterval, logger)
	return catalog, refresher
}
