package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the local test database. Expects a MySQL instance on
// localhost:3306 with a database named 'aquaorders_test'; skips the test
// when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/aquaorders_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"StatusHistory", "Orders", "StatusOrderTypes", "StatusProducts", "StatusDefinitions", "Products", "OrderTypes", "Customers", "OrderCounters"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema needed by the integration tests.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrderCountersTable := `
	CREATE TABLE IF NOT EXISTS OrderCounters (
		category VARCHAR(20) NOT NULL PRIMARY KEY,
		lastNumber INT NOT NULL DEFAULT 0,
		version INT NOT NULL DEFAULT 0
	)`

	createCustomersTable := `
	CREATE TABLE IF NOT EXISTS Customers (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		companyName VARCHAR(255) NOT NULL
	)`

	createOrderTypesTable := `
	CREATE TABLE IF NOT EXISTS OrderTypes (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS Products (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		orderTypeId VARCHAR(64) NOT NULL
	)`

	createStatusDefinitionsTable := `
	CREATE TABLE IF NOT EXISTS StatusDefinitions (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		description VARCHAR(100) NOT NULL,
		displayRank INT NOT NULL DEFAULT 0,
		reasonRequired TINYINT(1) NOT NULL DEFAULT 0
	)`

	createStatusOrderTypesTable := `
	CREATE TABLE IF NOT EXISTS StatusOrderTypes (
		statusId VARCHAR(64) NOT NULL,
		orderTypeId VARCHAR(64) NOT NULL,
		PRIMARY KEY (statusId, orderTypeId)
	)`

	createStatusProductsTable := `
	CREATE TABLE IF NOT EXISTS StatusProducts (
		statusId VARCHAR(64) NOT NULL,
		productId VARCHAR(64) NOT NULL,
		PRIMARY KEY (statusId, productId)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		aquaOrderNumber VARCHAR(30) NOT NULL UNIQUE,
		customerId VARCHAR(64) NOT NULL,
		customerName VARCHAR(255) NOT NULL DEFAULT '',
		orderTypeId VARCHAR(64) NOT NULL,
		orderTypeName VARCHAR(100) NOT NULL DEFAULT '',
		productId VARCHAR(64) NOT NULL,
		productName VARCHAR(255) NOT NULL DEFAULT '',
		material VARCHAR(100) NOT NULL DEFAULT '',
		size VARCHAR(100) NOT NULL DEFAULT '',
		ifsOrderNo VARCHAR(100) NOT NULL DEFAULT '',
		customerPO VARCHAR(100) NOT NULL DEFAULT '',
		quantity INT NOT NULL DEFAULT 1,
		shipQty INT,
		status VARCHAR(50) NOT NULL DEFAULT 'New',
		statusId VARCHAR(64) NOT NULL DEFAULT 'new',
		deliveryDate DATE,
		deliveryWeek VARCHAR(10) NOT NULL DEFAULT '',
		createdBy VARCHAR(100) NOT NULL DEFAULT '',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_week (deliveryWeek),
		INDEX idx_status (status)
	)`

	createStatusHistoryTable := `
	CREATE TABLE IF NOT EXISTS StatusHistory (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		status VARCHAR(50) NOT NULL,
		changedBy VARCHAR(100) NOT NULL,
		timestamp DATETIME NOT NULL,
		reason TEXT,
		revertedFrom VARCHAR(50),
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"OrderCounters", createOrderCountersTable},
		{"Customers", createCustomersTable},
		{"OrderTypes", createOrderTypesTable},
		{"Products", createProductsTable},
		{"StatusDefinitions", createStatusDefinitionsTable},
		{"StatusOrderTypes", createStatusOrderTypesTable},
		{"StatusProducts", createStatusProductsTable},
		{"Orders", createOrdersTable},
		{"StatusHistory", createStatusHistoryTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
