package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tally/internal/handlers"
	"tally/internal/logger"
	"tally/internal/models"
	"tally/internal/services"
	"tally/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Category{},
		&models.Tag{},
		&models.Transaction{},
		&models.Note{},
		&models.BalanceSnapshot{},
		&models.Loan{},
		&models.Saving{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	for _, name := range models.SeedCategories {
		if err := db.Where("name = ?", name).FirstOrCreate(&models.Category{}, models.Category{Name: name}).Error; err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	ledgerService := services.NewLedgerService(db)
	reportService := services.NewReportService(db)

	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	reportHandler := handlers.NewReportHandler(reportService)
	noteHandler := handlers.NewNoteHandler(ledgerService)

	router := gin.New()
	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("", transactionHandler.ClearTransactions)

	v1.GET("/categories", transactionHandler.GetCategories)
	v1.GET("/balance", transactionHandler.GetBalance)
	v1.POST("/balance/snapshots", transactionHandler.CreateBalanceSnapshot)
	v1.POST("/demo-data", transactionHandler.SeedDemoData)

	reports := v1.Group("/reports")
	reports.GET("/monthly", reportHandler.GetMonthlySpending)
	reports.GET("/daily", reportHandler.GetDailySpending)
	reports.GET("/cumulative", reportHandler.GetCumulativeSpending)
	reports.GET("/by-category", reportHandler.GetExpensesByCategory)
	reports.GET("/by-month", reportHandler.GetExpensesByMonth)
	reports.GET("/by-tag", reportHandler.GetExpensesByTag)
	reports.GET("/by-category-and-month", reportHandler.GetExpensesByCategoryAndMonth)

	notes := v1.Group("/notes")
	notes.POST("", noteHandler.CreateNote)
	notes.GET("", noteHandler.GetNotes)
	notes.GET("/dates", noteHandler.GetNoteDates)
	notes.DELETE("/:id", noteHandler.DeleteNote)

	return &testApp{DB: db, Router: router}
}

// doRequest performs an HTTP request against the test router.
func (app *testApp) doRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON unmarshals a response body into a generic map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// requireStatus fails the test when the response status does not match.
func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d\nbody: %s", rec.Code, want, rec.Body.String())
	}
}
