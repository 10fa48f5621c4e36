package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"painel/internal/models"
	"painel/internal/pagination"
	"painel/internal/progress"
)

// now is the service clock. Tests replace it.
var now = time.Now

// TransactionInput holds the user-editable fields of a transaction.
type TransactionInput struct {
	Vehicle      string
	LicensePlate string
	Category     models.Category
	Amount       decimal.Decimal
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	// GetGoals returns one goal per category, seeding and persisting the
	// defaults on first use.
	GetGoals(ctx context.Context) ([]models.Goal, error)
	// UpdateGoal overwrites the target for category. The celebrated set is
	// left as is, so lowering or raising a target never re-arms or revokes
	// a celebration.
	UpdateGoal(ctx context.Context, category models.Category, target decimal.Decimal) (*models.Goal, error)
}

// GoalProgress is one category's standing against its goal.
type GoalProgress struct {
	Category   models.Category `json:"type"`
	Target     decimal.Decimal `json:"goal"`
	Current    decimal.Decimal `json:"current"`
	Percent    float64         `json:"percent"`
	State      progress.State  `json:"state"`
	Reached    bool            `json:"reached"`
	Celebrated bool            `json:"celebrated"`
}

// Dashboard is the goals overview.
type Dashboard struct {
	Year            int               `json:"year"`
	Month           int               `json:"month"`
	MonthTotal      decimal.Decimal   `json:"month_total"`
	Goals           []GoalProgress    `json:"goals"`
	CelebratedGoals []models.Category `json:"celebrated_goals"`
}

// TodaySummary is the home-page view of the current day.
type TodaySummary struct {
	Date         string               `json:"date"`
	Total        decimal.Decimal      `json:"total"`
	TotalBRL     string               `json:"total_brl"`
	Count        int                  `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
}

// DashboardServicer defines the contract for the dashboard views.
type DashboardServicer interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
	GetToday(ctx context.Context) (*TodaySummary, error)
}

// MonthRef identifies a calendar month.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CategoryTotal is the month total of one category.
type CategoryTotal struct {
	Category models.Category `json:"type"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyReport lists a month's transactions, newest first.
type MonthlyReport struct {
	MonthRef
	Label        string               `json:"label"`
	Total        decimal.Decimal      `json:"total"`
	TotalBRL     string               `json:"total_brl"`
	Count        int                  `json:"count"`
	ByCategory   []CategoryTotal      `json:"by_category"`
	Transactions []models.Transaction `json:"transactions"`
	Previous     MonthRef             `json:"previous"`
	Next         MonthRef             `json:"next"`
}

// ReportFormat is an export file format.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
)

// ReportFile is a rendered export.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportServicer defines the contract for monthly reports.
type ReportServicer interface {
	GetMonthlyReport(ctx context.Context, month MonthRef) (*MonthlyReport, error)
	ExportMonthlyReport(ctx context.Context, month MonthRef, format ReportFormat) (*ReportFile, error)
	// CurrentMonth returns the month containing now in the report location.
	CurrentMonth() MonthRef
}
