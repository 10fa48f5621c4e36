package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"painel/internal/aggregation"
	apperrors "painel/internal/errors"
	"painel/internal/models"
	"painel/internal/storage"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var reportHeaders = []string{"Data", "Veículo", "Placa", "Tipo", "Valor"}

const reportSheet = "Relatório"

// reportService builds monthly reports.
type reportService struct {
	store storage.Adapter
	loc   *time.Location
}

// NewReportService creates a new ReportServicer. Month boundaries and
// printed dates use loc.
func NewReportService(store storage.Adapter, loc *time.Location) ReportServicer {
	if loc == nil {
		loc = time.Local
	}
	return &reportService{store: store, loc: loc}
}

func (s *reportService) CurrentMonth() MonthRef {
	t := now().In(s.loc)
	return MonthRef{Year: t.Year(), Month: int(t.Month())}
}

// GetMonthlyReport returns the transactions of month, newest first, with
// totals and links to the neighbouring months.
func (s *reportService) GetMonthlyReport(ctx context.Context, month MonthRef) (*MonthlyReport, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows := aggregation.InMonth(s.store.LoadTransactions(ctx), month.Year, time.Month(month.Month), s.loc)
	totals := aggregation.TotalsByCategory(rows)

	byCategory := make([]CategoryTotal, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		byCategory = append(byCategory, CategoryTotal{Category: c, Total: totals[c]})
	}

	total := aggregation.Total(rows)
	return &MonthlyReport{
		MonthRef:     month,
		Label:        monthLabel(month),
		Total:        total,
		TotalBRL:     models.FormatBRL(total),
		Count:        len(rows),
		ByCategory:   byCategory,
		Transactions: rows,
		Previous:     shiftMonth(month, -1),
		Next:         shiftMonth(month, 1),
	}, nil
}

// ExportMonthlyReport renders the month's rows as a CSV or XLSX file.
func (s *reportService) ExportMonthlyReport(ctx context.Context, month MonthRef, format ReportFormat) (*ReportFile, error) {
	report, err := s.GetMonthlyReport(ctx, month)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("relatorio_%04d-%02d", month.Year, month.Month)
	switch format {
	case ReportFormatCSV:
		data, err := s.renderCSV(report)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &ReportFile{Filename: base + ".csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
	case ReportFormatXLSX:
		data, err := s.renderXLSX(report)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &ReportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "format must be csv or xlsx")
	}
}

func (s *reportService) renderCSV(report *MonthlyReport) ([]byte, error) {
	var buf bytes.Buffer
	// UTF-8 BOM so spreadsheet tools pick the right encoding for accents.
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(reportHeaders); err != nil {
		return nil, err
	}
	for _, tx := range report.Transactions {
		if err := w.Write([]string{
			tx.Date.In(s.loc).Format("02/01/2006"),
			tx.Vehicle,
			tx.LicensePlate,
			string(tx.Category),
			tx.Amount.StringFixed(2),
		}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"Total", "", "", "", report.Total.StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) renderXLSX(report *MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(reportSheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}

	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, err
	}

	row := 2
	for _, tx := range report.Transactions {
		amount, _ := tx.Amount.Float64()
		values := []interface{}{
			tx.Date.In(s.loc).Format("02/01/2006"),
			tx.Vehicle,
			tx.LicensePlate,
			string(tx.Category),
			amount,
		}
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
		row++
	}

	total, _ := report.Total.Float64()
	if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", row), &[]interface{}{"Total", "", "", "", total}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(reportSheet, "E2", fmt.Sprintf("E%d", row), moneyStyle); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(reportSheet, "A", "A", 12)
	_ = f.SetColWidth(reportSheet, "B", "B", 25)
	_ = f.SetColWidth(reportSheet, "C", "C", 12)
	_ = f.SetColWidth(reportSheet, "D", "D", 26)
	_ = f.SetColWidth(reportSheet, "E", "E", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func validateMonth(m MonthRef) error {
	if m.Month < 1 || m.Month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if m.Year < 1970 || m.Year > 9999 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year out of range")
	}
	return nil
}

func shiftMonth(m MonthRef, delta int) MonthRef {
	t := time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return MonthRef{Year: t.Year(), Month: int(t.Month())}
}

func monthLabel(m MonthRef) string {
	return fmt.Sprintf("%s de %d", monthNames[m.Month-1], m.Year)
}
