// Package payslipdoc renders a generated payslip as a PDF document.
package payslipdoc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/ujoors/payroll-backend-go/internal/domain/payroll"
)

// Renderer writes payslip PDFs under a base directory.
type Renderer struct {
	baseDir string
}

func NewRenderer(baseDir string) *Renderer {
	return &Renderer{baseDir: baseDir}
}

// Render writes the payslip as <baseDir>/<payslip id>.pdf and returns the
// file path. Amounts are taken verbatim from the payslip; the renderer never
// recomputes anything.
func (r *Renderer) Render(payslip payroll.Payslip, period payroll.PayrollPeriod) (string, error) {
	if err := os.MkdirAll(r.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create payslip directory: %w", err)
	}
	filePath := filepath.Join(r.baseDir, payslip.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if payslip.EmployeeName != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", *payslip.EmployeeName))
		pdf.Ln(6)
	}
	if payslip.EmployeeCode != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Employee code: %s", *payslip.EmployeeCode))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s",
		period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Payment date: %s", period.PaymentDate.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range payslip.Earnings {
		pdf.Cell(120, 6, line.Name)
		pdf.CellFormat(40, 6, line.Amount.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 6, "Total earnings")
	pdf.CellFormat(40, 6, payslip.TotalEarnings.StringFixed(2), "T", 0, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range payslip.Deductions {
		pdf.Cell(120, 6, line.Name)
		pdf.CellFormat(40, 6, line.Amount.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 6, "Total deductions")
	pdf.CellFormat(40, 6, payslip.TotalDeductions.StringFixed(2), "T", 0, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(120, 8, "Net salary")
	pdf.CellFormat(40, 8, payslip.NetSalary.StringFixed(2), "T", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("GOSI base %s, employee contribution %s, employer contribution %s",
		payslip.GOSIBase.StringFixed(2), payslip.GOSIEmployee.StringFixed(2), payslip.GOSIEmployer.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("failed to write payslip pdf: %w", err)
	}

	return filePath, nil
}
