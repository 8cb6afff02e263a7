package severance

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderReport writes a one-page PDF comparing the conciliation and
// litigation scenarios of a breakdown.
func RenderReport(w io.Writer, b Breakdown, meta ReportMeta) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Cálculo de liquidación"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Cálculo de liquidación"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	if meta.ClientName != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Trabajador: %s", meta.ClientName)))
		pdf.Ln(6)
	}
	if meta.CaseRef != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Expediente: %s", meta.CaseRef)))
		pdf.Ln(6)
	}
	if !meta.GeneratedAt.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Fecha: %s", meta.GeneratedAt.Format("2006-01-02")))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, tr(fmt.Sprintf("Antigüedad: %d años, %d meses, %d días", b.Tenure.Years, b.Tenure.Months, b.Tenure.Days)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Salario diario: %s", money(b.DailySalary)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(100, 7, "Concepto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 7, tr("Conciliación"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 7, "Juicio", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, concept := range b.Litigation.Concepts {
		conciliation := "-"
		if amount, ok := b.Conciliation.Amount(concept.Key); ok {
			conciliation = money(amount)
		}
		pdf.CellFormat(100, 7, tr(concept.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, conciliation, "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, money(concept.Amount), "1", 1, "R", false, 0, "")
	}

	rows := []struct {
		label        string
		conciliation decimal.Decimal
		litigation   decimal.Decimal
	}{
		{"Total bruto", b.Conciliation.GrossTotal, b.Litigation.GrossTotal},
		{fmt.Sprintf("Honorarios (%s%% / %s%%)", percent(b.Conciliation.FeeRate), percent(b.Litigation.FeeRate)), b.Conciliation.AttorneyFee, b.Litigation.AttorneyFee},
		{"Neto al trabajador", b.Conciliation.NetTotal, b.Litigation.NetTotal},
	}
	pdf.SetFont("Helvetica", "B", 10)
	for _, row := range rows {
		pdf.CellFormat(100, 7, row.label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(45, 7, money(row.conciliation), "1", 0, "R", true, 0, "")
		pdf.CellFormat(45, 7, money(row.litigation), "1", 1, "R", true, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	delta := fmt.Sprintf("Diferencia juicio vs. conciliación: %s", money(b.Delta))
	if b.DeltaPercent != nil {
		delta += fmt.Sprintf(" (%s%%)", b.DeltaPercent.StringFixed(2))
	}
	pdf.Cell(0, 6, tr(delta))
	pdf.Ln(8)

	if len(b.Warnings) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		for _, warning := range b.Warnings {
			pdf.MultiCell(0, 5, tr("* "+warning), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}
