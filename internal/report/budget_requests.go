// Package report builds downloadable spreadsheets for the admin panel.
package report

import (
	"fmt"
	"strings"
	"time"

	"dnl-site-backend-go/internal/models"

	"github.com/xuri/excelize/v2"
)

const budgetSheet = "Pedidos"

var budgetHeaders = []struct {
	label string
	width float64
}{
	{"Data", 18},
	{"Nome", 24},
	{"E-mail", 28},
	{"Telemóvel", 16},
	{"Tipo de Obra", 18},
	{"Estado", 14},
	{"Mensagem", 50},
	{"Anexos", 60},
}

// BudgetRequestsXLSX lays out one row per request under a title and a header
// row. The caller owns the returned file and must close it.
func BudgetRequestsXLSX(requests []models.BudgetRequest, generatedAt time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(budgetSheet)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, err
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F3A5F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorder("000000"),
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder("CCCCCC"),
	})

	_ = f.SetCellValue(budgetSheet, "A1", "Pedidos de Orçamento - DNL Remodelações")
	_ = f.SetCellStyle(budgetSheet, "A1", "A1", titleStyle)
	_ = f.SetRowHeight(budgetSheet, 1, 30)
	_ = f.SetCellValue(budgetSheet, "A2", fmt.Sprintf("Gerado em: %s", generatedAt.Format("2006-01-02 15:04")))

	const headerRow = 4
	for i, h := range budgetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(budgetSheet, cell, h.label)
		_ = f.SetCellStyle(budgetSheet, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(budgetSheet, col, col, h.width)
	}

	for r, b := range requests {
		row := headerRow + 1 + r
		values := []any{
			formatDate(b.CreatedAt),
			b.Name,
			b.Email,
			b.Phone,
			b.Type,
			statusLabel(b.Status),
			b.Description,
			strings.Join(b.Attachments, "\n"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(budgetSheet, cell, v)
			_ = f.SetCellStyle(budgetSheet, cell, cell, dataStyle)
		}
	}
	return f, nil
}

func thinBorder(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func statusLabel(s models.BudgetStatus) string {
	switch s {
	case models.BudgetContacted:
		return "Contactado"
	case models.BudgetPending:
		return "Pendente"
	default:
		return string(s)
	}
}
