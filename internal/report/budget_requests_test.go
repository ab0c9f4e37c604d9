package report

import (
	"testing"
	"time"

	"dnl-site-backend-go/internal/models"
)

func TestBudgetRequestsXLSX(t *testing.T) {
	created := time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)
	f, err := BudgetRequestsXLSX([]models.BudgetRequest{
		{
			Name:        "Maria Silva",
			Email:       "maria@example.com",
			Phone:       "912345678",
			Type:        "Residencial",
			Description: "Renovar cozinha",
			Attachments: []string{"https://cdn/1.png", "https://cdn/2.png"},
			Status:      models.BudgetPending,
			CreatedAt:   created,
		},
		{Name: "Rui", Email: "rui@example.com", Status: models.BudgetContacted},
	}, created)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != budgetSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	cases := map[string]string{
		"A1": "Pedidos de Orçamento - DNL Remodelações",
		"A4": "Data",
		"H4": "Anexos",
		"A5": "2024-06-03 14:30",
		"B5": "Maria Silva",
		"F5": "Pendente",
		"H5": "https://cdn/1.png\nhttps://cdn/2.png",
		"B6": "Rui",
		"F6": "Contactado",
	}
	for cell, want := range cases {
		got, err := f.GetCellValue(budgetSheet, cell)
		if err != nil {
			t.Fatalf("%s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", cell, want, got)
		}
	}
}
