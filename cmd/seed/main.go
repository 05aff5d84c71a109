package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lib/pq"
	"github.com/vinocave/vinocave-backend/config"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a wine catalog from an XLSX export. Expected columns:
// name | type | vintage | country | region | winery | price | grape varieties
// Grape varieties are separated by ";" within the cell.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	wineRepo := repository.NewWineRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	wines, skipped, err := readWinesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total wines to import: %d (skipped %d invalid rows)\n", len(wines), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := wineRepo.BulkCreate(wines, batchSize); err != nil {
		log.Fatal("Failed to bulk create wines:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total wines imported: %d\n", len(wines))
}

func readWinesFromXLSX(filePath string) ([]model.Wine, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("no data rows found in sheet %q", sheetName)
	}

	var wines []model.Wine
	skipped := 0

	// Row 0 is the header
	for i, row := range rows[1:] {
		wine, ok := parseWineRow(row)
		if !ok {
			fmt.Printf("Skipping row %d: missing name or invalid type\n", i+2)
			skipped++
			continue
		}
		wines = append(wines, wine)
	}

	return wines, skipped, nil
}

func parseWineRow(row []string) (model.Wine, bool) {
	name := strings.TrimSpace(cell(row, 0))
	wineType := model.WineType(strings.ToLower(strings.TrimSpace(cell(row, 1))))

	if name == "" || !model.IsValidWineType(wineType) {
		return model.Wine{}, false
	}

	var varieties pq.StringArray
	for _, v := range strings.Split(cell(row, 7), ";") {
		if v = strings.TrimSpace(v); v != "" {
			varieties = append(varieties, v)
		}
	}

	return model.Wine{
		Name:           name,
		Type:           wineType,
		Vintage:        strings.TrimSpace(cell(row, 2)),
		Country:        strings.TrimSpace(cell(row, 3)),
		Region:         strings.TrimSpace(cell(row, 4)),
		Winery:         strings.TrimSpace(cell(row, 5)),
		Price:          strings.TrimSpace(cell(row, 6)),
		GrapeVarieties: varieties,
	}, true
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
