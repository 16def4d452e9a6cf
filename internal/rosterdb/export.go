package rosterdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/parquet"
)

// ExportRoster writes every employee of the store to a Parquet file.
func ExportRoster(ctx context.Context, store contract.RosterStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve employees: %w", err)
	}
	if len(employees) == 0 {
		return errors.New("no employees found to export")
	}

	if err := parquet.WriteEmployeesParquet(parquet.ConvertEmployees(employees), outputFile); err != nil {
		return fmt.Errorf("failed to write employees: %w", err)
	}
	fmt.Printf("Exported %d employees to: %s\n", len(employees), outputFile)
	fmt.Println("The file can be re-imported with: attrition roster seed --seed-file", outputFile)
	return nil
}
