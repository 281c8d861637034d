package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwork-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google/sheets"
)

var (
	sheetsSpreadsheetID string
	sheetsSheetID       int64
	sheetsColumns       []string
	sheetsRecordsFile   string
	sheetsStartRow      int64
	sheetsEndRow        int64
	sheetsStartCol      int64
	sheetsEndCol        int64
	sheetsSchemaFile    string
	sheetsTableRow      int64
	sheetsTableCol      int64
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Spreadsheet operations",
}

var sheetsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newTabular(cmd.Context())
		if err != nil {
			return err
		}
		id, err := svc.CreateSpreadsheet(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var sheetsAddSheetCmd = &cobra.Command{
	Use:   "add-sheet <title>",
	Short: "Add a sheet (tab) to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := resolveSpreadsheet(); err != nil {
			return err
		}
		svc, err := newTabular(cmd.Context())
		if err != nil {
			return err
		}
		sheetID, err := svc.AddSheet(cmd.Context(), sheetsSpreadsheetID, args[0])
		if err != nil {
			return err
		}
		cmd.Printf("%d\n", sheetID)
		return nil
	},
}

var sheetsNameCmd = &cobra.Command{
	Use:   "name",
	Short: "Resolve a numeric sheet ID to its title",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := resolveSpreadsheet(); err != nil {
			return err
		}
		svc, err := newTabular(cmd.Context())
		if err != nil {
			return err
		}
		name, err := svc.SheetName(cmd.Context(), sheetRef())
		if err != nil {
			return err
		}
		cmd.Println(name)
		return nil
	},
}

var sheetsAppendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append JSON records as rows",
	Long: `Append records to a sheet. Records are a JSON array of objects read
from --records (or stdin when "-"); --columns fixes the positional
mapping. Fields absent from a record become empty cells.`,
	RunE: runSheetsAppend,
}

var sheetsReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read cell values as JSON",
	Long: `Read a sheet. With --start-row/--end-row a bounded range is read
(optionally bounded by --start-col/--end-col, end exclusive); without
them the whole sheet is read and each row is padded to the header
width.`,
	RunE: runSheetsRead,
}

var sheetsAddTableCmd = &cobra.Command{
	Use:   "add-table <name>",
	Short: "Create a table from a JSON schema",
	Long: `Create a structured table from a schema file. The schema maps
property names to {"type": ..., "enum": [...]} descriptors; enum
properties become dropdown columns. The table gets a header row, one
blank row, fixed column widths and wrapped text.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheetsAddTable,
}

func init() {
	for _, c := range []*cobra.Command{sheetsAddSheetCmd, sheetsNameCmd, sheetsAppendCmd, sheetsReadCmd, sheetsAddTableCmd} {
		c.Flags().StringVar(&sheetsSpreadsheetID, "spreadsheet", "", "spreadsheet document ID (default from config)")
	}
	for _, c := range []*cobra.Command{sheetsNameCmd, sheetsAppendCmd, sheetsReadCmd, sheetsAddTableCmd} {
		c.Flags().Int64Var(&sheetsSheetID, "sheet", 0, "numeric sheet (tab) ID")
	}

	sheetsAppendCmd.Flags().StringSliceVar(&sheetsColumns, "columns", nil, "ordered column names")
	sheetsAppendCmd.Flags().StringVar(&sheetsRecordsFile, "records", "-", "JSON records file, or - for stdin")
	sheetsAppendCmd.MarkFlagRequired("columns") //nolint:errcheck

	sheetsReadCmd.Flags().Int64Var(&sheetsStartRow, "start-row", 0, "first row, 1-indexed")
	sheetsReadCmd.Flags().Int64Var(&sheetsEndRow, "end-row", 0, "last row, inclusive")
	sheetsReadCmd.Flags().Int64Var(&sheetsStartCol, "start-col", 0, "first column, 1-indexed")
	sheetsReadCmd.Flags().Int64Var(&sheetsEndCol, "end-col", 0, "end column, exclusive")

	sheetsAddTableCmd.Flags().StringVar(&sheetsSchemaFile, "schema", "", "JSON schema file")
	sheetsAddTableCmd.Flags().Int64Var(&sheetsTableRow, "row", 1, "top row of the table, 1-indexed")
	sheetsAddTableCmd.Flags().Int64Var(&sheetsTableCol, "col", 1, "left column of the table, 1-indexed")
	sheetsAddTableCmd.MarkFlagRequired("schema") //nolint:errcheck

	sheetsCmd.AddCommand(sheetsCreateCmd)
	sheetsCmd.AddCommand(sheetsAddSheetCmd)
	sheetsCmd.AddCommand(sheetsNameCmd)
	sheetsCmd.AddCommand(sheetsAppendCmd)
	sheetsCmd.AddCommand(sheetsReadCmd)
	sheetsCmd.AddCommand(sheetsAddTableCmd)
	rootCmd.AddCommand(sheetsCmd)
}

func sheetRef() domain.SheetRef {
	return domain.SheetRef{SpreadsheetID: sheetsSpreadsheetID, SheetID: sheetsSheetID}
}

// resolveSpreadsheet fills the spreadsheet ID from config when the
// flag was not passed.
func resolveSpreadsheet() error {
	if sheetsSpreadsheetID != "" {
		return nil
	}
	if err := ensureStores(); err != nil {
		return err
	}
	sheetsSpreadsheetID = configStore.GetString(file.KeySpreadsheetID)
	if sheetsSpreadsheetID == "" {
		return fmt.Errorf("%w: pass --spreadsheet or set %s in the config", domain.ErrInvalidInput, file.KeySpreadsheetID)
	}
	return nil
}

func runSheetsAppend(cmd *cobra.Command, _ []string) error {
	if err := resolveSpreadsheet(); err != nil {
		return err
	}
	records, err := readRecords(cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc, err := newTabular(cmd.Context())
	if err != nil {
		return err
	}
	if err := svc.AppendRecords(cmd.Context(), sheetRef(), domain.ColumnOrder(sheetsColumns), records); err != nil {
		return err
	}

	cmd.Printf("Appended %d records\n", len(records))
	return nil
}

// readRecords decodes the records array from --records or stdin.
func readRecords(stdin io.Reader) ([]domain.Record, error) {
	var r io.Reader = stdin
	if sheetsRecordsFile != "-" {
		f, err := os.Open(sheetsRecordsFile)
		if err != nil {
			return nil, fmt.Errorf("records file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []domain.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}
	return records, nil
}

func runSheetsRead(cmd *cobra.Command, _ []string) error {
	if err := resolveSpreadsheet(); err != nil {
		return err
	}
	svc, err := newTabular(cmd.Context())
	if err != nil {
		return err
	}

	var out any
	if sheetsStartRow > 0 {
		rows, err := svc.ReadRange(cmd.Context(), sheetRef(),
			sheetsStartRow, sheetsEndRow, sheetsStartCol, sheetsEndCol)
		if err != nil {
			return err
		}
		out = rows
	} else {
		header, rows, err := svc.ReadAll(cmd.Context(), sheetRef())
		if err != nil {
			return err
		}
		out = map[string]any{"header": header, "rows": rows}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runSheetsAddTable(cmd *cobra.Command, args []string) error {
	if err := resolveSpreadsheet(); err != nil {
		return err
	}
	data, err := os.ReadFile(sheetsSchemaFile)
	if err != nil {
		return fmt.Errorf("schema file: %w", err)
	}
	var schema domain.TableSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	svc, err := newTabular(cmd.Context())
	if err != nil {
		return err
	}

	err = svc.AddTable(cmd.Context(), sheetRef(), args[0], schema, sheetsTableRow, sheetsTableCol)

	// Partial failures leave a usable table behind; report what stuck.
	var partial *sheets.PartialApplyError
	if errors.As(err, &partial) {
		cmd.PrintErrf("Table %q created, but some formatting failed: %v\n", args[0], partial)
		return err
	}
	if err != nil {
		return err
	}

	cmd.Printf("Created table %q\n", args[0])
	return nil
}
