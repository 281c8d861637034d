package sheets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

func TestValidateTableName(t *testing.T) {
	valid := []string{"Tasks", "My Table_1", "a", "2024 Q3", "snake_case"}
	for _, name := range valid {
		assert.NoError(t, ValidateTableName(name), "name %q", name)
	}

	invalid := []string{"", "My/Table", "dash-ed", "dot.ted", "emoji🙂", "semi;colon"}
	for _, name := range invalid {
		err := ValidateTableName(name)
		require.Error(t, err, "name %q", name)
		assert.ErrorIs(t, err, domain.ErrInvalidTableName)
	}
}

func TestTableID(t *testing.T) {
	assert.Equal(t, "tasks", TableID("Tasks"))
	assert.Equal(t, "my_table_1", TableID("My Table_1"))
	assert.Equal(t, "already_id", TableID("already_id"))
}

func TestDisplayColumnName(t *testing.T) {
	assert.Equal(t, "Status", displayColumnName("status"))
	assert.Equal(t, "Due date", displayColumnName("due date"))
	assert.Equal(t, "ID", displayColumnName("ID"))
	assert.Equal(t, "", displayColumnName(""))
}

func TestBuildTableRequests(t *testing.T) {
	schema := domain.TableSchema{
		"title":  {Type: domain.TypeString},
		"status": {Type: domain.TypeString, Enum: []string{"todo", "doing", "done"}},
		"count":  {Type: domain.TypeInteger},
	}

	table, width, wrap, err := BuildTableRequests(42, "Task List", schema, 3, 2)
	require.NoError(t, err)

	t.Run("table request", func(t *testing.T) {
		req := table.AddTable
		require.NotNil(t, req)
		assert.Equal(t, "task_list", req.Table.TableId)
		assert.Equal(t, "Task List", req.Table.Name)

		rng := req.Table.Range
		assert.Equal(t, int64(42), rng.SheetId)
		// Header plus one blank row, 0-based half-open.
		assert.Equal(t, int64(2), rng.StartRowIndex)
		assert.Equal(t, int64(4), rng.EndRowIndex)
		assert.Equal(t, int64(1), rng.StartColumnIndex)
		assert.Equal(t, int64(4), rng.EndColumnIndex)

		cols := req.Table.ColumnProperties
		require.Len(t, cols, 3)

		// Properties are ordered by name: count, status, title.
		assert.Equal(t, "Count", cols[0].ColumnName)
		assert.Equal(t, "TEXT", cols[0].ColumnType)
		assert.Nil(t, cols[0].DataValidationRule)

		assert.Equal(t, "Status", cols[1].ColumnName)
		assert.Equal(t, "DROPDOWN", cols[1].ColumnType)
		require.NotNil(t, cols[1].DataValidationRule)
		cond := cols[1].DataValidationRule.Condition
		assert.Equal(t, "ONE_OF_LIST", cond.Type)
		require.Len(t, cond.Values, 3)
		assert.Equal(t, "todo", cond.Values[0].UserEnteredValue)
		assert.Equal(t, "doing", cond.Values[1].UserEnteredValue)
		assert.Equal(t, "done", cond.Values[2].UserEnteredValue)

		assert.Equal(t, "Title", cols[2].ColumnName)
		assert.Equal(t, "TEXT", cols[2].ColumnType)

		for i, col := range cols {
			assert.Equal(t, int64(i), col.ColumnIndex)
		}
	})

	t.Run("width request", func(t *testing.T) {
		req := width.UpdateDimensionProperties
		require.NotNil(t, req)
		assert.Equal(t, "COLUMNS", req.Range.Dimension)
		assert.Equal(t, int64(1), req.Range.StartIndex)
		assert.Equal(t, int64(4), req.Range.EndIndex)
		assert.Equal(t, int64(DefaultColumnPixelWidth), req.Properties.PixelSize)
		assert.Equal(t, "pixelSize", req.Fields)
	})

	t.Run("wrap request", func(t *testing.T) {
		req := wrap.RepeatCell
		require.NotNil(t, req)
		assert.Equal(t, table.AddTable.Table.Range, req.Range)
		assert.Equal(t, "WRAP", req.Cell.UserEnteredFormat.WrapStrategy)
		assert.Equal(t, "userEnteredFormat.wrapStrategy", req.Fields)
	})
}

func TestBuildTableRequestsOrigin(t *testing.T) {
	// Zero indexes must survive serialization; the API treats an absent
	// start index as 0 only by accident of the default.
	schema := domain.TableSchema{"a": {Type: domain.TypeString}}
	table, width, _, err := BuildTableRequests(0, "T", schema, 1, 1)
	require.NoError(t, err)

	rng := table.AddTable.Table.Range
	assert.Equal(t, int64(0), rng.StartRowIndex)
	assert.Equal(t, int64(0), rng.StartColumnIndex)
	assert.Contains(t, rng.ForceSendFields, "StartRowIndex")
	assert.Contains(t, rng.ForceSendFields, "StartColumnIndex")
	assert.Contains(t, width.UpdateDimensionProperties.Range.ForceSendFields, "StartIndex")
}

func TestBuildTableRequestsRejects(t *testing.T) {
	schema := domain.TableSchema{"a": {Type: domain.TypeString}}

	_, _, _, err := BuildTableRequests(1, "bad/name", schema, 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTableName)

	_, _, _, err = BuildTableRequests(1, "Empty", domain.TableSchema{}, 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartialApplyError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &PartialApplyError{
		Applied: []string{"addTable"},
		Failed:  "updateDimensionProperties",
		Err:     cause,
	}

	assert.Contains(t, err.Error(), "updateDimensionProperties")
	assert.Contains(t, err.Error(), "addTable")
	assert.ErrorIs(t, err, cause)

	var partial *PartialApplyError
	assert.ErrorAs(t, error(err), &partial)
}
