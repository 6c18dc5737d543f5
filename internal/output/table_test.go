package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splinterlabs/splinter/internal/output"
)

func TestTable_Render(t *testing.T) {
	t.Parallel()
	table := output.NewTable("KEY", "VALUE")
	table.AddRow("output.default_format", "auto")
	table.AddRow("logging.level", "error")

	got := table.String()
	want := "KEY                    VALUE\n" +
		"---------------------  -----\n" +
		"output.default_format  auto \n" +
		"logging.level          error\n"
	assert.Equal(t, want, got)
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()
	table := output.NewTable()
	assert.Empty(t, table.String())
}

func TestTable_ShortRow(t *testing.T) {
	t.Parallel()
	table := output.NewTable("A", "B")
	table.AddRow("only")

	got := table.String()
	// Missing cells are padded, not dropped
	assert.Equal(t, "A     B\n----  -\nonly   \n", got)
}
