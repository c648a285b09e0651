package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func createInput(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"transaction_id", "product_id", "price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{1001, "P1", 20}))
	path := filepath.Join(t.TempDir(), "transactions.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadOptionsLayering(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "pricefix.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
filename = "from-config.xlsx"
sheet_name = "Q1"
adjustment_factor = 0.5
create_backup = false
`), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfg, "--factor", "0.75"}))

	opts, err := loadOptions(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-config.xlsx", opts.Filename)
	assert.Equal(t, "Q1", opts.SheetName)
	assert.Equal(t, 0.75, opts.AdjustmentFactor)
	assert.False(t, opts.CreateBackup)

	opts, err = loadOptions(cmd, []string{"positional.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "positional.xlsx", opts.Filename)
}

func TestLoadOptionsDefaults(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--replace-chart"}))

	opts, err := loadOptions(cmd, []string{"book.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", opts.Filename)
	assert.Equal(t, 0.9, opts.AdjustmentFactor)
	assert.True(t, opts.CreateBackup)
	assert.True(t, opts.ReplaceChart)
	assert.Empty(t, opts.SheetName)
}

func TestLoadOptionsRequiresFilename(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	_, err := loadOptions(cmd, nil)
	assert.ErrorContains(t, err, "filename is required")
}

func TestExecute(t *testing.T) {
	path := createInput(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{path, "--factor", "1.5"})
	require.NoError(t, cmd.Execute())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "D2")
	require.NoError(t, err)
	assert.Equal(t, "30", v)
	assert.FileExists(t, path+".backup")
}

func TestExecuteFailureExitStatus(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.xlsx")

	cmd := newRootCmd()
	cmd.SetArgs([]string{missing})
	assert.NoError(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetArgs([]string{missing, "--strict"})
	assert.Error(t, cmd.Execute())
}
