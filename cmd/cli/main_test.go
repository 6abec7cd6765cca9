package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	exportFile, importFile, qrOutput = "", "", ""
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(dir, "cli.sqlite"))

	require.NoError(t, run(t, "shorten", "example.com"))
	assert.Error(t, run(t, "shorten", "not a url"))
	require.NoError(t, run(t, "history"))
	require.NoError(t, run(t, "dashboard"))

	dump := filepath.Join(dir, "dump.json")
	require.NoError(t, run(t, "export", "--file", dump))

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	var snapshot domain.Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Len(t, snapshot.LinksHistory, 1)
	code := snapshot.LinksHistory[0].ShortCode
	assert.Equal(t, "http://example.com", snapshot.LinksHistory[0].OriginalURL)

	require.NoError(t, run(t, "resolve", "https://sho.rt/#/"+code))
	require.NoError(t, run(t, "resolve", "/?short="+code))
	assert.Error(t, run(t, "resolve", "#/missing"))

	require.NoError(t, run(t, "delete", code))
	assert.Error(t, run(t, "delete", code))

	require.NoError(t, run(t, "import", "--file", dump))
	require.NoError(t, run(t, "export", "--file", dump))
	data, err = os.ReadFile(dump)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Len(t, snapshot.LinksHistory, 1)
	assert.Equal(t, code, snapshot.LinksHistory[0].ShortCode)
}

func TestExportImportFileFlagsAreIndependent(t *testing.T) {
	exportFile, importFile = "", ""
	t.Cleanup(func() { exportFile, importFile = "", "" })

	require.NoError(t, importCmd.Flags().Set("file", "in.json"))
	assert.Equal(t, "in.json", importFile)
	assert.Empty(t, exportFile)

	require.NoError(t, exportCmd.Flags().Set("file", "out.json"))
	assert.Equal(t, "out.json", exportFile)
	assert.Equal(t, "in.json", importFile)
}
