package recordstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhoicas/cafe-pos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_SaveLoad(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "backups"))
	snap := Snapshot{
		Products.Key: sampleProducts(),
		Sales.Key:    {{"id": "s1", "total": "9500"}},
	}

	path, err := a.Save("backup_2024-01-15_10-30-00.xlsx", snap)
	require.NoError(t, err)
	assert.FileExists(t, path)

	got, err := a.Load("backup_2024-01-15_10-30-00.xlsx")
	require.NoError(t, err)
	assert.Len(t, got[Products.Key], 2)
	assert.Len(t, got[Sales.Key], 1)
	assert.Empty(t, got[Customers.Key])
	assert.Empty(t, got[SaleItems.Key])
}

func TestArchive_ListNewestFirstAndRemove(t *testing.T) {
	dir := t.TempDir()
	a := NewArchive(dir)
	_, err := a.Save("backup_a.xlsx", Snapshot{})
	require.NoError(t, err)
	_, err = a.Save("backup_b.xlsx", Snapshot{})
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "backup_a.xlsx"), old, old))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("x"), 0o644))

	files, err := a.List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "backup_b.xlsx", files[0].Name)
	assert.Equal(t, "backup_a.xlsx", files[1].Name)

	require.NoError(t, a.Remove("backup_a.xlsx"))
	files, err = a.List()
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestArchive_RejectsPathsAndUnknownFiles(t *testing.T) {
	a := NewArchive(t.TempDir())

	_, err := a.Load("../cafe_data.xlsx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = a.Load("backup.csv")
	assert.ErrorIs(t, err, domain.ErrUnsupported)

	_, err = a.Load("no_existe.xlsx")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchive_ListMissingDirIsEmpty(t *testing.T) {
	files, err := NewArchive(filepath.Join(t.TempDir(), "nada")).List()
	require.NoError(t, err)
	assert.Empty(t, files)
}
