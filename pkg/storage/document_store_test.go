package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDocumentStore_Store(t *testing.T) {
	// Arrange
	baseDir := t.TempDir()
	store, err := NewLocalDocumentStore(baseDir, "/documents/")
	require.NoError(t, err)

	srcPath := filepath.Join(t.TempDir(), "invoice.pdf")
	require.NoError(t, os.WriteFile(srcPath, []byte("%PDF-1.4 test"), 0644))

	// Act
	url, err := store.Store(srcPath, "invoice_abc.pdf")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/documents/invoice_abc.pdf", url, "Хвостовой слеш baseURL не должен дублироваться")

	stored, err := os.ReadFile(filepath.Join(baseDir, "invoice_abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), stored)
}

func TestLocalDocumentStore_Store_StripsPathTraversal(t *testing.T) {
	// Arrange
	baseDir := t.TempDir()
	store, err := NewLocalDocumentStore(baseDir, "/documents")
	require.NoError(t, err)

	srcPath := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(srcPath, []byte("data"), 0644))

	// Act: objectKey пытается выйти за пределы baseDir
	url, err := store.Store(srcPath, "../../etc/passwd.pdf")

	// Assert: сохраняется только базовое имя
	require.NoError(t, err)
	assert.Equal(t, "/documents/passwd.pdf", url)
	_, statErr := os.Stat(filepath.Join(baseDir, "passwd.pdf"))
	assert.NoError(t, statErr, "Файл должен лежать внутри baseDir")
}

func TestLocalDocumentStore_Store_MissingSource(t *testing.T) {
	store, err := NewLocalDocumentStore(t.TempDir(), "/documents")
	require.NoError(t, err)

	_, err = store.Store("/nonexistent/file.pdf", "file.pdf")

	assert.Error(t, err)
}

func TestNewLocalDocumentStore_RequiresBaseDir(t *testing.T) {
	_, err := NewLocalDocumentStore("", "/documents")
	assert.Error(t, err)
}
