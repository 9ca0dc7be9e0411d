package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DocumentStore is the durable home for generated documents (invoices,
// partner agreements). Store copies the file at path into the store and
// returns a durable URL; the caller owns the source file and its cleanup.
type DocumentStore interface {
	Store(path string, objectKey string) (string, error)
}

// LocalDocumentStore stores documents on local disk under baseDir and serves
// them from baseURL. The directory is expected to be mounted on durable
// storage in deployment.
type LocalDocumentStore struct {
	baseDir string
	baseURL string
}

// NewLocalDocumentStore создаёт хранилище документов на локальном диске
func NewLocalDocumentStore(baseDir, baseURL string) (*LocalDocumentStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("document store base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document store dir %s: %w", baseDir, err)
	}
	return &LocalDocumentStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Store копирует файл в хранилище и возвращает постоянный URL
func (s *LocalDocumentStore) Store(path string, objectKey string) (string, error) {
	objectKey = filepath.Base(objectKey) // не даём выйти за пределы baseDir

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open source document: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(s.baseDir, objectKey)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create stored document: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Не оставляем недописанный объект в хранилище
		if rmErr := os.Remove(dstPath); rmErr != nil {
			log.Printf("[DocumentStore] не удалось удалить частично записанный файл %s: %v", dstPath, rmErr)
		}
		return "", fmt.Errorf("failed to write stored document: %w", err)
	}

	return s.baseURL + "/" + objectKey, nil
}
