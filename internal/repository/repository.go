package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

var (
	// ErrDataRootNotFound is returned when the configured data root is missing
	ErrDataRootNotFound = errors.New("data root not found")
	// ErrInvalidAccount is returned for identifiers that are not a single path element
	ErrInvalidAccount = errors.New("invalid account identifier")
)

// Repository provides read-only access to the exported account data.
// Each subdirectory of root is an account; each account directory holds up
// to six fetch_*.json exports.
type Repository struct {
	root string
}

// NewRepository initializes a new repository over the given data root
func NewRepository(root string) *Repository {
	return &Repository{root: root}
}

// Root returns the data root path
func (r *Repository) Root() string {
	return r.root
}

// ListAccounts returns the names of the directories directly under the data root
func (r *Repository) ListAccounts() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDataRootNotFound, r.root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if r.isDir(entry) {
			accounts = append(accounts, entry.Name())
		}
	}
	return accounts, nil
}

// isDir follows symlinks so a linked account directory is still listed
func (r *Repository) isDir(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(r.root, entry.Name()))
	return err == nil && info.IsDir()
}

// LoadSource reads and parses <root>/<account>/<source file>.
// It returns a nil document and no error when the file does not exist.
func (r *Repository) LoadSource(account string, source models.Source) (*models.Document, error) {
	if err := validateAccount(account); err != nil {
		return nil, err
	}

	path := filepath.Join(r.root, account, source.Filename())
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	value, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &models.Document{
		Account: account,
		Source:  source,
		Value:   value,
	}, nil
}

func validateAccount(account string) error {
	if account == "" || account == "." || account == ".." ||
		strings.ContainsAny(account, `/\`) || filepath.Base(account) != account {
		return fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}
	return nil
}

// decode parses a whole JSON document, keeping numbers as json.Number so
// integer fields are not rounded through float64
func decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}
