package appstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/abhisek/kotoba/internal/history"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// BackupVersion is the only backup format version accepted on import.
const BackupVersion = 1

// ErrInvalidBackup wraps every reason a backup document is rejected.
var ErrInvalidBackup = errors.New("invalid backup")

// Backup is the exported form of the user's progress.
type Backup struct {
	Version   int             `json:"version"`
	Favorites []string        `json:"favorites"`
	History   []history.Entry `json:"history"`
}

// ExportBackup captures the history and favorites of st.
func ExportBackup(st State) Backup {
	b := Backup{
		Version:   BackupVersion,
		Favorites: slices.Clone(st.Favorites),
		History:   slices.Clone(st.History),
	}
	if b.Favorites == nil {
		b.Favorites = []string{}
	}
	if b.History == nil {
		b.History = []history.Entry{}
	}
	return b
}

// MarshalBackup renders b as indented JSON.
func MarshalBackup(b Backup) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

func (b Backup) check() error {
	if b.Version != BackupVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidBackup, b.Version)
	}
	return nil
}

var backupSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "favorites", "history"},
	"properties": map[string]any{
		"version": map[string]any{"const": BackupVersion},
		"favorites": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"history": map[string]any{
			"type": "array",
			"items": map[string]any{"type": "object"},
		},
	},
}

var compileBackupSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants decoded JSON values, not Go literals.
	raw, err := json.Marshal(backupSchema)
	if err != nil {
		return nil, err
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	const url = "schema://kotoba-backup.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// ParseBackup decodes and validates a backup document. Any failure is
// reported as ErrInvalidBackup.
func ParseBackup(data []byte) (Backup, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Backup{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	schema, err := compileBackupSchema()
	if err != nil {
		return Backup{}, fmt.Errorf("compile backup schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Backup{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	return b, b.check()
}
