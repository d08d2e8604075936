package tomlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	checkpointFileMode = 0o600
	checkpointDirMode  = 0o700
	tempFilePattern    = ".paracord-progress-*.toml.tmp"
)

// Store keeps every target's progress record in a single versioned TOML
// file. Writes go through a temp file, fsync, and rename so a record is
// durable before Save returns; an interrupted write leaves the previous
// checkpoint intact.
type Store struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CheckpointStore = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve checkpoint path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Store{path: absPath, mu: lockForPath(absPath)}, nil
}

func (s *Store) Load(ctx context.Context) (map[string]domain.ProgressRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}

	records := make(map[string]domain.ProgressRecord, len(file.Targets))
	for _, entry := range file.Targets {
		records[entry.TargetID] = fromSchema(entry)
	}

	return records, nil
}

// Save upserts one record. Records for targets no longer present in the
// configuration are preserved, never dropped.
func (s *Store) Save(ctx context.Context, record domain.ProgressRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.TargetID == "" {
		return fmt.Errorf("save checkpoint: target id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(record)
	updated := false
	for i := range file.Targets {
		if file.Targets[i].TargetID == encoded.TargetID {
			file.Targets[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Targets = append(file.Targets, encoded)
	}

	return s.writeSchema(file)
}

func (s *Store) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read checkpoint file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode checkpoint file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), checkpointDirMode); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode checkpoint file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp checkpoint file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp checkpoint file: %w", err)
	}

	if err := tempFile.Chmod(checkpointFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp checkpoint file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp checkpoint file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp checkpoint file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace checkpoint file: %w", err)
	}

	cleanup = false
	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
