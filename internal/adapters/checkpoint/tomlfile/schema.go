package tomlfile

import (
	"fmt"
	"time"

	"github.com/daiimus/paracord/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Targets []recordSchema `toml:"targets"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported checkpoint schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type recordSchema struct {
	TargetID  string `toml:"target_id"`
	Cursor    string `toml:"cursor,omitempty"`
	Processed int    `toml:"processed"`
	Skipped   int    `toml:"skipped"`
	Failed    int    `toml:"failed"`
	Completed bool   `toml:"completed"`
	UpdatedAt string `toml:"updated_at,omitempty"`
}

func toSchema(record domain.ProgressRecord) recordSchema {
	return recordSchema{
		TargetID:  record.TargetID,
		Cursor:    record.Cursor.String(),
		Processed: record.Processed,
		Skipped:   record.Skipped,
		Failed:    record.Failed,
		Completed: record.Completed,
		UpdatedAt: formatTime(record.UpdatedAt),
	}
}

func fromSchema(record recordSchema) domain.ProgressRecord {
	return domain.ProgressRecord{
		TargetID:  record.TargetID,
		Cursor:    domain.Cursor(record.Cursor),
		Processed: record.Processed,
		Skipped:   record.Skipped,
		Failed:    record.Failed,
		Completed: record.Completed,
		UpdatedAt: parseTime(record.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
