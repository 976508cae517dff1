package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id            string
		correlationID sql.NullString
		status        string
		format        string
		inputsJSON    string
		outputName    sql.NullString
		outputPath    sql.NullString
		frames        int
		width         int
		height        int
		frameRate     float64
		duration      float64
		outputBytes   int64
		settings      sql.NullString
		errorMessage  sql.NullString
		startedRaw    string
		finishedRaw   string
	)
	if err := scanner.Scan(
		&id,
		&correlationID,
		&status,
		&format,
		&inputsJSON,
		&outputName,
		&outputPath,
		&frames,
		&width,
		&height,
		&frameRate,
		&duration,
		&outputBytes,
		&settings,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:            id,
		CorrelationID: correlationID.String,
		Status:        Status(status),
		Format:        format,
		OutputName:    outputName.String,
		OutputPath:    outputPath.String,
		Frames:        frames,
		Width:         width,
		Height:        height,
		FrameRate:     frameRate,
		Duration:      duration,
		OutputBytes:   outputBytes,
		Settings:      settings.String,
		ErrorMessage:  errorMessage.String,
	}
	if inputsJSON != "" {
		_ = json.Unmarshal([]byte(inputsJSON), &entry.Inputs)
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		entry.StartedAt = started
	}
	if finished, err := parseTimeString(finishedRaw); err == nil {
		entry.FinishedAt = finished
	}
	return entry, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", count), ",")
}

func stripLikeWildcards(value string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(value)
}
