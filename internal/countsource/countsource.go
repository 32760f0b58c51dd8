// Package countsource reads raw count rows from upstream exports. The
// export schema varies between feature-service snapshots, so field lookup
// tolerates the known attribute-name variants instead of binding to one.
package countsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
)

// Attribute-name variants observed across export snapshots.
var (
	siteKeys      = []string{"site_id", "siteID", "site", "SITE_ID", "id"}
	countKeys     = []string{"counts", "count", "COUNT", "value"}
	timestampKeys = []string{"timestamp", "Timestamp", "TIMESTAMP", "date", "DATE"}
	modeKeys      = []string{"mode", "type", "count_type"}
)

// FileSource reads a JSON array of raw count records from disk.
type FileSource struct {
	path string
}

var _ contract.CountSource = (*FileSource)(nil) // Compile-time check

// NewFileSource builds a source over one export file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Rows implements the CountSource interface. Malformed records are skipped;
// the engine prefers a partial row set over a hard ingest failure.
func (s *FileSource) Rows(_ context.Context) ([]schema.RawCountRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read counts file: %w", err)
	}
	return ParseRecords(data)
}

// ParseRecords decodes an export payload into raw count records.
func ParseRecords(data []byte) ([]schema.RawCountRecord, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed counts payload: %w", err)
	}

	rows := make([]schema.RawCountRecord, 0, len(raw))
	for _, rec := range raw {
		row, ok := parseRecord(rec)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRecord extracts one record, returning ok=false when the site id or
// timestamp cannot be determined. An absent count ingests as 0; a negative
// count is sensor noise and is skipped.
func parseRecord(rec map[string]any) (schema.RawCountRecord, bool) {
	var row schema.RawCountRecord

	site, ok := lookupSiteID(rec)
	if !ok {
		return row, false
	}

	ts, ok := lookupTimestamp(rec)
	if !ok {
		return row, false
	}

	count := lookupCount(rec)
	if count < 0 {
		return row, false
	}

	row.SiteID = site
	row.Timestamp = ts
	row.Count = count
	row.Mode = lookupMode(rec)
	return row, true
}

// lookupSiteID finds the site identifier and normalizes it to a string so
// integer and string site ids compare equal downstream.
func lookupSiteID(rec map[string]any) (string, bool) {
	for _, key := range siteKeys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch id := v.(type) {
		case string:
			if id != "" {
				return id, true
			}
		case float64:
			return strconv.FormatFloat(id, 'f', -1, 64), true
		}
	}
	return "", false
}

// lookupCount finds the count value, defaulting to 0 when absent.
func lookupCount(rec map[string]any) float64 {
	for _, key := range countKeys {
		if v, ok := rec[key].(float64); ok {
			return v
		}
	}
	return 0
}

// lookupTimestamp finds and parses the observation instant.
func lookupTimestamp(rec map[string]any) (time.Time, bool) {
	for _, key := range timestampKeys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch ts := v.(type) {
		case string:
			if t, err := parseTimeString(ts); err == nil {
				return t, true
			}
		case float64:
			return parseEpoch(ts), true
		}
	}
	return time.Time{}, false
}

// parseTimeString accepts RFC 3339 and the common fraction-less variant.
func parseTimeString(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// parseEpoch treats large numeric timestamps as milliseconds, the rest as
// seconds.
func parseEpoch(v float64) time.Time {
	if v > 1e12 {
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Unix(int64(v), 0).UTC()
}

// lookupMode finds the travel mode tag, defaulting to bike when the export
// omits it (single-mode exports commonly do).
func lookupMode(rec map[string]any) schema.TravelMode {
	for _, key := range modeKeys {
		if v, ok := rec[key].(string); ok {
			switch schema.TravelMode(v) {
			case schema.BikeMode:
				return schema.BikeMode
			case schema.PedMode:
				return schema.PedMode
			}
		}
	}
	return schema.BikeMode
}

// FilterMode returns the rows matching a travel mode filter. AllModes
// passes everything through unchanged.
func FilterMode(rows []schema.RawCountRecord, mode schema.TravelMode) []schema.RawCountRecord {
	if mode == schema.AllModes {
		return rows
	}
	filtered := make([]schema.RawCountRecord, 0, len(rows))
	for _, row := range rows {
		if row.Mode == mode {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
