package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/recallab/tetromino/pkg/repositories/models"
)

// Format identifies an export encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// ParseFormat parses a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatSummary:
		return FormatSummary, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

type Exporter struct {
	format   Format
	compress bool
}

type NewExporterOptions struct {
	Format Format
	// Compress wraps the output in a zstd stream.
	Compress bool
}

func NewExporter(opts NewExporterOptions) *Exporter {
	return &Exporter{
		format:   opts.Format,
		compress: opts.Compress,
	}
}

// Export writes the sessions to w in the exporter's format.
func (e *Exporter) Export(w io.Writer, sessions []*models.Session) error {
	if e.compress {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %v", err)
		}
		if err := e.export(zw, sessions); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}
	return e.export(w, sessions)
}

func (e *Exporter) export(w io.Writer, sessions []*models.Session) error {
	switch e.format {
	case FormatCSV:
		return writeCSV(w, sessions)
	case FormatJSON:
		return writeJSON(w, sessions)
	case FormatSummary:
		return writeSummary(w, sessions)
	}
	return fmt.Errorf("unknown export format %q", e.format)
}

var csvHeader = []string{"id", "created_at", "seed", "duration_ms", "lines", "losses", "score", "max_level"}

func writeCSV(w io.Writer, sessions []*models.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	for _, session := range sessions {
		record := []string{
			session.ID,
			strconv.FormatInt(session.CreatedAt, 10),
			strconv.FormatInt(session.Seed, 10),
			strconv.FormatInt(session.DurationMS, 10),
			strconv.Itoa(session.Lines),
			strconv.Itoa(session.Losses),
			strconv.Itoa(session.Score),
			strconv.Itoa(session.MaxLevel),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %v", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, sessions []*models.Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sessions)
}

// writeSummary writes one block per session in the two-line format
// the recall scoring scripts expect.
func writeSummary(w io.Writer, sessions []*models.Session) error {
	for _, session := range sessions {
		if _, err := fmt.Fprintf(w, "lines = %d\nlosses = %d\n", session.Lines, session.Losses); err != nil {
			return err
		}
	}
	return nil
}
