// Package export renders diary entries into downloadable documents.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saymealien/bloodpressurebot/internal/domain"
)

// Format is an export file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

const baseName = "blood_pressure_diary"

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNoEntries     = errors.New("nothing to export")
)

// header is the column layout shared by every format.
var header = []string{"DateTime", "Blood Pressure", "Pulse", "Comment"}

// Document is a rendered export ready to be sent.
type Document struct {
	Name    string
	Caption string
	Data    []byte
}

// Exporter renders entries (newest first) with timestamps in loc.
type Exporter interface {
	Export(f Format, entries []domain.Entry, loc *time.Location) (*Document, error)
}

// ParseFormat maps user input such as "CSV" or " pdf " to a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	case FormatPDF:
		return FormatPDF, true
	}
	return "", false
}

// Renderer is the default Exporter.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (Renderer) Export(f Format, entries []domain.Entry, loc *time.Location) (*Document, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	if loc == nil {
		loc = time.UTC
	}
	rows := tableRows(entries, loc)

	var (
		data    []byte
		caption string
		err     error
	)
	switch f {
	case FormatCSV:
		data, err = renderCSV(rows)
		caption = "📊 CSV format"
	case FormatXLSX:
		data, err = renderXLSX(rows)
		caption = "📊 Excel format"
	case FormatPDF:
		data, err = renderPDF(rows)
		caption = "📄 PDF format"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}
	return &Document{Name: baseName + "." + string(f), Caption: caption, Data: data}, nil
}

func tableRows(entries []domain.Entry, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.LocalStamp(loc), e.BP, e.Pulse, e.Comment})
	}
	return rows
}
