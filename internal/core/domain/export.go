package domain

// ExportFormat selects the encoding used when exporting history.
type ExportFormat string

// Available export formats.
const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
	ExportCSV  ExportFormat = "csv"
)

// IsValid returns true if the format is recognised.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportJSON, ExportYAML, ExportCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}

// AllExportFormats returns all available export formats.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{ExportJSON, ExportYAML, ExportCSV}
}
