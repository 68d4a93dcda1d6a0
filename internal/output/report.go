package output

import (
	"github.com/rpgo/wealth-projector/internal/domain"
)

// GenerateReports writes every requested format into dir and returns the file
// names. "all" expands to every registered formatter.
func GenerateReports(p *domain.Projection, formats []string, dir string, opts Options) ([]string, error) {
	var names []string
	for _, format := range formats {
		if NormalizeFormatName(format) == "all" {
			names = append(names, AvailableFormatterNames()...)
			continue
		}
		names = append(names, format)
	}

	written := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		f, err := NewFormatter(name, opts)
		if err != nil {
			return written, err
		}
		if seen[f.Name()] {
			continue
		}
		seen[f.Name()] = true
		file, err := WriteFormatted(f, p, dir)
		if err != nil {
			return written, err
		}
		written = append(written, file)
	}
	return written, nil
}
