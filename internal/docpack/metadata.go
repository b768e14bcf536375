package docpack

import "strings"

// MetadataCSV renders the ordered metadata table as delimited text: one
// header row of field names and one data row of quoted values.
func MetadataCSV(fields []Field) string {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(field.Name))
	}
	b.WriteByte('\n')
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(field.Value))
	}
	b.WriteByte('\n')
	return b.String()
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
