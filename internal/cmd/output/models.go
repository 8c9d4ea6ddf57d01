package output

import (
	"io"

	"github.com/mujaffa/commandcenter/internal/cmd/table"
)

// Write handles the common pattern of formatting command output: table
// formats get the prepared table data, every other format gets raw.
func Write(w io.Writer, format Format, tableData table.Data, raw any) error {
	formatter := NewFormatter(format)

	var data any
	switch format {
	case FormatTable, FormatWide, "":
		data = Data(tableData)
	default:
		data = raw
	}
	return formatter.Format(w, data)
}
