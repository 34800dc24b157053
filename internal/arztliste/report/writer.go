// Package report renders filtered doctors as the semicolon separated doctor list.
package report

import (
	"bufio"
	"io"
	"runtime"
	"strings"

	"github.com/medflow/arztliste/internal/arztliste/domain"
)

// Separator is the field delimiter. Fields are written verbatim, nothing is quoted.
const Separator = ";"

// Header is the fixed first line of every report
var Header = []string{"Name", "Sprechzeiten", "Telefonnummer", "E-Mail", "Mobilfunknummer", "Adresse"}

const minRowsPerDoctor = 2

// NativeLineSeparator returns the host platform's line ending
func NativeLineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Writer serializes doctors into the report layout
type Writer struct {
	LineSeparator string
}

// NewWriter returns a Writer using the native line separator
func NewWriter() *Writer {
	return &Writer{LineSeparator: NativeLineSeparator()}
}

// Write emits the header and max(2, days) rows per doctor. When more than one
// type is selected every hour cell carries type labels.
func (w *Writer) Write(out io.Writer, doctors []domain.Doctor, types domain.Set[domain.ConsultationType]) (rows int, err error) {
	sep := w.LineSeparator
	if sep == "" {
		sep = NativeLineSeparator()
	}
	labelled := types.Len() > 1

	bw := bufio.NewWriter(out)
	writeRow := func(fields ...string) {
		bw.WriteString(strings.Join(fields, Separator))
		bw.WriteString(sep)
	}

	writeRow(Header...)
	for _, d := range doctors {
		rows += writeDoctor(writeRow, d, labelled)
	}
	return rows, bw.Flush()
}

// RowCount returns how many data rows a doctor occupies
func RowCount(d domain.Doctor) int {
	return max(minRowsPerDoctor, len(d.Days))
}

func writeDoctor(writeRow func(...string), d domain.Doctor, labelled bool) int {
	n := RowCount(d)
	for i := 0; i < n; i++ {
		cell := ""
		if i < len(d.Days) {
			cell = DayCell(d.Days[i], labelled)
		}

		switch i {
		case 0:
			writeRow(d.Name, cell, d.Contact.Phone, d.Contact.Email, d.Contact.Mobile,
				d.Address.Street+" "+d.Address.StreetNumber)
		case 1:
			writeRow("", cell, "", "", "", d.Address.ZipCode+" "+d.Address.City)
		default:
			writeRow("", cell, "", "", "", "")
		}
	}
	return n
}
