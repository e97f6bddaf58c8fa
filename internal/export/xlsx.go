// Package export writes contact lists to spreadsheet files for handoff to
// outreach tooling.
package export

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// header is the fixed column order of an exported sheet.
var header = []string{
	"First Name", "Last Name", "Title", "Company", "City", "State",
	"College", "Phone", "Email", "Email Source", "Email Verified",
	"LinkedIn", "Education", "Work History",
}

// WriteXLSX writes contacts to path as a single-sheet workbook.
func WriteXLSX(path string, contacts []model.Contact) error {
	f, err := buildWorkbook(contacts)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

// WriteXLSXTo streams the workbook to w. Used by the HTTP download handler.
func WriteXLSXTo(w io.Writer, contacts []model.Contact) error {
	f, err := buildWorkbook(contacts)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func buildWorkbook(contacts []model.Contact) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Contacts")
	if err != nil {
		return nil, eris.Wrap(err, "export: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().SetString(h)
	}

	for _, c := range contacts {
		row := sheet.AddRow()
		for _, v := range []string{
			c.FirstName, c.LastName, c.Title, c.Company, c.City, c.State,
			c.College, c.Phone, c.Email, string(c.EmailSource),
			strconv.FormatBool(c.EmailVerified),
			c.LinkedIn, c.EducationSummary, c.WorkSummary,
		} {
			row.AddCell().SetString(v)
		}
	}

	return f, nil
}
