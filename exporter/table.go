package exporter

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"gradebook/models"
	"gradebook/roster"
)

// RenderTable writes the full roster table to out, aligned for the console,
// with the same columns as the CSV export.
func RenderTable(out io.Writer, r *roster.Roster) {
	subjects := Subjects(r)
	table := tablewriter.NewWriter(out)
	table.SetHeader(Header(subjects))
	for _, s := range r.ListAll() {
		table.Append(Row(s, subjects))
	}
	table.Render()
}

// RenderStudents writes the given students (e.g. search results) to out
// using the subject columns derived from the whole roster, so the table
// shape stays consistent with the full listing.
func RenderStudents(out io.Writer, r *roster.Roster, students []*models.Student) {
	subjects := Subjects(r)
	table := tablewriter.NewWriter(out)
	table.SetHeader(Header(subjects))
	for _, s := range students {
		table.Append(Row(s, subjects))
	}
	table.Render()
}
