package panel

import (
	"comprobantes/internal/models"
	"comprobantes/internal/timeutil"
)

// Section titles, in display order.
const (
	SectionCreation     = "Creación"
	SectionCancellation = "Anulación"
)

// Section is one block of the panel: who did something and when.
type Section struct {
	Title string         `json:"title"`
	User  string         `json:"user"`
	Stamp timeutil.Stamp `json:"stamp"`
}

// Content is everything the panel shows for one row.
type Content struct {
	Row      int       `json:"row"`
	Number   string    `json:"number"`
	Sections []Section `json:"sections"`
}

// BuildContent returns the creation section and, only for voided
// comprobantes, the cancellation section after it.
func BuildContent(row int, c models.Comprobante) Content {
	content := Content{
		Row:    row,
		Number: c.Number,
		Sections: []Section{
			auditSection(SectionCreation, c.Creation),
		},
	}
	if c.Cancellation != nil {
		content.Sections = append(content.Sections, auditSection(SectionCancellation, *c.Cancellation))
	}
	return content
}

func auditSection(title string, a models.Audit) Section {
	return Section{
		Title: title,
		User:  a.User,
		Stamp: timeutil.FormatStamp(a.At),
	}
}
