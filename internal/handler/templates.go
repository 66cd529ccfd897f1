package handler

import (
	"html/template"
	"time"

	"github.com/docuquest/docuquest/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	titleCaser := cases.Title(language.English)

	return template.FuncMap{
		// Date/Time functions
		"year": func() int {
			return time.Now().Year()
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 3:04 PM")
		},

		// String functions
		"title": func(s string) string {
			return titleCaser.String(s)
		},

		// Domain helpers
		"employeeName": func(id string) string {
			if name, ok := domain.EmployeeNames[id]; ok {
				return name
			}
			return id
		},
		"urgencyName": func(u domain.Urgency) string {
			return u.String()
		},
		"urgencyChannel": func(u domain.Urgency) string {
			return u.Channel()
		},
		"urgencyValue": func(u domain.Urgency) int {
			return int(u)
		},
	}
}
