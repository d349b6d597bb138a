package timeutil

import "time"

var weekdayNames = [7]string{
	"Domingo",
	"Lunes",
	"Martes",
	"Miércoles",
	"Jueves",
	"Viernes",
	"Sábado",
}

// WeekdayName returns the Spanish name of d. time.Sunday is index 0.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)%len(weekdayNames)]
}

// Stamp is a timestamp broken into the three strings shown in the panel.
type Stamp struct {
	Weekday string `json:"weekday"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// FormatStamp renders t in Business as weekday, dd/mm/yyyy and hh:mm:ss.
func FormatStamp(t time.Time) Stamp {
	local := t.In(Business)
	return Stamp{
		Weekday: WeekdayName(local.Weekday()),
		Date:    local.Format(DateLayout),
		Time:    local.Format(TimeLayout),
	}
}
