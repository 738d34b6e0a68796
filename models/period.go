package models

import "fmt"

// Period is one of the eight fixed class periods shared by all rooms.
// Start and end times are wall-clock "HH:MM" strings; the catalog is fixed
// at compile time and never mutated.
type Period struct {
	Number    int    `json:"number"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
}

var periods = [8]Period{
	{Number: 1, StartTime: "08:30", EndTime: "09:50", Label: "1st Period"},
	{Number: 2, StartTime: "10:05", EndTime: "11:25", Label: "2nd Period"},
	{Number: 3, StartTime: "11:40", EndTime: "13:00", Label: "3rd Period"},
	{Number: 4, StartTime: "13:45", EndTime: "15:05", Label: "4th Period"},
	{Number: 5, StartTime: "15:20", EndTime: "16:40", Label: "5th Period"},
	{Number: 6, StartTime: "16:55", EndTime: "18:15", Label: "6th Period"},
	{Number: 7, StartTime: "18:30", EndTime: "19:50", Label: "7th Period"},
	{Number: 8, StartTime: "20:00", EndTime: "21:20", Label: "8th Period"},
}

// PeriodByNumber resolves a period number to its catalog entry.
func PeriodByNumber(number int) (Period, error) {
	if number < 1 || number > len(periods) {
		return Period{}, fmt.Errorf("%w: %d", ErrInvalidPeriod, number)
	}
	return periods[number-1], nil
}

// AllPeriods returns the eight periods ordered by number.
func AllPeriods() []Period {
	out := make([]Period, len(periods))
	copy(out, periods[:])
	return out
}

// TimeRange formats the period bounds for display, e.g. "08:30 – 09:50".
func (p Period) TimeRange() string {
	return fmt.Sprintf("%s – %s", p.StartTime, p.EndTime)
}
