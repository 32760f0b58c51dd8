package schema

// ExpansionProfile is the hourly factor table: month -> day type -> hour ->
// multiplier converting one hour's count into a full-day-equivalent
// contribution. Missing nested keys mean "factor not found", not a
// malformed profile.
type ExpansionProfile struct {
	Name  string
	Hours map[int]map[DayType]map[int]float64
}

// HourFactor looks up the expansion factor for (month, dayType, hour).
func (p *ExpansionProfile) HourFactor(month int, dayType DayType, hour int) (float64, bool) {
	byType, ok := p.Hours[month]
	if !ok {
		return 0, false
	}
	byHour, ok := byType[dayType]
	if !ok {
		return 0, false
	}
	factor, ok := byHour[hour]
	return factor, ok
}

// NormalizationProfile is the daily/monthly factor table: day-of-week
// correction multipliers per month, and seasonal multipliers per month.
type NormalizationProfile struct {
	Name   string
	Days   map[int]map[string]float64 // month -> lowercase day name -> factor
	Months map[int]float64            // month -> factor
}

// DayFactor looks up the day-of-week factor for (month, dayName).
func (p *NormalizationProfile) DayFactor(month int, dayName string) (float64, bool) {
	byDay, ok := p.Days[month]
	if !ok {
		return 0, false
	}
	factor, ok := byDay[dayName]
	return factor, ok
}

// MonthFactor looks up the seasonal factor for a month.
func (p *NormalizationProfile) MonthFactor(month int) (float64, bool) {
	factor, ok := p.Months[month]
	return factor, ok
}
