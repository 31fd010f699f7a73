package statistics

import "time"

// Streak counts the consecutive days with activity, ending today.
// It returns 0 when there is no activity today, even if yesterday had some.
func Streak(activity map[string]struct{}, today time.Time) int {
	streak := 0
	for day := today; ; day = day.AddDate(0, 0, -1) {
		if _, ok := activity[day.Format(DateLayout)]; !ok {
			return streak
		}
		streak++
	}
}

// ActivityDates returns the dates with at least one answer.
func ActivityDates(stats map[string]DailyStat) map[string]struct{} {
	dates := make(map[string]struct{}, len(stats))
	for date, stat := range stats {
		if stat.QuestionsAnswered <= 0 {
			continue
		}
		if stat.Date != "" {
			date = stat.Date
		}
		dates[date] = struct{}{}
	}
	return dates
}

// StreakFromStats is Streak over the days of stats, with today taken in loc.
func StreakFromStats(stats map[string]DailyStat, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Streak(ActivityDates(stats), today)
}
