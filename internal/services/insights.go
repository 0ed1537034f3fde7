package services

import (
	"math"
	"time"
)

// Insights are display-only values derived from the latest snapshot. They are
// recomputed on every read and never persisted.
type Insights struct {
	AvgViews     float64 `json:"avg_views"`
	AvgClicks    float64 `json:"avg_clicks"`
	AvgUsers     float64 `json:"avg_users"`
	ClickRate    float64 `json:"click_rate"`
	DownloadRate float64 `json:"download_rate"`
}

type GrowthSummary struct {
	Day   float64 `json:"day"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// ComputeInsights derives rolling averages and conversion rates. Averages
// cover the trailing 7 entries of the daily series, or all of them when the
// series is shorter. Rates are percentages of total views, 0 when there are
// no views yet.
func ComputeInsights(series []DailyPoint, totals Totals) Insights {
	var ins Insights

	window := series
	if len(window) > 7 {
		window = window[len(window)-7:]
	}
	if len(window) > 0 {
		var views, clicks, users int64
		for _, p := range window {
			views += p.Views
			clicks += p.Clicks
			users += p.UniqueUsers
		}
		n := float64(len(window))
		ins.AvgViews = round1(float64(views) / n)
		ins.AvgClicks = round1(float64(clicks) / n)
		ins.AvgUsers = round1(float64(users) / n)
	}

	if totals.TotalViews > 0 {
		ins.ClickRate = round1(float64(totals.TotalClicks) / float64(totals.TotalViews) * 100)
		ins.DownloadRate = round1(float64(totals.TotalDownloads) / float64(totals.TotalViews) * 100)
	}

	return ins
}

// ComputeGrowth returns the percentage change between a current and a prior
// period count, rounded to one decimal. No prior baseline means no change,
// never infinite growth.
func ComputeGrowth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round1((current - previous) / previous * 100)
}

// ComputeGrowthSummary compares view counts day-over-day, week-over-week and
// month-over-month. Weeks start on Sunday; months are calendar months.
func ComputeGrowthSummary(series []DailyPoint, now time.Time) GrowthSummary {
	today := now.Format(DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	lastMonth := now.Month() - 1
	lastMonthYear := now.Year()
	if now.Month() == time.January {
		lastMonth = time.December
		lastMonthYear--
	}

	var todayViews, yesterdayViews float64
	var thisWeek, lastWeek float64
	var thisMonth, prevMonth float64

	for _, p := range series {
		d, err := time.ParseInLocation(DateLayout, p.Date, now.Location())
		if err != nil {
			continue
		}
		views := float64(p.Views)

		if p.Date == today {
			todayViews = views
		}
		if p.Date == yesterday {
			yesterdayViews = views
		}
		if !d.Before(weekStart) {
			thisWeek += views
		} else if !d.Before(lastWeekStart) {
			lastWeek += views
		}
		if d.Month() == now.Month() && d.Year() == now.Year() {
			thisMonth += views
		} else if d.Month() == lastMonth && d.Year() == lastMonthYear {
			prevMonth += views
		}
	}

	return GrowthSummary{
		Day:   ComputeGrowth(todayViews, yesterdayViews),
		Week:  ComputeGrowth(thisWeek, lastWeek),
		Month: ComputeGrowth(thisMonth, prevMonth),
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
