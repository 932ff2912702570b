package schema

// Share labels for how much of the total a single entry accounts for.
const (
	MajorShare    = "Major"
	NotableShare  = "Notable"
	ModerateShare = "Moderate"
	MinorShare    = "Minor"
)

// RankedEntry is one flattened row of a summary section.
type RankedEntry struct {
	Section Section `json:"section"`
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Share   float64 `json:"share"`
	Label   string  `json:"label"`
}

// GetShareLabel returns a plain text label based on the percentage share of total spend.
func GetShareLabel(share float64) string {
	switch {
	case share >= 25:
		return MajorShare
	case share >= 10:
		return NotableShare
	case share >= 5:
		return ModerateShare
	default:
		return MinorShare
	}
}

// FlattenSummary turns the ranked parts of a summary into section rows.
// Spend sections carry a share of total spend; count sections carry a share of accepted lines.
// Rows come out grouped in AllSections order.
func FlattenSummary(s AnalysisSummary) []RankedEntry {
	bySection := make(map[Section][]RankedEntry, len(AllSections))
	add := func(section Section, rank int, name string, value, share float64) {
		bySection[section] = append(bySection[section], RankedEntry{
			Section: section,
			Rank:    rank,
			Name:    name,
			Value:   value,
			Share:   share,
			Label:   GetShareLabel(share),
		})
	}

	add(OverviewSection, 1, "total_spend", s.TotalSpend, 100)
	add(OverviewSection, 2, "total_orders", float64(s.TotalOrders), 0)
	add(OverviewSection, 3, "accepted_lines", float64(s.AcceptedLines), 0)
	if s.PeakMonth != nil {
		add(OverviewSection, 4, "peak_month "+s.PeakMonth.Date, s.PeakMonth.Amount, ShareOf(s.PeakMonth.Amount, s.TotalSpend))
	}

	for i, c := range s.TopCategories {
		add(CategorySection, i+1, c.Name, c.Value, ShareOf(c.Value, s.TotalSpend))
	}
	for i, it := range s.TopItems {
		add(ItemCountSection, i+1, it.Name, float64(it.Count), ShareOf(float64(it.Count), float64(s.AcceptedLines)))
	}
	for i, it := range s.TopItemsBySpend {
		add(ItemSpendSection, i+1, it.Name, it.Amount, ShareOf(it.Amount, s.TotalSpend))
	}
	for i, m := range s.MonthlyTrend {
		add(MonthSection, i+1, m.Date, m.Amount, ShareOf(m.Amount, s.TotalSpend))
	}
	for day := range 7 {
		if n, ok := s.WeekdaySpend[day]; ok {
			add(WeekdaySection, day, WeekdayName(day), float64(n), ShareOf(float64(n), float64(s.AcceptedLines)))
		}
	}

	var rows []RankedEntry
	for _, section := range AllSections {
		rows = append(rows, bySection[section]...)
	}
	return rows
}
