// Package reports turns ledger contents into business statistics. All the
// math lives in pure functions over a slice of sale records; the Service
// only fetches, caches and timestamps.
package reports

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"homefood-api/apperrors"
	"homefood-api/models"
)

const (
	topItemsLimit     = 5
	topCustomersLimit = 3
	chartSliceLimit   = 8
	chartLabelMax     = 15
)

// chartPalette is cycled in rank order when assigning slice colors
var chartPalette = []string{
	"#C68642", "#A67C52", "#8D5524", "#E2B07A",
	"#F3E1C7", "#BCA17A", "#7C5E3C", "#5C4032",
}

type salesSource interface {
	SalesSince(ctx context.Context, start time.Time) ([]models.SaleRecord, error)
}

type Service struct {
	store salesSource
	log   *slog.Logger
	now   func() time.Time

	mu          sync.Mutex
	last        map[models.ReportPeriod]models.SaleReport
	lastSummary *models.TodaySummary
}

func NewService(store salesSource, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With("component", "reports"),
		now:   time.Now,
		last:  make(map[models.ReportPeriod]models.SaleReport),
	}
}

// WindowStart returns the inclusive lower bound of a report window: local
// midnight of the first calendar day it covers. "week" spans the 7 calendar
// days ending today, "month" the last 30.
func WindowStart(period models.ReportPeriod, now time.Time) time.Time {
	today := startOfDay(now)
	switch period {
	case models.PeriodWeek:
		return today.AddDate(0, 0, -6)
	case models.PeriodMonth:
		return today.AddDate(0, 0, -29)
	default:
		return today
	}
}

// Generate computes the report for one window. On a store failure the last
// successfully computed report for that period is returned with Stale set,
// alongside the error, so a dashboard never loses its numbers.
func (s *Service) Generate(ctx context.Context, period models.ReportPeriod) (models.SaleReport, error) {
	switch period {
	case models.PeriodToday, models.PeriodWeek, models.PeriodMonth:
	default:
		return models.SaleReport{}, apperrors.NewValidation().Add("period", "must be today, week or month")
	}

	now := s.now()
	start := WindowStart(period, now)
	sales, err := s.store.SalesSince(ctx, start)
	if err != nil {
		s.log.Error("report generation failed", "period", period, "error", err)
		s.mu.Lock()
		cached, ok := s.last[period]
		s.mu.Unlock()
		if ok {
			cached.Stale = true
			return cached, err
		}
		return models.SaleReport{}, err
	}

	report := Compute(period, sales, start, now)
	s.mu.Lock()
	s.last[period] = report
	s.mu.Unlock()
	return report, nil
}

// TodaySummary returns today's totals and the ranked chart slices. Like
// Generate, a store failure serves the last good summary flagged stale
// alongside the error.
func (s *Service) TodaySummary(ctx context.Context) (models.TodaySummary, error) {
	now := s.now()
	sales, err := s.store.SalesSince(ctx, startOfDay(now))
	if err != nil {
		s.log.Error("summary generation failed", "error", err)
		s.mu.Lock()
		cached := s.lastSummary
		s.mu.Unlock()
		if cached != nil {
			stale := *cached
			stale.Stale = true
			return stale, err
		}
		return models.TodaySummary{}, err
	}

	summary := Summarize(sales, startOfDay(now))
	s.mu.Lock()
	s.lastSummary = &summary
	s.mu.Unlock()
	return summary, nil
}

// Compute folds sale records into the full report. It is pure: the same
// records, window and clock always produce the same report. Records outside
// the window never contribute.
func Compute(period models.ReportPeriod, sales []models.SaleRecord, start, now time.Time) models.SaleReport {
	report := models.SaleReport{
		Period:       period,
		TopItems:     []models.TopItem{},
		DailyStats:   []models.DailyStat{},
		TopCustomers: []models.TopCustomer{},
		ChartData:    []models.ChartSlice{},
		GeneratedAt:  now,
	}

	type itemAgg struct {
		quantity int
		revenue  float64
	}
	type customerAgg struct {
		orders int
		spent  float64
	}
	items := map[string]*itemAgg{}
	customers := map[string]*customerAgg{}
	daily := map[string]*models.DailyStat{}

	for _, sale := range sales {
		if sale.CreatedAt.Before(start) || sale.CreatedAt.After(now) {
			continue
		}

		report.TotalSales += sale.TotalPrice
		report.TotalOrders++
		report.TotalProfit += sale.Profit
		report.TotalItemsSold += sale.Quantity

		agg, ok := items[sale.ItemName]
		if !ok {
			agg = &itemAgg{}
			items[sale.ItemName] = agg
		}
		agg.quantity += sale.Quantity
		agg.revenue += sale.TotalPrice

		key := sale.CustomerName + " (" + sale.CustomerHostel + ")"
		cust, ok := customers[key]
		if !ok {
			cust = &customerAgg{}
			customers[key] = cust
		}
		cust.orders++
		cust.spent += sale.TotalPrice

		day := sale.CreatedAt.Format("2006-01-02")
		if d, ok := daily[day]; ok {
			d.Sales += sale.TotalPrice
			d.Orders++
		} else {
			daily[day] = &models.DailyStat{Date: day, Sales: sale.TotalPrice, Orders: 1}
		}
	}

	if report.TotalOrders > 0 {
		report.AverageOrderValue = report.TotalSales / float64(report.TotalOrders)
		report.AverageProfitPerOrder = report.TotalProfit / float64(report.TotalOrders)
	}
	if report.TotalSales > 0 {
		report.ProfitMargin = report.TotalProfit / report.TotalSales * 100
	}

	for name, agg := range items {
		report.TopItems = append(report.TopItems, models.TopItem{
			Name:     name,
			Quantity: agg.quantity,
			Revenue:  agg.revenue,
		})
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		a, b := report.TopItems[i], report.TopItems[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Name < b.Name
	})
	if len(report.TopItems) > topItemsLimit {
		report.TopItems = report.TopItems[:topItemsLimit]
	}

	revenue := make(map[string]float64, len(items))
	for name, agg := range items {
		revenue[name] = agg.revenue
	}
	report.ChartData = rankedSlices(revenue)

	for key, agg := range customers {
		report.TopCustomers = append(report.TopCustomers, models.TopCustomer{
			Customer:   key,
			Orders:     agg.orders,
			TotalSpent: agg.spent,
		})
	}
	sort.Slice(report.TopCustomers, func(i, j int) bool {
		a, b := report.TopCustomers[i], report.TopCustomers[j]
		if a.TotalSpent != b.TotalSpent {
			return a.TotalSpent > b.TotalSpent
		}
		return a.Customer < b.Customer
	})
	if len(report.TopCustomers) > topCustomersLimit {
		report.TopCustomers = report.TopCustomers[:topCustomersLimit]
	}

	// One entry per calendar day in the window, zero-filled; never a gap
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		if stat, ok := daily[day]; ok {
			report.DailyStats = append(report.DailyStats, *stat)
		} else {
			report.DailyStats = append(report.DailyStats, models.DailyStat{Date: day})
		}
	}

	return report
}

// Summarize computes today's headline numbers and the category breakdown.
// Slices are ranked by revenue; long labels are truncated and each slice
// gets a palette color by rank. Rendering is the client's problem.
func Summarize(sales []models.SaleRecord, start time.Time) models.TodaySummary {
	summary := models.TodaySummary{Slices: []models.ChartSlice{}}

	revenue := map[string]float64{}
	for _, sale := range sales {
		if sale.CreatedAt.Before(start) {
			continue
		}
		summary.TotalSales += sale.TotalPrice
		summary.TotalOrders++
		summary.TotalProfit += sale.Profit
		summary.TotalCost += sale.TotalCost
		revenue[sale.ItemName] += sale.TotalPrice
	}
	if summary.TotalSales > 0 {
		summary.ProfitMargin = summary.TotalProfit / summary.TotalSales * 100
	}

	summary.Slices = rankedSlices(revenue)
	return summary
}

// rankedSlices orders items by revenue, keeps the top slices and assigns
// palette colors by rank. Ties fall back to name order so the chart is stable.
func rankedSlices(revenue map[string]float64) []models.ChartSlice {
	names := make([]string, 0, len(revenue))
	for name := range revenue {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if revenue[names[i]] != revenue[names[j]] {
			return revenue[names[i]] > revenue[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > chartSliceLimit {
		names = names[:chartSliceLimit]
	}

	slices := make([]models.ChartSlice, 0, len(names))
	for rank, name := range names {
		slices = append(slices, models.ChartSlice{
			Name:  truncateLabel(name),
			Sales: revenue[name],
			Color: chartPalette[rank%len(chartPalette)],
		})
	}
	return slices
}

func truncateLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= chartLabelMax {
		return name
	}
	return string(runes[:chartLabelMax]) + "..."
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
