package service

import (
	"math"
	"os"
	"sync"
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DashboardConfig holds the refresh intervals for the three metric sections.
// They mirror the UI polling cadence and are configuration, not constants.
type DashboardConfig struct {
	TodayRefresh     time.Duration
	MonthRefresh     time.Duration
	AvgRepairRefresh time.Duration
	CompletionSample int
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		TodayRefresh:     5 * time.Second,
		MonthRefresh:     30 * time.Second,
		AvgRepairRefresh: 5 * time.Minute,
		CompletionSample: 20,
	}
}

// DashboardConfigFromEnv overlays DASHBOARD_TODAY_REFRESH,
// DASHBOARD_MONTH_REFRESH and DASHBOARD_AVG_REPAIR_REFRESH (Go duration
// strings) on the defaults.
func DashboardConfigFromEnv() DashboardConfig {
	cfg := DefaultDashboardConfig()
	if v := os.Getenv("DASHBOARD_TODAY_REFRESH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TodayRefresh = d
		}
	}
	if v := os.Getenv("DASHBOARD_MONTH_REFRESH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MonthRefresh = d
		}
	}
	if v := os.Getenv("DASHBOARD_AVG_REPAIR_REFRESH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AvgRepairRefresh = d
		}
	}
	return cfg
}

// Metrics is the dashboard payload.
type Metrics struct {
	TodayRevenue      float64 `json:"today_revenue"`
	TodayCompleted    int     `json:"today_completed_jobs"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	MonthlyCompleted  int     `json:"completed_jobs"`
	ActiveJobs        int64   `json:"active_jobs"`
	AvgRepairTimeDays float64 `json:"avg_repair_time_days"`
}

type DashboardService interface {
	GetMetrics(garageID uuid.UUID) (*Metrics, error)
	RecentJobCards(garageID uuid.UUID, limit int) ([]model.JobCard, error)
}

type section struct {
	fetchedAt time.Time
}

type garageMetrics struct {
	metrics Metrics
	today   section
	month   section
	avg     section
}

type dashboardService struct {
	repo repository.JobCardRepository
	cfg  DashboardConfig

	mu    sync.Mutex
	cache map[uuid.UUID]*garageMetrics
	now   func() time.Time
}

func NewDashboardService(repo repository.JobCardRepository, cfg DashboardConfig) DashboardService {
	return &dashboardService{
		repo:  repo,
		cfg:   cfg,
		cache: make(map[uuid.UUID]*garageMetrics),
		now:   time.Now,
	}
}

// GetMetrics serves the cached metrics for a garage, refreshing whichever
// sections have gone stale. Sections refresh concurrently and a failed
// refresh keeps the previous value rather than zeroing the dashboard.
func (s *dashboardService) GetMetrics(garageID uuid.UUID) (*Metrics, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}

	s.mu.Lock()
	entry, ok := s.cache[garageID]
	if !ok {
		entry = &garageMetrics{}
		s.cache[garageID] = entry
	}
	now := s.now()
	refreshToday := now.Sub(entry.today.fetchedAt) >= s.cfg.TodayRefresh
	refreshMonth := now.Sub(entry.month.fetchedAt) >= s.cfg.MonthRefresh
	refreshAvg := now.Sub(entry.avg.fetchedAt) >= s.cfg.AvgRepairRefresh
	s.mu.Unlock()

	var wg sync.WaitGroup
	var todayRevenue float64
	var todayCount int
	var monthRevenue float64
	var monthCount int
	var active int64
	var avgDays float64
	var todayErr, monthErr, avgErr error

	if refreshToday {
		wg.Add(1)
		go func() {
			defer wg.Done()
			todayRevenue, todayCount, todayErr = s.fetchToday(garageID, now)
		}()
	}
	if refreshMonth {
		wg.Add(1)
		go func() {
			defer wg.Done()
			monthRevenue, monthCount, active, monthErr = s.fetchMonth(garageID, now)
		}()
	}
	if refreshAvg {
		wg.Add(1)
		go func() {
			defer wg.Done()
			avgDays, avgErr = s.fetchAvgRepair(garageID)
		}()
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if refreshToday {
		if todayErr != nil {
			log.WithError(todayErr).WithField("garage_id", garageID).Error("today metrics refresh failed")
		} else {
			entry.metrics.TodayRevenue = todayRevenue
			entry.metrics.TodayCompleted = todayCount
			entry.today.fetchedAt = now
		}
	}
	if refreshMonth {
		if monthErr != nil {
			log.WithError(monthErr).WithField("garage_id", garageID).Error("monthly metrics refresh failed")
		} else {
			entry.metrics.MonthlyRevenue = monthRevenue
			entry.metrics.MonthlyCompleted = monthCount
			entry.metrics.ActiveJobs = active
			entry.month.fetchedAt = now
		}
	}
	if refreshAvg {
		if avgErr != nil {
			log.WithError(avgErr).WithField("garage_id", garageID).Error("avg repair time refresh failed")
		} else {
			entry.metrics.AvgRepairTimeDays = avgDays
			entry.avg.fetchedAt = now
		}
	}

	m := entry.metrics
	return &m, nil
}

func (s *dashboardService) fetchToday(garageID uuid.UUID, now time.Time) (float64, int, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	cards, err := s.repo.FindCompletedBetween(garageID, start, end)
	if err != nil {
		return 0, 0, err
	}
	return sumRevenue(cards), len(cards), nil
}

func (s *dashboardService) fetchMonth(garageID uuid.UUID, now time.Time) (float64, int, int64, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	cards, err := s.repo.FindCompletedSince(garageID, startOfMonth)
	if err != nil {
		return 0, 0, 0, err
	}

	active, err := s.repo.CountActive(garageID)
	if err != nil {
		return 0, 0, 0, err
	}
	return sumRevenue(cards), len(cards), active, nil
}

// fetchAvgRepair averages created->completed spans over the most recent
// completed jobs. Negative spans (clock skew, bad data) contribute zero
// instead of dragging the mean negative.
func (s *dashboardService) fetchAvgRepair(garageID uuid.UUID) (float64, error) {
	spans, err := s.repo.FindRecentCompletions(garageID, s.cfg.CompletionSample)
	if err != nil {
		return 0, err
	}
	if len(spans) == 0 {
		return 0, nil
	}

	var totalDays float64
	for _, span := range spans {
		days := span.ActualCompletionDate.Sub(span.CreatedAt).Hours() / 24
		if days < 0 {
			days = 0
		}
		totalDays += days
	}
	avg := totalDays / float64(len(spans))
	return math.Round(avg*10) / 10, nil
}

func (s *dashboardService) RecentJobCards(garageID uuid.UUID, limit int) ([]model.JobCard, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	if limit <= 0 {
		limit = 100
	}
	return s.repo.FindRecent(garageID, limit)
}

func sumRevenue(cards []model.JobCard) float64 {
	var total float64
	for i := range cards {
		total += CalculateJobTotal(&cards[i])
	}
	return total
}
