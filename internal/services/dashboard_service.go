package services

import (
	"context"
	"time"

	"painel/internal/aggregation"
	"painel/internal/models"
	"painel/internal/progress"
	"painel/internal/storage"
)

// dashboardService computes goal progress and daily totals.
type dashboardService struct {
	store   storage.Adapter
	goals   GoalServicer
	tracker *progress.Tracker
	loc     *time.Location
}

// NewDashboardService creates a new DashboardServicer. Calendar boundaries
// (today, this month) are taken in loc.
func NewDashboardService(store storage.Adapter, goals GoalServicer, tracker *progress.Tracker, loc *time.Location) DashboardServicer {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardService{store: store, goals: goals, tracker: tracker, loc: loc}
}

// GetDashboard returns the month total and every goal's progress. Each
// goal's all-time category total is fed to the tracker, which may start the
// goal's one-time celebration.
func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	goals, err := s.goals.GetGoals(ctx)
	if err != nil {
		return nil, err
	}

	txs := s.store.LoadTransactions(ctx)
	totals := aggregation.TotalsByCategory(txs)
	today := now().In(s.loc)

	dash := &Dashboard{
		Year:       today.Year(),
		Month:      int(today.Month()),
		MonthTotal: aggregation.TotalInMonth(txs, today.Year(), today.Month(), s.loc),
		Goals:      make([]GoalProgress, 0, len(goals)),
	}

	for _, g := range goals {
		current := totals[g.Category]
		res := s.tracker.Observe(ctx, g.Category, current, g.Target)
		dash.Goals = append(dash.Goals, GoalProgress{
			Category:   g.Category,
			Target:     g.Target,
			Current:    current,
			Percent:    res.Percent,
			State:      res.State,
			Reached:    res.Reached,
			Celebrated: res.Celebrated,
		})
	}
	dash.CelebratedGoals = s.tracker.Celebrated(ctx).Categories()

	return dash, nil
}

// GetToday returns today's transactions and their total.
func (s *dashboardService) GetToday(ctx context.Context) (*TodaySummary, error) {
	txs := s.store.LoadTransactions(ctx)
	ref := now().In(s.loc)
	rows := aggregation.Today(txs, ref)
	total := aggregation.TotalToday(txs, ref)

	return &TodaySummary{
		Date:         ref.Format(time.DateOnly),
		Total:        total,
		TotalBRL:     models.FormatBRL(total),
		Count:        len(rows),
		Transactions: rows,
	}, nil
}
