package jobs

import (
	"context"
	"log"
	"time"

	"sweetshop/internal/repositories"
	"sweetshop/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// StatsRefresher periodically recomputes dashboard aggregates for every
// identity in the store and repopulates the cache. Purely an availability
// optimization: the dashboard endpoint never depends on it having run.
type StatsRefresher struct {
	scheduler    gocron.Scheduler
	dashboardSvc services.DashboardServiceInterface
	statsRepo    repositories.StatsRepository
}

func NewStatsRefresher(dashboardSvc services.DashboardServiceInterface, statsRepo repositories.StatsRepository) (*StatsRefresher, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &StatsRefresher{
		scheduler:    scheduler,
		dashboardSvc: dashboardSvc,
		statsRepo:    statsRepo,
	}, nil
}

// Start registers the refresh job and starts the scheduler.
func (r *StatsRefresher) Start(interval time.Duration) error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.RefreshAll, context.Background()),
		gocron.WithName("dashboard-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	r.scheduler.Start()
	return nil
}

func (r *StatsRefresher) Stop() error {
	return r.scheduler.Shutdown()
}

// RefreshAll warms the stats cache for every known identity. Per-identity
// failures are logged and skipped so one bad row cannot stall the rest.
func (r *StatsRefresher) RefreshAll(ctx context.Context) (int, error) {
	userIDs, err := r.statsRepo.ListIdentities(ctx)
	if err != nil {
		log.Printf("stats refresh: listing identities failed: %v", err)
		return 0, err
	}

	refreshed := 0
	for _, userID := range userIDs {
		if err := r.dashboardSvc.Refresh(ctx, userID); err != nil {
			log.Printf("stats refresh failed for %s: %v", userID, err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
