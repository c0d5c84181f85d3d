package app

import (
	"context"
	"time"
)

// StartScheduler begins the background price refresh loop when a refresh
// interval is configured. A zero interval disables the scheduler.
func (a *App) StartScheduler() {
	interval := a.Config.Server.GetRefreshInterval()
	if interval <= 0 {
		a.Logger.Info().Msg("Price scheduler: disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	go a.runScheduler(ctx, interval)
	a.Logger.Info().Dur("interval", interval).Msg("Price scheduler: started")
}

func (a *App) runScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info().Msg("Price scheduler: stopped")
			return
		case <-ticker.C:
			a.refreshAllPortfolios(ctx)
		}
	}
}

// refreshAllPortfolios walks every user's portfolios and refreshes prices.
// The quote cache keeps repeated tickers from hitting the source more than once.
func (a *App) refreshAllPortfolios(ctx context.Context) {
	start := time.Now()

	usernames, err := a.Storage.UserStore().ListUsers(ctx)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Price refresh: failed to list users")
		return
	}

	portfolios := 0
	refreshed := 0
	for _, username := range usernames {
		list, err := a.PortfolioService.ListPortfolios(ctx, username)
		if err != nil {
			a.Logger.Warn().Err(err).Str("username", username).Msg("Price refresh: failed to list portfolios")
			continue
		}
		for _, p := range list {
			n, err := a.PortfolioService.RefreshPrices(ctx, username, p.ID)
			if err != nil {
				a.Logger.Warn().Err(err).Str("portfolio_id", p.ID).Msg("Price refresh: refresh failed")
				continue
			}
			portfolios++
			refreshed += n
		}
	}

	if portfolios > 0 {
		a.Logger.Info().
			Int("portfolios", portfolios).
			Int("holdings", refreshed).
			Dur("elapsed", time.Since(start)).
			Msg("Price refresh: complete")
	}
}
