package cron

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// ticksPerMonth converts the monthly exchange rate into a per-cycle slice:
// 30 days of 96 quarter-hour cycles each.
var ticksPerMonth = decimal.NewFromInt(30 * 96)

// YieldAccrualJobParams configure the scheduled yield accrual.
type YieldAccrualJobParams struct {
	Logger       *logger.Logger
	Users        yieldUserRepository
	ExchangeRate string
}

type yieldUserRepository interface {
	ListInvestors(ctx context.Context) ([]models.User, error)
	AccrueYield(ctx context.Context, id uuid.UUID, increment decimal.Decimal) error
}

// NewYieldAccrualJob constructs the yield accrual cron job.
func NewYieldAccrualJob(params YieldAccrualJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	rate, err := decimal.NewFromString(params.ExchangeRate)
	if err != nil {
		return nil, fmt.Errorf("parse exchange rate %q: %w", params.ExchangeRate, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("exchange rate must not be negative")
	}
	return &yieldAccrualJob{
		logg:  params.Logger,
		users: params.Users,
		rate:  rate,
	}, nil
}

type yieldAccrualJob struct {
	logg  *logger.Logger
	users yieldUserRepository
	rate  decimal.Decimal
}

func (j *yieldAccrualJob) Name() string { return "yield-accrual" }

// Run credits every investor their slice of monthly yield. Each user is
// updated independently; one failed update does not stop the others.
func (j *yieldAccrualJob) Run(ctx context.Context) error {
	investors, err := j.users.ListInvestors(ctx)
	if err != nil {
		return fmt.Errorf("list investors: %w", err)
	}
	if len(investors) == 0 {
		j.logg.Info(ctx, "no investors to accrue")
		return nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, investor := range investors {
		increment := j.incrementFor(investor)
		if increment.IsZero() {
			continue
		}
		wg.Add(1)
		go func(id uuid.UUID, walletID string, increment decimal.Decimal) {
			defer wg.Done()
			if err := j.users.AccrueYield(ctx, id, increment); err != nil {
				userCtx := j.logg.WithWalletID(ctx, walletID)
				j.logg.Error(userCtx, "yield accrual failed for user", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("accrue yield for %s: %w", walletID, err))
				mu.Unlock()
			}
		}(investor.ID, investor.WalletID, increment)
	}
	wg.Wait()

	logCtx := j.logg.WithField(ctx, "count", len(investors))
	j.logg.Info(logCtx, "yield accrual cycle complete")
	return multierr.Combine(errs...)
}

// incrementFor computes the per-cycle yield for one investor. Dividing the
// monthly amount by the full tick count in one step keeps the result exact
// for typical purchase amounts.
func (j *yieldAccrualJob) incrementFor(user models.User) decimal.Decimal {
	return user.PurchasedCost.Mul(j.rate).Div(ticksPerMonth)
}
