package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"

	"grana/internal/config"
	"grana/internal/core"
	applog "grana/internal/log"
	"grana/internal/storage"
)

// grana-seed fills a database with demo data so the dashboard has
// something to show out of the box.
func main() {
	_ = godotenv.Load()

	logCfg := applog.DefaultConfig()
	logCfg.Component = applog.ComponentSeed
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	months := flag.Int("months", 6, "number of past months to seed, current month included")
	seed := flag.Int64("seed", 0, "random seed, 0 means random")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	cfg := config.Load()
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		os.Exit(1)
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}

	now := time.Now()
	month := core.MonthOf(now)
	seeded := 0

	for i := 0; i < *months; i++ {
		seeded += seedMonth(ctx, logger, repo, month, names)
		month = month.Prev()
	}

	seedAssets(ctx, logger, repo, now)
	seedTargets(ctx, logger, repo, now)

	logger.Info("Seed complete", "records", seeded, "months", *months, "db", cfg.SQLiteDBPath)
}

func seedMonth(ctx context.Context, logger *applog.Logger, repo *storage.SQLiteRepository, m core.Month, categories []string) int {
	count := 0

	// Salary on the 5th
	salary := core.Transaction{
		Date:        core.NewDate(m.Year, m.Month, 5),
		Description: "Salário " + gofakeit.Company(),
		Amount:      core.Money{Cents: int64(gofakeit.Number(450_000, 900_000))},
		Type:        core.TypeIncome,
	}
	if _, err := repo.CreateTransaction(ctx, salary); err != nil {
		logger.Error("Failed to seed income", "error", err, "month", m.String())
	} else {
		count++
	}

	// A monthly investment contribution
	invest := core.Transaction{
		Date:        core.NewDate(m.Year, m.Month, 6),
		Description: "Aporte mensal",
		Amount:      core.Money{Cents: -int64(gofakeit.Number(30_000, 120_000))},
		Type:        core.TypeInvestment,
	}
	if _, err := repo.CreateTransaction(ctx, invest); err != nil {
		logger.Error("Failed to seed investment", "error", err, "month", m.String())
	} else {
		count++
	}

	// Scattered expenses through the month
	days := m.Days()
	for i := 0; i < gofakeit.Number(12, 25); i++ {
		date := core.NewDate(m.Year, m.Month, gofakeit.Number(1, days))
		cents := -int64(gofakeit.Price(8, 400) * 100)

		tx := core.Transaction{
			Date:        date,
			Description: gofakeit.ProductName(),
			Amount:      core.Money{Cents: cents},
			Type:        core.TypeExpense,
		}
		if _, err := repo.CreateTransaction(ctx, tx); err != nil {
			logger.Error("Failed to seed transaction", "error", err, "month", m.String())
			continue
		}
		count++

		if len(categories) > 0 {
			exp := core.Expense{
				Title:    tx.Description,
				Category: categories[gofakeit.Number(0, len(categories)-1)],
				Amount:   core.Money{Cents: -cents},
				Date:     date,
				Planned:  gofakeit.Bool() && gofakeit.Bool(),
			}
			if _, err := repo.CreateExpense(ctx, exp); err != nil {
				logger.Error("Failed to seed expense", "error", err, "month", m.String())
				continue
			}
			count++
		}
	}

	return count
}

func seedAssets(ctx context.Context, logger *applog.Logger, repo *storage.SQLiteRepository, now time.Time) {
	types := []core.AssetType{
		core.AssetPoupanca,
		core.AssetCDB,
		core.AssetTesouroDireto,
		core.AssetAcoes,
		core.AssetFundos,
	}

	for _, t := range types {
		a := core.Asset{
			Name:         gofakeit.Company(),
			Type:         t,
			Value:        core.Money{Cents: int64(gofakeit.Number(100_000, 5_000_000))},
			MonthlyYield: gofakeit.Float64Range(0.003, 0.015),
			Date:         core.Date{Time: now},
		}
		if _, err := repo.CreateAsset(ctx, a); err != nil {
			logger.Error("Failed to seed asset", "error", err, "name", a.Name)
		}
	}
}

func seedTargets(ctx context.Context, logger *applog.Logger, repo *storage.SQLiteRepository, now time.Time) {
	titles := []string{"Reserva de emergência", "Viagem", "Entrada do apartamento"}

	for _, title := range titles {
		goal := int64(gofakeit.Number(500_000, 5_000_000))
		t := core.Target{
			Title:         title,
			Goal:          core.Money{Cents: goal},
			Progress:      core.Money{Cents: int64(gofakeit.Number(0, int(goal)))},
			MonthlyAmount: core.Money{Cents: int64(gofakeit.Number(20_000, 100_000))},
			Date:          core.Date{Time: now},
		}
		if _, err := repo.CreateTarget(ctx, t); err != nil {
			logger.Error("Failed to seed target", "error", err, "title", title)
		}
	}
}
