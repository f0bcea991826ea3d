package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adapterauth "microfinance-ledger/internal/adapter/authority"
	httpadp "microfinance-ledger/internal/adapter/http"
	mw "microfinance-ledger/internal/adapter/middleware"
	"microfinance-ledger/internal/adapter/repository/memory"
	"microfinance-ledger/internal/adapter/repository/mysql"
	"microfinance-ledger/internal/config"
	"microfinance-ledger/internal/domain/authority"
	"microfinance-ledger/internal/domain/caller"
	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/domain/params"
	"microfinance-ledger/internal/domain/uow"
	"microfinance-ledger/internal/infrastructure/cache"
	"microfinance-ledger/internal/infrastructure/db"
	"microfinance-ledger/internal/usecase/loan"
	ucparams "microfinance-ledger/internal/usecase/params"
	"microfinance-ledger/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initial, err := cfg.Parameters()
	if err != nil {
		log.WithError(err).Fatal("invalid initial parameters")
	}
	clk := clock.NewUnits(cfg.ClockEpoch, cfg.TimeUnit)
	checks := map[string]httpadp.HealthCheck{}

	var (
		tx    uow.UnitOfWork
		reads uow.Repos
	)
	if cfg.Store == config.StoreMemory {
		s := memory.New(initial)
		tx, reads = s, s.Repos()
	} else {
		gdb, err := openStore(ctx, cfg, initial)
		if err != nil {
			log.WithError(err).WithField("store", cfg.Store).Fatal("store unavailable")
		}
		u := mysql.NewGormUoW(gdb)
		tx, reads = u, u.Repos()
		checks["store"] = db.Ping(gdb)
	}
	log.WithField("store", cfg.Store).Info("store ready")

	var (
		registry authority.Registry
		rdb      *redis.Client
	)
	if cfg.RedisAddr != "" {
		if rdb, err = cache.OpenRedis(ctx, cache.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB}); err != nil {
			log.WithError(err).Fatal("redis unavailable")
		}
		defer rdb.Close()
		registry = adapterauth.NewRedisOracle(rdb)
		checks["redis"] = cache.Ping(rdb)
	} else {
		log.Warn("REDIS_ADDR unset: in-process authority set, idempotency disabled")
		registry = adapterauth.NewStaticOracle()
	}
	if len(cfg.Authorities) > 0 {
		if err := registry.Add(ctx, cfg.Authorities...); err != nil {
			log.WithError(err).Fatal("seed authorities")
		}
	}

	paramsUC := ucparams.NewUsecase(tx, reads.Params, log)
	if cfg.AuthorityContract != "" {
		bindAuthority(ctx, log, paramsUC, cfg.AuthorityContract, clk.Now())
	}
	loanUC := loan.NewUsecase(tx, reads, registry, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.BodyLimit("64K"), middleware.Logger(), middleware.Recover(), mw.CallerMiddleware(clk))
	if rdb != nil {
		e.Use(mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))
	}
	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:      httpadp.NewHandler(checks),
		Loans:       httpadp.NewLoanHandler(loanUC),
		Params:      httpadp.NewParamsHandler(paramsUC),
		Authorities: httpadp.NewAuthorityHandler(registry, paramsUC),
	})

	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

// openStore opens the relational store, migrates it and seeds the parameter
// row on first start.
func openStore(ctx context.Context, cfg *config.Config, initial params.ParameterSet) (*gorm.DB, error) {
	var (
		gdb *gorm.DB
		err error
	)
	switch cfg.Store {
	case config.StoreSQLite:
		gdb, err = db.OpenSQLite(cfg.SQLitePath)
	default:
		gdb, err = db.OpenGorm(cfg.MySQLDSN())
	}
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}
	if err := mysql.NewParamsRepository(gdb).Seed(ctx, initial); err != nil {
		return nil, err
	}
	return gdb, nil
}

// bindAuthority applies AUTHORITY_CONTRACT. A store already bound to the same
// principal is fine; a different one is left alone and reported.
func bindAuthority(ctx context.Context, log logrus.FieldLogger, uc *ucparams.Usecase, principal string, now uint64) {
	_, err := uc.SetAuthorityContract(ctx, caller.Env{Principal: principal, Now: now}, principal)
	if err == nil {
		return
	}
	if !errors.Is(err, errs.ErrAuthorityAlreadyBound) {
		log.WithError(err).Fatal("bind authority contract")
	}
	current, err := uc.Get(ctx)
	if err != nil {
		log.WithError(err).Fatal("read parameters")
	}
	if current.AuthorityContract != principal {
		log.WithFields(logrus.Fields{
			"configured": principal,
			"bound":      current.AuthorityContract,
		}).Warn("AUTHORITY_CONTRACT ignored: store already bound")
	}
}
