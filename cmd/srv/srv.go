package main

import (
	"context"
	"time"

	"github.com/questx-lab/fittrack/config"
	"github.com/questx-lab/fittrack/internal/domain"
	"github.com/questx-lab/fittrack/internal/domain/leaderboard"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/idutil"
	"github.com/questx-lab/fittrack/pkg/kafka"
	"github.com/questx-lab/fittrack/pkg/logger"
	"github.com/questx-lab/fittrack/pkg/pubsub"
	"github.com/questx-lab/fittrack/pkg/storage"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/questx-lab/fittrack/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client
	publisher   pubsub.Publisher
	storage     storage.Storage
	stopKafka   func(context.Context) error

	userRepo        repository.UserRepository
	transactionRepo repository.PointTransactionRepository
	dailyLogRepo    repository.DailyPointsLogRepository
	profileRepo     repository.ProfileRepository
	drawingRepo     repository.DrawingRepository
	prizeRepo       repository.PrizeRepository
	ticketRepo      repository.TicketRepository
	fulfillmentRepo repository.FulfillmentRepository

	drawingDomain     domain.DrawingDomain
	fulfillmentDomain domain.FulfillmentDomain
	profileDomain     domain.ProfileDomain
	leaderboard       leaderboard.Leaderboard
}

func (s *srv) setup(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	idutil.SetNode(cctx.Int64("node-id"))

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.Options{
		Level:      cfg.Log.Level,
		Path:       cfg.Log.Path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}))

	return nil
}

func (s *srv) teardown(*cli.Context) error {
	if s.ctx == nil {
		return nil
	}

	if s.stopKafka != nil {
		if err := s.stopKafka(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop kafka publisher: %v", err)
		}
	}

	if l, ok := xcontext.Logger(s.ctx).(interface{ Sync() }); ok {
		l.Sync()
	}

	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)

	return db, nil
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

// loadRedisClient falls back to a process local cache when redis is disabled.
func (s *srv) loadRedisClient() error {
	cfg := xcontext.Configs(s.ctx).Redis
	if !cfg.Enable {
		xcontext.Logger(s.ctx).Warnf("Redis is disabled, leaderboards are cached in memory")
		s.redisClient = xredis.NewMemoryClient()
		return nil
	}

	client, err := xredis.NewClient(s.ctx, cfg.Addr)
	if err != nil {
		return err
	}

	s.redisClient = client
	return nil
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx).Kafka
	if !cfg.Enable {
		xcontext.Logger(s.ctx).Warnf("Kafka is disabled, drawing events are not published")
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.ClientID, cfg.Addrs)
	if err != nil {
		return err
	}

	s.publisher = publisher
	s.stopKafka = publisher.Stop
	return nil
}

func (s *srv) loadStorage() error {
	cfg := xcontext.Configs(s.ctx).Storage
	if !cfg.Enable {
		xcontext.Logger(s.ctx).Warnf("Storage is disabled, drawing audits are not archived")
		return nil
	}

	s3, err := storage.NewS3Storage(cfg)
	if err != nil {
		return err
	}

	s.storage = s3
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.transactionRepo = repository.NewPointTransactionRepository()
	s.dailyLogRepo = repository.NewDailyPointsLogRepository()
	s.profileRepo = repository.NewProfileRepository()
	s.drawingRepo = repository.NewDrawingRepository()
	s.prizeRepo = repository.NewPrizeRepository()
	s.ticketRepo = repository.NewTicketRepository()
	s.fulfillmentRepo = repository.NewFulfillmentRepository()
}

func (s *srv) loadDomains() {
	s.drawingDomain = domain.NewDrawingDomain(
		s.drawingRepo, s.prizeRepo, s.ticketRepo, s.fulfillmentRepo, s.publisher, s.storage)
	s.fulfillmentDomain = domain.NewFulfillmentDomain(s.fulfillmentRepo)
	s.profileDomain = domain.NewProfileDomain(s.userRepo, s.profileRepo)
	s.leaderboard = leaderboard.New(s.transactionRepo, s.profileRepo, s.dailyLogRepo, s.redisClient)
}

// loadAll wires every dependency a command may touch.
func (s *srv) loadAll() error {
	for _, load := range []func() error{
		s.loadDatabase,
		s.loadRedisClient,
		s.loadPublisher,
		s.loadStorage,
	} {
		if err := load(); err != nil {
			return err
		}
	}

	s.loadRepos()
	s.loadDomains()
	return nil
}
