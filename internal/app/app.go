package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/edusphere/elearning-platform/internal/mailer"
	"github.com/edusphere/elearning-platform/internal/media"
	"github.com/edusphere/elearning-platform/internal/payment"
	"github.com/edusphere/elearning-platform/internal/repository"
	appvalidator "github.com/edusphere/elearning-platform/internal/validator"
	"github.com/edusphere/elearning-platform/internal/vcs"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	media          *media.Store

	userRepo         domain.UserRepository
	tokenRepo        domain.TokenRepository
	courseRepo       domain.CourseRepository
	enrollmentRepo   domain.EnrollmentRepository
	reviewRepo       domain.ReviewRepository
	paymentRepo      domain.PaymentRepository
	earningRepo      domain.EarningRepository
	subscriptionRepo domain.SubscriptionRepository
	contactRepo      domain.ContactRepository
	statsRepo        domain.StatsRepository

	paymentProvider domain.PaymentProvider
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Razorpay         RazorpayConfig
	Uploads          UploadsConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type UploadsConfig struct {
	Dir             string
	MaxImageSize    int64
	MaxVideoSize    int64
	MaxDocumentSize int64
}

func (cfg Config) validate() error {
	if cfg.DB.DSN == "" {
		return errors.New("database DSN must be provided")
	}

	if cfg.Redis.URL == "" {
		return errors.New("redis URL must be provided")
	}

	return nil
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "EduSphere <no-reply@edusphere.io>", "SMTP sender")

	flag.StringVar(&cfg.Razorpay.KeyID, "razorpay-key-id", "", "Razorpay key ID")
	flag.StringVar(&cfg.Razorpay.KeySecret, "razorpay-key-secret", "", "Razorpay key secret")
	flag.StringVar(&cfg.Razorpay.WebhookSecret, "razorpay-webhook-secret", "", "Razorpay webhook secret")

	flag.StringVar(&cfg.Uploads.Dir, "uploads-dir", "uploads", "Directory for uploaded media")
	flag.Int64Var(&cfg.Uploads.MaxImageSize, "uploads-max-image-size", 5<<20, "Max uploaded image size in bytes")
	flag.Int64Var(&cfg.Uploads.MaxVideoSize, "uploads-max-video-size", 500<<20, "Max uploaded video size in bytes")
	flag.Int64Var(&cfg.Uploads.MaxDocumentSize, "uploads-max-document-size", 10<<20, "Max uploaded document size in bytes")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	err := cfg.validate()
	if err != nil {
		return err
	}

	app, err := NewApplication(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(
			slog.NewTextHandler(os.Stdout, nil),
			otelslog.NewHandler("elearning-api"),
		))
	}

	return app.run()
}

// NewApplication wires the full production dependency graph. Tests use
// NewApp directly to swap in mocks.
func NewApplication(cfg Config) (*Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	mediaStore, err := media.NewStore(
		cfg.Uploads.Dir,
		cfg.Uploads.MaxImageSize,
		cfg.Uploads.MaxVideoSize,
		cfg.Uploads.MaxDocumentSize,
	)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		mediaStore,
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresTokenRepository(db),
		repository.NewPostgresCourseRepository(db),
		repository.NewPostgresEnrollmentRepository(db),
		repository.NewPostgresReviewRepository(db),
		repository.NewPostgresPaymentRepository(db),
		repository.NewPostgresEarningRepository(db),
		repository.NewPostgresSubscriptionRepository(db),
		repository.NewPostgresContactRepository(db),
		repository.NewPostgresStatsRepository(db),
		payment.NewRazorpayProvider(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret),
	)

	return app, nil
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	mediaStore *media.Store,
	userRepo domain.UserRepository,
	tokenRepo domain.TokenRepository,
	courseRepo domain.CourseRepository,
	enrollmentRepo domain.EnrollmentRepository,
	reviewRepo domain.ReviewRepository,
	paymentRepo domain.PaymentRepository,
	earningRepo domain.EarningRepository,
	subscriptionRepo domain.SubscriptionRepository,
	contactRepo domain.ContactRepository,
	statsRepo domain.StatsRepository,
	paymentProvider domain.PaymentProvider,
) *Application {
	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		media:          mediaStore,

		userRepo:         userRepo,
		tokenRepo:        tokenRepo,
		courseRepo:       courseRepo,
		enrollmentRepo:   enrollmentRepo,
		reviewRepo:       reviewRepo,
		paymentRepo:      paymentRepo,
		earningRepo:      earningRepo,
		subscriptionRepo: subscriptionRepo,
		contactRepo:      contactRepo,
		statsRepo:        statsRepo,

		paymentProvider: paymentProvider,
	}
}

func (app *Application) Close() {
	app.db.Close()
	app.redis.Close()
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
