package integration_test

import (
	"log/slog"
	"os"

	"github.com/edusphere/elearning-platform/internal/app"
	"github.com/edusphere/elearning-platform/internal/mailer"
	"github.com/edusphere/elearning-platform/internal/media"
	"github.com/edusphere/elearning-platform/internal/payment"
	"github.com/edusphere/elearning-platform/internal/repository"
	appvalidator "github.com/edusphere/elearning-platform/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestApp struct {
	App             *app.Application
	DB              *pgxpool.Pool
	Mailer          *mailer.MockMailer
	PaymentProvider *payment.MockProvider
}

func newTestApp(cfg app.Config, mediaRoot string) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	mediaStore, err := media.NewStore(mediaRoot, 5<<20, 500<<20, 10<<20)
	if err != nil {
		db.Close()
		return nil, err
	}

	paymentProvider := &payment.MockProvider{
		AcceptPaymentSignatures: true,
		AcceptWebhookSignatures: true,
	}

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
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
		paymentProvider,
	)

	return &TestApp{
		App:             application,
		DB:              db,
		Mailer:          mockMailer,
		PaymentProvider: paymentProvider,
	}, nil
}
