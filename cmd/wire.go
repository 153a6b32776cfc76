package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bnema/petcare-cli/internal/adapters/httpapi"
	"github.com/bnema/petcare-cli/internal/adapters/render/view"
	tomlrepo "github.com/bnema/petcare-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/petcare-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/petcare-cli/internal/adapters/secrets/file"
	memorystore "github.com/bnema/petcare-cli/internal/adapters/secrets/memory"
	passstore "github.com/bnema/petcare-cli/internal/adapters/secrets/pass"
	redisstore "github.com/bnema/petcare-cli/internal/adapters/secrets/redis"
	"github.com/bnema/petcare-cli/internal/adapters/session"
	"github.com/bnema/petcare-cli/internal/application"
	"github.com/bnema/petcare-cli/internal/config"
	"github.com/bnema/petcare-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type app struct {
	cfg      config.Config
	logger   *logrus.Logger
	sessions ports.SessionStore
	api      ports.APIClient

	auth          *application.AuthService
	pets          *application.PetService
	vaccinations  *application.VaccinationService
	records       *application.MedicalRecordService
	market        *application.MarketplaceService
	subscriptions *application.SubscriptionService
	campaigns     *application.CampaignService
	feedback      *application.FeedbackService
	notifications *application.NotificationService
	reports       *application.ReportService

	render  func(view.Document, view.Options) (string, error)
	now     func() time.Time
	closers []func() error

	asJSON  bool
	verbose bool
	width   int
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.Log.Level)

	secrets, closer, err := newSecretStore(cfg.Store, logger.WithField("component", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	profiles, err := tomlrepo.NewRepository(cfg.Session.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	sessions, err := session.NewStore(secrets, profiles, session.Options{
		Clock:  ports.SystemClock{},
		Logger: logger.WithField("component", "session"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	client, err := httpapi.New(httpapi.Config{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.Timeout,
		RefreshPath: cfg.API.RefreshPath,
		RateLimit:   cfg.API.RateLimit,
		RateBurst:   cfg.API.RateBurst,
		Logger:      logger.WithField("component", "httpapi"),
	}, sessions)
	if err != nil {
		return nil, fmt.Errorf("wire api client: %w", err)
	}

	a := &app{
		cfg:           cfg,
		logger:        logger,
		sessions:      sessions,
		api:           client,
		auth:          application.NewAuthService(client, sessions),
		pets:          application.NewPetService(client),
		vaccinations:  application.NewVaccinationService(client),
		records:       application.NewMedicalRecordService(client),
		market:        application.NewMarketplaceService(client),
		subscriptions: application.NewSubscriptionService(client),
		campaigns:     application.NewCampaignService(client),
		feedback:      application.NewFeedbackService(client),
		notifications: application.NewNotificationService(client),
		reports:       application.NewReportService(client),
		render:        view.Render,
		now:           time.Now,
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	return a, nil
}

func newSecretStore(cfg config.StoreConfig, logger logrus.FieldLogger) (ports.SecretStore, func() error, error) {
	pass := passstore.Options{Binary: cfg.PassBinary, Namespace: cfg.PassNamespace}
	switch cfg.Backend {
	case config.BackendChain:
		store, err := chainstore.NewStore(passstore.NewStore(pass), filestore.NewStore(cfg.FileRoot), logger)
		return store, nil, err
	case config.BackendFile:
		return filestore.NewStore(cfg.FileRoot), nil, nil
	case config.BackendPass:
		return passstore.NewStore(pass), nil, nil
	case config.BackendRedis:
		store, err := redisstore.NewStoreFromURL(cfg.RedisURL, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendMemory:
		return memorystore.NewStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported secret backend %q", cfg.Backend)
	}
}

func (a *app) close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	a.closers = nil
	return errors.Join(errs...)
}
