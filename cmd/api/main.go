package main

import (
	authhandler "tripdey/internal/auth/handler"
	authrepository "tripdey/internal/auth/repository"
	authservice "tripdey/internal/auth/service"
	authvalidator "tripdey/internal/auth/validator"
	bookinghandler "tripdey/internal/booking/handler"
	bookingrepository "tripdey/internal/booking/repository"
	bookingservice "tripdey/internal/booking/service"
	bookingvalidator "tripdey/internal/booking/validator"
	businesshandler "tripdey/internal/business/handler"
	businessrepository "tripdey/internal/business/repository"
	businessservice "tripdey/internal/business/service"
	businessvalidator "tripdey/internal/business/validator"
	cataloghandler "tripdey/internal/catalog/handler"
	catalogrepository "tripdey/internal/catalog/repository"
	catalogservice "tripdey/internal/catalog/service"
	catalogvalidator "tripdey/internal/catalog/validator"
	reviewhandler "tripdey/internal/review/handler"
	reviewrepository "tripdey/internal/review/repository"
	reviewservice "tripdey/internal/review/service"
	reviewvalidator "tripdey/internal/review/validator"
	subscriptionhandler "tripdey/internal/subscription/handler"
	subscriptionrepository "tripdey/internal/subscription/repository"
	subscriptionservice "tripdey/internal/subscription/service"
	"tripdey/pkg/app"
	"tripdey/pkg/client"
	"tripdey/pkg/config"
	"tripdey/pkg/kafka"
	"tripdey/pkg/mailer"
	"tripdey/pkg/middleware"
	"tripdey/pkg/otp"
	"tripdey/pkg/token"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
)

const ServiceName = "tripdey-api"

// compositeHandler registers every domain handler on the shared router.
type compositeHandler struct {
	handlers []interface {
		RegisterRoutes(*httprouter.Router)
	}
}

func (c *compositeHandler) RegisterRoutes(router *httprouter.Router) {
	for _, h := range c.handlers {
		h.RegisterRoutes(router)
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting tripdey API")

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, buildHandler(cfg, serverApp))
	serverApp.Run()
}

func buildHandler(cfg *config.Config, serverApp *app.Application) *compositeHandler {
	jwt := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	codes := otp.NewStore(cfg.OTPTTL, cfg.OTPMaxAttempts)
	serverApp.AddCloser(codes.Stop)

	mail := buildMailer(cfg, serverApp)
	google := client.NewGoogleVerifier(cfg.GoogleClientID)

	userRepo := authrepository.NewMongoUserRepository(cfg)
	tokenRepo := authrepository.NewMongoTokenRepository(cfg)
	businessRepo := businessrepository.NewMongoBusinessRepository(cfg)
	categoryRepo := businessrepository.NewMongoCategoryRepository(cfg)
	taxonomyRepo := catalogrepository.NewMongoTaxonomyRepository(cfg)
	carRepo := catalogrepository.NewMongoCarListingRepository(cfg)
	shortletRepo := catalogrepository.NewMongoShortletListingRepository(cfg)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	reviewRepo := reviewrepository.NewMongoReviewRepository(cfg)
	subscriptionRepo := subscriptionrepository.NewMongoSubscriptionRepository(cfg)

	authService := authservice.NewAuthService(
		userRepo,
		tokenRepo,
		authvalidator.NewAuthValidator(),
		jwt,
		codes,
		mail,
		google,
		cfg,
	)
	// Deleting an account removes everything the user owns.
	authService.RegisterOwnedData(businessRepo, carRepo, shortletRepo, bookingRepo, reviewRepo)

	businessService := businessservice.NewBusinessService(
		businessRepo,
		categoryRepo,
		userRepo,
		businessvalidator.NewBusinessValidator(),
		cfg,
	)

	catalogService := catalogservice.NewCatalogService(
		taxonomyRepo,
		carRepo,
		shortletRepo,
		businessRepo,
		reviewRepo,
		catalogvalidator.NewCatalogValidator(),
		cfg,
	)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		catalogService,
		userRepo,
		mail,
		bookingvalidator.NewBookingValidator(),
		cfg,
	)

	reviewService := reviewservice.NewReviewService(
		reviewRepo,
		catalogService,
		reviewvalidator.NewReviewValidator(),
		cfg,
	)

	subscriptionService := subscriptionservice.NewSubscriptionService(subscriptionRepo, cfg)

	authmw := middleware.Authenticate(jwt)
	submw := middleware.RequireSubscription(subscriptionService)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return &compositeHandler{
		handlers: []interface {
			RegisterRoutes(*httprouter.Router)
		}{
			authhandler.NewAuthHandler(authService, authmw, cfg.Log),
			businesshandler.NewBusinessHandler(businessService, authmw, cfg.Log),
			cataloghandler.NewCatalogHandler(catalogService, authmw, submw, cfg.Log),
			bookinghandler.NewBookingHandler(bookingService, authmw, cfg.Log),
			reviewhandler.NewReviewHandler(reviewService, authmw, cfg.Log),
			subscriptionhandler.NewSubscriptionHandler(subscriptionService, authmw, cfg.Log),
		},
	}
}

func buildMailer(cfg *config.Config, serverApp *app.Application) mailer.Mailer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, logging outbound mail instead")
		return mailer.NewLogMailer(cfg.Log)
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.MailTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	serverApp.AddCloser(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})
	return mailer.NewKafkaMailer(producer, cfg.MailFrom, ServiceName)
}
