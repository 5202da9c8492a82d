package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/omnia-labs/omnia-api/docs"
	v1 "github.com/omnia-labs/omnia-api/internal/api/handler/v1"
	"github.com/omnia-labs/omnia-api/internal/api/middleware"
	"github.com/omnia-labs/omnia-api/internal/cardschema"
	"github.com/omnia-labs/omnia-api/internal/config"
	"github.com/omnia-labs/omnia-api/internal/mirror"
	"github.com/omnia-labs/omnia-api/internal/repository"
	"github.com/omnia-labs/omnia-api/internal/repository/dao"
	"github.com/omnia-labs/omnia-api/internal/repository/filestore"
	"github.com/omnia-labs/omnia-api/internal/service"
	"github.com/omnia-labs/omnia-api/internal/staking"
)

type Server struct {
	Config  *config.AppConfig
	Router  *gin.Engine
	Staking *service.StakingService
	Broker  *service.Broker

	validator *cardschema.Validator
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	validator, err := cardschema.New()
	if err != nil {
		return nil, fmt.Errorf("cardschema.New -> %w", err)
	}

	s := &Server{
		Config:    conf,
		Router:    engine,
		Broker:    service.NewBroker(),
		validator: validator,
	}

	s.MountMiddlewares()

	stakingSvc, err := s.initStakingService(db)
	if err != nil {
		return nil, err
	}
	s.Staking = stakingSvc

	sessionHandler := v1.NewSessionHandler(conf.API, stakingSvc)
	stakingHandler := v1.NewStakingHandler(stakingSvc)
	eventsHandler := v1.NewEventsHandler(s.Broker, conf.API.AllowedCORSDomains)
	nftRecordHandler := s.initNFTRecordHandler(db)
	supplyKeyHandler := s.initSupplyKeyHandler(db)
	s.MountHandlers(sessionHandler, stakingHandler, eventsHandler, nftRecordHandler, supplyKeyHandler)

	return s, nil
}

func (s *Server) initStateRepository(db *gorm.DB) (service.StateRepository, error) {
	switch s.Config.Store.Driver {
	case config.StoreDriverFile:
		store, err := filestore.New(s.Config.Store.FilePath, s.Config.Store.Compress)
		if err != nil {
			return nil, fmt.Errorf("filestore.New -> %w", err)
		}
		return store, nil
	case config.StoreDriverPostgres, "":
		return repository.NewStateRepository(dao.NewStateDAO(db)), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.Config.Store.Driver)
	}
}

func (s *Server) initStakingService(db *gorm.DB) (*service.StakingService, error) {
	stateRepo, err := s.initStateRepository(db)
	if err != nil {
		return nil, err
	}

	opts := []service.StakingOption{
		service.WithRewardRepository(repository.NewRewardRepository(dao.NewRewardDAO(db))),
		service.WithMetadataValidator(s.validator),
		service.WithEventPublisher(s.Broker),
		service.WithRewardPolicy(staking.RewardPolicy{
			Attribute:  s.Config.Reward.Attribute,
			Multiplier: s.Config.Reward.Multiplier,
		}),
	}
	if s.Config.Mirror.Enabled {
		client, err := mirror.NewClient(s.Config.Mirror)
		if err != nil {
			return nil, fmt.Errorf("mirror.NewClient -> %w", err)
		}
		opts = append(opts, service.WithInventoryFetcher(client))
	}

	return service.NewStakingService(stateRepo, opts...), nil
}

func (s *Server) initNFTRecordHandler(db *gorm.DB) *v1.NFTRecordHandler {
	nftRecordDAO := dao.NewNFTRecordDAO(db)
	repo := repository.NewNFTRecordRepository(nftRecordDAO)
	svc := service.NewNFTRecordService(repo, s.validator)
	handler := v1.NewNFTRecordHandler(svc)

	return handler
}

func (s *Server) initSupplyKeyHandler(db *gorm.DB) *v1.SupplyKeyHandler {
	supplyKeyDAO := dao.NewSupplyKeyDAO(db)
	repo := repository.NewSupplyKeyRepository(supplyKeyDAO)
	svc := service.NewSupplyKeyService(repo, s.Config.Supply.Secret)
	handler := v1.NewSupplyKeyHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	if rl := s.Config.API.RateLimit; rl != nil && rl.RPS > 0 {
		s.Router.Use(middleware.NewRateLimiter(rl.RPS, rl.Burst).Limit())
	}
}

func (s *Server) MountHandlers(
	sessionHandler *v1.SessionHandler,
	stakingHandler *v1.StakingHandler,
	eventsHandler *v1.EventsHandler,
	nftRecordHandler *v1.NFTRecordHandler,
	supplyKeyHandler *v1.SupplyKeyHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/sessions", sessionHandler.HandleCreateSession)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.DELETE("/sessions", sessionHandler.HandleDeleteSession)
		authed.GET("/events", eventsHandler.HandleEvents)

		authed.GET("/state", stakingHandler.HandleGetState)
		authed.PUT("/state", stakingHandler.HandlePutState)
		authed.GET("/inventory/groups", stakingHandler.HandleGetGroups)
		authed.POST("/inventory/refresh", stakingHandler.HandleRefreshInventory)
		authed.PUT("/inventory", stakingHandler.HandleImportInventory)
		authed.POST("/lands", stakingHandler.HandlePlaceLand)
		authed.DELETE("/lands/:instanceID", stakingHandler.HandleRemoveLand)
		authed.GET("/lands/:instanceID/plots/:plotIndex/candidates", stakingHandler.HandleGetCandidates)
		authed.POST("/lands/:instanceID/plots/:plotIndex/stake", stakingHandler.HandleStake)
		authed.DELETE("/lands/:instanceID/plots/:plotIndex/stake", stakingHandler.HandleUnstake)
		authed.GET("/rewards", stakingHandler.HandleGetRewards)

		authed.POST("/nft-records", nftRecordHandler.HandleCreateNFTRecord)
		authed.GET("/nft-records", nftRecordHandler.HandleListNFTRecords)
		authed.DELETE("/nft-records/:recordID", nftRecordHandler.HandleDeleteNFTRecord)
		authed.GET("/supply-key", supplyKeyHandler.HandleGetSupplyKey)
		authed.PUT("/supply-key", supplyKeyHandler.HandlePutSupplyKey)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Omnia staking API"
	docs.SwaggerInfo.Description = "Land staking allocator for Omnia game cards."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
