package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"htc-backend/internal/config"
	infraCache "htc-backend/internal/infrastructure/cache"
	"htc-backend/internal/infrastructure/docstore"
	"htc-backend/internal/infrastructure/queue"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/media"
	"htc-backend/pkg/cache"
	"htc-backend/pkg/repository"

	artistHandler "htc-backend/internal/domains/artist/handler"
	artistModel "htc-backend/internal/domains/artist/model"
	artistService "htc-backend/internal/domains/artist/service"
	dashboardHandler "htc-backend/internal/domains/dashboard/handler"
	dashboardService "htc-backend/internal/domains/dashboard/service"
	galleryHandler "htc-backend/internal/domains/gallery/handler"
	galleryModel "htc-backend/internal/domains/gallery/model"
	galleryService "htc-backend/internal/domains/gallery/service"
	kolHandler "htc-backend/internal/domains/kol/handler"
	kolModel "htc-backend/internal/domains/kol/model"
	kolService "htc-backend/internal/domains/kol/service"
	petHandler "htc-backend/internal/domains/pet/handler"
	petModel "htc-backend/internal/domains/pet/model"
	petService "htc-backend/internal/domains/pet/service"
	projectHandler "htc-backend/internal/domains/project/handler"
	projectModel "htc-backend/internal/domains/project/model"
	projectService "htc-backend/internal/domains/project/service"
	teamHandler "htc-backend/internal/domains/team/handler"
	teamModel "htc-backend/internal/domains/team/model"
	teamService "htc-backend/internal/domains/team/service"
	uploadHandler "htc-backend/internal/domains/upload/handler"
	uploadService "htc-backend/internal/domains/upload/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API and the worker.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config  *config.Config
	Store   docstore.Store
	Redis   *infraCache.RedisClient // nil when Redis was unreachable at startup
	Cache   cache.Cache             // nil when Redis was unreachable at startup
	Storage storage.Storage

	AsynqClient *asynq.Client
	BlobQueue   *queue.BlobQueue

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	ArtistRepo  repository.Repository[*artistModel.Artist]
	GalleryRepo repository.Repository[*galleryModel.Gallery]
	KolRepo     repository.Repository[*kolModel.Kol]
	PetRepo     repository.Repository[*petModel.Pet]
	TeamRepo    repository.Repository[*teamModel.Member]
	ProjectRepo repository.Repository[*projectModel.Project]

	// ========================================
	// MEDIA
	// ========================================
	Attacher        *media.Attacher
	ArtistAvatars   *media.Manager[*artistModel.Artist]
	GalleryPictures *media.Manager[*galleryModel.Gallery]
	KolAvatars      *media.Manager[*kolModel.Kol]
	PetAvatars      *media.Manager[*petModel.Pet]
	TeamAvatars     *media.Manager[*teamModel.Member]
	ProjectLogos    *media.Manager[*projectModel.Project]

	// References is every collection whose documents point at stored blobs.
	References media.References

	// ========================================
	// SERVICE LAYER
	// ========================================
	ArtistService    artistService.Service
	GalleryService   galleryService.Service
	KolService       kolService.Service
	PetService       petService.Service
	TeamService      teamService.Service
	ProjectService   projectService.Service
	DashboardService dashboardService.Service
	UploadService    uploadService.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	ArtistHandler    *artistHandler.ArtistHandler
	GalleryHandler   *galleryHandler.GalleryHandler
	KolHandler       *kolHandler.KolHandler
	PetHandler       *petHandler.PetHandler
	TeamHandler      *teamHandler.TeamHandler
	ProjectHandler   *projectHandler.ProjectHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	UploadHandler    *uploadHandler.UploadHandler
}

// NewContainer builds the dependency graph in order:
// config, document store, redis, blob storage, task queue, repositories,
// media managers, services, handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("config loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// ========================================
	// STEP 2: DOCUMENT STORE
	// ========================================
	if err := c.initStore(ctx); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: REDIS (cache + task queue)
	// ========================================
	c.initRedis(ctx)

	// ========================================
	// STEP 4: BLOB STORAGE
	// ========================================
	store, err := storage.New(ctx, cfg.Storage, cfg.App.PublicBaseURL)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = store
	log.Info().Str("driver", store.Driver()).Msg("blob storage ready")

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	if err := c.initRepositories(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	// ========================================
	// STEP 6: MEDIA, SERVICES, HANDLERS
	// ========================================
	c.initMedia()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStore(ctx context.Context) error {
	store, err := docstore.Open(ctx, c.Config, docstore.DefaultCollections())
	if err != nil {
		return err
	}
	c.Store = store

	log.Info().Str("driver", store.Driver()).Msg("document store connected")
	return nil
}

// initRedis leaves Cache and BlobQueue nil when Redis is down; the API still serves without them.
func (c *Container) initRedis(ctx context.Context) {
	client := infraCache.NewRedisClient(c.Config.Redis)
	if err := client.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache and retry queue")
		_ = client.Close()
		return
	}

	c.Redis = client
	c.Cache = infraCache.NewRedisCache(client)

	c.AsynqClient = asynq.NewClient(queue.RedisOpt(c.Config.Redis))
	c.BlobQueue = queue.NewBlobQueue(c.AsynqClient)
}

func (c *Container) initRepositories(ctx context.Context) error {
	var err error
	if c.ArtistRepo, err = newRepository(ctx, c, docstore.KindArtist, artistModel.New); err != nil {
		return err
	}
	if c.GalleryRepo, err = newRepository(ctx, c, docstore.KindGallery, galleryModel.New); err != nil {
		return err
	}
	if c.KolRepo, err = newRepository(ctx, c, docstore.KindKol, kolModel.New); err != nil {
		return err
	}
	if c.PetRepo, err = newRepository(ctx, c, docstore.KindPet, petModel.New); err != nil {
		return err
	}
	if c.TeamRepo, err = newRepository(ctx, c, docstore.KindTeam, teamModel.New); err != nil {
		return err
	}
	if c.ProjectRepo, err = newRepository(ctx, c, docstore.KindProject, projectModel.New); err != nil {
		return err
	}
	return nil
}

// newRepository opens kind on the configured store and adds the Redis read-through cache when available.
func newRepository[T repository.Entity](ctx context.Context, c *Container, kind string, newFn func() T) (repository.Repository[T], error) {
	repo, err := docstore.NewRepository(ctx, c.Store, kind, newFn)
	if err != nil {
		return nil, fmt.Errorf("%s repository: %w", kind, err)
	}
	if c.Cache == nil || !c.Config.DocStore.CacheEnabled {
		return repo, nil
	}
	return repository.NewCached[T](repo, c.Cache, newFn, c.Config.DocStore.CacheTTL), nil
}

func (c *Container) initMedia() {
	var retry media.RetryQueue
	if c.BlobQueue != nil {
		retry = c.BlobQueue
	}
	c.Attacher = media.NewAttacher(c.Storage, retry)

	c.ArtistAvatars = media.NewManager[*artistModel.Artist](c.Attacher, c.ArtistRepo, artistService.AvatarSlot)
	c.GalleryPictures = media.NewManager[*galleryModel.Gallery](c.Attacher, c.GalleryRepo, galleryService.PictureSlot)
	c.KolAvatars = media.NewManager[*kolModel.Kol](c.Attacher, c.KolRepo, kolService.AvatarSlot)
	c.PetAvatars = media.NewManager[*petModel.Pet](c.Attacher, c.PetRepo, petService.AvatarSlot)
	c.TeamAvatars = media.NewManager[*teamModel.Member](c.Attacher, c.TeamRepo, teamService.AvatarSlot)
	c.ProjectLogos = media.NewManager[*projectModel.Project](c.Attacher, c.ProjectRepo, projectService.LogoSlot)

	c.References = media.References{
		c.ArtistAvatars,
		c.GalleryPictures,
		c.KolAvatars,
		c.PetAvatars,
		c.TeamAvatars,
		c.ProjectLogos,
	}
}

func (c *Container) initServices() {
	c.GalleryService = galleryService.NewGalleryService(c.GalleryRepo, c.ArtistRepo, c.GalleryPictures)
	// galleries answer the artist service's picture lookups
	c.ArtistService = artistService.NewArtistService(c.ArtistRepo, c.ArtistAvatars, c.GalleryService)
	c.KolService = kolService.NewKolService(c.KolRepo, c.KolAvatars)
	c.PetService = petService.NewPetService(c.PetRepo, c.PetAvatars)
	c.TeamService = teamService.NewTeamService(c.TeamRepo, c.TeamAvatars)
	c.ProjectService = projectService.NewProjectService(c.ProjectRepo, c.ProjectLogos)

	c.DashboardService = dashboardService.NewDashboardService(dashboardService.NewSources(
		c.ArtistRepo, c.GalleryRepo, c.KolRepo, c.TeamRepo, c.PetRepo, c.ProjectRepo,
	))
	c.UploadService = uploadService.NewUploadService(c.Storage)
}

func (c *Container) initHandlers() {
	c.ArtistHandler = artistHandler.NewArtistHandler(c.ArtistService)
	c.GalleryHandler = galleryHandler.NewGalleryHandler(c.GalleryService)
	c.KolHandler = kolHandler.NewKolHandler(c.KolService)
	c.PetHandler = petHandler.NewPetHandler(c.PetService)
	c.TeamHandler = teamHandler.NewTeamHandler(c.TeamService)
	c.ProjectHandler = projectHandler.NewProjectHandler(c.ProjectService)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.DashboardService)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases connections. Safe to call on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if c.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Store.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to close document store")
		}
	}

	log.Info().Msg("container cleanup completed")
}
