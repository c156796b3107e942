package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kalan.app/gestionscolaire/internal/config"
	"kalan.app/gestionscolaire/internal/handler"
	"kalan.app/gestionscolaire/internal/middleware"
	"kalan.app/gestionscolaire/internal/repository"
	"kalan.app/gestionscolaire/internal/service"
	"kalan.app/gestionscolaire/internal/tenant"
	"kalan.app/gestionscolaire/internal/token"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	ecoleRepo := repository.NewEcoleRepository(db)
	userRepo := repository.NewUtilisateurRepository(db)
	enfantRepo := repository.NewEnfantRepository(db)
	vieScolaireRepo := repository.NewVieScolaireRepository(db)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	resolver := tenant.NewResolver(ecoleRepo)

	authSvc := service.NewAuthService(userRepo, ecoleRepo, issuer)
	authHandler := handler.NewAuthHandler(authSvc, resolver)

	ecoleSvc := service.NewEcoleService(ecoleRepo)
	ecoleHandler := handler.NewEcoleHandler(ecoleSvc)

	compteSvc := service.NewCompteService(userRepo)
	compteHandler := handler.NewCompteHandler(compteSvc, resolver)

	enfantSvc := service.NewEnfantService(enfantRepo, userRepo)
	enfantHandler := handler.NewEnfantHandler(enfantSvc, resolver)

	vieScolaireSvc := service.NewVieScolaireService(vieScolaireRepo, enfantRepo)
	vieScolaireHandler := handler.NewVieScolaireHandler(vieScolaireSvc, resolver)

	authMiddleware := middleware.NewAuthMiddleware(issuer)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", tenant.HeaderSchoolCode},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", middleware.LoginRateLimit(redisClient, cfg.LoginRateLimit), authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	api.Use(authMiddleware.RequireAuth())
	{
		auth := api.Group("/auth")
		auth.POST("/logout", authHandler.Logout)
		auth.PUT("/profile", authHandler.UpdateProfile)
		auth.PUT("/password", authHandler.ChangePassword)
		auth.DELETE("/account", authHandler.DeleteAccount)

		ecoles := api.Group("/ecoles")
		ecoles.Use(authMiddleware.RequireRole("SuperAdmin"))
		{
			ecoles.POST("", ecoleHandler.Create)
			ecoles.GET("", ecoleHandler.List)
			ecoles.GET("/:id", ecoleHandler.Get)
			ecoles.PUT("/:id", ecoleHandler.Update)
			ecoles.DELETE("/:id", ecoleHandler.Delete)
			ecoles.PATCH("/:id/toggle", ecoleHandler.ToggleStatus)
		}

		comptes := api.Group("/comptes")
		comptes.Use(authMiddleware.RequireRole("Admin"))
		{
			comptes.POST("", compteHandler.Create)
			comptes.GET("", compteHandler.List)
			comptes.GET("/:id", compteHandler.Get)
			comptes.PUT("/:id", compteHandler.Update)
			comptes.DELETE("/:id", compteHandler.Delete)
			comptes.POST("/:id/roles", compteHandler.AssignRole)
			comptes.DELETE("/:id/roles", compteHandler.RemoveRole)
		}

		enfants := api.Group("/enfants")
		{
			enfants.GET("/mes-enfants", authMiddleware.RequireRole("Parent"), enfantHandler.MesEnfants)
			enfants.GET("/mes-eleves", authMiddleware.RequireRole("Teacher"), enfantHandler.MesEleves)

			admin := enfants.Group("")
			admin.Use(authMiddleware.RequireRole("Admin"))
			{
				admin.POST("", enfantHandler.Create)
				admin.GET("", enfantHandler.List)
				admin.GET("/:id", enfantHandler.Get)
				admin.PUT("/:id", enfantHandler.Update)
				admin.DELETE("/:id", enfantHandler.Delete)
				admin.POST("/:id/parents", enfantHandler.LinkParent)
				admin.DELETE("/:id/parents", enfantHandler.UnlinkParent)
				admin.POST("/:id/enseignants", enfantHandler.LinkEnseignant)
				admin.DELETE("/:id/enseignants", enfantHandler.UnlinkEnseignant)
			}
		}

		vie := api.Group("/viescolaire")
		{
			vie.GET("/annonces", vieScolaireHandler.ListAnnonces)
			vie.GET("/activites", vieScolaireHandler.ListActivites)
			vie.GET("/menus", vieScolaireHandler.ListMenus)
			vie.GET("/emploidutemps/:classe", vieScolaireHandler.ListCreneaux)
			vie.GET("/bulletins/:id", vieScolaireHandler.GetBulletin)
			vie.GET("/enfants/:id/bulletins", vieScolaireHandler.ListBulletins)
			vie.GET("/enfants/:id/liaison", vieScolaireHandler.ListMessagesLiaison)
			vie.POST("/liaison", vieScolaireHandler.CreateMessageLiaison)
			vie.PATCH("/liaison/:id/lu", vieScolaireHandler.MarquerMessageLu)

			gestion := vie.Group("")
			gestion.Use(authMiddleware.RequireRole("Admin", "Teacher"))
			{
				gestion.POST("/annonces", vieScolaireHandler.CreateAnnonce)
				gestion.PUT("/annonces/:id", vieScolaireHandler.UpdateAnnonce)
				gestion.DELETE("/annonces/:id", vieScolaireHandler.DeleteAnnonce)
				gestion.POST("/activites", vieScolaireHandler.CreateActivite)
				gestion.PUT("/activites/:id", vieScolaireHandler.UpdateActivite)
				gestion.DELETE("/activites/:id", vieScolaireHandler.DeleteActivite)
				gestion.POST("/bulletins", vieScolaireHandler.CreateBulletin)
				gestion.POST("/menus", vieScolaireHandler.CreateMenu)
				gestion.DELETE("/menus/:id", vieScolaireHandler.DeleteMenu)
				gestion.POST("/emploidutemps", vieScolaireHandler.CreateCreneau)
				gestion.DELETE("/emploidutemps/:id", vieScolaireHandler.DeleteCreneau)
			}
		}
	}

	return &Server{engine: router, cfg: cfg}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}
