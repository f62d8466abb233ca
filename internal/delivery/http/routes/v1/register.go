package v1

import (
	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/infrastructure/persistence/postgres"
	"skill-matrix/internal/pkg/jwt"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.CatalogCache) error {
	if r == nil {
		return nil
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		return err
	}

	skillRepo := repository.NewPostgresSkillRepository(db)
	certRepo := repository.NewPostgresCertificationRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	userCertRepo := repository.NewPostgresUserCertificationRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo, profileRepo)
	skillUC := usecase.NewSkillUsecase(skillRepo, cache)
	certUC := usecase.NewCertificationUsecase(certRepo, cache)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, skillRepo)
	userCertUC := usecase.NewUserCertificationUsecase(userCertRepo, certRepo)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	certHandler := handler.NewCertificationHandler(certUC)
	userSkillHandler := handler.NewUserSkillHandler(userSkillUC)
	userCertHandler := handler.NewUserCertificationHandler(userCertUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)

	skillsGroup := protected.Group("/skills")
	skillHandler.RegisterRoutes(skillsGroup)
	userSkillHandler.RegisterRoutes(skillsGroup)

	certsGroup := protected.Group("/certifications")
	certHandler.RegisterRoutes(certsGroup)
	userCertHandler.RegisterRoutes(certsGroup)

	return nil
}
