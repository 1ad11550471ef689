package routes

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/config"
	"senya/backend/controllers"
	"senya/backend/middleware"
	"senya/backend/models"
	"senya/backend/progression"
	"senya/backend/services"
)

type Services struct {
	Progression *services.ProgressionService
	Accounts    *services.AccountService
	Content     *services.ContentService
	Analytics   *services.AnalyticsService
}

func SetupRoutes(app *fiber.App, svc Services, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(svc.Accounts, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/admin/login", authController.AdminLogin)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Profile routes
	profileController := controllers.NewProfileController(svc.Progression)
	app.Get("/api/status", authMiddleware, profileController.GetStatus)
	app.Get("/api/status/heart-timer", authMiddleware, profileController.GetHeartTimer)
	app.Post("/api/profile/certificate", authMiddleware, profileController.IssueCertificate)

	// User routes
	userController := controllers.NewUserController(svc.Accounts)
	app.Get("/api/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/profile", authMiddleware, userController.UpdateProfile)

	// Lesson routes
	lessonController := controllers.NewLessonController(svc.Progression)
	lessons := app.Group("/api/lessons", authMiddleware)
	lessons.Get("/", lessonController.ListLessons)
	lessons.Get("/units", lessonController.GetUnits)
	lessons.Get("/units/:id/progress", lessonController.GetUnitProgress)
	lessons.Get("/units/:id/status", lessonController.Status(progression.KindUnit))
	lessons.Post("/refresh-hearts", lessonController.RefreshHearts)
	lessons.Get("/daily-challenge", lessonController.GetDailyChallenge)
	lessons.Post("/daily-challenge/complete", lessonController.CompleteDailyChallenge)
	lessons.Get("/:id/progress", lessonController.GetLessonProgress)
	lessons.Patch("/:id/progress", lessonController.UpdateLessonProgress)
	lessons.Get("/:id/status", lessonController.Status(progression.KindLesson))
	lessons.Get("/:id/quiz", lessonController.GetQuiz)
	lessons.Get("/:id", lessonController.GetLesson)
	app.Get("/api/content/units", authMiddleware, lessonController.GetContentTree)

	// Practice routes
	practiceController := controllers.NewPracticeController(svc.Progression)
	practice := app.Group("/api/practice", authMiddleware)
	practice.Get("/levels", practiceController.GetLevels)
	practice.Get("/levels/:id/status", lessonController.Status(progression.KindLevel))
	practice.Post("/progress", practiceController.UpdateProgress)
	practice.Get("/hearts", practiceController.GetHearts)
	practice.Get("/signs", practiceController.GetSigns)

	// Shop routes
	shopController := controllers.NewShopController(svc.Progression)
	app.Get("/api/shop/heart-packages", authMiddleware, shopController.GetHeartPackages)
	app.Post("/api/shop/purchase-hearts", authMiddleware, shopController.PurchaseHearts)

	// Admin routes
	adminController := controllers.NewAdminController(svc.Content)
	admin := app.Group("/api/admin", authMiddleware, adminOnly)
	admin.Get("/units", adminController.ListUnits)
	admin.Post("/units", adminController.CreateUnit)
	admin.Put("/units/:id", adminController.UpdateUnit)
	admin.Patch("/units/:id/archive", adminController.ArchiveUnit)
	admin.Get("/units/:id/lessons", adminController.ListLessons)
	admin.Post("/lessons", adminController.CreateLesson)
	admin.Put("/lessons/:id", adminController.UpdateLesson)
	admin.Patch("/lessons/:id/archive", adminController.ArchiveLesson)
	admin.Get("/lessons/:id/signs", adminController.ListSigns)
	admin.Post("/lessons/:id/signs/import", adminController.ImportSigns)
	admin.Put("/signs/:id", adminController.UpdateSign)
	admin.Patch("/signs/:id/archive", adminController.ArchiveSign)
	admin.Post("/practice/levels", adminController.CreateLevel)
	admin.Post("/practice/games", adminController.CreateGame)
	admin.Post("/shop/heart-packages", adminController.CreateHeartPackage)

	// Admin dashboard
	analyticsController := controllers.NewAnalyticsController(svc.Analytics)
	dashboard := admin.Group("/dashboard")
	dashboard.Get("/summary", analyticsController.GetSummary)
	dashboard.Get("/lessons-per-unit", analyticsController.GetLessonsPerUnit)
	dashboard.Get("/signs-per-lesson", analyticsController.GetSignsPerLesson)
	dashboard.Get("/signs-difficulty-summary", analyticsController.GetSignsByDifficulty)
	dashboard.Get("/user-performance", analyticsController.GetUserPerformance)
}
