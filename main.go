package main

import (
	"log"

	"uniportal/config"
	enrollmentController "uniportal/controllers/enrollment"
	notificationController "uniportal/controllers/notification"
	quizController "uniportal/controllers/quiz"
	semesterController "uniportal/controllers/semester"
	"uniportal/database"
	authRoutes "uniportal/routers/authRoutes"
	courseRoutes "uniportal/routers/courseRoutes"
	notificationRoutes "uniportal/routers/notificationRoutes"
	offeringRoutes "uniportal/routers/offeringRoutes"
	quizRoutes "uniportal/routers/quizRoutes"
	semesterRoutes "uniportal/routers/semesterRoutes"
	enrollmentService "uniportal/services/enrollment"
	"uniportal/services/grading"
	notificationService "uniportal/services/notification"
	quizService "uniportal/services/quiz"
	semesterService "uniportal/services/semester"
	"uniportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// Shared service instances; the keyed locks inside them only work
	// when every request goes through the same instance.
	notifier := notificationService.NewService(db)
	semesters := semesterService.NewService(db)
	enrollments := enrollmentService.NewService(db)
	bank := quizService.NewBankService(db)
	attempts := quizService.NewAttemptService(db, notifier)

	semesterController.Init(semesters)
	enrollmentController.Init(enrollments)
	quizController.Init(bank, attempts, grading.NewFromConfig())
	notificationController.Init(notifier)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	semesterRoutes.SetupSemesterRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	offeringRoutes.SetupOfferingRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	utils.StartAttemptExpiryScheduler(attempts)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
