package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/contabilisync/backend/cache"
	"github.com/contabilisync/backend/controllers"
	"github.com/contabilisync/backend/cron"
	"github.com/contabilisync/backend/db"
	"github.com/contabilisync/backend/routes"
	"github.com/contabilisync/backend/services"
	"github.com/contabilisync/backend/storage"
	"github.com/contabilisync/backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	gdb, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}
	log.Println("Database ready")

	files, err := newFileStore()
	if err != nil {
		log.Fatal("Failed to init file store: ", err)
	}

	var accountants *cache.AccountantCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		accountants, err = cache.New(addr)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		log.Println("Connected to Redis")
	}

	passwords := services.NewPasswordService()
	users := services.NewUserService(gdb, passwords)
	appointments := services.NewAppointmentService(gdb, users)
	documents := services.NewDocumentService(gdb, users, files)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app, controllers.NewAuthController(users))
	routes.SetupUserRoutes(app, controllers.NewUserController(users, accountants))
	routes.SetupAppointmentRoutes(app, controllers.NewAppointmentController(appointments))
	routes.SetupDocumentRoutes(app, controllers.NewDocumentController(documents))

	if mailer := utils.NewMailerFromEnv(); mailer != nil {
		reminders := cron.NewReminders(gdb, mailer)
		if err := reminders.Start(); err != nil {
			log.Fatal(err)
		}
		defer reminders.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}

// newFileStore picks the document storage backend: local disk by default,
// Cloudinary when STORAGE_BACKEND=cloudinary.
func newFileStore() (storage.FileStore, error) {
	if os.Getenv("STORAGE_BACKEND") == "cloudinary" {
		return storage.NewCloudinary(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
			os.Getenv("CLOUDINARY_FOLDER"),
		)
	}
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return storage.NewLocal(dir)
}

func corsOrigins() string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return origins
	}
	return "http://localhost:4200, http://localhost:4201"
}
