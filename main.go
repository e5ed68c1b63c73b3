// @title           Uniform Marketplace Admin API
// @version         1.0
// @description     Admin console backend for the school uniform marketplace.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"backend/handlers"
	"backend/services"
	"backend/storage"
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()

	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"https://admin.unisew.vn",
	}

	corsConfig.AllowCredentials = true

	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
		}
	}()
}

// expireStaleQuotations closes quotations whose acceptance deadline passed
// while they were still open.
func expireStaleQuotations(db *sql.DB) error {
	if _, err := db.Exec(`
		UPDATE quotations SET status = 'expired'
		WHERE status = 'pending' AND acceptance_deadline IS NOT NULL AND acceptance_deadline < NOW()`); err != nil {
		return err
	}
	_, err := db.Exec(`
		UPDATE design_quotations SET status = 'expired'
		WHERE status = 'pending' AND acceptance_deadline IS NOT NULL AND acceptance_deadline < NOW()`)
	return err
}

// failDanglingPayments marks gateway transactions that never came back from
// the gateway as failed after a day.
func failDanglingPayments(db *sql.DB) error {
	_, err := db.Exec(`
		UPDATE payment_transactions SET status = 'failed', updated_at = NOW()
		WHERE status = 'processing' AND method = 'gateway' AND created_at < NOW() - INTERVAL '24 hours'`)
	return err
}

func main() {
	db := storage.InitDB()
	gormDB := storage.InitGormDB()

	// Firebase Cloud Messaging is optional; without credentials the console
	// simply runs with push notifications disabled.
	credentialsPath := os.Getenv("FCM_CREDENTIALS_PATH")
	if credentialsPath == "" {
		credentialsPath = "firebase-credentials.json"
	}
	fcmService, err := services.NewFCMService(credentialsPath, db)
	if err != nil {
		log.Printf("Warning: Failed to initialize FCM service: %v. Push notifications will be disabled.", err)
		fcmService = nil
	}

	emailService := services.NewEmailService()

	// Daily maintenance at 00:30 local time.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 0 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			return storage.CleanupExpiredSessions(db)
		}, cronLogger)

		safeGo(ctx, &wg, "ExpireStaleQuotations", func(ctx context.Context) error {
			return expireStaleQuotations(db)
		}, cronLogger)

		safeGo(ctx, &wg, "FailDanglingPayments", func(ctx context.Context) error {
			return failDanglingPayments(db)
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}

	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig()))

	// ==================== AUTH ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSession(db))

	// ==================== PLATFORM CONFIG ====================
	r.GET("/api/system/config", handlers.GetSystemConfig(db))
	r.PUT("/api/system/config", handlers.UpdateSystemConfig(db))

	// ==================== FABRICS & SIZES ====================
	r.GET("/api/sizes", handlers.GetSizes(db))
	r.GET("/api/garments/:garment_id/fabrics", handlers.GetGarmentFabrics(db))
	r.PUT("/api/garments/:garment_id/fabrics", handlers.UpdateFabricPrices(db))
	r.GET("/api/garments/:garment_id/fabrics/export", handlers.ExportFabricPriceMatrix(db))
	r.DELETE("/api/fabrics/:id", handlers.DeleteFabric(db))

	// ==================== ORDERS & QUOTATIONS ====================
	r.GET("/api/orders", handlers.GetOrders(db))
	r.GET("/api/orders/:id", handlers.GetOrderDetail(db))
	r.GET("/api/orders/:id/quotations", handlers.GetOrderQuotations(db))
	r.GET("/api/orders/:id/quotations/export", handlers.ExportQuotationComparisonPDF(db))
	r.POST("/api/quotations/:id/pick", handlers.PickQuotation(db, fcmService))

	// ==================== DESIGN REQUESTS ====================
	r.GET("/api/design-requests", handlers.GetDesignRequests(db))
	r.GET("/api/design-requests/:id/quotations", handlers.GetDesignQuotations(db))
	r.POST("/api/design-quotations/:id/pick", handlers.PickDesignQuotation(db, fcmService))

	// ==================== PAYMENTS & WALLETS ====================
	r.POST("/api/payments/url", handlers.CreatePaymentURL(db, gormDB, emailService, fcmService))
	r.GET("/api/payments/callback", handlers.PaymentCallback(db, gormDB, emailService, fcmService))
	r.GET("/api/payments/qr/:reference", handlers.GeneratePaymentQR(gormDB))
	r.GET("/api/wallets/:account_id", handlers.GetWallet(gormDB))

	// ==================== DEVICES ====================
	r.POST("/api/devices/token", handlers.RegisterDeviceToken(fcmService))
	r.DELETE("/api/devices/token/:account_id", handlers.UnregisterDeviceToken(fcmService))

	// ==================== MEDIA ====================
	r.POST("/api/upload", handlers.UploadFile(db))
	r.GET("/api/get-file", handlers.ServeFile)

	// ==================== AUDIT ====================
	r.GET("/api/logs", handlers.GetActivityLogsHandler(db))

	// Swagger UI; the spec is generated into docs/swagger.json at build time.
	r.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			c.File("docs/swagger.json")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"))(c)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduling new cron runs; in-flight jobs finish on their own.
	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
