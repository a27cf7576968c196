package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vastra-backend/internal/cache"
	"vastra-backend/internal/config"
	"vastra-backend/internal/database"
	"vastra-backend/internal/handlers"
	"vastra-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureSubscriberIndexes(db); err != nil {
		log.Printf("subscriber index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}
	if err := database.EnsureWishlistIndexes(db); err != nil {
		log.Printf("wishlist index warning: %v", err)
	}

	productCache := cache.NewProductCache(config.AppEnv.RedisAddr)
	store := handlers.NewDiskImageStore(config.AppEnv.UploadDir)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Static("/uploads", "./"+config.AppEnv.UploadDir)

	userSecret := config.AppEnv.UserJWTSecret
	adminSecret := config.AppEnv.AdminJWTSecret
	ttl := config.AppEnv.SessionTTL

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register(db, userSecret, ttl))
		auth.POST("/login", handlers.Login(db, userSecret, ttl))
		auth.POST("/logout", handlers.Logout())
		auth.GET("/me", middleware.UserAuth(db, userSecret), handlers.GetMe())
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/register", handlers.AdminRegister(db, adminSecret, ttl))
		admin.POST("/login", handlers.AdminLogin(db, adminSecret, ttl))
		admin.POST("/logout", handlers.AdminLogout())
		admin.GET("/me", middleware.AdminAuth(db, adminSecret), handlers.GetCurrentAdmin())
	}

	adminOnly := middleware.AdminAuth(db, adminSecret)

	products := r.Group("/api/products")
	{
		products.GET("", handlers.GetProducts(db, productCache))
		products.GET("/featured", handlers.GetFeaturedProducts(db))
		products.GET("/:id", handlers.GetProductByID(db))
		products.POST("", adminOnly, handlers.CreateProduct(db, store, productCache))
		products.PUT("/:id", adminOnly, handlers.UpdateProduct(db, store, productCache))
		products.DELETE("/:id", adminOnly, handlers.DeleteProduct(db, store, productCache, config.AppEnv.CascadeProductDelete))
	}

	carousel := r.Group("/api/carousel")
	{
		carousel.GET("", handlers.GetCarousels(db))
		carousel.GET("/:id", handlers.GetCarouselByID(db))
		carousel.POST("", adminOnly, handlers.CreateCarousel(db, store))
		carousel.PUT("/:id", adminOnly, handlers.UpdateCarousel(db))
		carousel.DELETE("/:id", adminOnly, handlers.DeleteCarousel(db, store))
	}

	categories := r.Group("/api/categories")
	{
		categories.POST("/add", adminOnly, handlers.CreateCategory(db, store))
		categories.GET("/all", handlers.GetAllCategories(db))
		categories.GET("/:slug/products", handlers.GetProductsByCategorySlug(db))
	}

	cart := r.Group("/api/cart")
	cart.Use(middleware.UserAuth(db, userSecret))
	{
		cart.POST("", handlers.AddToCart(db))
		cart.GET("", handlers.GetCart(db))
		cart.PUT("/:id", handlers.UpdateCartItem(db))
		cart.DELETE("/:id", handlers.RemoveFromCart(db))
		cart.DELETE("", handlers.ClearCart(db))
	}

	wishlist := r.Group("/api/wishlist")
	wishlist.Use(middleware.UserAuth(db, userSecret))
	{
		wishlist.POST("", handlers.AddToWishlist(db))
		wishlist.GET("", handlers.GetWishlist(db))
		wishlist.DELETE("/:id", handlers.RemoveFromWishlist(db))
	}

	contact := r.Group("/api/contact")
	{
		contact.POST("/subscribe", handlers.AddSubscriber(db))
		contact.GET("/info", handlers.GetContactInfo(db))
		contact.PUT("/info", adminOnly, handlers.UpdateContactInfo(db))
		contact.GET("/subscribers", adminOnly, handlers.GetSubscribers(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
