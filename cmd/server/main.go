package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/viper"

	"github.com/memoirly/memoirly-web/config"
	"github.com/memoirly/memoirly-web/internal/achievements"
	"github.com/memoirly/memoirly-web/internal/api"
	"github.com/memoirly/memoirly-web/internal/auth"
	"github.com/memoirly/memoirly-web/internal/chapters"
	"github.com/memoirly/memoirly-web/internal/credits"
	"github.com/memoirly/memoirly-web/internal/database"
	"github.com/memoirly/memoirly-web/internal/services"
	"github.com/memoirly/memoirly-web/internal/websocket"
)

func setupViper() {
	// Read base config file (optional, defaults cover everything)
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config.yaml: %s", err)
		}
	}

	// Read local config file for overrides (ignored by git)
	viper.SetConfigName("config.local")
	viper.MergeInConfig() // Merge local config on top of base

	// Read environment variables
	viper.SetEnvPrefix("MEMOIRLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("auth.session_secret", "change-this-in-production")
	viper.SetDefault("database.path", "./memoirly.db")
	viper.SetDefault("chapters.path", "./data/chapters")
}

func main() {
	setupViper()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	dbPath := viper.GetString("database.path")
	db, err := database.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Load chapter packs
	library, err := chapters.LoadLibrary(viper.GetString("chapters.path"))
	if err != nil {
		log.Fatalf("Failed to load chapter packs: %v", err)
	}

	// Build the achievement catalog; startup fails on an inconsistent catalog
	catalog, err := achievements.DefaultCatalog()
	if err != nil {
		log.Fatalf("Failed to build achievement catalog: %v", err)
	}

	// Initialize services
	userService := services.NewUserService(db)
	progressService := services.NewProgressService(db)
	storyService := services.NewStoryService(db, library, progressService)

	if err := storyService.SeedChapters(); err != nil {
		log.Fatalf("Failed to seed chapters: %v", err)
	}

	// Initialize auth with user service
	auth.Init(userService)

	r := mux.NewRouter()

	// Public routes (no authentication required)
	publicRouter := r.PathPrefix("/").Subrouter()
	publicRouter.HandleFunc("/register", auth.RegisterHandler).Methods("POST")
	publicRouter.HandleFunc("/login", auth.LoginHandler).Methods("POST")
	publicRouter.HandleFunc("/logout", auth.LogoutHandler).Methods("POST")
	publicRouter.HandleFunc("/credits", credits.Handler(library)).Methods("GET")
	publicRouter.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./web/static/"))))

	// Authenticated routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(auth.AuthMiddleware)

	// WebSocket routes (celebration push)
	hub := websocket.RegisterRoutes(authRouter)

	// API routes
	apiRouter := authRouter.PathPrefix("/api/v1").Subrouter()
	api.RegisterRoutes(apiRouter, library, storyService, progressService, catalog, hub)
	api.RegisterNarrationRoutes(apiRouter, &cfg.Narration, storyService)
	api.RegisterPromptRoutes(apiRouter, cfg, storyService)

	// Profile routes
	apiRouter.HandleFunc("/profile", api.GetUserProfile(userService)).Methods("GET")
	apiRouter.HandleFunc("/profile", api.UpdateUserProfile(userService)).Methods("PUT")
	apiRouter.HandleFunc("/profile/password", api.ChangePassword(userService)).Methods("POST")

	// Serve the main page
	authRouter.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./web/templates/index.html")
	}).Methods("GET")

	// CORS setup for development
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("📖 Memoirly server starting on port %s", port)
	log.Printf("🗄️ Database: %s", dbPath)

	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
