package main

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "runtime"
    "syscall"
    "time"
    "github.com/gorilla/handlers"
    "github.com/gorilla/mux"
    "github.com/rs/cors"
    _ "github.com/lib/pq"
    "googlemaps.github.io/maps"
    "github.com/akavinashsingh/safeRoute-AI/config"
    apihandlers "github.com/akavinashsingh/safeRoute-AI/handlers"
    "github.com/akavinashsingh/safeRoute-AI/middleware"
    "github.com/akavinashsingh/safeRoute-AI/realtime"
    "github.com/akavinashsingh/safeRoute-AI/safety"
    "github.com/akavinashsingh/safeRoute-AI/suggest"
)

type HealthResponse struct {
    Status    string `json:"status"`
    DBStatus  string `json:"db_status"`
    DBDetails struct {
        Host     string   `json:"host"`
        Port     string   `json:"port"`
        Database string   `json:"database"`
        Tables   []string `json:"tables,omitempty"`
    } `json:"db_details"`
    MongoStatus string `json:"mongo_status"`
    Error       string `json:"error,omitempty"`
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
    response := HealthResponse{
        Status: "ok",
    }

    // Check database connection
    if config.DB == nil {
        response.Status = "error"
        response.DBStatus = "not_initialized"
        response.Error = "Database connection not initialized"
    } else {
        err := config.CheckPostgresHealth()
        if err != nil {
            response.Status = "error"
            response.DBStatus = "connection_error"
            response.Error = fmt.Sprintf("Database ping failed: %v", err)
        } else {
            response.DBStatus = "connected"

            response.DBDetails.Host = os.Getenv("DB_HOST")
            response.DBDetails.Port = os.Getenv("DB_PORT")
            response.DBDetails.Database = os.Getenv("DB_NAME")

            // Check for required tables
            tables := []string{"route_feedback"}
            var existingTables []string

            for _, table := range tables {
                var exists bool
                err := config.DB.QueryRow(`
                    SELECT EXISTS (
                        SELECT FROM information_schema.tables 
                        WHERE table_name = $1
                    )`, table).Scan(&exists)

                if err == nil && exists {
                    existingTables = append(existingTables, table)
                }
            }
            response.DBDetails.Tables = existingTables
        }
    }

    if config.MongoClient == nil {
        response.MongoStatus = "not_initialized"
    } else if err := config.CheckMongoHealth(); err != nil {
        response.Status = "error"
        response.MongoStatus = "connection_error"
    } else {
        response.MongoStatus = "connected"
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(response)
}

func main() {
    startTime := time.Now()
    log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

    // Load environment variables first
    if err := config.LoadEnv(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
        log.Printf("No PORT environment variable found, using default: %s", port)
    }

    // Initialize PostgreSQL database with retries
    log.Println("Initializing PostgreSQL database...")
    if err := config.InitDBWithRetry(5); err != nil {
        log.Fatalf("Failed to initialize PostgreSQL: %v", err)
    }
    log.Println("PostgreSQL database initialized successfully")
    defer config.CloseDB()

    // Initialize MongoDB for alert documents
    log.Println("Initializing MongoDB...")
    if err := config.ConnectWithRetry(5); err != nil {
        log.Fatalf("Failed to initialize MongoDB: %v", err)
    }
    log.Println("MongoDB initialized successfully")

    config.InitCache()

    // Service clients. The server still starts without a Maps key, the
    // routing endpoints just report unavailable.
    var mapsClient *maps.Client
    if key := config.GoogleMapsAPIKey(); key != "" {
        var err error
        mapsClient, err = maps.NewClient(maps.WithAPIKey(key))
        if err != nil {
            log.Fatalf("Failed to create Maps client: %v", err)
        }
        log.Println("Google Maps client initialized")
    } else {
        log.Println("Warning: GOOGLE_MAPS_API_KEY not set, route analysis disabled")
    }

    gemini := suggest.NewGeminiClient(config.GeminiAPIKey())
    places := suggest.NewPlacesFinder(mapsClient, config.EmergencyNumber())
    suggestions := suggest.NewService(gemini, places, config.EmergencyNumber(), config.SuggestionCache)
    lamps := safety.NewLampSurvey(config.OverpassURL(), 10*time.Second)
    apihandlers.InitServices(mapsClient, suggestions, lamps)

    // Socket.IO push channel
    socketServer := realtime.Init()
    go func() {
        if err := socketServer.Serve(); err != nil {
            log.Printf("Socket.IO server error: %v", err)
        }
    }()
    defer socketServer.Close()

    // Create router
    r := mux.NewRouter()

    // CORS configuration
    corsHandler := cors.New(cors.Options{
        AllowedOrigins: []string{
            "http://localhost:3000",
            "http://localhost:5173",
            "http://localhost:8080",
            "http://127.0.0.1:3000",
            "http://127.0.0.1:5500",
            "https://saferoute-ai.vercel.app",
        },
        AllowedMethods: []string{
            "GET", "POST", "PUT", "DELETE", "OPTIONS",
        },
        AllowedHeaders: []string{
            "Accept",
            "Authorization",
            "Content-Type",
            "X-CSRF-Token",
            "X-Requested-With",
            "Origin",
            "Access-Control-Request-Method",
            "Access-Control-Request-Headers",
        },
        ExposedHeaders: []string{
            "Content-Length",
            "Content-Type",
            "X-Content-Type-Options",
        },
        AllowCredentials: false,
        MaxAge: 86400,
    })

    // Apply middlewares in correct order
    r.Use(middleware.CORSDebugMiddleware)
    r.Use(corsHandler.Handler)
    r.Use(middleware.RecoveryMiddleware)
    r.Use(middleware.LoggingMiddleware)
    r.Use(handlers.CompressHandler)

    // Push channel rides the same listener
    r.Handle("/socket.io/", socketServer)

    // API routes
    api := r.PathPrefix("/api/v1").Subrouter()
    registerRoutes(api)
    log.Println("Routes registered successfully")

    // Health check endpoint
    api.HandleFunc("/health/detailed", healthCheck).Methods("GET")

    // Create server with optimized timeouts
    srv := &http.Server{
        Handler:           r,
        Addr:              ":" + port,
        WriteTimeout:      15 * time.Second,
        ReadTimeout:       15 * time.Second,
        IdleTimeout:       60 * time.Second,
        ReadHeaderTimeout: 5 * time.Second,
        MaxHeaderBytes:    1 << 20,
    }

    // Create error channel for server errors
    serverErrors := make(chan error, 1)

    // Start server in a goroutine
    go func() {
        log.Printf("Starting server on port %s...", port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Printf("Server error: %v", err)
            serverErrors <- err
        }
    }()

    // Wait for server to start
    time.Sleep(1 * time.Second)
    log.Printf("Server is running at http://localhost:%s", port)
    log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", port)

    // Handle graceful shutdown
    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

    // Wait for shutdown signal or server error
    select {
    case <-stop:
        log.Println("Shutdown signal received")
    case err := <-serverErrors:
        log.Printf("Server error received: %v", err)
    }

    log.Println("Shutting down server...")
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    if err := srv.Shutdown(ctx); err != nil {
        log.Printf("Error during server shutdown: %v", err)
    } else {
        log.Println("Server shutdown completed successfully")
    }

    // Final garbage collection
    runtime.GC()
}

func registerRoutes(api *mux.Router) {
    // Route analysis
    api.HandleFunc("/get-routes", apihandlers.GetRoutes).Methods("POST", "OPTIONS")

    // Community feedback
    api.HandleFunc("/post-feedback", apihandlers.PostFeedback).Methods("POST", "OPTIONS")
    api.HandleFunc("/get-feedback", apihandlers.GetFeedback).Methods("GET")

    // SOS alerts
    api.HandleFunc("/send-alert", apihandlers.SendAlert).Methods("POST", "OPTIONS")
    api.HandleFunc("/get-all-alerts", apihandlers.GetAllAlerts).Methods("GET")
    api.HandleFunc("/update-alert/{id}", apihandlers.UpdateAlert).Methods("PUT", "OPTIONS")

    // Admin / data lifecycle
    api.HandleFunc("/clear-all-data", apihandlers.ClearAllData).Methods("POST", "OPTIONS")
    api.HandleFunc("/gemini-status", apihandlers.GeminiStatus).Methods("GET")
    api.HandleFunc("/get-maps-config", apihandlers.MapsConfig).Methods("GET")

    // Health check
    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("OK"))
    }).Methods("GET")
}
