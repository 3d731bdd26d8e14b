package config

import (
    "context"
    "database/sql"
    "fmt"
    "log"
    "os"
    "time"
    _ "github.com/lib/pq"
    "github.com/joho/godotenv"
    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
    "go.mongodb.org/mongo-driver/mongo/readconcern"
    "go.mongodb.org/mongo-driver/mongo/readpref"
    "go.mongodb.org/mongo-driver/mongo/writeconcern"
)

var (
    DB *sql.DB
    MongoDB *mongo.Database
    MongoClient *mongo.Client
)

const (
    maxRetries = 5
    retryDelay = 5 * time.Second
)

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() error {
    // Try multiple possible locations for .env file
    possiblePaths := []string{
        ".env",                     // Current directory
        "../.env",                  // Parent directory
        "../../.env",               // Two levels up
        os.Getenv("SAFEROUTE_ENV"), // Environment-specified path
    }

    for _, path := range possiblePaths {
        if path == "" {
            continue
        }
        if _, err := os.Stat(path); err == nil {
            log.Printf("Found .env file at: %s", path)
            if err := godotenv.Load(path); err != nil {
                return fmt.Errorf("error loading .env file %s: %v", path, err)
            }
            if os.Getenv("DB_HOST") != "" {
                log.Printf("Successfully loaded database configuration")
            }
            return nil
        }
    }

    // No .env file is fine when the environment is already populated
    if os.Getenv("DB_HOST") != "" || os.Getenv("MONGO_URI") != "" {
        return nil
    }
    return fmt.Errorf("no .env file found and no database configuration set in environment")
}

// InitDBWithRetry attempts to connect to PostgreSQL with retries
func InitDBWithRetry(maxRetries int) error {
    var err error
    for i := 0; i < maxRetries; i++ {
        err = InitDB()
        if err == nil {
            return nil
        }
        log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, maxRetries, err)
        time.Sleep(retryDelay)
    }
    return fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err)
}

func InitDB() error {
    connStr := getPostgresConnString()

    log.Printf("DB Host: %s", getEnvWithDefault("DB_HOST", "localhost"))
    log.Printf("DB Port: %s", getEnvWithDefault("DB_PORT", "5432"))
    log.Printf("DB Name: %s", getEnvWithDefault("DB_NAME", "saferoute"))

    var err error
    DB, err = sql.Open("postgres", connStr)
    if err != nil {
        return fmt.Errorf("error opening PostgreSQL database: %v", err)
    }

    // Set connection pool settings
    DB.SetMaxOpenConns(25)
    DB.SetMaxIdleConns(5)
    DB.SetConnMaxLifetime(5 * time.Minute)

    // Verify connection with timeout
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if err = DB.PingContext(ctx); err != nil {
        return fmt.Errorf("error connecting to PostgreSQL database: %v", err)
    }

    log.Printf("Successfully connected to PostgreSQL database")

    // Feedback rows are flat and relational, so they live in Postgres.
    _, err = DB.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS route_feedback (
            id          BIGSERIAL PRIMARY KEY,
            lat         DOUBLE PRECISION NOT NULL,
            lng         DOUBLE PRECISION NOT NULL,
            type        TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            user_name   TEXT NOT NULL DEFAULT 'Anonymous',
            timestamp   TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`)
    if err != nil {
        return fmt.Errorf("error creating route_feedback table: %v", err)
    }

    _, err = DB.ExecContext(ctx, `
        CREATE INDEX IF NOT EXISTS idx_route_feedback_timestamp
        ON route_feedback (timestamp DESC)`)
    if err != nil {
        return fmt.Errorf("error creating route_feedback index: %v", err)
    }

    log.Printf("Verified route_feedback table exists")
    return nil
}

// ConnectWithRetry attempts to connect to MongoDB with retries
func ConnectWithRetry(maxRetries int) error {
    mongoURI := getMongoURI()

    var err error
    for i := 0; i < maxRetries; i++ {
        err = connectMongo(mongoURI)
        if err == nil {
            return nil
        }
        log.Printf("Failed to connect to MongoDB (attempt %d/%d): %v", i+1, maxRetries, err)
        time.Sleep(retryDelay)
    }
    return fmt.Errorf("failed to connect after %d attempts: %v", maxRetries, err)
}

// connectMongo initializes the MongoDB connection
func connectMongo(uri string) error {
    clientOptions := options.Client().ApplyURI(uri).
        SetMaxPoolSize(100).
        SetMinPoolSize(20).
        SetMaxConnecting(50).
        SetConnectTimeout(10*time.Second).
        SetServerSelectionTimeout(10*time.Second).
        SetSocketTimeout(30*time.Second).
        SetRetryWrites(true).
        SetRetryReads(true).
        SetMaxConnIdleTime(60*time.Minute).
        SetWriteConcern(writeconcern.New(writeconcern.WMajority())).
        SetReadConcern(readconcern.Majority()).
        SetReadPreference(readpref.Primary())

    ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer cancel()

    var err error
    MongoClient, err = mongo.Connect(ctx, clientOptions)
    if err != nil {
        return fmt.Errorf("error connecting to MongoDB: %v", err)
    }

    if err = MongoClient.Ping(ctx, nil); err != nil {
        return fmt.Errorf("error pinging MongoDB: %v", err)
    }

    MongoDB = MongoClient.Database(getMongoDBName())
    log.Printf("Successfully connected to MongoDB database: %s", getMongoDBName())

    if err := createIndexes(ctx); err != nil {
        return fmt.Errorf("error creating indexes: %v", err)
    }

    return nil
}

func createIndexes(ctx context.Context) error {
    // Alert documents carry nested suggestion payloads, hence Mongo.
    alertCollection := MongoDB.Collection("sos_alerts")
    alertIndexes := []mongo.IndexModel{
        {
            Keys: bson.D{
                {Key: "timestamp", Value: -1},
            },
            Options: options.Index().SetName("alert_timestamp_idx"),
        },
        {
            Keys: bson.D{
                {Key: "status", Value: 1},
                {Key: "timestamp", Value: -1},
            },
            Options: options.Index().SetName("alert_status_idx"),
        },
    }

    _, err := alertCollection.Indexes().CreateMany(ctx, alertIndexes)
    if err != nil {
        return fmt.Errorf("error creating alert indexes: %v", err)
    }
    log.Printf("Successfully created alert indexes")

    return nil
}

// Health check functions
func CheckMongoHealth() error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := MongoClient.Ping(ctx, nil); err != nil {
        return fmt.Errorf("MongoDB health check failed: %v", err)
    }
    return nil
}

func CheckPostgresHealth() error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := DB.PingContext(ctx); err != nil {
        return fmt.Errorf("PostgreSQL health check failed: %v", err)
    }
    return nil
}

// Graceful shutdown
func CloseDB() {
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    if DB != nil {
        if err := DB.Close(); err != nil {
            log.Printf("Error closing PostgreSQL connection: %v", err)
        }
    }

    if MongoClient != nil {
        if err := MongoClient.Disconnect(ctx); err != nil {
            log.Printf("Error closing MongoDB connection: %v", err)
        }
    }
}

// Transaction support for PostgreSQL
func WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
    tx, err := DB.BeginTx(ctx, &sql.TxOptions{
        Isolation: sql.LevelSerializable,
    })
    if err != nil {
        return err
    }

    defer func() {
        if p := recover(); p != nil {
            tx.Rollback()
            panic(p)
        }
    }()

    if err := fn(tx); err != nil {
        tx.Rollback()
        return err
    }

    return tx.Commit()
}
