package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Analyzer providers.
const (
	ProviderFlow   = "flow"
	ProviderOpenAI = "openai"
)

// DefaultFlowURL is the local flow server used when ANALYZER_URL is unset.
const DefaultFlowURL = "http://localhost:3400"

// DefaultProjectFile is read when PROJECT_API_KEY is not set.
const DefaultProjectFile = "project.local.yaml"

// Project is the public client configuration of the identity project. These
// values are not secrets; they are served to browsers as is.
type Project struct {
	APIKey            string `yaml:"apiKey" json:"apiKey"`
	AuthDomain        string `yaml:"authDomain" json:"authDomain"`
	ProjectID         string `yaml:"projectId" json:"projectId"`
	StorageBucket     string `yaml:"storageBucket" json:"storageBucket"`
	MessagingSenderID string `yaml:"messagingSenderId" json:"messagingSenderId"`
	AppID             string `yaml:"appId" json:"appId"`
	MeasurementID     string `yaml:"measurementId" json:"measurementId"`
}

// Validate checks the fields every client needs before it can be built.
func (p Project) Validate() error {
	var missing []string
	if p.APIKey == "" {
		missing = append(missing, "apiKey")
	}
	if p.AuthDomain == "" {
		missing = append(missing, "authDomain")
	}
	if p.ProjectID == "" {
		missing = append(missing, "projectId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("project configuration is missing required fields (%s)", strings.Join(missing, ", "))
	}
	return nil
}

// Config holds application configuration
type Config struct {
	// Server
	Env        string
	LogLevel   string
	Port       string
	CORSOrigin string

	// Store
	StoreDriver   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string

	// Session tokens
	JWTSecret        string
	JWTExpirationDur time.Duration

	// AI analysis service
	AnalyzerProvider string
	AnalyzerURL      string
	AnalyzerAPIKey   string
	AnalyzerModel    string
	AnalyzerTimeout  time.Duration

	// Audit events
	KafkaBootstrapServers string
	KafkaAPIKey           string
	KafkaAPISecret        string
	KafkaAuditTopic       string

	Project Project
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:        getEnv("ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", ""),
		Port:       getEnv("PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "finboard"),
		DBPassword:    getEnv("DB_PASSWORD", "finboard"),
		DBName:        getEnv("DB_NAME", "finboard"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "finboard.db"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "finboard"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AnalyzerProvider: strings.ToLower(getEnv("ANALYZER_PROVIDER", ProviderFlow)),
		AnalyzerURL:      getEnv("ANALYZER_URL", ""),
		AnalyzerAPIKey:   getEnv("ANALYZER_API_KEY", ""),
		AnalyzerModel:    getEnv("ANALYZER_MODEL", "gpt-4o-mini"),

		KafkaBootstrapServers: getEnv("KAFKA_BOOTSTRAP_SERVERS", ""),
		KafkaAPIKey:           getEnv("KAFKA_API_KEY", ""),
		KafkaAPISecret:        getEnv("KAFKA_API_SECRET", ""),
		KafkaAuditTopic:       getEnv("KAFKA_AUDIT_TOPIC", "finboard.audit"),
	}

	if config.AnalyzerURL == "" && config.AnalyzerProvider == ProviderFlow {
		config.AnalyzerURL = DefaultFlowURL
	}
	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.AnalyzerTimeout = getDuration("ANALYZER_TIMEOUT", 30*time.Second)

	switch config.StoreDriver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", config.StoreDriver)
	}
	switch config.AnalyzerProvider {
	case ProviderFlow, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unsupported ANALYZER_PROVIDER %q", config.AnalyzerProvider)
	}

	// A missing project config is reported by Project.Validate where it is
	// required; tools such as the migrator run without it.
	project, err := LoadProject(getEnv("PROJECT_CONFIG_FILE", DefaultProjectFile))
	if err != nil {
		log.Printf("Warning: %v\n", err)
	}
	config.Project = project

	return config, nil
}

// LoadProject reads the public project configuration from PROJECT_*
// variables. When PROJECT_API_KEY is unset it warns and falls back to the
// local YAML file at path.
func LoadProject(path string) (Project, error) {
	project := Project{
		APIKey:            os.Getenv("PROJECT_API_KEY"),
		AuthDomain:        os.Getenv("PROJECT_AUTH_DOMAIN"),
		ProjectID:         os.Getenv("PROJECT_ID"),
		StorageBucket:     os.Getenv("PROJECT_STORAGE_BUCKET"),
		MessagingSenderID: os.Getenv("PROJECT_MESSAGING_SENDER_ID"),
		AppID:             os.Getenv("PROJECT_APP_ID"),
		MeasurementID:     os.Getenv("PROJECT_MEASUREMENT_ID"),
	}
	if project.APIKey != "" {
		return project, nil
	}

	log.Printf("Warning: project config not found in environment variables, falling back to %s\n", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to read project config file: %w", err)
	}
	var local Project
	if err := yaml.Unmarshal(data, &local); err != nil {
		return Project{}, fmt.Errorf("failed to parse project config file: %w", err)
	}
	return local, nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MigrationURL returns the postgres:// URL golang-migrate expects.
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
