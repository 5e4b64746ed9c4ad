package config

import (
	"os"
	"strconv"

	"github.com/gestiloc/inventory-service/internal/constants"
	"github.com/gestiloc/inventory-service/internal/utils"
)

const AppName = "inventory-service"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	Env     string

	DBUrl     string
	JWTSecret string

	// Optional: mail is disabled when the API key is empty.
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string

	DraftRetentionDays int
}

// LoadConfig reads the runtime environment; missing required vars are
// fatal at startup.
func LoadConfig() *Config {
	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		utils.Logger.Fatal("JWT_SECRET env var is missing")
	}

	sgAPIKey := os.Getenv("SENDGRID_API_KEY")
	sgFromName := os.Getenv("SENDGRID_FROM_NAME")
	if sgFromName == "" {
		sgFromName = "Gestiloc"
	}
	sgFromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if sgAPIKey != "" && sgFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL is required when SENDGRID_API_KEY is set")
	}

	retentionDays := constants.DefaultDraftRetentionDays
	if raw := os.Getenv("DRAFT_RETENTION_DAYS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.Logger.Fatalf("Invalid DRAFT_RETENTION_DAYS %q", raw)
		}
		retentionDays = parsed
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)

	return &Config{
		AppName:            AppName,
		AppPort:            appPort,
		AppUrl:             appURL,
		Env:                env,
		DBUrl:              dbURL,
		JWTSecret:          jwtSecret,
		SendGridAPIKey:     sgAPIKey,
		SendGridFromName:   sgFromName,
		SendGridFromEmail:  sgFromEmail,
		DraftRetentionDays: retentionDays,
	}
}
