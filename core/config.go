package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// AdminIdentity is the single admissions-admin credential pair. It is not
	// a managed entity; it comes from configuration and is injected wherever
	// admin authentication happens.
	AdminIdentity struct {
		Email    string
		Password string
		Name     string
	}

	ServerConfig struct {
		Host            string
		Addr            string
		ShutdownTimeout time.Duration
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		WorkDir  string
		Build    string

		// DataFile is the flat JSON file holding the whole student collection.
		DataFile string

		DefaultFromEmail mail.Address
		FrontendBaseURL  string
		SendgridApiKey   string
		RollbarToken     string

		Server ServerConfig
		Admin  AdminIdentity
	}
)

// Authenticate reports whether the given credentials match this identity.
func (a AdminIdentity) Authenticate(email, password string) bool {
	return email == a.Email && password == a.Password
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and environment variables (prefixed with the upper-cased env name).
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "TIH Admissions")
	conf.SetDefault("dataFile", filepath.Join("data", "students.json"))
	conf.SetDefault("defaultFromEmail", "admissions@tolbertinnovationhub.org")
	conf.SetDefault("frontendBaseURL", "http://localhost:4173")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":4173")
	conf.SetDefault("shutdownTimeout", 20*time.Second)
	conf.SetDefault("adminEmail", "admin@tolbertinnovationhub.org")
	conf.SetDefault("adminPassword", "Admin@12345")
	conf.SetDefault("adminName", "TIH Admissions Admin")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:    conf.GetBool("debug"),
		TestMode: env == "TEST",
		Env:      env,
		AppName:  conf.GetString("appName"),
		WorkDir:  wd,
		Build:    conf.GetString("build"),
		DataFile: conf.GetString("dataFile"),
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		FrontendBaseURL: conf.GetString("frontendBaseURL"),
		SendgridApiKey:  conf.GetString("sendgridApiKey"),
		RollbarToken:    conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Addr:            conf.GetString("serverAddr"),
			ShutdownTimeout: conf.GetDuration("shutdownTimeout"),
		},
		Admin: AdminIdentity{
			Email:    conf.GetString("adminEmail"),
			Password: conf.GetString("adminPassword"),
			Name:     conf.GetString("adminName"),
		},
	}
}
