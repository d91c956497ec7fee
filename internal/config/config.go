package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HTTPPort string

	GatewayURL       string
	GatewaySecretKey string

	EmailJS EmailJSConfig

	// Contact values substituted into gateway payloads in place of the
	// customer's real email and phone.
	MaskEmail string
	MaskPhone string

	ViaCEPBaseURL string

	RedisAddr     string
	RedisPassword string

	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
}

type EmailJSConfig struct {
	APIURL     string
	ServiceID  string
	TemplateID string
	UserID     string
	PrivateKey string
}

// Load reads an optional .env file, then environment variables with defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:         getEnv("PORT", "3000"),
		GatewayURL:       getEnv("GATEWAY_URL", "https://apiv2.payevo.com.br/functions/v1/transactions"),
		GatewaySecretKey: getEnv("GATEWAY_SECRET_KEY", ""),
		EmailJS: EmailJSConfig{
			APIURL:     getEnv("EMAILJS_API_URL", "https://api.emailjs.com/api/v1.0/email/send"),
			ServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
			TemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
			UserID:     getEnv("EMAILJS_USER_ID", ""),
			PrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		},
		MaskEmail:          getEnv("MASK_EMAIL", "contato@padrao.com"),
		MaskPhone:          getEnv("MASK_PHONE", "11999999999"),
		ViaCEPBaseURL:      getEnv("VIACEP_BASE_URL", "https://viacep.com.br"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
	}
}

// LogStartup reports which secrets were found, without printing their values.
func (c *Config) LogStartup(logger *zap.Logger) {
	logger.Info("configuration check",
		zap.Bool("gateway_key_loaded", c.GatewaySecretKey != ""),
		zap.Bool("emailjs_service_loaded", c.EmailJS.ServiceID != ""),
		zap.Bool("emailjs_template_loaded", c.EmailJS.TemplateID != ""),
		zap.Bool("emailjs_user_loaded", c.EmailJS.UserID != ""),
		zap.Bool("emailjs_private_key_loaded", c.EmailJS.PrivateKey != ""),
	)
	if c.GatewaySecretKey == "" {
		logger.Warn("gateway secret key is missing, payment forwarding will be rejected upstream")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
