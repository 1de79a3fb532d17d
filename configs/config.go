package config

import (
	"os"
)

// PaymentConfig holds credentials for the hosted-payment provider.
type PaymentConfig struct {
	APIKey    string
	BaseURL   string
	PublicURL string // base URL of this deployment, used for success/cancel callbacks
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
}

type SMSConfig struct {
	Username string
	APIKey   string
	SMSURL   string
	SenderID string
}

func LoadPaymentConfig() PaymentConfig {
	return PaymentConfig{
		APIKey:    os.Getenv("PAYMENT_API_KEY"),
		BaseURL:   getEnvOrDefault("PAYMENT_BASE_URL", "https://api.sandbox.hostedpay.dev/v1"),
		PublicURL: getEnvOrDefault("PUBLIC_URL", "http://localhost:8080"),
	}
}

func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		SenderEmail:        os.Getenv("AWS_SENDER_ADDRESS"),
	}
}

func LoadSMSConfig() SMSConfig {
	return SMSConfig{
		Username: os.Getenv("AT_USERNAME"),
		APIKey:   os.Getenv("AT_API_KEY"),
		SMSURL:   getEnvOrDefault("AT_SMS_URL", "https://api.sandbox.africastalking.com/version1/messaging"),
		SenderID: getEnvOrDefault("AT_SENDER_ID", "MINISHOP"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
