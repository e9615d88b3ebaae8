package config

type PaymentConfig struct {
	StripeSecretKey string `yaml:"stripe_secret_key"`
	Currency        string `yaml:"currency"`
}

type PushConfig struct {
	FCMCredentialsFile string `yaml:"fcm_credentials_file"`
	Enabled            bool   `yaml:"enabled"`
}

type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	CDNDomain       string `yaml:"cdn_domain"`
	Enabled         bool   `yaml:"enabled"`
}

type OAuthConfig struct {
	GoogleClientID     string `yaml:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret"`
	GoogleRedirectURL  string `yaml:"google_redirect_url"`
}

type MapsConfig struct {
	GoogleAPIKey string `yaml:"google_api_key"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		Currency:        getEnv("PAYMENT_CURRENCY", "usd"),
	}
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", ""),
		Enabled:            getEnvAsBool("PUSH_ENABLED", false),
	}
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Bucket:          getEnv("STORAGE_BUCKET", ""),
		CredentialsFile: getEnv("STORAGE_CREDENTIALS_FILE", ""),
		CDNDomain:       getEnv("STORAGE_CDN_DOMAIN", ""),
		Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
	}
}

func loadOAuthConfig() *OAuthConfig {
	return &OAuthConfig{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
	}
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		GoogleAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
	}
}
