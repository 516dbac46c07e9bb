package config

type StorageConfig struct {
	Provider string
	Local    *LocalStorageConfig
	AWS      *AWSStorageConfig
	GCP      *GCPStorageConfig
}

type LocalStorageConfig struct {
	BasePath string
	BaseURL  string
}

type AWSStorageConfig struct {
	Region    string
	Bucket    string
	CDNDomain string
}

type GCPStorageConfig struct {
	Bucket          string
	CredentialsFile string
	CDNDomain       string
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider: getEnv("STORAGE_PROVIDER", "local"),
		Local: &LocalStorageConfig{
			BasePath: getEnv("STORAGE_LOCAL_PATH", "./reports"),
			BaseURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:5001/reports"),
		},
		AWS: &AWSStorageConfig{
			Region:    getEnv("AWS_S3_REGION", "ap-south-1"),
			Bucket:    getEnv("AWS_S3_BUCKET", ""),
			CDNDomain: getEnv("AWS_CLOUDFRONT_DOMAIN", ""),
		},
		GCP: &GCPStorageConfig{
			Bucket:          getEnv("GCP_STORAGE_BUCKET", ""),
			CredentialsFile: getEnv("GCP_CREDENTIALS_FILE", ""),
			CDNDomain:       getEnv("GCP_CDN_DOMAIN", ""),
		},
	}
}
