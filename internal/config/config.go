package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Email    string `yaml:"email"`
	} `yaml:"admin"`
	Site struct {
		Name    string `yaml:"name"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"site"`
	SMTP struct {
		Host       string `yaml:"host"`
		Port       int    `yaml:"port"`
		Username   string `yaml:"username"`
		Password   string `yaml:"password"`
		From       string `yaml:"from"`
		FromName   string `yaml:"from_name"`
		AdminEmail string `yaml:"admin_email"`
	} `yaml:"smtp"`
	Stripe struct {
		SecretKey string `yaml:"secret_key"`
	} `yaml:"stripe"`
	S3 struct {
		Region        string `yaml:"region"`
		Bucket        string `yaml:"bucket"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"s3"`
	Firebase struct {
		CredentialsFile string   `yaml:"credentials_file"`
		AdminTokens     []string `yaml:"admin_tokens"`
	} `yaml:"firebase"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}
	return cfg
}
