package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	JWTSecret        string
	PostgreSQLConfig PostgreSQLConfig
	MongoDBConfig    MongoDBConfig
	KafkaConfig      KafkaConfig
	MidtransConfig   MidtransConfig
	CloudinaryConfig CloudinaryConfig
	SMTPConfig       SMTPConfig
	TracingConfig    TracingConfig
	StalePaymentAge  int64
}

type PostgreSQLConfig struct {
	DBHost         string
	DBPort         string
	DBName         string
	DBUsername     string
	DBPassword     string
	MigrationsPath string
}

type MongoDBConfig struct {
	URI    string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type MidtransConfig struct {
	ServerKey string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	brokerPartition, _ := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	stalePaymentAge, err := strconv.ParseInt(os.Getenv("STALE_PAYMENT_AGE_SECONDS"), 10, 64)
	if err != nil || stalePaymentAge <= 0 {
		stalePaymentAge = 86400
	}

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:         os.Getenv("DB_HOST"),
			DBName:         os.Getenv("DB_NAME"),
			DBPort:         os.Getenv("DB_PORT"),
			DBUsername:     os.Getenv("DB_USERNAME"),
			DBPassword:     os.Getenv("DB_PASSWORD"),
			MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		},
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: os.Getenv("MONGODB_NAME"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     os.Getenv("BROKER_TOPIC"),
			BrokerPartition: brokerPartition,
		},
		MidtransConfig: MidtransConfig{
			ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		},
		CloudinaryConfig: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		StalePaymentAge: stalePaymentAge,
	}

	return &conf
}
