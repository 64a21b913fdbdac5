package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"edintake"`
	DBPath     string `env:"DBPath" envDefault:"datas/applications.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	// Seeded super admin account. The password is only used when the account
	// does not exist yet.
	SuperAdminEmail    string `env:"SUPER_ADMIN_EMAIL" envDefault:"admin@edintake.local"`
	SuperAdminPassword string `env:"SUPER_ADMIN_PASSWORD" envDefault:""`

	// Google Sheets mirror service account. Left unconfigured, mirroring is
	// disabled and submissions proceed without it.
	SheetsProjectID     string `env:"PROJECT_ID"`
	SheetsPrivateKeyID  string `env:"PRIVATE_KEY_ID"`
	SheetsPrivateKey    string `env:"PRIVATE_KEY"`
	SheetsClientEmail   string `env:"CLIENT_EMAIL"`
	SheetsClientID      string `env:"CLIENT_ID"`
	SheetsClientCertURL string `env:"CLIENT_CERT_URL"`
	SheetID             string `env:"GOOGLE_SHEET_ID"`
	SheetTimeoutSeconds int    `env:"SHEET_TIMEOUT_SECONDS" envDefault:"15"`

	// CSV export snapshot archive
	StorageType     string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"datas/exports"`

	StorageS3Region          string `env:"STORAGE_S3_REGION"`
	StorageS3Bucket          string `env:"STORAGE_S3_BUCKET"`
	StorageS3Prefix          string `env:"STORAGE_S3_PREFIX"`
	StorageS3Endpoint        string `env:"STORAGE_S3_ENDPOINT"`
	StorageS3AccessKeyID     string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	StorageS3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
	StorageS3SessionToken    string `env:"STORAGE_S3_SESSION_TOKEN"`
	StorageS3ForcePathStyle  bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	JWTSecret            string `env:"SECRET_KEY" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"edintake"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
