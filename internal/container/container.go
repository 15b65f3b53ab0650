package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/config"
	filestore "github.com/oksasatya/storefront-api/internal/infrastructure/storage"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/mailer"
)

// app-level container to share constructed components across packages.
// Router wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	deliverer  mailer.Deliverer
	esClient   *elasticsearch.Client
	uploadsDst filestore.Store
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetDeliverer(d mailer.Deliverer) { deliverer = d }
func SetES(c *elasticsearch.Client)   { esClient = c }
func GetES() *elasticsearch.Client    { return esClient }
func SetStore(s filestore.Store)      { uploadsDst = s }
func GetStore() filestore.Store       { return uploadsDst }

// GetDeliverer falls back to a logging deliverer so order emails never
// block checkout when mail is not configured.
func GetDeliverer() mailer.Deliverer {
	if deliverer != nil {
		return deliverer
	}
	return &mailer.DisabledDeliverer{Logger: logger}
}
