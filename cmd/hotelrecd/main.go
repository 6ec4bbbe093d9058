// hotelrecd 是酒店推荐服务进程：加载目录、组装引擎、对外提供 HTTP API。
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/hotelrec/catalog"
	appconfig "github.com/rushteam/hotelrec/config"
	"github.com/rushteam/hotelrec/engine"
	"github.com/rushteam/hotelrec/feast"
	"github.com/rushteam/hotelrec/feature"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/recall"
	"github.com/rushteam/hotelrec/server"
	"github.com/rushteam/hotelrec/similarity"
	"github.com/rushteam/hotelrec/stats"
	"github.com/rushteam/hotelrec/store"
)

// appConfig 是进程级配置（YAML）。
type appConfig struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`

	Redis struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	Engine struct {
		Metric     string `yaml:"metric"`
		Neighbors  int    `yaml:"neighbors"`
		MinOverlap int    `yaml:"min_overlap"`
	} `yaml:"engine"`

	// Feast 在线特征注入（可选）：配置后把特征服务的酒店特征合入候选。
	Feast struct {
		Host      string   `yaml:"host"`
		Port      int      `yaml:"port"`
		Project   string   `yaml:"project"`
		Features  []string `yaml:"features"`
		EntityKey string   `yaml:"entity_key"`
	} `yaml:"feast"`

	// Pipeline 指向附加节点的 pipeline YAML（可选，规则过滤/多样性等）。
	Pipeline string `yaml:"pipeline"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func loadAppConfig(path string) (*appConfig, error) {
	cfg := &appConfig{}
	cfg.Server.Addr = ":8080"
	cfg.Data.Dir = "data"

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	return cfg, nil
}

// applyEnv 允许环境变量覆盖部署相关字段，容器里改端口不用改配置文件。
func applyEnv(cfg *appConfig) {
	if v := os.Getenv("HOTELREC_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HOTELREC_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("HOTELREC_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("HOTELREC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func main() {
	configPath := flag.String("config", "", "path to config yaml")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := loadAppConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	applyEnv(cfg)
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil && cfg.Log.Level != "" {
		logger = logger.Level(level)
	}

	// 数据加载失败对启动是致命的，不重试：对固定的损坏文件重试不会改变结果
	cat, err := catalog.Load(cfg.Data.Dir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("load catalog")
	}
	hotels, users, ratings := cat.Counts()
	logger.Info().
		Int("hotels", hotels).
		Int("users", users).
		Int("ratings", ratings).
		Msg("catalog loaded")

	metric, err := similarity.ByName(cfg.Engine.Metric)
	if err != nil {
		logger.Fatal().Err(err).Msg("select similarity metric")
	}

	opts := []engine.Option{
		engine.WithMetric(metric),
		engine.WithLogger(logger),
	}
	if cfg.Engine.Neighbors > 0 {
		opts = append(opts, engine.WithNeighbors(cfg.Engine.Neighbors))
	}
	if cfg.Engine.MinOverlap > 0 {
		opts = append(opts, engine.WithMinOverlap(cfg.Engine.MinOverlap))
	}

	// Feast 可选：在线行为特征注入，故障只影响特征、不影响主链路
	if cfg.Feast.Host != "" && len(cfg.Feast.Features) > 0 {
		feastClient, err := feast.NewGrpcClient(cfg.Feast.Host, cfg.Feast.Port, cfg.Feast.Project)
		if err != nil {
			logger.Fatal().Err(err).Str("host", cfg.Feast.Host).Msg("connect feast")
		}
		defer feastClient.Close()
		opts = append(opts, engine.WithExtraNodes(&feature.FeastEnrichNode{
			Client:    feastClient,
			Features:  cfg.Feast.Features,
			EntityKey: cfg.Feast.EntityKey,
		}))
		logger.Info().Strs("features", cfg.Feast.Features).Msg("feast enrichment enabled")
	}

	// 附加节点（规则过滤、多样性等）由 pipeline YAML 声明
	if cfg.Pipeline != "" {
		pcfg, err := pipeline.LoadFromYAML(cfg.Pipeline)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.Pipeline).Msg("load pipeline config")
		}
		if err := appconfig.ValidatePipelineConfig(pcfg); err != nil {
			logger.Fatal().Err(err).Msg("validate pipeline config")
		}
		p, err := pcfg.BuildPipeline(appconfig.DefaultFactory())
		if err != nil {
			logger.Fatal().Err(err).Msg("build pipeline")
		}
		opts = append(opts, engine.WithExtraNodes(p.Nodes...))
		logger.Info().Int("nodes", len(p.Nodes)).Msg("extra pipeline nodes loaded")
	}

	// Redis 可选：多实例共享人气榜；未配置时人气现算
	if cfg.Redis.Addr != "" {
		rs, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		defer rs.Close()

		popular := &recall.PopularRecall{
			Store:   rs,
			Catalog: cat,
			Stats:   stats.NewAggregator(cat),
		}
		if err := popular.Warm(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("warm popularity board")
		} else {
			logger.Info().Msg("popularity board warmed")
		}
	}

	eng := engine.New(cat, opts...)
	srv := server.New(cat, eng, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("stopped")
}
