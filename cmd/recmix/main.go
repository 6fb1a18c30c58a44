// recmix 批处理入口：读取一次打分请求的快照，跑完
// 内容 → 协同 → 融合 → 多样性采样，把 JSON 结果写到 stdout。
//
// 输入来源（二选一）：
//   - 默认：stdin 或 -input 指定的按节标记文本（USER_PROFILE / WORKS / ...）
//   - -user 指定用户 ID 时：从 Redis 快照装载（需 RECMIX_REDIS_ADDR），
//     画像可再由 Feast 在线特征覆盖（需 RECMIX_FEAST_ENDPOINT）
//
// 日志走 stderr，stdout 只承载结果文档。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/rushteam/recmix"
	"github.com/rushteam/recmix/codec"
	"github.com/rushteam/recmix/config"
	_ "github.com/rushteam/recmix/config/builders"
	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/feast"
	"github.com/rushteam/recmix/pipeline"
	"github.com/rushteam/recmix/rerank"
	"github.com/rushteam/recmix/snapshot"
	"github.com/rushteam/recmix/store"
)

// envConfig 是进程级环境配置（RECMIX_ 前缀）。
type envConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr      string `envconfig:"REDIS_ADDR" default:""`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	SnapshotPrefix string `envconfig:"SNAPSHOT_PREFIX" default:"recmix"`
	FeastEndpoint  string `envconfig:"FEAST_ENDPOINT" default:""`
	FeastPort      int    `envconfig:"FEAST_PORT" default:"6565"`
	FeastProject   string `envconfig:"FEAST_PROJECT" default:""`
	FeastFeatures  string `envconfig:"FEAST_FEATURES" default:""`
	FeastEntityKey string `envconfig:"FEAST_ENTITY_KEY" default:"user_id"`
}

func newLogger(environment, level string) (zerolog.Logger, error) {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse RECMIX_LOG_LEVEL=%q: %w", level, err)
	}

	var writer io.Writer = os.Stderr
	if strings.EqualFold(strings.TrimSpace(environment), "local") {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		Level(parsedLevel).
		With().
		Timestamp().
		Str("service", "recmix").
		Logger()

	return logger, nil
}

func main() {
	var (
		envFile       = flag.String("env", ".env", "path to the .env file (optional)")
		inputPath     = flag.String("input", "", "section-tagged input file (default: stdin)")
		userID        = flag.String("user", "", "load snapshot from redis for this user instead of text input")
		pipelinePath  = flag.String("pipeline", "", "pipeline YAML overriding the standard flow")
		contentWeight = flag.Float64("content-weight", core.DefaultContentWeight, "fusion weight of the content ranking")
		collabWeight  = flag.Float64("collab-weight", core.DefaultCollabWeight, "fusion weight of the collaborative ranking")
		count         = flag.Int("count", -1, "result count (-1: take from PARAMS section)")
		randomFactor  = flag.Float64("random-factor", -1, "random share in [0,1] (-1: take from PARAMS section)")
		pool          = flag.String("pool", "top", "diversity random pool: top (compatible) or tail (fixed)")
		seed          = flag.Int64("seed", 0, "sampler seed (0: fresh entropy per run)")
	)
	flag.Parse()

	// .env 缺失不是错误，显式指定的路径以外静默跳过
	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		fmt.Fprintf(os.Stderr, "load env file %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	var cfg envConfig
	if err := envconfig.Process("recmix", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "process env config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), logger, cfg, runOptions{
		inputPath:     *inputPath,
		userID:        *userID,
		pipelinePath:  *pipelinePath,
		contentWeight: *contentWeight,
		collabWeight:  *collabWeight,
		count:         *count,
		randomFactor:  *randomFactor,
		pool:          *pool,
		seed:          *seed,
	}); err != nil {
		logger.Error().Err(err).Msg("scoring run failed")
		os.Exit(1)
	}
}

type runOptions struct {
	inputPath     string
	userID        string
	pipelinePath  string
	contentWeight float64
	collabWeight  float64
	count         int
	randomFactor  float64
	pool          string
	seed          int64
}

func run(ctx context.Context, logger zerolog.Logger, cfg envConfig, opts runOptions) error {
	var (
		profile *core.UserProfile
		snap    *core.Snapshot
		metrics core.MetricsConfig
		count   = opts.count
		rf      = opts.randomFactor
	)

	if opts.userID != "" {
		loaded, loadedSnap, err := loadFromStore(ctx, logger, cfg, opts.userID)
		if err != nil {
			return err
		}
		profile, snap = loaded, loadedSnap
		metrics = core.MetricsConfig{WeightTags: 1.0}
		if count < 0 {
			count = (&core.DefaultScoringConfig{}).DefaultCount()
		}
		if rf < 0 {
			rf = (&core.DefaultScoringConfig{}).DefaultRandomFactor()
		}
	} else {
		req, err := decodeInput(opts.inputPath)
		if err != nil {
			return err
		}
		profile = &req.Profile
		snap = req.Snapshot()
		metrics = req.Metrics
		if count < 0 {
			count = req.Params.NumRecommendations
		}
		if rf < 0 {
			rf = req.Params.RandomFactor
		}
	}

	logger.Info().
		Int("works", len(snap.Works)).
		Int("similar_users", len(snap.SimilarUsers)).
		Int("count", count).
		Float64("random_factor", rf).
		Msg("scoring snapshot loaded")

	poolPolicy := rerank.PoolTop
	if opts.pool == "tail" {
		poolPolicy = rerank.PoolTail
	}

	var (
		items []*core.Item
		err   error
	)
	if opts.pipelinePath != "" {
		items, err = runConfiguredPipeline(ctx, opts.pipelinePath, profile, snap, count, rf, opts.seed)
	} else {
		items, err = recmix.Recommend(ctx, profile, snap, recmix.Options{
			ContentWeight: opts.contentWeight,
			CollabWeight:  opts.collabWeight,
			Metrics:       metrics,
			Count:         count,
			RandomFactor:  rf,
			Pool:          poolPolicy,
			Seed:          opts.seed,
		})
	}
	if err != nil {
		return err
	}

	logger.Info().Int("recommendations", len(items)).Msg("scoring finished")
	return codec.Write(os.Stdout, items)
}

func decodeInput(path string) (*codec.Request, error) {
	in := io.Reader(os.Stdin)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	return codec.Decode(in)
}

func loadFromStore(ctx context.Context, logger zerolog.Logger, cfg envConfig, userID string) (*core.UserProfile, *core.Snapshot, error) {
	if cfg.RedisAddr == "" {
		return nil, nil, fmt.Errorf("-user requires RECMIX_REDIS_ADDR")
	}
	rs, err := store.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	defer rs.Close()

	loader := &snapshot.StoreLoader{Store: rs, KeyPrefix: cfg.SnapshotPrefix}
	profile, snap, err := loader.Load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	// Feast 在线画像优先于快照画像
	if cfg.FeastEndpoint != "" && cfg.FeastFeatures != "" {
		client, err := feast.NewGrpcClient(cfg.FeastEndpoint, cfg.FeastPort, cfg.FeastProject)
		if err != nil {
			return nil, nil, err
		}
		defer client.Close()

		source := &feast.ProfileSource{
			Client:    client,
			Features:  strings.Split(cfg.FeastFeatures, ","),
			EntityKey: cfg.FeastEntityKey,
			Project:   cfg.FeastProject,
		}
		fetched, err := source.FetchProfile(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		if len(fetched.Tags) > 0 {
			logger.Debug().Int("tags", len(fetched.Tags)).Msg("profile loaded from feast")
			profile = fetched
		}
	}

	return profile, snap, nil
}

func runConfiguredPipeline(ctx context.Context, path string, profile *core.UserProfile, snap *core.Snapshot, count int, rf float64, seed int64) ([]*core.Item, error) {
	pcfg, err := pipeline.LoadFromYAML(path)
	if err != nil {
		return nil, err
	}
	if err := config.ValidatePipelineConfig(pcfg); err != nil {
		return nil, err
	}
	p, err := pcfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID:   profile.UserID,
		User:     profile,
		Snapshot: snap,
		Params: map[string]any{
			"count":         int64(count),
			"random_factor": rf,
			"seed":          seed,
		},
	}
	return p.Run(ctx, rctx, nil)
}
