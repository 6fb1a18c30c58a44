package builders

import (
	"fmt"

	"github.com/rushteam/recmix/config"
	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/filter"
	"github.com/rushteam/recmix/pipeline"
	"github.com/rushteam/recmix/pkg/conv"
	"github.com/rushteam/recmix/rank"
	"github.com/rushteam/recmix/rerank"
)

func init() {
	config.Register("rank.fuse", BuildFuseNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("filter", BuildFilterNode)
}

// BuildFuseNode 构建标准双路融合 Node。
//
// 配置示例：
//
//	type: rank.fuse
//	config:
//	  content_weight: 0.5
//	  collab_weight: 0.5
//	  metrics:
//	    use_metrics: true
//	    weight_views: 0.3
//	    weight_time: 0.2
//	    weight_tags: 1.0
func BuildFuseNode(cfg map[string]interface{}) (pipeline.Node, error) {
	var metrics core.MetricsConfig
	if m, ok := cfg["metrics"].(map[string]interface{}); ok {
		metrics.UseMetrics = conv.ConfigGet(m, "use_metrics", false)
		metrics.WeightViews = conv.ConfigGetFloat64(m, "weight_views", 0)
		metrics.WeightTime = conv.ConfigGetFloat64(m, "weight_time", 0)
		metrics.WeightTags = conv.ConfigGetFloat64(m, "weight_tags", 1.0)
	} else {
		metrics.WeightTags = 1.0
	}

	contentWeight := conv.ConfigGetFloat64(cfg, "content_weight", core.DefaultContentWeight)
	collabWeight := conv.ConfigGetFloat64(cfg, "collab_weight", core.DefaultCollabWeight)

	return rank.NewFuseNode(
		&rank.ContentSource{Config: metrics},
		&rank.CollabSource{},
		contentWeight,
		collabWeight,
	), nil
}

// BuildDiversityNode 构建多样性采样 Node。
func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	pool := rerank.PoolTop
	switch conv.ConfigGet(cfg, "pool", "") {
	case "tail":
		pool = rerank.PoolTail
	case "", "top":
	default:
		return nil, fmt.Errorf("unknown pool %q (supported: top, tail)", conv.ConfigGet(cfg, "pool", ""))
	}
	return &rerank.DiversityNode{
		Count:        int(conv.ConfigGetInt64(cfg, "count", 0)),
		RandomFactor: conv.ConfigGetFloat64(cfg, "random_factor", 0),
		Pool:         pool,
		Seed:         conv.ConfigGetInt64(cfg, "seed", 0),
	}, nil
}

// BuildTopNNode 构建 Top-N 截断 Node。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

// BuildFilterNode 构建过滤 Node。
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "seen":
			ids := conv.SliceAnyToString(filterMap["work_ids"])
			if ids == nil {
				ids = []string{}
			}
			keyPrefix := conv.ConfigGet(filterMap, "key_prefix", "")
			filters = append(filters, filter.NewSeenFilter(ids, nil, keyPrefix))
		case "expr":
			filters = append(filters, &filter.ExprFilter{Expr: conv.ConfigGet(filterMap, "expr", "")})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}
