package filter

import (
	"context"

	"github.com/rushteam/recmix/core"
)

// SeenStore 是已曝光作品列表的存储接口。
type SeenStore interface {
	// GetSeen 获取某个 key 下已曝光的作品 ID 列表
	GetSeen(ctx context.Context, key string) ([]string, error)
}

// SeenFilter 过滤掉用户已经看过的作品。
// 作品 ID 可以来自内存列表，也可以来自存储（两者并集生效）。
type SeenFilter struct {
	// WorkIDs 是内存中的已曝光作品 ID 列表
	WorkIDs []string

	// Store 用于从存储中读取已曝光列表（可选）
	Store SeenStore

	// KeyPrefix 是 Store 中的 key 前缀，实际 key 为 KeyPrefix + rctx.UserID
	KeyPrefix string
}

// NewSeenFilter 创建一个已曝光过滤器。
func NewSeenFilter(workIDs []string, store SeenStore, keyPrefix string) *SeenFilter {
	return &SeenFilter{
		WorkIDs:   workIDs,
		Store:     store,
		KeyPrefix: keyPrefix,
	}
}

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.WorkIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && rctx != nil && rctx.UserID != "" {
		seen, err := f.Store.GetSeen(ctx, f.KeyPrefix+rctx.UserID)
		if err == nil {
			for _, id := range seen {
				if item.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}

var _ Filter = (*SeenFilter)(nil)
