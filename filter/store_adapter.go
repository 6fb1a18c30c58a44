package filter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/recmix/core"
)

// StoreAdapter 把 core.Store 适配为 SeenStore：
// 已曝光列表以 JSON 字符串数组存储在单个 key 下。
type StoreAdapter struct {
	Store core.Store
}

// NewStoreAdapter 创建一个存储适配器。
func NewStoreAdapter(store core.Store) *StoreAdapter {
	return &StoreAdapter{Store: store}
}

func (a *StoreAdapter) GetSeen(ctx context.Context, key string) ([]string, error) {
	if a.Store == nil {
		return nil, nil
	}
	data, err := a.Store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode seen list %s: %w", key, err)
	}
	return ids, nil
}

var _ SeenStore = (*StoreAdapter)(nil)
