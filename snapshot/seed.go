package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/recmix/core"
)

// Seed 把一次打分请求的完整输入物化进 KeyValueStore，
// 与 StoreLoader 的 key 约定对称。上游快照作业与测试共用。
func Seed(ctx context.Context, kv core.KeyValueStore, keyPrefix string, profile *core.UserProfile, snap *core.Snapshot) error {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if profile == nil || snap == nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "snapshot: profile and snapshot are required")
	}

	// 画像
	blob, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", profile.UserID, err)
	}
	if err := kv.Set(ctx, keyPrefix+":profile:"+profile.UserID, blob); err != nil {
		return fmt.Errorf("seed profile %s: %w", profile.UserID, err)
	}

	// 目录：ID 列表 + 作品本体批量写入
	ids := make([]string, len(snap.Works))
	kvs := make(map[string][]byte, len(snap.Works))
	for i, w := range snap.Works {
		ids[i] = w.ID
		data, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("encode work %s: %w", w.ID, err)
		}
		kvs[keyPrefix+":work:"+w.ID] = data
	}
	idsBlob, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode work ids: %w", err)
	}
	if err := kv.Set(ctx, keyPrefix+":work_ids", idsBlob); err != nil {
		return fmt.Errorf("seed work ids: %w", err)
	}
	if len(kvs) > 0 {
		if err := kv.BatchSet(ctx, kvs); err != nil {
			return fmt.Errorf("seed works: %w", err)
		}
	}

	// 相似用户：ZSet + 喜欢列表
	zkey := keyPrefix + ":similar:" + profile.UserID
	for _, u := range snap.SimilarUsers {
		if err := kv.ZAdd(ctx, zkey, u.Similarity, u.ID); err != nil {
			return fmt.Errorf("seed similar user %s: %w", u.ID, err)
		}
		liked, err := json.Marshal(u.LikedWorks)
		if err != nil {
			return fmt.Errorf("encode liked works %s: %w", u.ID, err)
		}
		if err := kv.Set(ctx, keyPrefix+":liked:"+u.ID, liked); err != nil {
			return fmt.Errorf("seed liked works %s: %w", u.ID, err)
		}
	}

	return nil
}
