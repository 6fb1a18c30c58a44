// Package snapshot 负责把一次打分所需的全量输入（画像/目录/相似用户）
// 从 KeyValueStore 中装载为内存快照，或反向物化进存储。
//
// key 约定（prefix 默认 "recmix"）：
//   - <prefix>:profile:<userID>  用户画像 JSON
//   - <prefix>:work_ids          目录作品 ID 列表 JSON
//   - <prefix>:work:<workID>     单个作品 JSON
//   - <prefix>:similar:<userID>  相似用户 ZSet（member = 用户 ID，score = 相似度）
//   - <prefix>:liked:<simID>     某相似用户喜欢的作品 ID 列表 JSON
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/recmix/core"
)

const defaultKeyPrefix = "recmix"

// StoreLoader 从 KeyValueStore 装载打分快照。
type StoreLoader struct {
	Store core.KeyValueStore

	// KeyPrefix 为空时使用 "recmix"
	KeyPrefix string
}

func (l *StoreLoader) prefix() string {
	if l.KeyPrefix == "" {
		return defaultKeyPrefix
	}
	return l.KeyPrefix
}

// LoadProfile 装载用户画像。
func (l *StoreLoader) LoadProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	data, err := l.Store.Get(ctx, l.prefix()+":profile:"+userID)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", userID, err)
	}
	var profile core.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return &profile, nil
}

// LoadWorks 装载候选目录：先取 ID 列表，再批量取作品本体。
// 目录顺序与 ID 列表一致，缺失的作品条目按存储缺失处理并报错。
func (l *StoreLoader) LoadWorks(ctx context.Context) ([]core.Work, error) {
	data, err := l.Store.Get(ctx, l.prefix()+":work_ids")
	if err != nil {
		return nil, fmt.Errorf("load work ids: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode work ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = l.prefix() + ":work:" + id
	}
	blobs, err := l.Store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("batch get works: %w", err)
	}

	works := make([]core.Work, 0, len(ids))
	for i, id := range ids {
		blob, ok := blobs[keys[i]]
		if !ok {
			return nil, fmt.Errorf("load work %s: %w", id, core.ErrStoreNotFound)
		}
		var w core.Work
		if err := json.Unmarshal(blob, &w); err != nil {
			return nil, fmt.Errorf("decode work %s: %w", id, err)
		}
		works = append(works, w)
	}
	return works, nil
}

// LoadSimilarUsers 装载相似用户：ZSet 按相似度降序取回成员，
// 再逐个取相似度与喜欢列表。
func (l *StoreLoader) LoadSimilarUsers(ctx context.Context, userID string) ([]core.SimilarUser, error) {
	zkey := l.prefix() + ":similar:" + userID
	members, err := l.Store.ZRange(ctx, zkey, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("load similar users %s: %w", userID, err)
	}

	users := make([]core.SimilarUser, 0, len(members))
	for _, member := range members {
		sim, err := l.Store.ZScore(ctx, zkey, member)
		if err != nil {
			return nil, fmt.Errorf("load similarity %s/%s: %w", userID, member, err)
		}

		var liked []string
		data, err := l.Store.Get(ctx, l.prefix()+":liked:"+member)
		if err != nil {
			if !core.IsStoreNotFound(err) {
				return nil, fmt.Errorf("load liked works %s: %w", member, err)
			}
		} else if err := json.Unmarshal(data, &liked); err != nil {
			return nil, fmt.Errorf("decode liked works %s: %w", member, err)
		}

		users = append(users, core.SimilarUser{
			ID:         member,
			Similarity: sim,
			LikedWorks: liked,
		})
	}
	return users, nil
}

// Load 装载一次打分请求的完整输入。
func (l *StoreLoader) Load(ctx context.Context, userID string) (*core.UserProfile, *core.Snapshot, error) {
	profile, err := l.LoadProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	works, err := l.LoadWorks(ctx)
	if err != nil {
		return nil, nil, err
	}
	users, err := l.LoadSimilarUsers(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return profile, &core.Snapshot{Works: works, SimilarUsers: users}, nil
}
