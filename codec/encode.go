package codec

import (
	"encoding/json"
	"io"

	"github.com/rushteam/recmix/core"
)

// Recommendation 是输出的单条推荐：作品 ID + 分数。
type Recommendation struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Document 是输出文档：保序的推荐数组。
type Document struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// NewDocument 把最终排序结果转换为输出文档，顺序保持不变。
func NewDocument(items []*core.Item) *Document {
	recs := make([]Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		recs = append(recs, Recommendation{ID: it.ID, Score: it.Score})
	}
	return &Document{Recommendations: recs}
}

// Write 把最终结果以两空格缩进的 JSON 写入 w。
func Write(w io.Writer, items []*core.Item) error {
	data, err := json.MarshalIndent(NewDocument(items), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
