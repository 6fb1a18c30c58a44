// Package codec 实现打分请求的文本输入与 JSON 输出适配。
//
// 输入是按节标记的面向行文本，节头独占一行（两侧空白忽略），
// 节头之前的内容一律跳过；节体是空白分隔的 token 流：
//
//	USER_PROFILE
//	<标签数>
//	每个标签：<名称> <权重>
//
//	WORKS
//	<作品数>
//	每个作品：<ID> <标签数> <标签...> <浏览数> <交互时长>
//
//	SIMILAR_USERS
//	<用户数>
//	每个用户：<ID> <相似度> <喜欢数> <作品 ID...>
//
//	PARAMS
//	<推荐条数> <随机比例>
//
//	METRICS_CONFIG
//	<use_metrics(0/1)> <weight_views> <weight_time> <weight_tags>
//
// 格式错误快速失败，错误信息标明节名与元素位置；不向核心传递半填充结构。
package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rushteam/recmix/core"
)

// 节头常量
const (
	SectionUserProfile   = "USER_PROFILE"
	SectionWorks         = "WORKS"
	SectionSimilarUsers  = "SIMILAR_USERS"
	SectionParams        = "PARAMS"
	SectionMetricsConfig = "METRICS_CONFIG"
)

// Params 是 PARAMS 节的标量参数。
type Params struct {
	NumRecommendations int
	RandomFactor       float64
}

// Request 是一次打分请求的完整输入。
type Request struct {
	Profile      core.UserProfile
	Works        []core.Work
	SimilarUsers []core.SimilarUser
	Params       Params
	Metrics      core.MetricsConfig
}

// Snapshot 把请求中的目录与相似用户打包为核心快照。
func (r *Request) Snapshot() *core.Snapshot {
	return &core.Snapshot{Works: r.Works, SimilarUsers: r.SimilarUsers}
}

// Decode 从 r 解析一次完整的打分请求。节必须按上述顺序出现。
func Decode(r io.Reader) (*Request, error) {
	d := newDecoder(r)
	req := &Request{}

	if err := d.seek(SectionUserProfile); err != nil {
		return nil, err
	}
	numTags, err := d.readInt("tag count")
	if err != nil {
		return nil, err
	}
	req.Profile.Tags = make([]core.Tag, 0, numTags)
	for i := 0; i < numTags; i++ {
		tag, err := d.readTag(fmt.Sprintf("tag[%d]", i))
		if err != nil {
			return nil, err
		}
		req.Profile.Tags = append(req.Profile.Tags, tag)
	}

	if err := d.seek(SectionWorks); err != nil {
		return nil, err
	}
	numWorks, err := d.readInt("work count")
	if err != nil {
		return nil, err
	}
	req.Works = make([]core.Work, 0, numWorks)
	for i := 0; i < numWorks; i++ {
		elem := fmt.Sprintf("work[%d]", i)
		var w core.Work
		if w.ID, err = d.readToken(elem + " id"); err != nil {
			return nil, err
		}
		numWorkTags, err := d.readInt(elem + " tag count")
		if err != nil {
			return nil, err
		}
		w.Tags = make([]core.Tag, 0, numWorkTags)
		for j := 0; j < numWorkTags; j++ {
			tag, err := d.readTag(fmt.Sprintf("%s tag[%d]", elem, j))
			if err != nil {
				return nil, err
			}
			w.Tags = append(w.Tags, tag)
		}
		if w.ViewCount, err = d.readFloat(elem + " view count"); err != nil {
			return nil, err
		}
		if w.InteractionTime, err = d.readFloat(elem + " interaction time"); err != nil {
			return nil, err
		}
		req.Works = append(req.Works, w)
	}

	if err := d.seek(SectionSimilarUsers); err != nil {
		return nil, err
	}
	numUsers, err := d.readInt("similar user count")
	if err != nil {
		return nil, err
	}
	req.SimilarUsers = make([]core.SimilarUser, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		elem := fmt.Sprintf("similar_user[%d]", i)
		var u core.SimilarUser
		if u.ID, err = d.readToken(elem + " id"); err != nil {
			return nil, err
		}
		if u.Similarity, err = d.readFloat(elem + " similarity"); err != nil {
			return nil, err
		}
		numLiked, err := d.readInt(elem + " liked count")
		if err != nil {
			return nil, err
		}
		u.LikedWorks = make([]string, 0, numLiked)
		for j := 0; j < numLiked; j++ {
			id, err := d.readToken(fmt.Sprintf("%s liked[%d]", elem, j))
			if err != nil {
				return nil, err
			}
			u.LikedWorks = append(u.LikedWorks, id)
		}
		req.SimilarUsers = append(req.SimilarUsers, u)
	}

	if err := d.seek(SectionParams); err != nil {
		return nil, err
	}
	if req.Params.NumRecommendations, err = d.readInt("num recommendations"); err != nil {
		return nil, err
	}
	if req.Params.RandomFactor, err = d.readFloat("random factor"); err != nil {
		return nil, err
	}

	if err := d.seek(SectionMetricsConfig); err != nil {
		return nil, err
	}
	useMetrics, err := d.readInt("use_metrics")
	if err != nil {
		return nil, err
	}
	req.Metrics.UseMetrics = useMetrics != 0
	if req.Metrics.WeightViews, err = d.readFloat("weight_views"); err != nil {
		return nil, err
	}
	if req.Metrics.WeightTime, err = d.readFloat("weight_time"); err != nil {
		return nil, err
	}
	if req.Metrics.WeightTags, err = d.readFloat("weight_tags"); err != nil {
		return nil, err
	}

	return req, nil
}

// decoder 在"行定位节头、token 流读节体"之间切换。
type decoder struct {
	sc      *bufio.Scanner
	toks    []string // 当前行尚未消费的 token
	section string   // 当前节名，用于错误信息
}

func newDecoder(r io.Reader) *decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &decoder{sc: sc}
}

// seek 逐行扫描直到某行去除空白后等于节头；当前行剩余 token 被丢弃。
func (d *decoder) seek(section string) error {
	d.toks = nil
	for d.sc.Scan() {
		if strings.TrimSpace(d.sc.Text()) == section {
			d.section = section
			return nil
		}
	}
	if err := d.sc.Err(); err != nil {
		return fmt.Errorf("codec: read input: %w", err)
	}
	return fmt.Errorf("codec: section %s not found", section)
}

// readToken 返回下一个空白分隔的 token，不足时报错并标明节与元素。
func (d *decoder) readToken(elem string) (string, error) {
	for len(d.toks) == 0 {
		if !d.sc.Scan() {
			if err := d.sc.Err(); err != nil {
				return "", fmt.Errorf("codec: %s: %s: %w", d.section, elem, err)
			}
			return "", fmt.Errorf("codec: %s: %s: unexpected end of input", d.section, elem)
		}
		d.toks = strings.Fields(d.sc.Text())
	}
	tok := d.toks[0]
	d.toks = d.toks[1:]
	return tok, nil
}

func (d *decoder) readInt(elem string) (int, error) {
	tok, err := d.readToken(elem)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("codec: %s: %s: invalid integer %q", d.section, elem, tok)
	}
	return n, nil
}

func (d *decoder) readFloat(elem string) (float64, error) {
	tok, err := d.readToken(elem)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("codec: %s: %s: invalid number %q", d.section, elem, tok)
	}
	return f, nil
}

func (d *decoder) readTag(elem string) (core.Tag, error) {
	name, err := d.readToken(elem + " name")
	if err != nil {
		return core.Tag{}, err
	}
	value, err := d.readFloat(elem + " value")
	if err != nil {
		return core.Tag{}, err
	}
	return core.Tag{Name: name, Value: value}, nil
}
