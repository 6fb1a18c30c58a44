package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rushteam/recmix/core"
)

const sampleInput = `USER_PROFILE
2
scifi 1.0
drama 0.3
WORKS
2
A
1
scifi 1.0
10 5
B
1
drama 1.0
0 0
SIMILAR_USERS
1
u1
0.8
1
B
PARAMS
5 0.2
METRICS_CONFIG
0 0.3 0.2 1.0
`

func TestDecode(t *testing.T) {
	req, err := Decode(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(req.Profile.Tags) != 2 {
		t.Fatalf("profile tags = %d, want 2", len(req.Profile.Tags))
	}
	if req.Profile.Tags[0] != (core.Tag{Name: "scifi", Value: 1.0}) {
		t.Errorf("tag[0] = %+v", req.Profile.Tags[0])
	}

	if len(req.Works) != 2 {
		t.Fatalf("works = %d, want 2", len(req.Works))
	}
	if req.Works[0].ID != "A" || req.Works[0].ViewCount != 10 || req.Works[0].InteractionTime != 5 {
		t.Errorf("works[0] = %+v", req.Works[0])
	}
	if len(req.Works[1].Tags) != 1 || req.Works[1].Tags[0].Name != "drama" {
		t.Errorf("works[1].Tags = %+v", req.Works[1].Tags)
	}

	if len(req.SimilarUsers) != 1 {
		t.Fatalf("similar users = %d, want 1", len(req.SimilarUsers))
	}
	u := req.SimilarUsers[0]
	if u.ID != "u1" || u.Similarity != 0.8 || len(u.LikedWorks) != 1 || u.LikedWorks[0] != "B" {
		t.Errorf("similar user = %+v", u)
	}

	if req.Params.NumRecommendations != 5 || req.Params.RandomFactor != 0.2 {
		t.Errorf("params = %+v", req.Params)
	}
	if req.Metrics.UseMetrics || req.Metrics.WeightTags != 1.0 {
		t.Errorf("metrics = %+v", req.Metrics)
	}
}

// 节头之前的内容一律跳过；token 可跨行任意分布
func TestDecode_LeadingGarbageAndFreeLayout(t *testing.T) {
	input := `# generated by snapshot job
ignore this line
USER_PROFILE
1
scifi
1.0
WORKS
1
A 1 scifi 1.0 10 5
SIMILAR_USERS
0
PARAMS
3 0.0
METRICS_CONFIG
1 0.1 0.2 0.9
`
	req, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(req.Profile.Tags) != 1 || req.Profile.Tags[0].Name != "scifi" {
		t.Errorf("profile = %+v", req.Profile)
	}
	if len(req.Works) != 1 || req.Works[0].ID != "A" {
		t.Errorf("works = %+v", req.Works)
	}
	if !req.Metrics.UseMetrics {
		t.Errorf("metrics = %+v", req.Metrics)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSub string
	}{
		{
			name:    "missing section",
			input:   "USER_PROFILE\n0\n",
			wantSub: "section WORKS not found",
		},
		{
			name:    "invalid tag count",
			input:   "USER_PROFILE\nxyz\n",
			wantSub: "invalid integer",
		},
		{
			name: "truncated work",
			input: `USER_PROFILE
0
WORKS
1
A 1 scifi
`,
			wantSub: "unexpected end of input",
		},
		{
			name: "invalid similarity",
			input: `USER_PROFILE
0
WORKS
0
SIMILAR_USERS
1
u1 not-a-number 0
`,
			wantSub: "invalid number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	a := core.NewItem("A")
	a.Score = 0.5
	b := core.NewItem("B")
	b.Score = 0.4

	var buf bytes.Buffer
	if err := Write(&buf, []*core.Item{a, b}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := `{
  "recommendations": [
    {
      "id": "A",
      "score": 0.5
    },
    {
      "id": "B",
      "score": 0.4
    }
  ]
}
`
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := `{
  "recommendations": []
}
`
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}
