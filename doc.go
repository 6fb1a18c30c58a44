// Package recmix 是一个混合推荐打分库（Recommendation Mixer）。
//
// 给定一个用户的标签画像快照、带标签与用量指标的候选目录、以及相似用户
// 的喜欢列表，产出一份带分数的最终推荐列表：
//
//   - 内容路：标签余弦相似度 + 目录归一化的用量指标
//   - 协同路：相似度加权的喜欢计数
//   - 融合：两路线性加权合并（默认 0.5/0.5）
//   - 多样性：受控随机的 Top-N 采样
//
// 设计要点：
//   - Pipeline-first: 打分逻辑通过 Node 串联（Fuse(Rank...) → Filter → ReRank）
//   - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
//   - 纯计算核心：单次调用内无 I/O、无共享可变状态，输入从不被修改
package recmix

import "github.com/rushteam/recmix/pipeline"

// 轻量 facade：便于用户直接 import "recmix" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRank   = pipeline.KindRank
	KindFuse   = pipeline.KindFuse
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
