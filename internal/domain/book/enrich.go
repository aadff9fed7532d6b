package book

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultLanguage 上游未提供语言时的默认值
const DefaultLanguage = "FR"

// 占位值范围: 评分[3,5)，价格[10,40)
const (
	ratingBase = 3.0
	ratingSpan = 2.0
	priceBase  = 10.0
	priceSpan  = 30.0
)

// Enricher 为缺失字段生成占位值
// 这是展示层的兜底，不是真实数据，生成的值会打上Synthetic标记
type Enricher struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEnricher 使用给定随机源创建Enricher，src为nil时按当前时间播种
func NewEnricher(src rand.Source) *Enricher {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>7|1)
	}
	return &Enricher{rng: rand.New(src)}
}

// Apply 填充缺失的语言、评分、价格
// 评分或价格<=0同样视为缺失
func (e *Enricher) Apply(f *Form) {
	if f == nil {
		return
	}
	if f.Language == "" {
		f.Language = DefaultLanguage
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if f.AverageRating == nil || *f.AverageRating <= 0 {
		r := ratingBase + e.rng.Float64()*ratingSpan
		f.AverageRating = &r
		f.SyntheticRating = true
	}
	if f.Price == nil || *f.Price <= 0 {
		p := priceBase + e.rng.Float64()*priceSpan
		f.Price = &p
		f.SyntheticPrice = true
	}
}
