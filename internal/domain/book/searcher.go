package book

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Searcher 带记忆的搜索
// 输入（图书列表+条件）的指纹与上一次相同时复用上次的命中下标，跳过过滤，可并发使用
// 只缓存下标，结果总是从本次传入的books构造
type Searcher struct {
	mu      sync.Mutex
	key     uint64
	valid   bool
	indices []int
}

// NewSearcher 创建Searcher
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Search 同Search函数
func (s *Searcher) Search(books []*Form, filters SearchFilters) SearchResult {
	key := fingerprint(books, filters)

	s.mu.Lock()
	if s.valid && s.key == key {
		indices := s.indices
		s.mu.Unlock()
		return pick(books, indices)
	}
	s.mu.Unlock()

	indices := matchIndices(books, filters)

	s.mu.Lock()
	s.key = key
	s.valid = true
	s.indices = indices
	s.mu.Unlock()

	return pick(books, indices)
}

// fingerprint 计算输入指纹
// 字符串之间用0字节分隔，避免"ab"+"c"与"a"+"bc"冲突
func fingerprint(books []*Form, f SearchFilters) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeString := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	writeFloat := func(v *float64) {
		if v == nil {
			_, _ = d.Write([]byte{0})
			return
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(*v))
		_, _ = d.Write([]byte{1})
		_, _ = d.Write(buf[:])
	}

	writeString(f.Query)
	writeString(f.Author)
	writeFloat(f.MinRating)
	writeFloat(f.MaxPrice)

	binary.LittleEndian.PutUint64(buf[:], uint64(len(books)))
	_, _ = d.Write(buf[:])
	for _, b := range books {
		if b == nil {
			writeString("")
			continue
		}
		writeString(b.ID)
		writeString(b.Title)
		for _, a := range b.Authors {
			writeString(a.Name)
		}
		writeString("")
		writeFloat(b.AverageRating)
		writeFloat(b.Price)
	}
	return d.Sum64()
}
