package slot

import (
	"crypto/rand"
	"encoding/binary"
	mathRand "math/rand"
	"sync"
)

// ========== 随机数生成器 ==========

var randPool = &sync.Pool{
	New: func() any {
		var seed int64
		binary.Read(rand.Reader, binary.LittleEndian, &seed)
		return mathRand.New(mathRand.NewSource(seed))
	},
}

// rng 可替换随机源。仿真/测试注入固定种子，线上从池中取
type rng struct {
	r      *mathRand.Rand
	pooled bool
}

func newPooledRng() *rng {
	return &rng{r: randPool.Get().(*mathRand.Rand), pooled: true}
}

func newSeededRng(seed int64) *rng {
	return &rng{r: mathRand.New(mathRand.NewSource(seed))}
}

func (g *rng) release() {
	if g.pooled {
		randPool.Put(g.r)
		g.r = nil
		g.pooled = false
	}
}

func (g *rng) Float64() float64 { return g.r.Float64() }

func (g *rng) IntN(n int) int { return g.r.Intn(n) }

// chance 以概率p返回true，p自动钳制到[0,1]
func (g *rng) chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return g.r.Float64() < p
}

// pickWeighted 按权重抽取下标，权重和<=0时退化为首个非零权重
func (g *rng) pickWeighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	n := g.r.Intn(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}

// pickOne 均匀抽取一个元素
func pickOne[T any](g *rng, items []T) T {
	return items[g.r.Intn(len(items))]
}

// rangeFloat 在[lo,hi)内均匀抽取
func (g *rng) rangeFloat(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}
