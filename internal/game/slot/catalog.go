package slot

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Symbol 收藏品符号。以ImageKey做内容等价（同一张图即同一符号）
type Symbol struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	ImageKey string          `json:"imageKey"` // 规范化图片标识，内容等价的依据
	RefValue decimal.Decimal `json:"refValue"` // 挂牌参考价
	Rarity   Rarity          `json:"rarity"`
	Role     Role            `json:"role"`
}

// Equal 内容等价：以 ImageKey 比较，不比较对象身份
func (s Symbol) Equal(other Symbol) bool {
	return s.ImageKey == other.ImageKey
}

// Catalog 符号目录。构造后不可变，可多主题并行持有各自目录
type Catalog struct {
	symbols []Symbol
	byID    map[int64]Symbol

	regularIDs  []int64 // 普通符号（含收藏符号）可抽取ID
	byRarity    map[Rarity][]int64
	collectIDs  []int64
	minRefValue decimal.Decimal
	maxRefValue decimal.Decimal
}

// NewCatalog 构造符号目录。空目录或重复ImageKey为致命配置错误
func NewCatalog(symbols []Symbol) (*Catalog, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		byID:     make(map[int64]Symbol, len(symbols)),
		byRarity: make(map[Rarity][]int64),
	}
	seenKeys := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		if sym.ID <= 0 {
			return nil, fmt.Errorf("catalog symbol %q: invalid id %d", sym.Name, sym.ID)
		}
		if sym.ImageKey == "" {
			return nil, fmt.Errorf("catalog symbol %q: empty image key", sym.Name)
		}
		if _, ok := seenKeys[sym.ImageKey]; ok {
			return nil, fmt.Errorf("catalog symbol %q: duplicate image key %q", sym.Name, sym.ImageKey)
		}
		if _, ok := c.byID[sym.ID]; ok {
			return nil, fmt.Errorf("catalog symbol %q: duplicate id %d", sym.Name, sym.ID)
		}
		seenKeys[sym.ImageKey] = struct{}{}
		c.byID[sym.ID] = sym
		c.symbols = append(c.symbols, sym)

		switch sym.Role {
		case RoleRegular, RoleCollectible:
			c.regularIDs = append(c.regularIDs, sym.ID)
			c.byRarity[sym.Rarity] = append(c.byRarity[sym.Rarity], sym.ID)
			if sym.Role == RoleCollectible {
				c.collectIDs = append(c.collectIDs, sym.ID)
			}
			if c.minRefValue.IsZero() || sym.RefValue.LessThan(c.minRefValue) {
				c.minRefValue = sym.RefValue
			}
			if sym.RefValue.GreaterThan(c.maxRefValue) {
				c.maxRefValue = sym.RefValue
			}
		}
	}
	if len(c.regularIDs) == 0 {
		return nil, fmt.Errorf("catalog has no drawable symbols")
	}
	return c, nil
}

func (c *Catalog) Symbol(id int64) (Symbol, bool) {
	s, ok := c.byID[id]
	return s, ok
}

func (c *Catalog) Len() int { return len(c.symbols) }

// Symbols 返回目录快照副本
func (c *Catalog) Symbols() []Symbol { return append([]Symbol(nil), c.symbols...) }

func (c *Catalog) RegularIDs() []int64 { return c.regularIDs }

func (c *Catalog) IDsByRarity(r Rarity) []int64 { return c.byRarity[r] }

func (c *Catalog) CollectibleIDs() []int64 { return c.collectIDs }

// rarityOf 未登记符号返回0稀有度（降级处理，不报错）
func (c *Catalog) rarityOf(id int64) Rarity {
	if s, ok := c.byID[id]; ok {
		return s.Rarity
	}
	return 0
}

// valueFactor 以目录价差做归一化：[0.75, 1.25]
func (c *Catalog) valueFactor(id int64) float64 {
	s, ok := c.byID[id]
	if !ok {
		return 1.0
	}
	spread := c.maxRefValue.Sub(c.minRefValue)
	if spread.IsZero() {
		return 1.0
	}
	pos, _ := s.RefValue.Sub(c.minRefValue).Div(spread).Float64()
	return 0.75 + 0.5*pos
}
