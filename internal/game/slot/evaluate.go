package slot

import (
	"fmt"
	"sort"
)

// evaluate.go 盘面评估器：连线/近失/对子/连通簇/几何图案检测。
// 纯函数：同一冻结盘面重复评估结果一致。百搭在所有比较中可替代任意符号

type lineDef struct {
	id    string
	cells []int
}

type patternDef struct {
	id    string // 形状唯一标识，也是 advanced_odds 的键
	name  string // 形状族（corners / cross / diamond / l_shape）
	cells []int
}

var (
	_classicLines  = buildLines(ModeClassic)
	_expandedLines = buildLines(ModeExpanded)
	_largeLines    = buildLines(ModeLarge)

	_expandedPatterns = []patternDef{
		{"corners", "corners", []int{0, 2, 6, 8}},
		{"cross", "cross", []int{1, 3, 4, 5, 7}},
		{"diamond", "diamond", []int{1, 3, 5, 7}},
		{"l_tl", "l_shape", []int{0, 1, 3}},
		{"l_tr", "l_shape", []int{1, 2, 5}},
		{"l_bl", "l_shape", []int{3, 6, 7}},
		{"l_br", "l_shape", []int{5, 7, 8}},
	}
	_largePatterns = []patternDef{
		{"corners", "corners", []int{0, 4, 20, 24}},
		{"cross", "cross", []int{2, 7, 10, 11, 12, 13, 14, 17, 22}},
		{"diamond", "diamond", []int{2, 10, 14, 22}},
		{"l_tl", "l_shape", []int{0, 1, 5}},
		{"l_tr", "l_shape", []int{3, 4, 9}},
		{"l_bl", "l_shape", []int{15, 20, 21}},
		{"l_br", "l_shape", []int{19, 23, 24}},
	}
)

// buildLines 生成模式支付线：所有行；扩展/大盘另加列与两条对角线
func buildLines(mode Mode) []lineDef {
	rows, cols := gridDims(mode)
	var lines []lineDef
	for r := 0; r < rows; r++ {
		cells := make([]int, cols)
		for c := 0; c < cols; c++ {
			cells[c] = r*cols + c
		}
		lines = append(lines, lineDef{id: fmt.Sprintf("row_%d", r), cells: cells})
	}
	if mode == ModeClassic {
		return lines
	}
	for c := 0; c < cols; c++ {
		cells := make([]int, rows)
		for r := 0; r < rows; r++ {
			cells[r] = r*cols + c
		}
		lines = append(lines, lineDef{id: fmt.Sprintf("col_%d", c), cells: cells})
	}
	main := make([]int, rows)
	anti := make([]int, rows)
	for i := 0; i < rows; i++ {
		main[i] = i*cols + i
		anti[i] = i*cols + (cols - 1 - i)
	}
	lines = append(lines,
		lineDef{id: "diag_main", cells: main},
		lineDef{id: "diag_anti", cells: anti},
	)
	return lines
}

func winLines(mode Mode) []lineDef {
	switch mode {
	case ModeExpanded:
		return _expandedLines
	case ModeLarge:
		return _largeLines
	default:
		return _classicLines
	}
}

func advancedPatterns(mode Mode) []patternDef {
	switch mode {
	case ModeExpanded:
		return _expandedPatterns
	case ModeLarge:
		return _largePatterns
	default:
		return nil
	}
}

// evaluate 扫描盘面全部可中形状
func (s *spinService) evaluate(grid *Grid) EvalResult {
	res := EvalResult{}
	s.findLineWins(grid, &res)
	if grid.Mode == ModeLarge {
		res.Clusters = findClusters(grid, s.gameConfig.MinClusterSize)
	}
	res.Pairs = findAdjacentPairs(grid)
	res.Advanced = findAdvancedMatches(grid)
	return res
}

// findLineWins 连线与near-miss检测。
// 整线（含百搭替代）判中；恰好差一个的连续段记near-miss
func (s *spinService) findLineWins(grid *Grid, res *EvalResult) {
	for _, line := range winLines(grid.Mode) {
		symbol, run := longestRun(grid, line.cells)
		full := len(line.cells)
		switch {
		case run == full:
			res.Lines = append(res.Lines, PatternMatch{
				Kind:      KindLine,
				ShapeID:   line.id,
				Positions: append([]int(nil), line.cells...),
				Symbol:    symbol,
				Size:      full,
			})
		case run == full-1:
			res.NearMisses = append(res.NearMisses, PatternMatch{
				Kind:    KindLine,
				ShapeID: line.id,
				Symbol:  symbol,
				Size:    run,
			})
		}
	}
}

// longestRun 线内最长连续同符号段（百搭可替代）。
// 全百搭视为整线中奖，符号记为百搭本身
func longestRun(grid *Grid, cells []int) (int64, int) {
	bestSym, bestLen := int64(0), 0
	curSym, curLen := int64(0), 0
	for _, p := range cells {
		v := grid.Cells[p]
		switch {
		case v == _multiCarr || v == _blank:
			curSym, curLen = 0, 0
			continue
		case v == _wild:
			curLen++
		case curSym == 0 || curSym == _wild:
			curSym = v
			curLen++
		case v == curSym:
			curLen++
		default:
			// 断线，从当前格重开一段（之前的百搭不回溯）
			curSym, curLen = v, 1
		}
		if curSym == 0 {
			curSym = _wild
		}
		if curLen > bestLen {
			bestSym, bestLen = curSym, curLen
		}
	}
	return bestSym, bestLen
}

// findClusters 大盘连通簇：4方向flood-fill，显式工作队列避免递归爆栈
func findClusters(grid *Grid, minSize int) []PatternMatch {
	var clusters []PatternMatch
	seen := make(map[int64]bool)
	var seeds []int64
	for _, v := range grid.Cells {
		if v != _blank && v != _wild && v != _multiCarr && !seen[v] {
			seen[v] = true
			seeds = append(seeds, v)
		}
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	for _, symbol := range seeds {
		visited := make([]bool, len(grid.Cells))
		for start, v := range grid.Cells {
			if visited[start] || (v != symbol && v != _wild) {
				continue
			}
			// 工作队列展开连通域
			region := []int{start}
			visited[start] = true
			hasReal := v == symbol
			for head := 0; head < len(region); head++ {
				p := region[head]
				r, c := p/grid.Cols, p%grid.Cols
				for _, nb := range [4][2]int{{r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}} {
					nr, nc := nb[0], nb[1]
					if nr < 0 || nr >= grid.Rows || nc < 0 || nc >= grid.Cols {
						continue
					}
					np := nr*grid.Cols + nc
					if visited[np] {
						continue
					}
					nv := grid.Cells[np]
					if nv != symbol && nv != _wild {
						continue
					}
					visited[np] = true
					region = append(region, np)
					if nv == symbol {
						hasReal = true
					}
				}
			}
			if len(region) >= minSize && hasReal {
				clusters = append(clusters, PatternMatch{
					Kind:      KindCluster,
					ShapeID:   "cluster",
					Positions: region,
					Symbol:    symbol,
					Size:      len(region),
				})
			}
		}
	}
	return clusters
}

// findAdjacentPairs 相邻对子：横竖独立检测，同方向内不重叠（贪心）。
// 百搭可参与配对但不能作为对子的符号值（双百搭不成对）
func findAdjacentPairs(grid *Grid) []PatternMatch {
	var pairs []PatternMatch
	appendPair := func(p1, p2 int, dir string) bool {
		a, b := grid.Cells[p1], grid.Cells[p2]
		symbol := pairSymbol(a, b)
		if symbol == 0 {
			return false
		}
		pairs = append(pairs, PatternMatch{
			Kind:      KindPair,
			ShapeID:   dir + "_pair",
			Positions: []int{p1, p2},
			Symbol:    symbol,
			Size:      2,
		})
		return true
	}
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols-1; {
			if appendPair(r*grid.Cols+c, r*grid.Cols+c+1, "h") {
				c += 2
			} else {
				c++
			}
		}
	}
	for c := 0; c < grid.Cols; c++ {
		for r := 0; r < grid.Rows-1; {
			if appendPair(r*grid.Cols+c, (r+1)*grid.Cols+c, "v") {
				r += 2
			} else {
				r++
			}
		}
	}
	return pairs
}

// pairSymbol 对子的符号值；不成对返回0
func pairSymbol(a, b int64) int64 {
	if a == _blank || b == _blank || a == _multiCarr || b == _multiCarr {
		return 0
	}
	if a == _wild && b == _wild {
		return 0
	}
	if a == _wild {
		return b
	}
	if b == _wild {
		return a
	}
	if a == b {
		return a
	}
	return 0
}

// findAdvancedMatches 几何图案检测。
// 完整：全部格子经百搭替代归于同一非百搭符号；
// 破形（仅3格图案）：恰好一个百搭加两个相同符号
func findAdvancedMatches(grid *Grid) []PatternMatch {
	var matches []PatternMatch
	for _, pat := range advancedPatterns(grid.Mode) {
		symbol, wilds, ok := resolvePattern(grid, pat.cells)
		if !ok {
			continue
		}
		broken := false
		if len(pat.cells) == 3 {
			if wilds > 1 {
				continue
			}
			broken = wilds == 1
		} else if symbol == _wild {
			// 大图案全百搭：按完整匹配处理
			broken = false
		}
		matches = append(matches, PatternMatch{
			Kind:      KindAdvanced,
			ShapeID:   pat.id,
			Positions: append([]int(nil), pat.cells...),
			Symbol:    symbol,
			Size:      len(pat.cells),
			Broken:    broken,
		})
	}
	return matches
}

// resolvePattern 图案格子是否归于单一符号（百搭替代）
func resolvePattern(grid *Grid, cells []int) (symbol int64, wilds int, ok bool) {
	for _, p := range cells {
		v := grid.Cells[p]
		switch {
		case v == _blank || v == _multiCarr:
			return 0, 0, false
		case v == _wild:
			wilds++
		case symbol == 0:
			symbol = v
		case v != symbol:
			return 0, 0, false
		}
	}
	if symbol == 0 {
		symbol = _wild // 全百搭
	}
	return symbol, wilds, true
}
