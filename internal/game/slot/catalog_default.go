package slot

import "github.com/shopspring/decimal"

// defaultSymbols 内置默认符号目录：目录服务不可用时的兜底主题。
// 参考价单位与bet一致，价差决定valueFactor归一区间
func defaultSymbols() []Symbol {
	d := decimal.NewFromFloat
	return []Symbol{
		{ID: 1, Name: "Pixel Ape #204", ImageKey: "ipfs://Qma204/pixel-ape", RefValue: d(0.8), Rarity: RarityCommon, Role: RoleRegular},
		{ID: 2, Name: "Pixel Ape #378", ImageKey: "ipfs://Qma378/pixel-ape", RefValue: d(0.9), Rarity: RarityCommon, Role: RoleRegular},
		{ID: 3, Name: "Doodle Cat #55", ImageKey: "ipfs://Qmc055/doodle-cat", RefValue: d(1.0), Rarity: RarityCommon, Role: RoleRegular},
		{ID: 4, Name: "Doodle Cat #91", ImageKey: "ipfs://Qmc091/doodle-cat", RefValue: d(1.1), Rarity: RarityCommon, Role: RoleRegular},
		{ID: 5, Name: "Meta Punk #12", ImageKey: "ipfs://Qmp012/meta-punk", RefValue: d(2.4), Rarity: RarityRare, Role: RoleRegular},
		{ID: 6, Name: "Meta Punk #77", ImageKey: "ipfs://Qmp077/meta-punk", RefValue: d(2.8), Rarity: RarityRare, Role: RoleRegular},
		{ID: 7, Name: "Chrome Skull #3", ImageKey: "ipfs://Qms003/chrome-skull", RefValue: d(3.2), Rarity: RarityRare, Role: RoleRegular},
		{ID: 8, Name: "Genesis Dragon #1", ImageKey: "ipfs://Qmd001/genesis-dragon", RefValue: d(7.5), Rarity: RarityLegendary, Role: RoleRegular},
		{ID: 9, Name: "Golden Koi #8", ImageKey: "ipfs://Qmk008/golden-koi", RefValue: d(6.8), Rarity: RarityLegendary, Role: RoleCollectible},
		{ID: 10, Name: "Void Walker #0", ImageKey: "ipfs://Qmv000/void-walker", RefValue: d(8.0), Rarity: RarityLegendary, Role: RoleCollectible},
	}
}
