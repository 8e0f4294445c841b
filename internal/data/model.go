package data

import "time"

// spinOrderPO spin下注订单表
type spinOrderPO struct {
	Id        int64     `xorm:"pk autoincr 'id'"`
	Sn        string    `xorm:"varchar(64) notnull unique 'sn'"`
	PlayerId  string    `xorm:"varchar(64) notnull index 'player_id'"`
	GameId    int64     `xorm:"notnull 'game_id'"`
	Mode      int8      `xorm:"'mode'"`
	Bet       string    `xorm:"decimal(20,2) 'bet'"`
	Payout    string    `xorm:"decimal(20,2) 'payout'"`
	IsWin     bool      `xorm:"'is_win'"`
	FreeSpin  bool      `xorm:"'free_spin'"`
	CreatedAt time.Time `xorm:"created 'created_at'"`
}

func (spinOrderPO) TableName() string { return "spin_order" }

// collectionItemPO 收藏品目录表，运营侧维护
type collectionItemPO struct {
	Id       int64  `xorm:"pk autoincr 'id'"`
	Name     string `xorm:"varchar(128) notnull 'name'"`
	ImageKey string `xorm:"varchar(255) notnull unique 'image_key'"`
	Price    string `xorm:"decimal(20,2) notnull 'price'"`
	Rarity   string `xorm:"varchar(16) notnull 'rarity'"` // common/rare/legendary
	Role     string `xorm:"varchar(16) notnull 'role'"`   // regular/collectible
	Enabled  bool   `xorm:"notnull default true 'enabled'"`
}

func (collectionItemPO) TableName() string { return "collection_item" }
