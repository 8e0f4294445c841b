package conf

// Bootstrap 启动配置，来自configs目录，由kratos config扫描填充
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Game   *Game   `json:"game"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"` // time.ParseDuration格式，如 "1s"
}

type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
	Rabbitmq *Rabbitmq `json:"rabbitmq"`
}

type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Redis struct {
	Addr string `json:"addr"`
}

type Rabbitmq struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Vhost    string `json:"vhost"`
	Exchange string `json:"exchange"` // 结算事件交换机
}

// Game 玩法侧配置。数学配置内嵌在引擎里，这里只放运营侧开关
type Game struct {
	MinBet         float64 `json:"minBet"`
	MaxBet         float64 `json:"maxBet"`
	CatalogFromDB  bool    `json:"catalogFromDb"`  // 目录从数据库加载，关闭时用内置默认目录
	ConfigOverride string  `json:"configOverride"` // 非空时整体替换内嵌数学配置（JSON）
}
