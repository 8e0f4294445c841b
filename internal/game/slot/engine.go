package slot

import (
	"go.uber.org/zap"
)

// Engine 对外门面。Engine本身无会话状态，可并发执行不同会话的spin；
// 同一会话的spin必须由调用方串行。注入固定种子后仅限单协程使用（仿真/测试）
type Engine struct {
	catalog *Catalog
	cfg     *gameConfigJson
	log     *zap.Logger
	seeded  *rng
}

type Option func(*Engine) error

// WithConfigRaw 整体替换内嵌数学配置（主题侧热替换入口）
func WithConfigRaw(raw string) Option {
	return func(e *Engine) error {
		cfg, err := parseGameConfig(raw)
		if err != nil {
			return err
		}
		e.cfg = cfg
		return nil
	}
}

// WithSeed 固定随机种子，用于可复现仿真
func WithSeed(seed int64) Option {
	return func(e *Engine) error {
		e.seeded = newSeededRng(seed)
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) error {
		if l != nil {
			e.log = l
		}
		return nil
	}
}

// New 构造引擎。catalog传nil使用内置默认目录；
// 配置解析失败视为致命错误直接返回
func New(catalog *Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{catalog: catalog, log: zap.NewNop()}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.cfg == nil {
		cfg, err := parseGameConfig(_gameJsonConfigsRaw)
		if err != nil {
			return nil, err
		}
		e.cfg = cfg
	}
	if e.catalog == nil {
		c, err := NewCatalog(defaultSymbols())
		if err != nil {
			return nil, err
		}
		e.catalog = c
	}
	return e, nil
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

// Spin 执行一次spin。panic统一回收为内部错误，不向上扩散
func (e *Engine) Spin(session *SessionState, scene *SpinSceneData, req *SpinRequest) (result *SpinResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("spin panic",
				zap.Int64("gameId", _gameID),
				zap.Any("panic", r),
				zap.Stack("stack"))
			result, err = nil, InternalServerError
		}
	}()

	if err = checkSpinReq(req); err != nil {
		return nil, err
	}
	if session == nil || scene == nil {
		return nil, InvalidRequestParams
	}
	if session.ShardBalances == nil {
		session.ShardBalances = make(map[Tier]int64)
	}
	if scene.Stage == 0 {
		scene.Stage = _spinTypeBase
	}

	g := e.seeded
	if g == nil {
		g = newPooledRng()
		defer g.release()
	}

	s := &spinService{
		req:        req,
		scene:      scene,
		session:    session,
		catalog:    e.catalog,
		gameConfig: e.cfg,
		rng:        g,
		log:        e.log,
	}
	return s.baseSpin(), nil
}
