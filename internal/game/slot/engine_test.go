package slot

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewEngineValidation(t *testing.T) {
	if _, err := NewCatalog(nil); err != ErrEmptyCatalog {
		t.Fatalf("empty catalog error = %v", err)
	}

	dup := []Symbol{
		{ID: 1, Name: "a", ImageKey: "ipfs://k1", Rarity: RarityCommon},
		{ID: 2, Name: "b", ImageKey: "ipfs://k1", Rarity: RarityCommon},
	}
	if _, err := NewCatalog(dup); err == nil {
		t.Fatalf("duplicate image key accepted")
	}

	if _, err := New(nil, WithConfigRaw(`{"target_rtp": 0}`)); err == nil {
		t.Fatalf("invalid config accepted")
	}
	if _, err := New(nil, WithConfigRaw(`not json`)); err == nil {
		t.Fatalf("malformed config accepted")
	}
}

func TestSpinRequestValidation(t *testing.T) {
	e := newTestEngine(t, 1)
	session := NewSessionState()
	scene := &SpinSceneData{}

	cases := []*SpinRequest{
		nil,
		{Mode: 0, Bet: decimal.NewFromInt(1)},
		{Mode: ModeClassic, Bet: decimal.Zero},
		{Mode: ModeClassic, Bet: decimal.NewFromInt(-1)},
		{Mode: ModeClassic, Bet: decimal.NewFromInt(1), PlayerSpinCount: -1},
	}
	for i, req := range cases {
		if _, err := e.Spin(session, scene, req); err != InvalidRequestParams {
			t.Fatalf("case %d: err = %v, want InvalidRequestParams", i, err)
		}
	}
	if _, err := e.Spin(nil, scene, &SpinRequest{Mode: ModeClassic, Bet: decimal.NewFromInt(1)}); err != InvalidRequestParams {
		t.Fatalf("nil session accepted")
	}
}

func TestSpinSmoke(t *testing.T) {
	for _, mode := range []Mode{ModeClassic, ModeExpanded, ModeLarge} {
		e := newTestEngine(t, int64(mode)*1000)
		session := NewSessionState()
		scene := &SpinSceneData{}
		bet := decimal.NewFromInt(2)
		capAmount := bet.Mul(decimal.NewFromInt(500))

		for i := int64(0); i < 20000; i++ {
			req := &SpinRequest{Mode: mode, Bet: bet, PlayerSpinCount: i}
			result, err := e.Spin(session, scene, req)
			if err != nil {
				t.Fatalf("mode %d spin %d: %v", mode, i, err)
			}
			if result.Payout.IsNegative() {
				t.Fatalf("negative payout %s", result.Payout)
			}
			if result.Payout.GreaterThan(capAmount) {
				t.Fatalf("payout %s above cap %s", result.Payout, capAmount)
			}
			if result.IsWin != result.Matches.HasWin() {
				t.Fatalf("win flag inconsistent with matches")
			}
			if result.NearMiss && result.IsWin {
				t.Fatalf("near miss shown on winning spin")
			}
			// 免费链路硬上限
			if scene.TotalBonusSpins > 50 {
				t.Fatalf("bonus chain exceeded ceiling: %d", scene.TotalBonusSpins)
			}
		}
		if session.TotalSpins != 20000 {
			t.Fatalf("session spins = %d", session.TotalSpins)
		}
	}
}

func TestSpinBonusLifecycle(t *testing.T) {
	e := newTestEngine(t, 42)
	session := NewSessionState()
	scene := &SpinSceneData{}
	bet := decimal.NewFromInt(1)

	sawBonus := false
	for i := int64(0); i < 300000 && !sawBonus; i++ {
		result, err := e.Spin(session, scene, &SpinRequest{Mode: ModeExpanded, Bet: bet, PlayerSpinCount: 1000})
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		if result.BonusTrigger && result.BonusAwarded > 0 {
			sawBonus = true
			if !scene.isBonus() {
				t.Fatalf("trigger did not enter bonus stage: %+v", scene)
			}
			if scene.PersistentMultiplier < 1 {
				t.Fatalf("persistent multiplier not initialized: %v", scene.PersistentMultiplier)
			}
		}
	}
	if !sawBonus {
		t.Fatalf("no bonus trigger in 300k spins")
	}

	// 跑完免费链：期间不计投注，结束后场景复位
	wagered := session.TotalWagered
	for scene.isBonus() {
		if _, err := e.Spin(session, scene, &SpinRequest{Mode: ModeExpanded, Bet: bet, PlayerSpinCount: 1000}); err != nil {
			t.Fatalf("bonus spin: %v", err)
		}
	}
	if !session.TotalWagered.Equal(wagered) {
		t.Fatalf("free spins changed wager: %s -> %s", wagered, session.TotalWagered)
	}
	if scene.Stage != _spinTypeBase || scene.PersistentMultiplier != 0 || scene.TotalBonusSpins != 0 {
		t.Fatalf("scene not reset after chain: %+v", scene)
	}
}

func TestSeededSpinReproducible(t *testing.T) {
	run := func() []string {
		e := newTestEngine(t, 777)
		session := NewSessionState()
		scene := &SpinSceneData{}
		var payouts []string
		for i := int64(0); i < 2000; i++ {
			result, err := e.Spin(session, scene, &SpinRequest{Mode: ModeLarge, Bet: decimal.NewFromInt(1), PlayerSpinCount: i})
			if err != nil {
				t.Fatalf("spin: %v", err)
			}
			payouts = append(payouts, result.Payout.String())
		}
		return payouts
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seeded run diverged at spin %d: %s vs %s", i, first[i], second[i])
		}
	}
}
