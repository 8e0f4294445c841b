package slot

const _gameJsonConfigsRaw = `
{
  "target_rtp": 0.95,

  "base_hit_frequency": 0.20,
  "new_player_ramp_spins": 50,
  "new_player_ramp_boost": 3.0,
  "rtp_inner_threshold": 0.001,
  "rtp_outer_threshold": 0.05,
  "rtp_inner_scale": 1.6,
  "rtp_outer_scale": 2.6,
  "loss_streak_soft": 15,
  "loss_streak_soft_mult": 1.15,
  "loss_streak_hard": 20,
  "loss_streak_hard_mult": 1.35,
  "win_streak_limit": 6,
  "win_streak_mult": 0.80,
  "drought_spins": 40,
  "drought_mult": 1.08,
  "win_chance_floor": 0.02,
  "win_chance_ceiling": 0.90,
  "near_miss_prob": 0.30,
  "big_win_multiple": 10,

  "band_weights": [6800, 2400, 650, 150],
  "catchup_band_weights": [4200, 2800, 2000, 1000],

  "forgiveness": {
    "force_win_prob": 0,
    "late_force_prob": 0
  },

  "modes": {
    "classic":  { "category_weights": { "common": 6200, "rare": 2400, "epic": 900, "wild": 350, "collect": 150 }, "multi_spawn_prob": 0.05 },
    "expanded": { "category_weights": { "common": 6000, "rare": 2500, "epic": 1000, "wild": 350, "collect": 150 }, "multi_spawn_prob": 0.08 },
    "large":    { "category_weights": { "common": 5800, "rare": 2600, "epic": 1050, "wild": 380, "collect": 170 }, "multi_spawn_prob": 0.10 }
  },
  "wild_count_weights": [8650, 1000, 300, 50],
  "wild_base_boost": 1.4,
  "wild_bonus_boost": 1.8,
  "small_win_bonus_boost": 1.3,
  "respin": { "attempts": 2, "complete_prob": 0.05, "near_miss_prob": 0.30 },

  "multiplier": { "carrier_value": 2.0, "bonus_scale": 1.5, "stack_prob_bonus": 0.15 },

  "bonus": {
    "first_trigger_spins": 8,
    "retrigger_spins": 5,
    "all_wild_win_bonus": 2,
    "per_wild_bonus": 1,
    "ceiling": 50
  },

  "rarity_odds": { "common": 130, "rare": 320, "legendary": 900 },
  "line_len_scale": 0.25,
  "rarity_bonus": { "common": 1.0, "rare": 1.15, "legendary": 1.35 },
  "cluster_odds": [
    { "min_size": 5, "odds": 400 },
    { "min_size": 7, "odds": 700 },
    { "min_size": 9, "odds": 1200 },
    { "min_size": 12, "odds": 2200 }
  ],
  "min_cluster_size": 5,
  "advanced_odds": { "corners": 500, "cross": 800, "diamond": 600, "l_tl": 400, "l_tr": 400, "l_bl": 400, "l_br": 400 },
  "broken_scale": 0.4,
  "pair_payout_min": 0.10,
  "pair_payout_max": 0.20,
  "payout_cap_multiple": 500,

  "tier_drop": {
    "attempt_prob": 0.10,
    "success_prob": 0.02,
    "collect_boost": 2.0,
    "tiers": [
      { "tier": "S", "prob": 0.05, "bonus": 20 },
      { "tier": "A", "prob": 0.15, "bonus": 8 },
      { "tier": "B", "prob": 0.30, "bonus": 3 },
      { "tier": "C", "prob": 0.50, "bonus": 1.5 }
    ]
  },
  "shards": {
    "redeem_threshold": 10,
    "tables": {
      "side_combo": { "tier": "B", "prob": 0.06 },
      "edge_combo": { "tier": "C", "prob": 0.10 },
      "diag_pair":  { "tier": "A", "prob": 0.03 },
      "cluster_c":  { "tier": "C", "prob": 0.12 },
      "cluster_b":  { "tier": "B", "prob": 0.08 },
      "cluster_a":  { "tier": "A", "prob": 0.04 },
      "cluster_s":  { "tier": "S", "prob": 0.01 }
    }
  }
}
`
