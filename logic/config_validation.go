package logic

import "math"

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	if math.IsNaN(v) {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// ClampGameConfig enforces hard safety bounds for room configs. It mutates
// cfg in-place so callers can accept user-provided values while
// guaranteeing sane limits.
func ClampGameConfig(cfg *GameConfig) {
	if cfg == nil {
		return
	}

	// --- server ---
	cfg.Server.TickRateMs = clampInt(cfg.Server.TickRateMs, 10, 200)

	// --- board ---
	cfg.Board.Tile = clampInt(cfg.Board.Tile, 10, 60)
	cfg.Board.Size = clampInt(cfg.Board.Size, cfg.Board.Tile*10, cfg.Board.Tile*40)
	cfg.Board.WallDensity = clampFloat(cfg.Board.WallDensity, 0.0, 0.4)

	// --- gameplay ---
	cfg.Gameplay.GhostStep = clampInt(cfg.Gameplay.GhostStep, 1, cfg.Board.Tile)
	cfg.Gameplay.PlayerStep = clampInt(cfg.Gameplay.PlayerStep, 1, cfg.Board.Tile)

	// --- ai weights (non-negative per scoring model) ---
	for name, w := range cfg.AI.Weights {
		w.Dist = clampFloat(w.Dist, 0.0, 10.0)
		w.Reverse = clampFloat(w.Reverse, 0.0, 10.0)
		w.Separation = clampFloat(w.Separation, 0.0, 10.0)
		w.Jitter = clampFloat(w.Jitter, 0.0, 10.0)
		cfg.AI.Weights[name] = w
	}

	// --- meta rules ---
	cfg.Rules.RoleSwap.SafeDistanceTiles = clampFloat(cfg.Rules.RoleSwap.SafeDistanceTiles, 1.0, 30.0)
	cfg.Rules.RoleSwap.EscapeTicks = clampInt(cfg.Rules.RoleSwap.EscapeTicks, 1, 3600)
	cfg.Rules.RoleSwap.CooldownTicks = clampInt(cfg.Rules.RoleSwap.CooldownTicks, 0, 3600)
	cfg.Rules.RoleSwap.RotationStep = clampInt(cfg.Rules.RoleSwap.RotationStep, 0, 3)

	cfg.Rules.Converge.RadiusTiles = clampFloat(cfg.Rules.Converge.RadiusTiles, 1.0, 30.0)
	cfg.Rules.Converge.RequiredSectors = clampInt(cfg.Rules.Converge.RequiredSectors, 1, 4)
	cfg.Rules.Converge.HoldTicks = clampInt(cfg.Rules.Converge.HoldTicks, 1, 3600)
	cfg.Rules.Converge.CooldownTicks = clampInt(cfg.Rules.Converge.CooldownTicks, 0, 3600)
}
