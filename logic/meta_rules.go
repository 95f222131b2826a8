package logic

import (
	"math"

	"github.com/rs/zerolog/log"
)

// RoleSwapConfig tunes the "player avoids everyone -> rotate roles" rule.
type RoleSwapConfig struct {
	SafeDistanceTiles float64 `json:"safe_distance_tiles"`
	EscapeTicks       int     `json:"escape_ticks"`
	CooldownTicks     int     `json:"cooldown_ticks"`
	RotationStep      int     `json:"rotation_step"`
}

func DefaultRoleSwapConfig() RoleSwapConfig {
	return RoleSwapConfig{
		SafeDistanceTiles: 6.0,
		EscapeTicks:       60,
		CooldownTicks:     30,
		RotationStep:      1,
	}
}

// ConvergeConfig tunes the "player surrounded -> everyone converges" rule.
// Detection counts occupied angular sectors around the player.
type ConvergeConfig struct {
	RadiusTiles     float64 `json:"radius_tiles"`
	RequiredSectors int     `json:"required_sectors"`
	HoldTicks       int     `json:"hold_ticks"`
	CooldownTicks   int     `json:"cooldown_ticks"`
}

func DefaultConvergeConfig() ConvergeConfig {
	return ConvergeConfig{
		RadiusTiles:     6.0,
		RequiredSectors: 3,
		HoldTicks:       30,
		CooldownTicks:   30,
	}
}

// MetaRulesController owns the identity->role mapping and the two meta-rule
// counters. Update must run once per tick, before any ghost decision for
// that tick. Converge has priority: while it holds, every identity maps to
// RoleConverge and escape-tick accumulation is suppressed.
type MetaRulesController struct {
	tile    int
	swapCfg RoleSwapConfig
	convCfg ConvergeConfig
	roles   map[GhostID]Role

	escapeTicks  int
	swapCooldown int

	convergeHold     int
	convergeCooldown int

	swaps     int
	converges int
}

// NewMetaRulesController starts with the identity-named assignment:
// blinky=chase, pinky=ambush, inky=intercept, clyde=herder.
func NewMetaRulesController(tile int, swapCfg RoleSwapConfig, convCfg ConvergeConfig) *MetaRulesController {
	return &MetaRulesController{
		tile:    tile,
		swapCfg: swapCfg,
		convCfg: convCfg,
		roles: map[GhostID]Role{
			Blinky: RoleChase,
			Pinky:  RoleAmbush,
			Inky:   RoleIntercept,
			Clyde:  RoleHerder,
		},
	}
}

// Update evaluates both rules for this tick and returns the effective
// identity->role mapping. Ghost ids missing from ghosts are skipped in all
// aggregate computations; nothing here can fail.
func (mc *MetaRulesController) Update(player Point, ghosts map[GhostID]Point) map[GhostID]Role {
	if override := mc.updateConvergeRule(player, ghosts); override != nil {
		return override
	}
	mc.updateRoleSwapRule(player, ghosts)
	return mc.Roles()
}

// Roles returns a copy of the current mapping.
func (mc *MetaRulesController) Roles() map[GhostID]Role {
	out := make(map[GhostID]Role, len(mc.roles))
	for id, role := range mc.roles {
		out[id] = role
	}
	return out
}

// Swaps returns how many role rotations have fired this session.
func (mc *MetaRulesController) Swaps() int { return mc.swaps }

// Converges returns how many converge activations have fired this session.
func (mc *MetaRulesController) Converges() int { return mc.converges }

func (mc *MetaRulesController) updateConvergeRule(player Point, ghosts map[GhostID]Point) map[GhostID]Role {
	if mc.convergeCooldown > 0 {
		mc.convergeCooldown--
	}

	if mc.convergeHold > 0 {
		mc.convergeHold--
		if mc.convergeHold == 0 {
			mc.convergeCooldown = mc.convCfg.CooldownTicks
		}
		// While converge is active the escape counter must not accumulate.
		mc.escapeTicks = 0
		return mc.overrideMap()
	}

	// No detection while cooling down.
	if mc.convergeCooldown != 0 {
		return nil
	}

	if mc.occupiedSectors(player, ghosts) >= mc.convCfg.RequiredSectors {
		mc.convergeHold = mc.convCfg.HoldTicks
		mc.escapeTicks = 0
		mc.converges++
		log.Debug().Int("hold_ticks", mc.convCfg.HoldTicks).Msg("player surrounded, ghosts converging")
		return mc.overrideMap()
	}
	return nil
}

// occupiedSectors partitions ghosts within the Manhattan radius into the
// four angular quadrants around the player and counts distinct occupied
// ones.
func (mc *MetaRulesController) occupiedSectors(player Point, ghosts map[GhostID]Point) int {
	const (
		sectorNE = 1 << iota
		sectorNW
		sectorSW
		sectorSE
	)
	radiusPx := mc.convCfg.RadiusTiles * float64(mc.tile)

	mask := 0
	for _, id := range GhostIDs() {
		pos, ok := ghosts[id]
		if !ok {
			continue
		}
		dx := pos.X - player.X
		dy := pos.Y - player.Y
		if float64(absInt(dx)+absInt(dy)) > radiusPx {
			continue
		}
		switch {
		case dx >= 0 && dy < 0:
			mask |= sectorNE
		case dx < 0 && dy < 0:
			mask |= sectorNW
		case dx < 0 && dy >= 0:
			mask |= sectorSW
		default:
			mask |= sectorSE
		}
	}

	count := 0
	for m := mask; m != 0; m >>= 1 {
		count += m & 1
	}
	return count
}

func (mc *MetaRulesController) overrideMap() map[GhostID]Role {
	out := make(map[GhostID]Role, len(mc.roles))
	for _, id := range GhostIDs() {
		out[id] = RoleConverge
	}
	return out
}

func (mc *MetaRulesController) updateRoleSwapRule(player Point, ghosts map[GhostID]Point) {
	if mc.minDistToPlayerTiles(player, ghosts) >= mc.swapCfg.SafeDistanceTiles {
		mc.escapeTicks++
	} else {
		mc.escapeTicks = 0
	}

	if mc.swapCooldown > 0 {
		mc.swapCooldown--
	}

	if mc.escapeTicks >= mc.swapCfg.EscapeTicks && mc.swapCooldown == 0 {
		mc.rotateRoles()
		mc.escapeTicks = 0
		mc.swapCooldown = mc.swapCfg.CooldownTicks
		mc.swaps++
		log.Debug().Int("step", mc.swapCfg.RotationStep).Msg("ghost roles rotated")
	}
}

// minDistToPlayerTiles returns +Inf when no ghost is tracked, which counts
// as the player having escaped.
func (mc *MetaRulesController) minDistToPlayerTiles(player Point, ghosts map[GhostID]Point) float64 {
	min := math.Inf(1)
	for _, id := range GhostIDs() {
		pos, ok := ghosts[id]
		if !ok {
			continue
		}
		d := float64(Manhattan(pos, player)) / float64(mc.tile)
		if d < min {
			min = d
		}
	}
	return min
}

// rotateRoles reassigns each identity the role held by the identity
// RotationStep positions earlier in the fixed ordering, cyclically.
func (mc *MetaRulesController) rotateRoles() {
	ids := GhostIDs()
	n := len(ids)
	step := ((mc.swapCfg.RotationStep % n) + n) % n
	if step == 0 {
		return
	}

	current := make([]Role, n)
	for i, id := range ids {
		current[i] = mc.roles[id]
	}
	rotated := append(append([]Role{}, current[n-step:]...), current[:n-step]...)
	for i, id := range ids {
		mc.roles[id] = rotated[i]
	}
}
