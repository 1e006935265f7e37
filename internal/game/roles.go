package game

import "math/rand"

// AssignRoles picks one seeker uniformly at random and marks everyone else a
// live survivor. Players who toggled wants-seeker form the candidate pool;
// when nobody volunteered the whole roster is the pool, so any non-empty
// roster always yields exactly one seeker. The rand source is injected so
// tests can seed it.
func AssignRoles(players []*Player, rng *rand.Rand) *Player {
	if len(players) == 0 {
		return nil
	}

	candidates := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.WantsSeeker {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = players
	}

	seeker := candidates[rng.Intn(len(candidates))]
	for _, p := range players {
		if p == seeker {
			p.Role = RoleSeeker
		} else {
			p.Role = RoleSurvivor
		}
		p.IsAlive = true
	}
	return seeker
}
