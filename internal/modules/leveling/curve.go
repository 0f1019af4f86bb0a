package leveling

// Threshold returns the total XP required to reach the given level.
// The curve is quadratic, so each level costs 100 XP more than the last:
// level 1 at 100 XP, level 2 at 300, level 3 at 600.
func Threshold(level int) int64 {
	if level <= 0 {
		return 0
	}
	n := int64(level)
	return 50*n*n + 50*n
}

// LevelForXP returns the highest level the given total XP has reached.
func LevelForXP(xp int64) int {
	if xp < Threshold(1) {
		return 0
	}
	level := 0
	for Threshold(level+1) <= xp {
		level++
	}
	return level
}

// Progress reports XP earned into the current level and the size of the
// gap to the next one.
func Progress(xp int64) (into, needed int64) {
	level := LevelForXP(xp)
	floor := Threshold(level)
	return xp - floor, Threshold(level+1) - floor
}
