package gamification

import "math"

// XP economy constants
const (
	// LevelCurve is the C in xpForLevel = floor(C * level^1.5)
	LevelCurve = 100

	// QuestionXP is awarded once per correctly answered quiz question
	QuestionXP = 10
	// SectionXP is awarded once per completed section
	SectionXP = 50
	// CourseBonusXP is awarded once when every section of a course is done
	CourseBonusXP = 500
)

// XPForLevel returns the total XP at which the given level starts.
// Level 1 starts at 0. Thresholds past the int range saturate at
// math.MaxInt instead of overflowing, so the curve stays monotonic for
// every input.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	xp := math.Floor(LevelCurve * math.Pow(float64(level), 1.5))
	if xp >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(xp)
}

// LevelForXP returns the level reached with the given total XP.
//
// A closed-form pow gives the starting guess, then the exact answer is
// settled against the integer thresholds, so
// LevelForXP(XPForLevel(L)) == L exactly at every boundary. The guess is
// within a few levels of the target, so both correction loops are short
// even for totals near math.MaxInt.
func LevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}

	level := int(math.Pow(float64(xp)/LevelCurve, 2.0/3.0))
	if level < 1 {
		level = 1
	}
	for level > 1 && XPForLevel(level) > xp {
		level--
	}
	for {
		next := XPForLevel(level + 1)
		if next > xp || next == math.MaxInt {
			break
		}
		level++
	}
	return level
}

// Progress describes a user's position within the leveling curve
type Progress struct {
	Level        int     `json:"level"`
	NextLevel    int     `json:"next_level"`
	CurrentXP    int     `json:"current_xp"`
	LevelStartXP int     `json:"level_start_xp"`
	NextLevelXP  int     `json:"next_level_xp"`
	GainedXP     int     `json:"gained_xp"` // XP accumulated within the current level
	NeededXP     int     `json:"needed_xp"` // XP to cross into the next level
	Percent      float64 `json:"percent"`   // 0-100
}

// ProgressForXP computes the full within-level progress breakdown
func ProgressForXP(xp int) Progress {
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)
	start := XPForLevel(level)
	next := XPForLevel(level + 1)

	gained := xp - start
	needed := next - start

	// needed can collapse to zero where the curve saturates at MaxInt
	percent := float64(100)
	if needed > 0 {
		percent = float64(gained) / float64(needed) * 100
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return Progress{
		Level:        level,
		NextLevel:    level + 1,
		CurrentXP:    xp,
		LevelStartXP: start,
		NextLevelXP:  next,
		GainedXP:     gained,
		NeededXP:     needed,
		Percent:      percent,
	}
}
