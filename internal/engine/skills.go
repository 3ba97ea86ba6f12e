package engine

const (
	DailyMoveBodyBonus  = 10
	DailyQuestBodyBonus = 5
	PerfectBattleBonus  = 5
	CheckInBodyFactor   = 5

	ActivitySkillBoost = 5
	VoiceJournalBoost  = 3
)

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

// saturatingAdd adds delta and keeps the result inside [0, MaxLevel].
func saturatingAdd(v, delta int) int {
	return clampLevel(clampLevel(v) + delta)
}

func (p *UserProgress) addBodyScore(delta int) {
	p.BodyScore = saturatingAdd(p.BodyScore, delta)
}

func (p *UserProgress) boostSkill(skill SkillType, delta int) {
	p.SkillLevels[skill] = saturatingAdd(p.SkillLevels[skill], delta)
}

func clampUnit(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
