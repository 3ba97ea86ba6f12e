package engine

import "time"

// BattleRoundSize is the number of questions in a daily battle.
const BattleRoundSize = 10

// DayOfYear is the 1-based ordinal day of t in t's location.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// SelectPowerMove picks pool[(day-1) mod len(pool)].
func SelectPowerMove(pool []PowerMove, day int) (PowerMove, bool) {
	if len(pool) == 0 {
		return PowerMove{}, false
	}
	return pool[wrapIndex(day-1, len(pool))], true
}

// SelectPose picks pool[day mod len(pool)].
func SelectPose(pool []PowerPose, day int) (PowerPose, bool) {
	if len(pool) == 0 {
		return PowerPose{}, false
	}
	return pool[wrapIndex(day, len(pool))], true
}

// SelectBattleQuestions picks n questions with slot i taken from
// pool[(day*7 + i*13) mod len(pool)]. Slots may repeat a question.
func SelectBattleQuestions(pool []BattleQuestion, day, n int) []BattleQuestion {
	if len(pool) == 0 || n <= 0 {
		return nil
	}
	out := make([]BattleQuestion, n)
	for i := 0; i < n; i++ {
		out[i] = pool[wrapIndex(day*7+i*13, len(pool))]
	}
	return out
}

// DailyPowerMove returns the built-in power move for the day of t.
func DailyPowerMove(t time.Time) PowerMove {
	m, _ := SelectPowerMove(powerMoves, DayOfYear(t))
	return m
}

// DailyPose returns the built-in power pose for the day of t.
func DailyPose(t time.Time) PowerPose {
	p, _ := SelectPose(powerPoses, DayOfYear(t))
	return p
}

// DailyBattleQuestions returns the built-in battle round for the day of t.
func DailyBattleQuestions(t time.Time) []BattleQuestion {
	return SelectBattleQuestions(battleQuestions, DayOfYear(t), BattleRoundSize)
}

// ScoreBattle counts answers matching the question at the same position.
func ScoreBattle(questions []BattleQuestion, answers []string) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return score
}
