package srs

// Grade is an SM-2 quality grade for a single recall attempt. The zero value
// is GradeUnset, which lets RecordReview derive the grade from the outcome
// flags instead.
type Grade int

const (
	GradeUnset Grade = iota
	// GradeBlackout means the chunk was completely forgotten.
	GradeBlackout
	// GradeIncorrect means the answer was wrong and felt unfamiliar.
	GradeIncorrect
	// GradeIncorrectFamiliar means the answer was wrong but recognized once shown.
	GradeIncorrectFamiliar
	// GradeCorrectDifficult means the answer was correct after serious difficulty.
	GradeCorrectDifficult
	// GradeCorrectHesitant means the answer was correct after hesitation or a hint.
	GradeCorrectHesitant
	// GradePerfect means instant clean recall.
	GradePerfect
)

// Quality returns the SM-2 quality value (0-5) behind the grade.
// GradeUnset has no quality and returns -1.
func (g Grade) Quality() int {
	return int(g) - 1
}

// Passing reports whether the grade counts as a successful recall.
func (g Grade) Passing() bool {
	return g >= GradeCorrectDifficult
}

// IsValid reports whether the grade is GradeUnset or one of the SM-2 grades.
func (g Grade) IsValid() bool {
	return g >= GradeUnset && g <= GradePerfect
}

func (g Grade) String() string {
	switch g {
	case GradeUnset:
		return "unset"
	case GradeBlackout:
		return "blackout"
	case GradeIncorrect:
		return "incorrect"
	case GradeIncorrectFamiliar:
		return "incorrect_familiar"
	case GradeCorrectDifficult:
		return "correct_difficult"
	case GradeCorrectHesitant:
		return "correct_hesitant"
	case GradePerfect:
		return "perfect"
	}
	return "unknown"
}
