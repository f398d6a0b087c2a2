package srs

import "fmt"

// Outcome describes what happened during one review encounter with a chunk.
type Outcome struct {
	// Correct reports whether the learner produced the chunk in the end.
	Correct bool

	// Grade optionally fixes the SM-2 grade for the encounter. Leave it as
	// GradeUnset to derive the grade from Correct, UsedHelp and WrongAttempts.
	Grade Grade

	// UsedHelp reports whether a hint or translation reveal was used.
	UsedHelp bool

	// WrongAttempts counts wrong tries before the final answer within this
	// encounter.
	WrongAttempts int

	// LessonID identifies the lesson the encounter happened in, if any.
	LessonID string
}

func (o Outcome) validate() error {
	if o.WrongAttempts < 0 {
		return fmt.Errorf("wrong attempts %d must not be negative: %w", o.WrongAttempts, ErrInvalidOutcome)
	}
	if !o.Grade.IsValid() {
		return fmt.Errorf("grade %d out of range: %w", int(o.Grade), ErrInvalidOutcome)
	}
	if o.Grade != GradeUnset && o.Grade.Passing() != o.Correct {
		return fmt.Errorf("grade %s contradicts correct=%t: %w", o.Grade, o.Correct, ErrInvalidOutcome)
	}
	return nil
}

// EffectiveGrade returns the grade used for scheduling. An explicit grade
// wins; otherwise a clean success is perfect, one flaw (help or a wrong
// attempt) hesitant, both difficult, and a failure behaves like any
// non-passing grade.
func (o Outcome) EffectiveGrade() Grade {
	if o.Grade != GradeUnset {
		return o.Grade
	}
	if !o.Correct {
		return GradeIncorrectFamiliar
	}
	switch {
	case o.UsedHelp && o.WrongAttempts > 0:
		return GradeCorrectDifficult
	case o.UsedHelp || o.WrongAttempts > 0:
		return GradeCorrectHesitant
	}
	return GradePerfect
}

// cleanFirstTry reports whether the encounter was a first-attempt success
// without help.
func (o Outcome) cleanFirstTry() bool {
	return o.Correct && !o.UsedHelp && o.WrongAttempts == 0
}
