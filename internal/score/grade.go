package score

// Grade cut points. A percentage at or above a boundary earns the letter.
const (
	GradeABoundary = 90.0
	GradeBBoundary = 80.0
	GradeCBoundary = 70.0
	GradeDBoundary = 60.0
)

// GradeFor maps a percentage (0-100) to a letter grade.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= GradeABoundary:
		return "A"
	case percentage >= GradeBBoundary:
		return "B"
	case percentage >= GradeCBoundary:
		return "C"
	case percentage >= GradeDBoundary:
		return "D"
	default:
		return "F"
	}
}

// Percentage returns score/max*100, or 0 when max is not positive.
func Percentage(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return score / max * 100
}
