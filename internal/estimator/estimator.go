// Package estimator оценивает время ожидания по числу людей впереди.
// Это линейная эвристика, а не модель: 10 минут на пациента, уверенность
// растёт с загрузкой от 70% и упирается в 95%.
package estimator

const (
	MinutesPerPatient = 10
	BaseConfidence    = 70
	ConfidenceStep    = 2
	MaxConfidence     = 95
)

type Estimate struct {
	WaitMinutes       int
	ConfidencePercent int
}

func Compute(waiting int) Estimate {
	if waiting < 0 {
		waiting = 0
	}
	return Estimate{
		WaitMinutes:       waiting * MinutesPerPatient,
		ConfidencePercent: min(MaxConfidence, BaseConfidence+waiting*ConfidenceStep),
	}
}
