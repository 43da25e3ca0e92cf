package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeInterval(t *testing.T) {
	assert.Equal(t, 0, EncodeInterval(0, 0))
	assert.Equal(t, 90, EncodeInterval(1, 30))
	assert.Equal(t, 1439, EncodeInterval(23, 59))
}

func TestEncodeIntervalClampsOutOfRange(t *testing.T) {
	// Hours above 23 and minutes above 59 clamp instead of failing.
	assert.Equal(t, 23*60+10, EncodeInterval(30, 10))
	assert.Equal(t, 59, EncodeInterval(0, 120))
	assert.Equal(t, 0, EncodeInterval(-5, -1))
}

func TestDecodeInterval(t *testing.T) {
	h, m := DecodeInterval(90)
	assert.Equal(t, 1, h)
	assert.Equal(t, 30, m)

	h, m = DecodeInterval(0)
	assert.Equal(t, 0, h)
	assert.Equal(t, 0, m)

	h, m = DecodeInterval(1439)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)
}

func TestDecodeIntervalNegative(t *testing.T) {
	h, m := DecodeInterval(-30)
	assert.Equal(t, 0, h)
	assert.Equal(t, 0, m)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for hours := 0; hours <= 23; hours += 7 {
		for minutes := 0; minutes <= 59; minutes += 13 {
			h, m := DecodeInterval(EncodeInterval(hours, minutes))
			assert.Equal(t, hours, h)
			assert.Equal(t, minutes, m)
		}
	}
}

func TestSetStagesWritesAllFivePositions(t *testing.T) {
	schedule := FollowUpSchedule{
		Estagio3:   "stale message",
		Intervalo3: 500,
	}

	schedule.SetStages([]FollowUpStage{
		{Message: "first nudge", Hours: 1, Minutes: 30},
		{Message: "second nudge", Hours: 2, Minutes: 0},
		{Message: "third nudge", Hours: 0, Minutes: 45},
	})

	assert.Equal(t, "first nudge", schedule.Estagio1)
	assert.Equal(t, 90, schedule.Intervalo1)
	assert.Equal(t, 120, schedule.Intervalo2)
	assert.Equal(t, "third nudge", schedule.Estagio3)
	assert.Equal(t, 45, schedule.Intervalo3)

	// Trailing positions reset rather than keeping stale values.
	assert.Equal(t, "", schedule.Estagio4)
	assert.Equal(t, "", schedule.Estagio5)
	assert.Equal(t, 0, schedule.Intervalo4)
	assert.Equal(t, 0, schedule.Intervalo5)
}

func TestSetStagesIgnoresExtraStages(t *testing.T) {
	schedule := FollowUpSchedule{}
	stages := make([]FollowUpStage, 7)
	for i := range stages {
		stages[i] = FollowUpStage{Message: "m", Hours: 1}
	}

	schedule.SetStages(stages)

	assert.Equal(t, "m", schedule.Estagio5)
	assert.Equal(t, 60, schedule.Intervalo5)
}

func TestStagesAlwaysReturnsFive(t *testing.T) {
	schedule := FollowUpSchedule{
		Estagio1:   "come back",
		Intervalo1: 150,
	}

	stages := schedule.Stages()
	assert.Len(t, stages, NumFollowUpStages)
	assert.Equal(t, FollowUpStage{Message: "come back", Hours: 2, Minutes: 30}, stages[0])
	assert.Equal(t, FollowUpStage{}, stages[4])
}
