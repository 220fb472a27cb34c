package planner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/planner"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestGeneratePlan_SessionCountByDifficulty(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		difficulty models.Difficulty
		examDate   string
		wantTasks  int
		wantMins   int
	}{
		{
			name:       "easy exam far out gets 2 sessions of 25 minutes",
			difficulty: models.DifficultyEasy,
			examDate:   "2026-03-31",
			wantTasks:  2,
			wantMins:   25,
		},
		{
			name:       "medium exam far out gets 3 sessions of 30 minutes",
			difficulty: models.DifficultyMedium,
			examDate:   "2026-03-31",
			wantTasks:  3,
			wantMins:   30,
		},
		{
			name:       "hard exam far out gets 5 sessions of 45 minutes",
			difficulty: models.DifficultyHard,
			examDate:   "2026-03-31",
			wantTasks:  5,
			wantMins:   45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exams := []models.Exam{{
				ID:         "exam-1",
				Title:      "Algebra",
				Date:       mustDate(t, tt.examDate),
				Difficulty: tt.difficulty,
			}}

			tasks := planner.GeneratePlan(exams, now)
			require.Len(t, tasks, tt.wantTasks)
			for _, task := range tasks {
				assert.Equal(t, "exam-1", task.ExamID)
				assert.Equal(t, tt.wantMins, task.DurationMinutes)
				assert.False(t, task.Completed)
				assert.Empty(t, task.ID)
			}
		})
	}
}

func TestGeneratePlan_MediumExamNineDaysOut(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	exams := []models.Exam{{
		ID:         "exam-1",
		Title:      "Történelem",
		Date:       mustDate(t, "2026-03-10"),
		Difficulty: models.DifficultyMedium,
	}}

	tasks := planner.GeneratePlan(exams, now)
	require.Len(t, tasks, 3)

	// 9 days / 3 sessions = every 3 days starting today.
	assert.Equal(t, "2026-03-01", tasks[0].Date.String())
	assert.Equal(t, "2026-03-04", tasks[1].Date.String())
	assert.Equal(t, "2026-03-07", tasks[2].Date.String())

	assert.Equal(t, "Történelem - material review", tasks[0].Title)
	assert.Equal(t, "Történelem - session 2", tasks[1].Title)
	assert.Equal(t, "Történelem - final review", tasks[2].Title)
}

func TestGeneratePlan_SkipsPastAndTodayExams(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	exams := []models.Exam{
		{ID: "past", Title: "Past", Date: mustDate(t, "2026-03-01"), Difficulty: models.DifficultyHard},
		{ID: "today", Title: "Today", Date: mustDate(t, "2026-03-10"), Difficulty: models.DifficultyHard},
	}

	assert.Empty(t, planner.GeneratePlan(exams, now))
}

func TestGeneratePlan_TruncatesWhenExamIsClose(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	exams := []models.Exam{{
		ID:         "exam-1",
		Title:      "Fizika",
		Date:       mustDate(t, "2026-03-03"),
		Difficulty: models.DifficultyHard,
	}}

	// 5 sessions wanted but only 2 free days before the exam.
	tasks := planner.GeneratePlan(exams, now)
	require.Len(t, tasks, 2)
	assert.Equal(t, "2026-03-01", tasks[0].Date.String())
	assert.Equal(t, "2026-03-02", tasks[1].Date.String())
	for _, task := range tasks {
		assert.True(t, task.Date.Before(exams[0].Date.Time))
	}
}

func TestGeneratePlan_SortedAcrossExams(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	exams := []models.Exam{
		{ID: "late", Title: "Late", Date: mustDate(t, "2026-03-20"), Difficulty: models.DifficultyEasy},
		{ID: "soon", Title: "Soon", Date: mustDate(t, "2026-03-04"), Difficulty: models.DifficultyEasy},
	}

	tasks := planner.GeneratePlan(exams, now)
	require.NotEmpty(t, tasks)
	for i := 1; i < len(tasks); i++ {
		assert.False(t, tasks[i].Date.Before(tasks[i-1].Date.Time))
	}
}

func TestGeneratePlan_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	exams := []models.Exam{
		{ID: "a", Title: "A", Date: mustDate(t, "2026-03-12"), Difficulty: models.DifficultyHard},
		{ID: "b", Title: "B", Date: mustDate(t, "2026-03-06"), Difficulty: models.DifficultyMedium},
	}

	first := planner.GeneratePlan(exams, now)
	second := planner.GeneratePlan(exams, now)
	assert.Equal(t, first, second)
}
