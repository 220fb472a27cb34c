package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/services"
)

func TestPlanRegenerate(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	examDate := models.NewDate(time.Now()).AddDays(10)
	_, err := st.AddExam(ctx, models.Exam{
		SubjectID:  "subj-1",
		Title:      "Matek",
		Date:       examDate,
		Difficulty: models.DifficultyMedium,
	})
	require.NoError(t, err)

	svc := services.NewPlanService(st)
	tasks, err := svc.Regenerate(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.NotEmpty(t, task.ID)
		assert.True(t, task.Date.Before(examDate.Time))
	}

	// The plan is stored, not just returned.
	assert.Len(t, st.Tasks(), 3)
}

func TestPlanRegenerate_KeepsProgress(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	_, err := st.AddExam(ctx, models.Exam{
		SubjectID:  "subj-1",
		Title:      "Matek",
		Date:       models.NewDate(time.Now()).AddDays(12),
		Difficulty: models.DifficultyEasy,
	})
	require.NoError(t, err)

	svc := services.NewPlanService(st)
	first, err := svc.Regenerate(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	_, err = st.ToggleTask(ctx, first[0].ID)
	require.NoError(t, err)

	second, err := svc.Regenerate(ctx)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	assert.True(t, second[0].Completed)
}

func TestPlanUpcoming(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	exam, err := st.AddExam(ctx, models.Exam{
		SubjectID:  "subj-1",
		Title:      "Matek",
		Difficulty: models.DifficultyEasy,
	})
	require.NoError(t, err)

	today := models.NewDate(time.Now())
	tasks, err := st.ReplaceStudyPlan(ctx, []models.StudyTask{
		{ExamID: exam.ID, Title: "ma", Date: today, DurationMinutes: 25},
		{ExamID: exam.ID, Title: "holnap", Date: today.AddDays(1), DurationMinutes: 25},
		{ExamID: exam.ID, Title: "messze", Date: today.AddDays(30), DurationMinutes: 25},
	})
	require.NoError(t, err)

	svc := services.NewPlanService(st)

	upcoming := svc.Upcoming(7)
	require.Len(t, upcoming, 2)

	// Completed tasks drop out.
	_, err = st.ToggleTask(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Len(t, svc.Upcoming(7), 1)
}
