// Package planner spreads review sessions across the days before each exam.
// The heuristic is fixed: difficulty decides how many sessions an exam needs
// and how long each one runs.
package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/kadarb/studyflash/internal/models"
)

// GeneratePlan maps exams to study tasks. Exams dated today or earlier emit
// nothing. Output is sorted ascending by date (stable, so exam order breaks
// ties) and every task is uncompleted with no id; the store assigns ids when
// the plan is applied. Fully deterministic for a given now.
func GeneratePlan(exams []models.Exam, nowTime time.Time) []models.StudyTask {
	today := models.NewDate(nowTime)
	var tasks []models.StudyTask

	for _, exam := range exams {
		daysUntilExam := today.DaysUntil(exam.Date)
		if daysUntilExam <= 0 {
			continue
		}

		sessions := sessionsNeeded(exam.Difficulty)
		duration := sessionDuration(exam.Difficulty)

		interval := daysUntilExam / sessions
		if interval < 1 {
			interval = 1
		}

		for i := 0; i < sessions; i++ {
			date := today.AddDays(i * interval)
			// Never schedule on or after the exam day.
			if !date.Before(exam.Date.Time) {
				break
			}

			tasks = append(tasks, models.StudyTask{
				ExamID:          exam.ID,
				Title:           sessionTitle(exam.Title, i, sessions),
				Date:            date,
				DurationMinutes: duration,
				Completed:       false,
			})
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Date.Before(tasks[j].Date.Time)
	})
	return tasks
}

func sessionsNeeded(d models.Difficulty) int {
	switch d {
	case models.DifficultyHard:
		return 5
	case models.DifficultyMedium:
		return 3
	default:
		return 2
	}
}

// sessionDuration returns minutes per session.
func sessionDuration(d models.Difficulty) int {
	switch d {
	case models.DifficultyHard:
		return 45
	case models.DifficultyMedium:
		return 30
	default:
		return 25
	}
}

func sessionTitle(examTitle string, i, sessions int) string {
	switch {
	case i == 0:
		return examTitle + " - material review"
	case i == sessions-1:
		return examTitle + " - final review"
	default:
		return fmt.Sprintf("%s - session %d", examTitle, i+1)
	}
}
