package services

import (
	"context"
	"time"

	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/planner"
	"github.com/kadarb/studyflash/internal/store"
)

// PlanService generates and queries the study plan.
type PlanService interface {
	Regenerate(ctx context.Context) ([]models.StudyTask, error)
	Upcoming(days int) []models.StudyTask
}

type planService struct {
	store *store.Store
	now   func() time.Time
}

// NewPlanService creates a PlanService.
func NewPlanService(st *store.Store) PlanService {
	return &planService{store: st, now: time.Now}
}

// Regenerate rebuilds the plan from the current exam list and replaces the
// stored task set in one shot.
func (s *planService) Regenerate(ctx context.Context) ([]models.StudyTask, error) {
	log := logger.FromContext(ctx)

	exams := s.store.Exams()
	tasks := planner.GeneratePlan(exams, s.now())
	log.Debug("generated %d tasks from %d exams", len(tasks), len(exams))

	return s.store.ReplaceStudyPlan(ctx, tasks)
}

// Upcoming returns uncompleted tasks scheduled within the next N days,
// today included.
func (s *planService) Upcoming(days int) []models.StudyTask {
	today := models.NewDate(s.now())
	cutoff := today.AddDays(days)

	var out []models.StudyTask
	for _, t := range s.store.Tasks() {
		if t.Completed {
			continue
		}
		if t.Date.Before(today.Time) || !t.Date.Before(cutoff.Time) {
			continue
		}
		out = append(out, t)
	}
	return out
}
