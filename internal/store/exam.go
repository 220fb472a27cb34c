package store

import (
	"context"

	"github.com/samber/lo"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
)

// ExamUpdate is a partial update; nil fields are left untouched.
type ExamUpdate struct {
	SubjectID  *string
	Title      *string
	Date       *models.Date
	Difficulty *models.Difficulty
	Notes      *string
}

// Exams returns all exams, newest first.
func (s *Store) Exams() []models.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Exam, len(s.state.Exams))
	copy(out, s.state.Exams)
	return out
}

// AddExam creates an exam and inserts it at the head of the list.
func (s *Store) AddExam(ctx context.Context, exam models.Exam) (models.Exam, error) {
	exam.ID = newID()
	err := s.mutate(ctx, func(state *models.State) error {
		state.Exams = append([]models.Exam{exam}, state.Exams...)
		return nil
	})
	if err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

// UpdateExam merges the partial update into the exam.
func (s *Store) UpdateExam(ctx context.Context, id string, upd ExamUpdate) (models.Exam, error) {
	var updated models.Exam
	err := s.mutate(ctx, func(state *models.State) error {
		idx := lo.IndexOf(lo.Map(state.Exams, func(e models.Exam, _ int) string { return e.ID }), id)
		if idx < 0 {
			return apperrors.NewNotFoundError("exam", id)
		}
		exam := &state.Exams[idx]
		if upd.SubjectID != nil {
			exam.SubjectID = *upd.SubjectID
		}
		if upd.Title != nil {
			exam.Title = *upd.Title
		}
		if upd.Date != nil {
			exam.Date = *upd.Date
		}
		if upd.Difficulty != nil {
			exam.Difficulty = *upd.Difficulty
		}
		if upd.Notes != nil {
			exam.Notes = *upd.Notes
		}
		updated = *exam
		return nil
	})
	if err != nil {
		return models.Exam{}, err
	}
	return updated, nil
}

// DeleteExam removes the exam and cascades to its study tasks.
func (s *Store) DeleteExam(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("store")

	return s.mutate(ctx, func(state *models.State) error {
		before := len(state.Exams)
		state.Exams = lo.Filter(state.Exams, func(e models.Exam, _ int) bool { return e.ID != id })
		if len(state.Exams) == before {
			return apperrors.NewNotFoundError("exam", id)
		}
		tasksBefore := len(state.Tasks)
		state.Tasks = lo.Filter(state.Tasks, func(t models.StudyTask, _ int) bool { return t.ExamID != id })
		if removed := tasksBefore - len(state.Tasks); removed > 0 {
			log.Debug("exam delete cascaded to %d tasks: exam_id=%s", removed, id)
		}
		return nil
	})
}

// Tasks returns the current study plan in stored (date-ascending) order.
func (s *Store) Tasks() []models.StudyTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.StudyTask, len(s.state.Tasks))
	copy(out, s.state.Tasks)
	return out
}

// ToggleTask flips a task's completed flag.
func (s *Store) ToggleTask(ctx context.Context, id string) (models.StudyTask, error) {
	var updated models.StudyTask
	err := s.mutate(ctx, func(state *models.State) error {
		for i := range state.Tasks {
			if state.Tasks[i].ID == id {
				state.Tasks[i].Completed = !state.Tasks[i].Completed
				updated = state.Tasks[i]
				return nil
			}
		}
		return apperrors.NewNotFoundError("task", id)
	})
	if err != nil {
		return models.StudyTask{}, err
	}
	return updated, nil
}

// ReplaceStudyPlan swaps the whole task collection for a freshly generated
// one, assigning ids. A task that matches an existing one by (exam id, date)
// keeps its completed flag, so regenerating the plan does not wipe progress.
func (s *Store) ReplaceStudyPlan(ctx context.Context, tasks []models.StudyTask) ([]models.StudyTask, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	var replaced []models.StudyTask
	err := s.mutate(ctx, func(state *models.State) error {
		type taskKey struct {
			examID string
			date   string
		}
		completed := map[taskKey]bool{}
		for _, t := range state.Tasks {
			if t.Completed {
				completed[taskKey{t.ExamID, t.Date.String()}] = true
			}
		}

		replaced = make([]models.StudyTask, 0, len(tasks))
		for _, t := range tasks {
			t.ID = newID()
			if completed[taskKey{t.ExamID, t.Date.String()}] {
				t.Completed = true
			}
			replaced = append(replaced, t)
		}
		state.Tasks = replaced
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("study plan replaced: %d tasks", len(replaced))
	return replaced, nil
}
