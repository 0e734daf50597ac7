package progress

import (
	"time"

	"gorm.io/gorm"
)

// TaskRecord is the relational row a GormTaskStore persists: operational
// bookkeeping only (§4.10) — never graph state.
type TaskRecord struct {
	ID          uint   `gorm:"primarykey"`
	Username    string `gorm:"uniqueIndex:idx_username_job"`
	JobID       string `gorm:"uniqueIndex:idx_username_job"`
	Description string
	Status      int
	StartedAt   *time.Time
	FinishedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TaskRecord) TableName() string { return "tasks" }

// GormTaskStore persists task summaries (username, job_id, description,
// status, timestamps) via GORM, so task history survives process
// restarts. It does not reconstruct the subtask tree on Get/List — only
// the root-level bookkeeping fields a relational row can hold.
type GormTaskStore struct {
	db *gorm.DB
}

func NewGormTaskStore(db *gorm.DB) *GormTaskStore {
	return &GormTaskStore{db: db}
}

// Migrate creates the tasks table if it does not already exist.
func (s *GormTaskStore) Migrate() error {
	return s.db.AutoMigrate(&TaskRecord{})
}

func (s *GormTaskStore) Put(username, jobID string, task *Task) {
	rec := TaskRecord{
		Username:    username,
		JobID:       jobID,
		Description: task.Description(),
		Status:      int(task.Status()),
		StartedAt:   task.StartedAt(),
		FinishedAt:  task.FinishedAt(),
	}
	// Instrumentation must not crash the data path: failures here are
	// swallowed, matching the propagation policy for task-store writes.
	_ = s.db.Where("username = ? AND job_id = ?", username, jobID).
		Assign(rec).
		FirstOrCreate(&TaskRecord{}).Error
}

func (s *GormTaskStore) Get(username, jobID string) (*Task, bool) {
	var rec TaskRecord
	if err := s.db.Where("username = ? AND job_id = ?", username, jobID).First(&rec).Error; err != nil {
		return nil, false
	}
	return recordToTask(rec), true
}

func (s *GormTaskStore) Remove(username, jobID string) {
	s.db.Where("username = ? AND job_id = ?", username, jobID).Delete(&TaskRecord{})
}

func (s *GormTaskStore) Clear(username string) {
	s.db.Where("username = ?", username).Delete(&TaskRecord{})
}

func (s *GormTaskStore) List(username string) []*Task {
	var recs []TaskRecord
	if err := s.db.Where("username = ?", username).Find(&recs).Error; err != nil {
		return nil
	}
	out := make([]*Task, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordToTask(rec))
	}
	return out
}

func recordToTask(rec TaskRecord) *Task {
	t := NewTask(rec.Description)
	t.status = Status(rec.Status)
	t.startedAt = rec.StartedAt
	t.finishedAt = rec.FinishedAt
	return t
}
