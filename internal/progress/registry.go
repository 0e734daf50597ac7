package progress

// Registry binds a (username, job_id) identity to a task store, giving
// callers a small cloneable session handle instead of threading three
// values through every function signature, per §4.10.
type Registry struct {
	username string
	jobID    string
	store    TaskStore
}

func NewRegistry(username, jobID string, store TaskStore) *Registry {
	return &Registry{username: username, jobID: jobID, store: store}
}

func (r *Registry) Username() string { return r.username }

func (r *Registry) JobID() string { return r.jobID }

// Register stores task under this registry's (username, job_id).
func (r *Registry) Register(task *Task) {
	r.store.Put(r.username, r.jobID, task)
}

// Lookup retrieves the task registered under this registry's identity.
func (r *Registry) Lookup() (*Task, bool) {
	return r.store.Get(r.username, r.jobID)
}

// Release removes this registry's task from the store.
func (r *Registry) Release() {
	r.store.Remove(r.username, r.jobID)
}

// WithJobID clones this registry for a different job under the same user
// and store, the "cloneable session handle" §4.10 describes.
func (r *Registry) WithJobID(jobID string) *Registry {
	return &Registry{username: r.username, jobID: jobID, store: r.store}
}
