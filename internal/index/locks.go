package index

import "sync"

// ProjectLocks hands out one RWMutex per project ID. Queries take the read
// side; the sync manager holds the write side across each mutation and
// across a whole rebuild, so a project's readers never observe an in-flight
// rebuild window. Locks for different projects are independent.
type ProjectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewProjectLocks creates an empty registry.
func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{locks: make(map[string]*sync.RWMutex)}
}

// Get returns the lock for projectID, creating it on first use.
func (l *ProjectLocks) Get(projectID string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[projectID]
	if !ok {
		lock = &sync.RWMutex{}
		l.locks[projectID] = lock
	}
	return lock
}
