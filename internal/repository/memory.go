package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"job_portal/internal/model"
)

// MemoryStore is a process-local Store used for development
// (DATABASE_URL=memory) and tests. It enforces the same uniqueness and
// reference rules as the PostgreSQL schema.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users  map[int64]model.User
	jobs   map[int64]model.Job
	apps   map[int64]model.Application
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[int64]model.User),
		jobs:  make(map[int64]model.Job),
		apps:  make(map[int64]model.Application),
	}
}

func (s *MemoryStore) Users() UserRepository               { return memUsers{s} }
func (s *MemoryStore) Jobs() JobRepository                 { return memJobs{s} }
func (s *MemoryStore) Applications() ApplicationRepository { return memApplications{s} }

func (s *MemoryStore) Ping(context.Context) error { return nil }

// InTx serializes units of work and restores a snapshot when fn fails.
func (s *MemoryStore) InTx(ctx context.Context, fn func(Store) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()
	return fn(s)
}

type memSnapshot struct {
	users  map[int64]model.User
	jobs   map[int64]model.Job
	apps   map[int64]model.Application
	nextID int64
}

func (s *MemoryStore) snapshot() memSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := memSnapshot{
		users:  make(map[int64]model.User, len(s.users)),
		jobs:   make(map[int64]model.Job, len(s.jobs)),
		apps:   make(map[int64]model.Application, len(s.apps)),
		nextID: s.nextID,
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.jobs {
		snap.jobs[k] = v
	}
	for k, v := range s.apps {
		snap.apps[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.jobs, s.apps, s.nextID = snap.users, snap.jobs, snap.apps, snap.nextID
}

// must hold s.mu
func (s *MemoryStore) newID() int64 {
	s.nextID++
	return s.nextID
}

type memUsers struct{ s *MemoryStore }

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	user.ID = r.s.newID()
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) UpdateName(_ context.Context, id int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return ErrReferenceNotFound
	}
	u.Name = name
	r.s.users[id] = u
	return nil
}

func (r memUsers) CountByRole(_ context.Context, role string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memJobs struct{ s *MemoryStore }

func (r memJobs) Create(_ context.Context, job *model.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[job.EmployerID]; !ok {
		return ErrReferenceNotFound
	}
	job.ID = r.s.newID()
	r.s.jobs[job.ID] = *job
	return nil
}

func (r memJobs) FindByID(_ context.Context, id int64) (*model.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, nil
	}
	j.Company = r.s.users[j.EmployerID].Company
	return &j, nil
}

func (r memJobs) List(_ context.Context, limit int) ([]model.Job, error) {
	jobs := r.filter(func(model.Job) bool { return true })
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (r memJobs) FindByEmployer(_ context.Context, employerID int64) ([]model.Job, error) {
	return r.filter(func(j model.Job) bool { return j.EmployerID == employerID }), nil
}

func (r memJobs) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.jobs)), nil
}

func (r memJobs) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	return int64(len(r.filter(func(j model.Job) bool { return !j.CreatedAt.Before(since) }))), nil
}

func (r memJobs) filter(keep func(model.Job) bool) []model.Job {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	jobs := []model.Job{}
	for _, j := range r.s.jobs {
		if keep(j) {
			j.Company = r.s.users[j.EmployerID].Company
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(a, b int) bool {
		if !jobs[a].CreatedAt.Equal(jobs[b].CreatedAt) {
			return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
		}
		return jobs[a].ID > jobs[b].ID
	})
	return jobs
}

type memApplications struct{ s *MemoryStore }

func (r memApplications) Create(_ context.Context, app *model.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[app.JobID]; !ok {
		return ErrReferenceNotFound
	}
	if _, ok := r.s.users[app.UserID]; !ok {
		return ErrReferenceNotFound
	}
	app.ID = r.s.newID()
	r.s.apps[app.ID] = *app
	return nil
}

func (r memApplications) FindByJob(_ context.Context, jobID int64) ([]model.ApplicationDetail, error) {
	return r.filter(func(a model.Application) bool { return a.JobID == jobID }), nil
}

func (r memApplications) FindByUser(_ context.Context, userID int64) ([]model.ApplicationDetail, error) {
	return r.filter(func(a model.Application) bool { return a.UserID == userID }), nil
}

func (r memApplications) filter(keep func(model.Application) bool) []model.ApplicationDetail {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	apps := []model.ApplicationDetail{}
	for _, a := range r.s.apps {
		if !keep(a) {
			continue
		}
		u := r.s.users[a.UserID]
		apps = append(apps, model.ApplicationDetail{
			Application:    a,
			JobTitle:       r.s.jobs[a.JobID].Title,
			ApplicantName:  u.Name,
			ApplicantEmail: u.Email,
		})
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].AppliedAt.After(apps[j].AppliedAt)
		}
		return apps[i].ID > apps[j].ID
	})
	return apps
}
