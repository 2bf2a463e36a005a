package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// memStore is an in-memory stand-in for the relational schema, shared by the
// fake repositories below.
type memStore struct {
	mu          sync.Mutex
	catalogs    map[domain.CatalogKind]map[int64]string
	pairLast    int64
	nextID      map[string]int64
	requests    map[int64]domain.Request
	specialists map[int64]domain.Specialist
	resolves    map[int64]map[int64]bool // problem id -> specialist ids
	workers     map[int64]domain.Worker
	offices     map[int64]domain.Office
	failWith    error
	clock       func() time.Time
}

func newMemStore() *memStore {
	s := &memStore{
		catalogs:    map[domain.CatalogKind]map[int64]string{},
		nextID:      map[string]int64{},
		requests:    map[int64]domain.Request{},
		specialists: map[int64]domain.Specialist{},
		resolves:    map[int64]map[int64]bool{},
		workers:     map[int64]domain.Worker{},
		offices:     map[int64]domain.Office{},
		clock:       time.Now,
	}
	for _, kind := range domain.CatalogKinds {
		s.catalogs[kind] = map[int64]string{}
	}
	s.catalogs[domain.KindStatus][1] = domain.StatusNameSubmitted
	s.catalogs[domain.KindStatus][2] = domain.StatusNameInProgress
	s.catalogs[domain.KindStatus][3] = domain.StatusNameCompleted
	s.nextID["status"] = 3
	return s
}

func (s *memStore) next(seq string) int64 {
	s.nextID[seq]++
	return s.nextID[seq]
}

// catalog

type memCatalog struct{ s *memStore }

func (r memCatalog) List(_ context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	entries := []domain.CatalogEntry{}
	for id, name := range r.s.catalogs[kind] {
		entries = append(entries, domain.CatalogEntry{ID: id, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (r memCatalog) GetName(_ context.Context, kind domain.CatalogKind, id int64) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	name, ok := r.s.catalogs[kind][id]
	if !ok {
		return "", apperrors.NewNotFound(kind.Label(), nil)
	}
	return name, nil
}

func (r memCatalog) FindID(_ context.Context, kind domain.CatalogKind, name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, n := range r.s.catalogs[kind] {
		if n == name {
			return id, nil
		}
	}
	return 0, apperrors.NewNotFound(kind.Label(), nil)
}

func (r memCatalog) Create(_ context.Context, kind domain.CatalogKind, name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := r.s.next(string(kind))
	r.s.catalogs[kind][id] = name
	return id, nil
}

func (r memCatalog) Rename(_ context.Context, kind domain.CatalogKind, id int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalogs[kind][id]; !ok {
		return apperrors.NewNotFound(kind.Label(), nil)
	}
	r.s.catalogs[kind][id] = name
	return nil
}

func (r memCatalog) Delete(_ context.Context, kind domain.CatalogKind, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalogs[kind][id]; !ok {
		return apperrors.NewNotFound(kind.Label(), nil)
	}
	delete(r.s.catalogs[kind], id)
	if kind == domain.KindDepartment {
		for wid, w := range r.s.workers {
			if w.DepartmentID != nil && *w.DepartmentID == id {
				w.DepartmentID = nil
				r.s.workers[wid] = w
			}
		}
	}
	return nil
}

func (r memCatalog) CountReferences(_ context.Context, kind domain.CatalogKind, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.countLocked(kind, id), nil
}

func (r memCatalog) DeleteIfUnreferenced(_ context.Context, kind domain.CatalogKind, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalogs[kind][id]; !ok {
		return apperrors.NewNotFound(kind.Label(), nil)
	}
	if refs := r.countLocked(kind, id); refs > 0 {
		return apperrors.NewConflict(kind.Label()+" is still referenced", map[string]any{"id": id, "references": refs})
	}
	delete(r.s.catalogs[kind], id)
	return nil
}

func (r memCatalog) countLocked(kind domain.CatalogKind, id int64) int64 {
	var count int64
	switch kind {
	case domain.KindStatus:
		for _, req := range r.s.requests {
			if req.StatusID == id {
				count++
			}
		}
	case domain.KindDepartment:
		for _, w := range r.s.workers {
			if w.DepartmentID != nil && *w.DepartmentID == id {
				count++
			}
		}
	}
	return count
}

// pairs

type memPairs struct{ s *memStore }

func (r memPairs) CreatePair(_ context.Context, jobTitle, problemType string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := r.s.pairLast
	for existing := range r.s.catalogs[domain.KindJobTitle] {
		id = max(id, existing)
	}
	for existing := range r.s.catalogs[domain.KindProblemType] {
		id = max(id, existing)
	}
	id++
	r.s.catalogs[domain.KindJobTitle][id] = jobTitle
	r.s.catalogs[domain.KindProblemType][id] = problemType
	r.s.pairLast = id
	return id, nil
}

func (r memPairs) UpdatePair(_ context.Context, id int64, jobTitle, problemType string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, okJob := r.s.catalogs[domain.KindJobTitle][id]
	_, okProblem := r.s.catalogs[domain.KindProblemType][id]
	if !okJob || !okProblem {
		return apperrors.NewNotFound("job/problem pair", nil)
	}
	r.s.catalogs[domain.KindJobTitle][id] = jobTitle
	r.s.catalogs[domain.KindProblemType][id] = problemType
	return nil
}

func (r memPairs) DeletePair(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, okJob := r.s.catalogs[domain.KindJobTitle][id]
	_, okProblem := r.s.catalogs[domain.KindProblemType][id]
	switch {
	case !okJob && !okProblem:
		return apperrors.NewNotFound("job/problem pair", nil)
	case !okJob || !okProblem:
		return apperrors.NewConflict("job/problem pair is incomplete", nil)
	}
	delete(r.s.catalogs[domain.KindJobTitle], id)
	delete(r.s.catalogs[domain.KindProblemType], id)
	return nil
}

func (r memPairs) Get(_ context.Context, id int64) (*domain.JobProblem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pair := &domain.JobProblem{ID: id}
	if name, ok := r.s.catalogs[domain.KindJobTitle][id]; ok {
		pair.JobTitle = &domain.CatalogEntry{ID: id, Name: name}
	}
	if name, ok := r.s.catalogs[domain.KindProblemType][id]; ok {
		pair.ProblemType = &domain.CatalogEntry{ID: id, Name: name}
	}
	if pair.JobTitle == nil && pair.ProblemType == nil {
		return nil, apperrors.NewNotFound("job/problem pair", nil)
	}
	return pair, nil
}

func (r memPairs) List(ctx context.Context) ([]domain.JobProblem, error) {
	entries, _ := memCatalog(r).List(ctx, domain.KindJobTitle)
	var pairs []domain.JobProblem
	for _, e := range entries {
		pair, _ := r.Get(ctx, e.ID)
		if pair.Complete() {
			pairs = append(pairs, *pair)
		}
	}
	return pairs, nil
}

// requests

type memRequests struct{ s *memStore }

func (r memRequests) Create(_ context.Context, problemTypeID int64, description string, submittedStatusID int64) (*domain.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalogs[domain.KindProblemType][problemTypeID]; !ok {
		return nil, apperrors.NewNotFound("problem type", nil)
	}
	req := domain.Request{
		ID:            r.s.next("request"),
		ProblemTypeID: problemTypeID,
		StatusID:      submittedStatusID,
		Description:   description,
		SentAt:        r.s.clock().UTC(),
	}
	r.s.requests[req.ID] = req
	return &req, nil
}

func (r memRequests) Get(_ context.Context, id int64) (*domain.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("request", nil)
	}
	return &req, nil
}

func (r memRequests) sorted(keep func(domain.Request) bool) []domain.Request {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Request{}
	for _, req := range r.s.requests {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memRequests) ListAll(_ context.Context) ([]domain.Request, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	return r.sorted(func(domain.Request) bool { return true }), nil
}

func (r memRequests) ListBySpecialist(_ context.Context, specialistID int64) ([]domain.Request, error) {
	return r.sorted(func(req domain.Request) bool {
		return req.SpecialistID != nil && *req.SpecialistID == specialistID
	}), nil
}

func (r memRequests) ListCompleted(_ context.Context, completedStatusID int64) ([]domain.Request, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	return r.sorted(func(req domain.Request) bool {
		return req.StatusID == completedStatusID && req.CompletedAt != nil
	}), nil
}

func (r memRequests) UpdateStatus(_ context.Context, id int64, update domain.StatusUpdate, statuses *domain.StatusSet, now time.Time) (*domain.Request, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, 0, apperrors.NewNotFound("request", nil)
	}
	if _, ok := r.s.catalogs[domain.KindStatus][update.StatusID]; !ok {
		return nil, 0, apperrors.NewNotFound("status", nil)
	}
	previous := req.StatusID
	if err := req.ApplyStatusUpdate(update, statuses.Stage(update.StatusID), now); err != nil {
		return nil, 0, err
	}
	r.s.requests[id] = req
	return &req, previous, nil
}

func (r memRequests) Assign(_ context.Context, requestID, specialistID int64) (*domain.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[requestID]
	if !ok {
		return nil, apperrors.NewNotFound("request", nil)
	}
	if _, ok := r.s.specialists[specialistID]; !ok {
		return nil, apperrors.NewNotFound("specialist", nil)
	}
	if !r.s.resolves[req.ProblemTypeID][specialistID] {
		return nil, apperrors.NewConflict("specialist does not resolve this problem type", nil)
	}
	req.SpecialistID = &specialistID
	r.s.requests[requestID] = req
	return &req, nil
}

func (r memRequests) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[id]; !ok {
		return apperrors.NewNotFound("request", nil)
	}
	delete(r.s.requests, id)
	return nil
}

func (r memRequests) CountByProblemType(_ context.Context) ([]domain.ProblemTypeCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byName := map[string]int64{}
	for _, req := range r.s.requests {
		byName[r.s.catalogs[domain.KindProblemType][req.ProblemTypeID]]++
	}
	out := []domain.ProblemTypeCount{}
	for name, count := range byName {
		out = append(out, domain.ProblemTypeCount{ProblemType: name, RequestCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProblemType < out[j].ProblemType })
	return out, nil
}

// insert stores a request as-is, for report fixtures.
func (r memRequests) insert(req domain.Request) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.ID == 0 {
		req.ID = r.s.next("request")
	}
	r.s.requests[req.ID] = req
}

// specialists

type memSpecialists struct{ s *memStore }

func (r memSpecialists) Create(_ context.Context, sp *domain.Specialist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalogs[domain.KindJobTitle][sp.JobTitleID]; !ok {
		return apperrors.NewNotFound("job title", nil)
	}
	for _, existing := range r.s.specialists {
		if existing.Login == sp.Login {
			return apperrors.NewConflict("duplicate value", nil)
		}
	}
	if _, ok := r.s.catalogs[domain.KindProblemType][sp.JobTitleID]; !ok {
		return apperrors.NewConflict("problem type paired with job title is missing", nil)
	}
	sp.ID = r.s.next("specialist")
	r.s.specialists[sp.ID] = *sp
	if r.s.resolves[sp.JobTitleID] == nil {
		r.s.resolves[sp.JobTitleID] = map[int64]bool{}
	}
	r.s.resolves[sp.JobTitleID][sp.ID] = true
	return nil
}

func (r memSpecialists) Get(_ context.Context, id int64) (*domain.Specialist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.specialists[id]
	if !ok {
		return nil, apperrors.NewNotFound("specialist", nil)
	}
	return &sp, nil
}

func (r memSpecialists) List(_ context.Context) ([]domain.Specialist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Specialist{}
	for _, sp := range r.s.specialists {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSpecialists) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.specialists[id]; !ok {
		return apperrors.NewNotFound("specialist", nil)
	}
	delete(r.s.specialists, id)
	for _, set := range r.s.resolves {
		delete(set, id)
	}
	for rid, req := range r.s.requests {
		if req.SpecialistID != nil && *req.SpecialistID == id {
			req.SpecialistID = nil
			r.s.requests[rid] = req
		}
	}
	return nil
}

func (r memSpecialists) JobTitleName(_ context.Context, id int64) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.specialists[id]
	if !ok {
		return "", apperrors.NewNotFound("specialist", nil)
	}
	return r.s.catalogs[domain.KindJobTitle][sp.JobTitleID], nil
}

func (r memSpecialists) ListResolvers(ctx context.Context, problemTypeID int64) ([]domain.Specialist, error) {
	all, _ := r.List(ctx)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Specialist{}
	for _, sp := range all {
		if r.s.resolves[problemTypeID][sp.ID] {
			out = append(out, sp)
		}
	}
	return out, nil
}

// directory

type memOffices struct{ s *memStore }

func (r memOffices) Create(_ context.Context, office *domain.Office) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.offices[office.Number]; ok {
		return apperrors.NewConflict("duplicate value", nil)
	}
	r.s.offices[office.Number] = *office
	return nil
}

func (r memOffices) Get(_ context.Context, number int64) (*domain.Office, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	office, ok := r.s.offices[number]
	if !ok {
		return nil, apperrors.NewNotFound("office", nil)
	}
	return &office, nil
}

func (r memOffices) List(_ context.Context) ([]domain.Office, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Office{}
	for _, office := range r.s.offices {
		out = append(out, office)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r memOffices) Update(_ context.Context, number int64, office *domain.Office) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.offices[number]; !ok {
		return apperrors.NewNotFound("office", nil)
	}
	delete(r.s.offices, number)
	r.s.offices[office.Number] = *office
	return nil
}

func (r memOffices) Delete(_ context.Context, number int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.offices[number]; !ok {
		return apperrors.NewNotFound("office", nil)
	}
	delete(r.s.offices, number)
	return nil
}

type memWorkers struct{ s *memStore }

func (r memWorkers) withDepartment(w domain.Worker) domain.Worker {
	w.DepartmentName = nil
	if w.DepartmentID != nil {
		if name, ok := r.s.catalogs[domain.KindDepartment][*w.DepartmentID]; ok {
			w.DepartmentName = &name
		}
	}
	return w
}

func (r memWorkers) checkDepartment(w *domain.Worker) error {
	if w.DepartmentID == nil {
		return nil
	}
	if _, ok := r.s.catalogs[domain.KindDepartment][*w.DepartmentID]; !ok {
		return apperrors.NewNotFound("department", nil)
	}
	return nil
}

func (r memWorkers) Create(_ context.Context, w *domain.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkDepartment(w); err != nil {
		return err
	}
	w.ID = r.s.next("worker")
	r.s.workers[w.ID] = *w
	return nil
}

func (r memWorkers) Get(_ context.Context, id int64) (*domain.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workers[id]
	if !ok {
		return nil, apperrors.NewNotFound("worker", nil)
	}
	w = r.withDepartment(w)
	return &w, nil
}

func (r memWorkers) List(_ context.Context) ([]domain.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Worker{}
	for _, w := range r.s.workers {
		out = append(out, r.withDepartment(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memWorkers) Update(_ context.Context, w *domain.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workers[w.ID]; !ok {
		return apperrors.NewNotFound("worker", nil)
	}
	if err := r.checkDepartment(w); err != nil {
		return err
	}
	r.s.workers[w.ID] = *w
	return nil
}

func (r memWorkers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workers[id]; !ok {
		return apperrors.NewNotFound("worker", nil)
	}
	delete(r.s.workers, id)
	return nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}
