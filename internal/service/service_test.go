package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type harness struct {
	store       *memStore
	statuses    *domain.StatusSet
	dispatcher  *recordingDispatcher
	now         time.Time
	catalog     *CatalogService
	pairs       *JobProblemService
	requests    *RequestService
	specialists *SpecialistService
	assignments *AssignmentService
	directory   *DirectoryService
	reports     *ReportService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:      newMemStore(),
		dispatcher: &recordingDispatcher{},
		now:        time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC),
	}
	h.store.clock = func() time.Time { return h.now }

	statuses, err := ResolveStatuses(context.Background(), memCatalog{h.store})
	require.NoError(t, err)
	h.statuses = statuses

	h.catalog = NewCatalogService(CatalogDependencies{CatalogRepo: memCatalog{h.store}, Statuses: statuses})
	h.pairs = NewJobProblemService(JobProblemDependencies{JobProblemRepo: memPairs{h.store}, Dispatcher: h.dispatcher})
	h.requests, err = NewRequestService(RequestDependencies{
		RequestRepo:    memRequests{h.store},
		SpecialistRepo: memSpecialists{h.store},
		Statuses:       statuses,
		Dispatcher:     h.dispatcher,
		Clock:          func() time.Time { return h.now },
	})
	require.NoError(t, err)
	h.specialists = NewSpecialistService(config.AuthConfig{BcryptCost: 4}, SpecialistDependencies{SpecialistRepo: memSpecialists{h.store}})
	h.assignments = NewAssignmentService(AssignmentDependencies{RequestRepo: memRequests{h.store}, Dispatcher: h.dispatcher})
	h.directory = NewDirectoryService(DirectoryDependencies{OfficeRepo: memOffices{h.store}, WorkerRepo: memWorkers{h.store}})
	h.reports, err = NewReportService(ReportDependencies{RequestRepo: memRequests{h.store}, Statuses: statuses, Location: time.UTC})
	require.NoError(t, err)
	return h
}

func (h *harness) createSpecialist(t *testing.T, jobTitleID int64, login string) *domain.Specialist {
	t.Helper()
	sp, err := h.specialists.Create(context.Background(), SpecialistCreateInput{
		JobTitleID: jobTitleID,
		Name:       "Specialist " + login,
		Mail:       login + "@example.com",
		Login:      login,
		Password:   "secret123",
	})
	require.NoError(t, err)
	return sp
}

func ptr[T any](v T) *T { return &v }
