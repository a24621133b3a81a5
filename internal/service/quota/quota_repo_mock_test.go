package quota

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ quotaRepo = &quotaRepoMock{}

type quotaRepoMock struct {
	GetFunc         func(ctx context.Context, userID uuid.UUID) (*domain.QuotaRecord, error)
	CreateFunc      func(ctx context.Context, rec *domain.QuotaRecord) (*domain.QuotaRecord, error)
	RecordUsageFunc func(ctx context.Context, userID uuid.UUID, messageDelta, tokenDelta int) (*domain.QuotaRecord, error)
	ResetDueFunc    func(ctx context.Context, now time.Time) (int64, error)
	ResetIfDueFunc  func(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			Rec *domain.QuotaRecord
		}
		RecordUsage []struct {
			Ctx          context.Context
			UserID       uuid.UUID
			MessageDelta int
			TokenDelta   int
		}
		ResetDue []struct {
			Ctx context.Context
			Now time.Time
		}
		ResetIfDue []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Now    time.Time
		}
	}
	lockGet         sync.RWMutex
	lockCreate      sync.RWMutex
	lockRecordUsage sync.RWMutex
	lockResetDue    sync.RWMutex
	lockResetIfDue  sync.RWMutex
}

func (mock *quotaRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.QuotaRecord, error) {
	if mock.GetFunc == nil {
		panic("quotaRepoMock.GetFunc: method is nil but quotaRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *quotaRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *quotaRepoMock) Create(ctx context.Context, rec *domain.QuotaRecord) (*domain.QuotaRecord, error) {
	if mock.CreateFunc == nil {
		panic("quotaRepoMock.CreateFunc: method is nil but quotaRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.QuotaRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *quotaRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rec *domain.QuotaRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *quotaRepoMock) RecordUsage(ctx context.Context, userID uuid.UUID, messageDelta, tokenDelta int) (*domain.QuotaRecord, error) {
	if mock.RecordUsageFunc == nil {
		panic("quotaRepoMock.RecordUsageFunc: method is nil but quotaRepo.RecordUsage was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		UserID       uuid.UUID
		MessageDelta int
		TokenDelta   int
	}{Ctx: ctx, UserID: userID, MessageDelta: messageDelta, TokenDelta: tokenDelta}
	mock.lockRecordUsage.Lock()
	mock.calls.RecordUsage = append(mock.calls.RecordUsage, callInfo)
	mock.lockRecordUsage.Unlock()
	return mock.RecordUsageFunc(ctx, userID, messageDelta, tokenDelta)
}

func (mock *quotaRepoMock) RecordUsageCalls() []struct {
	Ctx          context.Context
	UserID       uuid.UUID
	MessageDelta int
	TokenDelta   int
} {
	mock.lockRecordUsage.RLock()
	calls := mock.calls.RecordUsage
	mock.lockRecordUsage.RUnlock()
	return calls
}

func (mock *quotaRepoMock) ResetDue(ctx context.Context, now time.Time) (int64, error) {
	if mock.ResetDueFunc == nil {
		panic("quotaRepoMock.ResetDueFunc: method is nil but quotaRepo.ResetDue was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockResetDue.Lock()
	mock.calls.ResetDue = append(mock.calls.ResetDue, callInfo)
	mock.lockResetDue.Unlock()
	return mock.ResetDueFunc(ctx, now)
}

func (mock *quotaRepoMock) ResetDueCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockResetDue.RLock()
	calls := mock.calls.ResetDue
	mock.lockResetDue.RUnlock()
	return calls
}

func (mock *quotaRepoMock) ResetIfDue(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	if mock.ResetIfDueFunc == nil {
		panic("quotaRepoMock.ResetIfDueFunc: method is nil but quotaRepo.ResetIfDue was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Now    time.Time
	}{Ctx: ctx, UserID: userID, Now: now}
	mock.lockResetIfDue.Lock()
	mock.calls.ResetIfDue = append(mock.calls.ResetIfDue, callInfo)
	mock.lockResetIfDue.Unlock()
	return mock.ResetIfDueFunc(ctx, userID, now)
}

func (mock *quotaRepoMock) ResetIfDueCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Now    time.Time
} {
	mock.lockResetIfDue.RLock()
	calls := mock.calls.ResetIfDue
	mock.lockResetIfDue.RUnlock()
	return calls
}
