package lesson

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ lessonRepo = &lessonRepoMock{}

type lessonRepoMock struct {
	CreateFunc            func(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error)
	GetByIDFunc           func(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error)
	GetActiveFunc         func(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error)
	IncrementCountersFunc func(ctx context.Context, lessonID uuid.UUID, messageDelta, tokenDelta int) (*domain.Lesson, error)
	EndFunc               func(ctx context.Context, lessonID uuid.UUID, endedAt time.Time) (*domain.Lesson, bool, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			L   *domain.Lesson
		}
		GetByID []struct {
			Ctx      context.Context
			LessonID uuid.UUID
		}
		GetActive []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		IncrementCounters []struct {
			Ctx          context.Context
			LessonID     uuid.UUID
			MessageDelta int
			TokenDelta   int
		}
		End []struct {
			Ctx      context.Context
			LessonID uuid.UUID
			EndedAt  time.Time
		}
	}
	lockCreate            sync.RWMutex
	lockGetByID           sync.RWMutex
	lockGetActive         sync.RWMutex
	lockIncrementCounters sync.RWMutex
	lockEnd               sync.RWMutex
}

func (mock *lessonRepoMock) Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error) {
	if mock.CreateFunc == nil {
		panic("lessonRepoMock.CreateFunc: method is nil but lessonRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Lesson
	}{Ctx: ctx, L: l}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, l)
}

func (mock *lessonRepoMock) CreateCalls() []struct {
	Ctx context.Context
	L   *domain.Lesson
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *lessonRepoMock) GetByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error) {
	if mock.GetByIDFunc == nil {
		panic("lessonRepoMock.GetByIDFunc: method is nil but lessonRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		LessonID uuid.UUID
	}{Ctx: ctx, LessonID: lessonID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, lessonID)
}

func (mock *lessonRepoMock) GetByIDCalls() []struct {
	Ctx      context.Context
	LessonID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *lessonRepoMock) GetActive(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error) {
	if mock.GetActiveFunc == nil {
		panic("lessonRepoMock.GetActiveFunc: method is nil but lessonRepo.GetActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetActive.Lock()
	mock.calls.GetActive = append(mock.calls.GetActive, callInfo)
	mock.lockGetActive.Unlock()
	return mock.GetActiveFunc(ctx, userID)
}

func (mock *lessonRepoMock) GetActiveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetActive.RLock()
	calls := mock.calls.GetActive
	mock.lockGetActive.RUnlock()
	return calls
}

func (mock *lessonRepoMock) IncrementCounters(ctx context.Context, lessonID uuid.UUID, messageDelta, tokenDelta int) (*domain.Lesson, error) {
	if mock.IncrementCountersFunc == nil {
		panic("lessonRepoMock.IncrementCountersFunc: method is nil but lessonRepo.IncrementCounters was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		LessonID     uuid.UUID
		MessageDelta int
		TokenDelta   int
	}{Ctx: ctx, LessonID: lessonID, MessageDelta: messageDelta, TokenDelta: tokenDelta}
	mock.lockIncrementCounters.Lock()
	mock.calls.IncrementCounters = append(mock.calls.IncrementCounters, callInfo)
	mock.lockIncrementCounters.Unlock()
	return mock.IncrementCountersFunc(ctx, lessonID, messageDelta, tokenDelta)
}

func (mock *lessonRepoMock) IncrementCountersCalls() []struct {
	Ctx          context.Context
	LessonID     uuid.UUID
	MessageDelta int
	TokenDelta   int
} {
	mock.lockIncrementCounters.RLock()
	calls := mock.calls.IncrementCounters
	mock.lockIncrementCounters.RUnlock()
	return calls
}

func (mock *lessonRepoMock) End(ctx context.Context, lessonID uuid.UUID, endedAt time.Time) (*domain.Lesson, bool, error) {
	if mock.EndFunc == nil {
		panic("lessonRepoMock.EndFunc: method is nil but lessonRepo.End was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		LessonID uuid.UUID
		EndedAt  time.Time
	}{Ctx: ctx, LessonID: lessonID, EndedAt: endedAt}
	mock.lockEnd.Lock()
	mock.calls.End = append(mock.calls.End, callInfo)
	mock.lockEnd.Unlock()
	return mock.EndFunc(ctx, lessonID, endedAt)
}

func (mock *lessonRepoMock) EndCalls() []struct {
	Ctx      context.Context
	LessonID uuid.UUID
	EndedAt  time.Time
} {
	mock.lockEnd.RLock()
	calls := mock.calls.End
	mock.lockEnd.RUnlock()
	return calls
}
