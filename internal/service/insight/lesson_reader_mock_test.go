package insight

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ lessonReader = &lessonReaderMock{}

type lessonReaderMock struct {
	GetLastEndedFunc func(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error)

	calls struct {
		GetLastEnded []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockGetLastEnded sync.RWMutex
}

func (mock *lessonReaderMock) GetLastEnded(ctx context.Context, userID uuid.UUID) (*domain.Lesson, error) {
	if mock.GetLastEndedFunc == nil {
		panic("lessonReaderMock.GetLastEndedFunc: method is nil but lessonReader.GetLastEnded was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetLastEnded.Lock()
	mock.calls.GetLastEnded = append(mock.calls.GetLastEnded, callInfo)
	mock.lockGetLastEnded.Unlock()
	return mock.GetLastEndedFunc(ctx, userID)
}

func (mock *lessonReaderMock) GetLastEndedCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetLastEnded.RLock()
	calls := mock.calls.GetLastEnded
	mock.lockGetLastEnded.RUnlock()
	return calls
}
