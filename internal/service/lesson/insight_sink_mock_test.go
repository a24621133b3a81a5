package lesson

import (
	"context"
	"sync"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ insightSink = &insightSinkMock{}

type insightSinkMock struct {
	ProcessEndedLessonFunc func(ctx context.Context, l *domain.Lesson) (*domain.LessonAnalysis, error)

	calls struct {
		ProcessEndedLesson []struct {
			Ctx context.Context
			L   *domain.Lesson
		}
	}
	lockProcessEndedLesson sync.RWMutex
}

func (mock *insightSinkMock) ProcessEndedLesson(ctx context.Context, l *domain.Lesson) (*domain.LessonAnalysis, error) {
	if mock.ProcessEndedLessonFunc == nil {
		panic("insightSinkMock.ProcessEndedLessonFunc: method is nil but insightSink.ProcessEndedLesson was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Lesson
	}{Ctx: ctx, L: l}
	mock.lockProcessEndedLesson.Lock()
	mock.calls.ProcessEndedLesson = append(mock.calls.ProcessEndedLesson, callInfo)
	mock.lockProcessEndedLesson.Unlock()
	return mock.ProcessEndedLessonFunc(ctx, l)
}

func (mock *insightSinkMock) ProcessEndedLessonCalls() []struct {
	Ctx context.Context
	L   *domain.Lesson
} {
	mock.lockProcessEndedLesson.RLock()
	calls := mock.calls.ProcessEndedLesson
	mock.lockProcessEndedLesson.RUnlock()
	return calls
}
