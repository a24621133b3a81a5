package lesson

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

var _ quotaGate = &quotaGateMock{}

type quotaGateMock struct {
	CanSendMessageFunc func(ctx context.Context, userID uuid.UUID) (domain.QuotaDecision, error)
	ConsumeMessageFunc func(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error)
	RecordTokensFunc   func(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error)

	calls struct {
		CanSendMessage []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ConsumeMessage []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Tokens int
		}
		RecordTokens []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Tokens int
		}
	}
	lockCanSendMessage sync.RWMutex
	lockConsumeMessage sync.RWMutex
	lockRecordTokens   sync.RWMutex
}

func (mock *quotaGateMock) CanSendMessage(ctx context.Context, userID uuid.UUID) (domain.QuotaDecision, error) {
	if mock.CanSendMessageFunc == nil {
		panic("quotaGateMock.CanSendMessageFunc: method is nil but quotaGate.CanSendMessage was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockCanSendMessage.Lock()
	mock.calls.CanSendMessage = append(mock.calls.CanSendMessage, callInfo)
	mock.lockCanSendMessage.Unlock()
	return mock.CanSendMessageFunc(ctx, userID)
}

func (mock *quotaGateMock) CanSendMessageCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCanSendMessage.RLock()
	calls := mock.calls.CanSendMessage
	mock.lockCanSendMessage.RUnlock()
	return calls
}

func (mock *quotaGateMock) ConsumeMessage(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error) {
	if mock.ConsumeMessageFunc == nil {
		panic("quotaGateMock.ConsumeMessageFunc: method is nil but quotaGate.ConsumeMessage was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Tokens int
	}{Ctx: ctx, UserID: userID, Tokens: tokens}
	mock.lockConsumeMessage.Lock()
	mock.calls.ConsumeMessage = append(mock.calls.ConsumeMessage, callInfo)
	mock.lockConsumeMessage.Unlock()
	return mock.ConsumeMessageFunc(ctx, userID, tokens)
}

func (mock *quotaGateMock) ConsumeMessageCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Tokens int
} {
	mock.lockConsumeMessage.RLock()
	calls := mock.calls.ConsumeMessage
	mock.lockConsumeMessage.RUnlock()
	return calls
}

func (mock *quotaGateMock) RecordTokens(ctx context.Context, userID uuid.UUID, tokens int) (*domain.QuotaRecord, error) {
	if mock.RecordTokensFunc == nil {
		panic("quotaGateMock.RecordTokensFunc: method is nil but quotaGate.RecordTokens was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Tokens int
	}{Ctx: ctx, UserID: userID, Tokens: tokens}
	mock.lockRecordTokens.Lock()
	mock.calls.RecordTokens = append(mock.calls.RecordTokens, callInfo)
	mock.lockRecordTokens.Unlock()
	return mock.RecordTokensFunc(ctx, userID, tokens)
}

func (mock *quotaGateMock) RecordTokensCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Tokens int
} {
	mock.lockRecordTokens.RLock()
	calls := mock.calls.RecordTokens
	mock.lockRecordTokens.RUnlock()
	return calls
}
