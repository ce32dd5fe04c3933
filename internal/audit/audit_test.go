package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"medialens/pkg/requestcontext"
)

type AuditSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *AuditSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestAuditSuite(t *testing.T) {
	suite.Run(t, new(AuditSuite))
}

func (s *AuditSuite) newEvent(subject string) Event {
	return Event{
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		CaseID:    uuid.New(),
		Subject:   subject,
		Action:    ActionCaseScreened,
		Decision:  "escalate",
		Score:     55,
		Reason:    "adverse findings require analyst review",
	}
}

func (s *AuditSuite) TestMemoryStoreAppendAndList() {
	store := NewMemoryStore()

	first := s.newEvent("John Smith")
	second := s.newEvent("John Smith")
	other := s.newEvent("Maria Garcia")
	s.Require().NoError(store.Append(s.ctx, first))
	s.Require().NoError(store.Append(s.ctx, second))
	s.Require().NoError(store.Append(s.ctx, other))

	events, err := store.ListBySubject(s.ctx, "John Smith")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(first.CaseID, events[0].CaseID)
	s.Equal(second.CaseID, events[1].CaseID)

	events, err = store.ListBySubject(s.ctx, "Unknown")
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *AuditSuite) TestPublisherStampsTimestamp() {
	store := NewMemoryStore()
	publisher := NewPublisher(store)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, now)

	event := s.newEvent("John Smith")
	event.Timestamp = time.Time{}
	s.Require().NoError(publisher.Emit(ctx, event))

	events, err := publisher.List(ctx, "John Smith")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(now, events[0].Timestamp)
}

func (s *AuditSuite) TestQueueAndWorkerDrain() {
	store := NewMemoryStore()
	queue := NewQueue(store, 8)
	worker := NewWorker(store, queue.Inbox(), nil)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	s.Require().NoError(queue.Append(s.ctx, s.newEvent("John Smith")))
	s.Require().NoError(queue.Append(s.ctx, s.newEvent("John Smith")))

	s.Eventually(func() bool {
		events, err := store.ListBySubject(s.ctx, "John Smith")
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func (s *AuditSuite) TestQueueRejectsWhenFull() {
	store := NewMemoryStore()
	queue := NewQueue(store, 1)

	s.Require().NoError(queue.Append(s.ctx, s.newEvent("John Smith")))
	s.Require().Error(queue.Append(s.ctx, s.newEvent("John Smith")))
}
