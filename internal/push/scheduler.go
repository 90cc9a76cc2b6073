package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

// notifier abstracts Service so the scheduler can be tested without a
// real push endpoint.
type notifier interface {
	Send(sub *model.PushSubscription, payload Payload) error
}

// TaskSource lists incomplete tasks due inside a time window, with the
// owning user id for each task.
type TaskSource interface {
	ListDueBetween(from, to time.Time) ([]model.Task, []int64, error)
}

// SubscriptionSource resolves a user's push subscriptions and drops
// endpoints the push service reports as gone.
type SubscriptionSource interface {
	ListForUser(userID int64) ([]model.PushSubscription, error)
	DeleteByEndpoint(endpoint string) error
}

// Scheduler periodically scans for tasks coming due and notifies their
// owners. Each task is covered by exactly one scan window, so a task
// gets at most one reminder.
type Scheduler struct {
	mu       sync.Mutex
	service  notifier
	tasks    TaskSource
	subs     SubscriptionSource
	logger   *slog.Logger
	interval time.Duration
	lead     time.Duration

	windowFrom time.Time
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewScheduler creates a reminder scheduler. Reminders fire lead time
// before a task's due time.
func NewScheduler(svc notifier, tasks TaskSource, subs SubscriptionSource, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:  svc,
		tasks:    tasks,
		subs:     subs,
		logger:   logger.With("component", "push_scheduler"),
		interval: 60 * time.Second,
		lead:     15 * time.Minute,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.windowFrom = time.Now().UTC().Add(s.lead)
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(time.Now().UTC())
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick(now time.Time) {
	s.mu.Lock()
	from := s.windowFrom
	to := now.Add(s.lead)
	if !to.After(from) {
		s.mu.Unlock()
		return
	}
	s.windowFrom = to
	s.mu.Unlock()

	tasks, owners, err := s.tasks.ListDueBetween(from, to)
	if err != nil {
		s.logger.Error("list due tasks", "error", err)
		return
	}

	for i, task := range tasks {
		s.remind(&task, owners[i])
	}
}

func (s *Scheduler) remind(task *model.Task, ownerID int64) {
	subs, err := s.subs.ListForUser(ownerID)
	if err != nil {
		s.logger.Error("list subscriptions", "user_id", ownerID, "error", err)
		return
	}

	minutes := int(time.Until(*task.DueAt).Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	payload := Payload{
		Title: "Task due soon",
		Body:  fmt.Sprintf("%s is due in %d minutes", task.Title, minutes),
		URL:   fmt.Sprintf("/boards/%d", task.BoardID),
		Tag:   fmt.Sprintf("task-due-%d", task.ID),
	}

	// Pushes are independent HTTP calls to remote endpoints; fan them out
	// rather than paying each endpoint's latency in sequence.
	var g errgroup.Group
	for _, sub := range subs {
		g.Go(func() error {
			if err := s.service.Send(&sub, payload); err != nil {
				if errors.Is(err, ErrExpired) {
					if err := s.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
						s.logger.Error("delete expired subscription", "error", err)
					}
				} else {
					s.logger.Error("send reminder", "task_id", task.ID, "error", err)
				}
			}
			return nil
		})
	}
	g.Wait()
}
