package service

import (
	"context"
	"strings"
	"time"

	"footfall-service/internal/aggregate"
	"footfall-service/internal/model"
	"footfall-service/internal/repository"
	"footfall-service/internal/timeslot"
)

// TrackerService records individual traffic observations. The bucket of an
// event is taken from the server clock when it is recorded and never
// recomputed.
type TrackerService struct {
	traffic  repository.TrafficEventStore
	branches repository.BranchStore
	now      func() time.Time
}

func NewTrackerService(store repository.Store) *TrackerService {
	return &TrackerService{
		traffic:  store.Traffic,
		branches: store.Branches,
		now:      time.Now,
	}
}

type RecordEventInput struct {
	BranchID  string
	Group     model.EventGroup
	Type      string
	Direction *string
	Cups      int
	Age       string
	Career    string
}

func (s *TrackerService) Record(ctx context.Context, principal model.Principal, input RecordEventInput) (*model.TrafficEvent, error) {
	branchID, err := resolveBranch(ctx, s.branches, principal, input.BranchID)
	if err != nil {
		return nil, err
	}
	if !model.ValidEventType(input.Group, input.Type) {
		return nil, ErrInvalidInput
	}

	at := s.now()
	bucket := timeslot.Of(at)
	event := &model.TrafficEvent{
		BranchID:  branchID,
		Date:      bucket.Date,
		Period:    bucket.Period,
		Slot:      bucket.Slot,
		Group:     input.Group,
		Type:      input.Type,
		CreatedBy: principal.Username,
		CreatedAt: at,
	}

	switch input.Group {
	case model.GroupProduct:
		if input.Type == model.TypeDrink {
			if input.Cups < 1 {
				return nil, ErrInvalidInput
			}
			event.Cups = input.Cups
		}
	case model.GroupVehicle:
		if input.Direction != nil {
			direction := strings.TrimSpace(*input.Direction)
			if direction != model.DirectionLeft && direction != model.DirectionRight {
				return nil, ErrInvalidInput
			}
			event.Direction = &direction
		}
	case model.GroupCustomer:
		event.Age = strings.TrimSpace(input.Age)
		event.Career = strings.TrimSpace(input.Career)
	}

	if err := s.traffic.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UndoLast removes the most recent event of the branch on today's date.
func (s *TrackerService) UndoLast(ctx context.Context, principal model.Principal, branchID string) (*model.TrafficEvent, error) {
	branchID, err := resolveBranch(ctx, s.branches, principal, branchID)
	if err != nil {
		return nil, err
	}

	event, err := s.traffic.Latest(ctx, branchID, timeslot.Date(s.now()))
	if err != nil {
		return nil, storeError(err)
	}
	if err := s.traffic.Delete(ctx, event.ID); err != nil {
		return nil, storeError(err)
	}
	return event, nil
}

type LiveTally struct {
	BranchID string          `json:"branch_id"`
	Bucket   timeslot.Bucket `json:"bucket"`
	Tally    aggregate.Tally `json:"tally"`
}

// Live counts the branch's events inside the bucket the clock is in now.
func (s *TrackerService) Live(ctx context.Context, principal model.Principal, branchID string) (*LiveTally, error) {
	branchID, err := resolveBranch(ctx, s.branches, principal, branchID)
	if err != nil {
		return nil, err
	}

	bucket := timeslot.Of(s.now())
	events, err := s.traffic.List(ctx, repository.TrafficFilter{
		BranchIDs: []string{branchID},
		Date:      &bucket.Date,
		Period:    &bucket.Period,
		Slot:      &bucket.Slot,
	})
	if err != nil {
		return nil, err
	}

	return &LiveTally{
		BranchID: branchID,
		Bucket:   bucket,
		Tally:    aggregate.LiveTally(events, branchID, bucket),
	}, nil
}
