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

type BillService struct {
	bills    repository.BillStore
	branches repository.BranchStore
	now      func() time.Time
}

func NewBillService(store repository.Store) *BillService {
	return &BillService{
		bills:    store.Bills,
		branches: store.Branches,
		now:      time.Now,
	}
}

type RecordBillInput struct {
	BranchID  string
	Period    string
	Slot      string
	BillCount int
	Note      *string
}

// Record stores a bill count for a slot picked by the user. Only the date
// comes from the clock.
func (s *BillService) Record(ctx context.Context, principal model.Principal, input RecordBillInput) (*model.BillRecord, error) {
	branchID, err := resolveBranch(ctx, s.branches, principal, input.BranchID)
	if err != nil {
		return nil, err
	}
	if input.BillCount < 0 {
		return nil, ErrInvalidInput
	}
	if !timeslot.ValidBillSlot(input.Period, input.Slot) {
		return nil, ErrInvalidInput
	}

	var note *string
	if input.Note != nil {
		if trimmed := strings.TrimSpace(*input.Note); trimmed != "" {
			note = &trimmed
		}
	}

	at := s.now()
	bill := &model.BillRecord{
		BranchID:  branchID,
		Date:      timeslot.Date(at),
		Period:    input.Period,
		Slot:      input.Slot,
		BillCount: input.BillCount,
		Note:      note,
		CreatedBy: principal.Username,
		CreatedAt: at,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *BillService) UndoLast(ctx context.Context, principal model.Principal, branchID string) (*model.BillRecord, error) {
	branchID, err := resolveBranch(ctx, s.branches, principal, branchID)
	if err != nil {
		return nil, err
	}

	bill, err := s.bills.Latest(ctx, branchID, timeslot.Date(s.now()))
	if err != nil {
		return nil, storeError(err)
	}
	if err := s.bills.Delete(ctx, bill.ID); err != nil {
		return nil, storeError(err)
	}
	return bill, nil
}

type DailyBills struct {
	BranchID string             `json:"branch_id"`
	Date     string             `json:"date"`
	Bills    []model.BillRecord `json:"bills"`
	Total    int                `json:"total"`
}

func (s *BillService) Today(ctx context.Context, principal model.Principal, branchID string) (*DailyBills, error) {
	branchID, err := resolveBranch(ctx, s.branches, principal, branchID)
	if err != nil {
		return nil, err
	}

	date := timeslot.Date(s.now())
	bills, err := s.bills.List(ctx, repository.BillFilter{
		BranchIDs: []string{branchID},
		Date:      &date,
	})
	if err != nil {
		return nil, err
	}
	if bills == nil {
		bills = []model.BillRecord{}
	}

	return &DailyBills{
		BranchID: branchID,
		Date:     date,
		Bills:    bills,
		Total:    int(aggregate.Total(bills, "billCount")),
	}, nil
}
