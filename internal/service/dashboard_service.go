package service

import (
	"context"
	"errors"
	"strings"

	"footfall-service/internal/aggregate"
	"footfall-service/internal/model"
	"footfall-service/internal/repository"
	"footfall-service/internal/timeslot"
)

type DashboardService struct {
	traffic   repository.TrafficEventStore
	bills     repository.BillStore
	dashboard repository.DashboardStore
}

func NewDashboardService(store repository.Store) *DashboardService {
	return &DashboardService{
		traffic:   store.Traffic,
		bills:     store.Bills,
		dashboard: store.Dashboard,
	}
}

type DashboardQuery struct {
	Branches []string
	Date     string
	Period   string
}

type DashboardSummary struct {
	Scope      aggregate.Scope          `json:"scope"`
	Daily      []aggregate.DailySummary `json:"daily"`
	TotalBills int                      `json:"total_bills"`
	Products   []aggregate.Share        `json:"products"`
	Careers    []aggregate.Share        `json:"careers"`
	Ages       []aggregate.BracketShare `json:"ages"`
	Vehicles   []aggregate.Count        `json:"vehicles"`
	Dates      []string                 `json:"dates"`
	Periods    []string                 `json:"periods"`
}

func (q DashboardQuery) scope(principal model.Principal) (aggregate.Scope, error) {
	scope := aggregate.Scope{
		Date:   strings.TrimSpace(q.Date),
		Period: strings.TrimSpace(q.Period),
	}
	if scope.Date == "" {
		scope.Date = aggregate.All
	}
	if scope.Period == "" {
		scope.Period = aggregate.All
	}
	if scope.Period != aggregate.All && !timeslot.IsPeriod(scope.Period) {
		return aggregate.Scope{}, ErrInvalidInput
	}

	for _, b := range q.Branches {
		if b = strings.TrimSpace(b); b != "" {
			scope.Branches = append(scope.Branches, b)
		}
	}

	if !principal.CanSelectBranch() {
		own := principal.OwnBranch()
		if own == "" {
			return aggregate.Scope{}, ErrPermissionDenied
		}
		for _, b := range scope.Branches {
			if b != own {
				return aggregate.Scope{}, ErrPermissionDenied
			}
		}
		scope.Branches = []string{own}
	}
	if len(scope.Branches) == 0 {
		scope.Branches = []string{aggregate.AllBranches}
	}
	return scope, nil
}

// Summary loads the records of the selected branches and derives every
// dashboard figure from them. Dates lists every date on record for those
// branches regardless of the date and period selection.
func (s *DashboardService) Summary(ctx context.Context, principal model.Principal, query DashboardQuery) (*DashboardSummary, error) {
	scope, err := query.scope(principal)
	if err != nil {
		return nil, err
	}

	var branchIDs []string
	if !isAllBranches(scope.Branches) {
		branchIDs = scope.Branches
	}

	events, err := s.traffic.List(ctx, repository.TrafficFilter{BranchIDs: branchIDs})
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.List(ctx, repository.BillFilter{BranchIDs: branchIDs})
	if err != nil {
		return nil, err
	}

	scopedEvents := aggregate.FilterTraffic(events, scope)
	scopedBills := aggregate.FilterBills(bills, scope)

	return &DashboardSummary{
		Scope:      scope,
		Daily:      aggregate.GroupByDate(scopedEvents, scopedBills),
		TotalBills: int(aggregate.Total(scopedBills, "billCount")),
		Products:   aggregate.ProductMix(scopedEvents),
		Careers:    aggregate.CareerMix(scopedEvents),
		Ages:       aggregate.AgeBrackets(scopedEvents, aggregate.DefaultAgeBrackets),
		Vehicles:   aggregate.VehicleMix(scopedEvents),
		Dates:      aggregate.Dates(events, bills),
		Periods:    timeslot.PeriodNames(),
	}, nil
}

func isAllBranches(branches []string) bool {
	for _, b := range branches {
		if b == aggregate.AllBranches {
			return true
		}
	}
	return len(branches) == 0
}

type Figures struct {
	model.DashboardFigures
	Diff int `json:"diff"`
}

// Figures returns the home screen headline numbers; zero values until an
// admin saves them for the first time.
func (s *DashboardService) Figures(ctx context.Context) (*Figures, error) {
	figures, err := s.dashboard.Get(ctx, model.DefaultDashboardID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		figures = &model.DashboardFigures{ID: model.DefaultDashboardID}
	}
	return &Figures{DashboardFigures: *figures, Diff: figures.Diff()}, nil
}

type FiguresPatch struct {
	AsOf      *string
	AvgStores *int
	CompareTo *string
	TC7       *int
	TC7Delta  *int
	TCCJ      *int
	TCCJDelta *int
}

// UpdateFigures applies a partial quick edit; the last write wins.
func (s *DashboardService) UpdateFigures(ctx context.Context, principal model.Principal, patch FiguresPatch) (*Figures, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	current, err := s.Figures(ctx)
	if err != nil {
		return nil, err
	}
	figures := current.DashboardFigures

	if patch.AsOf != nil {
		figures.AsOf = strings.TrimSpace(*patch.AsOf)
	}
	if patch.AvgStores != nil {
		if *patch.AvgStores < 0 {
			return nil, ErrInvalidInput
		}
		figures.AvgStores = *patch.AvgStores
	}
	if patch.CompareTo != nil {
		figures.CompareTo = strings.TrimSpace(*patch.CompareTo)
	}
	if patch.TC7 != nil {
		figures.TC7 = *patch.TC7
	}
	if patch.TC7Delta != nil {
		figures.TC7Delta = *patch.TC7Delta
	}
	if patch.TCCJ != nil {
		figures.TCCJ = *patch.TCCJ
	}
	if patch.TCCJDelta != nil {
		figures.TCCJDelta = *patch.TCCJDelta
	}

	if err := s.dashboard.Save(ctx, &figures); err != nil {
		return nil, err
	}
	return &Figures{DashboardFigures: figures, Diff: figures.Diff()}, nil
}
