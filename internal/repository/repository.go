package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"footfall-service/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type BranchStore interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	Update(ctx context.Context, id string, branch *model.Branch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Branch, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]model.User, error)
}

type TrafficFilter struct {
	BranchIDs []string
	Date      *string
	Period    *string
	Slot      *string
}

type TrafficEventStore interface {
	Create(ctx context.Context, event *model.TrafficEvent) error
	List(ctx context.Context, filter TrafficFilter) ([]model.TrafficEvent, error)
	// Latest returns the most recently created event of a branch on a date.
	Latest(ctx context.Context, branchID, date string) (*model.TrafficEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BillFilter struct {
	BranchIDs []string
	Date      *string
	Period    *string
}

type BillStore interface {
	Create(ctx context.Context, bill *model.BillRecord) error
	List(ctx context.Context, filter BillFilter) ([]model.BillRecord, error)
	Latest(ctx context.Context, branchID, date string) (*model.BillRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DashboardStore interface {
	Get(ctx context.Context, id string) (*model.DashboardFigures, error)
	Save(ctx context.Context, figures *model.DashboardFigures) error
}

type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
}

type LoginLogStore interface {
	Create(ctx context.Context, entry *model.LoginLog) error
}

// Store bundles every record collection behind one backend.
type Store struct {
	Branches  BranchStore
	Users     UserStore
	Traffic   TrafficEventStore
	Bills     BillStore
	Dashboard DashboardStore
	Sessions  SessionStore
	LoginLogs LoginLogStore
}
