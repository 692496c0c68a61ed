package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyroom/backend/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound    = errors.New("session not found")
	ErrNoUser      = errors.New("session has no user")
	ErrInvalidEnum = errors.New("session has an invalid type, energy level or break type")

	defaultLimit = 100
	maxLimit     = 500
)

type (
	Repository interface {
		CreateSession(ctx context.Context, sess Session) (Session, error)
		GetSessionByID(ctx context.Context, id string) (Session, error)
		// QuerySessionsByUser returns the user's sessions ordered by filter.Orderings (newest start_time first by default).
		QuerySessionsByUser(ctx context.Context, userID string, filter QueryFilter) ([]Session, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, userID string, data NewSession) (Session, error)
		Record(ctx context.Context, sess Session) error
		GetByID(ctx context.Context, id string) (Session, error)
		QueryByUser(ctx context.Context, userID string, filter QueryFilter) ([]Session, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, data NewSession) (Session, error) {
	return svc.create(ctx, data.Session(userID))
}

// Record stores a session built by its caller, e.g. a completed focus phase of the timer.
func (svc *Service) Record(ctx context.Context, sess Session) error {
	_, err := svc.create(ctx, sess)
	return err
}

func (svc *Service) create(ctx context.Context, sess Session) (Session, error) {
	if sess.UserID == "" {
		return Session{}, ErrNoUser
	}
	applyDefaults(&sess)
	if !validEnums(sess) {
		return Session{}, ErrInvalidEnum
	}

	now := nowFunc().UTC()
	sess.ID = uuid.New().String()
	sess.CreatedAt = now
	sess.UpdatedAt = now
	return svc.repo.CreateSession(ctx, sess)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Session, error) {
	return svc.repo.GetSessionByID(ctx, id)
}

func (svc *Service) QueryByUser(ctx context.Context, userID string, filter QueryFilter) ([]Session, error) {
	if err := core.ValidateOrderings(filter.Orderings, OrderingFields...); err != nil {
		return nil, err
	}
	if len(filter.Orderings) == 0 {
		filter.Orderings = []core.DBOrdering{{Field: "start_time", Ascending: false}}
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultLimit
	case filter.Limit > maxLimit:
		filter.Limit = maxLimit
	}
	return svc.repo.QuerySessionsByUser(ctx, userID, filter)
}

func applyDefaults(sess *Session) {
	if sess.SessionType == "" {
		sess.SessionType = TypeSolo
	}
	if sess.EnergyLevel == "" {
		sess.EnergyLevel = EnergyNone
	}
	if sess.BreakType == "" {
		sess.BreakType = BreakNone
	}
}

func validEnums(sess Session) bool {
	switch sess.SessionType {
	case TypeSolo, TypeWithFriends:
	default:
		return false
	}
	switch sess.EnergyLevel {
	case EnergyNone, EnergyLow, EnergyHigh:
	default:
		return false
	}
	switch sess.BreakType {
	case BreakNone, BreakLight, BreakHeavy:
	default:
		return false
	}
	return true
}
