package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "github.com/SchlottiP/employee-test/internal/employee/errors"
	"github.com/SchlottiP/employee-test/internal/events"
	"github.com/SchlottiP/employee-test/internal/shared/apperror"
	"github.com/SchlottiP/employee-test/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeListCacheKey = "employees:all"

const listCacheTTL = 5 * time.Minute

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

// service owns every business rule around the employee lifecycle: the
// email-uniqueness invariant, partial-merge updates, idempotent deletes,
// and the write-then-publish ordering for lifecycle events.
type service struct {
	repo      Repository
	publisher EventPublisher
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	publisher EventPublisher,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	empl, err := toEntity(req)
	if err != nil {
		s.logger.Warn("create employee invalid birthday",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return EmployeeResponse{}, apperror.ErrInvalidInput.WithInternal(err)
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("create employee email lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if existing != nil {
		s.logger.Warn("create employee email conflict",
			zap.String("request_id", rid),
			zap.String("colliding_employee_id", existing.ID.String()),
		)
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyUsed.WithInternal(
			fmt.Errorf("email address is already used by employee %s", existing.ID),
		)
	}

	if err := s.writeThenPublish(ctx, events.EmployeeEventCreate, &empl, func(r Repository) error {
		return r.Create(ctx, &empl)
	}); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeListCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeListCacheKey, jsonData, listCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	emplID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID.WithInternal(err)
	}

	empl, err := s.repo.FindByID(ctx, emplID)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if empl == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound.WithInternal(
			fmt.Errorf("no employee with id %s found", id),
		)
	}

	return mapToResponse(*empl), nil
}

// Update merges the present fields into the stored record. The lookup and
// the uniqueness check run before any field is touched, so a failing
// request leaves the record exactly as it was.
func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	emplID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID.WithInternal(err)
	}

	empl, err := s.repo.FindByID(ctx, emplID)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if empl == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound.WithInternal(
			fmt.Errorf("no employee with id %s found", id),
		)
	}

	// Setting the email to its own current value must not conflict
	// against the record itself.
	if req.Email != nil && *req.Email != empl.Email {
		holder, err := s.repo.FindByEmail(ctx, *req.Email)
		if err != nil {
			s.logger.Error("update employee email lookup failed", zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		if holder != nil && holder.ID != empl.ID {
			s.logger.Warn("update employee email conflict",
				zap.String("request_id", rid),
				zap.String("employee_id", id),
				zap.String("colliding_employee_id", holder.ID.String()),
			)
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyUsed.WithInternal(
				fmt.Errorf("email address is already used by employee %s", holder.ID),
			)
		}
		empl.Email = *req.Email
	}
	if req.FullName != nil {
		empl.FullName = *req.FullName
	}
	if req.Birthday != nil {
		birthday, err := time.Parse(birthdayLayout, *req.Birthday)
		if err != nil {
			s.logger.Warn("update employee invalid birthday",
				zap.String("request_id", rid),
				zap.Error(err),
			)
			return EmployeeResponse{}, apperror.ErrInvalidInput.WithInternal(
				fmt.Errorf("invalid birthday %q, expected YYYY-MM-DD: %w", *req.Birthday, err),
			)
		}
		empl.Birthday = birthday
	}
	if req.Hobbies != nil {
		empl.Hobbies = *req.Hobbies
	}

	if err := s.writeThenPublish(ctx, events.EmployeeEventUpdate, empl, func(r Repository) error {
		return r.Update(ctx, empl)
	}); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return mapToResponse(*empl), nil
}

// Delete is idempotent: a missing record is a successful no-op, so client
// retries never surface spurious errors. The DELETE event carries the
// pre-delete snapshot.
func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	emplID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID.WithInternal(err)
	}

	empl, err := s.repo.FindByID(ctx, emplID)
	if err != nil {
		s.logger.Error("delete employee fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if empl == nil {
		s.logger.Debug("delete employee no-op, record absent", zap.String("employee_id", id))
		return nil
	}

	if err := s.writeThenPublish(ctx, events.EmployeeEventDelete, empl, func(r Repository) error {
		return r.Delete(ctx, emplID)
	}); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return nil
}

// writeThenPublish runs the store write and hands the lifecycle event to the
// publisher. A transactional publisher enqueues the event inside the same
// transaction, so the record and its event commit or roll back together. Any
// other publisher sees the event only after the write committed.
func (s *service) writeThenPublish(
	ctx context.Context,
	eventType events.EmployeeEventType,
	empl *Employee,
	write func(r Repository) error,
) error {
	if txPublisher, ok := s.publisher.(TxEventPublisher); ok {
		return s.repo.Transaction(ctx, func(txRepo Repository, tx *sql.Tx) error {
			if err := write(txRepo); err != nil {
				return err
			}
			return txPublisher.PublishEmployeeEventTx(ctx, tx, s.newEvent(ctx, eventType, *empl))
		})
	}

	if err := write(s.repo); err != nil {
		return err
	}
	s.publishEvent(ctx, eventType, *empl)
	return nil
}

func (s *service) newEvent(ctx context.Context, eventType events.EmployeeEventType, empl Employee) events.EmployeeEvent {
	return events.EmployeeEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		Employee:   toSnapshot(empl),
		OccurredAt: time.Now().UTC(),
	}
}

// publishEvent is the fire-and-forget path, running strictly after a
// successful store write. Persistence is the source of truth: a failed
// publish is logged and otherwise swallowed, the record stays.
func (s *service) publishEvent(ctx context.Context, eventType events.EmployeeEventType, empl Employee) {
	event := s.newEvent(ctx, eventType, empl)

	if err := s.publisher.PublishEmployeeEvent(ctx, event); err != nil {
		s.logger.Warn("publish employee event failed, record persisted without notification",
			zap.String("employee_id", event.Employee.ID),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
	}
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.String("key", EmployeeListCacheKey),
			zap.Error(err),
		)
	}
}
