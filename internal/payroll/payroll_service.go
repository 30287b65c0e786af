package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	RunCacheKeyPrefix = "payroll:runs:"
	runCacheTTL       = 10 * time.Minute
	runCounterType    = "payroll_run"
	runNumberPrefix   = "PR"

	ActionResolveIrregularity = "resolve_irregularity"
)

func GetRunCacheKey(companyID, runID string) string {
	return RunCacheKeyPrefix + companyID + ":" + runID
}

type Service interface {
	ComputeRun(ctx context.Context, companyID, actorID string, req ComputeRunRequest) (RunResponse, error)
	Transition(ctx context.Context, companyID, actorID, runID string, req TransitionRunRequest) (RunResponse, error)
	GetRun(ctx context.Context, companyID, runID string) (RunResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetRunsFilterRequest) ([]RunSummaryResponse, error)
	Recompute(ctx context.Context, companyID, actorID, runID string) (RunResponse, error)
	ResolveIrregularity(ctx context.Context, companyID, actorID, runID, irregularityID string, req ResolveIrregularityRequest) (RunResponse, error)
	Delete(ctx context.Context, companyID, runID string) error
	GeneratePayslips(ctx context.Context, companyID, runID string) (int, error)
	GetPayslip(ctx context.Context, companyID, runID, employeeID string) (PayslipFile, error)
}

// Dependencies are the collaborators of the payroll service. Baselines and
// Locker fall back to the repository and an in-process locker.
type Dependencies struct {
	Compensation CompensationSource
	Attendance   AttendanceSource
	Baselines    BaselineSource
	Configs      ConfigStore
	Authorizer   Authorizer
	Locker       RunLocker
	Counter      counter.Repository
	Outbox       kafka.OutboxRepository
	Redis        *redis.Client
	Workers      int
	Clock        func() time.Time
}

type service struct {
	db           *sql.DB
	repo         Repository
	compensation CompensationSource
	attendance   AttendanceSource
	baselines    BaselineSource
	configs      ConfigStore
	authorizer   Authorizer
	locker       RunLocker
	counter      counter.Repository
	outbox       kafka.OutboxRepository
	rdb          *redis.Client
	sf           *singleflight.Group
	machine      StateMachine
	workers      int
	now          func() time.Time
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	s := &service{
		db:           db,
		repo:         repo,
		compensation: deps.Compensation,
		attendance:   deps.Attendance,
		baselines:    deps.Baselines,
		configs:      deps.Configs,
		authorizer:   deps.Authorizer,
		locker:       deps.Locker,
		counter:      deps.Counter,
		outbox:       deps.Outbox,
		rdb:          deps.Redis,
		sf:           &singleflight.Group{},
		workers:      deps.Workers,
		now:          deps.Clock,
		logger:       l,
	}
	if s.baselines == nil {
		s.baselines = repo
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s
}

func (s *service) ComputeRun(
	ctx context.Context,
	companyID, actorID string,
	req ComputeRunRequest,
) (RunResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("compute payroll run requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("department_id", req.DepartmentID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidActorID
	}
	var departmentID *uuid.UUID
	if req.DepartmentID != "" {
		id, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return RunResponse{}, payrollerrors.ErrInvalidDepartmentID
		}
		departmentID = &id
	}
	period, err := periodFromRequest(req)
	if err != nil {
		return RunResponse{}, err
	}

	release, err := s.locker.Lock(ctx, ComputeLockKey(companyID, req.DepartmentID, period))
	if err != nil {
		s.logger.Warn("compute payroll run lock failed", zap.String("request_id", rid), zap.Error(err))
		return RunResponse{}, err
	}
	defer release()

	inFlight, err := s.repo.HasInFlightRun(ctx, companyID, departmentID, period)
	if err != nil {
		s.logger.Error("compute payroll run in-flight check failed", zap.Error(err))
		return RunResponse{}, err
	}
	if inFlight {
		return RunResponse{}, payrollerrors.ErrRunInFlight
	}

	cfg := s.configs.Current()
	inputs, err := s.loadInputs(ctx, cfg, companyUUID, departmentID, period)
	if err != nil {
		s.logger.Error("compute payroll run load inputs failed", zap.String("request_id", rid), zap.Error(err))
		return RunResponse{}, err
	}
	if len(inputs) == 0 {
		return RunResponse{}, payrollerrors.ErrEmptyRun
	}

	now := s.now()
	run := &Run{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		DepartmentID: departmentID,
		Period:       period,
		Status:       StatusDraft,
		CreatedBy:    actorUUID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.compute(ctx, cfg, run, inputs); err != nil {
		s.logger.Warn("compute payroll run pipeline failed",
			zap.String("request_id", rid),
			zap.String("config_version", cfg.Version),
			zap.Error(err),
		)
		return RunResponse{}, err
	}

	seq, err := s.counter.GetNextValue(ctx, companyID, counter.ScopedType(runCounterType, period.Key()))
	if err != nil {
		s.logger.Error("compute payroll run generate number failed", zap.Error(err))
		return RunResponse{}, err
	}
	run.RunNumber = counter.FormatNumber(runNumberPrefix, period.Key(), seq)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("compute payroll run begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateRun(ctx, run); err != nil {
		s.logger.Error("compute payroll run persist failed", zap.Error(err))
		return RunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("compute payroll run commit failed", zap.String("request_id", rid), zap.Error(err))
		return RunResponse{}, err
	}

	s.logger.Info("compute payroll run success",
		zap.String("request_id", rid),
		zap.String("run_id", run.ID.String()),
		zap.String("run_number", run.RunNumber),
		zap.Int("items", len(run.Items)),
		zap.Int("failures", len(run.Failures)),
		zap.Int("exceptions", run.Exceptions),
	)
	return mapToRunResponse(*run), nil
}

func (s *service) Transition(
	ctx context.Context,
	companyID, actorID, runID string,
	req TransitionRunRequest,
) (RunResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("payroll run transition requested",
		zap.String("request_id", rid),
		zap.String("run_id", runID),
		zap.String("event", req.Event),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(runID); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidRunID
	}
	event, err := ParseEvent(req.Event)
	if err != nil {
		return RunResponse{}, err
	}

	release, err := s.locker.Lock(ctx, RunLockKey(runID))
	if err != nil {
		return RunResponse{}, err
	}
	defer release()

	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return RunResponse{}, err
	}

	guards := Guards{}
	guards.Authorized, err = s.authorize(ctx, companyID, actorID, string(event))
	if err != nil {
		return RunResponse{}, err
	}
	if event == EventSubmit && run.Status == StatusDraft {
		guards.InputsCurrent, err = s.inputsCurrent(ctx, run)
		if err != nil {
			return RunResponse{}, err
		}
	}

	now := s.now()
	outcome, err := s.machine.Apply(*run, TransitionRequest{Event: event, ActorID: actorUUID, Reason: req.Reason}, guards, now)
	if err != nil {
		if len(outcome.Escalated) > 0 {
			if perr := s.persistEscalation(ctx, companyID, outcome); perr != nil {
				return RunResponse{}, perr
			}
		}
		s.logger.Info("payroll run transition rejected",
			zap.String("request_id", rid),
			zap.String("run_id", runID),
			zap.String("event", string(event)),
			zap.Int("escalated", len(outcome.Escalated)),
			zap.Error(err),
		)
		return RunResponse{}, err
	}
	if outcome.NoOp {
		return mapToRunResponse(*run), nil
	}

	next := outcome.Run
	next.UpdatedAt = now
	if outcome.Recompute {
		cfg := s.configs.Current()
		inputs, err := s.loadInputs(ctx, cfg, next.CompanyID, next.DepartmentID, normalizePeriod(next.Period))
		if err != nil {
			return RunResponse{}, err
		}
		if len(inputs) == 0 {
			return RunResponse{}, payrollerrors.ErrEmptyRun
		}
		if err := s.compute(ctx, cfg, &next, inputs); err != nil {
			return RunResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll run transition begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if outcome.Recompute {
		err = qtx.ReplaceComputation(ctx, &next)
	} else {
		err = qtx.UpdateRunState(ctx, &next)
	}
	if err != nil {
		s.logger.Error("payroll run transition persist failed", zap.String("run_id", runID), zap.Error(err))
		return RunResponse{}, err
	}
	if err := qtx.CreateTransition(ctx, &outcome.Transition); err != nil {
		return RunResponse{}, err
	}
	if err := s.queueTransitionEvents(ctx, tx, next, outcome.Transition); err != nil {
		s.logger.Error("payroll run transition outbox persist failed", zap.String("run_id", runID), zap.Error(err))
		return RunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payroll run transition commit failed", zap.String("request_id", rid), zap.Error(err))
		return RunResponse{}, err
	}
	s.invalidateRun(ctx, companyID, runID)

	next.Transitions = append(append([]Transition(nil), run.Transitions...), outcome.Transition)
	s.logger.Info("payroll run transition success",
		zap.String("request_id", rid),
		zap.String("run_id", runID),
		zap.String("event", string(event)),
		zap.String("from", string(run.Status)),
		zap.String("to", string(next.Status)),
		zap.Bool("frozen", next.Frozen),
	)
	return mapToRunResponse(next), nil
}

func (s *service) GetRun(ctx context.Context, companyID, runID string) (RunResponse, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidRunID
	}
	cacheKey := GetRunCacheKey(companyID, runID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp RunResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		run, err := s.repo.FindRunByID(ctx, companyID, runID)
		if err != nil {
			return nil, err
		}
		resp := mapToRunResponse(*run)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, runCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return RunResponse{}, err
	}
	return v.(RunResponse), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetRunsFilterRequest) ([]RunSummaryResponse, error) {
	s.logger.Debug("get payroll runs requested", zap.String("company_id", companyID))

	f := RunFilter{Year: filter.Year, Month: time.Month(filter.Month)}
	if filter.Status != "" {
		status, err := NormalizeStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		f.Status = status
	}

	runs, err := s.repo.FindRunsByCompany(ctx, companyID, f)
	if err != nil {
		s.logger.Error("get payroll runs failed", zap.Error(err))
		return nil, err
	}
	resp := make([]RunSummaryResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapToRunSummary(run)
	}
	return resp, nil
}

// Recompute re-runs the pipeline for a draft. When neither the inputs nor the
// config changed, the stored run is returned untouched.
func (s *service) Recompute(ctx context.Context, companyID, actorID, runID string) (RunResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(runID); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidRunID
	}

	release, err := s.locker.Lock(ctx, RunLockKey(runID))
	if err != nil {
		return RunResponse{}, err
	}
	defer release()

	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return RunResponse{}, err
	}
	if run.Status != StatusDraft {
		return RunResponse{}, payrollerrors.ErrRecomputeOnlyDraft
	}

	cfg := s.configs.Current()
	period := normalizePeriod(run.Period)
	inputs, err := s.loadInputs(ctx, cfg, run.CompanyID, run.DepartmentID, period)
	if err != nil {
		return RunResponse{}, err
	}
	digest, err := InputsDigest(cfg, period, inputs)
	if err != nil {
		return RunResponse{}, err
	}
	if digest == run.InputsDigest && cfg.Version == run.ConfigVersion {
		s.logger.Debug("recompute payroll run skipped, inputs unchanged", zap.String("run_id", runID))
		return mapToRunResponse(*run), nil
	}
	if len(inputs) == 0 {
		return RunResponse{}, payrollerrors.ErrEmptyRun
	}

	next := *run
	next.UpdatedAt = s.now()
	if err := s.compute(ctx, cfg, &next, inputs); err != nil {
		return RunResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).ReplaceComputation(ctx, &next); err != nil {
		s.logger.Error("recompute payroll run persist failed", zap.String("run_id", runID), zap.Error(err))
		return RunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}
	s.invalidateRun(ctx, companyID, runID)

	s.logger.Info("recompute payroll run success",
		zap.String("request_id", rid),
		zap.String("run_id", runID),
		zap.String("actor_id", actorID),
		zap.String("config_version", cfg.Version),
	)
	return mapToRunResponse(next), nil
}

func (s *service) ResolveIrregularity(
	ctx context.Context,
	companyID, actorID, runID, irregularityID string,
	req ResolveIrregularityRequest,
) (RunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(runID); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidRunID
	}
	irrUUID, err := uuid.Parse(irregularityID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidIrregularityID
	}

	allowed, err := s.authorize(ctx, companyID, actorID, ActionResolveIrregularity)
	if err != nil {
		return RunResponse{}, err
	}
	if !allowed {
		return RunResponse{}, apperror.ErrForbidden
	}

	release, err := s.locker.Lock(ctx, RunLockKey(runID))
	if err != nil {
		return RunResponse{}, err
	}
	defer release()

	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return RunResponse{}, err
	}
	if run.Status != StatusDraft && run.Status != StatusUnderReview {
		return RunResponse{}, payrollerrors.ErrIrregularityLocked
	}

	next := *run
	next.Irregularities = append([]Irregularity(nil), run.Irregularities...)
	idx := -1
	for i := range next.Irregularities {
		if next.Irregularities[i].ID == irrUUID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RunResponse{}, payrollerrors.ErrIrregularityNotFound
	}
	now := s.now()
	if err := next.Irregularities[idx].Resolve(actorUUID, IrregularityStatus(req.Decision), req.Notes, now); err != nil {
		return RunResponse{}, err
	}
	next.Exceptions = CountExceptions(next.Irregularities)
	next.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateIrregularities(ctx, next.Irregularities[idx:idx+1]); err != nil {
		return RunResponse{}, err
	}
	if err := qtx.UpdateRunState(ctx, &next); err != nil {
		return RunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}
	s.invalidateRun(ctx, companyID, runID)

	s.logger.Info("payroll irregularity resolved",
		zap.String("run_id", runID),
		zap.String("irregularity_id", irregularityID),
		zap.String("decision", req.Decision),
		zap.Int("exceptions", next.Exceptions),
	)
	return mapToRunResponse(next), nil
}

func (s *service) Delete(ctx context.Context, companyID, runID string) error {
	s.logger.Debug("delete payroll run requested",
		zap.String("company_id", companyID),
		zap.String("run_id", runID),
	)
	if _, err := uuid.Parse(runID); err != nil {
		return payrollerrors.ErrInvalidRunID
	}

	release, err := s.locker.Lock(ctx, RunLockKey(runID))
	if err != nil {
		return err
	}
	defer release()

	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return err
	}
	if run.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete payroll run begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteRun(ctx, companyID, runID); err != nil {
		s.logger.Error("delete payroll run failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete payroll run commit failed", zap.Error(err))
		return err
	}
	s.invalidateRun(ctx, companyID, runID)

	s.logger.Info("delete payroll run success", zap.String("run_id", runID))
	return nil
}

// GeneratePayslips renders one PDF per item of a locked run and upserts them.
func (s *service) GeneratePayslips(ctx context.Context, companyID, runID string) (int, error) {
	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return 0, err
	}
	if run.Status != StatusLocked {
		return 0, payrollerrors.ErrPayslipRequiresLockedRun
	}

	now := s.now()
	payslips := make([]Payslip, 0, len(run.Items))
	for _, item := range run.Items {
		content, err := buildSimplePayslipPDF(payslipLines(*run, item))
		if err != nil {
			return 0, err
		}
		payslips = append(payslips, Payslip{
			ID:          uuid.NewSHA1(run.ID, []byte("payslip:"+item.EmployeeID.String())),
			RunID:       run.ID,
			CompanyID:   run.CompanyID,
			EmployeeID:  item.EmployeeID,
			ItemID:      item.ID,
			FileName:    payslipFileName(*run, item),
			Content:     content,
			GeneratedAt: now,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for i := range payslips {
		if err := qtx.SavePayslip(ctx, &payslips[i]); err != nil {
			s.logger.Error("save payslip failed",
				zap.String("run_id", runID),
				zap.String("employee_id", payslips[i].EmployeeID.String()),
				zap.Error(err),
			)
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("payslips generated", zap.String("run_id", runID), zap.Int("count", len(payslips)))
	return len(payslips), nil
}

func (s *service) GetPayslip(ctx context.Context, companyID, runID, employeeID string) (PayslipFile, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return PayslipFile{}, payrollerrors.ErrInvalidRunID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return PayslipFile{}, payrollerrors.ErrInvalidEmployeeID
	}
	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return PayslipFile{}, err
	}
	// A reopened run keeps its old payslips until it is recomputed.
	if run.Status != StatusLocked {
		return PayslipFile{}, payrollerrors.ErrPayslipUnavailable
	}
	p, err := s.repo.FindPayslip(ctx, companyID, runID, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PayslipFile{}, payrollerrors.ErrPayslipNotGenerated
	}
	if err != nil {
		return PayslipFile{}, err
	}
	return PayslipFile{FileName: p.FileName, Content: p.Content}, nil
}

// compute runs the pipeline and writes the result, totals and digest onto run.
func (s *service) compute(ctx context.Context, cfg Config, run *Run, inputs []EmployeeInput) error {
	run.Period = normalizePeriod(run.Period)
	result, err := NewPipeline(cfg, s.workers).Run(ctx, run.ID, run.CompanyID, run.Period, inputs)
	if err != nil {
		return err
	}
	totals, exceptions, err := Aggregate(result)
	if err != nil {
		return err
	}
	digest, err := InputsDigest(cfg, run.Period, inputs)
	if err != nil {
		return err
	}

	run.Items = result.Items
	run.Irregularities = result.Irregularities
	run.Failures = result.Failures
	run.Totals = totals
	run.Exceptions = exceptions
	run.EmployeeCount = len(inputs)
	run.ConfigVersion = cfg.Version
	run.InputsDigest = digest
	return nil
}

// loadInputs reads profiles first, then attendance and baselines concurrently.
func (s *service) loadInputs(
	ctx context.Context,
	cfg Config,
	companyID uuid.UUID,
	departmentID *uuid.UUID,
	period Period,
) ([]EmployeeInput, error) {
	profiles, err := s.compensation.ListProfiles(ctx, companyID, departmentID, period)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.EmployeeID
	}

	var (
		attendance map[uuid.UUID]AttendanceAggregate
		baselines  map[uuid.UUID]Baseline
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attendance, err = s.attendance.Aggregates(gctx, companyID, ids, period)
		return err
	})
	g.Go(func() error {
		var err error
		baselines, err = s.baselines.FindBaselines(gctx, companyID, ids, period.Start, cfg.BaselineWindow)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inputs := make([]EmployeeInput, len(profiles))
	for i, p := range profiles {
		inputs[i] = EmployeeInput{
			Profile:    p,
			Attendance: attendance[p.EmployeeID],
			Baseline:   baselines[p.EmployeeID],
		}
	}
	return inputs, nil
}

// inputsCurrent re-reads the sources and compares against the stored digest.
func (s *service) inputsCurrent(ctx context.Context, run *Run) (bool, error) {
	cfg := s.configs.Current()
	if cfg.Version != run.ConfigVersion {
		return false, nil
	}
	period := normalizePeriod(run.Period)
	inputs, err := s.loadInputs(ctx, cfg, run.CompanyID, run.DepartmentID, period)
	if err != nil {
		return false, err
	}
	digest, err := InputsDigest(cfg, period, inputs)
	if err != nil {
		return false, err
	}
	return digest == run.InputsDigest, nil
}

func (s *service) persistEscalation(ctx context.Context, companyID string, outcome Outcome) error {
	escalated := make(map[uuid.UUID]struct{}, len(outcome.Escalated))
	for _, id := range outcome.Escalated {
		escalated[id] = struct{}{}
	}
	var changed []Irregularity
	for _, irr := range outcome.Run.Irregularities {
		if _, ok := escalated[irr.ID]; ok {
			changed = append(changed, irr)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateIrregularities(ctx, changed); err != nil {
		s.logger.Error("persist irregularity escalation failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.invalidateRun(ctx, companyID, outcome.Run.ID.String())
	return nil
}

func (s *service) queueTransitionEvents(ctx context.Context, tx *sql.Tx, run Run, t Transition) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	reason := ""
	if t.Reason != nil {
		reason = *t.Reason
	}

	if err := s.queueEvent(ctx, tx, run.ID.String(), "payroll_run_transitioned", events.PayrollRunTransitionedTopic, events.PayrollRunTransitionedEvent{
		EventType:  "payroll_run_transitioned",
		RequestID:  rid,
		RunID:      run.ID.String(),
		RunNumber:  run.RunNumber,
		CompanyID:  run.CompanyID.String(),
		Event:      string(t.Event),
		FromStatus: string(t.FromStatus),
		ToStatus:   string(t.ToStatus),
		Frozen:     t.Frozen,
		ActorID:    t.ActorID.String(),
		Reason:     reason,
		OccurredAt: t.CreatedAt,
	}); err != nil {
		return err
	}

	if t.Event != EventFinanceApprove {
		return nil
	}
	return s.queueEvent(ctx, tx, run.ID.String(), "payroll_payslip_requested", events.PayrollPayslipRequestedTopic, events.PayrollPayslipRequestedEvent{
		EventType:   "payroll_payslip_requested",
		RequestID:   rid,
		RunID:       run.ID.String(),
		CompanyID:   run.CompanyID.String(),
		RequestedBy: t.ActorID.String(),
		OccurredAt:  t.CreatedAt,
	})
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, aggregateID, eventType, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	md := contextutil.ExtractMetadata(ctx)
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     md.RequestID,
		AggregateType: "payroll_run",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) authorize(ctx context.Context, companyID, actorID, action string) (bool, error) {
	if s.authorizer == nil {
		return false, nil
	}
	return s.authorizer.CanPerform(ctx, companyID, actorID, action)
}

func (s *service) invalidateRun(ctx context.Context, companyID, runID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetRunCacheKey(companyID, runID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate payroll run cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func periodFromRequest(req ComputeRunRequest) (Period, error) {
	month := time.Month(req.Month)
	if req.PeriodStart == "" && req.PeriodEnd == "" {
		return NewMonthlyPeriod(req.Year, month)
	}
	if req.PeriodStart == "" || req.PeriodEnd == "" {
		return Period{}, fmt.Errorf("%w: period_start and period_end must be given together", payrollerrors.ErrInvalidPeriod)
	}
	start, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		return Period{}, fmt.Errorf("%w: period_start must be YYYY-MM-DD", payrollerrors.ErrInvalidPeriod)
	}
	end, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		return Period{}, fmt.Errorf("%w: period_end must be YYYY-MM-DD", payrollerrors.ErrInvalidPeriod)
	}
	return NewPeriod(req.Year, month, start, end)
}

func normalizePeriod(p Period) Period {
	return Period{Year: p.Year, Month: p.Month, Start: dateOf(p.Start), End: dateOf(p.End)}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToRunSummary(run Run) RunSummaryResponse {
	return RunSummaryResponse{
		ID:            run.ID.String(),
		RunNumber:     run.RunNumber,
		CompanyID:     run.CompanyID.String(),
		DepartmentID:  uuidString(run.DepartmentID),
		PeriodStart:   run.Period.Start.Format(dateLayout),
		PeriodEnd:     run.Period.End.Format(dateLayout),
		Status:        run.Status,
		Frozen:        run.Frozen,
		FrozenReason:  run.FrozenReason,
		ConfigVersion: run.ConfigVersion,
		EmployeeCount: run.EmployeeCount,
		Exceptions:    run.Exceptions,
		Totals:        TotalsResponse(run.Totals),
		CreatedAt:     run.CreatedAt,
		UpdatedAt:     run.UpdatedAt,
	}
}

func mapToRunResponse(run Run) RunResponse {
	resp := RunResponse{
		RunSummaryResponse: mapToRunSummary(run),
		CreatedBy:          run.CreatedBy.String(),
		SubmittedBy:        uuidString(run.SubmittedBy),
		ManagerApprovedBy:  uuidString(run.ManagerApprovedBy),
		FinanceApprovedBy:  uuidString(run.FinanceApprovedBy),
		RejectionReason:    run.RejectionReason,
		Items:              make([]ItemResponse, len(run.Items)),
		Irregularities:     make([]IrregularityResponse, len(run.Irregularities)),
		Failures:           make([]FailureResponse, len(run.Failures)),
		Transitions:        make([]TransitionResponse, len(run.Transitions)),
	}
	for i, item := range run.Items {
		resp.Items[i] = ItemResponse{
			ID:                       item.ID.String(),
			EmployeeID:               item.EmployeeID.String(),
			EmployeeName:             item.EmployeeName,
			Currency:                 item.Currency,
			BaseSalary:               item.BaseSalary,
			ProratedBaseSalary:       item.ProratedBaseSalary,
			ProrationFactor:          item.ProrationFactor,
			AllowancesTotal:          item.AllowancesTotal,
			OvertimeMinutes:          item.OvertimeMinutes,
			OvertimeAmount:           item.OvertimeAmount,
			CommissionAmount:         item.CommissionAmount,
			GrossPay:                 item.GrossPay,
			TaxableIncome:            item.TaxableIncome,
			TotalDeductions:          item.TotalDeductions,
			NetPay:                   item.NetPay,
			Suspended:                item.Suspended,
			ExcludedFromDisbursement: item.ExcludedFromDisbursement,
			Earnings:                 item.Earnings,
			Deductions:               item.Deductions,
		}
	}
	for i, irr := range run.Irregularities {
		resp.Irregularities[i] = IrregularityResponse{
			ID:                    irr.ID.String(),
			EmployeeID:            irr.EmployeeID.String(),
			Type:                  irr.Type,
			Severity:              irr.Severity,
			RequiresManagerAction: irr.RequiresManagerAction(),
			CurrentValue:          irr.CurrentValue,
			BaselineValue:         irr.BaselineValue,
			VariancePct:           irr.VariancePct,
			Description:           irr.Description,
			Status:                irr.Status,
			ResolvedBy:            uuidString(irr.ResolvedBy),
			ResolvedAt:            irr.ResolvedAt,
			ResolutionNotes:       irr.ResolutionNotes,
		}
	}
	for i, f := range run.Failures {
		resp.Failures[i] = FailureResponse{EmployeeID: f.EmployeeID.String(), Code: f.Code, Message: f.Message}
	}
	for i, t := range run.Transitions {
		resp.Transitions[i] = TransitionResponse{
			Event:      t.Event,
			FromStatus: t.FromStatus,
			ToStatus:   t.ToStatus,
			Frozen:     t.Frozen,
			ActorID:    t.ActorID.String(),
			Reason:     t.Reason,
			CreatedAt:  t.CreatedAt,
		}
	}
	return resp
}
