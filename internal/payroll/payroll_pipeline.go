package payroll

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"runtime"
	"sort"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	FailureInvalidProfile    = "INVALID_PROFILE"
	FailureComputationFailed = "COMPUTATION_FAILED"
)

// Pipeline runs resolver, calculator and detector for every employee and
// joins the results in employee id order.
type Pipeline struct {
	resolver   Resolver
	calculator Calculator
	detector   Detector
	workers    int
}

func NewPipeline(cfg Config, workers int) Pipeline {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return Pipeline{
		resolver:   NewResolver(cfg),
		calculator: NewCalculator(cfg),
		detector:   NewDetector(cfg),
		workers:    workers,
	}
}

type employeeResult struct {
	item           *Item
	irregularities []Irregularity
	failure        *ComputationFailure
}

// Run computes every employee. Per-employee profile errors become computation
// failures; ErrMissingRateTable or a cancelled context abort the whole run.
func (p Pipeline) Run(ctx context.Context, runID, companyID uuid.UUID, period Period, inputs []EmployeeInput) (Computation, error) {
	ordered := SortInputs(inputs)
	results := make([]employeeResult, len(ordered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range ordered {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.computeOne(runID, companyID, period, ordered[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Computation{}, err
	}

	var out Computation
	for _, r := range results {
		if r.failure != nil {
			out.Failures = append(out.Failures, *r.failure)
			continue
		}
		out.Items = append(out.Items, *r.item)
		out.Irregularities = append(out.Irregularities, r.irregularities...)
	}
	return out, nil
}

func (p Pipeline) computeOne(runID, companyID uuid.UUID, period Period, in EmployeeInput) (employeeResult, error) {
	employeeID := in.Profile.EmployeeID

	comp, err := p.resolver.Resolve(in.Profile, in.Attendance, period)
	if err != nil {
		return employeeResult{failure: newFailure(runID, companyID, employeeID, err)}, nil
	}

	item, err := p.calculator.Calculate(comp)
	if err != nil {
		if errors.Is(err, payrollerrors.ErrMissingRateTable) {
			return employeeResult{}, err
		}
		return employeeResult{failure: newFailure(runID, companyID, employeeID, err)}, nil
	}
	item.ID = ItemID(runID, employeeID)
	item.RunID = runID
	item.CompanyID = companyID

	return employeeResult{item: &item, irregularities: p.detector.Detect(item, in.Baseline)}, nil
}

func newFailure(runID, companyID, employeeID uuid.UUID, err error) *ComputationFailure {
	code := FailureComputationFailed
	if errors.Is(err, payrollerrors.ErrInvalidProfile) {
		code = FailureInvalidProfile
	} else if appErr, ok := err.(*apperror.AppError); ok {
		code = appErr.Code
	}
	return &ComputationFailure{
		ID:         uuid.NewSHA1(runID, []byte("failure:"+employeeID.String())),
		RunID:      runID,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Code:       code,
		Message:    err.Error(),
	}
}

// SortInputs returns a copy ordered by employee id.
func SortInputs(inputs []EmployeeInput) []EmployeeInput {
	out := append([]EmployeeInput(nil), inputs...)
	sort.SliceStable(out, func(i, j int) bool {
		return bytes.Compare(out[i].Profile.EmployeeID[:], out[j].Profile.EmployeeID[:]) < 0
	})
	return out
}

// InputsDigest fingerprints the config version, period and every employee
// input. Submit compares it against a fresh read of the sources.
func InputsDigest(cfg Config, period Period, inputs []EmployeeInput) (string, error) {
	payload := struct {
		ConfigVersion string          `json:"config_version"`
		Period        Period          `json:"period"`
		Inputs        []EmployeeInput `json:"inputs"`
	}{
		ConfigVersion: cfg.Version,
		Period:        period,
		Inputs:        SortInputs(inputs),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
