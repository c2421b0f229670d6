package quote

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
	"github.com/niltaduartte/humano-saude-sub001/internal/core"
)

const defaultCatalogTimeout = 3 * time.Second

type Options struct {
	// CatalogTimeout bounds each catalog read; zero uses the default.
	CatalogTimeout time.Duration
	// Estimates overrides the fallback discount table.
	Estimates []Estimate
}

// Service runs quote simulations. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	catalogs core.CatalogReader
	carriers *carrier.Resolver
	calc     *Calculator
	fallback *FallbackEstimator
	log      *zap.Logger
	timeout  time.Duration
}

func NewService(
	catalogs core.CatalogReader,
	carriers *carrier.Resolver,
	log *zap.Logger,
	opts Options,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if carriers == nil {
		carriers = carrier.Default()
	}
	timeout := opts.CatalogTimeout
	if timeout <= 0 {
		timeout = defaultCatalogTimeout
	}

	return &Service{
		catalogs: catalogs,
		carriers: carriers,
		calc:     NewCalculator(carriers),
		fallback: NewFallbackEstimator(opts.Estimates, carriers),
		log:      log,
		timeout:  timeout,
	}
}

// Validate checks the request invariants.
func (r Request) Validate() error {
	if !r.CurrentSpend.IsPositive() {
		return fmt.Errorf("%w: valor_atual must be greater than zero", ErrInvalidRequest)
	}
	if len(r.Ages) == 0 {
		return fmt.Errorf("%w: idades must not be empty", ErrInvalidRequest)
	}
	return nil
}

// --------------------------------------------------
// Simulate
// --------------------------------------------------
func (s *Service) Simulate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	brackets := bracket.NormalizeAll(req.Ages)
	q := quoteContext{
		spend:          req.CurrentSpend,
		brackets:       brackets,
		modality:       ClassifyModality(req.PersonType, len(brackets)),
		currentCarrier: s.carriers.Resolve(req.CurrentCarrier),
	}

	current, legacy := s.readCatalogs(ctx, q.modality)

	currentEntries := make([]catalog.Entry, 0, len(current))
	for _, p := range current {
		currentEntries = append(currentEntries, p.Entry(s.carriers))
	}
	legacyEntries := make([]catalog.Entry, 0, len(legacy))
	for _, p := range legacy {
		legacyEntries = append(legacyEntries, p.Entry(s.carriers))
	}

	merged := MergeSources(
		s.calc.Price(currentEntries, q),
		s.calc.Price(legacyEntries, q),
	)
	proposals := Rank(merged, MaxProposals)

	estimated := false
	if len(proposals) == 0 {
		proposals = Rank(s.fallback.Estimate(q), MaxProposals)
		estimated = true
		s.log.Info("no catalog match, using estimates",
			zap.String("modality", string(q.modality)),
			zap.Int("lives", q.lives()),
			zap.String("current_carrier", q.currentCarrier),
		)
	}

	return &Result{
		Proposals:    proposals,
		CurrentSpend: req.CurrentSpend,
		Lives:        q.lives(),
		Modality:     q.modality,
		Estimated:    estimated,
	}, nil
}

// readCatalogs fetches both catalogs concurrently and waits for both. A
// failed read is logged and treated as an empty catalog.
func (s *Service) readCatalogs(
	ctx context.Context,
	modality catalog.Modality,
) ([]catalog.CurrentPlan, []catalog.LegacyPlan) {
	readCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		current []catalog.CurrentPlan
		legacy  []catalog.LegacyPlan
		g       errgroup.Group
	)

	g.Go(s.guardRead(catalog.SourceCurrent, func() error {
		plans, err := s.catalogs.CurrentPlans(readCtx, modality)
		if err != nil {
			return err
		}
		current = plans
		return nil
	}))

	g.Go(s.guardRead(catalog.SourceLegacy, func() error {
		plans, err := s.catalogs.LegacyPlans(readCtx, string(modality))
		if err != nil {
			return err
		}
		legacy = plans
		return nil
	}))

	_ = g.Wait()
	return current, legacy
}

// guardRead runs a catalog read off the request goroutine, where a panic
// would otherwise take the process down. Errors and panics are logged and
// leave that catalog empty.
func (s *Service) guardRead(source catalog.Source, read func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("catalog read panicked",
					zap.String("catalog", string(source)),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
			}
		}()

		if err := read(); err != nil {
			s.log.Warn("catalog read failed",
				zap.String("catalog", string(source)),
				zap.Error(err),
			)
		}
		return nil
	}
}

// Carriers lists the carriers the resolver knows about.
func (s *Service) Carriers() []carrier.Info {
	return s.carriers.Known()
}
