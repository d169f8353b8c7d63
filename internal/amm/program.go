package amm

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/host"
	"github.com/lugondev/go-amm/internal/ledger"
	"github.com/lugondev/go-amm/internal/metrics"
	"github.com/lugondev/go-amm/pkg/types"
)

// accountView pairs a positional account meta with the stored account behind
// it. The account is nil when nothing exists at the address yet.
type accountView struct {
	meta    types.AccountMeta
	account *types.Account
}

// Pubkey returns the account's address.
func (v accountView) Pubkey() types.Pubkey {
	return v.meta.Pubkey
}

// IsSigner reports whether the transaction carries this account's signature.
func (v accountView) IsSigner() bool {
	return v.meta.IsSigner
}

// Account returns the stored account, or nil if none exists.
func (v accountView) Account() *types.Account {
	return v.account
}

// Processor dispatches instructions to their handlers. One instruction fully
// completes or fails atomically: on any error the account store is rolled
// back to its pre-instruction snapshot.
type Processor struct {
	// Program is the engine's own program id.
	Program types.Pubkey

	// Runtime supplies account state, the clock, and account creation.
	Runtime *host.Runtime

	// Ledger is the external token-ledger collaborator.
	Ledger ledger.Ledger

	// Metrics receives processed/failed instruction counters (optional).
	Metrics *metrics.Collection

	// Logger is used for per-instruction debug logging (optional).
	Logger *slog.Logger
}

// NewProcessor creates a processor over the given runtime and ledger.
func NewProcessor(rt *host.Runtime, l ledger.Ledger) *Processor {
	return &Processor{
		Program: rt.Program,
		Runtime: rt,
		Ledger:  l,
		Metrics: metrics.NewCollection(),
		Logger:  slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (p *Processor) WithLogger(logger *slog.Logger) *Processor {
	if logger != nil {
		p.Logger = logger
	}
	return p
}

// WithMetrics sets the metrics collection.
func (p *Processor) WithMetrics(collection *metrics.Collection) *Processor {
	if collection != nil {
		p.Metrics = collection
	}
	return p
}

// Process executes one instruction. The leading data byte selects the
// handler; the remainder is the handler's fixed-layout payload. Any error
// aborts the instruction with no persisted mutation.
func (p *Processor) Process(ctx context.Context, ix types.Instruction) error {
	traceID := uuid.NewString()
	snapshot := p.Runtime.Store.Snapshot()

	err := p.dispatch(ctx, ix, traceID)
	if err != nil {
		p.Runtime.Store.Restore(snapshot)
		p.Logger.DebugContext(ctx, "instruction failed",
			"trace_id", traceID,
			"error", err,
		)
		_ = p.Metrics.IncrementCounter(ctx, metrics.CounterInstructionsFailed, 1)
		return err
	}

	_ = p.Metrics.IncrementCounter(ctx, metrics.CounterInstructionsProcessed, 1)
	_ = p.Metrics.UpdateGauge(ctx, metrics.GaugeStoredAccounts, float64(p.Runtime.Store.Len()))
	return nil
}

func (p *Processor) dispatch(ctx context.Context, ix types.Instruction, traceID string) error {
	if len(ix.Data) == 0 {
		return errors.ErrInvalidInstructionData
	}
	if !ix.ProgramID.Equals(p.Program) {
		return errors.ErrUnknownInstruction
	}

	views := make([]accountView, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		views[i] = accountView{meta: meta, account: p.Runtime.Store.Get(meta.Pubkey)}
	}

	discriminator := ix.Data[0]
	payload := ix.Data[1:]

	p.Logger.DebugContext(ctx, "dispatch",
		"trace_id", traceID,
		"discriminator", discriminator,
		"accounts", len(views),
	)

	switch discriminator {
	case DiscriminatorInitialize:
		return p.processInitialize(views, payload)
	case DiscriminatorDeposit:
		return p.processDeposit(views, payload)
	case DiscriminatorWithdraw:
		return p.processWithdraw(views, payload)
	case DiscriminatorSwap:
		return p.processSwap(views, payload)
	default:
		return errors.ErrUnknownInstruction
	}
}
