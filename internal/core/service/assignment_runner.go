package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/port"
)

var ErrRunInProgress = errors.New("auto-assignment run already in progress")

const runLockKey = "inventory:auto-assign:lock"

// AssignmentRunner is the batch that pre-allocates stock for contracts
// whose event is at most one month out. Runs are non-reentrant: the
// local guard rejects overlap inside the process and the run lock
// rejects it across replicas.
type AssignmentRunner struct {
	contracts port.ContractReader
	allocator *AllocationService
	locker    port.RunLocker
	log       *zap.SugaredLogger

	running atomic.Bool
}

func NewAssignmentRunner(contracts port.ContractReader, allocator *AllocationService, locker port.RunLocker, log *zap.SugaredLogger) *AssignmentRunner {
	return &AssignmentRunner{
		contracts: contracts,
		allocator: allocator,
		locker:    locker,
		log:       log,
	}
}

// Run selects eligible contracts and allocates them sequentially.
// Per-contract failures are counted and logged; they never abort the
// rest of the batch. Running twice in a row allocates each contract at
// most once, since assigned contracts drop out of the eligibility set.
func (r *AssignmentRunner) Run(ctx context.Context) (domain.RunSummary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return domain.RunSummary{}, ErrRunInProgress
	}
	defer r.running.Store(false)

	if r.locker != nil {
		ok, err := r.locker.Acquire(ctx, runLockKey)
		if err != nil {
			return domain.RunSummary{}, err
		}
		if !ok {
			return domain.RunSummary{}, ErrRunInProgress
		}
		defer r.locker.Release(ctx, runLockKey)
	}

	now := time.Now()
	eligible, err := r.contracts.ListEligible(ctx, now, now.AddDate(0, 1, 0))
	if err != nil {
		return domain.RunSummary{}, err
	}

	summary := domain.RunSummary{TotalEligible: len(eligible)}
	r.log.Infow("auto-assignment run started", "eligible", len(eligible))

	for _, contract := range eligible {
		allocations, err := r.allocator.AllocateContract(ctx, contract.ID, false)
		if err != nil {
			summary.Errors++
			r.log.Errorw("auto-assignment failed for contract",
				"contract_id", contract.ID,
				"contract_code", contract.Code,
				"error", err,
			)
			continue
		}

		summary.Assigned++
		r.log.Infow("inventory assigned to contract",
			"contract_id", contract.ID,
			"contract_code", contract.Code,
			"items", len(allocations),
		)
	}

	r.log.Infow("auto-assignment run finished",
		"eligible", summary.TotalEligible,
		"assigned", summary.Assigned,
		"errors", summary.Errors,
	)
	return summary, nil
}
