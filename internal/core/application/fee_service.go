package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// FeeService manages the global flat fee configuration and the accumulated
// fee balance. The fee rate and the recipient are administrator settings,
// withdrawals are restricted to the designated recipient.
type FeeService interface {
	SetFlatFee(ctx context.Context, caller string, amount uint64) error
	SetFeeRecipient(ctx context.Context, caller, recipient string) error
	WithdrawFees(ctx context.Context, caller string, amount uint64) error
	GetFeeInfo(ctx context.Context) (*FeeInfo, error)
}

type feeService struct {
	repoManager   ports.RepoManager
	adapters      ports.AdapterRegistry
	pubsub        ports.SecurePubSub
	guard         *CallGuard
	administrator string
	feeAssetRef   string
}

// NewFeeService returns a FeeService sharing the call guard with the trade
// service.
func NewFeeService(
	repoManager ports.RepoManager, adapters ports.AdapterRegistry,
	pubsub ports.SecurePubSub, guard *CallGuard,
	administrator, feeAssetRef string,
) FeeService {
	return &feeService{
		repoManager:   repoManager,
		adapters:      adapters,
		pubsub:        pubsub,
		guard:         guard,
		administrator: administrator,
		feeAssetRef:   feeAssetRef,
	}
}

func (s *feeService) SetFlatFee(
	ctx context.Context, caller string, amount uint64,
) error {
	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer s.guard.Exit()

	if caller != s.administrator {
		return ErrNotAdministrator
	}

	if err := s.repoManager.FeeRepository().UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			l.FlatFee = amount
			return l, nil
		},
	); err != nil {
		return err
	}

	log.WithField("flat_fee", amount).Info("fee rate updated")
	publishEvents(s.pubsub, []event{
		{TopicFeeRateUpdated, feeRateNotification{FlatFee: amount}},
	})
	return nil
}

func (s *feeService) SetFeeRecipient(
	ctx context.Context, caller, recipient string,
) error {
	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer s.guard.Exit()

	if caller != s.administrator {
		return ErrNotAdministrator
	}

	if err := s.repoManager.FeeRepository().UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			l.Recipient = recipient
			return l, nil
		},
	); err != nil {
		return err
	}

	log.WithField("recipient", recipient).Info("fee recipient updated")
	publishEvents(s.pubsub, []event{
		{TopicFeeRecipientUpdated, feeRecipientNotification{Recipient: recipient}},
	})
	return nil
}

func (s *feeService) WithdrawFees(
	ctx context.Context, caller string, amount uint64,
) error {
	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer s.guard.Exit()

	return s.repoManager.FeeRepository().UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			if l.Recipient == "" || caller != l.Recipient {
				return nil, ErrNotFeeRecipient
			}
			if err := l.Withdraw(amount); err != nil {
				return nil, err
			}

			fungible, err := s.adapters.Adapter(domain.AssetKindFungible)
			if err != nil {
				return nil, err
			}
			withdrawal := domain.Asset{
				Kind:      domain.AssetKindFungible,
				Reference: s.feeAssetRef,
				Quantity:  amount,
			}
			if err := fungible.Payout(ctx, caller, withdrawal); err != nil {
				return nil, fmt.Errorf("withdrawing fees: %w", err)
			}
			return l, nil
		},
	)
}

func (s *feeService) GetFeeInfo(ctx context.Context) (*FeeInfo, error) {
	ledger, err := s.repoManager.FeeRepository().GetFeeLedger(ctx)
	if err != nil {
		return nil, err
	}
	return &FeeInfo{
		FlatFee:     ledger.FlatFee,
		Recipient:   ledger.Recipient,
		Accumulated: ledger.Accumulated,
	}, nil
}
