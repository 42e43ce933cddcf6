package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/internal/stats"
)

// TradeService is the registry and state machine orchestrating the whole
// trade lifecycle. Every mutating operation holds the shared call guard for
// its entire duration and is all-or-nothing: on any error, every custody
// movement attempted earlier within the same call is compensated. Custody
// movements that cannot be compensated stay on record, so the stored flags
// always agree with the assets the custodian actually holds.
type TradeService interface {
	CreateTrade(
		ctx context.Context, participants []string, manifest []domain.Asset,
		duration time.Duration,
	) (uint64, error)
	DepositAsset(
		ctx context.Context, tradeId uint64,
		descriptor domain.AssetDescriptor, caller string, feePayment uint64,
	) error
	BatchDepositAssets(
		ctx context.Context, tradeId uint64,
		descriptors []domain.AssetDescriptor, caller string, feePayment uint64,
	) error
	ConfirmTrade(ctx context.Context, tradeId uint64, caller string) error
	CancelTrade(ctx context.Context, tradeId uint64, caller string) error
	ReclaimAssets(ctx context.Context, tradeId uint64, caller string) error
	GetTradeStatus(ctx context.Context, tradeId uint64) (*TradeStatusInfo, error)
	GetTradeInfo(ctx context.Context, tradeId uint64) (*TradeInfo, error)
	GetMultipleTradeStatuses(
		ctx context.Context, tradeIds []uint64,
	) ([]*TradeStatusInfo, error)
}

type tradeService struct {
	repoManager         ports.RepoManager
	adapters            ports.AdapterRegistry
	pubsub              ports.SecurePubSub
	guard               *CallGuard
	feeAssetRef         string
	requireConfirmation bool
	now                 func() time.Time
}

// NewTradeService returns a TradeService backed by the given repositories,
// transfer adapters and notification service. The guard must be shared with
// every other service exposing mutating operations.
func NewTradeService(
	repoManager ports.RepoManager, adapters ports.AdapterRegistry,
	pubsub ports.SecurePubSub, guard *CallGuard,
	feeAssetRef string, requireConfirmation bool,
) TradeService {
	return &tradeService{
		repoManager:         repoManager,
		adapters:            adapters,
		pubsub:              pubsub,
		guard:               guard,
		feeAssetRef:         feeAssetRef,
		requireConfirmation: requireConfirmation,
		now:                 time.Now,
	}
}

func (s *tradeService) CreateTrade(
	ctx context.Context, participants []string, manifest []domain.Asset,
	duration time.Duration,
) (uint64, error) {
	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return 0, err
	}
	defer s.guard.Exit()

	tradeRepo := s.repoManager.TradeRepository()
	tradeId, err := tradeRepo.NextTradeId(ctx)
	if err != nil {
		return 0, err
	}

	trade, err := domain.NewTrade(tradeId, participants, manifest, duration, s.now())
	if err != nil {
		return 0, err
	}
	if err := tradeRepo.AddTrade(ctx, trade); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"trade_id":     tradeId,
		"participants": len(participants),
		"assets":       trade.TotalCount,
	}).Info("trade created")
	stats.TradesCreated.Inc()

	publishEvents(s.pubsub, []event{{TopicTradeCreated, tradeInfo(trade)}})
	return tradeId, nil
}

func (s *tradeService) DepositAsset(
	ctx context.Context, tradeId uint64,
	descriptor domain.AssetDescriptor, caller string, feePayment uint64,
) error {
	return s.BatchDepositAssets(
		ctx, tradeId, []domain.AssetDescriptor{descriptor}, caller, feePayment,
	)
}

func (s *tradeService) BatchDepositAssets(
	ctx context.Context, tradeId uint64,
	descriptors []domain.AssetDescriptor, caller string, feePayment uint64,
) error {
	if len(descriptors) <= 0 {
		return ErrEmptyBatch
	}
	if len(descriptors) > domain.MaxBatchSize {
		return ErrBatchTooLarge
	}

	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer s.guard.Exit()

	feeLedger, err := s.repoManager.FeeRepository().GetFeeLedger(ctx)
	if err != nil {
		return err
	}

	var events []event
	var feeCharged uint64
	var deposited int
	var executed bool
	// set when the store must be updated even though the call failed, so
	// that the recorded flags never disagree with actual custody
	var callErr error

	err = s.repoManager.TradeRepository().UpdateTrade(
		ctx, tradeId, func(t *domain.Trade) (*domain.Trade, error) {
			now := s.now()
			if !t.IsActive() {
				return nil, domain.ErrTradeNotActive
			}
			if t.IsExpired(now) {
				return nil, domain.ErrTradeExpired
			}
			if !t.HasParticipant(caller) {
				return nil, domain.ErrNotParticipant
			}

			var requiredFee uint64
			if feeLedger.FlatFee > 0 && !t.FeePaid[caller] {
				requiredFee = feeLedger.FlatFee
			}
			if feePayment != requiredFee {
				return nil, domain.ErrWrongFeePayment
			}

			// Custody movements performed so far within this call. On any
			// later failure they are compensated before surfacing the error.
			// An entry whose compensation fails keeps its flag and gets
			// persisted: custody stayed with the custodian, so the record
			// must say so too.
			var moved []domain.Asset
			abort := func(cause error) (*domain.Trade, error) {
				events = events[:0]
				for i := len(moved) - 1; i >= 0; i-- {
					if err := s.payout(ctx, moved[i].Source, moved[i]); err != nil {
						log.WithError(err).WithField("reference", moved[i].Reference).
							Error("failed to return custody, keeping deposit on record")
						deposited++
						events = append(events, event{TopicAssetDeposited, depositNotification{
							TradeId: t.Id, Depositor: caller, Asset: assetInfo(moved[i]),
						}})
						continue
					}
					t.RevertDeposit(moved[i])
				}
				if feePayment > 0 {
					if err := s.payout(
						ctx, caller, s.feeAsset(caller, feePayment),
					); err != nil {
						log.WithError(err).WithField("participant", caller).
							Error("failed to return fee payment, keeping fee on record")
						t.FeePaid[caller] = true
						feeCharged = feePayment
						events = append(events, event{TopicFeePaid, feeNotification{
							TradeId: t.Id, Participant: caller, Amount: feePayment,
						}})
					}
				}
				if deposited == 0 && feeCharged == 0 {
					return nil, cause
				}
				callErr = cause
				return t, nil
			}

			if feePayment > 0 {
				fungible, err := s.adapters.Adapter(domain.AssetKindFungible)
				if err != nil {
					return nil, err
				}
				if err := fungible.Deposit(
					ctx, caller, s.feeAsset(caller, feePayment),
				); err != nil {
					return nil, fmt.Errorf("collecting fee: %w", err)
				}
			}

			for _, descriptor := range descriptors {
				asset, err := t.Deposit(caller, descriptor, now)
				if err != nil {
					return abort(err)
				}
				adapter, err := s.adapters.Adapter(asset.Kind)
				if err != nil {
					return abort(err)
				}
				if err := adapter.Deposit(ctx, caller, *asset); err != nil {
					return abort(fmt.Errorf("taking custody: %w", err))
				}
				moved = append(moved, *asset)
				events = append(events, event{TopicAssetDeposited, depositNotification{
					TradeId: t.Id, Depositor: caller, Asset: assetInfo(*asset),
				}})
			}
			deposited = len(moved)

			if feePayment > 0 {
				t.FeePaid[caller] = true
				feeCharged = feePayment
				events = append(events, event{TopicFeePaid, feeNotification{
					TradeId: t.Id, Participant: caller, Amount: feePayment,
				}})
			}

			if s.completionHolds(t) {
				if err := s.execute(ctx, t); err != nil {
					// the deposits stand and the trade stays active, so the
					// held assets remain cancellable and reclaimable
					callErr = err
					return t, nil
				}
				executed = true
				events = append(events, event{TopicTradeCompleted, tradeInfo(t)})
			}
			return t, nil
		},
	)
	if err != nil {
		return err
	}

	if feeCharged > 0 {
		if err := s.repoManager.FeeRepository().UpdateFeeLedger(
			ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
				l.Collect(feeCharged)
				return l, nil
			},
		); err != nil {
			log.WithError(err).Error("failed to record collected fee")
		}
		stats.FeesCollected.Add(float64(feeCharged))
	}
	stats.AssetsDeposited.Add(float64(deposited))
	if executed {
		stats.TradesExecuted.Inc()
		log.WithField("trade_id", tradeId).Info("trade executed")
	}

	publishEvents(s.pubsub, events)
	return callErr
}

func (s *tradeService) ConfirmTrade(
	ctx context.Context, tradeId uint64, caller string,
) error {
	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer s.guard.Exit()

	feeLedger, err := s.repoManager.FeeRepository().GetFeeLedger(ctx)
	if err != nil {
		return err
	}

	var events []event
	var executed bool
	var callErr error

	err = s.repoManager.TradeRepository().UpdateTrade(
		ctx, tradeId, func(t *domain.Trade) (*domain.Trade, error) {
			if err := t.Confirm(caller, s.now()); err != nil {
				return nil, err
			}
			// a fee raised after the participant's deposits leaves the fee
			// unpaid and blocks confirmation
			if feeLedger.FlatFee > 0 && !t.FeePaid[caller] &&
				len(t.Assets[caller]) > 0 {
				return nil, domain.ErrFeeNotPaid
			}

			events = append(events, event{TopicTradeConfirmed, confirmNotification{
				TradeId: t.Id, Participant: caller,
				ConfirmedCount: t.ConfirmedCount(),
			}})

			if s.completionHolds(t) {
				if err := s.execute(ctx, t); err != nil {
					// the confirmation stands and the trade stays active
					callErr = err
					return t, nil
				}
				executed = true
				events = append(events, event{TopicTradeCompleted, tradeInfo(t)})
			}
			return t, nil
		},
	)
	if err != nil {
		return err
	}

	if executed {
		stats.TradesExecuted.Inc()
		log.WithField("trade_id", tradeId).Info("trade executed")
	}
	publishEvents(s.pubsub, events)
	return callErr
}

func (s *tradeService) CancelTrade(
	ctx context.Context, tradeId uint64, caller string,
) error {
	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer s.guard.Exit()

	var events []event
	err = s.repoManager.TradeRepository().UpdateTrade(
		ctx, tradeId, func(t *domain.Trade) (*domain.Trade, error) {
			refunds, err := t.Cancel(caller)
			if err != nil {
				return nil, err
			}
			if err := s.payoutAll(ctx, refunds, refundRecipient); err != nil {
				return nil, err
			}
			events = append(events, event{TopicTradeCancelled, tradeInfo(t)})
			return t, nil
		},
	)
	if err != nil {
		return err
	}

	stats.TradesCancelled.Inc()
	log.WithFields(log.Fields{
		"trade_id": tradeId, "caller": caller,
	}).Info("trade cancelled")
	publishEvents(s.pubsub, events)
	return nil
}

func (s *tradeService) ReclaimAssets(
	ctx context.Context, tradeId uint64, caller string,
) error {
	ctx, err := s.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer s.guard.Exit()

	var events []event
	var reclaimed int
	err = s.repoManager.TradeRepository().UpdateTrade(
		ctx, tradeId, func(t *domain.Trade) (*domain.Trade, error) {
			refunds, err := t.Reclaim(caller, s.now())
			if err != nil {
				return nil, err
			}
			if err := s.payoutAll(ctx, refunds, refundRecipient); err != nil {
				return nil, err
			}
			reclaimed = len(refunds)
			events = append(events, event{TopicAssetsReclaimed, reclaimNotification{
				TradeId: t.Id, Participant: caller, AssetCount: len(refunds),
				TradeStatus: t.Status.String(),
			}})
			return t, nil
		},
	)
	if err != nil {
		return err
	}

	stats.AssetsReclaimed.Add(float64(reclaimed))
	publishEvents(s.pubsub, events)
	return nil
}

func (s *tradeService) GetTradeStatus(
	ctx context.Context, tradeId uint64,
) (*TradeStatusInfo, error) {
	trade, err := s.repoManager.TradeRepository().GetTrade(ctx, tradeId)
	if err != nil {
		return nil, err
	}
	return tradeStatusInfo(trade), nil
}

func (s *tradeService) GetTradeInfo(
	ctx context.Context, tradeId uint64,
) (*TradeInfo, error) {
	trade, err := s.repoManager.TradeRepository().GetTrade(ctx, tradeId)
	if err != nil {
		return nil, err
	}
	return tradeInfo(trade), nil
}

func (s *tradeService) GetMultipleTradeStatuses(
	ctx context.Context, tradeIds []uint64,
) ([]*TradeStatusInfo, error) {
	if len(tradeIds) > 10 {
		return nil, ErrTooManyTrades
	}
	statuses := make([]*TradeStatusInfo, 0, len(tradeIds))
	for _, id := range tradeIds {
		status, err := s.GetTradeStatus(ctx, id)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// completionHolds evaluates the completion predicate after every deposit
// and confirmation.
func (s *tradeService) completionHolds(t *domain.Trade) bool {
	if s.requireConfirmation {
		return t.AllConfirmed()
	}
	return t.AllDeposited()
}

// execute distributes every deposited asset to its declared recipient. It
// is the single authoritative path performing irrevocable payout and it is
// never directly callable from the outside. The trade flips to Executed
// only after the last transfer went through. Any transfer failure aborts
// the whole distribution: payouts already performed are recalled into
// custody and the trade keeps its deposits and its Active status, so the
// held assets remain cancellable and reclaimable.
func (s *tradeService) execute(ctx context.Context, t *domain.Trade) error {
	if !t.IsActive() {
		return domain.ErrTradeNotActive
	}

	var paid []domain.Asset
	for _, asset := range t.DepositedAssets() {
		adapter, err := s.adapters.Adapter(asset.Kind)
		if err == nil {
			err = adapter.Payout(ctx, asset.Destination, asset)
		}
		if err != nil {
			for i := len(paid) - 1; i >= 0; i-- {
				s.mustRecall(ctx, paid[i].Destination, paid[i])
			}
			return fmt.Errorf("distributing assets: %w", err)
		}
		paid = append(paid, asset)
	}
	return t.Execute()
}

// refundRecipient routes a custody release back to the original depositor.
func refundRecipient(a domain.Asset) string { return a.Source }

// payoutAll releases custody of the given assets, recalling the ones
// already released if a later transfer fails.
func (s *tradeService) payoutAll(
	ctx context.Context, assets []domain.Asset,
	recipient func(domain.Asset) string,
) error {
	var released []domain.Asset
	for _, asset := range assets {
		adapter, err := s.adapters.Adapter(asset.Kind)
		if err == nil {
			err = adapter.Payout(ctx, recipient(asset), asset)
		}
		if err != nil {
			for i := len(released) - 1; i >= 0; i-- {
				s.mustRecall(ctx, recipient(released[i]), released[i])
			}
			return fmt.Errorf("releasing custody: %w", err)
		}
		released = append(released, asset)
	}
	return nil
}

// payout releases custody of a single asset back to the given holder.
func (s *tradeService) payout(
	ctx context.Context, to string, asset domain.Asset,
) error {
	adapter, err := s.adapters.Adapter(asset.Kind)
	if err == nil {
		err = adapter.Payout(ctx, to, asset)
	}
	return err
}

// mustRecall compensates an already performed payout.
func (s *tradeService) mustRecall(
	ctx context.Context, holder string, asset domain.Asset,
) {
	adapter, err := s.adapters.Adapter(asset.Kind)
	if err == nil {
		err = adapter.Recall(ctx, holder, asset)
	}
	if err != nil {
		log.WithError(err).WithField("reference", asset.Reference).
			Error("failed to recall distributed asset")
	}
}

// feeAsset is the synthetic fungible record used to move fee payments.
func (s *tradeService) feeAsset(payer string, amount uint64) domain.Asset {
	return domain.Asset{
		Kind:      domain.AssetKindFungible,
		Reference: s.feeAssetRef,
		Quantity:  amount,
		Source:    payer,
	}
}
