// Package memory holds the authoritative ledger state: campaigns, per-backer
// share holdings, refund balances, collected fees, the account registry and
// the append-only event log. It is the single owned store object passed by
// reference to every service; there is no ambient global state.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	"github.com/OpenPledge/crowdfund_ledger/internal/utils"
	"github.com/OpenPledge/crowdfund_ledger/internal/utils/keymutex"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// campaignRecord pairs a campaign with its per-backer holdings. All mutable
// fields are guarded by the store's per-campaign key mutex; immutable fields
// (ID, Entrepreneur, SharePrice, TotalShares, Title, CreatedAt) are safe to
// read after publication.
type campaignRecord struct {
	campaign domain.Campaign
	pledges  map[string]int64 // backer address -> shares held
}

// LedgerStore implements every repository port over in-process state.
//
// Lock order, outermost first: per-campaign key mutex / campaignsMu,
// registryMu, balancesMu, eventsMu. Every transition validates before its
// first write, and in-memory writes cannot fail, so a call either fully
// applies and appends its event or applies nothing.
type LedgerStore struct {
	campaignsMu sync.RWMutex
	campaigns   []*campaignRecord // index = id - 1; append-only

	locks *keymutex.KeyMutex // serializes all access to a campaign's mutable state

	registryMu     sync.RWMutex
	owner          string
	secondaryAdmin string
	banned         map[string]struct{}
	active         bool

	balancesMu sync.Mutex
	refunds    map[string]decimal.Decimal // backer address -> claimable balance
	fees       decimal.Decimal

	eventsMu sync.Mutex
	events   []domain.Event
	hooks    []func(domain.Event)
}

// NewLedgerStore creates an active store with the given primary owner and the
// fixed secondary admin trust anchor. Addresses are normalized once here so
// every later comparison is a plain map lookup or string equality.
func NewLedgerStore(owner string, secondaryAdmin string) *LedgerStore {
	return &LedgerStore{
		locks:          keymutex.New(),
		owner:          utils.NormalizeAddress(owner),
		secondaryAdmin: utils.NormalizeAddress(secondaryAdmin),
		banned:         make(map[string]struct{}),
		active:         true,
		refunds:        make(map[string]decimal.Decimal),
		fees:           decimal.Zero,
	}
}

// Interface conformance checks.
var (
	_ portsrepo.CampaignRepositoryFacade   = (*LedgerStore)(nil)
	_ portsrepo.PledgeRepositoryFacade     = (*LedgerStore)(nil)
	_ portsrepo.RegistryRepositoryFacade   = (*LedgerStore)(nil)
	_ portsrepo.SettlementRepositoryFacade = (*LedgerStore)(nil)
	_ portsrepo.EventReader                = (*LedgerStore)(nil)
)

// Provider returns a RepositoryProvider backed entirely by this store.
func (s *LedgerStore) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CampaignRepo:   s,
		PledgeRepo:     s,
		RegistryRepo:   s,
		SettlementRepo: s,
		EventRepo:      s,
	}
}

// RegisterAppendHook adds a callback invoked for every committed event, in
// sequence order. Hooks run inside the event log critical section and must
// not block; register hooks before the store starts serving requests.
func (s *LedgerStore) RegisterAppendHook(hook func(domain.Event)) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	s.hooks = append(s.hooks, hook)
}

func (s *LedgerStore) record(campaignID uint64) (*campaignRecord, error) {
	s.campaignsMu.RLock()
	defer s.campaignsMu.RUnlock()
	if campaignID == 0 || campaignID > uint64(len(s.campaigns)) {
		return nil, fmt.Errorf("%w: campaign %d", apperrors.ErrNotFound, campaignID)
	}
	return s.campaigns[campaignID-1], nil
}

func (s *LedgerStore) isActive() bool {
	s.registryMu.RLock()
	defer s.registryMu.RUnlock()
	return s.active
}

// appendEvent assigns the next sequence and commits the event. Callers must
// invoke it while still holding the lock that serialized the transition, so
// per-campaign event order equals commit order.
func (s *LedgerStore) appendEvent(kind domain.EventKind, campaignID uint64, addr string, amount decimal.Decimal) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()

	ev := domain.Event{
		Sequence:   uint64(len(s.events)) + 1,
		EventID:    uuid.NewString(),
		Kind:       kind,
		CampaignID: campaignID,
		Address:    addr,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
	s.events = append(s.events, ev)
	for _, hook := range s.hooks {
		hook(ev)
	}
}

// --- CampaignReader ---

func (s *LedgerStore) FindCampaignByID(ctx context.Context, campaignID uint64) (*domain.Campaign, error) {
	rec, err := s.record(campaignID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(campaignID)
	defer s.locks.Unlock(campaignID)
	snapshot := rec.campaign
	return &snapshot, nil
}

func (s *LedgerStore) ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error) {
	s.campaignsMu.RLock()
	total := len(s.campaigns)
	s.campaignsMu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.Campaign{}, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]domain.Campaign, 0, end-offset)
	for id := uint64(offset + 1); id <= uint64(end); id++ {
		snap, err := s.FindCampaignByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, nil
}

func (s *LedgerStore) CampaignCount(ctx context.Context) (uint64, error) {
	s.campaignsMu.RLock()
	defer s.campaignsMu.RUnlock()
	return uint64(len(s.campaigns)), nil
}

// --- CampaignWriter ---

func (s *LedgerStore) CreateCampaign(ctx context.Context, campaign domain.Campaign, listingValue decimal.Decimal) (*domain.Campaign, error) {
	s.campaignsMu.Lock()
	defer s.campaignsMu.Unlock()

	s.registryMu.RLock()
	active := s.active
	_, isBanned := s.banned[utils.NormalizeAddress(campaign.Entrepreneur)]
	s.registryMu.RUnlock()
	if !active {
		return nil, apperrors.ErrContractInactive
	}
	if isBanned {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBanned, campaign.Entrepreneur)
	}

	campaign.ID = uint64(len(s.campaigns)) + 1
	campaign.Entrepreneur = utils.NormalizeAddress(campaign.Entrepreneur)
	campaign.Status = domain.CampaignActive
	campaign.CurrentShares = 0
	campaign.CollectedFunds = decimal.Zero
	campaign.CreatedAt = time.Now().UTC()

	s.campaigns = append(s.campaigns, &campaignRecord{
		campaign: campaign,
		pledges:  make(map[string]int64),
	})

	s.balancesMu.Lock()
	s.fees = s.fees.Add(listingValue)
	s.balancesMu.Unlock()

	s.appendEvent(domain.EventCampaignCreated, campaign.ID, campaign.Entrepreneur, listingValue)

	snapshot := campaign
	return &snapshot, nil
}

func (s *LedgerStore) CancelCampaign(ctx context.Context, campaignID uint64) (*domain.Campaign, map[string]decimal.Decimal, error) {
	rec, err := s.record(campaignID)
	if err != nil {
		return nil, nil, err
	}

	s.locks.Lock(campaignID)
	defer s.locks.Unlock(campaignID)

	if !s.isActive() {
		return nil, nil, apperrors.ErrContractInactive
	}
	if rec.campaign.Status != domain.CampaignActive {
		return nil, nil, fmt.Errorf("%w: campaign %d is %s", apperrors.ErrInvalidState, campaignID, rec.campaign.Status)
	}

	credits := make(map[string]decimal.Decimal, len(rec.pledges))
	refunded := decimal.Zero
	for backer, shares := range rec.pledges {
		amount := rec.campaign.SharePrice.Mul(decimal.NewFromInt(shares))
		credits[backer] = amount
		refunded = refunded.Add(amount)
	}

	s.balancesMu.Lock()
	for backer, amount := range credits {
		s.refunds[backer] = s.refundBalanceLocked(backer).Add(amount)
	}
	s.balancesMu.Unlock()

	now := time.Now().UTC()
	rec.pledges = make(map[string]int64)
	rec.campaign.Status = domain.CampaignCancelled
	rec.campaign.CollectedFunds = decimal.Zero
	rec.campaign.SettledAt = &now

	s.appendEvent(domain.EventCampaignCancelled, campaignID, rec.campaign.Entrepreneur, refunded)

	snapshot := rec.campaign
	return &snapshot, credits, nil
}

func (s *LedgerStore) CompleteCampaign(ctx context.Context, campaignID uint64, feeRateBasisPoints int64) (*domain.Campaign, *domain.Settlement, error) {
	rec, err := s.record(campaignID)
	if err != nil {
		return nil, nil, err
	}

	s.locks.Lock(campaignID)
	defer s.locks.Unlock(campaignID)

	if !s.isActive() {
		return nil, nil, apperrors.ErrContractInactive
	}
	if rec.campaign.Status != domain.CampaignActive {
		return nil, nil, fmt.Errorf("%w: campaign %d is %s", apperrors.ErrInvalidState, campaignID, rec.campaign.Status)
	}
	if !rec.campaign.FullySubscribed() {
		return nil, nil, fmt.Errorf("%w: campaign %d has %d of %d shares",
			apperrors.ErrInvalidState, campaignID, rec.campaign.CurrentShares, rec.campaign.TotalShares)
	}

	gross := rec.campaign.CollectedFunds
	fee := gross.Mul(decimal.NewFromInt(feeRateBasisPoints)).Div(decimal.NewFromInt(10000)).Floor()
	net := gross.Sub(fee)

	s.balancesMu.Lock()
	s.fees = s.fees.Add(fee)
	s.balancesMu.Unlock()

	now := time.Now().UTC()
	rec.campaign.Status = domain.CampaignCompleted
	rec.campaign.CollectedFunds = decimal.Zero
	rec.campaign.SettledAt = &now

	settlement := &domain.Settlement{
		CampaignID: campaignID,
		Recipient:  rec.campaign.Entrepreneur,
		Gross:      gross,
		Fee:        fee,
		NetPayout:  net,
		SettledAt:  now,
	}

	s.appendEvent(domain.EventCampaignCompleted, campaignID, rec.campaign.Entrepreneur, net)

	snapshot := rec.campaign
	return &snapshot, settlement, nil
}

// --- PledgeReader / PledgeWriter ---

func (s *LedgerStore) SharesPerBacker(ctx context.Context, campaignID uint64, backer string) (int64, error) {
	rec, err := s.record(campaignID)
	if err != nil {
		return 0, err
	}

	s.locks.Lock(campaignID)
	defer s.locks.Unlock(campaignID)
	return rec.pledges[utils.NormalizeAddress(backer)], nil
}

func (s *LedgerStore) ApplyPledge(ctx context.Context, campaignID uint64, backer string, payment decimal.Decimal) (*domain.Campaign, error) {
	rec, err := s.record(campaignID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(campaignID)
	defer s.locks.Unlock(campaignID)

	if !s.isActive() {
		return nil, apperrors.ErrContractInactive
	}
	if rec.campaign.Status != domain.CampaignActive {
		return nil, fmt.Errorf("%w: campaign %d is %s", apperrors.ErrInvalidState, campaignID, rec.campaign.Status)
	}
	if rec.campaign.FullySubscribed() {
		return nil, fmt.Errorf("%w: campaign %d", apperrors.ErrOverfunded, campaignID)
	}
	surplus := payment.Sub(rec.campaign.SharePrice)
	if surplus.Sign() < 0 {
		return nil, fmt.Errorf("%w: payment %s below share price %s",
			apperrors.ErrInvalidPayment, payment, rec.campaign.SharePrice)
	}

	addr := utils.NormalizeAddress(backer)
	rec.campaign.CurrentShares++
	rec.pledges[addr]++
	rec.campaign.CollectedFunds = rec.campaign.CollectedFunds.Add(rec.campaign.SharePrice)

	if surplus.Sign() > 0 {
		s.balancesMu.Lock()
		s.refunds[addr] = s.refundBalanceLocked(addr).Add(surplus)
		s.balancesMu.Unlock()
	}

	s.appendEvent(domain.EventSharesPurchased, campaignID, addr, payment)

	snapshot := rec.campaign
	return &snapshot, nil
}

// --- RegistryReader / RegistryWriter ---

func (s *LedgerStore) Owner(ctx context.Context) (string, error) {
	s.registryMu.RLock()
	defer s.registryMu.RUnlock()
	return s.owner, nil
}

func (s *LedgerStore) SecondaryAdmin(ctx context.Context) (string, error) {
	s.registryMu.RLock()
	defer s.registryMu.RUnlock()
	return s.secondaryAdmin, nil
}

func (s *LedgerStore) IsOwner(ctx context.Context, addr string) (bool, error) {
	s.registryMu.RLock()
	defer s.registryMu.RUnlock()
	return utils.NormalizeAddress(addr) == s.owner, nil
}

func (s *LedgerStore) IsAdmin(ctx context.Context, addr string) (bool, error) {
	normalized := utils.NormalizeAddress(addr)
	s.registryMu.RLock()
	defer s.registryMu.RUnlock()
	return normalized == s.owner || normalized == s.secondaryAdmin, nil
}

func (s *LedgerStore) IsBanned(ctx context.Context, addr string) (bool, error) {
	s.registryMu.RLock()
	defer s.registryMu.RUnlock()
	_, banned := s.banned[utils.NormalizeAddress(addr)]
	return banned, nil
}

func (s *LedgerStore) IsContractActive(ctx context.Context) (bool, error) {
	return s.isActive(), nil
}

func (s *LedgerStore) SetOwner(ctx context.Context, newOwner string) error {
	normalized := utils.NormalizeAddress(newOwner)

	s.registryMu.Lock()
	if !s.active {
		s.registryMu.Unlock()
		return apperrors.ErrContractInactive
	}
	s.owner = normalized
	s.registryMu.Unlock()

	s.appendEvent(domain.EventOwnerChanged, 0, normalized, decimal.Zero)
	return nil
}

func (s *LedgerStore) AddBan(ctx context.Context, target string) (bool, error) {
	normalized := utils.NormalizeAddress(target)

	s.registryMu.Lock()
	if !s.active {
		s.registryMu.Unlock()
		return false, apperrors.ErrContractInactive
	}
	if _, exists := s.banned[normalized]; exists {
		s.registryMu.Unlock()
		return true, nil
	}
	s.banned[normalized] = struct{}{}
	s.registryMu.Unlock()

	s.appendEvent(domain.EventEntrepreneurBanned, 0, normalized, decimal.Zero)
	return false, nil
}

func (s *LedgerStore) DeactivateContract(ctx context.Context) error {
	s.registryMu.Lock()
	if !s.active {
		s.registryMu.Unlock()
		return apperrors.ErrContractInactive
	}
	s.active = false
	owner := s.owner
	s.registryMu.Unlock()

	s.appendEvent(domain.EventContractDestroyed, 0, owner, decimal.Zero)
	return nil
}

// --- SettlementReader / SettlementWriter ---

func (s *LedgerStore) refundBalanceLocked(addr string) decimal.Decimal {
	if bal, ok := s.refunds[addr]; ok {
		return bal
	}
	return decimal.Zero
}

func (s *LedgerStore) RefundBalance(ctx context.Context, addr string) (decimal.Decimal, error) {
	s.balancesMu.Lock()
	defer s.balancesMu.Unlock()
	return s.refundBalanceLocked(utils.NormalizeAddress(addr)), nil
}

func (s *LedgerStore) TotalFeesCollected(ctx context.Context) (decimal.Decimal, error) {
	s.balancesMu.Lock()
	defer s.balancesMu.Unlock()
	return s.fees, nil
}

func (s *LedgerStore) ClaimRefund(ctx context.Context, addr string) (decimal.Decimal, error) {
	normalized := utils.NormalizeAddress(addr)

	s.balancesMu.Lock()
	balance := s.refundBalanceLocked(normalized)
	if balance.Sign() <= 0 {
		s.balancesMu.Unlock()
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrNothingToRefund, addr)
	}
	delete(s.refunds, normalized)
	s.balancesMu.Unlock()

	s.appendEvent(domain.EventInvestorRefunded, 0, normalized, balance)
	return balance, nil
}

func (s *LedgerStore) WithdrawFees(ctx context.Context, to string) (decimal.Decimal, error) {
	normalized := utils.NormalizeAddress(to)

	s.balancesMu.Lock()
	if s.fees.Sign() <= 0 {
		s.balancesMu.Unlock()
		return decimal.Zero, apperrors.ErrNothingToWithdraw
	}
	amount := s.fees
	s.fees = decimal.Zero
	s.balancesMu.Unlock()

	s.appendEvent(domain.EventFeesWithdrawn, 0, normalized, amount)
	return amount, nil
}

// --- EventReader ---

func (s *LedgerStore) ListEvents(ctx context.Context, afterSequence uint64, limit int) ([]domain.Event, error) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()

	if afterSequence >= uint64(len(s.events)) {
		return []domain.Event{}, nil
	}
	end := uint64(len(s.events))
	if limit > 0 && afterSequence+uint64(limit) < end {
		end = afterSequence + uint64(limit)
	}

	out := make([]domain.Event, end-afterSequence)
	copy(out, s.events[afterSequence:end])
	return out, nil
}

func (s *LedgerStore) LatestSequence(ctx context.Context) (uint64, error) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	return uint64(len(s.events)), nil
}
