package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Shared test fixtures: in-memory stub repositories mirroring the behaviour
// of the Mongo implementations, plus a fixed clock.
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testClock() Clock { return fixedClock{t: testNow} }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- products ---

type stubProductRepo struct {
	byID map[string]*domain.PolicyProduct
	seq  int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.PolicyProduct)}
}

func (r *stubProductRepo) Insert(_ context.Context, p *domain.PolicyProduct) error {
	for _, existing := range r.byID {
		if existing.Code == p.Code {
			return domain.ErrDuplicateCode
		}
	}
	r.seq++
	p.ID = fmt.Sprintf("prod-%d", r.seq)
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.PolicyProduct, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.PolicyProduct) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	for id, existing := range r.byID {
		if id != p.ID && existing.Code == p.Code {
			return domain.ErrDuplicateCode
		}
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) List(_ context.Context, f ports.ListProductsFilter) ([]*domain.PolicyProduct, int64, error) {
	var matched []*domain.PolicyProduct
	for _, p := range r.byID {
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Code), s) &&
				!strings.Contains(strings.ToLower(p.Title), s) &&
				!strings.Contains(strings.ToLower(p.Description), s) {
				continue
			}
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, f.Page, f.Limit)
}

// --- user policies ---

type stubPolicyRepo struct {
	byID map[string]*domain.UserPolicy
	seq  int
}

func newStubPolicyRepo() *stubPolicyRepo {
	return &stubPolicyRepo{byID: make(map[string]*domain.UserPolicy)}
}

func (r *stubPolicyRepo) Insert(_ context.Context, p *domain.UserPolicy) error {
	// Mirrors the partial unique index on (user_id, policy_product_id, ACTIVE).
	if p.Status == domain.PolicyActive {
		for _, existing := range r.byID {
			if existing.UserID == p.UserID &&
				existing.PolicyProductID == p.PolicyProductID &&
				existing.Status == domain.PolicyActive {
				return domain.ErrDuplicateActivePolicy
			}
		}
	}
	r.seq++
	p.ID = fmt.Sprintf("pol-%d", r.seq)
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPolicyRepo) FindByID(_ context.Context, id string) (*domain.UserPolicy, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserPolicyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPolicyRepo) ListByUser(_ context.Context, userID string) ([]*domain.UserPolicy, error) {
	var out []*domain.UserPolicy
	for _, p := range r.byID {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPolicyRepo) CancelActive(_ context.Context, id, userID string) (bool, error) {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID || p.Status != domain.PolicyActive {
		return false, nil
	}
	p.Status = domain.PolicyCancelled
	return true, nil
}

func (r *stubPolicyRepo) CountActiveByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.PolicyProductID == productID && p.Status == domain.PolicyActive {
			n++
		}
	}
	return n, nil
}

func (r *stubPolicyRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.Status == domain.PolicyActive && p.EndDate.Before(now) {
			p.Status = domain.PolicyExpired
			n++
		}
	}
	return n, nil
}

// --- claims ---

type stubClaimRepo struct {
	byID map[string]*domain.Claim
	seq  int
}

func newStubClaimRepo() *stubClaimRepo {
	return &stubClaimRepo{byID: make(map[string]*domain.Claim)}
}

func (r *stubClaimRepo) Insert(_ context.Context, c *domain.Claim) error {
	r.seq++
	c.ID = fmt.Sprintf("clm-%d", r.seq)
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClaimRepo) FindByID(_ context.Context, id string) (*domain.Claim, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClaimNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClaimRepo) List(_ context.Context, f ports.ListClaimsFilter) ([]*domain.Claim, int64, error) {
	var matched []*domain.Claim
	for _, c := range r.byID {
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		if f.AssignedAgentID != "" && c.AssignedAgentID != f.AssignedAgentID {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if !f.DateFrom.IsZero() && c.CreatedAt.Before(f.DateFrom) {
			continue
		}
		if !f.DateTo.IsZero() && c.CreatedAt.After(f.DateTo) {
			continue
		}
		if f.AmountMin > 0 && c.AmountClaimed < f.AmountMin {
			continue
		}
		if f.AmountMax > 0 && c.AmountClaimed > f.AmountMax {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			descMatch := strings.Contains(strings.ToLower(c.Description), s)
			statusMatch := strings.Contains(strings.ToLower(string(c.Status)), s)
			amountMatch := false
			if amt, err := strconv.ParseFloat(f.Search, 64); err == nil {
				amountMatch = c.AmountClaimed == amt
			}
			if !descMatch && !statusMatch && !amountMatch {
				continue
			}
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubClaimRepo) Decide(_ context.Context, id string, status domain.ClaimStatus, notes, decidedBy string) (bool, error) {
	c, ok := r.byID[id]
	if !ok || c.Status != domain.ClaimPending {
		return false, nil
	}
	c.Status = status
	c.DecisionNotes = notes
	if decidedBy != "" {
		c.DecidedByAgentID = decidedBy
	}
	return true, nil
}

func (r *stubClaimRepo) Assign(_ context.Context, id, agentID string) (bool, error) {
	c, ok := r.byID[id]
	if !ok || c.Status != domain.ClaimPending {
		return false, nil
	}
	c.AssignedAgentID = agentID
	return true, nil
}

func (r *stubClaimRepo) ListUnassigned(_ context.Context) ([]*domain.Claim, error) {
	var out []*domain.Claim
	for _, c := range r.byID {
		if c.Status == domain.ClaimPending && c.AssignedAgentID == "" {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubClaimRepo) ListByAgent(_ context.Context, agentID string) ([]*domain.Claim, error) {
	var out []*domain.Claim
	for _, c := range r.byID {
		if c.AssignedAgentID == agentID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubClaimRepo) CountPendingByAgent(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, c := range r.byID {
		if c.Status == domain.ClaimPending && c.AssignedAgentID != "" {
			counts[c.AssignedAgentID]++
		}
	}
	return counts, nil
}

// --- payments ---

type stubPaymentRepo struct {
	byID      map[string]*domain.Payment
	seq       int
	insertErr error
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byID: make(map[string]*domain.Payment)}
}

func (r *stubPaymentRepo) Insert(_ context.Context, p *domain.Payment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.seq++
	p.ID = fmt.Sprintf("pay-%d", r.seq)
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPaymentRepo) ListByUser(_ context.Context, userID string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.byID {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type stubProcessor struct {
	success bool
	txnID   string
	reason  string
	err     error
	calls   int
}

func (p *stubProcessor) Process(_ context.Context, _ float64, _ domain.PaymentMethod, _ string) (*ports.PaymentResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &ports.PaymentResult{Success: p.success, TransactionID: p.txnID, Reason: p.reason}, nil
}

type stubDedup struct {
	seen    map[string]bool
	seenErr error
	marked  []string
}

func newStubDedup() *stubDedup { return &stubDedup{seen: make(map[string]bool)} }

func (d *stubDedup) Seen(_ context.Context, userPolicyID, reference string) (bool, error) {
	if d.seenErr != nil {
		return false, d.seenErr
	}
	return d.seen[userPolicyID+":"+reference], nil
}

func (d *stubDedup) Mark(_ context.Context, userPolicyID, reference string) error {
	key := userPolicyID + ":" + reference
	d.seen[key] = true
	d.marked = append(d.marked, key)
	return nil
}

// --- audit ---

type stubAuditRepo struct {
	entries   []*domain.AuditEntry
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	e.ID = fmt.Sprintf("aud-%d", len(r.entries)+1)
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, f ports.ListAuditFilter) ([]*domain.AuditEntry, int64, error) {
	var matched []*domain.AuditEntry
	for _, e := range r.entries {
		if f.Action != "" && !strings.Contains(strings.ToLower(string(e.Action)), strings.ToLower(f.Action)) {
			continue
		}
		if f.ActorID != "" && e.ActorID != f.ActorID {
			continue
		}
		if !f.DateFrom.IsZero() && e.Timestamp.Before(f.DateFrom) {
			continue
		}
		if !f.DateTo.IsZero() && !e.Timestamp.Before(f.DateTo) {
			continue
		}
		clone := *e
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	return paginate(matched, f.Page, f.Limit)
}

// --- users ---

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("usr-%d", r.seq)
	clone := *u
	r.byID[u.ID] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) seed(id, username, role string) {
	r.byID[id] = &domain.User{ID: id, Username: username, Role: role}
}

// --- pagination helper shared by stubs ---

func paginate[T any](items []*T, page, limit int) ([]*T, int64, error) {
	total := int64(len(items))
	if limit <= 0 {
		return items, total, nil
	}
	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(items) {
		return []*T{}, total, nil
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end], total, nil
}

// --- principals ---

var (
	adminP    = domain.Principal{ID: "adm-1", Role: domain.RoleAdmin}
	agentP    = domain.Principal{ID: "agt-1", Role: domain.RoleAgent}
	customerP = domain.Principal{ID: "cst-1", Role: domain.RoleCustomer}
	otherCust = domain.Principal{ID: "cst-2", Role: domain.RoleCustomer}
)
