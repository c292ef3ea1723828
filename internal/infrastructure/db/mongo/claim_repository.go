package mongo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

const collectionClaims = "claims"

type ClaimRepository struct {
	col *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{col: db.Collection(collectionClaims)}
}

func (r *ClaimRepository) Insert(ctx context.Context, c *domain.Claim) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Claim
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List applies the conjunctive filter set and returns one page, newest first.
func (r *ClaimRepository) List(ctx context.Context, f ports.ListClaimsFilter) ([]*domain.Claim, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.AssignedAgentID != "" {
		filter["assigned_agent_id"] = f.AssignedAgentID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	createdAt := bson.M{}
	if !f.DateFrom.IsZero() {
		createdAt["$gte"] = f.DateFrom
	}
	if !f.DateTo.IsZero() {
		createdAt["$lte"] = f.DateTo
	}
	if len(createdAt) > 0 {
		filter["created_at"] = createdAt
	}

	amount := bson.M{}
	if f.AmountMin > 0 {
		amount["$gte"] = f.AmountMin
	}
	if f.AmountMax > 0 {
		amount["$lte"] = f.AmountMax
	}
	if len(amount) > 0 {
		filter["amount_claimed"] = amount
	}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexEscape(f.Search), Options: "i"}
		or := bson.A{
			bson.M{"description": pattern},
			bson.M{"status": pattern},
		}
		// A numeric search term also matches the claimed amount exactly.
		if amt, err := strconv.ParseFloat(f.Search, 64); err == nil {
			or = append(or, bson.M{"amount_claimed": amt})
		}
		filter["$or"] = or
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.Claim
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Decide is a compare-and-swap: the PENDING guard lives in the update filter,
// so only the first decider ever matches a document.
func (r *ClaimRepository) Decide(ctx context.Context, id string, status domain.ClaimStatus, notes, decidedBy string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": domain.ClaimPending}
	set := bson.M{
		"status":         status,
		"decision_notes": notes,
	}
	if decidedBy != "" {
		set["decided_by_agent_id"] = decidedBy
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Assign routes a still-pending claim to an agent without touching its status.
func (r *ClaimRepository) Assign(ctx context.Context, id, agentID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": domain.ClaimPending}
	update := bson.M{"$set": bson.M{"assigned_agent_id": agentID}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *ClaimRepository) ListUnassigned(ctx context.Context) ([]*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status": domain.ClaimPending,
		"$or": bson.A{
			bson.M{"assigned_agent_id": ""},
			bson.M{"assigned_agent_id": bson.M{"$exists": false}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.Claim
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ClaimRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"assigned_agent_id": agentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.Claim
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CountPendingByAgent aggregates the pending workload per assigned agent.
func (r *ClaimRepository) CountPendingByAgent(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":            domain.ClaimPending,
			"assigned_agent_id": bson.M{"$nin": bson.A{"", nil}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$assigned_agent_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		AgentID string `bson:"_id"`
		Count   int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.AgentID] = row.Count
	}
	return counts, nil
}

// EnsureIndexes creates the listing and workload indexes.
func (r *ClaimRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_agent_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
