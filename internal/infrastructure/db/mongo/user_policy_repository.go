package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/insureline/policy-admin/internal/core/domain"
)

const collectionUserPolicies = "user_policies"

type UserPolicyRepository struct {
	col *mongo.Collection
}

func NewUserPolicyRepository(db *mongo.Database) *UserPolicyRepository {
	return &UserPolicyRepository{col: db.Collection(collectionUserPolicies)}
}

// Insert stores a new bound policy. The partial unique index on
// (user_id, policy_product_id) over ACTIVE documents turns a concurrent
// double purchase into ErrDuplicateActivePolicy for the loser.
func (r *UserPolicyRepository) Insert(ctx context.Context, p *domain.UserPolicy) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateActivePolicy
		}
		return err
	}
	return nil
}

func (r *UserPolicyRepository) FindByID(ctx context.Context, id string) (*domain.UserPolicy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.UserPolicy
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserPolicyNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *UserPolicyRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserPolicy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.UserPolicy
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CancelActive flips ACTIVE to CANCELLED in one conditional update. The
// status guard in the filter makes concurrent cancels race-safe: exactly one
// caller sees a match.
func (r *UserPolicyRepository) CancelActive(ctx context.Context, id, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     id,
		"user_id": userID,
		"status":  domain.PolicyActive,
	}
	update := bson.M{"$set": bson.M{"status": domain.PolicyCancelled}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *UserPolicyRepository) CountActiveByProduct(ctx context.Context, productID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{
		"policy_product_id": productID,
		"status":            domain.PolicyActive,
	})
}

// ExpireDue flips every ACTIVE policy whose coverage window has ended.
func (r *UserPolicyRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":   domain.PolicyActive,
		"end_date": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{"status": domain.PolicyExpired}}

	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the partial unique index guarding the one-active-
// policy-per-(user, product) invariant, plus the user listing index.
func (r *UserPolicyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "policy_product_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.PolicyActive)}),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
