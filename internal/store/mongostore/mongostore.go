// Package mongostore implements the document store on MongoDB. Profiles are
// keyed by uid; goals and expenses are sub-documents carrying a user_id field.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/store"
)

// Collection names.
const (
	AccountsCollection = "accounts"
	ProfilesCollection = "users"
	GoalsCollection    = "savings_goals"
	ExpensesCollection = "expenses"
	AuditCollection    = "audit_logs"
)

// Store is a MongoDB-backed store.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// Connect opens a client for uri, verifies it with a ping and ensures the
// indexes the store relies on.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Get().Infow("connected to MongoDB", "database", database)
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		AccountsCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		GoalsCollection: {
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
		ExpensesCollection: {
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
		},
		AuditCollection: {
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}
	for name, model := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("creating index on %s: %w", name, err)
		}
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	}
	return err
}

// ownedBy filters a sub-document by id and owner.
func ownedBy(uid, id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "user_id", Value: uid}}
}

// CreateAccount inserts a credential record.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	now := time.Now().UTC()
	account.CreatedAt, account.UpdatedAt = now, now
	_, err := s.db.Collection(AccountsCollection).InsertOne(ctx, account)
	return translate(err)
}

// GetAccountByEmail looks an account up by its (lower-cased) email.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.db.Collection(AccountsCollection).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&account)
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// RecordLoginAttempt stores the lockout counters after a login attempt.
func (s *Store) RecordLoginAttempt(ctx context.Context, uid string, failedAttempts int, lockedUntil, lastLoginAt *time.Time) error {
	set := bson.D{
		{Key: "failed_login_attempts", Value: failedAttempts},
		{Key: "locked_until", Value: lockedUntil},
		{Key: "updated_at", Value: time.Now().UTC()},
	}
	if lastLoginAt != nil {
		set = append(set, bson.E{Key: "last_login_at", Value: lastLoginAt})
	}
	res, err := s.db.Collection(AccountsCollection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: uid}},
		bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GetProfile returns the profile document for uid.
func (s *Store) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Collection(ProfilesCollection).FindOne(ctx, bson.D{{Key: "_id", Value: uid}}).Decode(&profile)
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// CreateProfileIfAbsent upserts with $setOnInsert: when the document already
// exists nothing is written, so a concurrently created profile survives.
func (s *Store) CreateProfileIfAbsent(ctx context.Context, profile *models.UserProfile) (bool, error) {
	now := time.Now().UTC()
	profile.CreatedAt, profile.UpdatedAt = now, now

	res, err := s.db.Collection(ProfilesCollection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: profile.UID}},
		bson.D{{Key: "$setOnInsert", Value: bson.D{
			{Key: "email", Value: profile.Email},
			{Key: "name", Value: profile.Name},
			{Key: "photo_url", Value: profile.PhotoURL},
			{Key: "salary", Value: profile.Salary},
			{Key: "tax_regime", Value: profile.TaxRegime},
			{Key: "budget", Value: profile.Budget},
			{Key: "created_at", Value: profile.CreatedAt},
			{Key: "updated_at", Value: profile.UpdatedAt},
		}}},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		// Two upserts racing on the same _id: the loser sees a duplicate key.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, translate(err)
	}
	return res.UpsertedCount == 1, nil
}

// SaveProfile writes the mutable profile fields.
func (s *Store) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	res, err := s.db.Collection(ProfilesCollection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: profile.UID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: profile.Name},
			{Key: "photo_url", Value: profile.PhotoURL},
			{Key: "salary", Value: profile.Salary},
			{Key: "tax_regime", Value: profile.TaxRegime},
			{Key: "budget", Value: profile.Budget},
			{Key: "updated_at", Value: profile.UpdatedAt},
		}}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListGoals returns the user's goals, oldest first.
func (s *Store) ListGoals(ctx context.Context, uid string) ([]models.SavingsGoal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(GoalsCollection).Find(ctx, bson.D{{Key: "user_id", Value: uid}}, opts)
	if err != nil {
		return nil, translate(err)
	}
	goals := []models.SavingsGoal{}
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, translate(err)
	}
	return goals, nil
}

// GetGoal returns one goal owned by uid.
func (s *Store) GetGoal(ctx context.Context, uid, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.Collection(GoalsCollection).FindOne(ctx, ownedBy(uid, goalID)).Decode(&goal); err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

// CreateGoal inserts a goal with a generated id.
func (s *Store) CreateGoal(ctx context.Context, goal *models.SavingsGoal) error {
	goal.EnsureID()
	now := time.Now().UTC()
	goal.CreatedAt, goal.UpdatedAt = now, now
	_, err := s.db.Collection(GoalsCollection).InsertOne(ctx, goal)
	return translate(err)
}

// UpdateGoal writes the editable goal fields.
func (s *Store) UpdateGoal(ctx context.Context, goal *models.SavingsGoal) error {
	goal.UpdatedAt = time.Now().UTC()
	res, err := s.db.Collection(GoalsCollection).UpdateOne(ctx,
		ownedBy(goal.UserID, goal.ID),
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: goal.Name},
			{Key: "category", Value: goal.Category},
			{Key: "target_amount", Value: goal.TargetAmount},
			{Key: "current_amount", Value: goal.CurrentAmount},
			{Key: "updated_at", Value: goal.UpdatedAt},
		}}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal owned by uid.
func (s *Store) DeleteGoal(ctx context.Context, uid, goalID string) error {
	res, err := s.db.Collection(GoalsCollection).DeleteOne(ctx, ownedBy(uid, goalID))
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListExpenses returns the user's expenses, newest first.
func (s *Store) ListExpenses(ctx context.Context, uid string, offset, limit int) ([]models.Expense, int64, error) {
	coll := s.db.Collection(ExpensesCollection)
	filter := bson.D{{Key: "user_id", Value: uid}}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, translate(err)
	}
	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, 0, translate(err)
	}
	return expenses, total, nil
}

// CreateExpense inserts an expense with a generated id.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	expense.EnsureID()
	now := time.Now().UTC()
	expense.CreatedAt, expense.UpdatedAt = now, now
	_, err := s.db.Collection(ExpensesCollection).InsertOne(ctx, expense)
	return translate(err)
}

// AppendAudit inserts an audit entry.
func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	entry.EnsureID()
	now := time.Now().UTC()
	entry.CreatedAt, entry.UpdatedAt = now, now
	_, err := s.db.Collection(AuditCollection).InsertOne(ctx, entry)
	return translate(err)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		logger.Get().Errorw("failed to disconnect from MongoDB", "error", err)
		return err
	}
	logger.Get().Info("disconnected from MongoDB")
	return nil
}
