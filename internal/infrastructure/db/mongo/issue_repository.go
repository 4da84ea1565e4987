package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/qoder/minijira/internal/core/domain"
)

const issuesCollection = "issues"

type IssueRepository struct {
	coll *mongo.Collection
	seq  *Sequence
}

func NewIssueRepository(db *mongo.Database, seq *Sequence) *IssueRepository {
	return &IssueRepository{coll: db.Collection(issuesCollection), seq: seq}
}

type mongoIssue struct {
	ID          int64  `bson:"_id"`
	ProjectID   int64  `bson:"project_id"`
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`
	Status      string `bson:"status"`
	Priority    string `bson:"priority"`
	AssigneeID  int64  `bson:"assignee_id,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, "issues")
	if err != nil {
		return nil, err
	}

	doc := mongoIssue{
		ID:          id,
		ProjectID:   issue.ProjectID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      string(issue.Status),
		Priority:    string(issue.Priority),
		AssigneeID:  issue.AssigneeID,
		CreatedAt:   issue.CreatedAt.Unix(),
		UpdatedAt:   issue.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert issue: %w", err)
	}

	created := *issue
	created.ID = id
	return &created, nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id int64) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoIssue
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return issueFromMongo(mi), nil
}

func (r *IssueRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer cur.Close(ctx)

	var issues []domain.Issue
	for cur.Next(ctx) {
		var mi mongoIssue
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode issue: %w", err)
		}
		issues = append(issues, *issueFromMongo(mi))
	}
	return issues, cur.Err()
}

func (r *IssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": issue.ID}, bson.M{"$set": bson.M{
		"title":       issue.Title,
		"description": issue.Description,
		"status":      string(issue.Status),
		"priority":    string(issue.Priority),
		"assignee_id": issue.AssigneeID,
		"updated_at":  issue.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"project_id": projectID}); err != nil {
		return fmt.Errorf("delete project issues: %w", err)
	}
	return nil
}

func (r *IssueRepository) CountByProjects(ctx context.Context, projectIDs []int64) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"project_id": bson.M{"$in": projectIDs}})
	if err != nil {
		return 0, fmt.Errorf("count issues: %w", err)
	}
	return n, nil
}

func (r *IssueRepository) CountByAssignee(ctx context.Context, assigneeID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"assignee_id": assigneeID})
	if err != nil {
		return 0, fmt.Errorf("count assigned issues: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates lookup indexes on the issues collection.
func (r *IssueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func issueFromMongo(mi mongoIssue) *domain.Issue {
	return &domain.Issue{
		ID:          mi.ID,
		ProjectID:   mi.ProjectID,
		Title:       mi.Title,
		Description: mi.Description,
		Status:      domain.IssueStatus(mi.Status),
		Priority:    domain.IssuePriority(mi.Priority),
		AssigneeID:  mi.AssigneeID,
		CreatedAt:   unixToTime(mi.CreatedAt),
		UpdatedAt:   unixToTime(mi.UpdatedAt),
	}
}
