package Firestore

import (
	"context"
	"fmt"

	"Garrison/Models"

	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	AssignmentsCollection = "detailAssignments"
	UsersCollection       = "users"
	LeasesCollection      = "resetLeases"
)

// Store implements the Details store contract against Firestore. Documents
// are decoded into explicit record types and validated on the way in;
// malformed documents fail the query rather than propagating half-empty
// snapshots.
type Store struct {
	client   *firestore.Client
	validate *validator.Validate
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:   client,
		validate: validator.New(),
	}
}

// AssignmentsByDate returns every assignment for the date. Status is
// deliberately absent from the filter.
func (s *Store) AssignmentsByDate(ctx context.Context, date string) ([]Models.AssignmentDoc, error) {
	iter := s.client.Collection(AssignmentsCollection).
		Where("assignmentDate", "==", date).
		Documents(ctx)
	defer iter.Stop()

	var docs []Models.AssignmentDoc
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error querying assignments for %s: %v", date, err)
		}

		doc, err := s.decodeAssignment(snap)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// MostRecentApproved returns the latest approved assignment or nil.
func (s *Store) MostRecentApproved(ctx context.Context) (*Models.AssignmentDoc, error) {
	iter := s.client.Collection(AssignmentsCollection).
		Where("status", "==", string(Models.StatusApproved)).
		OrderBy("approvedAt", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying most recent approved assignment: %v", err)
	}

	doc, err := s.decodeAssignment(snap)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateAssignment applies a partial update to one document. Each call is a
// single independently-committed write.
func (s *Store) UpdateAssignment(ctx context.Context, id string, updates map[string]interface{}) error {
	_, err := s.client.Collection(AssignmentsCollection).Doc(id).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("error updating assignment %s: %v", id, err)
	}
	return nil
}

// CreateAssignment adds a new assignment document and returns the generated
// id.
func (s *Store) CreateAssignment(ctx context.Context, a Models.Assignment) (string, error) {
	ref, _, err := s.client.Collection(AssignmentsCollection).Add(ctx, a)
	if err != nil {
		return "", fmt.Errorf("error creating assignment: %v", err)
	}
	return ref.ID, nil
}

// AcquireResetLease claims the (date, slot) marker document with a create
// precondition. AlreadyExists means the slot already ran today.
func (s *Store) AcquireResetLease(ctx context.Context, date string, slot Models.TimeSlot) (bool, error) {
	_, err := s.client.Collection(LeasesCollection).Doc(leaseID(date, slot)).Create(ctx, map[string]interface{}{
		"date":       date,
		"timeSlot":   string(slot),
		"acquiredAt": firestore.ServerTimestamp,
	})
	if status.Code(err) == codes.AlreadyExists {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error acquiring reset lease %s: %v", leaseID(date, slot), err)
	}
	return true, nil
}

func (s *Store) ReleaseResetLease(ctx context.Context, date string, slot Models.TimeSlot) error {
	_, err := s.client.Collection(LeasesCollection).Doc(leaseID(date, slot)).Delete(ctx)
	if err != nil {
		return fmt.Errorf("error releasing reset lease %s: %v", leaseID(date, slot), err)
	}
	return nil
}

func leaseID(date string, slot Models.TimeSlot) string {
	return fmt.Sprintf("%s_%s", date, slot)
}

type userDoc struct {
	PersonnelID string   `firestore:"personnelId"`
	FCMTokens   []string `firestore:"fcmTokens"`
}

// TokensForPersonnel collects the push tokens of every user record linked to
// the given personnel id.
func (s *Store) TokensForPersonnel(ctx context.Context, personnelID string) ([]string, error) {
	iter := s.client.Collection(UsersCollection).
		Where("personnelId", "==", personnelID).
		Documents(ctx)
	defer iter.Stop()

	var tokens []string
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error querying user for %s: %v", personnelID, err)
		}

		var user userDoc
		if err := snap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("error decoding user %s: %v", snap.Ref.ID, err)
		}
		tokens = append(tokens, user.FCMTokens...)
	}
	return tokens, nil
}

// AddDeviceToken registers a push token on every user record linked to the
// personnel id. ArrayUnion keeps registration idempotent.
func (s *Store) AddDeviceToken(ctx context.Context, personnelID, token string) error {
	iter := s.client.Collection(UsersCollection).
		Where("personnelId", "==", personnelID).
		Documents(ctx)
	defer iter.Stop()

	updated := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("error querying user for %s: %v", personnelID, err)
		}

		_, err = snap.Ref.Update(ctx, []firestore.Update{
			{Path: "fcmTokens", Value: firestore.ArrayUnion(token)},
		})
		if err != nil {
			return fmt.Errorf("error registering token for %s: %v", personnelID, err)
		}
		updated++
	}

	if updated == 0 {
		return fmt.Errorf("no user found for personnel id %s", personnelID)
	}
	return nil
}

func (s *Store) decodeAssignment(snap *firestore.DocumentSnapshot) (Models.AssignmentDoc, error) {
	var a Models.Assignment
	if err := snap.DataTo(&a); err != nil {
		return Models.AssignmentDoc{}, fmt.Errorf("error decoding assignment %s: %v", snap.Ref.ID, err)
	}
	if err := s.validate.Struct(&a); err != nil {
		return Models.AssignmentDoc{}, fmt.Errorf("invalid assignment document %s: %v", snap.Ref.ID, err)
	}
	return Models.AssignmentDoc{ID: snap.Ref.ID, Assignment: a}, nil
}
