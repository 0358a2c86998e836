package Details

import (
	"context"

	"Garrison/Models"
)

// fakeStore is an in-memory stand-in for the Firestore adapter with
// injectable failures.
type fakeStore struct {
	docs      []Models.AssignmentDoc
	queryErr  error
	recent    *Models.AssignmentDoc
	recentErr error

	updates    map[string]map[string]interface{}
	updateErrs map[string]error

	created   []Models.Assignment
	createErr error
	nextID    string

	leaseHeld bool
	leaseErr  error
	acquires  int
	releases  int

	tokens    map[string][]string
	tokenErrs map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		updates:    make(map[string]map[string]interface{}),
		updateErrs: make(map[string]error),
		tokens:     make(map[string][]string),
		tokenErrs:  make(map[string]error),
		nextID:     "generated-id-1",
	}
}

func (f *fakeStore) AssignmentsByDate(ctx context.Context, date string) ([]Models.AssignmentDoc, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var matched []Models.AssignmentDoc
	for _, doc := range f.docs {
		if doc.Assignment.AssignmentDate == date {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func (f *fakeStore) MostRecentApproved(ctx context.Context) (*Models.AssignmentDoc, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return f.recent, nil
}

func (f *fakeStore) UpdateAssignment(ctx context.Context, id string, updates map[string]interface{}) error {
	if err := f.updateErrs[id]; err != nil {
		return err
	}
	f.updates[id] = updates
	return nil
}

func (f *fakeStore) CreateAssignment(ctx context.Context, a Models.Assignment) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, a)
	return f.nextID, nil
}

func (f *fakeStore) AcquireResetLease(ctx context.Context, date string, slot Models.TimeSlot) (bool, error) {
	f.acquires++
	if f.leaseErr != nil {
		return false, f.leaseErr
	}
	if f.leaseHeld {
		return false, nil
	}
	f.leaseHeld = true
	return true, nil
}

func (f *fakeStore) ReleaseResetLease(ctx context.Context, date string, slot Models.TimeSlot) error {
	f.releases++
	f.leaseHeld = false
	return nil
}

func (f *fakeStore) TokensForPersonnel(ctx context.Context, personnelID string) ([]string, error) {
	if err := f.tokenErrs[personnelID]; err != nil {
		return nil, err
	}
	return f.tokens[personnelID], nil
}

type notifyCall struct {
	tokens   []string
	reminder Reminder
}

// fakeNotifier records reminder sends; errOn fails any call whose first
// token matches.
type fakeNotifier struct {
	calls []notifyCall
	errOn map[string]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{errOn: make(map[string]error)}
}

func (f *fakeNotifier) SendReminder(ctx context.Context, tokens []string, reminder Reminder) (int, int, error) {
	if len(tokens) > 0 {
		if err := f.errOn[tokens[0]]; err != nil {
			return 0, 0, err
		}
	}
	f.calls = append(f.calls, notifyCall{tokens: tokens, reminder: reminder})
	return len(tokens), 0, nil
}

type fakeAlerter struct {
	messages []string
}

func (f *fakeAlerter) Alert(message string) {
	f.messages = append(f.messages, message)
}
