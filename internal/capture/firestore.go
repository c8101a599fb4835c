package capture

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vibeandbuild/internal/config"
	"vibeandbuild/internal/services"
)

// FirestoreBackend appends capture records to Firestore collections.
type FirestoreBackend struct {
	client      *firestore.Client
	subscribers string
	ideas       string
}

type firestoreSubscriber struct {
	Email        string    `firestore:"email"`
	SubscribedAt time.Time `firestore:"subscribedAt,serverTimestamp"`
}

type firestoreIdea struct {
	Text        string    `firestore:"text"`
	SubmittedAt time.Time `firestore:"submittedAt,serverTimestamp"`
}

// NewFirestoreBackend connects to the configured Firestore project.
func NewFirestoreBackend(ctx context.Context, cfg *config.Config) (*FirestoreBackend, error) {
	var opts []option.ClientOption
	if cfg.Firestore.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firestore.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreBackend{
		client:      client,
		subscribers: cfg.Firestore.SubscribersCollection,
		ideas:       cfg.Firestore.IdeasCollection,
	}, nil
}

// SubscriberExists runs an exact-match query on the normalized email.
func (b *FirestoreBackend) SubscriberExists(ctx context.Context, email string) (bool, error) {
	iter := b.client.Collection(b.subscribers).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, classifyFirestore(err)
	}
	return true, nil
}

// AddSubscriber appends a subscriber document with a server timestamp.
func (b *FirestoreBackend) AddSubscriber(ctx context.Context, id, email string) error {
	_, err := b.client.Collection(b.subscribers).Doc(id).Create(ctx, firestoreSubscriber{Email: email})
	if err != nil {
		return classifyFirestore(err)
	}
	return nil
}

// AddIdea appends an idea document with a server timestamp.
func (b *FirestoreBackend) AddIdea(ctx context.Context, id, text string) error {
	_, err := b.client.Collection(b.ideas).Doc(id).Create(ctx, firestoreIdea{Text: text})
	if err != nil {
		return classifyFirestore(err)
	}
	return nil
}

// Close releases the client.
func (b *FirestoreBackend) Close() error {
	return b.client.Close()
}

// classifyFirestore maps gRPC status codes onto the service error taxonomy
// so the API layer can pick user-facing messages per class.
func classifyFirestore(err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %w", services.ErrPermission, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", services.ErrUnavailable, err)
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %w", services.ErrPrecondition, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %w", services.ErrDuplicate, err)
	default:
		return err
	}
}
