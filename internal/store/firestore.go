package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore reads news documents from a Firestore project.
type FirestoreStore struct {
	client *firestore.Client
	log    *logrus.Logger
}

// NewFirestore connects to Firestore with a service-account credentials file.
func NewFirestore(ctx context.Context, projectID, credentialsFile string, log *logrus.Logger) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return &FirestoreStore{client: client, log: log}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// FetchAll returns every document in the collection with its publication
// time normalized, plus per-field usage counts for diagnostics.
func (s *FirestoreStore) FetchAll(ctx context.Context, collection string) ([]Document, *FieldStats, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	stats := &FieldStats{ByField: make(map[string]int)}
	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: reading %s: %v", ErrConnection, collection, describe(err))
		}

		doc := Normalize(snap.Ref.ID, snap.Data())
		if doc.DateField != "" {
			stats.ByField[doc.DateField]++
		} else {
			stats.Unparseable++
		}
		docs = append(docs, doc)
	}

	s.log.WithFields(logrus.Fields{
		"collection":  collection,
		"documents":   len(docs),
		"unparseable": stats.Unparseable,
	}).Info("Fetched documents")
	for field, n := range stats.ByField {
		s.log.WithFields(logrus.Fields{
			"field": field,
			"count": n,
		}).Debug("Timestamp field usage")
	}

	return docs, stats, nil
}

// ArchiveSummary writes the run's output back to the given collection.
func (s *FirestoreStore) ArchiveSummary(ctx context.Context, collection string, rec RunRecord) error {
	if _, _, err := s.client.Collection(collection).Add(ctx, rec); err != nil {
		return fmt.Errorf("archive summary to %s: %w", collection, err)
	}
	return nil
}

// describe maps gRPC status codes onto operator-readable causes.
func describe(err error) error {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return fmt.Errorf("store unreachable: %s", st.Message())
		case codes.Unauthenticated, codes.PermissionDenied:
			return fmt.Errorf("credentials rejected: %s", st.Message())
		}
	}
	return err
}
