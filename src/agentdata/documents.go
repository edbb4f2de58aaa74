package agentdata

import (
	"context"
	"fmt"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/resource"
)

// Documents returns the cache-backed resource for a document listing. Each
// distinct filter gets its own cache key, so filtered and unfiltered listings
// revalidate independently.
func (s *Store) Documents(filter agentapi.DocumentFilter) *resource.Resource[[]agentapi.Document] {
	key := agentapi.DocumentsListPath(filter)

	s.mu.Lock()
	defer s.mu.Unlock()

	if res, ok := s.documents[key]; ok {
		return res
	}

	res := resource.NewResource(key, s.cache,
		func(ctx context.Context) ([]agentapi.Document, error) {
			return s.client.ListDocuments(ctx, filter)
		},
		resource.WithGroup[[]agentapi.Document](&s.group),
		resource.WithLogger[[]agentapi.Document](s.logger),
	)
	s.documents[key] = res
	return res
}

// UploadDocument uploads a file to the knowledge base. Every known document
// listing key is invalidated on success.
func (s *Store) UploadDocument(ctx context.Context, req agentapi.UploadRequest) (*agentapi.UploadResult, error) {
	mutation := resource.NewMutation(
		func(ctx context.Context, in agentapi.UploadRequest) (*agentapi.UploadResult, error) {
			return s.client.UploadDocument(ctx, in)
		},
		resource.WithNotifier[agentapi.UploadRequest, *agentapi.UploadResult](s.notifier),
		resource.WithInvalidation[agentapi.UploadRequest, *agentapi.UploadResult](s.cache, s.documentKeys()...),
		resource.WithErrorMessage[agentapi.UploadRequest, *agentapi.UploadResult](func(in agentapi.UploadRequest, err error) string {
			return fmt.Sprintf("Failed to upload %s: %s", in.Filename, reason(err))
		}),
		resource.WithMutationLogger[agentapi.UploadRequest, *agentapi.UploadResult](s.logger),
		resource.WithHooks(resource.Hooks[agentapi.UploadRequest, *agentapi.UploadResult]{
			OnSuccess: func(in agentapi.UploadRequest, out *agentapi.UploadResult) {
				s.notifier.Success(fmt.Sprintf("Document %s uploaded", in.Filename))
			},
		}),
	)

	return mutation.Trigger(ctx, req)
}

// DeleteDocument removes a document. Every known document listing key is
// invalidated on success.
func (s *Store) DeleteDocument(ctx context.Context, id string) (*agentapi.DeleteResult, error) {
	mutation := resource.NewMutation(
		func(ctx context.Context, in string) (*agentapi.DeleteResult, error) {
			return s.client.DeleteDocument(ctx, in)
		},
		resource.WithNotifier[string, *agentapi.DeleteResult](s.notifier),
		resource.WithInvalidation[string, *agentapi.DeleteResult](s.cache, s.documentKeys()...),
		resource.WithErrorMessage[string, *agentapi.DeleteResult](func(in string, err error) string {
			return fmt.Sprintf("Failed to delete document %s: %s", in, reason(err))
		}),
		resource.WithMutationLogger[string, *agentapi.DeleteResult](s.logger),
		resource.WithHooks(resource.Hooks[string, *agentapi.DeleteResult]{
			OnSuccess: func(in string, _ *agentapi.DeleteResult) {
				s.notifier.Success(fmt.Sprintf("Document %s deleted", in))
			},
		}),
	)

	return mutation.Trigger(ctx, id)
}

// ReprocessDocument re-runs ingestion for a document. Every known document
// listing key is invalidated on success so refreshed ingestion status is
// picked up.
func (s *Store) ReprocessDocument(ctx context.Context, id string) (*agentapi.ReprocessResult, error) {
	mutation := resource.NewMutation(
		func(ctx context.Context, in string) (*agentapi.ReprocessResult, error) {
			return s.client.ReprocessDocument(ctx, in)
		},
		resource.WithNotifier[string, *agentapi.ReprocessResult](s.notifier),
		resource.WithInvalidation[string, *agentapi.ReprocessResult](s.cache, s.documentKeys()...),
		resource.WithErrorMessage[string, *agentapi.ReprocessResult](func(in string, err error) string {
			return fmt.Sprintf("Failed to reprocess document %s: %s", in, reason(err))
		}),
		resource.WithMutationLogger[string, *agentapi.ReprocessResult](s.logger),
		resource.WithHooks(resource.Hooks[string, *agentapi.ReprocessResult]{
			OnSuccess: func(in string, _ *agentapi.ReprocessResult) {
				s.notifier.Success(fmt.Sprintf("Document %s queued for reprocessing", in))
			},
		}),
	)

	return mutation.Trigger(ctx, id)
}
