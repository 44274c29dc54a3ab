// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified read-side interface
// for fetching game content: checking bucket existence, statting objects,
// downloading them, and listing folder prefixes. This abstraction supports
// both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks). The catalog only reads content; write operations are
// deliberately absent.
//
// # Operations
//
//   - BucketExists: Verifies access to the content bucket.
//   - StatObject: Checks a single object without downloading it.
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "content")
package storage
