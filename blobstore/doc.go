// Package blobstore abstracts where analysis snapshots are kept.
//
// A Store holds immutable named blobs. Local deployments use the filesystem
// (with memory-mapped reads), cloud deployments use S3 or any S3-compatible
// endpoint via the minio subpackage. The s3 subpackage additionally offers a
// DynamoDB-backed commit store for atomically tracking the current snapshot.
package blobstore
