// Package s3 implements blobstore.Store on top of Amazon S3, with an
// optional DynamoDB-backed commit store for atomically tracking the current
// snapshot across concurrent writers.
package s3
