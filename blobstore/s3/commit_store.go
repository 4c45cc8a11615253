package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentCommit is returned when another writer committed the same
// version first.
var ErrConcurrentCommit = errors.New("concurrent commit detected")

// ErrNoCommit is returned when no snapshot has been committed yet.
var ErrNoCommit = errors.New("no committed snapshot")

// DDBClient is the subset of the DynamoDB API the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore tracks which snapshot blob is current, using DynamoDB
// conditional writes for the compare-and-swap semantics S3 lacks.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 bucket/prefix
//   - Sort key: version (number) - monotonically increasing version
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name clustergo-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	client    DDBClient
	tableName string
	baseURI   string
}

// NewCommitStore creates a commit store. baseURI identifies the snapshot
// series (e.g. "s3://bucket/prefix") and is used as the partition key.
func NewCommitStore(client DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		client:    client,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Commit records name as the current snapshot, allocating the next version.
// Returns ErrConcurrentCommit when another writer raced to the same version;
// callers may simply retry.
func (c *CommitStore) Commit(ctx context.Context, name string) (uint64, error) {
	version, _, err := c.latest(ctx)
	if err != nil && !errors.Is(err, ErrNoCommit) {
		return 0, err
	}
	next := version + 1

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri": &types.AttributeValueMemberS{Value: c.baseURI},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"snapshot": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return 0, ErrConcurrentCommit
		}
		return 0, err
	}
	return next, nil
}

// Current returns the name of the most recently committed snapshot.
func (c *CommitStore) Current(ctx context.Context) (string, error) {
	_, name, err := c.latest(ctx)
	return name, err
}

func (c *CommitStore) latest(ctx context.Context) (uint64, string, error) {
	out, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: c.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", err
	}
	if len(out.Items) == 0 {
		return 0, "", ErrNoCommit
	}

	item := out.Items[0]
	vAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", fmt.Errorf("commit item missing version attribute")
	}
	version, err := strconv.ParseUint(vAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse commit version: %w", err)
	}
	sAttr, ok := item["snapshot"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", fmt.Errorf("commit item missing snapshot attribute")
	}
	return version, sAttr.Value, nil
}
