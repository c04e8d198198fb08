// Package ddb implements a DynamoDB run registry: a versioned pointer from a
// run series to its latest trace snapshot blob.
//
// Object stores lack compare-and-swap, so concurrent runs writing the same
// series could silently overwrite each other's "latest" pointer. DynamoDB
// conditional writes provide the missing atomicity.
//
// Table schema:
//   - Partition key: series (string)
//   - Sort key: version (number), monotonically increasing
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name adaptgo-runs \
//	  --attribute-definitions AttributeName=series,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=series,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package ddb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentModification is returned when another writer committed the
// same version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrNoRuns is returned when a series has no committed runs.
var ErrNoRuns = errors.New("no runs committed for series")

// Client is the subset of the DynamoDB API the registry uses.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Run is one committed run record.
type Run struct {
	Version  uint64
	Snapshot string
	Time     time.Time
}

// Registry tracks the latest trace snapshot per run series.
type Registry struct {
	client Client
	table  string
	series string
}

// NewRegistry creates a registry for one series in the given table.
func NewRegistry(client Client, table, series string) *Registry {
	return &Registry{client: client, table: table, series: series}
}

// Commit registers snapshot as the next version of the series. The
// conditional write fails with ErrConcurrentModification when another writer
// claimed the version first.
func (r *Registry) Commit(ctx context.Context, snapshot string) (uint64, error) {
	latest, err := r.Latest(ctx)
	version := uint64(1)
	switch {
	case err == nil:
		version = latest.Version + 1
	case errors.Is(err, ErrNoRuns):
	default:
		return 0, err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item: map[string]types.AttributeValue{
			"series":   &types.AttributeValueMemberS{Value: r.series},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"snapshot": &types.AttributeValueMemberS{Value: snapshot},
			"time":     &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("commit run version %d: %w", version, err)
	}
	return version, nil
}

// Latest returns the most recently committed run of the series.
func (r *Registry) Latest(ctx context.Context) (*Run, error) {
	resp, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("series = :s"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: r.series},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrNoRuns
	}
	return parseRun(resp.Items[0])
}

// History returns all committed runs of the series, newest first.
func (r *Registry) History(ctx context.Context) ([]*Run, error) {
	var runs []*Run
	var startKey map[string]types.AttributeValue

	for {
		resp, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.table),
			KeyConditionExpression: aws.String("series = :s"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":s": &types.AttributeValueMemberS{Value: r.series},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query run history: %w", err)
		}
		for _, item := range resp.Items {
			run, err := parseRun(item)
			if err != nil {
				return nil, err
			}
			runs = append(runs, run)
		}
		if resp.LastEvaluatedKey == nil {
			break
		}
		startKey = resp.LastEvaluatedKey
	}
	return runs, nil
}

func parseRun(item map[string]types.AttributeValue) (*Run, error) {
	run := &Run{}

	v, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, errors.New("run item missing version")
	}
	version, err := strconv.ParseUint(v.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse run version: %w", err)
	}
	run.Version = version

	if s, ok := item["snapshot"].(*types.AttributeValueMemberS); ok {
		run.Snapshot = s.Value
	}
	if ts, ok := item["time"].(*types.AttributeValueMemberS); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts.Value); err == nil {
			run.Time = parsed
		}
	}
	return run, nil
}
