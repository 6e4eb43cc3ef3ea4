// Package sqs wraps the Amazon SQS API behind the three operations the
// dashboard needs: enumerate queues with backlog counters, fetch the full
// attribute set for one queue, and purge one queue.
package sqs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog"
)

// API is the subset of the SQS service client the wrapper calls.
type API interface {
	ListQueues(ctx context.Context, params *awssqs.ListQueuesInput, optFns ...func(*awssqs.Options)) (*awssqs.ListQueuesOutput, error)
	GetQueueAttributes(ctx context.Context, params *awssqs.GetQueueAttributesInput, optFns ...func(*awssqs.Options)) (*awssqs.GetQueueAttributesOutput, error)
	PurgeQueue(ctx context.Context, params *awssqs.PurgeQueueInput, optFns ...func(*awssqs.Options)) (*awssqs.PurgeQueueOutput, error)
}

// Client is a thin request/response wrapper; retry and timeout behavior is
// whatever the underlying SDK client carries.
type Client struct {
	api API
	log zerolog.Logger
}

func New(api API, log zerolog.Logger) *Client {
	return &Client{api: api, log: log}
}

// ListQueues enumerates every queue URL (following pagination) and fetches
// the three approximate message counters for each. Order is whatever the
// service returned.
func (c *Client) ListQueues(ctx context.Context) ([]QueueSummary, error) {
	var urls []string
	var token *string
	for {
		out, err := c.api.ListQueues(ctx, &awssqs.ListQueuesInput{
			NextToken:  token,
			MaxResults: aws.Int32(1000),
		})
		if err != nil {
			c.log.Warn().Err(err).Msg("list queues failed")
			return nil, fmt.Errorf("list queues: %w", err)
		}
		urls = append(urls, out.QueueUrls...)
		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}

	queues := make([]QueueSummary, 0, len(urls))
	for _, url := range urls {
		summary, err := c.queueSummary(ctx, url)
		if err != nil {
			c.log.Warn().Err(err).Str("queue", QueueNameFromURL(url)).Msg("fetch counters failed")
			return nil, err
		}
		queues = append(queues, summary)
	}
	c.log.Debug().Int("count", len(queues)).Msg("listed queues")
	return queues, nil
}

func (c *Client) queueSummary(ctx context.Context, url string) (QueueSummary, error) {
	out, err := c.api.GetQueueAttributes(ctx, &awssqs.GetQueueAttributesInput{
		QueueUrl: aws.String(url),
		AttributeNames: []sqstypes.QueueAttributeName{
			sqstypes.QueueAttributeNameApproximateNumberOfMessages,
			sqstypes.QueueAttributeNameApproximateNumberOfMessagesNotVisible,
			sqstypes.QueueAttributeNameApproximateNumberOfMessagesDelayed,
		},
	})
	if err != nil {
		return QueueSummary{}, fmt.Errorf("get attributes for %s: %w", QueueNameFromURL(url), err)
	}

	attrs := out.Attributes
	return QueueSummary{
		URL:       url,
		Name:      QueueNameFromURL(url),
		Visible:   attrCount(attrs, sqstypes.QueueAttributeNameApproximateNumberOfMessages),
		InFlight:  attrCount(attrs, sqstypes.QueueAttributeNameApproximateNumberOfMessagesNotVisible),
		Delayed:   attrCount(attrs, sqstypes.QueueAttributeNameApproximateNumberOfMessagesDelayed),
		UpdatedAt: time.Now(),
	}, nil
}

// GetQueueDetail fetches the full attribute set for one queue. Attributes
// the service omits stay nil.
func (c *Client) GetQueueDetail(ctx context.Context, url string) (*QueueDetail, error) {
	out, err := c.api.GetQueueAttributes(ctx, &awssqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(url),
		AttributeNames: []sqstypes.QueueAttributeName{sqstypes.QueueAttributeNameAll},
	})
	if err != nil {
		c.log.Warn().Err(err).Str("queue", QueueNameFromURL(url)).Msg("fetch detail failed")
		return nil, fmt.Errorf("get attributes for %s: %w", QueueNameFromURL(url), err)
	}

	attrs := out.Attributes
	return &QueueDetail{
		ARN:                attrString(attrs, sqstypes.QueueAttributeNameQueueArn),
		CreatedAt:          attrTime(attrs, sqstypes.QueueAttributeNameCreatedTimestamp),
		LastModifiedAt:     attrTime(attrs, sqstypes.QueueAttributeNameLastModifiedTimestamp),
		RetentionSeconds:   attrInt64(attrs, sqstypes.QueueAttributeNameMessageRetentionPeriod),
		VisibilityTimeout:  attrInt64(attrs, sqstypes.QueueAttributeNameVisibilityTimeout),
		MaximumMessageSize: attrInt64(attrs, sqstypes.QueueAttributeNameMaximumMessageSize),
		DelaySeconds:       attrInt64(attrs, sqstypes.QueueAttributeNameDelaySeconds),
	}, nil
}

// PurgeQueue irreversibly empties a queue.
func (c *Client) PurgeQueue(ctx context.Context, url string) error {
	if _, err := c.api.PurgeQueue(ctx, &awssqs.PurgeQueueInput{QueueUrl: aws.String(url)}); err != nil {
		c.log.Warn().Err(err).Str("queue", QueueNameFromURL(url)).Msg("purge failed")
		return fmt.Errorf("purge %s: %w", QueueNameFromURL(url), err)
	}
	c.log.Info().Str("queue", QueueNameFromURL(url)).Msg("queue purged")
	return nil
}

// QueueNameFromURL derives the display name from the final URL segment.
func QueueNameFromURL(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 && idx+1 < len(trimmed) {
		return trimmed[idx+1:]
	}
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}

func attrCount(attrs map[string]string, name sqstypes.QueueAttributeName) int64 {
	if v := attrInt64(attrs, name); v != nil {
		return *v
	}
	return 0
}

func attrString(attrs map[string]string, name sqstypes.QueueAttributeName) *string {
	raw, ok := attrs[string(name)]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

func attrInt64(attrs map[string]string, name sqstypes.QueueAttributeName) *int64 {
	raw, ok := attrs[string(name)]
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func attrTime(attrs map[string]string, name sqstypes.QueueAttributeName) *time.Time {
	epoch := attrInt64(attrs, name)
	if epoch == nil {
		return nil
	}
	t := time.Unix(*epoch, 0)
	return &t
}
