package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/profile"
)

// ObjectAPI is the part of *s3.Client the object store needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ObjectStore keeps each profile as a JSON object users/<uid>.json in one
// bucket. UpdateField is a read-modify-write serialised within this process.
type ObjectStore struct {
	api    ObjectAPI
	bucket string
	mu     sync.Mutex
}

func NewObjectStore(api ObjectAPI, bucket string) *ObjectStore {
	return &ObjectStore{api: api, bucket: bucket}
}

func objectKey(uid string) string {
	return "users/" + uid + ".json"
}

func (s *ObjectStore) Write(ctx context.Context, uid string, fields profile.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, uid, fields)
}

func (s *ObjectStore) UpdateField(ctx context.Context, uid string, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := s.get(ctx, uid)
	if errors.Is(err, common.ErrorNotFound) {
		fields = profile.Fields{}
	} else if err != nil {
		return err
	}

	fields[key] = value
	return s.put(ctx, uid, fields)
}

func (s *ObjectStore) Read(ctx context.Context, uid string) (profile.Fields, error) {
	return s.get(ctx, uid)
}

func (s *ObjectStore) put(ctx context.Context, uid string, fields profile.Fields) error {
	if fields == nil {
		fields = profile.Fields{}
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey(uid)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 error: %w", err)
	}
	return nil
}

func (s *ObjectStore) get(ctx context.Context, uid string) (profile.Fields, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(uid)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("s3 error: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 error: %w", err)
	}

	fields := profile.Fields{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode profile: %w: %w", common.ErrorCorruptRecord, err)
	}
	return fields, nil
}
