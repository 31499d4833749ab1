package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	l := NewLocal(dir, "http://localhost:5000/upload/images/")

	loc, err := l.Save(context.Background(), "123cat.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/upload/images/123cat.png", loc)

	data, err := os.ReadFile(filepath.Join(dir, "123cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalSaveCanceled(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "http://localhost")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Save(ctx, "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(statErr))
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Save(t *testing.T) {
	client := &fakePutter{}
	s := NewS3(client, S3Options{Bucket: "notes", Region: "us-east-1"})

	loc, err := s.Save(context.Background(), "1cat.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://notes.s3.us-east-1.amazonaws.com/images/1cat.png", loc)
	assert.Equal(t, "images/1cat.png", aws.ToString(client.input.Key))
	assert.Equal(t, "image/png", aws.ToString(client.input.ContentType))
	assert.Equal(t, "img", client.body)
}

func TestS3SaveCustomEndpoint(t *testing.T) {
	s := NewS3(&fakePutter{}, S3Options{Bucket: "notes", Endpoint: "http://127.0.0.1:9000/"})

	loc, err := s.Save(context.Background(), "1cat.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/notes/images/1cat.png", loc)
}

func TestS3SaveError(t *testing.T) {
	s := NewS3(&fakePutter{err: errors.New("access denied")}, S3Options{Bucket: "notes"})

	_, err := s.Save(context.Background(), "1cat.png", "image/png", strings.NewReader("img"))
	assert.ErrorContains(t, err, "access denied")
}
