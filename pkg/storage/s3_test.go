package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/config"
)

type mockS3 struct{ mock.Mock }

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *mockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func TestS3Disk_Put(t *testing.T) {
	m := &mockS3{}
	m.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "images" &&
			aws.ToString(in.Key) == "products/p-1" &&
			aws.ToString(in.ContentType) == "image/jpeg" &&
			string(body) == "jpg"
	})).Return(nil)

	d := newS3Disk(m, config.S3Config{Bucket: "images", Region: "eu-west-1"})
	url, err := d.Put(context.Background(), "products/p-1", []byte("jpg"), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "https://images.s3.eu-west-1.amazonaws.com/products/p-1", url)
	m.AssertExpectations(t)
}

func TestS3Disk_DeleteWrapsError(t *testing.T) {
	m := &mockS3{}
	m.On("DeleteObject", mock.Anything, mock.Anything).Return(errors.New("access denied"))

	d := newS3Disk(m, config.S3Config{Bucket: "images", URL: "https://cdn.example.com/"})
	err := d.Delete(context.Background(), "products/p-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage/s3: delete products/p-1")
	assert.Equal(t, "https://cdn.example.com/x", d.URL("x"))
}

func TestS3Disk_EndpointURL(t *testing.T) {
	d := newS3Disk(&mockS3{}, config.S3Config{Bucket: "images", Endpoint: "http://localhost:4566/"})
	assert.Equal(t, "http://localhost:4566/images/products/p-1", d.URL("products/p-1"))
}
