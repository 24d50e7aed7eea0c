package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	lastIn   *awss3.PutObjectInput
	lastBody []byte
	err      error
}

func (f *fakeS3) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	f.lastIn = in
	if in.Body != nil {
		f.lastBody, _ = io.ReadAll(in.Body)
	}
	return &awss3.PutObjectOutput{}, f.err
}

func TestNewUploader_Validation(t *testing.T) {
	_, err := NewUploader(nil, Config{Bucket: "b"})
	require.ErrorContains(t, err, "must not be nil")

	_, err = NewUploader(&fakeS3{}, Config{Bucket: " "})
	require.ErrorContains(t, err, "bucket")
}

func TestPut_UploadsAndReturnsURL(t *testing.T) {
	api := &fakeS3{}
	u, err := NewUploader(api, Config{Bucket: "pawcare-photos", Region: "eu-west-1"})
	require.NoError(t, err)

	url, err := u.Put(context.Background(), "pets/u1/p1/x.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "https://pawcare-photos.s3.eu-west-1.amazonaws.com/pets/u1/p1/x.png", url)

	require.Equal(t, "pawcare-photos", *api.lastIn.Bucket)
	require.Equal(t, "pets/u1/p1/x.png", *api.lastIn.Key)
	require.Equal(t, "image/png", *api.lastIn.ContentType)
	require.Equal(t, int64(9), *api.lastIn.ContentLength)
	require.Equal(t, "png-bytes", string(api.lastBody))
}

func TestObjectURL_Variants(t *testing.T) {
	u, err := NewUploader(&fakeS3{}, Config{Bucket: "b"})
	require.NoError(t, err)
	require.Equal(t, "https://b.s3.us-east-1.amazonaws.com/k.jpg", u.ObjectURL("k.jpg"))

	u, err = NewUploader(&fakeS3{}, Config{Bucket: "b", Endpoint: "http://localhost:4566/"})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:4566/b/k.jpg", u.ObjectURL("k.jpg"))

	u, err = NewUploader(&fakeS3{}, Config{Bucket: "b", Endpoint: "http://localhost:4566", PublicBaseURL: "https://cdn.pawcare.app/"})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.pawcare.app/k.jpg", u.ObjectURL("k.jpg"))
}

func TestPut_Errors(t *testing.T) {
	u, err := NewUploader(&fakeS3{err: errors.New("AccessDenied")}, Config{Bucket: "b"})
	require.NoError(t, err)

	_, err = u.Put(context.Background(), "k.jpg", []byte("x"), "image/jpeg")
	require.ErrorContains(t, err, "AccessDenied")

	_, err = u.Put(context.Background(), " / ", []byte("x"), "image/jpeg")
	require.ErrorContains(t, err, "key is required")
}
