package filestore

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// mockS3Client implements s3Client for testing.
type mockS3Client struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	putFails int
	puts     int
	getErr   error
}

func newMockS3() *mockS3Client {
	return &mockS3Client{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putFails > 0 {
		m.putFails--
		return nil, errors.New("transient upload failure")
	}
	data, _ := io.ReadAll(input.Body)
	m.objects[*input.Key] = data
	if input.ContentType != nil {
		m.types[*input.Key] = *input.ContentType
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*input.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	out := &s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(string(data))),
	}
	if ct, ok := m.types[*input.Key]; ok {
		out.ContentType = &ct
	}
	return out, nil
}

func (m *mockS3Client) DeleteObject(_ context.Context, input *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *input.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestStoreConfigured(t *testing.T) {
	if New(Config{}).Configured() {
		t.Error("empty config should leave the store unconfigured")
	}
	st := New(Config{Bucket: "files", AccessKey: "key", SecretKey: "secret"})
	if !st.Configured() {
		t.Error("complete config should configure the store")
	}
}

func TestStoreUnconfiguredOperationsFail(t *testing.T) {
	st := New(Config{})
	ctx := context.Background()
	if err := st.Put(ctx, "k", "text/plain", strings.NewReader("x")); err == nil {
		t.Error("Put on unconfigured store should fail")
	}
	if _, _, err := st.Get(ctx, "k"); err == nil {
		t.Error("Get on unconfigured store should fail")
	}
	if err := st.Delete(ctx, "k"); err == nil {
		t.Error("Delete on unconfigured store should fail")
	}
}

func TestStorePutGetDelete(t *testing.T) {
	mock := newMockS3()
	st := &Store{cfg: Config{Bucket: "files"}, client: mock}
	ctx := context.Background()

	if err := st.Put(ctx, "uploads/a.txt", "text/plain", strings.NewReader("hello")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	body, contentType, err := st.Get(ctx, "uploads/a.txt")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "hello" {
		t.Errorf("body = %q, want %q", data, "hello")
	}
	if contentType != "text/plain" {
		t.Errorf("content type = %q, want %q", contentType, "text/plain")
	}

	if err := st.Delete(ctx, "uploads/a.txt"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, _, err := st.Get(ctx, "uploads/a.txt"); err == nil {
		t.Error("Get after delete should fail")
	}
}

func TestStorePutRetriesTransientFailures(t *testing.T) {
	mock := newMockS3()
	mock.putFails = 2
	st := &Store{cfg: Config{Bucket: "files"}, client: mock}

	if err := st.Put(context.Background(), "uploads/b.txt", "text/plain", strings.NewReader("retry me")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if mock.puts != 3 {
		t.Errorf("put attempts = %d, want 3", mock.puts)
	}
	if string(mock.objects["uploads/b.txt"]) != "retry me" {
		t.Errorf("stored body = %q, want %q", mock.objects["uploads/b.txt"], "retry me")
	}
}

func TestStorePutGivesUpAfterMaxRetries(t *testing.T) {
	mock := newMockS3()
	mock.putFails = 10
	st := &Store{cfg: Config{Bucket: "files"}, client: mock}

	if err := st.Put(context.Background(), "uploads/c.txt", "text/plain", strings.NewReader("x")); err == nil {
		t.Error("Put should fail once retries are exhausted")
	}
}
