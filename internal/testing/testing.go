// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/ctms-cli/internal/services"
)

// MockClient is a test double for [tasks.CTMSClient] with per-method hooks.
type MockClient struct {
	UpdateFunc func(ctx context.Context, emailID string, newsletters []services.NewsletterSubscription) (*services.PatchResponse, error)
	DeleteFunc func(ctx context.Context, primaryEmail string) ([]services.IdentityRecord, error)
}

func (m *MockClient) UpdateNewsletters(ctx context.Context, emailID string, newsletters []services.NewsletterSubscription) (*services.PatchResponse, error) {
	if m.UpdateFunc == nil {
		return nil, errors.New("UpdateFunc not set")
	}
	return m.UpdateFunc(ctx, emailID, newsletters)
}

func (m *MockClient) DeleteContact(ctx context.Context, primaryEmail string) ([]services.IdentityRecord, error) {
	if m.DeleteFunc == nil {
		return nil, errors.New("DeleteFunc not set")
	}
	return m.DeleteFunc(ctx, primaryEmail)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// RoundTripFunc adapts a function to [http.RoundTripper] for per-request
// branching in tests.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
