package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/github"
)

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

// MockClient is a mock implementation of the GitHub client for testing
type MockClient struct {
	Repositories   map[string]*github.Repository
	Releases       map[string][]*github.RepositoryRelease
	UploadedAssets []string // tracks asset paths passed to UploadReleaseAsset
	ErrorToReturn  error
	UploadError    error // if non-nil, returned by UploadReleaseAsset instead of ErrorToReturn
}

// NewMockClient creates a new mock GitHub client
func NewMockClient() *MockClient {
	return &MockClient{
		Repositories: make(map[string]*github.Repository),
		Releases:     make(map[string][]*github.RepositoryRelease),
	}
}

// GetRepository fetches repository information from mock data
func (m *MockClient) GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	key := fmt.Sprintf("%s/%s", owner, repo)
	if repository, exists := m.Repositories[key]; exists {
		return repository, nil
	}

	return nil, &NotFoundError{Message: fmt.Sprintf("repository %s not found", key)}
}

// GetRelease fetches a specific release from mock data
func (m *MockClient) GetRelease(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	key := fmt.Sprintf("%s/%s", owner, repo)
	for _, release := range m.Releases[key] {
		if release.TagName != nil && *release.TagName == tag {
			return release, nil
		}
	}

	return nil, &NotFoundError{Message: fmt.Sprintf("release %s not found in %s", tag, key)}
}

// CreateRelease creates a new release in mock data
func (m *MockClient) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	key := fmt.Sprintf("%s/%s", owner, repo)

	// Assign synthetic ID and URL for testing
	id := int64(len(m.Releases[key]) + 1)
	release.ID = &id
	htmlURL := fmt.Sprintf("https://github.com/%s/releases/tag/%s", key, release.GetTagName())
	release.HTMLURL = &htmlURL

	m.Releases[key] = append(m.Releases[key], release)
	return release, nil
}

// UploadReleaseAsset simulates uploading an asset to a release.
// If UploadError is set, it is returned instead of ErrorToReturn.
func (m *MockClient) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, assetPath, contentType string) (*github.ReleaseAsset, error) {
	if m.UploadError != nil {
		return nil, m.UploadError
	}
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.UploadedAssets = append(m.UploadedAssets, assetPath)

	name := assetPath
	return &github.ReleaseAsset{Name: &name}, nil
}

// SetError sets an error to be returned by all mock operations
func (m *MockClient) SetError(err error) {
	m.ErrorToReturn = err
}

// AddRepository adds a repository to mock data
func (m *MockClient) AddRepository(owner, repo string, repository *github.Repository) {
	key := fmt.Sprintf("%s/%s", owner, repo)
	m.Repositories[key] = repository
}

// AddRelease adds a release to mock data
func (m *MockClient) AddRelease(owner, repo string, release *github.RepositoryRelease) {
	key := fmt.Sprintf("%s/%s", owner, repo)
	m.Releases[key] = append(m.Releases[key], release)
}
