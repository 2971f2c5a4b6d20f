package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
)

// Mirror pushes the mint tracking file to a GitHub repository so the ledger
// survives host loss. Every update is a commit with a descriptive message.
type Mirror struct {
	client *github.Client
	owner  string
	repo   string
	path   string
	branch string
}

// NewMirror creates a mirror for owner/repo committing to path on branch.
func NewMirror(token, owner, repo, path, branch string) *Mirror {
	return &Mirror{
		client: github.NewClient(nil).WithAuthToken(token),
		owner:  owner,
		repo:   repo,
		path:   path,
		branch: branch,
	}
}

// Update creates or updates the mirrored file. The current blob SHA is
// fetched first; a 404 means the file does not exist yet and is created.
func (m *Mirror) Update(ctx context.Context, content []byte, message string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(m.branch),
	}

	file, _, resp, err := m.client.Repositories.GetContents(ctx, m.owner, m.repo, m.path,
		&github.RepositoryContentGetOptions{Ref: m.branch})
	switch {
	case err == nil && file != nil:
		opts.SHA = file.SHA
		if _, _, err := m.client.Repositories.UpdateFile(ctx, m.owner, m.repo, m.path, opts); err != nil {
			return fmt.Errorf("updating %s on github: %w", m.path, err)
		}
		return nil
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		if _, _, err := m.client.Repositories.CreateFile(ctx, m.owner, m.repo, m.path, opts); err != nil {
			return fmt.Errorf("creating %s on github: %w", m.path, err)
		}
		return nil
	default:
		return fmt.Errorf("fetching %s from github: %w", m.path, err)
	}
}
