// Package intake pulls feedback out of external systems. GitHub issues are
// the built-in source; anything else comes in through importer plugins or
// JSON files.
package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

// GitHubFetcher turns a repository's open issues into feedback records.
type GitHubFetcher struct {
	client *github.Client
}

// NewGitHubFetcher builds a fetcher. An empty token means unauthenticated
// access, which works for public repositories at a lower rate limit.
func NewGitHubFetcher(ctx context.Context, token string) *GitHubFetcher {
	if token == "" {
		return &GitHubFetcher{client: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHubFetcher{client: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// NewGitHubFetcherWithClient is for tests and custom transports.
func NewGitHubFetcherWithClient(client *github.Client) *GitHubFetcher {
	return &GitHubFetcher{client: client}
}

// Fetch collects feedback from every "owner/repo" spec concurrently.
func (f *GitHubFetcher) Fetch(ctx context.Context, repos []string) ([]*feedback.Record, error) {
	results := make([][]*feedback.Record, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range repos {
		g.Go(func() error {
			records, err := f.fetchRepo(ctx, spec)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*feedback.Record
	for _, records := range results {
		out = append(out, records...)
	}
	return out, nil
}

func (f *GitHubFetcher) fetchRepo(ctx context.Context, spec string) ([]*feedback.Record, error) {
	owner, repo, ok := strings.Cut(spec, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid repository %q, want owner/repo", spec)
	}

	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var records []*feedback.Record
	for {
		issues, resp, err := f.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues for %s: %w", spec, err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			records = append(records, issueToRecord(spec, issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return records, nil
}

// issueToRecord maps an issue onto the intake model: the reporter is the
// customer, labels carry priority and segment hints, and reaction volume
// stands in for business value.
func issueToRecord(spec string, issue *github.Issue) *feedback.Record {
	r := feedback.NewRecord(issue.GetUser().GetLogin(), issue.GetTitle())
	r.Source = "github:" + spec

	for _, label := range issue.Labels {
		name := strings.ToLower(label.GetName())
		switch {
		case name == "bug":
			r.Type = feedback.TypeBugReport
		case name == "enhancement":
			r.Type = feedback.TypeEnhancement
		case strings.Contains(name, "critical") || name == "p0":
			r.Priority = feedback.PriorityCritical
		case strings.Contains(name, "high") || name == "p1":
			r.Priority = feedback.PriorityHigh
		case strings.Contains(name, "low") || name == "p3":
			r.Priority = feedback.PriorityLow
		case strings.HasPrefix(name, "segment:"):
			r.Segment = strings.TrimPrefix(name, "segment:")
		}
	}

	// One reaction point per five thumbs, on top of the midpoint default.
	if reactions := issue.GetReactions().GetTotalCount(); reactions > 0 {
		value := r.BusinessValue + reactions/5
		if value > 10 {
			value = 10
		}
		r.BusinessValue = value
	}
	return r
}
