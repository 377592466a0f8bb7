package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dealdesk/memogen/internal/model"
	"github.com/dealdesk/memogen/pkg/proxycurl"
)

// Failure reasons surfaced in the memo text when a profile lookup fails.
const (
	reasonNotFound    = "LinkedIn profile not found. Please check the URL and try again."
	reasonInvalidURL  = "Invalid LinkedIn URL. Please provide a complete LinkedIn profile URL."
	reasonUnavailable = "Unable to fetch LinkedIn profile data. Please try again later."
)

// enrichProfiles fetches every profile URL concurrently and returns results
// in input order. A failed lookup becomes a failure reason in its slot; blank
// URLs yield an empty result. Lookups never fail the pipeline.
func (p *Pipeline) enrichProfiles(ctx context.Context, urls []string) []model.ProfileResult {
	results := make([]model.ProfileResult, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	for i, raw := range urls {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		i, raw := i, raw
		g.Go(func() error {
			normalized := proxycurl.NormalizeProfileURL(raw)
			prof, err := p.profiles.GetProfile(gCtx, normalized)
			if err != nil {
				zap.L().Warn("pipeline: profile lookup failed",
					zap.String("url", normalized), zap.Error(err))
				results[i] = model.ProfileFailure(failureReason(err))
				return nil
			}
			results[i] = model.ProfileSuccess(toModelProfile(prof, normalized))
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return results
}

func failureReason(err error) string {
	switch {
	case eris.Is(err, proxycurl.ErrNotFound):
		return reasonNotFound
	case eris.Is(err, proxycurl.ErrInvalidURL):
		return reasonInvalidURL
	default:
		return reasonUnavailable
	}
}

func toModelProfile(p *proxycurl.Profile, url string) *model.Profile {
	out := &model.Profile{
		FullName:   p.FullName,
		Occupation: p.Occupation,
		Summary:    p.Summary,
		Skills:     p.Skills,
		URL:        url,
	}
	for _, e := range p.Experiences {
		out.Experiences = append(out.Experiences, model.Experience{Title: e.Title, Company: e.Company})
	}
	for _, e := range p.Education {
		out.Education = append(out.Education, model.Education{DegreeName: e.DegreeName, School: e.School})
	}
	return out
}
