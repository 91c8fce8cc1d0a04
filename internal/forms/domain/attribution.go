package domain

import "net/url"

// Attribution is the outcome of source resolution for one submission.
type Attribution struct {
	Source         string
	SubmissionType SubmissionType
	ResolvedDomain string
}

// ResolveAttribution determines a lead's source and submission channel.
// It is a pure function of (SourceConfig, RawContext): identical inputs
// always yield identical output.
//
// The channel ladder is evaluated in fixed priority order:
//
//  1. shared link access,
//  2. embedded with domain detection enabled,
//  3. hosted default.
//
// A present utm_source overrides only the source, and only when the form
// allows it; the submission type is still decided by the ladder.
// Reordering these checks changes attribution outcomes.
func ResolveAttribution(cfg SourceConfig, ctx RawContext) Attribution {
	var att Attribution

	switch {
	case ctx.SharedLink:
		att.SubmissionType = SubmissionTypeShared
		att.ResolvedDomain = ctx.Hostname
		att.Source = "Shared Form Link"
		if host := referrerHost(ctx.Referrer); host != "" {
			att.Source = "Shared Form Link - Referred by " + host
		}

	case ctx.IsEmbedded && cfg.DomainDetection:
		att.SubmissionType = SubmissionTypeEmbedded
		domain := referrerHost(ctx.Referrer)
		if domain == "" {
			// unparseable referrer degrades silently to the current host
			domain = ctx.Hostname
		}
		att.ResolvedDomain = domain
		att.Source = "Website - " + domain

	default:
		att.SubmissionType = SubmissionTypeHosted
		att.ResolvedDomain = ctx.Hostname
		att.Source = cfg.SourceType
	}

	if ctx.UTMSource != "" && cfg.AllowUTMOverride {
		att.Source = ctx.UTMSource
	}

	return att
}

// referrerHost extracts the hostname from a referrer URL, or "" when the
// referrer is absent or unparseable.
func referrerHost(referrer string) string {
	if referrer == "" {
		return ""
	}
	parsed, err := url.Parse(referrer)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
