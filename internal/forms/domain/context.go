package domain

// SubmissionType classifies how a form was reached.
type SubmissionType string

const (
	SubmissionTypeHosted   SubmissionType = "hosted"
	SubmissionTypeEmbedded SubmissionType = "embedded"
	SubmissionTypeShared   SubmissionType = "shared"
)

// Device is the coarse client device classification.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// RawContext carries the signals available when a submission arrives.
// The embedding flag and access path are supplied by the hosting shell;
// the server never infers them.
type RawContext struct {
	UTMSource  string
	IsEmbedded bool
	Hostname   string
	Referrer   string
	SharedLink bool
}

// SubmissionContext is the fully derived context recorded with a lead.
// It is computed at submit time and never stored in the form definition.
type SubmissionContext struct {
	UTMSource      string         `json:"utm_source,omitempty"`
	UTMMedium      string         `json:"utm_medium,omitempty"`
	UTMCampaign    string         `json:"utm_campaign,omitempty"`
	UTMContent     string         `json:"utm_content,omitempty"`
	UTMTerm        string         `json:"utm_term,omitempty"`
	Referrer       string         `json:"referrer,omitempty"`
	PageURL        string         `json:"pageUrl,omitempty"`
	Device         Device         `json:"device"`
	Domain         string         `json:"domain,omitempty"`
	IsEmbedded     bool           `json:"isEmbedded"`
	SubmissionType SubmissionType `json:"submissionType"`
}

// UTMValue returns the named UTM parameter, for utm-type auto-tag rules.
func (c SubmissionContext) UTMValue(name string) (string, bool) {
	switch name {
	case "utm_source":
		return c.UTMSource, true
	case "utm_medium":
		return c.UTMMedium, true
	case "utm_campaign":
		return c.UTMCampaign, true
	case "utm_content":
		return c.UTMContent, true
	case "utm_term":
		return c.UTMTerm, true
	default:
		return "", false
	}
}
