package brief

import (
	"encoding/json"
	"strings"
)

// OtherDeliverable is the deliverable_type sentinel that makes
// deliverable_type_other mandatory.
const OtherDeliverable = "その他"

// Priority is the optional urgency marker of a request.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priorities. The empty
// priority is valid because the field is optional.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Request is the form input describing a creative-design request. It is
// built from the multi-step form, validated before submission and sent once;
// the server never persists it.
type Request struct {
	// RequestText is the client's original free-text request, if pasted.
	RequestText string `json:"request_text,omitempty" yaml:"request_text,omitempty"`

	Title                string   `json:"title" yaml:"title"`
	ClientName           string   `json:"client_name,omitempty" yaml:"client_name,omitempty"`
	DeliverableType      string   `json:"deliverable_type" yaml:"deliverable_type"`
	DeliverableTypeOther string   `json:"deliverable_type_other,omitempty" yaml:"deliverable_type_other,omitempty"`
	DueDate              string   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Priority             Priority `json:"priority,omitempty" yaml:"priority,omitempty"`

	// Deliverable specific details. Only the one matching DeliverableType is
	// shown by the form, but all are accepted.
	BannerSize   string `json:"banner_size,omitempty" yaml:"banner_size,omitempty"`
	LPPageCount  string `json:"lp_page_count,omitempty" yaml:"lp_page_count,omitempty"`
	AppOS        string `json:"app_os,omitempty" yaml:"app_os,omitempty"`
	SNSFormat    string `json:"sns_format,omitempty" yaml:"sns_format,omitempty"`
	WebsitePages string `json:"website_pages,omitempty" yaml:"website_pages,omitempty"`

	Background string `json:"background" yaml:"background"`
	Problem    string `json:"problem" yaml:"problem"`
	Goal       string `json:"goal" yaml:"goal"`
	Elements   string `json:"elements" yaml:"elements"`

	TargetUserTags   []string   `json:"target_user_tags,omitempty" yaml:"target_user_tags,omitempty"`
	TargetUserText   string     `json:"target_user_text,omitempty" yaml:"target_user_text,omitempty"`
	BusinessGoalTags []string   `json:"business_goal_tags,omitempty" yaml:"business_goal_tags,omitempty"`
	BusinessGoalText string     `json:"business_goal_text,omitempty" yaml:"business_goal_text,omitempty"`
	Channels         StringList `json:"channels,omitempty" yaml:"channels,omitempty"`
	ToneTags         []string   `json:"tone_tags,omitempty" yaml:"tone_tags,omitempty"`
	ToneKeywords     string     `json:"tone_keywords,omitempty" yaml:"tone_keywords,omitempty"`
	ReferenceURLs    string     `json:"reference_urls,omitempty" yaml:"reference_urls,omitempty"`
	NGExamples       string     `json:"ng_examples,omitempty" yaml:"ng_examples,omitempty"`
	Constraints      string     `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// UnmarshalJSON accepts the older single-textarea form as well: target_user
// and business_goal fill the *_text fields when those are absent.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	aux := struct {
		*plain
		TargetUser   string `json:"target_user"`
		BusinessGoal string `json:"business_goal"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if isBlank(r.TargetUserText) {
		r.TargetUserText = aux.TargetUser
	}
	if isBlank(r.BusinessGoalText) {
		r.BusinessGoalText = aux.BusinessGoal
	}
	return nil
}

// DeliverableLabel is the deliverable name used in the brief: the free-text
// value for the "other" sentinel, the selected type otherwise.
func (r Request) DeliverableLabel() string {
	if r.DeliverableType == OtherDeliverable && !isBlank(r.DeliverableTypeOther) {
		return strings.TrimSpace(r.DeliverableTypeOther)
	}
	return strings.TrimSpace(r.DeliverableType)
}

// StringList is a list of strings that also decodes from a single
// comma or newline separated string, which older clients sent for channels.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SplitList(s)
	return nil
}

// SplitList splits free text on ASCII commas, Japanese commas and newlines,
// dropping blank entries.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', '、', '，', '\n', '\r':
			return true
		}
		return false
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
