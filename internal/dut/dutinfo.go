// Package dut models the device under test: operator-provided identity
// fields and machine-collected standard information.
package dut

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	cidPattern         = regexp.MustCompile(`^\d{6}-\d{5}$`)
	skuPattern         = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
	projectPattern     = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	platformTagPattern = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)
	emailPattern       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Info holds DUT identity like CID, SKU, project name and platform tags.
// All fields are optional; they pre-fill the report editor.
type Info struct {
	CID          string   `json:"cid,omitempty"`
	SKU          string   `json:"sku,omitempty"`
	Project      string   `json:"project,omitempty"`
	PlatformTags []string `json:"platform_tags,omitempty"`
	JiraAssignee string   `json:"jira_assignee,omitempty"`
	LPAssignee   string   `json:"lp_assignee,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// ValidCID reports whether a string looks like a Canonical ID
// (6 digits, dash, then 5 digits, e.g. 202408-12345).
func ValidCID(cid string) bool {
	return cidPattern.MatchString(strings.TrimSpace(cid))
}

// ValidAssignee rejects assignee strings carrying the "lp:" prefix.
func ValidAssignee(assignee string) bool {
	return !strings.HasPrefix(strings.TrimSpace(assignee), "lp:")
}

// Normalize trims all fields, uppercases the project, and lowercases
// platform tags.
func (i *Info) Normalize() {
	i.CID = strings.TrimSpace(i.CID)
	i.SKU = strings.TrimSpace(i.SKU)
	i.Project = strings.ToUpper(strings.TrimSpace(i.Project))
	i.JiraAssignee = strings.TrimSpace(i.JiraAssignee)
	i.LPAssignee = strings.TrimSpace(i.LPAssignee)
	i.PlatformTags = lo.Map(i.PlatformTags, func(t string, _ int) string {
		return strings.ToLower(strings.TrimSpace(t))
	})
	i.Tags = lo.Map(i.Tags, func(t string, _ int) string {
		return strings.TrimSpace(t)
	})
}

// Validate returns all per-field validation errors joined together.
func (i *Info) Validate() error {
	var errs []error
	if i.CID != "" && !cidPattern.MatchString(i.CID) {
		errs = append(errs, fmt.Errorf(
			"invalid cid %q: should look like 202408-12345 (6 digits, dash, then 5 digits)", i.CID))
	}
	if i.SKU != "" && !skuPattern.MatchString(i.SKU) {
		errs = append(errs, fmt.Errorf("invalid sku %q: only letters, digits, dashes and underscores", i.SKU))
	}
	if i.Project != "" && !projectPattern.MatchString(i.Project) {
		errs = append(errs, fmt.Errorf("invalid project %q: should be an alphanumeric string", i.Project))
	}
	for _, tag := range i.PlatformTags {
		if !platformTagPattern.MatchString(tag) {
			errs = append(errs, fmt.Errorf("invalid platform tag %q: only letters, digits and dashes", tag))
		}
	}
	if i.JiraAssignee != "" && !emailPattern.MatchString(i.JiraAssignee) {
		errs = append(errs, fmt.Errorf("invalid jira assignee %q: should be an email address", i.JiraAssignee))
	}
	if i.LPAssignee != "" {
		if strings.HasPrefix(i.LPAssignee, "lp:") {
			errs = append(errs, fmt.Errorf("invalid lp assignee %q: drop the \"lp:\" prefix", i.LPAssignee))
		} else if !projectPattern.MatchString(i.LPAssignee) {
			errs = append(errs, fmt.Errorf("invalid lp assignee %q: should be an alphanumeric string", i.LPAssignee))
		}
	}
	return errors.Join(errs...)
}

// Merge lays new non-empty fields over the receiver. This gives the saved
// info lower precedence than freshly supplied values.
func (i *Info) Merge(newer *Info) {
	if newer.CID != "" {
		i.CID = newer.CID
	}
	if newer.SKU != "" {
		i.SKU = newer.SKU
	}
	if newer.Project != "" {
		i.Project = newer.Project
	}
	if len(newer.PlatformTags) > 0 {
		i.PlatformTags = newer.PlatformTags
	}
	if newer.JiraAssignee != "" {
		i.JiraAssignee = newer.JiraAssignee
	}
	if newer.LPAssignee != "" {
		i.LPAssignee = newer.LPAssignee
	}
	if len(newer.Tags) > 0 {
		i.Tags = newer.Tags
	}
}

// Field is one displayable DUT info field.
type Field struct {
	Name  string
	Value string
}

// Fields returns the info in display order with pretty field names.
func (i *Info) Fields() []Field {
	return []Field{
		{"Cid", i.CID},
		{"Sku", i.SKU},
		{"Project", i.Project},
		{"Platform Tags", strings.Join(i.PlatformTags, ", ")},
		{"Jira Assignee", i.JiraAssignee},
		{"Lp Assignee", i.LPAssignee},
		{"Tags", strings.Join(i.Tags, ", ")},
	}
}

// Load reads saved DUT info from path. A missing file yields a nil Info
// and no error.
func Load(path string) (*Info, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var info Info
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, fmt.Errorf("corrupted dut info file: %w", err)
	}
	return &info, nil
}

// Save validates the info and writes it to path, merging it over whatever
// was saved before.
func Save(path string, info *Info) error {
	info.Normalize()
	if err := info.Validate(); err != nil {
		return err
	}

	merged := info
	if old, err := Load(path); err == nil && old != nil {
		old.Merge(info)
		merged = old
	}

	content, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// Clear removes the saved DUT info. Clearing twice is not an error.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
