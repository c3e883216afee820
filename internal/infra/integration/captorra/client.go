package captorra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/casereach/intake-api/internal/entity"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the client has enough configuration to attempt
// a sync. Used by the health endpoint.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.baseURL != ""
}

// SyncLead forwards a lead to Captorra as a new opportunity.
func (c *Client) SyncLead(ctx context.Context, lead *entity.Lead) error {
	opportunityID, err := c.CreateOpportunity(ctx, CreateOpportunityInput{
		ExternalID:   lead.ID,
		FirstName:    lead.FirstName,
		LastName:     lead.LastName,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Description:  lead.Description,
		PracticeArea: lead.PracticeArea,
		PracticeType: lead.PracticeAreaCategory,
		Urgency:      lead.Urgency,
		LeadSource:   lead.Source,
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Captorra: opportunity %s created for lead %s", opportunityID, lead.ID)
	return nil
}

// CreateOpportunity posts the lead as URL-encoded form fields and returns the
// external opportunity id.
func (c *Client) CreateOpportunity(ctx context.Context, input CreateOpportunityInput) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("captorra is not configured")
	}

	form := url.Values{}
	setIfPresent(form, "ExternalId", input.ExternalID)
	setIfPresent(form, "FirstName", input.FirstName)
	setIfPresent(form, "LastName", input.LastName)
	setIfPresent(form, "Email", input.Email)
	setIfPresent(form, "Phone", input.Phone)
	setIfPresent(form, "Description", input.Description)
	setIfPresent(form, "PracticeArea", input.PracticeArea)
	setIfPresent(form, "PracticeType", input.PracticeType)
	setIfPresent(form, "Urgency", input.Urgency)
	setIfPresent(form, "LeadSource", input.LeadSource)

	endpoint := c.baseURL + "/api/intake/opportunities"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("captorra request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("captorra rejected lead (status %d): %s", resp.StatusCode, string(body))
	}

	var response createOpportunityResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("captorra returned an unreadable response: %w", err)
	}

	if !response.Success {
		return "", fmt.Errorf("captorra refused lead: %s", response.Message)
	}

	return response.OpportunityID, nil
}

func setIfPresent(form url.Values, key, value string) {
	if value != "" {
		form.Set(key, value)
	}
}
