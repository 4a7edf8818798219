package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const teamQuery = `query($teamName: String!) {
    teams(filter: {name: {eq: $teamName}}) {
        nodes {
            id
            name
        }
    }
}`

const workflowStatesQuery = `query {
    workflowStates {
        nodes {
            id
            name
        }
    }
}`

const issueCreateMutation = `mutation($teamId: String!, $title: String!, $description: String!) {
    issueCreate(input: {
        teamId: $teamId
        title: $title
        description: $description
    }) {
        issue {
            id
            title
            description
        }
    }
}`

const issueCreateWithStateMutation = `mutation($teamId: String!, $title: String!, $description: String!, $stateId: String!) {
    issueCreate(input: {
        teamId: $teamId
        title: $title
        description: $description
        stateId: $stateId
    }) {
        issue {
            id
            title
            description
        }
    }
}`

// LinearClient talks to the Linear GraphQL API. The API key goes into the
// Authorization header as-is; Linear personal API keys take no scheme prefix.
type LinearClient struct {
	APIURL     string
	APIKey     string
	HTTPClient *http.Client
}

type linearGraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type linearGraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type linearNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type linearTeamsData struct {
	Teams struct {
		Nodes []linearNode `json:"nodes"`
	} `json:"teams"`
}

type linearWorkflowStatesData struct {
	WorkflowStates struct {
		Nodes []linearNode `json:"nodes"`
	} `json:"workflowStates"`
}

type linearIssueCreateData struct {
	IssueCreate struct {
		Issue *struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"issue"`
	} `json:"issueCreate"`
}

// graphql posts one query/mutation and unmarshals the data object into out.
func (c *LinearClient) graphql(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(linearGraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal linear request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create linear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("linear request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read linear response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("linear API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var gqlResp linearGraphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("failed to parse linear response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("linear API returned errors: %s", strings.Join(msgs, "; "))
	}

	if gqlResp.Data == nil {
		return fmt.Errorf("linear response contained no data")
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("failed to parse linear data: %w", err)
	}
	return nil
}

// ResolveTeam looks up the UUID for a team by exact name. Returns ("", nil)
// when no team matches.
func (c *LinearClient) ResolveTeam(ctx context.Context, teamName string) (string, error) {
	var data linearTeamsData
	err := c.graphql(ctx, teamQuery, map[string]any{"teamName": teamName}, &data)
	if err != nil {
		return "", err
	}

	nodes := data.Teams.Nodes
	if len(nodes) == 0 {
		return "", nil
	}
	return nodes[0].ID, nil
}

// ResolveStateID finds the workflow state whose name matches state_name,
// case-insensitive. Returns ("", nil) when no state matches.
func (c *LinearClient) ResolveStateID(ctx context.Context, stateName string) (string, error) {
	var data linearWorkflowStatesData
	err := c.graphql(ctx, workflowStatesQuery, nil, &data)
	if err != nil {
		return "", err
	}

	for _, state := range data.WorkflowStates.Nodes {
		if strings.EqualFold(state.Name, stateName) {
			return state.ID, nil
		}
	}
	return "", nil
}

// CreateIssue creates a new issue under the given team. stateID is optional;
// when empty the mutation omits it and Linear applies the team default.
func (c *LinearClient) CreateIssue(ctx context.Context, teamID, title, description, stateID string) (*Issue, error) {
	mutation := issueCreateMutation
	variables := map[string]any{
		"teamId":      teamID,
		"title":       title,
		"description": description,
	}
	if stateID != "" {
		mutation = issueCreateWithStateMutation
		variables["stateId"] = stateID
	}

	var data linearIssueCreateData
	if err := c.graphql(ctx, mutation, variables, &data); err != nil {
		return nil, err
	}

	issue := data.IssueCreate.Issue
	if issue == nil {
		return nil, fmt.Errorf("linear response missing issueCreate.issue")
	}

	return &Issue{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
	}, nil
}
