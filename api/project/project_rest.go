package project

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/CircleCI-Public/circleci-env-vars/api/rest"
	"github.com/CircleCI-Public/circleci-env-vars/logger"
	"github.com/CircleCI-Public/circleci-env-vars/settings"
)

// ProjectsPageLimit is the page size asked of the projects listing. It is
// large enough to return every followed project in a single call.
const ProjectsPageLimit = 1000

type projectRestClient struct {
	client *rest.Client
	log    *logger.Logger
}

var _ ProjectClient = &projectRestClient{}

type projectEnvVarResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewProjectRestClient returns a new projectRestClient satisfying the ProjectClient
// interface via the v1.1 REST API.
func NewProjectRestClient(config *settings.Config, log *logger.Logger) (*projectRestClient, error) {
	client, err := rest.NewFromConfig(config)
	if err != nil {
		return nil, err
	}

	return &projectRestClient{
		client: client,
		log:    log,
	}, nil
}

// ListFollowedProjects returns every project followed by the owner of the token.
// Pagination is not supported: a single page of ProjectsPageLimit entries is requested.
func (p *projectRestClient) ListFollowedProjects() ([]FollowedProject, error) {
	p.log.Infoln("Getting all projects known to the user")

	params := url.Values{}
	params.Set("limit", strconv.Itoa(ProjectsPageLimit))

	var resp []FollowedProject
	if err := p.do("GET", &url.URL{Path: "projects", RawQuery: params.Encode()}, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "listing followed projects")
	}
	p.log.DebugJSON(resp)

	p.log.Infof("Found %d projects", len(resp))
	for _, fp := range resp {
		p.log.Debug("  %s", fp.Slug())
	}
	return resp, nil
}

// ListAllEnvironmentVariables returns all of the environment variables of the
// given project. Values are masked by the API.
func (p *projectRestClient) ListAllEnvironmentVariables(vcs, org, project string) ([]*ProjectEnvironmentVariable, error) {
	var resp []projectEnvVarResponse
	if err := p.do("GET", envVarURL(vcs, org, project, ""), nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "listing environment variables of %s/%s/%s", vcs, org, project)
	}
	p.log.DebugJSON(resp)

	res := make([]*ProjectEnvironmentVariable, 0, len(resp))
	for _, ev := range resp {
		res = append(res, &ProjectEnvironmentVariable{
			Name:  ev.Name,
			Value: ev.Value,
		})
	}
	return res, nil
}

// CreateEnvironmentVariable sets v on the project, overwriting any existing value.
func (p *projectRestClient) CreateEnvironmentVariable(vcs, org, project string, v ProjectEnvironmentVariable) (*ProjectEnvironmentVariable, error) {
	var resp projectEnvVarResponse
	if err := p.do("POST", envVarURL(vcs, org, project, ""), &v, &resp); err != nil {
		return nil, errors.Wrapf(err, "setting %s on %s/%s/%s", v.Name, vcs, org, project)
	}
	p.log.DebugJSON(resp)

	return &ProjectEnvironmentVariable{
		Name:  resp.Name,
		Value: resp.Value,
	}, nil
}

// DeleteEnvironmentVariable removes the named variable from the project.
func (p *projectRestClient) DeleteEnvironmentVariable(vcs, org, project, name string) error {
	var resp interface{}
	if err := p.do("DELETE", envVarURL(vcs, org, project, name), nil, &resp); err != nil {
		return errors.Wrapf(err, "deleting %s from %s/%s/%s", name, vcs, org, project)
	}
	p.log.DebugJSON(resp)
	return nil
}

func (p *projectRestClient) do(method string, u *url.URL, payload, resp interface{}) error {
	req, err := p.client.NewRequest(method, u, payload)
	if err != nil {
		return err
	}
	p.log.Debug("Sending %s request to URL: %s", method, req.URL.Path)

	_, err = p.client.DoRequest(req, resp)
	return err
}

func envVarURL(vcs, org, project, name string) *url.URL {
	path := fmt.Sprintf("project/%s/%s/%s/envvar", vcs, org, project)
	if name == "" {
		return &url.URL{Path: path}
	}
	return &url.URL{
		Path:    path + "/" + name,
		RawPath: path + "/" + url.PathEscape(name),
	}
}
