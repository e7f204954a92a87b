package project

import "fmt"

// FollowedProject is a project the token's owner follows, as reported by the
// projects listing.
type FollowedProject struct {
	Reponame string `json:"reponame"`
	Username string `json:"username"`
	VCSType  string `json:"vcs_type"`
}

// Slug returns the project as vcs/username/reponame.
func (p FollowedProject) Slug() string {
	return fmt.Sprintf("%s/%s/%s", p.VCSType, p.Username, p.Reponame)
}

// ProjectEnvironmentVariable is a Environment Variable of a Project
type ProjectEnvironmentVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProjectClient is the interface to interact with project and it's
// components.
type ProjectClient interface {
	ListFollowedProjects() ([]FollowedProject, error)
	ListAllEnvironmentVariables(vcs, org, project string) ([]*ProjectEnvironmentVariable, error)
	CreateEnvironmentVariable(vcs, org, project string, v ProjectEnvironmentVariable) (*ProjectEnvironmentVariable, error)
	DeleteEnvironmentVariable(vcs, org, project, name string) error
}
