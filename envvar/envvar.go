// Package envvar applies one create, update or delete of a named environment
// variable to every project the token follows.
package envvar

import (
	"github.com/pkg/errors"

	projectapi "github.com/CircleCI-Public/circleci-env-vars/api/project"
	"github.com/CircleCI-Public/circleci-env-vars/logger"
)

// Outcome records what happened to the variable on one project.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeDeleted Outcome = "deleted"
	OutcomeSkipped Outcome = "skipped"
)

// Result is the outcome of the action on a single project.
type Result struct {
	Project projectapi.FollowedProject
	Action  Action
	Outcome Outcome
}

type handlerFunc func(m *Manager, p projectapi.FollowedProject, name, value string) (Outcome, error)

var handlers = map[Action]handlerFunc{
	ActionCreate: (*Manager).create,
	ActionUpdate: (*Manager).update,
	ActionDelete: (*Manager).delete,
}

// Manager runs actions against the projects returned by its client.
type Manager struct {
	client projectapi.ProjectClient
	log    *logger.Logger
}

func NewManager(client projectapi.ProjectClient, log *logger.Logger) *Manager {
	return &Manager{client: client, log: log}
}

// Run lists the followed projects and applies action to each of them in
// listing order. The first error stops the run; results gathered so far are
// returned with it.
func (m *Manager) Run(action Action, name, value string) ([]Result, error) {
	handler, ok := handlers[action]
	if !ok {
		return nil, errors.Errorf("no handler for action %d", int(action))
	}

	projects, err := m.client.ListFollowedProjects()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(projects))
	for _, p := range projects {
		outcome, err := handler(m, p, name, value)
		if err != nil {
			return results, err
		}
		results = append(results, Result{Project: p, Action: action, Outcome: outcome})
	}

	return results, nil
}

// IsSet reports whether the project has a variable called name.
func (m *Manager) IsSet(p projectapi.FollowedProject, name string) (bool, error) {
	m.log.Debug("Check if environment variable %s is set for project %s", name, p.Reponame)

	vars, err := m.client.ListAllEnvironmentVariables(p.VCSType, p.Username, p.Reponame)
	if err != nil {
		return false, err
	}

	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}
	m.log.Debug("%v", names)

	for _, n := range names {
		if n == name {
			m.log.Debug("Environment variable %s is set for project %s", name, p.Reponame)
			return true, nil
		}
	}
	m.log.Debug("Environment variable %s is not set for %s", name, p.Reponame)
	return false, nil
}

func (m *Manager) create(p projectapi.FollowedProject, name, value string) (Outcome, error) {
	m.log.Infof("Set environment variable %s for project %s", name, p.Reponame)

	created, err := m.client.CreateEnvironmentVariable(p.VCSType, p.Username, p.Reponame, projectapi.ProjectEnvironmentVariable{
		Name:  name,
		Value: value,
	})
	if err != nil {
		return "", err
	}
	m.log.Debug("Environment variable %s stored for project %s", created.Name, p.Reponame)
	return OutcomeCreated, nil
}

func (m *Manager) update(p projectapi.FollowedProject, name, value string) (Outcome, error) {
	set, err := m.IsSet(p, name)
	if err != nil {
		return "", err
	}
	if !set {
		m.skip(p, name)
		return OutcomeSkipped, nil
	}

	if _, err := m.create(p, name, value); err != nil {
		return "", err
	}
	return OutcomeUpdated, nil
}

func (m *Manager) delete(p projectapi.FollowedProject, name, _ string) (Outcome, error) {
	set, err := m.IsSet(p, name)
	if err != nil {
		return "", err
	}
	if !set {
		m.skip(p, name)
		return OutcomeSkipped, nil
	}

	m.log.Infof("Delete environment variable %s for project %s", name, p.Reponame)
	if err := m.client.DeleteEnvironmentVariable(p.VCSType, p.Username, p.Reponame, name); err != nil {
		return "", err
	}
	return OutcomeDeleted, nil
}

func (m *Manager) skip(p projectapi.FollowedProject, name string) {
	m.log.Infof("Environment variable %s is not set for %s. Skip it", name, p.Reponame)
}
