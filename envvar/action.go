package envvar

import (
	"strings"

	"github.com/CircleCI-Public/circleci-env-vars/errs"
)

// Action is what to do with the variable on every followed project.
type Action int

const (
	ActionCreate Action = iota + 1
	ActionUpdate
	ActionDelete
)

var actionNames = map[Action]string{
	ActionCreate: "create",
	ActionUpdate: "update",
	ActionDelete: "delete",
}

// Actions lists the valid actions in the order they are shown to the user.
func Actions() []Action {
	return []Action{ActionCreate, ActionUpdate, ActionDelete}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// NeedsValue reports whether the action sends a value to the API.
func (a Action) NeedsValue() bool {
	return a == ActionCreate || a == ActionUpdate
}

// ParseAction maps the --action flag to an Action. Matching is exact.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if a.String() == s {
			return a, nil
		}
	}
	if s == "" {
		return 0, errs.InvalidArgumentf("--action is required, one of the %s", actionList())
	}
	return 0, errs.InvalidArgumentf("--action should be one of the %s, not %s", actionList(), s)
}

func actionList() string {
	names := make([]string, 0, len(actionNames))
	for _, a := range Actions() {
		names = append(names, a.String())
	}
	return strings.Join(names, "/")
}
