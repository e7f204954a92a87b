// Package clitest contains common utilities and helpers for testing the CLI
package clitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gexec"
	"github.com/onsi/gomega/ghttp"
	"github.com/onsi/gomega/types"
)

const (
	// RestPrefix is where the fake server mounts the v1.1 API.
	RestPrefix = "/api/v1.1"
	// Token is the token every stub expects in the circle-token query parameter.
	Token = "testtoken"
)

// On Unix, we want to assert that processed exited with 255
// On Windows, it should be -1.
func ShouldFail() types.GomegaMatcher {
	failureCode := 255
	if runtime.GOOS == "windows" {
		failureCode = -1
	}
	return gexec.Exit(failureCode)
}

// Project is a followed project served by the fake API.
type Project struct {
	Reponame string `json:"reponame"`
	Username string `json:"username"`
	VCSType  string `json:"vcs_type"`
}

func (p Project) envVarPath() string {
	return fmt.Sprintf("%s/project/%s/%s/%s/envvar", RestPrefix, p.VCSType, p.Username, p.Reponame)
}

// TempSettings wraps a ghttp server standing in for CircleCI.
// Handlers must be appended in the order the CLI is expected to call them.
type TempSettings struct {
	TestServer *ghttp.Server
}

// WithTempSettings should be called in a BeforeEach and returns a new TempSettings with everything setup for you
func WithTempSettings() *TempSettings {
	return &TempSettings{TestServer: ghttp.NewServer()}
}

// Close should be called in an AfterEach and shuts down the server.
func (settings *TempSettings) Close() {
	settings.TestServer.Close()
}

// Command returns an exec.Cmd running the CLI against the fake server.
func (settings *TempSettings) Command(pathCLI string, args ...string) *exec.Cmd {
	args = append([]string{"--host", settings.TestServer.URL(), "--token", Token}, args...)
	return exec.Command(pathCLI, args...) // #nosec
}

// RequestsFor returns how many received requests used method.
func (settings *TempSettings) RequestsFor(method string) int {
	n := 0
	for _, r := range settings.TestServer.ReceivedRequests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// AppendListProjectsHandler stubs GET /projects.
func (settings *TempSettings) AppendListProjectsHandler(projects ...Project) {
	settings.TestServer.AppendHandlers(
		ghttp.CombineHandlers(
			ghttp.VerifyRequest("GET", RestPrefix+"/projects", "circle-token="+Token+"&limit=1000"),
			ghttp.VerifyHeader(http.Header{"Accept": []string{"application/json"}}),
			ghttp.RespondWithJSONEncoded(http.StatusOK, projects),
		),
	)
}

// AppendListEnvVarsHandler stubs GET on the project's envvar collection.
func (settings *TempSettings) AppendListEnvVarsHandler(p Project, names ...string) {
	vars := []map[string]string{}
	for _, n := range names {
		vars = append(vars, map[string]string{"name": n, "value": "xxxx"})
	}
	settings.TestServer.AppendHandlers(
		ghttp.CombineHandlers(
			ghttp.VerifyRequest("GET", p.envVarPath(), "circle-token="+Token),
			ghttp.RespondWithJSONEncoded(http.StatusOK, vars),
		),
	)
}

// AppendCreateEnvVarHandler stubs POST on the project's envvar collection and
// checks the request body is {"name": name, "value": value}.
func (settings *TempSettings) AppendCreateEnvVarHandler(p Project, name, value string, status int) {
	expected, err := json.Marshal(map[string]string{"name": name, "value": value})
	gomega.Expect(err).ShouldNot(gomega.HaveOccurred())

	settings.TestServer.AppendHandlers(
		ghttp.CombineHandlers(
			ghttp.VerifyRequest("POST", p.envVarPath(), "circle-token="+Token),
			ghttp.VerifyContentType("application/json"),
			func(w http.ResponseWriter, req *http.Request) {
				body, err := io.ReadAll(req.Body)
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				err = req.Body.Close()
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(body).Should(gomega.MatchJSON(expected), "JSON Mismatch")
			},
			ghttp.RespondWith(status, fmt.Sprintf(`{"name": %q, "value": "xxxx"}`, name)),
		),
	)
}

// AppendDeleteEnvVarHandler stubs DELETE on a single variable.
func (settings *TempSettings) AppendDeleteEnvVarHandler(p Project, name string, status int) {
	settings.TestServer.AppendHandlers(
		ghttp.CombineHandlers(
			ghttp.VerifyRequest("DELETE", p.envVarPath()+"/"+name, "circle-token="+Token),
			ghttp.RespondWith(status, `{"message": "ok"}`),
		),
	)
}
