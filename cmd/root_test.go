package cmd_test

import (
	"net/http"
	"os/exec"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"

	"github.com/CircleCI-Public/circleci-env-vars/clitest"
)

var _ = Describe("Environment variable integration tests", func() {
	var (
		tempSettings *clitest.TempSettings
		projectA     = clitest.Project{Reponame: "project-a", Username: "acme", VCSType: "github"}
		projectB     = clitest.Project{Reponame: "project-b", Username: "acme", VCSType: "bitbucket"}
	)

	BeforeEach(func() {
		tempSettings = clitest.WithTempSettings()
	})

	AfterEach(func() {
		tempSettings.Close()
	})

	run := func(args ...string) *gexec.Session {
		session, err := gexec.Start(tempSettings.Command(pathCLI, args...), GinkgoWriter, GinkgoWriter)
		Expect(err).ShouldNot(HaveOccurred())
		return session
	}

	Describe("creating a variable", func() {
		It("posts the variable to every followed project", func() {
			tempSettings.AppendListProjectsHandler(projectA, projectB)
			tempSettings.AppendCreateEnvVarHandler(projectA, "API_KEY", "xyz", http.StatusCreated)
			tempSettings.AppendCreateEnvVarHandler(projectB, "API_KEY", "xyz", http.StatusCreated)

			session := run("--action", "create", "--name", "API_KEY", "--value", "xyz")

			Eventually(session.Out).Should(gbytes.Say("Found 2 projects"))
			Eventually(session.Out).Should(gbytes.Say("Set environment variable API_KEY for project project-a"))
			Eventually(session.Out).Should(gbytes.Say("Set environment variable API_KEY for project project-b"))
			Eventually(session.Out).Should(gbytes.Say("Done\n"))
			Eventually(session).Should(gexec.Exit(0))
			Expect(tempSettings.RequestsFor("POST")).To(Equal(2))
		})

		It("stops at the first failed request", func() {
			tempSettings.AppendListProjectsHandler(projectA, projectB)
			tempSettings.AppendCreateEnvVarHandler(projectA, "API_KEY", "xyz", http.StatusForbidden)

			session := run("--action", "create", "--name", "API_KEY", "--value", "xyz")

			Eventually(session.Err).Should(gbytes.Say("Error: setting API_KEY on github/acme/project-a: received code 403"))
			Eventually(session).Should(clitest.ShouldFail())
			Expect(session.Out.Contents()).ShouldNot(ContainSubstring("Done"))
			Expect(tempSettings.TestServer.ReceivedRequests()).To(HaveLen(2))
		})
	})

	Describe("updating a variable", func() {
		It("only posts to projects that already have it", func() {
			tempSettings.AppendListProjectsHandler(projectA, projectB)
			tempSettings.AppendListEnvVarsHandler(projectA, "OTHER")
			tempSettings.AppendListEnvVarsHandler(projectB, "API_KEY")
			tempSettings.AppendCreateEnvVarHandler(projectB, "API_KEY", "rotated", http.StatusOK)

			session := run("--action", "update", "--name", "API_KEY", "--value", "rotated")

			Eventually(session.Out).Should(gbytes.Say("Environment variable API_KEY is not set for project-a. Skip it"))
			Eventually(session.Out).Should(gbytes.Say("Set environment variable API_KEY for project project-b"))
			Eventually(session.Out).Should(gbytes.Say("Done\n"))
			Eventually(session).Should(gexec.Exit(0))
			Expect(tempSettings.RequestsFor("GET")).To(Equal(3))
			Expect(tempSettings.RequestsFor("POST")).To(Equal(1))
		})
	})

	Describe("deleting a variable", func() {
		It("deletes it where it is set and skips the rest", func() {
			tempSettings.AppendListProjectsHandler(projectA, projectB)
			tempSettings.AppendListEnvVarsHandler(projectA, "OLD_KEY")
			tempSettings.AppendDeleteEnvVarHandler(projectA, "OLD_KEY", http.StatusOK)
			tempSettings.AppendListEnvVarsHandler(projectB)

			session := run("--action", "delete", "--name", "OLD_KEY")

			Eventually(session.Out).Should(gbytes.Say("Delete environment variable OLD_KEY for project project-a"))
			Eventually(session.Out).Should(gbytes.Say("Environment variable OLD_KEY is not set for project-b. Skip it"))
			Eventually(session.Out).Should(gbytes.Say("Done\n"))
			Eventually(session).Should(gexec.Exit(0))
			Expect(tempSettings.RequestsFor("DELETE")).To(Equal(1))
		})
	})

	Describe("with an unknown action", func() {
		It("fails before calling the API", func() {
			session := run("--action", "rename", "--name", "API_KEY", "--value", "xyz")

			Eventually(session.Err).Should(gbytes.Say("Error: --action should be one of the create/update/delete, not rename"))
			Eventually(session).Should(clitest.ShouldFail())
			Expect(tempSettings.TestServer.ReceivedRequests()).To(BeEmpty())
		})
	})

	Describe("with --debug", func() {
		It("prints requests to stderr without the token", func() {
			tempSettings.AppendListProjectsHandler(projectA)
			tempSettings.AppendListEnvVarsHandler(projectA)

			session := run("--debug", "--action", "delete", "--name", "OLD_KEY")

			Eventually(session.Err).Should(gbytes.Say("Sending GET request to URL: /api/v1.1/projects"))
			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Err.Contents()).ShouldNot(ContainSubstring(clitest.Token))
		})
	})

	Describe("help", func() {
		It("documents the flags", func() {
			session, err := gexec.Start(exec.Command(pathCLI, "--help"), GinkgoWriter, GinkgoWriter)
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(session.Out).Should(gbytes.Say("Mass update of environment variables in CircleCI."))
			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out.Contents()).Should(ContainSubstring("--action"))
			Expect(session.Out.Contents()).ShouldNot(ContainSubstring("--rest-endpoint"))
		})
	})
})
