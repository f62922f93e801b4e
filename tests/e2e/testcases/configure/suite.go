// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package configure

import (
	"os"
	"path/filepath"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/jordanamos/sas-cli/tests/e2e/commands"
	"github.com/jordanamos/sas-cli/tests/e2e/utils"
)

var _ = ginkgo.Describe("[Config]", func() {
	var home string

	ginkgo.BeforeEach(func() {
		var err error
		home, err = os.MkdirTemp("", "sas-cli-e2e-*")
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.AfterEach(func() {
		gomega.Expect(os.RemoveAll(home)).Should(gomega.BeNil())
	})

	ginkgo.It("config init writes a default profile without prompting", func() {
		out, err := commands.SAS(home, "config", "init")
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("default stdio profile"))

		profilesPath := filepath.Join(home, ".sas-cli", "profiles.yaml")
		_, err = os.Stat(profilesPath)
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.It("config init refuses to overwrite existing profiles", func() {
		sasPath, err := utils.InstallFakeSAS(home)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(utils.WriteStdioProfile(home, sasPath)).Should(gomega.BeNil())

		out, err := commands.SAS(home, "config", "init")
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(out).Should(gomega.ContainSubstring("refusing to overwrite"))
	})

	ginkgo.It("config set and get round-trip a setting", func() {
		_, err := commands.SAS(home, "config", "set", "strict", "true")
		gomega.Expect(err).Should(gomega.BeNil())

		out, err := commands.SAS(home, "config", "get", "strict")
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("strict = true"))
	})

	ginkgo.It("config set rejects unknown keys", func() {
		out, err := commands.SAS(home, "config", "set", "bogus", "1")
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(out).Should(gomega.ContainSubstring("unknown setting"))
	})

	ginkgo.It("profiles lists the configured connections", func() {
		sasPath, err := utils.InstallFakeSAS(home)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(utils.WriteStdioProfile(home, sasPath)).Should(gomega.BeNil())

		out, err := commands.SAS(home, "config", "profiles")
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("local"))
		gomega.Expect(out).Should(gomega.ContainSubstring("stdio"))
	})
})
