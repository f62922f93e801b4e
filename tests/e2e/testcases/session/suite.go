// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"os"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/jordanamos/sas-cli/tests/e2e/commands"
	"github.com/jordanamos/sas-cli/tests/e2e/utils"
)

var _ = ginkgo.Describe("[Session]", func() {
	var home string

	ginkgo.BeforeEach(func() {
		var err error
		home, err = utils.SetupHome()
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.AfterEach(func() {
		gomega.Expect(os.RemoveAll(home)).Should(gomega.BeNil())
	})

	ginkgo.It("session test verifies the connection", func() {
		out, err := commands.SAS(home, "session", "test")
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("SAS connection established"))
	})

	ginkgo.It("session info reports the runtime details", func() {
		out, err := commands.SAS(home, "session", "info")
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("SAS version:"))
		gomega.Expect(out).Should(gomega.ContainSubstring("9.04.01M7P080520"))
		gomega.Expect(out).Should(gomega.ContainSubstring("WORK path:"))
	})

	ginkgo.It("fails cleanly when the SAS executable is missing", func() {
		gomega.Expect(utils.WriteStdioProfile(home, "/does/not/exist")).Should(gomega.BeNil())

		out, err := commands.SAS(home, "session", "test")
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(out).Should(gomega.ContainSubstring("failed to start SAS session"))
	})
})
