// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"os"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/jordanamos/sas-cli/tests/e2e/commands"
	"github.com/jordanamos/sas-cli/tests/e2e/utils"
)

var _ = ginkgo.Describe("[Run]", func() {
	var home string

	ginkgo.BeforeEach(func() {
		var err error
		home, err = utils.SetupHome()
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.AfterEach(func() {
		gomega.Expect(os.RemoveAll(home)).Should(gomega.BeNil())
	})

	ginkgo.It("runs a clean program and exits zero", func() {
		prog, err := utils.WriteProgram(home, "clean.sas", "%put NOTE: all good;\n")
		gomega.Expect(err).Should(gomega.BeNil())

		out, err := commands.SAS(home, "run", prog)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("0 error(s)"))
	})

	ginkgo.It("exits nonzero when the log has ERROR lines", func() {
		prog, err := utils.WriteProgram(home, "broken.sas", "%put ERROR: boom;\n")
		gomega.Expect(err).Should(gomega.BeNil())

		out, err := commands.SAS(home, "run", prog)
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(out).Should(gomega.ContainSubstring("1 of 1 program(s) failed"))
	})

	ginkgo.It("treats warnings as failures with --strict", func() {
		prog, err := utils.WriteProgram(home, "warn.sas", "%put WARNING: iffy;\n")
		gomega.Expect(err).Should(gomega.BeNil())

		_, err = commands.SAS(home, "run", prog)
		gomega.Expect(err).Should(gomega.BeNil())

		_, err = commands.SAS(home, "run", "--strict", prog)
		gomega.Expect(err).Should(gomega.HaveOccurred())
	})

	ginkgo.It("rejects a path that is not a .sas file", func() {
		out, err := commands.SAS(home, "run", "nope.txt")
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(out).Should(gomega.ContainSubstring("not a valid .sas file"))
	})

	ginkgo.It("forwards a bare program argument to run", func() {
		prog, err := utils.WriteProgram(home, "bare.sas", "%put NOTE: bare form;\n")
		gomega.Expect(err).Should(gomega.BeNil())

		out, err := commands.SAS(home, prog)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("0 error(s)"))
	})

	ginkgo.It("saves the log under results with --save", func() {
		prog, err := utils.WriteProgram(home, "keep.sas", "%put NOTE: kept;\n")
		gomega.Expect(err).Should(gomega.BeNil())

		out, err := commands.SAS(home, "run", "--save", prog)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out).Should(gomega.ContainSubstring("Log written to"))
	})
})
