/*
Copyright The Serverless Kubeless Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package e2e_test

import (
	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"
	"github.com/dimagoldin/serverless-kubeless/pkg/deployer"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"
	"github.com/dimagoldin/serverless-kubeless/test/e2e/framework"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Function", func() {
	var f *framework.Invocation

	BeforeEach(func() {
		f = root.Invoke()
	})

	It("should round-trip through the API server", func() {
		fn := f.FunctionDescriptor()
		manifest, err := deployer.BuildFunction(fn, service.Event{Type: service.EventTypeHTTP, Path: "/"}, f.Namespace())
		Expect(err).NotTo(HaveOccurred())

		By("Creating the function")
		created, err := f.CreateFunction(manifest)
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Spec.Handler).To(Equal(fn.Handler))

		By("Fetching it back")
		stored, err := f.GetFunction(fn.Name)
		Expect(err).NotTo(HaveOccurred())
		Expect(api.FunctionEqual(stored, manifest)).To(BeTrue(), "the stored spec must round-trip unchanged")

		By("Updating the runtime")
		stored.Spec.Runtime = "python3.7"
		_, err = f.UpdateFunction(stored)
		Expect(err).NotTo(HaveOccurred())
		updated, err := f.GetFunction(fn.Name)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Spec.Runtime).To(Equal("python3.7"))

		By("Deleting it")
		err = f.DeleteFunction(fn.Name)
		Expect(err).NotTo(HaveOccurred())
		f.EventuallyFunctionDeleted(fn.Name).Should(BeTrue())
	})
})
