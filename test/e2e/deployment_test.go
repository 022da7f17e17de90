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
	"context"

	"github.com/dimagoldin/serverless-kubeless/pkg/deployer"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"
	"github.com/dimagoldin/serverless-kubeless/test/e2e/framework"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	kerr "k8s.io/apimachinery/pkg/api/errors"
)

var _ = Describe("Deployment run", func() {
	var (
		f *framework.Invocation
		d *deployer.Deployer
	)

	BeforeEach(func() {
		f = root.Invoke()
		d = deployer.New(f.KubeClient, f.KubelessClient, deployer.Options{Namespace: f.Namespace()})
	})

	AfterEach(func() {
		err := f.DeleteFunction(f.App())
		if err != nil && !kerr.IsNotFound(err) {
			Expect(err).NotTo(HaveOccurred())
		}
	})

	It("should skip a function that is already deployed", func() {
		fn := f.FunctionDescriptor()
		manifest, err := deployer.BuildFunction(fn, service.Event{Type: service.EventTypeHTTP, Path: "/"}, f.Namespace())
		Expect(err).NotTo(HaveOccurred())
		_, err = f.CreateFunction(manifest)
		Expect(err).NotTo(HaveOccurred())

		result, err := d.Run(context.Background(), []*service.Function{fn})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Completed).To(Equal(1))
	})

	It("should report a conflict instead of overwriting a changed function", func() {
		fn := f.FunctionDescriptor()
		manifest, err := deployer.BuildFunction(fn, service.Event{Type: service.EventTypeHTTP, Path: "/"}, f.Namespace())
		Expect(err).NotTo(HaveOccurred())
		manifest.Spec.Function = `def main(event, context):
    return "deployed earlier"
`
		_, err = f.CreateFunction(manifest)
		Expect(err).NotTo(HaveOccurred())

		result, err := d.Run(context.Background(), []*service.Function{fn})
		Expect(err).NotTo(HaveOccurred(), "an unforced conflict is a hint, not a failure")
		Expect(result.Completed).To(Equal(1))

		stored, err := f.GetFunction(fn.Name)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Spec.Function).To(ContainSubstring("deployed earlier"),
			"an unforced run must not touch the deployed definition")
	})
})
