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
package framework

import (
	"context"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"

	. "github.com/onsi/gomega"
	kerr "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const sourceText = `def main(event, context):
    return "hello world"
`

// FunctionDescriptor fabricates the in-memory form of one configured
// function, as if it had been loaded from a service file.
func (fi *Invocation) FunctionDescriptor() *service.Function {
	return &service.Function{
		Name:    fi.app,
		Handler: "handler.main",
		Runtime: "python2.7",
		Text:    sourceText,
	}
}

func (f *Framework) CreateFunction(fn *api.Function) (*api.Function, error) {
	return f.KubelessClient.Functions(f.namespace).Create(context.TODO(), fn, metav1.CreateOptions{})
}

func (f *Framework) GetFunction(name string) (*api.Function, error) {
	return f.KubelessClient.Functions(f.namespace).Get(context.TODO(), name, metav1.GetOptions{})
}

func (f *Framework) UpdateFunction(fn *api.Function) (*api.Function, error) {
	return f.KubelessClient.Functions(f.namespace).Update(context.TODO(), fn, metav1.UpdateOptions{})
}

func (f *Framework) DeleteFunction(name string) error {
	return f.KubelessClient.Functions(f.namespace).Delete(context.TODO(), name, metav1.DeleteOptions{})
}

func (f *Framework) EventuallyFunctionDeleted(name string) GomegaAsyncAssertion {
	return Eventually(func() bool {
		_, err := f.GetFunction(name)
		return kerr.IsNotFound(err)
	})
}
