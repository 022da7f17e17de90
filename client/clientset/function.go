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
package clientset

import (
	"context"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/rest"
)

type FunctionGetter interface {
	Functions(namespace string) FunctionInterface
}

type FunctionInterface interface {
	List(ctx context.Context, opts metav1.ListOptions) (*api.FunctionList, error)
	Get(ctx context.Context, name string, opts metav1.GetOptions) (*api.Function, error)
	Create(ctx context.Context, fn *api.Function, opts metav1.CreateOptions) (*api.Function, error)
	Update(ctx context.Context, fn *api.Function, opts metav1.UpdateOptions) (*api.Function, error)
	Delete(ctx context.Context, name string, opts metav1.DeleteOptions) error
}

type functions struct {
	r  rest.Interface
	ns string
}

var _ FunctionInterface = &functions{}

func newFunctions(c *KubelessClient, namespace string) *functions {
	return &functions{c.restClient, namespace}
}

func (c *functions) List(ctx context.Context, opts metav1.ListOptions) (result *api.FunctionList, err error) {
	result = &api.FunctionList{}
	err = c.r.Get().
		Namespace(c.ns).
		Resource(api.ResourcePluralFunction).
		VersionedParams(&opts, ParameterCodec).
		Do(ctx).
		Into(result)
	return
}

func (c *functions) Get(ctx context.Context, name string, opts metav1.GetOptions) (result *api.Function, err error) {
	result = &api.Function{}
	err = c.r.Get().
		Namespace(c.ns).
		Resource(api.ResourcePluralFunction).
		Name(name).
		VersionedParams(&opts, ParameterCodec).
		Do(ctx).
		Into(result)
	return
}

func (c *functions) Create(ctx context.Context, fn *api.Function, opts metav1.CreateOptions) (result *api.Function, err error) {
	result = &api.Function{}
	err = c.r.Post().
		Namespace(c.ns).
		Resource(api.ResourcePluralFunction).
		VersionedParams(&opts, ParameterCodec).
		Body(fn).
		Do(ctx).
		Into(result)
	return
}

func (c *functions) Update(ctx context.Context, fn *api.Function, opts metav1.UpdateOptions) (result *api.Function, err error) {
	result = &api.Function{}
	err = c.r.Put().
		Namespace(c.ns).
		Resource(api.ResourcePluralFunction).
		Name(fn.Name).
		VersionedParams(&opts, ParameterCodec).
		Body(fn).
		Do(ctx).
		Into(result)
	return
}

func (c *functions) Delete(ctx context.Context, name string, opts metav1.DeleteOptions) error {
	return c.r.Delete().
		Namespace(c.ns).
		Resource(api.ResourcePluralFunction).
		Name(name).
		Body(&opts).
		Do(ctx).
		Error()
}
