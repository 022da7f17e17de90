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
package fake

import (
	"context"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"
	"github.com/dimagoldin/serverless-kubeless/client/clientset"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/testing"
)

type FakeFunctions struct {
	Fake *testing.Fake
	ns   string
}

var (
	functionsResource = api.SchemeGroupVersion.WithResource(api.ResourcePluralFunction)
	functionsKind     = api.SchemeGroupVersion.WithKind(api.ResourceKindFunction)
)

var _ clientset.FunctionInterface = &FakeFunctions{}

// List returns the functions matching the list options.
func (mock *FakeFunctions) List(ctx context.Context, opts metav1.ListOptions) (*api.FunctionList, error) {
	obj, err := mock.Fake.
		Invokes(testing.NewListAction(functionsResource, functionsKind, mock.ns, opts), &api.FunctionList{})

	if obj == nil {
		return nil, err
	}

	label, _, _ := testing.ExtractFromListOptions(opts)
	if label == nil {
		label = labels.Everything()
	}
	list := &api.FunctionList{}
	for _, item := range obj.(*api.FunctionList).Items {
		if label.Matches(labels.Set(item.Labels)) {
			list.Items = append(list.Items, item)
		}
	}
	return list, err
}

// Get returns the function by name.
func (mock *FakeFunctions) Get(ctx context.Context, name string, opts metav1.GetOptions) (*api.Function, error) {
	obj, err := mock.Fake.
		Invokes(testing.NewGetAction(functionsResource, mock.ns, name), &api.Function{})

	if obj == nil {
		return nil, err
	}
	return obj.(*api.Function), err
}

// Create creates a new function.
func (mock *FakeFunctions) Create(ctx context.Context, fn *api.Function, opts metav1.CreateOptions) (*api.Function, error) {
	obj, err := mock.Fake.
		Invokes(testing.NewCreateAction(functionsResource, mock.ns, fn), &api.Function{})

	if obj == nil {
		return nil, err
	}
	return obj.(*api.Function), err
}

// Update updates a function.
func (mock *FakeFunctions) Update(ctx context.Context, fn *api.Function, opts metav1.UpdateOptions) (*api.Function, error) {
	obj, err := mock.Fake.
		Invokes(testing.NewUpdateAction(functionsResource, mock.ns, fn), &api.Function{})

	if obj == nil {
		return nil, err
	}
	return obj.(*api.Function), err
}

// Delete deletes a function by name.
func (mock *FakeFunctions) Delete(ctx context.Context, name string, opts metav1.DeleteOptions) error {
	_, err := mock.Fake.
		Invokes(testing.NewDeleteAction(functionsResource, mock.ns, name), &api.Function{})

	return err
}
