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
package deployer

import (
	"sort"

	api "github.com/dimagoldin/serverless-kubeless/apis/kubeless/v1beta1"
	"github.com/dimagoldin/serverless-kubeless/pkg/service"

	"github.com/pkg/errors"
	core "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BuildFunction turns one function descriptor plus one of its events into
// the declarative Function resource submitted to the cluster. It performs
// no I/O.
func BuildFunction(fn *service.Function, evt service.Event, namespace string) (*api.Function, error) {
	spec := api.FunctionSpec{
		Deps:     fn.Deps,
		Function: fn.Text,
		Handler:  fn.Handler,
		Runtime:  fn.Runtime,
		Type:     api.FunctionTypeHTTP,
	}
	switch evt.Type {
	case service.EventTypeHTTP:
	case service.EventTypeTrigger:
		if evt.Trigger == "" {
			return nil, &DeploymentError{
				Reason:   ReasonInvalidEventConfiguration,
				Function: fn.Name,
				Err:      errors.New("a trigger event needs a topic"),
			}
		}
		spec.Type = api.FunctionTypePubSub
		spec.Topic = evt.Trigger
	default:
		return nil, &DeploymentError{
			Reason:   ReasonUnsupportedEventType,
			Function: fn.Name,
			Err:      errors.Errorf("event type %q is not supported", evt.Type),
		}
	}

	if len(fn.Environment) > 0 || fn.MemorySize != nil {
		template, err := runtimeTemplate(fn)
		if err != nil {
			return nil, err
		}
		spec.Template = template
	}

	obj := &api.Function{
		TypeMeta: metav1.TypeMeta{
			APIVersion: api.SchemeGroupVersion.String(),
			Kind:       api.ResourceKindFunction,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      fn.Name,
			Namespace: namespace,
			Labels:    fn.Labels,
		},
		Spec: spec,
	}
	if fn.Description != "" {
		obj.Annotations = map[string]string{api.KeyDescription: fn.Description}
	}
	return obj, nil
}

// runtimeTemplate customizes the first runtime container with the declared
// environment variables and memory bounds. Entries are sorted by name so
// repeated builds produce identical documents.
func runtimeTemplate(fn *service.Function) (*core.PodTemplateSpec, error) {
	container := core.Container{Name: fn.Name}

	names := make([]string, 0, len(fn.Environment))
	for name := range fn.Environment {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		container.Env = append(container.Env, core.EnvVar{Name: name, Value: fn.Environment[name]})
	}

	if fn.MemorySize != nil {
		mem, err := resource.ParseQuantity(normalizeMemory(fn.MemorySize.String()))
		if err != nil {
			return nil, errors.Wrapf(err, "function %s declares an invalid memory size", fn.Name)
		}
		container.Resources = core.ResourceRequirements{
			Limits:   core.ResourceList{core.ResourceMemory: mem},
			Requests: core.ResourceList{core.ResourceMemory: mem},
		}
	}

	return &core.PodTemplateSpec{
		Spec: core.PodSpec{
			Containers: []core.Container{container},
		},
	}, nil
}

// normalizeMemory appends the default Mi suffix to sizes given as a bare
// number. Sizes that already carry a unit pass through unchanged.
func normalizeMemory(size string) string {
	if size == "" {
		return size
	}
	if c := size[len(size)-1]; c >= '0' && c <= '9' {
		return size + "Mi"
	}
	return size
}
