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

// Package service models the serverless service configuration file that
// drives a deployment run: the provider defaults, the function descriptors
// and their trigger events.
package service

import (
	"sort"

	"github.com/pkg/errors"
	stringz "gomodules.xyz/x/strings"
	"k8s.io/apimachinery/pkg/util/intstr"
)

type Service struct {
	Service   string               `json:"service"`
	Provider  Provider             `json:"provider"`
	Functions map[string]*Function `json:"functions"`
}

type Provider struct {
	// Name is the serverless provider implementation, expected to be
	// "kubeless".
	Name      string `json:"name,omitempty"`
	Runtime   string `json:"runtime,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	// Hostname overrides the wildcard DNS host derived from the cluster
	// endpoint when provisioning ingress rules.
	Hostname string `json:"hostname,omitempty"`
}

type Function struct {
	// Name is the function id, filled from the map key while loading.
	Name string `json:"-"`

	Handler     string            `json:"handler,omitempty"`
	Runtime     string            `json:"runtime,omitempty"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	// MemorySize accepts a bare number, interpreted as mebibytes, or a
	// number with an explicit resource suffix such as "512Mi".
	MemorySize *intstr.IntOrString `json:"memorySize,omitempty"`
	Namespace  string              `json:"namespace,omitempty"`
	Events     []Event             `json:"events,omitempty"`

	// Text and Deps hold the function source and its dependency manifest,
	// resolved from files next to the service configuration.
	Text string `json:"-"`
	Deps string `json:"-"`
}

// SetDefaults folds provider-level settings into each function and records
// the map key as the function name.
func (s *Service) SetDefaults() {
	for name, fn := range s.Functions {
		if fn == nil {
			continue
		}
		fn.Name = name
		fn.Runtime = stringz.Val(fn.Runtime, s.Provider.Runtime)
		fn.Namespace = stringz.Val(fn.Namespace, s.Provider.Namespace)
	}
}

// Validate reports structural problems that prevent a deployment run.
// Functions without a handler are legal, they are skipped at deploy time.
func (s *Service) Validate() error {
	if s.Service == "" {
		return errors.New("service name is required")
	}
	for name, fn := range s.Functions {
		if fn == nil {
			return errors.Errorf("function %s is empty", name)
		}
		if fn.Handler == "" {
			continue
		}
		if fn.Runtime == "" {
			return errors.Errorf("function %s declares no runtime and the provider has no default", name)
		}
	}
	return nil
}

// Ordered returns the functions sorted by name.
func (s *Service) Ordered() []*Function {
	fns := make([]*Function, 0, len(s.Functions))
	for _, fn := range s.Functions {
		fns = append(fns, fn)
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Name < fns[j].Name })
	return fns
}

// EffectiveEvents returns the declared events, defaulting to a single HTTP
// endpoint at the root path.
func (f *Function) EffectiveEvents() []Event {
	if len(f.Events) == 0 {
		return []Event{{Type: EventTypeHTTP, Path: "/"}}
	}
	return f.Events
}
