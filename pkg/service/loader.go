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
package service

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Load reads and validates the service configuration at path, resolving
// every function's source text and dependency manifest relative to it.
func Load(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read service file")
	}
	svc := &Service{}
	if err := yaml.Unmarshal(data, svc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	svc.SetDefaults()
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	if err := svc.ResolveSources(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return svc, nil
}

// ResolveSources fills in Text and Deps for every function that declares a
// handler. The handler file is derived from the handler's module prefix and
// the runtime's source extension. The dependency manifest is optional; a
// missing one leaves Deps empty.
func (s *Service) ResolveSources(dir string) error {
	for _, fn := range s.Ordered() {
		if fn.Handler == "" {
			continue
		}
		handlerFile, depsFile, err := runtimeFiles(fn.Runtime, fn.Handler)
		if err != nil {
			return errors.Wrapf(err, "function %s", fn.Name)
		}
		text, err := os.ReadFile(filepath.Join(dir, handlerFile))
		if err != nil {
			return errors.Wrapf(err, "failed to read the source of function %s", fn.Name)
		}
		fn.Text = string(text)

		deps, err := os.ReadFile(filepath.Join(dir, depsFile))
		if err != nil {
			if !os.IsNotExist(err) {
				return errors.Wrapf(err, "failed to read the dependencies of function %s", fn.Name)
			}
			continue
		}
		fn.Deps = string(deps)
	}
	return nil
}

// runtimeFiles maps a runtime id such as python2.7 or nodejs8 to the handler
// source filename and the conventional dependency manifest of that language.
func runtimeFiles(runtime, handler string) (handlerFile, depsFile string, err error) {
	module := strings.SplitN(handler, ".", 2)[0]
	switch {
	case strings.HasPrefix(runtime, "python"):
		return module + ".py", "requirements.txt", nil
	case strings.HasPrefix(runtime, "node"):
		return module + ".js", "package.json", nil
	case strings.HasPrefix(runtime, "ruby"):
		return module + ".rb", "Gemfile", nil
	case strings.HasPrefix(runtime, "php"):
		return module + ".php", "composer.json", nil
	case strings.HasPrefix(runtime, "go"):
		return module + ".go", "Gopkg.toml", nil
	}
	return "", "", errors.Errorf("unsupported runtime %q", runtime)
}
