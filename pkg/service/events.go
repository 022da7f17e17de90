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
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	EventTypeHTTP    = "http"
	EventTypeTrigger = "trigger"
)

// Event is one trigger declaration attached to a function. Its wire form is
// a single-key mapping, {http: {path, hostname}} or {trigger: topic}. The
// key becomes Type; unrecognized keys are preserved so the deployer can
// report them instead of the loader guessing.
type Event struct {
	Type     string `json:"-"`
	Path     string `json:"-"`
	Hostname string `json:"-"`
	Trigger  string `json:"-"`
}

var null = []byte("null")

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return errors.Errorf("an event must declare exactly one type, found %d", len(raw))
	}
	for typ, body := range raw {
		e.Type = typ
		switch typ {
		case EventTypeHTTP:
			if len(body) == 0 || bytes.Equal(body, null) || body[0] != '{' {
				continue
			}
			var h struct {
				Path     string `json:"path"`
				Hostname string `json:"hostname"`
			}
			if err := json.Unmarshal(body, &h); err != nil {
				return errors.Wrap(err, "malformed http event")
			}
			e.Path = h.Path
			e.Hostname = h.Hostname
		case EventTypeTrigger:
			if len(body) == 0 || bytes.Equal(body, null) || body[0] != '"' {
				continue
			}
			if err := json.Unmarshal(body, &e.Trigger); err != nil {
				return errors.Wrap(err, "malformed trigger event")
			}
		}
	}
	return nil
}
