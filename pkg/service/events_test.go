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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestEventUnmarshal(t *testing.T) {
	testCases := []struct {
		description string
		in          string
		expected    Event
		expectErr   bool
	}{
		{
			description: "an http event with routing parameters",
			in: `http:
  path: /hello
  hostname: fn.example.com
`,
			expected: Event{Type: EventTypeHTTP, Path: "/hello", Hostname: "fn.example.com"},
		},
		{
			description: "a bare http event",
			in:          `http: null`,
			expected:    Event{Type: EventTypeHTTP},
		},
		{
			description: "an http event without parameters",
			in:          `http: {}`,
			expected:    Event{Type: EventTypeHTTP},
		},
		{
			description: "a trigger event names its topic",
			in:          `trigger: greetings`,
			expected:    Event{Type: EventTypeTrigger, Trigger: "greetings"},
		},
		{
			description: "a bare trigger event has no topic",
			in:          `trigger: null`,
			expected:    Event{Type: EventTypeTrigger},
		},
		{
			description: "unrecognized types are preserved for the deployer to report",
			in:          `schedule: '* * * * *'`,
			expected:    Event{Type: "schedule"},
		},
		{
			description: "an event with two types is rejected",
			in: `http: {}
trigger: greetings
`,
			expectErr: true,
		},
		{
			description: "an event without a type is rejected",
			in:          `{}`,
			expectErr:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var evt Event
			err := yaml.Unmarshal([]byte(tc.in), &evt)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, evt)
		})
	}
}
