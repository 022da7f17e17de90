package v1beta1

import (
	core "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	ResourceKindFunction     = "Function"
	ResourcePluralFunction   = "functions"
	ResourceSingularFunction = "function"
)

// FunctionType selects how a deployed function is triggered.
type FunctionType string

const (
	// FunctionTypeHTTP exposes the function behind an HTTP endpoint.
	FunctionTypeHTTP FunctionType = "HTTP"
	// FunctionTypePubSub subscribes the function to a message topic.
	FunctionTypePubSub FunctionType = "PubSub"
)

// +genclient
// +k8s:openapi-gen=true
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

type Function struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              FunctionSpec `json:"spec,omitempty"`
}

type FunctionSpec struct {
	// Deps holds the language-level dependency manifest bundled with the
	// function, e.g. a requirements.txt or package.json body.
	Deps string `json:"deps"`
	// Function is the source text of the handler module.
	Function string `json:"function"`
	// Handler names the entry point inside Function, in module.method form.
	Handler string       `json:"handler"`
	Runtime string       `json:"runtime"`
	Type    FunctionType `json:"type"`
	// Topic is the subscription topic, set only for PubSub functions.
	// +optional
	Topic string `json:"topic,omitempty"`
	// Template customizes the runtime pod. It is set only when the function
	// declares environment variables or a memory size.
	// +optional
	Template *core.PodTemplateSpec `json:"template,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

type FunctionList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Function `json:"items,omitempty"`
}
