package v1beta1

const (
	KubelessKey = "kubeless.serverless.com"

	// KeyDescription carries the human-readable description of a function,
	// copied verbatim from the service configuration.
	KeyDescription = KubelessKey + "/description"

	// LabelFunction is set by the controller on every pod backing a
	// function and on the ingress rules provisioned for it.
	LabelFunction = "function"
)
