package builtin

import (
	"log"
	"math/rand"
)

// HostData is the CustomData payload the built-in instructions look for on
// vm.Env. A host that wants deterministic randomize_number output or
// redirected print_* output constructs one and passes it to vm.New; any
// other CustomData value (including nil) falls back to package defaults.
type HostData struct {
	Rand   *rand.Rand
	Logger *log.Logger
}

var defaultHost = &HostData{
	Rand:   rand.New(rand.NewSource(1)),
	Logger: log.Default(),
}

// hostFrom extracts usable HostData from an env's CustomData, falling back
// to shared defaults so built-ins never panic on a bare Env.
func hostFrom(customData any) *HostData {
	h, ok := customData.(*HostData)
	if !ok || h == nil {
		return defaultHost
	}
	if h.Rand == nil {
		h.Rand = defaultHost.Rand
	}
	if h.Logger == nil {
		h.Logger = defaultHost.Logger
	}
	return h
}
