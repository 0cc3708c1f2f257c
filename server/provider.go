package server

import "github.com/google/wire"

// ProviderSet is the wire provider set for the server package
var ProviderSet = wire.NewSet(New)
