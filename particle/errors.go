package particle

import "errors"

// ErrNotFound is returned when a Store cannot find an ID.
//
// This is a store-layer sentinel used internally; the clustergo package may
// translate it into its public error contract.
var ErrNotFound = errors.New("particle not found")
