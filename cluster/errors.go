package cluster

import "errors"

// ErrEmptyCluster is returned when an observable is requested for a cluster
// with no members.
var ErrEmptyCluster = errors.New("cluster has no members")
