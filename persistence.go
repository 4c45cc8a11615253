package clustergo

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/particle"
	"github.com/hupe1980/clustergo/resource"
	"github.com/hupe1980/clustergo/snapshot"
)

// SaveSnapshot writes the particle set and the current analysis result to w
// using the configured codec. Writes honor the resource controller's IO
// limit when one is attached.
func (cs *ClusterStructure) SaveSnapshot(ctx context.Context, w io.Writer, comp snapshot.Compression) error {
	start := time.Now()
	err := cs.saveSnapshot(ctx, w, comp)
	cs.opts.metricsCollector.RecordSnapshotSave(time.Since(start), err)
	return err
}

func (cs *ClusterStructure) saveSnapshot(ctx context.Context, w io.Writer, comp snapshot.Compression) error {
	cs.mu.RLock()
	contents := &snapshot.Contents{
		Box:         cs.opts.box,
		Particles:   cs.store.ToMap(),
		Assignments: make(map[particle.ID]cluster.ID, len(cs.assignments)),
		Clusters:    make(map[cluster.ID][]particle.ID, len(cs.clusters)),
	}
	for pid, cid := range cs.assignments {
		contents.Assignments[pid] = cid
	}
	for cid, c := range cs.clusters {
		contents.Clusters[cid] = c.Members()
	}
	cs.mu.RUnlock()

	if rc := cs.opts.controller; rc != nil {
		w = resource.NewRateLimitedWriter(ctx, w, rc)
	}

	return snapshot.Save(w, contents, cs.opts.codec, comp)
}

// LoadSnapshot restores a snapshot written by SaveSnapshot: the particle
// store is rebuilt from the snapshot's particle set and the cluster structure
// from its assignment and membership sections.
func (cs *ClusterStructure) LoadSnapshot(ctx context.Context, r io.Reader) error {
	start := time.Now()
	err := cs.loadSnapshot(ctx, r)
	cs.opts.metricsCollector.RecordSnapshotLoad(time.Since(start), err)
	return err
}

func (cs *ClusterStructure) loadSnapshot(ctx context.Context, r io.Reader) error {
	if rc := cs.opts.controller; rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, rc)
	}

	contents, err := snapshot.Load(r)
	if err != nil {
		return err
	}

	ps := make([]particle.Particle, 0, len(contents.Particles))
	for _, p := range contents.Particles {
		ps = append(ps, p)
	}
	if err := cs.store.Clear(); err != nil {
		return err
	}
	if err := cs.store.BatchSet(ps); err != nil {
		return err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.clear()
	cs.opts.box = contents.Box
	for pid, cid := range contents.Assignments {
		cs.assignments[pid] = cid
	}
	for cid, members := range contents.Clusters {
		c := cluster.New(cid)
		for _, pid := range members {
			c.Add(pid)
		}
		cs.clusters[cid] = c
	}
	return nil
}

// SaveSnapshotTo persists a snapshot as a named blob.
func (cs *ClusterStructure) SaveSnapshotTo(ctx context.Context, store blobstore.Store, name string, comp snapshot.Compression) error {
	var buf bytes.Buffer
	err := cs.SaveSnapshot(ctx, &buf, comp)
	if err == nil {
		err = store.Put(ctx, name, buf.Bytes())
	}
	cs.opts.logger.LogSnapshotSave(ctx, name, err)
	return err
}

// LoadSnapshotFrom restores a snapshot from a named blob.
func (cs *ClusterStructure) LoadSnapshotFrom(ctx context.Context, store blobstore.Store, name string) error {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err == nil {
		err = cs.LoadSnapshot(ctx, bytes.NewReader(data))
	}
	cs.opts.logger.LogSnapshotLoad(ctx, name, cs.store.Len(), cs.Len(), err)
	return err
}
