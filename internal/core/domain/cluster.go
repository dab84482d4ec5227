package domain

// Cluster is a top-level grouping of related structural states.
// Clusters are created by upstream pipeline stages and are read-only
// to the alignment core.
type Cluster struct {
	// ID is the cluster's database identifier.
	ID int64
}

// Subcluster is a finer grouping within a cluster. Read-only here.
type Subcluster struct {
	// ID is the subcluster's database identifier.
	ID int64

	// ClusterID is the owning cluster.
	ClusterID int64
}

// SubclusterEntry is a concrete structural state belonging to one
// subcluster. Only entries flagged as representative participate in
// pairwise alignment; the flag is set upstream. Read-only here.
type SubclusterEntry struct {
	// ID is the entry's database identifier.
	ID int64

	// SubclusterID is the owning subcluster.
	SubclusterID int64

	// StructureStateID references the structural-state record that
	// carries the entry's structure file path.
	StructureStateID int64

	// IsRepresentative marks the entry chosen to stand for its
	// subcluster in alignment.
	IsRepresentative bool
}

// RepresentativeEntry is the resolver's view of one representative
// subcluster entry: just enough to place it in a cluster.
type RepresentativeEntry struct {
	// EntryID is the subcluster entry's identifier.
	EntryID int64

	// SubclusterID is the owning subcluster.
	SubclusterID int64

	// ClusterID is the owning cluster.
	ClusterID int64
}

// ClusterEntry is the enqueuer's view of one representative entry,
// resolved down to the structure file the aligners read.
type ClusterEntry struct {
	// EntryID is the subcluster entry's identifier.
	EntryID int64

	// FilePath is the path to the entry's structure file.
	FilePath string

	// SubclusterID is the owning subcluster.
	SubclusterID int64

	// ClusterID is the owning cluster.
	ClusterID int64
}
