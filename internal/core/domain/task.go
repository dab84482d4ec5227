package domain

// TaskEntry is one representative entry inside a task descriptor.
type TaskEntry struct {
	// EntryID is the subcluster entry's identifier.
	EntryID int64 `json:"subcluster_entry_id"`

	// FilePath is the path to the entry's structure file.
	FilePath string `json:"file_path"`

	// SubclusterID is the owning subcluster.
	SubclusterID int64 `json:"subcluster_id"`
}

// AlignmentTask is one cluster's unit of schedulable work: the cluster
// id plus all of its representative entries. Every unordered pair of
// the entries is aligned by every active algorithm when the task is
// processed.
type AlignmentTask struct {
	// ID identifies one enqueue of this cluster, for log correlation.
	ID string `json:"task_id"`

	// ClusterID is the cluster the entries belong to.
	ClusterID int64 `json:"cluster_id"`

	// Entries are the cluster's representative entries.
	Entries []TaskEntry `json:"subclusters"`
}

// Validate checks the descriptor carries enough to process.
// A descriptor without a cluster id or without entries fails the whole
// unit immediately.
func (t *AlignmentTask) Validate() error {
	if t.ClusterID == 0 || len(t.Entries) == 0 {
		return ErrInvalidTask
	}
	return nil
}

// PairCount returns the number of unordered pairs the task yields,
// C(n,2) for n entries.
func (t *AlignmentTask) PairCount() int {
	n := len(t.Entries)
	return n * (n - 1) / 2
}
