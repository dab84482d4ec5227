package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/metamorphic-search/structalign/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all persistence interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.structalign/data/alignment.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".structalign", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "alignment.db")

	// Open database with WAL mode for better concurrency. Pragmas go
	// on the DSN so every pooled connection gets them, foreign key
	// enforcement included.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// AlignmentStore returns an AlignmentStore interface backed by this store.
func (s *Store) AlignmentStore() driven.AlignmentStore {
	return &alignmentStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Catalog Store ====================

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// ListRepresentativeEntries returns every representative subcluster
// entry together with its cluster, across the whole catalog.
func (s *catalogStore) ListRepresentativeEntries(ctx context.Context) ([]domain.RepresentativeEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT se.id, se.subcluster_id, sc.cluster_id
		FROM subcluster_entries se
		JOIN subclusters sc ON sc.id = se.subcluster_id
		WHERE se.is_representative = 1
		ORDER BY se.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying representative entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.RepresentativeEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.RepresentativeEntry
		if err := rows.Scan(&entry.EntryID, &entry.SubclusterID, &entry.ClusterID); err != nil {
			return nil, fmt.Errorf("scanning representative entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating representative entries: %w", err)
	}

	return entries, nil
}

// FetchClusterEntries returns the representative entries of the given
// clusters, resolved down to their structure file paths.
func (s *catalogStore) FetchClusterEntries(ctx context.Context, clusterIDs []int64) ([]domain.ClusterEntry, error) {
	if len(clusterIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(clusterIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, len(clusterIDs))
	for i, id := range clusterIDs {
		args[i] = id
	}

	rows, err := s.store.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT se.id, ss.file_path, se.subcluster_id, sc.cluster_id
		FROM subcluster_entries se
		JOIN subclusters sc ON sc.id = se.subcluster_id
		JOIN structure_states ss ON ss.id = se.structure_state_id
		WHERE se.is_representative = 1 AND sc.cluster_id IN (%s)
		ORDER BY sc.cluster_id, se.id
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("querying cluster entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ClusterEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.ClusterEntry
		if err := rows.Scan(&entry.EntryID, &entry.FilePath, &entry.SubclusterID, &entry.ClusterID); err != nil {
			return nil, fmt.Errorf("scanning cluster entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cluster entries: %w", err)
	}

	return entries, nil
}

// GetEntry retrieves one subcluster entry by id.
func (s *catalogStore) GetEntry(ctx context.Context, id int64) (*domain.SubclusterEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, subcluster_id, structure_state_id, is_representative
		FROM subcluster_entries WHERE id = ?
	`, id)

	var entry domain.SubclusterEntry
	var representative int
	if err := row.Scan(&entry.ID, &entry.SubclusterID, &entry.StructureStateID, &representative); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning subcluster entry: %w", err)
	}
	entry.IsRepresentative = representative == 1

	return &entry, nil
}

// ==================== Alignment Store ====================

// alignmentStore implements driven.AlignmentStore.
type alignmentStore struct {
	store *Store
}

var _ driven.AlignmentStore = (*alignmentStore)(nil)

// CompletedPairs returns the canonical keys of every entry pair that
// already has a stored result on a well-formed two-member group.
func (s *alignmentStore) CompletedPairs(ctx context.Context) (map[domain.PairKey]struct{}, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT MIN(ge.subcluster_entry_id), MAX(ge.subcluster_entry_id), COUNT(*)
		FROM alignment_group_entries ge
		JOIN alignment_results ar ON ar.alignment_group_id = ge.alignment_group_id
		GROUP BY ge.alignment_group_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying completed pairs: %w", err)
	}
	defer rows.Close()

	completed := make(map[domain.PairKey]struct{})
	for rows.Next() {
		var lo, hi int64
		var members int
		if err := rows.Scan(&lo, &hi, &members); err != nil {
			return nil, fmt.Errorf("scanning completed pair: %w", err)
		}
		// Malformed groups can never satisfy a pairwise completeness
		// test, so they stay out of the set.
		if members != 2 {
			continue
		}
		completed[domain.PairKey{Lo: lo, Hi: hi}] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completed pairs: %w", err)
	}

	return completed, nil
}

// StoreBatch persists merged records for one cluster as a single
// transaction. Existing results are never overwritten; records whose
// entries cannot be resolved are skipped. On error the whole batch is
// rolled back, so a retry redoes it with no duplicates.
func (s *alignmentStore) StoreBatch(ctx context.Context, records []domain.MergedRecord) (domain.StoreStats, error) {
	var stats domain.StoreStats
	if len(records) == 0 {
		return stats, nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for i := range records {
		record := &records[i]
		key := record.Key()
		if key.Lo == key.Hi {
			// A pair needs two distinct entries.
			stats.SkippedMissing++
			continue
		}

		resolved, err := entriesExist(ctx, tx, key)
		if err != nil {
			return domain.StoreStats{}, err
		}
		if !resolved {
			stats.SkippedMissing++
			continue
		}

		groupID, err := findOrCreateGroup(ctx, tx, key)
		if err != nil {
			return domain.StoreStats{}, err
		}

		exists, err := resultExists(ctx, tx, groupID)
		if err != nil {
			return domain.StoreStats{}, err
		}
		if exists {
			stats.SkippedExisting++
			continue
		}

		if err := insertResult(ctx, tx, groupID, record); err != nil {
			return domain.StoreStats{}, err
		}
		stats.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return domain.StoreStats{}, fmt.Errorf("committing batch: %w", err)
	}

	return stats, nil
}

// entriesExist reports whether both member entries of the pair are
// present in the catalog.
func entriesExist(ctx context.Context, tx *sql.Tx, key domain.PairKey) (bool, error) {
	var count int
	row := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM subcluster_entries WHERE id IN (?, ?)
	`, key.Lo, key.Hi)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("resolving pair entries: %w", err)
	}
	return count == 2, nil
}

// findOrCreateGroup returns the id of the group whose membership is
// exactly the given pair, creating group and membership edges if none
// exists yet.
func findOrCreateGroup(ctx context.Context, tx *sql.Tx, key domain.PairKey) (int64, error) {
	var groupID int64
	row := tx.QueryRowContext(ctx, `
		SELECT alignment_group_id
		FROM alignment_group_entries
		GROUP BY alignment_group_id
		HAVING COUNT(*) = 2
			AND MIN(subcluster_entry_id) = ?
			AND MAX(subcluster_entry_id) = ?
	`, key.Lo, key.Hi)
	err := row.Scan(&groupID)
	if err == nil {
		return groupID, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("finding alignment group: %w", err)
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO alignment_groups DEFAULT VALUES")
	if err != nil {
		return 0, fmt.Errorf("creating alignment group: %w", err)
	}
	groupID, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading alignment group id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO alignment_group_entries (alignment_group_id, subcluster_entry_id)
		VALUES (?, ?), (?, ?)
	`, groupID, key.Lo, groupID, key.Hi)
	if err != nil {
		return 0, fmt.Errorf("creating alignment group entries: %w", err)
	}

	return groupID, nil
}

// resultExists reports whether the group already has a stored result.
func resultExists(ctx context.Context, tx *sql.Tx, groupID int64) (bool, error) {
	var count int
	row := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM alignment_results WHERE alignment_group_id = ?
	`, groupID)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("checking existing result: %w", err)
	}
	return count > 0, nil
}

// insertResult stores one merged record as the group's result. Nil
// metric fields are stored as NULL.
func insertResult(ctx context.Context, tx *sql.Tx, groupID int64, record *domain.MergedRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO alignment_results (
			alignment_group_id,
			ce_rms,
			tm_rms, tm_seq_id, tm_score_chain_1, tm_score_chain_2,
			fc_rms, fc_identity, fc_similarity, fc_score, fc_align_len
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, groupID,
		nullFloat(record.CERMS),
		nullFloat(record.TMRMS), nullFloat(record.TMSeqID),
		nullFloat(record.TMScoreChain1), nullFloat(record.TMScoreChain2),
		nullFloat(record.FCRMS), nullFloat(record.FCIdentity),
		nullFloat(record.FCSimilarity), nullFloat(record.FCScore),
		nullFloat(record.FCAlignLen))
	if err != nil {
		return fmt.Errorf("inserting alignment result: %w", err)
	}
	return nil
}

// nullFloat returns nil for nil pointers, otherwise the value.
func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
