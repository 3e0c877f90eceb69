package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	"github.com/api-diengcyber/transaksi-sub000/internal/models"
	"github.com/api-diengcyber/transaksi-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `journal_id, code, created_at, created_by, verified_by, verified_at`

// storeScope matches codes of the form TYPE-{store}-DATE-SEQ whose store segment
// is exactly $1. The type never contains '-', so the store starts after the
// first hyphen, and only the date and sequence may follow it.
func storeScope(column string) string {
	return fmt.Sprintf(`substr(%[1]s, strpos(%[1]s, '-') + 1, char_length($1::text) + 1) = $1::text || '-'
		  AND substr(%[1]s, strpos(%[1]s, '-') + char_length($1::text) + 2) ~ '^[0-9]{8}-[0-9]+$'`, column)
}

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and detail data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(&m.JournalID, &m.Code, &m.CreatedAt, &m.CreatedBy, &m.VerifiedBy, &m.VerifiedAt)
	return m, err
}

// LockCodePrefixTx takes a transaction scoped advisory lock keyed by the code bucket.
func (r *PgxJournalRepository) LockCodePrefixTx(ctx context.Context, tx pgx.Tx, prefix string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, prefix); err != nil {
		return mapPgError(err, "failed to acquire journal code lock")
	}
	return nil
}

// FindLastCodeTx returns the highest code in the bucket. Longer sequences sort
// after shorter ones so that 10000 follows 9999.
func (r *PgxJournalRepository) FindLastCodeTx(ctx context.Context, tx pgx.Tx, prefix string) (string, error) {
	query := `
		SELECT code FROM journals
		WHERE code LIKE $1
		ORDER BY char_length(code) DESC, code DESC
		LIMIT 1;
	`
	var code string
	err := tx.QueryRow(ctx, query, likePrefix(prefix)).Scan(&code)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", mapPgError(err, "failed to read last journal code")
	}
	return code, nil
}

// SaveJournalTx inserts the header and all details of a journal in one batch.
func (r *PgxJournalRepository) SaveJournalTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, details []domain.JournalDetail) error {
	m := mapping.ToModelJournal(journal)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journals (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.JournalID, m.Code, m.CreatedAt, m.CreatedBy, m.VerifiedBy, m.VerifiedAt)

	detailQuery := `
		INSERT INTO journal_details (detail_id, journal_code, line_no, detail_key, detail_value, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for i, d := range details {
		md := mapping.ToModelJournalDetail(d, i)
		batch.Queue(detailQuery, md.DetailID, md.JournalCode, md.LineNo, md.Key, md.Value, md.CreatedBy, md.CreatedAt)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapPgError(err, fmt.Sprintf("failed to insert journal %s", m.Code))
	}
	return nil
}

// FindJournalByCode retrieves a journal with its details.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	m, err := scanJournal(r.Pool.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE code = $1;`, code))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("journal", code)
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", code, err)
	}
	journals, err := r.withDetails(ctx, []models.Journal{m})
	if err != nil {
		return nil, err
	}
	return &journals[0], nil
}

// FindJournalsByCodePrefix lists journals in a code prefix, newest first.
func (r *PgxJournalRepository) FindJournalsByCodePrefix(ctx context.Context, prefix string) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE code LIKE $1 ORDER BY created_at DESC, code DESC;`
	return r.listJournals(ctx, query, likePrefix(prefix))
}

// FindJournalsByStore lists every journal of a store, newest first.
func (r *PgxJournalRepository) FindJournalsByStore(ctx context.Context, storeID string) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE ` + storeScope("code") + ` ORDER BY created_at DESC, code DESC;`
	return r.listJournals(ctx, query, storeID)
}

func (r *PgxJournalRepository) listJournals(ctx context.Context, query string, args ...any) ([]domain.Journal, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()

	var headers []models.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return r.withDetails(ctx, headers)
}

// withDetails loads the details of all headers with one query and attaches them in line order.
func (r *PgxJournalRepository) withDetails(ctx context.Context, headers []models.Journal) ([]domain.Journal, error) {
	journals := make([]domain.Journal, len(headers))
	if len(headers) == 0 {
		return journals, nil
	}
	codes := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		journals[i] = mapping.ToDomainJournal(h)
		codes[i] = h.Code
		index[h.Code] = i
	}

	query := `
		SELECT detail_id, journal_code, line_no, detail_key, detail_value, created_by, created_at
		FROM journal_details
		WHERE journal_code = ANY($1)
		ORDER BY journal_code, line_no;
	`
	details, err := r.queryDetails(ctx, query, codes)
	if err != nil {
		return nil, err
	}
	for _, d := range details {
		i := index[d.JournalCode]
		journals[i].Details = append(journals[i].Details, d)
	}
	return journals, nil
}

func (r *PgxJournalRepository) queryDetails(ctx context.Context, query string, args ...any) ([]domain.JournalDetail, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal details: %w", err)
	}
	defer rows.Close()

	var details []domain.JournalDetail
	for rows.Next() {
		var m models.JournalDetail
		if err := rows.Scan(&m.DetailID, &m.JournalCode, &m.LineNo, &m.Key, &m.Value, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal detail row: %w", err)
		}
		details = append(details, mapping.ToDomainJournalDetail(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal detail rows: %w", err)
	}
	return details, nil
}

// FindDetailsInRange returns the details of store journals created within [from, to].
func (r *PgxJournalRepository) FindDetailsInRange(ctx context.Context, storeID string, from, to time.Time) ([]domain.JournalDetail, error) {
	query := `
		SELECT d.detail_id, d.journal_code, d.line_no, d.detail_key, d.detail_value, d.created_by, d.created_at
		FROM journal_details d
		JOIN journals j ON j.code = d.journal_code
		WHERE ` + storeScope("j.code") + `
		  AND j.created_at BETWEEN $2 AND $3
		ORDER BY j.created_at, d.journal_code, d.line_no;
	`
	return r.queryDetails(ctx, query, storeID, from, to)
}

// CountDetailKeys groups the store's detail keys by the type segment of their journal code.
func (r *PgxJournalRepository) CountDetailKeys(ctx context.Context, storeID string) ([]domain.DetailKeyStat, error) {
	query := `
		SELECT split_part(journal_code, '-', 1) AS transaction_type, detail_key, COUNT(*)
		FROM journal_details
		WHERE ` + storeScope("journal_code") + `
		GROUP BY 1, 2
		ORDER BY 1, 2;
	`
	rows, err := r.Pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count detail keys for store %s: %w", storeID, err)
	}
	defer rows.Close()

	var stats []domain.DetailKeyStat
	for rows.Next() {
		var s domain.DetailKeyStat
		if err := rows.Scan(&s.TransactionType, &s.Key, &s.Occurrences); err != nil {
			return nil, fmt.Errorf("failed to scan detail key stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating detail key stats: %w", err)
	}
	return stats, nil
}

// MarkVerified stamps the verifier once. A journal verified in the meantime is left untouched.
func (r *PgxJournalRepository) MarkVerified(ctx context.Context, code, userID string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journals SET verified_by = $2, verified_at = $3
		WHERE code = $1 AND verified_at IS NULL;
	`, code, userID, at)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to verify journal %s", code))
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journals WHERE code = $1);`, code).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check journal %s: %w", code, err)
		}
		if !exists {
			return apperrors.NewNotFoundError("journal", code)
		}
	}
	return nil
}
