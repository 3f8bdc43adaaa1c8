package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rafeekpro/speecher/pkg/logger"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no transcript matches the requested ID
var ErrNotFound = errors.New("transcript not found")

// TranscriptRecord represents a processed transcript in the database
type TranscriptRecord struct {
	ID        int64     `json:"-"`
	UUID      string    `json:"id"`
	Format    string    `json:"format"`
	Content   string    `json:"content"` // newline-joined transcript lines
	LineCount int       `json:"line_count"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptStorage handles storage of processed transcripts
type TranscriptStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewTranscriptStorage opens the database at dbPath and prepares the schema
func NewTranscriptStorage(dbPath string, log *logger.Logger) (*TranscriptStorage, error) {
	storageLogger := log.Named("sqlite")

	storageLogger.Info("Initializing SQLite storage",
		logger.String("path", dbPath))

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	storage := &TranscriptStorage{
		db:     db,
		logger: storageLogger,
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize transcript storage: %w", err)
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *TranscriptStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transcripts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			format TEXT NOT NULL,
			content TEXT NOT NULL,
			line_count INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create transcripts table: %w", err)
	}

	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_transcripts_created_at ON transcripts(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create created_at index: %w", err)
	}

	return nil
}

// Store stores a processed transcript and returns its external ID
func (s *TranscriptStorage) Store(record *TranscriptRecord) (string, error) {
	if record.UUID == "" {
		record.UUID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(
		`INSERT INTO transcripts (uuid, format, content, line_count, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.UUID,
		record.Format,
		record.Content,
		record.LineCount,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert transcript: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("failed to get last insert ID: %w", err)
	}
	record.ID = id

	s.logger.Debug("Stored transcript",
		logger.String("uuid", record.UUID),
		logger.Int("lines", record.LineCount))

	return record.UUID, nil
}

// GetByUUID returns the transcript with the given external ID
func (s *TranscriptStorage) GetByUUID(id string) (*TranscriptRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, uuid, format, content, line_count, created_at
		FROM transcripts WHERE uuid = ?`,
		id,
	)

	record, err := scanTranscript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	return record, nil
}

// List returns stored transcripts, newest first, with pagination
func (s *TranscriptStorage) List(limit, offset int) ([]*TranscriptRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, uuid, format, content, line_count, created_at
		FROM transcripts
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	defer rows.Close()

	var records []*TranscriptRecord
	for rows.Next() {
		record, err := scanTranscript(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transcripts: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (s *TranscriptStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranscript(row rowScanner) (*TranscriptRecord, error) {
	var (
		record    TranscriptRecord
		createdAt string
	)
	if err := row.Scan(&record.ID, &record.UUID, &record.Format, &record.Content, &record.LineCount, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at value %q: %w", createdAt, err)
	}
	record.CreatedAt = parsed

	return &record, nil
}
