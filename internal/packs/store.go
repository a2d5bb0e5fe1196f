package packs

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mentorix/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveGeneration persists a generation record, the request snapshot, and the
// documents in one transaction so a pack is never visible half-written.
func (s *Store) SaveGeneration(gen *models.Generation, requestJSON []byte, docs []models.PackDocument) error {
	if len(requestJSON) == 0 {
		requestJSON = []byte("{}")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO generations
			(id, user_id, status, topic, request, pattern_question_count, custom_question_count,
			 total_question_count, response_chars, warnings, error_message, created_at, completed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		gen.ID, gen.UserID, gen.Status, gen.Topic, requestJSON,
		gen.PatternCount, gen.CustomCount, gen.TotalCount,
		gen.ResponseChars, joinWarnings(gen.Warnings), errorMessageColumn(gen.ErrorMessage),
		gen.CreatedAt, gen.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}

	for _, doc := range docs {
		_, err = tx.Exec(
			`INSERT INTO generation_documents (generation_id, name, title, content, pdf, pages)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			gen.ID, doc.Name, doc.Title, doc.Text, doc.PDF, doc.Pages,
		)
		if err != nil {
			return fmt.Errorf("insert document %s: %w", doc.Name, err)
		}
	}

	return tx.Commit()
}

// ListGenerations returns the user's generations, newest first. Documents
// are not loaded here.
func (s *Store) ListGenerations(userID int64) ([]models.Generation, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, status, topic, pattern_question_count, custom_question_count,
			total_question_count, response_chars, warnings, error_message, created_at, completed_at
		 FROM generations WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	generations := []models.Generation{}
	for rows.Next() {
		var g models.Generation
		var warnings, errMsg string
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Status, &g.Topic,
			&g.PatternCount, &g.CustomCount, &g.TotalCount,
			&g.ResponseChars, &warnings, &errMsg, &g.CreatedAt, &g.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		g.Warnings = splitWarnings(warnings)
		g.ErrorMessage = errorMessagePointer(errMsg)
		generations = append(generations, g)
	}
	return generations, rows.Err()
}

// GetGeneration loads one generation owned by the user.
func (s *Store) GetGeneration(userID int64, id string) (*models.Generation, error) {
	var g models.Generation
	var warnings, errMsg string
	err := s.db.QueryRow(
		`SELECT id, user_id, status, topic, pattern_question_count, custom_question_count,
			total_question_count, response_chars, warnings, error_message, created_at, completed_at
		 FROM generations WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(
		&g.ID, &g.UserID, &g.Status, &g.Topic,
		&g.PatternCount, &g.CustomCount, &g.TotalCount,
		&g.ResponseChars, &warnings, &errMsg, &g.CreatedAt, &g.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get generation: %w", err)
	}
	g.Warnings = splitWarnings(warnings)
	g.ErrorMessage = errorMessagePointer(errMsg)
	return &g, nil
}

// The error_message column is NOT NULL: a nil pointer must go in as the
// empty string, and an empty string comes back out as a nil pointer.
func errorMessageColumn(msg *string) string {
	if msg == nil {
		return ""
	}
	return *msg
}

func errorMessagePointer(column string) *string {
	if column == "" {
		return nil
	}
	return &column
}

// Warnings are stored as one newline-joined text column.
func joinWarnings(warnings []string) string {
	return strings.Join(warnings, "\n")
}

func splitWarnings(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "\n")
}

// GetDocument loads one named document from a generation the user owns.
func (s *Store) GetDocument(userID int64, generationID, name string) (*models.PackDocument, error) {
	var doc models.PackDocument
	err := s.db.QueryRow(
		`SELECT d.generation_id, d.name, d.title, d.content, d.pdf, d.pages
		 FROM generation_documents d
		 JOIN generations g ON g.id = d.generation_id
		 WHERE d.generation_id = $1 AND d.name = $2 AND g.user_id = $3`,
		generationID, name, userID,
	).Scan(&doc.GenerationID, &doc.Name, &doc.Title, &doc.Text, &doc.PDF, &doc.Pages)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

// ListDocuments loads every document of a generation the user owns, in
// name order so the fixed 01..04 prefixes keep reading order.
func (s *Store) ListDocuments(userID int64, generationID string) ([]models.PackDocument, error) {
	rows, err := s.db.Query(
		`SELECT d.generation_id, d.name, d.title, d.content, d.pdf, d.pages
		 FROM generation_documents d
		 JOIN generations g ON g.id = d.generation_id
		 WHERE d.generation_id = $1 AND g.user_id = $2
		 ORDER BY d.name`,
		generationID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.PackDocument{}
	for rows.Next() {
		var doc models.PackDocument
		if err := rows.Scan(&doc.GenerationID, &doc.Name, &doc.Title, &doc.Text, &doc.PDF, &doc.Pages); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
