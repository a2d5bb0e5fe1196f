package packs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mentorix/backend/internal/document"
	"github.com/mentorix/backend/internal/generator"
	"github.com/mentorix/backend/internal/models"
)

// Service runs the full pack pipeline for a request and persists the result.
type Service struct {
	gen   *generator.Generator
	store *Store
}

func NewService(gen *generator.Generator, store *Store) *Service {
	return &Service{gen: gen, store: store}
}

// Generate runs one complete pipeline pass. Failures after the completion
// call still persist a failed generation record so the attempt is auditable.
func (s *Service) Generate(ctx context.Context, userID int64, req models.GenerationRequest) (*models.GeneratePackResponse, error) {
	gen := models.Generation{
		ID:           uuid.NewString(),
		UserID:       userID,
		Status:       models.GenerationRunning,
		Topic:        req.Topic,
		PatternCount: req.PatternQuestionCount(),
		CustomCount:  len(req.ActiveCustomQuestions()),
		CreatedAt:    time.Now().UTC(),
	}
	gen.TotalCount = req.TotalQuestionCount()

	snapshot, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot request: %w", err)
	}

	pack, err := s.gen.GeneratePack(ctx, req)
	if err != nil {
		var degraded *generator.DegradedContentError
		if errors.As(err, &degraded) {
			s.recordFailure(&gen, snapshot, degraded.Error())
		}
		return nil, err
	}

	gen.ResponseChars = pack.ResponseChars
	gen.Warnings = pack.Warnings

	docs, err := s.renderDocuments(gen.ID, req, pack)
	if err != nil {
		s.recordFailure(&gen, snapshot, err.Error())
		return nil, err
	}

	now := time.Now().UTC()
	gen.Status = models.GenerationCompleted
	gen.CompletedAt = &now

	if err := s.store.SaveGeneration(&gen, snapshot, docs); err != nil {
		return nil, fmt.Errorf("persist generation: %w", err)
	}

	log.Printf("[packs] generation %s completed: %d documents, %d chars",
		gen.ID, len(docs), gen.ResponseChars)

	// Strip PDF bytes and full text from the response payload; clients
	// fetch documents individually.
	summaries := make([]models.PackDocument, len(docs))
	for i, d := range docs {
		summaries[i] = models.PackDocument{
			GenerationID: d.GenerationID,
			Name:         d.Name,
			Title:        d.Title,
			Pages:        d.Pages,
		}
	}

	return &models.GeneratePackResponse{Generation: gen, Documents: summaries}, nil
}

// renderDocuments formats and renders the three content sections plus,
// when any questions were requested, the combined QA document.
func (s *Service) renderDocuments(generationID string, req models.GenerationRequest, pack *generator.GeneratedPack) ([]models.PackDocument, error) {
	sections := []struct {
		name string
		text string
	}{
		{models.DocNotes, pack.Sections.Notes},
		{models.DocRoadmap, pack.Sections.Roadmap},
		{models.DocResources, pack.Sections.Resources},
	}

	docs := []models.PackDocument{}
	for _, sec := range sections {
		doc, err := s.renderOne(generationID, sec.name, sec.text)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if req.TotalQuestionCount() > 0 {
		qaText := generator.BuildQADocument(req, pack.QA)
		doc, err := s.renderOne(generationID, models.DocQA, qaText)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	return docs, nil
}

func (s *Service) renderOne(generationID, name, text string) (*models.PackDocument, error) {
	title := models.DocumentTitles[name]
	rendered := document.Format(title, text)
	pdfBytes, err := document.RenderPDF(rendered)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &models.PackDocument{
		GenerationID: generationID,
		Name:         name,
		Title:        title,
		Text:         text,
		PDF:          pdfBytes,
		Pages:        rendered.Pages,
	}, nil
}

func (s *Service) recordFailure(gen *models.Generation, snapshot []byte, message string) {
	now := time.Now().UTC()
	gen.Status = models.GenerationFailed
	gen.ErrorMessage = &message
	gen.CompletedAt = &now
	if err := s.store.SaveGeneration(gen, snapshot, nil); err != nil {
		log.Printf("[packs] could not record failed generation %s: %v", gen.ID, err)
	}
}
